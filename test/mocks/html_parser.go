package mocks

import (
	"context"
	"io"
	"net/http"

	"github.com/Houeta/phone-insights/internal/models"
	"github.com/stretchr/testify/mock"
)

// HTMLParser is a mock of parser.HTMLParser.
type HTMLParser struct {
	mock.Mock
}

func (_m *HTMLParser) GetHTMLResponse(ctx context.Context) (*http.Response, error) {
	ret := _m.Called(ctx)

	r0, _ := ret.Get(0).(*http.Response)
	return r0, ret.Error(1)
}

func (_m *HTMLParser) ParseTableResponse(ctx context.Context, inp io.ReadCloser) ([]models.Listing, error) {
	ret := _m.Called(ctx, inp)

	r0, _ := ret.Get(0).([]models.Listing)
	return r0, ret.Error(1)
}
