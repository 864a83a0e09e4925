package mocks

import (
	"context"

	"github.com/Houeta/phone-insights/internal/llm"
	"github.com/stretchr/testify/mock"
)

// LLMClient is a mock of llm.Client.
type LLMClient struct {
	mock.Mock
}

func (_m *LLMClient) Complete(ctx context.Context, req llm.Request) (string, error) {
	ret := _m.Called(ctx, req)

	return ret.String(0), ret.Error(1)
}

func (_m *LLMClient) Provider() string {
	return _m.Called().String(0)
}

// NewLLMClient creates an LLMClient whose expectations are asserted on cleanup.
func NewLLMClient(t testingT) *LLMClient {
	m := &LLMClient{}
	register(&m.Mock, t)

	return m
}
