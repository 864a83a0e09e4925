package api

import (
	"errors"
	"net/http"

	"github.com/Houeta/phone-insights/internal/llm"
	"github.com/Houeta/phone-insights/internal/repository"
	"github.com/Houeta/phone-insights/internal/services/recommender"
	"github.com/Houeta/phone-insights/internal/services/reviewer"
	"github.com/Houeta/phone-insights/internal/services/specgen"
	"github.com/go-chi/render"
)

// ErrResponse renderer type for handling all sorts of errors.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	ErrorText string `json:"error"` // user-facing message
}

func (e *ErrResponse) Render(_ http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)

	return nil
}

// ErrInvalidRequest answers a body that failed to decode or validate.
func ErrInvalidRequest(err error) *ErrResponse {
	text := "Invalid request body"
	for _, uf := range userFacing {
		if errors.Is(err, uf.err) {
			text = uf.err.Error()
			break
		}
	}
	return &ErrResponse{Err: err, HTTPStatusCode: http.StatusBadRequest, ErrorText: text}
}

//nolint:gochecknoglobals // shared immutable replies
var (
	ErrNotFound  = &ErrResponse{HTTPStatusCode: http.StatusNotFound, ErrorText: "Phone not found"}
	ErrForbidden = &ErrResponse{HTTPStatusCode: http.StatusForbidden, ErrorText: "Forbidden"}

	ErrCatalogDisabled = &ErrResponse{
		HTTPStatusCode: http.StatusServiceUnavailable,
		ErrorText:      "Catalog import is not configured",
	}
)

// userFacing errors carry messages that are safe to show as-is.
//
//nolint:gochecknoglobals // lookup table
var userFacing = []struct {
	err    error
	status int
}{
	{reviewer.ErrPhoneRequired, http.StatusBadRequest},
	{specgen.ErrInputRequired, http.StatusBadRequest},
	{recommender.ErrBudgetRequired, http.StatusBadRequest},
	{llm.ErrRateLimited, http.StatusTooManyRequests},
	{llm.ErrCreditsExhausted, http.StatusPaymentRequired},
	{llm.ErrNotConfigured, http.StatusInternalServerError},
	{llm.ErrEmptyCompletion, http.StatusInternalServerError},
	{llm.ErrInvalidJSON, http.StatusInternalServerError},
	{specgen.ErrUpdateFailed, http.StatusInternalServerError},
}

// errorFor maps err onto a reply without leaking wrapped internals. Unknown
// errors become a 500 carrying fallback.
func errorFor(err error, fallback string) *ErrResponse {
	if errors.Is(err, repository.ErrPhoneNotFound) {
		return &ErrResponse{Err: err, HTTPStatusCode: ErrNotFound.HTTPStatusCode, ErrorText: ErrNotFound.ErrorText}
	}
	for _, uf := range userFacing {
		if errors.Is(err, uf.err) {
			return &ErrResponse{Err: err, HTTPStatusCode: uf.status, ErrorText: uf.err.Error()}
		}
	}

	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		return &ErrResponse{Err: err, HTTPStatusCode: http.StatusInternalServerError, ErrorText: statusErr.Error()}
	}

	return &ErrResponse{Err: err, HTTPStatusCode: http.StatusInternalServerError, ErrorText: fallback}
}
