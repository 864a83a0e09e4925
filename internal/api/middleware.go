package api

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Houeta/phone-insights/internal/models"
	"github.com/Houeta/phone-insights/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// AdminTokenHeader carries the admin token.
const AdminTokenHeader = "X-Admin-Token"

//nolint:gochecknoglobals // shared with the cors options
var corsHeaders = []string{"authorization", "x-client-info", "apikey", "content-type", strings.ToLower(AdminTokenHeader)}

// optionsOK answers OPTIONS requests that are not CORS preflights with an
// empty 200. Preflights are answered by the cors handler before this runs.
func optionsOK(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		h := w.Header()
		if h.Get("Access-Control-Allow-Origin") == "" {
			h.Set("Access-Control-Allow-Origin", "*")
		}
		h.Set("Access-Control-Allow-Headers", strings.Join(corsHeaders, ", "))
		w.WriteHeader(http.StatusOK)
	})
}

type ctxKey int8

const ctxKeyPhone ctxKey = iota

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.InfoContext(r.Context(), "Request served",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"elapsed", time.Since(start),
			)
		})
	}
}

// observe reports every request by its route pattern, so metric labels stay bounded.
func observe(obs RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			obs.ObserveRequest(route, r.Method, status, time.Since(start))
		})
	}
}

// adminOnly restricts access to callers presenting the admin token.
func (h *handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		given := r.Header.Get(AdminTokenHeader)
		if subtle.ConstantTimeCompare([]byte(given), []byte(h.AdminToken)) != 1 {
			h.log.WarnContext(r.Context(), "Rejected admin request", "path", r.URL.Path)
			h.renderError(w, r, ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// phoneCtx loads the phone named by the {slug} URL parameter. In case the
// phone could not be found, we stop here and return a 404.
func (h *handler) phoneCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		phone, err := h.Phones.GetPhoneBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			if !errors.Is(err, repository.ErrPhoneNotFound) {
				h.log.ErrorContext(r.Context(), "Failed to load phone", "error", err)
			}
			h.renderError(w, r, errorFor(err, "Failed to load phone"))
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyPhone, phone)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func phoneFrom(ctx context.Context) *models.Phone {
	phone, _ := ctx.Value(ctxKeyPhone).(*models.Phone)
	return phone
}

func (h *handler) renderError(w http.ResponseWriter, r *http.Request, e *ErrResponse) {
	if err := render.Render(w, r, e); err != nil {
		h.log.ErrorContext(r.Context(), "Failed to render error", "error", err)
	}
}

func (h *handler) render(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		h.log.ErrorContext(r.Context(), "Failed to render response", "error", err)
	}
}
