// Package api is the HTTP surface of the service: catalog browsing, the AI
// functions and the admin endpoints.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Houeta/phone-insights/internal/models"
	"github.com/Houeta/phone-insights/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

type Reviewer interface {
	GenerateReview(ctx context.Context, phone *models.Phone) (*models.Review, error)
}

type SpecGenerator interface {
	GenerateSpecs(ctx context.Context, phoneID, phoneName string) (*models.Specs, error)
	Backfill(ctx context.Context) (*models.BackfillReport, error)
}

type Recommender interface {
	Recommend(ctx context.Context, budget float64, preferences []string) (*models.Recommendations, error)
}

type CatalogChecker interface {
	CheckForUpdates(ctx context.Context) (*models.CatalogChanges, error)
}

// RequestObserver records served requests.
type RequestObserver interface {
	ObserveRequest(route, method string, status int, elapsed time.Duration)
}

// Deps are the services behind the routes. Metrics and OnCatalogChange are optional.
type Deps struct {
	Phones          repository.PhoneRepository
	Reviewer        Reviewer
	Specs           SpecGenerator
	Recommender     Recommender
	Catalog         CatalogChecker
	OnCatalogChange func(context.Context, *models.CatalogChanges)
	Metrics         RequestObserver
	AdminToken      string
}

type handler struct {
	log *slog.Logger
	Deps
}

// NewRouter builds the public router. The /admin routes are mounted only
// when an admin token is configured.
func NewRouter(log *slog.Logger, deps Deps) chi.Router {
	h := &handler{log: log, Deps: deps}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	if deps.Metrics != nil {
		r.Use(observe(deps.Metrics))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: corsHeaders,
	}))
	r.Use(optionsOK)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("pong")); err != nil {
			log.Error("Failed to write ping reply", "error", err)
		}
	})

	r.Get("/brands", h.listBrands)
	r.Route("/phones", func(r chi.Router) {
		r.Get("/", h.listPhones)
		r.With(h.phoneCtx).Get("/{slug}", h.getPhone)
	})

	r.Route("/functions", func(r chi.Router) {
		r.Post("/generate-review", h.generateReview)
		r.Post("/generate-specs", h.generateSpecs)
		r.Post("/recommend-phones", h.recommendPhones)
	})

	if deps.AdminToken != "" {
		r.Mount("/admin", h.adminRouter())
	}

	return r
}

func (h *handler) adminRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(h.adminOnly)
	r.Get("/phones", h.adminListPhones)
	r.Post("/specs/backfill", h.backfillSpecs)
	r.Post("/catalog/check", h.checkCatalog)

	return r
}

// NewDiagRouter serves operational endpoints on a separate listener.
func NewDiagRouter(metrics http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/metrics", metrics.ServeHTTP)

	return r
}
