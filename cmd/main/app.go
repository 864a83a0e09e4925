package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Houeta/phone-insights/internal/api"
	"github.com/Houeta/phone-insights/internal/bot"
	"github.com/Houeta/phone-insights/internal/config"
	"github.com/Houeta/phone-insights/internal/llm"
	"github.com/Houeta/phone-insights/internal/metrics"
	"github.com/Houeta/phone-insights/internal/models"
	"github.com/Houeta/phone-insights/internal/parser"
	"github.com/Houeta/phone-insights/internal/repository/sqlite"
	"github.com/Houeta/phone-insights/internal/services/checker"
	"github.com/Houeta/phone-insights/internal/services/recommender"
	"github.com/Houeta/phone-insights/internal/services/reviewer"
	"github.com/Houeta/phone-insights/internal/services/specgen"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// app holds every wired component of the service.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	repo     *sqlite.Repository
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	reviewer    *reviewer.Reviewer
	specs       *specgen.Generator
	recommender *recommender.Recommender
	checker     *checker.Checker // nil without a catalog URL
	bot         *bot.Bot         // nil without a Telegram token
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	log := setupLogger(cfg.Env)

	repo, err := sqlite.NewRepository(ctx, log, cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	groq := llm.Instrument(llm.NewOpenAIClient(log, llm.OpenAIConfig{
		Provider: "GROQ",
		APIKey:   cfg.LLM.Groq.APIKey,
		BaseURL:  cfg.LLM.Groq.BaseURL,
		Model:    cfg.LLM.Groq.Model,
		Timeout:  cfg.LLM.Timeout,
	}), m)

	recommendLLM, err := recommendClient(ctx, log, cfg)
	if err != nil {
		repo.Close()
		return nil, err
	}

	a := &app{
		cfg:         cfg,
		log:         log,
		repo:        repo,
		registry:    registry,
		metrics:     m,
		reviewer:    reviewer.New(log, groq, repo, cfg.LLM.ReviewTTL),
		specs:       specgen.New(log, groq, repo, specgen.WithBatch(cfg.Batch.Size, cfg.Batch.Delay), specgen.WithRecorder(m)),
		recommender: recommender.New(log, llm.Instrument(recommendLLM, m), repo),
	}

	if cfg.CatalogURL != "" {
		a.checker = checker.NewChecker(log, parser.NewParser(log, cfg.CatalogURL), repo)
	}

	if cfg.Tg.Token != "" {
		a.bot, err = bot.NewBot(log, cfg.Tg.Token, cfg.Tg.Timeout, repo, repo, a.recommender)
		if err != nil {
			repo.Close()
			return nil, err
		}
	}

	return a, nil
}

func recommendClient(ctx context.Context, log *slog.Logger, cfg *config.Config) (llm.Client, error) {
	if cfg.LLM.Recommend == config.ProviderGemini {
		client, err := llm.NewGeminiClient(ctx, log, cfg.LLM.Gemini.APIKey, cfg.LLM.Gemini.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to init Gemini client: %w", err)
		}
		return client, nil
	}

	return llm.NewOpenAIClient(log, llm.OpenAIConfig{
		Provider: "Lovable AI",
		APIKey:   cfg.LLM.Gateway.APIKey,
		BaseURL:  cfg.LLM.Gateway.BaseURL,
		Model:    cfg.LLM.Gateway.Model,
		Timeout:  cfg.LLM.Timeout,
	}), nil
}

func (a *app) router() http.Handler {
	deps := api.Deps{
		Phones:          a.repo,
		Reviewer:        a.reviewer,
		Specs:           a.specs,
		Recommender:     a.recommender,
		OnCatalogChange: a.onCatalogChange,
		Metrics:         a.metrics,
		AdminToken:      a.cfg.AdminToken,
	}
	if a.checker != nil {
		deps.Catalog = a.checker
	}

	return api.NewRouter(a.log, deps)
}

func (a *app) diagRouter() http.Handler {
	return api.NewDiagRouter(metrics.Handler(a.registry))
}

// onCatalogChange records an import and tells Telegram subscribers about it.
func (a *app) onCatalogChange(ctx context.Context, changes *models.CatalogChanges) {
	a.metrics.CatalogChanged(changes)
	if a.bot == nil || changes.Empty() {
		return
	}
	if err := a.bot.Notify(ctx, changes); err != nil {
		a.log.WarnContext(ctx, "Failed to notify subscribers", "error", err)
	}
}

func (a *app) Close() {
	if err := a.repo.Close(); err != nil {
		a.log.Error("Failed to close storage", "error", err)
	}
}
