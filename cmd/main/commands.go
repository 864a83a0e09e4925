package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Houeta/phone-insights/internal/api"
	"github.com/Houeta/phone-insights/internal/config"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "phone-insights",
		Short: "Phone catalog with AI reviews, specs and recommendations",
		Long: `phone-insights serves a phone catalog over HTTP and enriches it with
LLM-written reviews, generated specification sheets and budget recommendations.

Configuration is read from PI_* environment variables.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API, the diagnostics listener and the optional Telegram bot",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "import",
			Short: "Fetch the retailer listing page once and sync the catalog",
			RunE:  runImport,
		},
		&cobra.Command{
			Use:   "backfill-specs",
			Short: "Generate specs for every phone that has none",
			RunE:  runBackfill,
		},
		&cobra.Command{
			Use:   "routes",
			Short: "Print Markdown documentation of the HTTP routes",
			RunE:  runRoutes,
		},
	)

	return root
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	app, err := newApp(ctx, config.MustLoad())
	if err != nil {
		return err
	}
	defer app.Close()

	log := app.log
	srv := &http.Server{Addr: app.cfg.HTTPAddr, Handler: app.router(), ReadHeaderTimeout: 10 * time.Second}
	diag := &http.Server{Addr: app.cfg.DiagAddr, Handler: app.diagRouter(), ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 2)
	for _, s := range []*http.Server{srv, diag} {
		go func() {
			log.InfoContext(ctx, "Listening", "addr", s.Addr)
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("server %s: %w", s.Addr, err)
			}
		}()
	}

	if app.bot != nil {
		go app.bot.Start()
	}
	if app.cfg.Checker.Interval > 0 && app.checker != nil {
		go app.checker.Run(ctx, app.cfg.Checker.Interval, app.onCatalogChange)
	}

	log.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	select {
	case <-ctx.Done():
		log.InfoContext(ctx, "Shutdown signal received. Stopping application...")
	case err = <-errCh:
		log.ErrorContext(ctx, "Server failed", "error", err)
	}

	if app.bot != nil {
		app.bot.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	for _, s := range []*http.Server{srv, diag} {
		if shutdownErr := s.Shutdown(shutdownCtx); shutdownErr != nil {
			log.ErrorContext(shutdownCtx, "Failed to shut down server", "addr", s.Addr, "error", shutdownErr)
		}
	}

	log.InfoContext(shutdownCtx, "Application stopped gracefully.")

	return err
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	app, err := newApp(ctx, config.MustLoad())
	if err != nil {
		return err
	}
	defer app.Close()

	if app.checker == nil {
		return errors.New("PI_CATALOG_URL is not set")
	}

	changes, err := app.checker.CheckForUpdates(ctx)
	if err != nil {
		return err
	}
	app.onCatalogChange(ctx, changes)

	fmt.Fprintf(cmd.OutOrStdout(), "added: %d, removed: %d, price changes: %d\n",
		len(changes.Added), len(changes.Removed), len(changes.Changed))

	return nil
}

func runBackfill(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	app, err := newApp(ctx, config.MustLoad())
	if err != nil {
		return err
	}
	defer app.Close()

	report, err := app.specs.Backfill(ctx)
	if report != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "phones: %d, updated: %d, failed: %d\n",
			report.Total, report.Updated, len(report.Failures))
		for _, f := range report.Failures {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s (%s): %s\n", f.Name, f.PhoneID, f.Error)
		}
	}

	return err
}

// runRoutes documents the router without opening storage or calling providers.
func runRoutes(cmd *cobra.Command, _ []string) error {
	router := api.NewRouter(setupLogger(envProd), api.Deps{AdminToken: "docs"})
	fmt.Fprintln(cmd.OutOrStdout(), api.RoutesDoc(router))

	return nil
}
