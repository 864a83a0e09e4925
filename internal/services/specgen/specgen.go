// Package specgen fills in phone specification sheets from an LLM.
package specgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Houeta/phone-insights/internal/llm"
	"github.com/Houeta/phone-insights/internal/models"
	"github.com/Houeta/phone-insights/internal/repository"
	"golang.org/x/sync/errgroup"
)

//nolint:staticcheck // shown to API clients
var (
	ErrInputRequired = errors.New("Phone name and ID are required")
	ErrUpdateFailed  = errors.New("Failed to update phone specs in database")
)

const (
	temperature = 0.3
	maxTokens   = 1500

	DefaultBatchSize  = 5
	DefaultBatchDelay = 2 * time.Second
)

// Recorder is told about every phone whose specs were written.
type Recorder interface {
	SpecsUpdated()
}

// Generator asks the model for specs and stores them on the phone row.
type Generator struct {
	log        *slog.Logger
	llm        llm.Client
	repo       repository.PhoneRepository
	rec        Recorder
	batchSize  int
	batchDelay time.Duration
}

// Option tweaks a Generator.
type Option func(*Generator)

// WithBatch sets the backfill chunk size and the pause between chunks.
func WithBatch(size int, delay time.Duration) Option {
	return func(g *Generator) {
		if size > 0 {
			g.batchSize = size
		}
		if delay >= 0 {
			g.batchDelay = delay
		}
	}
}

// WithRecorder reports successful writes to rec.
func WithRecorder(rec Recorder) Option {
	return func(g *Generator) {
		g.rec = rec
	}
}

func New(log *slog.Logger, client llm.Client, repo repository.PhoneRepository, opts ...Option) *Generator {
	g := &Generator{
		log:        log,
		llm:        client,
		repo:       repo,
		batchSize:  DefaultBatchSize,
		batchDelay: DefaultBatchDelay,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// GenerateSpecs asks the model for the specs of phoneName and writes the core
// columns of the phone identified by phoneID. The full sheet is returned.
func (g *Generator) GenerateSpecs(ctx context.Context, phoneID, phoneName string) (*models.Specs, error) {
	const opn = "specgen.GenerateSpecs"

	phoneID, phoneName = strings.TrimSpace(phoneID), strings.TrimSpace(phoneName)
	if phoneID == "" || phoneName == "" {
		return nil, ErrInputRequired
	}
	log := g.log.With("op", opn, "phone_id", phoneID, "phone", phoneName)

	content, err := g.llm.Complete(ctx, llm.Request{
		System:      systemPrompt,
		User:        buildPrompt(phoneName),
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	var specs models.Specs
	if err = llm.DecodeJSON(content, &specs); err != nil {
		log.ErrorContext(ctx, "Failed to parse specs completion", "content", content)
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	if err = g.repo.UpdateSpecs(ctx, phoneID, &specs); err != nil {
		if errors.Is(err, repository.ErrPhoneNotFound) {
			return nil, fmt.Errorf("%s: %w", opn, err)
		}
		log.ErrorContext(ctx, "Database update error", "error", err)
		return nil, fmt.Errorf("%s: %w: %w", opn, ErrUpdateFailed, err)
	}

	if g.rec != nil {
		g.rec.SpecsUpdated()
	}
	log.InfoContext(ctx, "Updated phone specs")

	return &specs, nil
}

// Backfill generates specs for every phone that has none yet. Phones are
// handled in chunks of batchSize running concurrently, with batchDelay between
// chunks. Per-phone failures are collected in the report.
func (g *Generator) Backfill(ctx context.Context) (*models.BackfillReport, error) {
	const opn = "specgen.Backfill"
	log := g.log.With("op", opn)

	phones, err := g.repo.PhonesMissingSpecs(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list phones without specs: %w", opn, err)
	}

	report := &models.BackfillReport{Total: len(phones), Failures: []models.BackfillFailure{}}
	log.InfoContext(ctx, "Starting specs backfill", "phones", len(phones), "batch", g.batchSize)

	for start := 0; start < len(phones); start += g.batchSize {
		if start > 0 {
			select {
			case <-ctx.Done():
				return report, fmt.Errorf("%s: %w", opn, ctx.Err())
			case <-time.After(g.batchDelay):
			}
		}

		chunk := phones[start:min(start+g.batchSize, len(phones))]
		errs := make([]error, len(chunk))

		var eg errgroup.Group
		eg.SetLimit(g.batchSize)
		for i, phone := range chunk {
			eg.Go(func() error {
				_, errs[i] = g.GenerateSpecs(ctx, phone.ID, phone.Name)
				return nil
			})
		}
		_ = eg.Wait()

		for i, phone := range chunk {
			if errs[i] == nil {
				report.Updated++
				continue
			}
			log.WarnContext(ctx, "Failed to generate specs", "phone", phone.Name, "error", errs[i])
			report.Failures = append(report.Failures, models.BackfillFailure{
				PhoneID: phone.ID,
				Name:    phone.Name,
				Error:   errs[i].Error(),
			})
		}
		log.DebugContext(ctx, "Chunk done", "processed", start+len(chunk), "total", len(phones))

		if err = ctx.Err(); err != nil {
			return report, fmt.Errorf("%s: %w", opn, err)
		}
	}

	log.InfoContext(ctx, "Specs backfill complete", "updated", report.Updated, "failed", len(report.Failures))

	return report, nil
}
