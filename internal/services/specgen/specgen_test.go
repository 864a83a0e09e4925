package specgen_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Houeta/phone-insights/internal/llm"
	"github.com/Houeta/phone-insights/internal/models"
	"github.com/Houeta/phone-insights/internal/repository"
	"github.com/Houeta/phone-insights/internal/services/specgen"
	"github.com/Houeta/phone-insights/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const specsJSON = `{"processor": "Exynos 1480", "ram": "8GB", "storage": 256, "battery": "5000mAh",
"nfc": true, "card_slot": false, "weight": null, "gpu": "Xclipse 530"}`

type counter struct{ n atomic.Int32 }

func (c *counter) SpecsUpdated() { c.n.Add(1) }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGenerator_GenerateSpecs(t *testing.T) {
	ctx := t.Context()

	testCases := []struct {
		name       string
		id, phone  string
		setupMocks func(c *mocks.LLMClient, repo *mocks.PhoneRepository)
		expectErr  error
		updates    int32
	}{
		{
			name:  "Success",
			id:    "p1",
			phone: "Galaxy A55",
			setupMocks: func(c *mocks.LLMClient, repo *mocks.PhoneRepository) {
				c.On("Complete", ctx, mock.MatchedBy(func(req llm.Request) bool {
					return req.Temperature == 0.3 && req.MaxTokens == 1500
				})).Return("```json\n"+specsJSON+"\n```", nil).Once()
				repo.On("UpdateSpecs", ctx, "p1", mock.MatchedBy(func(s *models.Specs) bool {
					return s.Processor == "Exynos 1480" && s.Storage == "256"
				})).Return(nil).Once()
			},
			updates: 1,
		},
		{
			name:       "Missing id",
			phone:      "Galaxy A55",
			setupMocks: func(_ *mocks.LLMClient, _ *mocks.PhoneRepository) {},
			expectErr:  specgen.ErrInputRequired,
		},
		{
			name:       "Missing name",
			id:         "p1",
			setupMocks: func(_ *mocks.LLMClient, _ *mocks.PhoneRepository) {},
			expectErr:  specgen.ErrInputRequired,
		},
		{
			name:  "Upstream credits exhausted",
			id:    "p1",
			phone: "Galaxy A55",
			setupMocks: func(c *mocks.LLMClient, _ *mocks.PhoneRepository) {
				c.On("Complete", ctx, mock.Anything).
					Return("", &llm.StatusError{Provider: "GROQ", StatusCode: 402}).Once()
			},
			expectErr: llm.ErrCreditsExhausted,
		},
		{
			name:  "Invalid completion",
			id:    "p1",
			phone: "Galaxy A55",
			setupMocks: func(c *mocks.LLMClient, _ *mocks.PhoneRepository) {
				c.On("Complete", ctx, mock.Anything).Return("{not json", nil).Once()
			},
			expectErr: llm.ErrInvalidJSON,
		},
		{
			name:  "Unknown phone",
			id:    "nope",
			phone: "Galaxy A55",
			setupMocks: func(c *mocks.LLMClient, repo *mocks.PhoneRepository) {
				c.On("Complete", ctx, mock.Anything).Return(specsJSON, nil).Once()
				repo.On("UpdateSpecs", ctx, "nope", mock.Anything).Return(repository.ErrPhoneNotFound).Once()
			},
			expectErr: repository.ErrPhoneNotFound,
		},
		{
			name:  "Database failure",
			id:    "p1",
			phone: "Galaxy A55",
			setupMocks: func(c *mocks.LLMClient, repo *mocks.PhoneRepository) {
				c.On("Complete", ctx, mock.Anything).Return(specsJSON, nil).Once()
				repo.On("UpdateSpecs", ctx, "p1", mock.Anything).Return(assert.AnError).Once()
			},
			expectErr: specgen.ErrUpdateFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := mocks.NewLLMClient(t)
			repo := mocks.NewPhoneRepository(t)
			tc.setupMocks(client, repo)
			rec := &counter{}

			gen := specgen.New(discard(), client, repo, specgen.WithRecorder(rec))
			specs, err := gen.GenerateSpecs(ctx, tc.id, tc.phone)

			assert.Equal(t, tc.updates, rec.n.Load())
			if tc.expectErr != nil {
				require.ErrorIs(t, err, tc.expectErr)
				assert.Nil(t, specs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.FlexString("Yes"), specs.NFC)
			assert.Equal(t, models.FlexString("No"), specs.CardSlot)
			assert.Empty(t, specs.Weight)
			assert.Equal(t, models.FlexString("Xclipse 530"), specs.GPU)
		})
	}
}

func TestGenerator_Backfill(t *testing.T) {
	phones := []models.Phone{
		{ID: "1", Name: "Galaxy A15"},
		{ID: "2", Name: "Redmi 13C"},
		{ID: "3", Name: "Spark 20"},
		{ID: "4", Name: "Nord CE4"},
		{ID: "5", Name: "Moto G84"},
	}

	t.Run("Failures are reported and do not abort", func(t *testing.T) {
		ctx := t.Context()
		client := mocks.NewLLMClient(t)
		repo := mocks.NewPhoneRepository(t)

		repo.On("PhonesMissingSpecs", ctx, 0).Return(phones, nil).Once()
		client.On("Complete", ctx, mock.MatchedBy(func(req llm.Request) bool {
			return !strings.Contains(req.User, "Redmi 13C")
		})).Return(specsJSON, nil).Times(4)
		client.On("Complete", ctx, mock.Anything).Return("", llm.ErrEmptyCompletion).Once()
		repo.On("UpdateSpecs", ctx, mock.Anything, mock.Anything).Return(nil).Times(4)

		gen := specgen.New(discard(), client, repo, specgen.WithBatch(2, 0))
		report, err := gen.Backfill(ctx)

		require.NoError(t, err)
		assert.Equal(t, 5, report.Total)
		assert.Equal(t, 4, report.Updated)
		require.Len(t, report.Failures, 1)
		assert.Equal(t, "2", report.Failures[0].PhoneID)
		assert.Equal(t, "Redmi 13C", report.Failures[0].Name)
	})

	t.Run("Nothing to do", func(t *testing.T) {
		ctx := t.Context()
		repo := mocks.NewPhoneRepository(t)
		repo.On("PhonesMissingSpecs", ctx, 0).Return([]models.Phone{}, nil).Once()

		report, err := specgen.New(discard(), mocks.NewLLMClient(t), repo).Backfill(ctx)

		require.NoError(t, err)
		assert.Equal(t, &models.BackfillReport{Failures: []models.BackfillFailure{}}, report)
	})

	t.Run("Listing failure", func(t *testing.T) {
		ctx := t.Context()
		repo := mocks.NewPhoneRepository(t)
		repo.On("PhonesMissingSpecs", ctx, 0).Return(nil, assert.AnError).Once()

		report, err := specgen.New(discard(), mocks.NewLLMClient(t), repo).Backfill(ctx)

		require.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, report)
	})

	t.Run("Cancellation stops between chunks", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		client := &mocks.LLMClient{}
		repo := &mocks.PhoneRepository{}

		repo.On("PhonesMissingSpecs", ctx, 0).Return(phones, nil).Once()
		client.On("Complete", ctx, mock.Anything).Return(specsJSON, nil).Run(func(mock.Arguments) {
			cancel()
		})
		repo.On("UpdateSpecs", ctx, mock.Anything, mock.Anything).Return(nil)

		gen := specgen.New(discard(), client, repo, specgen.WithBatch(2, time.Hour))
		report, err := gen.Backfill(ctx)

		require.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, report)
		assert.Equal(t, 5, report.Total)
		assert.Equal(t, 2, report.Updated)
	})
}
