package bot

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Houeta/phone-insights/internal/llm"
	"github.com/Houeta/phone-insights/internal/models"
	"github.com/Houeta/phone-insights/internal/repository"
	"github.com/Houeta/phone-insights/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v4"
)

// fakeContext implements the parts of telebot.Context the handlers touch.
type fakeContext struct {
	telebot.Context
	args []string
	sent []interface{}
}

func (f *fakeContext) Args() []string        { return f.args }
func (f *fakeContext) Chat() *telebot.Chat   { return &telebot.Chat{ID: 42} }
func (f *fakeContext) Sender() *telebot.User { return &telebot.User{Username: "tester"} }

func (f *fakeContext) Send(what interface{}, _ ...interface{}) error {
	f.sent = append(f.sent, what)
	return nil
}

func (f *fakeContext) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.sent)
	text, ok := f.sent[len(f.sent)-1].(string)
	require.True(t, ok)
	return text
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStart(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)
	mockBot.On("Start").Once()

	testBot := Bot{bot: mockBot, log: slog.Default()}

	testBot.Start()

	mockBot.AssertExpectations(t)
}

func TestStop(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)
	mockBot.On("Stop").Once()

	testBot := Bot{bot: mockBot, log: slog.Default()}

	testBot.Stop()

	mockBot.AssertExpectations(t)
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)
	for _, cmd := range []string{"/start", "/subscribe", "/unsubscribe", "/phone", "/search", "/recommend"} {
		mockBot.On("Handle", cmd, mock.AnythingOfType("telebot.HandlerFunc")).Once()
	}

	testBot := Bot{bot: mockBot, log: slog.Default()}

	testBot.registerRoutes()

	mockBot.AssertExpectations(t)
}

func TestStartHandler(t *testing.T) {
	t.Parallel()

	c := &fakeContext{}
	testBot := Bot{log: discard()}

	require.NoError(t, testBot.startHandler(c))
	assert.Contains(t, c.lastText(t), "/recommend <budget>")
}

func TestSubscriptionHandlers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(subs *mocks.SubscriptionRepository)
		handler func(b *Bot, c telebot.Context) error
		want    string
	}{
		{
			name: "subscribe",
			setup: func(subs *mocks.SubscriptionRepository) {
				subs.On("Subscribe", mock.Anything, int64(42), "tester").Return(true, nil).Once()
			},
			handler: (*Bot).subscribeHandler,
			want:    "Subscribed.",
		},
		{
			name: "subscribe twice",
			setup: func(subs *mocks.SubscriptionRepository) {
				subs.On("Subscribe", mock.Anything, int64(42), "tester").Return(false, nil).Once()
			},
			handler: (*Bot).subscribeHandler,
			want:    "already subscribed",
		},
		{
			name: "subscribe failure",
			setup: func(subs *mocks.SubscriptionRepository) {
				subs.On("Subscribe", mock.Anything, int64(42), "tester").Return(false, assert.AnError).Once()
			},
			handler: (*Bot).subscribeHandler,
			want:    "Could not subscribe",
		},
		{
			name: "unsubscribe",
			setup: func(subs *mocks.SubscriptionRepository) {
				subs.On("Unsubscribe", mock.Anything, int64(42)).Return(true, nil).Once()
			},
			handler: (*Bot).unsubscribeHandler,
			want:    "Unsubscribed.",
		},
		{
			name: "unsubscribe unknown chat",
			setup: func(subs *mocks.SubscriptionRepository) {
				subs.On("Unsubscribe", mock.Anything, int64(42)).Return(false, nil).Once()
			},
			handler: (*Bot).unsubscribeHandler,
			want:    "not subscribed",
		},
		{
			name: "unsubscribe failure",
			setup: func(subs *mocks.SubscriptionRepository) {
				subs.On("Unsubscribe", mock.Anything, int64(42)).Return(false, assert.AnError).Once()
			},
			handler: (*Bot).unsubscribeHandler,
			want:    "Could not unsubscribe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			subs := mocks.NewSubscriptionRepository(t)
			tt.setup(subs)
			testBot := &Bot{log: discard(), subs: subs}
			c := &fakeContext{}

			require.NoError(t, tt.handler(testBot, c))
			assert.Contains(t, c.lastText(t), tt.want)
		})
	}
}

func TestPhoneHandler(t *testing.T) {
	t.Parallel()

	original := 64999.0
	phone := &models.Phone{
		Name: "Galaxy A55", Slug: "galaxy-a55", CurrentPrice: 54999, OriginalPrice: &original,
		Processor: "Exynos 1480", DisplaySize: "6.6 inches", DisplayType: "Super AMOLED",
	}

	phones := mocks.NewPhoneRepository(t)
	phones.On("GetPhoneBySlug", mock.Anything, "galaxy-a55").Return(phone, nil).Once()
	phones.On("GetPhoneBySlug", mock.Anything, "nope").Return(nil, repository.ErrPhoneNotFound).Once()

	testBot := Bot{log: discard(), phones: phones}

	c := &fakeContext{}
	require.NoError(t, testBot.phoneHandler(c))
	assert.Equal(t, "Usage: /phone <slug>", c.lastText(t))

	c = &fakeContext{args: []string{"Galaxy-A55"}}
	require.NoError(t, testBot.phoneHandler(c))
	text := c.lastText(t)
	assert.Contains(t, text, "Rs. 54999 (was Rs. 64999)")
	assert.Contains(t, text, "Display: 6.6 inches Super AMOLED")
	assert.NotContains(t, text, "RAM:")

	c = &fakeContext{args: []string{"nope"}}
	require.NoError(t, testBot.phoneHandler(c))
	assert.Equal(t, "Phone not found.", c.lastText(t))
}

func TestSearchHandler(t *testing.T) {
	t.Parallel()

	phones := mocks.NewPhoneRepository(t)
	phones.On("ListPhones", mock.Anything, models.PhoneFilter{Query: "redmi note", Sort: models.SortPriceLow, Limit: 10}).
		Return([]models.Phone{{Name: "Redmi Note 13", Slug: "redmi-note-13", CurrentPrice: 44999}}, nil).Once()
	phones.On("ListPhones", mock.Anything, mock.Anything).Return([]models.Phone{}, nil).Once()

	testBot := Bot{log: discard(), phones: phones}

	c := &fakeContext{args: []string{"redmi", "note"}}
	require.NoError(t, testBot.searchHandler(c))
	assert.Equal(t, "Redmi Note 13 - Rs. 44999 (/phone redmi-note-13)", c.lastText(t))

	c = &fakeContext{args: []string{"nokia"}}
	require.NoError(t, testBot.searchHandler(c))
	assert.Equal(t, `Nothing matches "nokia".`, c.lastText(t))
}

func TestRecommendHandler(t *testing.T) {
	t.Parallel()

	rec := mocks.NewRecommender(t)
	rec.On("Recommend", mock.Anything, 50000.0, []string{"camera"}).Return(&models.Recommendations{
		Recommendations: []models.Recommendation{{
			PhoneID: "p1", Rank: 1, MatchScore: 91, Reason: "Great sensor.",
			Phone: &models.Phone{Name: "Pixel 7a", CurrentPrice: 49999},
		}},
		Summary: "One clear pick.",
	}, nil).Once()
	rec.On("Recommend", mock.Anything, 20000.0, []string{}).
		Return(nil, &llm.StatusError{Provider: "Lovable AI", StatusCode: 429}).Once()

	testBot := Bot{log: discard(), recommender: rec}

	c := &fakeContext{args: []string{"abc"}}
	require.NoError(t, testBot.recommendHandler(c))
	assert.Contains(t, c.lastText(t), "Budget must be a positive number")

	c = &fakeContext{args: []string{"50,000", "camera"}}
	require.NoError(t, testBot.recommendHandler(c))
	assert.Equal(t, "1. Pixel 7a - Rs. 49999 (match 91%)\nGreat sensor.\n\nOne clear pick.", c.lastText(t))

	c = &fakeContext{args: []string{"20000"}}
	require.NoError(t, testBot.recommendHandler(c))
	assert.Equal(t, llm.ErrRateLimited.Error(), c.lastText(t))
}

func TestNotify(t *testing.T) {
	t.Parallel()

	changes := &models.CatalogChanges{
		Added: []models.Listing{{Name: "Spark 20", Price: 18999}},
		Changed: []models.PriceChange{
			{Old: models.Listing{Name: "Galaxy A55", Price: 58999}, New: models.Listing{Name: "Galaxy A55", Price: 54999}},
			{Old: models.Listing{Name: "Redmi 13C", Price: 27999}, New: models.Listing{Name: "Redmi 13C", Price: 29999}},
		},
		Removed: []models.Listing{{Name: "Nokia 3310"}},
	}
	want := "New phones:\n+ Spark 20 - Rs. 18999\n\nPrice drops:\n- Galaxy A55: Rs. 58999 -> Rs. 54999"

	t.Run("broadcasts to subscribers", func(t *testing.T) {
		t.Parallel()

		mockBot := mocks.NewAPI(t)
		subs := mocks.NewSubscriptionRepository(t)
		subs.On("SubscribedChats", mock.Anything).Return([]int64{1, 2}, nil).Once()
		mockBot.On("Send", telebot.ChatID(1), want).Return(&telebot.Message{}, nil).Once()
		mockBot.On("Send", telebot.ChatID(2), want).Return(nil, assert.AnError).Once()

		testBot := Bot{bot: mockBot, log: discard(), subs: subs}

		err := testBot.Notify(t.Context(), changes)
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("large catalog is split into messages", func(t *testing.T) {
		t.Parallel()

		added := make([]models.Listing, 500)
		for i := range added {
			added[i] = models.Listing{Name: fmt.Sprintf("Samsung Galaxy A%03d 5G (8GB/256GB)", i), Price: 54999}
		}

		var sent []string
		mockBot := mocks.NewAPI(t)
		subs := mocks.NewSubscriptionRepository(t)
		subs.On("SubscribedChats", mock.Anything).Return([]int64{1}, nil).Once()
		mockBot.On("Send", telebot.ChatID(1), mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) { sent = append(sent, args.String(1)) }).
			Return(&telebot.Message{}, nil)

		testBot := Bot{bot: mockBot, log: discard(), subs: subs}
		require.NoError(t, testBot.Notify(t.Context(), &models.CatalogChanges{Added: added}))

		require.Greater(t, len(sent), 1)
		for _, msg := range sent {
			assert.LessOrEqual(t, utf8.RuneCountInString(msg), maxMessageLen)
		}
		joined := strings.Join(sent, "\n")
		assert.Equal(t, 501, strings.Count(joined, "\n")+1, "header plus every phone")
		assert.Contains(t, joined, "+ Samsung Galaxy A499 5G (8GB/256GB) - Rs. 54999")
	})

	t.Run("price increases alone are not announced", func(t *testing.T) {
		t.Parallel()

		testBot := Bot{bot: mocks.NewAPI(t), log: discard(), subs: mocks.NewSubscriptionRepository(t)}

		err := testBot.Notify(t.Context(), &models.CatalogChanges{Changed: changes.Changed[1:]})
		require.NoError(t, err)
	})

	t.Run("subscription lookup failure", func(t *testing.T) {
		t.Parallel()

		subs := mocks.NewSubscriptionRepository(t)
		subs.On("SubscribedChats", mock.Anything).Return(nil, assert.AnError).Once()

		testBot := Bot{bot: mocks.NewAPI(t), log: discard(), subs: subs}

		require.ErrorIs(t, testBot.Notify(t.Context(), changes), assert.AnError)
	})
}

func TestSplitMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"short"}, splitMessage("short", 10))
	assert.Equal(t, []string{"aaaa\nbbbb", "cccc"}, splitMessage("aaaa\nbbbb\ncccc", 10))
	assert.Equal(t, []string{"ёёёё", "ёё"}, splitMessage("ёёёёёё", 4), "long line is cut by runes")
	assert.Empty(t, splitMessage("", 10))
}
