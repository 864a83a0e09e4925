package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Houeta/phone-insights/internal/models"
	"github.com/Houeta/phone-insights/internal/repository"
	"gopkg.in/telebot.v4"
)

const handlerTimeout = 90 * time.Second

// Bot contains the bot API instance and the services its commands use.
type Bot struct {
	bot         API
	log         *slog.Logger
	phones      repository.PhoneRepository
	subs        repository.SubscriptionRepository
	recommender Recommender
}

func NewBot(
	log *slog.Logger,
	token string,
	poller time.Duration,
	phones repository.PhoneRepository,
	subs repository.SubscriptionRepository,
	recommender Recommender,
) (*Bot, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: poller},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Authorized on account", "account", bot.Me.Username)

	botInstance := &Bot{bot: bot, log: log, phones: phones, subs: subs, recommender: recommender}

	botInstance.registerRoutes()

	return botInstance, nil
}

// Start launches the bot to listen for updates.
func (b *Bot) Start() {
	b.log.Info("Telegram bot is starting...")
	b.bot.Start()
}

// Stop gracefully stops the Telegram bot and logs the action.
func (b *Bot) Stop() {
	b.log.Info("Telegram bot is stopped...")
	b.bot.Stop()
}

// registerRoutes configures all routes (commands).
func (b *Bot) registerRoutes() {
	b.bot.Handle("/start", b.startHandler)
	b.bot.Handle("/subscribe", b.subscribeHandler)
	b.bot.Handle("/unsubscribe", b.unsubscribeHandler)
	b.bot.Handle("/phone", b.phoneHandler)
	b.bot.Handle("/search", b.searchHandler)
	b.bot.Handle("/recommend", b.recommendHandler)
}

// Notify sends new phones and price drops to every subscribed chat.
// Delivery failures are logged per chat.
func (b *Bot) Notify(ctx context.Context, changes *models.CatalogChanges) error {
	const opn = "bot.Notify"
	log := b.log.With("op", opn)

	msg := formatChanges(changes)
	if msg == "" {
		log.DebugContext(ctx, "Nothing worth announcing")
		return nil
	}

	chats, err := b.subs.SubscribedChats(ctx)
	if err != nil {
		return fmt.Errorf("%s: failed to get subscribed chats: %w", opn, err)
	}

	parts := splitMessage(msg, maxMessageLen)

	var errs []error
	for _, chatID := range chats {
		for _, part := range parts {
			if _, err = b.bot.Send(telebot.ChatID(chatID), part); err != nil {
				log.WarnContext(ctx, "Failed to notify chat", "chat_id", chatID, "error", err)
				errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
				break
			}
		}
	}
	log.InfoContext(ctx, "Sent catalog notification",
		"chats", len(chats), "messages", len(parts), "failed", len(errs))

	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", opn, errors.Join(errs...))
	}
	return nil
}
