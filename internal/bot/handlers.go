package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Houeta/phone-insights/internal/llm"
	"github.com/Houeta/phone-insights/internal/models"
	"github.com/Houeta/phone-insights/internal/parser"
	"github.com/Houeta/phone-insights/internal/repository"
	"gopkg.in/telebot.v4"
)

const searchLimit = 10

const helpText = `Hello! I track the phone catalog.

/phone <slug> - phone details
/search <name> - find phones
/recommend <budget> [preferences] - AI picks for your budget
/subscribe - get new phones and price drops
/unsubscribe - stop notifications`

func handlerContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), handlerTimeout)
}

// startHandler process command /start.
func (b *Bot) startHandler(c telebot.Context) error {
	b.log.Info("User started the bot", "username", c.Sender().Username)

	if err := c.Send(helpText); err != nil {
		return fmt.Errorf("failed to send greeting message: %w", err)
	}

	return nil
}

func (b *Bot) subscribeHandler(c telebot.Context) error {
	ctx, cancel := handlerContext()
	defer cancel()

	created, err := b.subs.Subscribe(ctx, c.Chat().ID, c.Sender().Username)
	if err != nil {
		b.log.ErrorContext(ctx, "Failed to subscribe chat", "chat_id", c.Chat().ID, "error", err)
		return c.Send("Could not subscribe you, please try again later.")
	}
	if !created {
		return c.Send("You are already subscribed.")
	}

	return c.Send("Subscribed. You will hear about new phones and price drops.")
}

func (b *Bot) unsubscribeHandler(c telebot.Context) error {
	ctx, cancel := handlerContext()
	defer cancel()

	removed, err := b.subs.Unsubscribe(ctx, c.Chat().ID)
	if err != nil {
		b.log.ErrorContext(ctx, "Failed to unsubscribe chat", "chat_id", c.Chat().ID, "error", err)
		return c.Send("Could not unsubscribe you, please try again later.")
	}
	if !removed {
		return c.Send("You were not subscribed.")
	}

	return c.Send("Unsubscribed.")
}

func (b *Bot) phoneHandler(c telebot.Context) error {
	args := c.Args()
	if len(args) == 0 {
		return c.Send("Usage: /phone <slug>")
	}

	ctx, cancel := handlerContext()
	defer cancel()

	phone, err := b.phones.GetPhoneBySlug(ctx, strings.ToLower(args[0]))
	switch {
	case errors.Is(err, repository.ErrPhoneNotFound):
		return c.Send("Phone not found.")
	case err != nil:
		b.log.ErrorContext(ctx, "Failed to get phone", "slug", args[0], "error", err)
		return c.Send("Something went wrong, please try again later.")
	}

	return c.Send(formatPhone(phone))
}

func (b *Bot) searchHandler(c telebot.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args(), " "))
	if query == "" {
		return c.Send("Usage: /search <name>")
	}

	ctx, cancel := handlerContext()
	defer cancel()

	phones, err := b.phones.ListPhones(ctx, models.PhoneFilter{
		Query: query,
		Sort:  models.SortPriceLow,
		Limit: searchLimit,
	})
	if err != nil {
		b.log.ErrorContext(ctx, "Failed to search phones", "query", query, "error", err)
		return c.Send("Something went wrong, please try again later.")
	}
	if len(phones) == 0 {
		return c.Send(fmt.Sprintf("Nothing matches %q.", query))
	}

	return c.Send(formatPhoneList(phones))
}

func (b *Bot) recommendHandler(c telebot.Context) error {
	args := c.Args()
	if len(args) == 0 {
		return c.Send("Usage: /recommend <budget> [preferences]")
	}

	budget, ok := parser.ParsePrice(args[0])
	if !ok || budget <= 0 {
		return c.Send("Budget must be a positive number, e.g. /recommend 50000 camera battery")
	}

	ctx, cancel := handlerContext()
	defer cancel()

	recs, err := b.recommender.Recommend(ctx, budget, args[1:])
	switch {
	case errors.Is(err, llm.ErrRateLimited), errors.Is(err, llm.ErrCreditsExhausted):
		return c.Send(rootMessage(err))
	case err != nil:
		b.log.ErrorContext(ctx, "Failed to recommend phones", "budget", budget, "error", err)
		return c.Send("Could not get recommendations right now, please try again later.")
	}

	return c.Send(formatRecommendations(recs))
}

// rootMessage returns the message of the innermost sentinel err wraps.
func rootMessage(err error) string {
	for _, sentinel := range []error{llm.ErrRateLimited, llm.ErrCreditsExhausted} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
