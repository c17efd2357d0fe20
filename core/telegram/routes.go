package telegram

import (
	"context"
	"strconv"
	"time"

	"prepbot/core/logger"
	tghelpers "prepbot/core/telegram/helpers"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// Core is the conversational engine behind the transport. It takes one
// inbound message and returns the reply text; all state lives behind it.
type Core interface {
	HandleMessage(ctx context.Context, userID, text string) string
}

// slashAliases maps slash commands to the canonical phrases the engine
// understands, so /practice and "practice" behave identically.
var slashAliases = map[string]struct {
	phrase      string
	description string
}{
	"/start":    {"start", "Start or restart the conversation"},
	"/menu":     {"menu", "Open the main menu"},
	"/help":     {"help", "Show what I understand"},
	"/subjects": {"subjects", "Pick a subject to study"},
	"/practice": {"practice", "Start a practice run"},
	"/report":   {"report", "Show my progress report"},
	"/exam":     {"exam prep", "Plan for an upcoming exam"},
	"/homework": {"homework", "Homework help"},
	"/friends":  {"friends", "Manage study buddies"},
}

// DefaultRegistry builds the slash-command registry over the engine.
func DefaultRegistry(core Core, maxReply int) *Registry {
	reg := NewRegistry()
	for name, alias := range slashAliases {
		phrase := alias.phrase
		reg.RegisterCommand(name, Command{
			Description: alias.description,
			Handler: func(c tele.Context) error {
				return dispatchText(c, core, phrase, maxReply)
			},
		})
	}
	return reg
}

// TextRoutes binds the free-text endpoint: slash commands resolve through
// the registry, everything else goes straight to the engine.
func TextRoutes(core Core, reg *Registry, maxReply int) []Route {
	handler := func(c tele.Context) error {
		text := c.Text()
		if reg != nil {
			if _, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				return cmd.Handler(c)
			}
		}
		return dispatchText(c, core, text, maxReply)
	}

	// Global middlewares from RunOptions already wrap every route.
	return []Route{
		{Endpoint: tele.OnText, Handler: handler},
	}
}

// dispatchText runs one message through the engine and sends the reply.
func dispatchText(c tele.Context, core Core, text string, maxReply int) error {
	start := time.Now()
	ctx := tghelpers.WithHandler(c, "dispatch")

	sender := c.Sender()
	if sender == nil {
		return nil
	}
	userID := strconv.FormatInt(sender.ID, 10)

	reply := core.HandleMessage(ctx, userID, text)
	if reply == "" {
		return nil
	}

	logger.Debug(ctx, "tg", "dispatch.done",
		slog.Int("reply_len", len(reply)),
		slog.Duration("took", logger.RoundMS(time.Since(start))),
	)
	return tghelpers.SendText(c, TruncateReply(reply, maxReply))
}
