package helpers

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"prepbot/core/logger"
	"prepbot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

var globalOutbox atomic.Pointer[sender.Outbox]

// SetOutbox wires the asynchronous sender used by helper functions.
func SetOutbox(o *sender.Outbox) {
	globalOutbox.Store(o)
}

func currentOutbox() *sender.Outbox {
	return globalOutbox.Load()
}

func sendAsync(c tele.Context, action, endpoint string, run func() error) error {
	out := currentOutbox()
	if out == nil {
		return run()
	}

	ctx := BuildContext(c)
	if err := out.Enqueue(ctx, action, endpoint, run); err != nil {
		if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
			logger.Warn(ctx, "tg.sender", "queue.fallback",
				slog.String("action", action),
				slog.String("endpoint", endpoint),
				slog.String("err", err.Error()),
			)
			return run()
		}
		return err
	}
	return nil
}

// SendText sends raw text (no parse mode) to the current recipient.
func SendText(c tele.Context, text string, opts ...*tele.SendOptions) error {
	var sendOpts *tele.SendOptions
	if len(opts) > 0 {
		sendOpts = opts[0]
	}
	return sendAsync(c, "send.text", "sendMessage", func() error {
		if sendOpts != nil {
			return c.Send(text, sendOpts)
		}
		return c.Send(text)
	})
}
