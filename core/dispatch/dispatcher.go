// Package dispatch routes parsed commands to their handlers and owns the
// one-read / one-write session contract of a request.
package dispatch

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"log/slog"

	"prepbot/core/command"
	"prepbot/core/logger"
	"prepbot/core/session"
)

// GenericFailureReply is what the user sees when a collaborator fails.
// The session is left untouched in that case.
const GenericFailureReply = "Sorry, something went wrong on our side. Please try again in a moment."

// Result is a handler's outcome: the reply text and the merged session
// patch. Handlers that chain states internally must fold the chain into
// this single patch; the dispatcher persists it exactly once.
type Result struct {
	Reply string
	Patch session.Patch
}

// HandlerFunc processes one command for one user. Errors are collaborator
// failures; they are caught at the dispatcher boundary.
type HandlerFunc func(ctx context.Context, sess *session.UserSession, cmd command.Command) (Result, error)

// Dispatcher parses inbound text and routes the resulting command to the
// handler registered for its type.
type Dispatcher struct {
	store    session.Store
	parser   *command.Parser
	handlers map[command.Type]HandlerFunc
	fallback HandlerFunc
}

// New creates a dispatcher bound to a session store and parser.
func New(store session.Store, parser *command.Parser) *Dispatcher {
	return &Dispatcher{
		store:    store,
		parser:   parser,
		handlers: make(map[command.Type]HandlerFunc),
	}
}

// Register binds a handler to a command type. Unknown types and duplicates
// are configuration errors.
func (d *Dispatcher) Register(t command.Type, h HandlerFunc) error {
	if h == nil {
		return fmt.Errorf("dispatch: nil handler for %q", t)
	}
	if !command.KnownType(t) {
		return fmt.Errorf("dispatch: unknown command type %q", t)
	}
	if _, exists := d.handlers[t]; exists {
		return fmt.Errorf("dispatch: handler already registered for %q", t)
	}
	d.handlers[t] = h
	return nil
}

// SetFallback installs the handler used for routing gaps: command types
// with no registered handler degrade to it instead of erroring.
func (d *Dispatcher) SetFallback(h HandlerFunc) {
	d.fallback = h
}

// Registered reports whether a handler exists for the type.
func (d *Dispatcher) Registered(t command.Type) bool {
	_, ok := d.handlers[t]
	return ok
}

// HandleMessage is the per-message unit of work: ensure the session exists,
// read it once, parse, dispatch, and persist the handler's patch in a
// single write. Collaborator failures never escape; they produce a safe
// generic reply and leave the session unchanged.
func (d *Dispatcher) HandleMessage(ctx context.Context, userID, text string) (reply string) {
	start := time.Now()

	var cmd command.Command
	var failure error
	defer func() {
		if r := recover(); r != nil {
			logger.CORE.Error("handler panic",
				slog.String("event", "dispatch.panic"),
				slog.String("user_id", userID),
				slog.Any("err", r),
				slog.String("stack", string(debug.Stack())),
			)
			reply = GenericFailureReply
			failure = fmt.Errorf("panic: %v", r)
		}
		logger.CORE.Debug("message handled",
			slog.String("event", "dispatch.done"),
			slog.String("command", string(cmd.Type)),
			slog.String("user_id", userID),
			slog.String("input", logger.SanitizeLimit(text, 128)),
			slog.String("status", logger.Status(failure)),
			slog.Duration("duration", logger.Took(start)),
		)
	}()

	sess, err := d.store.Ensure(ctx, userID)
	if err != nil {
		logger.CORE.Error("session load failed",
			slog.String("event", "dispatch.session"),
			slog.String("user_id", userID),
			slog.String("err", err.Error()),
		)
		failure = err
		return GenericFailureReply
	}

	cmd = d.parser.Parse(text, contextFor(sess))

	handler, ok := d.handlers[cmd.Type]
	if !ok {
		// Routing gap: an internal defect, logged, resolved by the same
		// fallback as unrecognized input so the user never sees it.
		logger.CORE.Error("routing gap",
			slog.String("event", "dispatch.gap"),
			slog.String("command", string(cmd.Type)),
			slog.String("user_id", userID),
		)
		handler = d.fallback
		if handler == nil {
			failure = fmt.Errorf("dispatch: no handler or fallback for %q", cmd.Type)
			return GenericFailureReply
		}
	}

	res, err := handler(ctx, sess, cmd)
	if err != nil {
		logger.CORE.Error("handler failed",
			slog.String("event", "dispatch.handler"),
			slog.String("command", string(cmd.Type)),
			slog.String("user_id", userID),
			slog.String("err", err.Error()),
			slog.Duration("duration", logger.Took(start)),
		)
		failure = err
		return GenericFailureReply
	}

	// A pending free-text expectation belongs to the flow that set it.
	// Any command other than the capture it is waiting for means the user
	// moved on, so the cleared flag rides the handler's own write.
	if sess.ExpectingInput != "" && cmd.Type != command.TypeFriendAdd && res.Patch.ExpectingInput == nil {
		res.Patch.ExpectingInput = session.StringRef("")
	}

	if !res.Patch.IsZero() {
		if _, err := d.store.Patch(ctx, userID, res.Patch); err != nil {
			logger.CORE.Error("session write failed",
				slog.String("event", "dispatch.patch"),
				slog.String("command", string(cmd.Type)),
				slog.String("user_id", userID),
				slog.String("err", err.Error()),
			)
			failure = err
			return GenericFailureReply
		}
	}

	return res.Reply
}

// contextFor projects the session into the parser's read-only view.
func contextFor(s *session.UserSession) command.ParseContext {
	expectingUsername := ""
	if s.ExpectingInput == session.InputFriendUsername {
		expectingUsername = s.ExpectingInput
	}
	return command.ParseContext{
		CurrentMenu:                s.CurrentMenu,
		ExpectingAnswer:            s.ActiveQuestionID != "",
		HasActiveQuestion:          s.ActiveQuestionID != "",
		ExpectingUsernameKind:      expectingUsername,
		ExpectingRegistrationInput: s.CurrentMenu == session.MenuRegistrationName,
		ExpectingExamDate:          s.CurrentMenu == session.MenuExamPrepDate,
	}
}
