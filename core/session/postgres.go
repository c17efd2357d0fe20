package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"log/slog"

	"prepbot/core/logger"
)

type postgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore returns a Store backed by the sessions table.
func NewPostgresStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

const sessionColumns = `id, current_menu, expecting_input, active_question_id, flow_context, display_name, grade, created_at, updated_at`

func (s *postgresStore) Get(ctx context.Context, id string) (*UserSession, error) {
	var sess UserSession
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`
	if err := s.db.GetContext(ctx, &sess, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session get: %w", err)
	}
	return &sess, nil
}

// Ensure inserts the registration entry state on first contact. The insert
// is a no-op when the row already exists, which keeps it idempotent under
// concurrent first-contact requests.
func (s *postgresStore) Ensure(ctx context.Context, id string) (*UserSession, error) {
	query := `
		INSERT INTO sessions (id, current_menu)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING`
	if _, err := s.db.ExecContext(ctx, query, id, MenuRegistrationName); err != nil {
		return nil, fmt.Errorf("session ensure: %w", err)
	}
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.DB.Debug("session ensured",
		slog.String("event", "session.ensure"),
		slog.String("session_id", id),
		slog.String("menu", string(sess.CurrentMenu)),
	)
	return sess, nil
}

// Patch applies the whole patch as one UPDATE statement so a request never
// leaves a partially written session behind.
func (s *postgresStore) Patch(ctx context.Context, id string, p Patch) (*UserSession, error) {
	if p.IsZero() {
		return s.Get(ctx, id)
	}

	sets := make([]string, 0, 7)
	args := make([]any, 0, 8)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if p.CurrentMenu != nil {
		add("current_menu", string(*p.CurrentMenu))
	}
	if p.ExpectingInput != nil {
		add("expecting_input", *p.ExpectingInput)
	}
	if p.ActiveQuestionID != nil {
		add("active_question_id", *p.ActiveQuestionID)
	}
	if p.FlowContext != nil {
		add("flow_context", []byte(*p.FlowContext))
	}
	if p.DisplayName != nil {
		add("display_name", *p.DisplayName)
	}
	if p.Grade != nil {
		add("grade", *p.Grade)
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE sessions SET %s WHERE id = $%d RETURNING `+sessionColumns,
		strings.Join(sets, ", "), len(args),
	)

	var sess UserSession
	if err := s.db.GetContext(ctx, &sess, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session patch: %w", err)
	}
	return &sess, nil
}
