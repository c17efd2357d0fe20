// Package question serves the quiz question bank and records attempts.
package question

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// ErrNoQuestions is returned when the bank has nothing for the requested scope.
var ErrNoQuestions = errors.New("question: no questions available")

// Question is one multiple-choice question. Correct holds the letter A-D.
type Question struct {
	ID          string `db:"id"`
	Subject     string `db:"subject"`
	Topic       string `db:"topic"`
	Prompt      string `db:"prompt"`
	OptionA     string `db:"option_a"`
	OptionB     string `db:"option_b"`
	OptionC     string `db:"option_c"`
	OptionD     string `db:"option_d"`
	Correct     string `db:"correct"`
	Explanation string `db:"explanation"`
}

// Render formats the question with its lettered options for the chat.
func (q *Question) Render() string {
	var b strings.Builder
	b.WriteString(q.Prompt)
	b.WriteString("\n\nA) ")
	b.WriteString(q.OptionA)
	b.WriteString("\nB) ")
	b.WriteString(q.OptionB)
	b.WriteString("\nC) ")
	b.WriteString(q.OptionC)
	b.WriteString("\nD) ")
	b.WriteString(q.OptionD)
	return b.String()
}

// Grade reports whether the validated answer letter is correct.
func (q *Question) Grade(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), q.Correct)
}

// SubjectStats aggregates a user's attempts per subject for the report flow.
type SubjectStats struct {
	Subject  string `db:"subject"`
	Attempts int    `db:"attempts"`
	Correct  int    `db:"correct"`
}

// Store reads questions and writes attempts.
type Store struct {
	db *sqlx.DB
}

// NewStore returns a question store over the questions and attempts tables.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

const questionColumns = `id, subject, topic, prompt, option_a, option_b, option_c, option_d, correct, explanation`

// ByID fetches one question.
func (s *Store) ByID(ctx context.Context, id string) (*Question, error) {
	var q Question
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`
	if err := s.db.GetContext(ctx, &q, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoQuestions
		}
		return nil, fmt.Errorf("question by id: %w", err)
	}
	return &q, nil
}

// Random picks a random question for the subject, optionally narrowed to a
// topic. An empty subject draws from the whole bank.
func (s *Store) Random(ctx context.Context, subject, topic string) (*Question, error) {
	var (
		q     Question
		query string
		args  []any
	)
	switch {
	case subject != "" && topic != "":
		query = `SELECT ` + questionColumns + ` FROM questions WHERE subject = $1 AND topic = $2 ORDER BY random() LIMIT 1`
		args = []any{subject, topic}
	case subject != "":
		query = `SELECT ` + questionColumns + ` FROM questions WHERE subject = $1 ORDER BY random() LIMIT 1`
		args = []any{subject}
	default:
		query = `SELECT ` + questionColumns + ` FROM questions ORDER BY random() LIMIT 1`
	}
	if err := s.db.GetContext(ctx, &q, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoQuestions
		}
		return nil, fmt.Errorf("question random: %w", err)
	}
	return &q, nil
}

// RecordAttempt stores one graded answer for later reporting.
func (s *Store) RecordAttempt(ctx context.Context, userID, questionID string, correct bool) error {
	query := `INSERT INTO attempts (user_id, question_id, correct) VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, userID, questionID, correct); err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

// Stats aggregates attempts per subject for one user.
func (s *Store) Stats(ctx context.Context, userID string) ([]SubjectStats, error) {
	var stats []SubjectStats
	query := `
		SELECT q.subject,
		       count(*)                           AS attempts,
		       count(*) FILTER (WHERE a.correct)  AS correct
		FROM attempts a
		JOIN questions q ON q.id = a.question_id
		WHERE a.user_id = $1
		GROUP BY q.subject
		ORDER BY q.subject`
	if err := s.db.SelectContext(ctx, &stats, query, userID); err != nil {
		return nil, fmt.Errorf("attempt stats: %w", err)
	}
	return stats, nil
}
