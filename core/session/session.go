// Package session owns the persisted per-user conversation state: the
// current menu tag, pending free-text expectations, the active question
// reference, and the opaque per-flow context blob.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Menu names a conversational state. The set is closed: handlers and the
// transition table are checked against AllMenus so an invalid tag is a
// configuration error, not a runtime surprise.
type Menu string

const (
	// MenuNone indicates no menu-bearing state (e.g. while a question is active).
	MenuNone Menu = "none"
	// MenuWelcome is the top-level welcome menu.
	MenuWelcome Menu = "welcome"
	// MenuMain is the main navigation menu.
	MenuMain Menu = "main"
	// MenuSubject is the subject picker.
	MenuSubject Menu = "subject"
	// MenuMathTopics lists math topics.
	MenuMathTopics Menu = "math_topics"
	// MenuEnglishTopics lists english topics.
	MenuEnglishTopics Menu = "english_topics"
	// MenuPostAnswer is shown after an answer was graded.
	MenuPostAnswer Menu = "post_answer"
	// MenuPracticeActive is the in-practice menu.
	MenuPracticeActive Menu = "practice_active"
	// MenuRegistrationName captures the user's name as free text.
	MenuRegistrationName Menu = "registration_name"
	// MenuRegistrationGrade is the numeric grade picker.
	MenuRegistrationGrade Menu = "registration_grade"
	// MenuExamPrepSubject is the exam prep subject picker.
	MenuExamPrepSubject Menu = "exam_prep_subject"
	// MenuExamPrepDate captures the exam date as free text.
	MenuExamPrepDate Menu = "exam_prep_date"
	// MenuHomework is the homework flow menu.
	MenuHomework Menu = "homework"
	// MenuFriends is the friends flow menu.
	MenuFriends Menu = "friends"
)

// AllMenus enumerates every declared menu tag. Table completeness audits
// iterate this list.
var AllMenus = []Menu{
	MenuNone,
	MenuWelcome,
	MenuMain,
	MenuSubject,
	MenuMathTopics,
	MenuEnglishTopics,
	MenuPostAnswer,
	MenuPracticeActive,
	MenuRegistrationName,
	MenuRegistrationGrade,
	MenuExamPrepSubject,
	MenuExamPrepDate,
	MenuHomework,
	MenuFriends,
}

// FreeTextMenus are states that collect free text and are therefore exempt
// from transition table coverage. MenuNone carries no menu either.
var FreeTextMenus = map[Menu]bool{
	MenuNone:             true,
	MenuRegistrationName: true,
	MenuExamPrepDate:     true,
}

// Known reports whether m is a declared menu tag.
func Known(m Menu) bool {
	for _, known := range AllMenus {
		if m == known {
			return true
		}
	}
	return false
}

// InputFriendUsername marks that the next free-text message is a friend's username.
const InputFriendUsername = "username_for_friend"

// ErrNotFound is returned when no session exists for the requested user.
var ErrNotFound = errors.New("session: not found")

// UserSession is the persisted conversation state for one user. It is
// created on first contact and lives for the user's lifetime; it is
// mutated exactly once per inbound message via a merged Patch.
type UserSession struct {
	ID               string          `db:"id"`
	CurrentMenu      Menu            `db:"current_menu"`
	ExpectingInput   string          `db:"expecting_input"`
	ActiveQuestionID string          `db:"active_question_id"`
	FlowContext      json.RawMessage `db:"flow_context"`
	DisplayName      string          `db:"display_name"`
	Grade            int             `db:"grade"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

// Patch is a partial session update. Nil fields are left untouched; a
// pointer to the zero value clears the field. The store applies the whole
// patch as a single write so concurrent messages cannot interleave partial
// updates within one request.
type Patch struct {
	CurrentMenu      *Menu
	ExpectingInput   *string
	ActiveQuestionID *string
	FlowContext      *json.RawMessage
	DisplayName      *string
	Grade            *int
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return p.CurrentMenu == nil &&
		p.ExpectingInput == nil &&
		p.ActiveQuestionID == nil &&
		p.FlowContext == nil &&
		p.DisplayName == nil &&
		p.Grade == nil
}

// Apply merges the patch into a copy of s and returns it.
func (p Patch) Apply(s UserSession) UserSession {
	if p.CurrentMenu != nil {
		s.CurrentMenu = *p.CurrentMenu
	}
	if p.ExpectingInput != nil {
		s.ExpectingInput = *p.ExpectingInput
	}
	if p.ActiveQuestionID != nil {
		s.ActiveQuestionID = *p.ActiveQuestionID
	}
	if p.FlowContext != nil {
		s.FlowContext = *p.FlowContext
	}
	if p.DisplayName != nil {
		s.DisplayName = *p.DisplayName
	}
	if p.Grade != nil {
		s.Grade = *p.Grade
	}
	return s
}

// MenuRef returns a pointer suitable for Patch literals.
func MenuRef(m Menu) *Menu { return &m }

// StringRef returns a pointer suitable for Patch literals.
func StringRef(s string) *string { return &s }

// IntRef returns a pointer suitable for Patch literals.
func IntRef(i int) *int { return &i }

// ContextRef returns a pointer to a flow context blob for Patch literals.
func ContextRef(raw json.RawMessage) *json.RawMessage { return &raw }

// Store is the persistence contract for sessions. Ensure is the explicit
// session-creation entry action invoked once at the top of request
// handling; it is idempotent under concurrent first-contact requests.
type Store interface {
	Get(ctx context.Context, id string) (*UserSession, error)
	Ensure(ctx context.Context, id string) (*UserSession, error)
	Patch(ctx context.Context, id string, p Patch) (*UserSession, error)
}
