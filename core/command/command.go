// Package command classifies raw inbound text into exactly one typed
// Command, relative to a read-only projection of the user's session.
package command

import "prepbot/core/session"

// Type tags a parsed command. The set is closed; the dispatcher refuses to
// register handlers for anything else.
type Type string

const (
	TypeAnswer          Type = "answer"
	TypeInvalidAnswer   Type = "invalid_answer"
	TypeMainMenu        Type = "main_menu"
	TypeWelcomeMenu     Type = "welcome_menu"
	TypeHelp            Type = "help"
	TypeShowSubjects    Type = "show_subjects"
	TypeShowTopics      Type = "show_topics"
	TypePickTopic       Type = "pick_topic"
	TypeNextQuestion    Type = "next_question"
	TypeExplain         Type = "explain"
	TypePractice        Type = "practice"
	TypeHomework        Type = "homework"
	TypeExamPrep        Type = "exam_prep"
	TypeConfidenceBoost Type = "confidence_boost"
	TypeStressRelief    Type = "stress_relief"
	TypeReport          Type = "report"
	TypeFriends         Type = "friends"
	TypeFriendAdd       Type = "friend_add"
	TypeRegistration    Type = "registration"
	TypeHook            Type = "hook"
	TypeHelpWith        Type = "help_with"
	TypeChangeTime      Type = "change_time"
	TypeInvalidOption   Type = "invalid_option"
	TypeUnrecognized    Type = "unrecognized"
)

// AllTypes enumerates the closed command set for registration checks.
var AllTypes = []Type{
	TypeAnswer, TypeInvalidAnswer, TypeMainMenu, TypeWelcomeMenu, TypeHelp,
	TypeShowSubjects, TypeShowTopics, TypePickTopic, TypeNextQuestion,
	TypeExplain, TypePractice, TypeHomework, TypeExamPrep,
	TypeConfidenceBoost, TypeStressRelief, TypeReport, TypeFriends,
	TypeFriendAdd, TypeRegistration, TypeHook, TypeHelpWith, TypeChangeTime,
	TypeInvalidOption, TypeUnrecognized,
}

// KnownType reports whether t belongs to the closed command set.
func KnownType(t Type) bool {
	for _, known := range AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Command is the parsed, typed representation of one inbound message. It
// lives for a single request and is never persisted.
type Command struct {
	Type Type

	// Answer holds the validated letter for TypeAnswer.
	Answer string
	// MenuChoice is the numeric choice that produced a menu-derived command.
	MenuChoice int
	// Action is a per-flow verb such as "start", "continue", "stop",
	// "list", "add", "set_date", "grade".
	Action string
	// Subject and Topic scope question-serving commands.
	Subject string
	Topic   string
	// Target carries free-form arguments: a username, a hook type, a
	// help-with topic, a date string.
	Target string
	// ValidRange is the human-readable range descriptor for TypeInvalidOption.
	ValidRange string
	// Correction is the user-facing fix-it message for TypeInvalidAnswer.
	Correction string

	// OriginalInput is the untouched user text, retained for error
	// messages and logging.
	OriginalInput string
}

// ParseContext is the read-only projection of the session consulted by the
// parser. It is derived once per request; the parser itself performs no I/O.
type ParseContext struct {
	CurrentMenu                session.Menu
	ExpectingAnswer            bool
	HasActiveQuestion          bool
	ExpectingUsernameKind      string
	ExpectingRegistrationInput bool
	ExpectingExamDate          bool
}

// MenuTable is the parser's view of the menu transition table.
type MenuTable interface {
	// Resolve maps (menu, choice) to the command template stamped with the
	// choice, reporting whether the pair is mapped.
	Resolve(menu session.Menu, choice int) (Command, bool)
	// RangeDescriptor returns the menu's human-readable valid range,
	// reporting whether the menu has a table row.
	RangeDescriptor(menu session.Menu) (string, bool)
	// WidestRange is the fallback descriptor used when an unknown menu tag
	// is encountered.
	WidestRange() string
}
