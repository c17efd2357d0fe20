// Package flows implements one handler per command type: menu display,
// registration, question serving and grading, practice, homework, exam
// prep, wellness flows, friends, and reporting.
package flows

import (
	"context"
	"fmt"

	"prepbot/core/command"
	"prepbot/core/dispatch"
	"prepbot/core/question"
)

// QuestionService is the question bank contract consumed by the flows.
type QuestionService interface {
	ByID(ctx context.Context, id string) (*question.Question, error)
	Random(ctx context.Context, subject, topic string) (*question.Question, error)
	RecordAttempt(ctx context.Context, userID, questionID string, correct bool) error
	Stats(ctx context.Context, userID string) ([]question.SubjectStats, error)
}

// FriendService persists friend links.
type FriendService interface {
	Add(ctx context.Context, userID, username string) error
	List(ctx context.Context, userID string) ([]string, error)
}

// Explainer produces explanations and topical help. The production
// implementation may call an LLM; the flows only see this contract.
type Explainer interface {
	Explain(ctx context.Context, q *question.Question) (string, error)
	HelpWith(ctx context.Context, topic string) (string, error)
}

// Flows wires all conversation handlers to their collaborators.
type Flows struct {
	Questions     QuestionService
	Friends       FriendService
	Explainer     Explainer
	PracticeBatch int
}

// New builds the flow set. A nil explainer falls back to the static one.
func New(questions QuestionService, friendStore FriendService, explainer Explainer, practiceBatch int) *Flows {
	if explainer == nil {
		explainer = StaticExplainer{}
	}
	if practiceBatch <= 0 {
		practiceBatch = 5
	}
	return &Flows{
		Questions:     questions,
		Friends:       friendStore,
		Explainer:     explainer,
		PracticeBatch: practiceBatch,
	}
}

// Register binds every command type to its handler and installs the
// unrecognized-input fallback. Every member of the closed command set gets
// a handler so routing gaps cannot occur in production wiring.
func (f *Flows) Register(d *dispatch.Dispatcher) error {
	handlers := map[command.Type]dispatch.HandlerFunc{
		command.TypeAnswer:          f.handleAnswer,
		command.TypeInvalidAnswer:   f.handleInvalidAnswer,
		command.TypeMainMenu:        f.handleMainMenu,
		command.TypeWelcomeMenu:     f.handleWelcomeMenu,
		command.TypeHelp:            f.handleHelp,
		command.TypeShowSubjects:    f.handleShowSubjects,
		command.TypeShowTopics:      f.handleShowTopics,
		command.TypePickTopic:       f.handlePickTopic,
		command.TypeNextQuestion:    f.handleNextQuestion,
		command.TypeExplain:         f.handleExplain,
		command.TypePractice:        f.handlePractice,
		command.TypeHomework:        f.handleHomework,
		command.TypeExamPrep:        f.handleExamPrep,
		command.TypeConfidenceBoost: f.handleConfidenceBoost,
		command.TypeStressRelief:    f.handleStressRelief,
		command.TypeReport:          f.handleReport,
		command.TypeFriends:         f.handleFriends,
		command.TypeFriendAdd:       f.handleFriendAdd,
		command.TypeRegistration:    f.handleRegistration,
		command.TypeHook:            f.handleHook,
		command.TypeHelpWith:        f.handleHelpWith,
		command.TypeChangeTime:      f.handleChangeTime,
		command.TypeInvalidOption:   f.handleInvalidOption,
		command.TypeUnrecognized:    f.handleUnrecognized,
	}
	for t, h := range handlers {
		if err := d.Register(t, h); err != nil {
			return fmt.Errorf("flows: %w", err)
		}
	}
	d.SetFallback(f.handleUnrecognized)
	return nil
}
