package flows

import (
	"context"
	"errors"
	"fmt"

	"prepbot/core/command"
	"prepbot/core/dispatch"
	"prepbot/core/question"
	"prepbot/core/session"
)

func (f *Flows) handlePractice(ctx context.Context, sess *session.UserSession, cmd command.Command) (dispatch.Result, error) {
	switch cmd.Action {
	case "start":
		return f.startPractice(ctx, sess)
	case "continue":
		return f.continuePractice(ctx, sess)
	case "stop":
		pc, _ := decodePractice(sess.FlowContext)
		return f.closePractice(pc, "Practice finished."), nil
	default:
		return f.startPractice(ctx, sess)
	}
}

// startPractice opens a fresh run scoped to the user's last topic, or the
// whole bank when there is none.
func (f *Flows) startPractice(ctx context.Context, sess *session.UserSession) (dispatch.Result, error) {
	subject, topic, _ := lastScope(sess.FlowContext)
	pc := PracticeContext{Subject: subject, Topic: topic}
	return f.servePracticeQuestion(ctx, pc,
		fmt.Sprintf("Let's practice! I'll give you %d questions in a row.", f.PracticeBatch))
}

func (f *Flows) continuePractice(ctx context.Context, sess *session.UserSession) (dispatch.Result, error) {
	pc, ok := decodePractice(sess.FlowContext)
	if !ok {
		return f.startPractice(ctx, sess)
	}
	// A new batch begins: keep the scope, reset the counters.
	pc.Served = 0
	pc.Correct = 0
	return f.servePracticeQuestion(ctx, pc, "Back at it!")
}

func (f *Flows) servePracticeQuestion(ctx context.Context, pc PracticeContext, intro string) (dispatch.Result, error) {
	q, err := f.Questions.Random(ctx, pc.Subject, pc.Topic)
	if err != nil {
		if errors.Is(err, question.ErrNoQuestions) {
			return dispatch.Result{
				Reply: "I don't have practice questions for that yet.\n\n" + renderMenu(session.MenuMain),
				Patch: session.Patch{CurrentMenu: session.MenuRef(session.MenuMain)},
			}, nil
		}
		return dispatch.Result{}, err
	}

	blob := encodeContext(flowPractice, pc)
	return dispatch.Result{
		Reply: intro + "\n\n" + q.Render(),
		Patch: session.Patch{
			CurrentMenu:      session.MenuRef(session.MenuPracticeActive),
			ActiveQuestionID: session.StringRef(q.ID),
			FlowContext:      session.ContextRef(blob),
		},
	}, nil
}

// closePractice ends the run, reports the score, and returns to the main menu.
func (f *Flows) closePractice(pc PracticeContext, lead string) dispatch.Result {
	summary := lead
	if pc.Served > 0 {
		summary = fmt.Sprintf("%s You answered %d of %d correctly.", lead, pc.Correct, pc.Served)
	}
	return dispatch.Result{
		Reply: summary + "\n\n" + renderMenu(session.MenuMain),
		Patch: session.Patch{
			CurrentMenu:      session.MenuRef(session.MenuMain),
			ActiveQuestionID: session.StringRef(""),
			FlowContext:      clearedContext(),
		},
	}
}
