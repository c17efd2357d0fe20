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

// handleAnswer grades the active question. When a practice run is in
// progress it chains straight into the next question; either way the
// whole transition collapses into a single session patch.
func (f *Flows) handleAnswer(ctx context.Context, sess *session.UserSession, cmd command.Command) (dispatch.Result, error) {
	if sess.ActiveQuestionID == "" {
		// Can happen on a double-submit race; the first message already
		// graded and cleared the question.
		return f.handleUnrecognized(ctx, sess, cmd)
	}

	q, err := f.Questions.ByID(ctx, sess.ActiveQuestionID)
	if err != nil {
		return dispatch.Result{}, err
	}
	correct := q.Grade(cmd.Answer)
	if err := f.Questions.RecordAttempt(ctx, sess.ID, q.ID, correct); err != nil {
		return dispatch.Result{}, err
	}

	feedback := gradeFeedback(q, cmd.Answer, correct)

	if pc, ok := decodePractice(sess.FlowContext); ok {
		return f.advancePractice(ctx, pc, q, feedback, correct)
	}

	sc, _ := decodeStudy(sess.FlowContext)
	sc.LastQuestionID = q.ID
	if sc.Subject == "" {
		sc.Subject = q.Subject
		sc.Topic = q.Topic
	}
	blob := encodeContext(flowStudy, sc)

	return dispatch.Result{
		Reply: feedback + "\n\n" + renderMenu(session.MenuPostAnswer),
		Patch: session.Patch{
			CurrentMenu:      session.MenuRef(session.MenuPostAnswer),
			ActiveQuestionID: session.StringRef(""),
			FlowContext:      session.ContextRef(blob),
		},
	}, nil
}

// advancePractice updates the run counters and serves the next question,
// or closes the batch with a score summary.
func (f *Flows) advancePractice(ctx context.Context, pc PracticeContext, q *question.Question, feedback string, correct bool) (dispatch.Result, error) {
	pc.Served++
	if correct {
		pc.Correct++
	}
	pc.LastQuestionID = q.ID

	if pc.Served >= f.PracticeBatch {
		blob := encodeContext(flowPractice, pc)
		return dispatch.Result{
			Reply: fmt.Sprintf("%s\n\nThat's %d questions done — you got %d right.\n\n%s",
				feedback, pc.Served, pc.Correct, renderMenu(session.MenuPracticeActive)),
			Patch: session.Patch{
				CurrentMenu:      session.MenuRef(session.MenuPracticeActive),
				ActiveQuestionID: session.StringRef(""),
				FlowContext:      session.ContextRef(blob),
			},
		}, nil
	}

	next, err := f.Questions.Random(ctx, pc.Subject, pc.Topic)
	if err != nil {
		if errors.Is(err, question.ErrNoQuestions) {
			return f.closePractice(pc, feedback+"\n\nI'm out of questions for this topic."), nil
		}
		return dispatch.Result{}, err
	}

	blob := encodeContext(flowPractice, pc)
	return dispatch.Result{
		Reply: fmt.Sprintf("%s\n\nNext one:\n\n%s", feedback, next.Render()),
		Patch: session.Patch{
			CurrentMenu:      session.MenuRef(session.MenuPracticeActive),
			ActiveQuestionID: session.StringRef(next.ID),
			FlowContext:      session.ContextRef(blob),
		},
	}, nil
}

func gradeFeedback(q *question.Question, answer string, correct bool) string {
	if correct {
		return fmt.Sprintf("Correct! %s is the right answer.", answer)
	}
	feedback := fmt.Sprintf("Not quite — the right answer was %s.", q.Correct)
	if q.Explanation != "" {
		feedback += " " + q.Explanation
	}
	return feedback
}
