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

func (f *Flows) handlePickTopic(ctx context.Context, _ *session.UserSession, cmd command.Command) (dispatch.Result, error) {
	return f.serveQuestion(ctx, cmd.Subject, cmd.Topic)
}

// handleNextQuestion serves another question in the scope of the last one.
func (f *Flows) handleNextQuestion(ctx context.Context, sess *session.UserSession, _ command.Command) (dispatch.Result, error) {
	subject, topic, _ := lastScope(sess.FlowContext)
	if subject == "" {
		return f.handleShowSubjects(ctx, sess, command.Command{})
	}
	return f.serveQuestion(ctx, subject, topic)
}

// serveQuestion draws a question, marks it active, and records the study
// scope. The whole transition lands in one patch.
func (f *Flows) serveQuestion(ctx context.Context, subject, topic string) (dispatch.Result, error) {
	q, err := f.Questions.Random(ctx, subject, topic)
	if err != nil {
		if errors.Is(err, question.ErrNoQuestions) {
			return dispatch.Result{
				Reply: fmt.Sprintf("I don't have %s questions yet. Try another topic.\n\n%s",
					topicLabel(subject, topic), renderMenu(session.MenuSubject)),
				Patch: session.Patch{CurrentMenu: session.MenuRef(session.MenuSubject)},
			}, nil
		}
		return dispatch.Result{}, err
	}

	blob := encodeContext(flowStudy, StudyContext{Subject: subject, Topic: topic})
	return dispatch.Result{
		Reply: fmt.Sprintf("Here's a %s question for you:\n\n%s", topicLabel(subject, topic), q.Render()),
		Patch: session.Patch{
			CurrentMenu:      session.MenuRef(session.MenuNone),
			ActiveQuestionID: session.StringRef(q.ID),
			FlowContext:      session.ContextRef(blob),
		},
	}, nil
}

func (f *Flows) handleExplain(ctx context.Context, sess *session.UserSession, _ command.Command) (dispatch.Result, error) {
	_, _, lastID := lastScope(sess.FlowContext)
	if lastID == "" {
		return dispatch.Result{
			Reply: "There's no graded question to explain yet.\n\n" + renderMenu(session.MenuPostAnswer),
		}, nil
	}
	q, err := f.Questions.ByID(ctx, lastID)
	if err != nil {
		return dispatch.Result{}, err
	}
	explanation, err := f.Explainer.Explain(ctx, q)
	if err != nil {
		return dispatch.Result{}, err
	}
	return dispatch.Result{
		Reply: explanation + "\n\n" + renderMenu(session.MenuPostAnswer),
	}, nil
}

func (f *Flows) handleHelpWith(ctx context.Context, _ *session.UserSession, cmd command.Command) (dispatch.Result, error) {
	help, err := f.Explainer.HelpWith(ctx, cmd.Target)
	if err != nil {
		return dispatch.Result{}, err
	}
	return dispatch.Result{Reply: help}, nil
}

func topicLabel(subject, topic string) string {
	switch {
	case topic != "":
		return prettyTopic(topic)
	case subject != "":
		return subject
	default:
		return "mixed"
	}
}

func prettyTopic(topic string) string {
	if topic == "word_problems" {
		return "word problem"
	}
	return topic
}
