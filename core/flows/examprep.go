package flows

import (
	"context"
	"fmt"
	"time"

	"prepbot/core/command"
	"prepbot/core/dates"
	"prepbot/core/dispatch"
	"prepbot/core/session"
)

func (f *Flows) handleExamPrep(ctx context.Context, sess *session.UserSession, cmd command.Command) (dispatch.Result, error) {
	switch cmd.Action {
	case "subject":
		ec, _ := decodeExamPrep(sess.FlowContext)
		ec.Subject = cmd.Subject
		blob := encodeContext(flowExamPrep, ec)
		return dispatch.Result{
			Reply: renderMenu(session.MenuExamPrepDate),
			Patch: session.Patch{
				CurrentMenu: session.MenuRef(session.MenuExamPrepDate),
				FlowContext: session.ContextRef(blob),
			},
		}, nil
	case "set_date":
		return f.setExamDate(ctx, sess, cmd)
	default: // "start"
		blob := encodeContext(flowExamPrep, ExamPrepContext{})
		return dispatch.Result{
			Reply: renderMenu(session.MenuExamPrepSubject),
			Patch: session.Patch{
				CurrentMenu:      session.MenuRef(session.MenuExamPrepSubject),
				ActiveQuestionID: session.StringRef(""),
				FlowContext:      session.ContextRef(blob),
			},
		}, nil
	}
}

// setExamDate parses the free-text exam date. An unreadable date keeps the
// user in the capture state with a concrete format hint.
func (f *Flows) setExamDate(_ context.Context, sess *session.UserSession, cmd command.Command) (dispatch.Result, error) {
	when, ok := dates.ParseFlexibleDate(cmd.Target)
	if !ok {
		return dispatch.Result{
			Reply: fmt.Sprintf("I couldn't read %q as a date. Try something like 2026-09-15.", cmd.Target),
		}, nil
	}

	ec, _ := decodeExamPrep(sess.FlowContext)
	ec.ExamDate = when.Format("2006-01-02")
	blob := encodeContext(flowExamPrep, ec)

	days := dates.DaysUntil(when, time.Now())
	reply := fmt.Sprintf(
		"%s exam on %s — %d days to go. I'll build your sessions around that.\n"+
			"Tip: send \"change time <hh:mm>\" to set your daily reminder.\n\n%s",
		subjectLabel(ec.Subject), ec.ExamDate, days, renderMenu(session.MenuMain))

	return dispatch.Result{
		Reply: reply,
		Patch: session.Patch{
			CurrentMenu: session.MenuRef(session.MenuMain),
			FlowContext: session.ContextRef(blob),
		},
	}, nil
}

// handleChangeTime moves the daily reminder of an active exam prep plan.
func (f *Flows) handleChangeTime(_ context.Context, sess *session.UserSession, cmd command.Command) (dispatch.Result, error) {
	clock, ok := dates.ParseClock(cmd.Target)
	if !ok {
		return dispatch.Result{
			Reply: fmt.Sprintf("I couldn't read %q as a time. Try something like 18:30.", cmd.Target),
		}, nil
	}

	ec, found := decodeExamPrep(sess.FlowContext)
	if !found {
		return dispatch.Result{
			Reply: "You don't have an exam prep plan yet. Send \"exam prep\" to start one.",
		}, nil
	}

	ec.ReminderTime = clock
	blob := encodeContext(flowExamPrep, ec)
	return dispatch.Result{
		Reply: fmt.Sprintf("Done — your daily reminder now comes at %s.", clock),
		Patch: session.Patch{FlowContext: session.ContextRef(blob)},
	}, nil
}

func subjectLabel(subject string) string {
	switch subject {
	case "math":
		return "Math"
	case "english":
		return "English"
	default:
		return "Your"
	}
}
