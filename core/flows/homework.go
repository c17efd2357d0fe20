package flows

import (
	"context"
	"fmt"

	"prepbot/core/command"
	"prepbot/core/dispatch"
	"prepbot/core/session"
)

// A small built-in rotation until teachers can load their own sets.
var homeworkAssignments = []string{
	"Solve ten linear equations from your textbook's review section.",
	"Write a one-page summary of the last passage you read in class.",
	"Practice fraction addition: five problems with unlike denominators.",
}

func (f *Flows) handleHomework(_ context.Context, sess *session.UserSession, cmd command.Command) (dispatch.Result, error) {
	switch cmd.Action {
	case "list":
		hc, _ := decodeHomework(sess.FlowContext)
		if hc.Assignment == 0 {
			// First visit: hand out the first assignment.
			hc.Assignment = 1
			blob := encodeContext(flowHomework, hc)
			return dispatch.Result{
				Reply: fmt.Sprintf("Assignment %d: %s\n\n%s",
					hc.Assignment, homeworkAssignments[0], renderMenu(session.MenuHomework)),
				Patch: session.Patch{FlowContext: session.ContextRef(blob)},
			}, nil
		}
		if hc.Assignment > len(homeworkAssignments) {
			return dispatch.Result{
				Reply: "That's every assignment done. Great work!\n\n" + renderMenu(session.MenuHomework),
			}, nil
		}
		return dispatch.Result{
			Reply: fmt.Sprintf("Assignment %d: %s\n\n%s",
				hc.Assignment, homeworkAssignments[hc.Assignment-1], renderMenu(session.MenuHomework)),
		}, nil
	case "help":
		hc, _ := decodeHomework(sess.FlowContext)
		if hc.Assignment == 0 || hc.Assignment > len(homeworkAssignments) {
			return dispatch.Result{
				Reply: "Pick an assignment first, then I can help with it.\n\n" + renderMenu(session.MenuHomework),
			}, nil
		}
		// Finishing help on an assignment moves the rotation forward.
		done := hc.Assignment
		hc.Assignment++
		blob := encodeContext(flowHomework, hc)
		return dispatch.Result{
			Reply: fmt.Sprintf("For assignment %d, start small: break it into pieces and do one at a time. "+
				"Send \"help with <topic>\" if you get stuck on the material itself.\n\n%s",
				done, renderMenu(session.MenuHomework)),
			Patch: session.Patch{FlowContext: session.ContextRef(blob)},
		}, nil
	default: // "menu"
		return dispatch.Result{
			Reply: renderMenu(session.MenuHomework),
			Patch: session.Patch{
				CurrentMenu:      session.MenuRef(session.MenuHomework),
				ActiveQuestionID: session.StringRef(""),
			},
		}, nil
	}
}
