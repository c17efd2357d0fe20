package flows

import (
	"context"
	"fmt"
	"strings"

	"prepbot/core/command"
	"prepbot/core/dispatch"
	"prepbot/core/session"
)

// handleReport summarizes the user's attempt history per subject.
func (f *Flows) handleReport(ctx context.Context, sess *session.UserSession, _ command.Command) (dispatch.Result, error) {
	stats, err := f.Questions.Stats(ctx, sess.ID)
	if err != nil {
		return dispatch.Result{}, err
	}

	if len(stats) == 0 {
		return dispatch.Result{
			Reply: "No attempts yet — answer a few questions and check back!\n\n" + renderMenu(session.MenuMain),
			Patch: session.Patch{CurrentMenu: session.MenuRef(session.MenuMain)},
		}, nil
	}

	var b strings.Builder
	b.WriteString("Your progress so far:\n")
	for _, s := range stats {
		pct := 0
		if s.Attempts > 0 {
			pct = s.Correct * 100 / s.Attempts
		}
		fmt.Fprintf(&b, "• %s: %d/%d correct (%d%%)\n", subjectLabel(s.Subject), s.Correct, s.Attempts, pct)
	}

	return dispatch.Result{
		Reply: b.String() + "\n" + renderMenu(session.MenuMain),
		Patch: session.Patch{CurrentMenu: session.MenuRef(session.MenuMain)},
	}, nil
}
