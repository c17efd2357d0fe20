package flows

import (
	"context"
	"fmt"

	"prepbot/core/command"
	"prepbot/core/dispatch"
	"prepbot/core/session"
)

// handleRegistration advances the two-step onboarding: free-text name
// capture, then the numeric grade picker.
func (f *Flows) handleRegistration(_ context.Context, _ *session.UserSession, cmd command.Command) (dispatch.Result, error) {
	switch cmd.Action {
	case "name":
		name := cmd.Target
		return dispatch.Result{
			Reply: fmt.Sprintf("Nice to meet you, %s!\n\n%s", name, renderMenu(session.MenuRegistrationGrade)),
			Patch: session.Patch{
				DisplayName: session.StringRef(name),
				CurrentMenu: session.MenuRef(session.MenuRegistrationGrade),
			},
		}, nil
	case "grade":
		// Choices 1..6 map to grades 7..12.
		grade := 6 + cmd.MenuChoice
		return dispatch.Result{
			Reply: fmt.Sprintf("Grade %d, got it. You're all set!\n\n%s", grade, renderMenu(session.MenuWelcome)),
			Patch: session.Patch{
				Grade:       session.IntRef(grade),
				CurrentMenu: session.MenuRef(session.MenuWelcome),
			},
		}, nil
	default:
		return dispatch.Result{
			Reply: renderMenu(session.MenuRegistrationName),
			Patch: session.Patch{CurrentMenu: session.MenuRef(session.MenuRegistrationName)},
		}, nil
	}
}
