package flows

import (
	"context"
	"fmt"

	"prepbot/core/command"
	"prepbot/core/dispatch"
	"prepbot/core/session"
)

func (f *Flows) handleMainMenu(_ context.Context, _ *session.UserSession, _ command.Command) (dispatch.Result, error) {
	return dispatch.Result{
		Reply: renderMenu(session.MenuMain),
		Patch: session.Patch{
			CurrentMenu:      session.MenuRef(session.MenuMain),
			ExpectingInput:   session.StringRef(""),
			ActiveQuestionID: session.StringRef(""),
		},
	}, nil
}

func (f *Flows) handleWelcomeMenu(_ context.Context, sess *session.UserSession, _ command.Command) (dispatch.Result, error) {
	return dispatch.Result{
		Reply: welcomeGreeting(sess.DisplayName),
		Patch: session.Patch{
			CurrentMenu:      session.MenuRef(session.MenuWelcome),
			ExpectingInput:   session.StringRef(""),
			ActiveQuestionID: session.StringRef(""),
		},
	}, nil
}

func (f *Flows) handleHelp(_ context.Context, _ *session.UserSession, _ command.Command) (dispatch.Result, error) {
	reply := "Here's what I understand:\n" +
		"- Numbers pick options from the current menu.\n" +
		"- \"menu\" always brings you back to the main menu.\n" +
		"- \"practice\" starts a practice run, \"report\" shows your progress.\n" +
		"- \"help with <topic>\" gives a quick refresher on a topic.\n" +
		"- When a question is open, answer with A, B, C or D."
	return dispatch.Result{Reply: reply}, nil
}

func (f *Flows) handleShowSubjects(_ context.Context, _ *session.UserSession, _ command.Command) (dispatch.Result, error) {
	return dispatch.Result{
		Reply: renderMenu(session.MenuSubject),
		Patch: session.Patch{
			CurrentMenu:      session.MenuRef(session.MenuSubject),
			ActiveQuestionID: session.StringRef(""),
		},
	}, nil
}

func (f *Flows) handleShowTopics(_ context.Context, _ *session.UserSession, cmd command.Command) (dispatch.Result, error) {
	target := session.MenuMathTopics
	if cmd.Subject == "english" {
		target = session.MenuEnglishTopics
	}
	return dispatch.Result{
		Reply: renderMenu(target),
		Patch: session.Patch{CurrentMenu: session.MenuRef(target)},
	}, nil
}

func (f *Flows) handleInvalidAnswer(_ context.Context, _ *session.UserSession, cmd command.Command) (dispatch.Result, error) {
	return dispatch.Result{Reply: cmd.Correction}, nil
}

func (f *Flows) handleInvalidOption(_ context.Context, _ *session.UserSession, cmd command.Command) (dispatch.Result, error) {
	reply := fmt.Sprintf("%q isn't an option here. Please pick a number between %s.",
		cmd.OriginalInput, cmd.ValidRange)
	return dispatch.Result{Reply: reply}, nil
}

// handleUnrecognized re-shows the most relevant menu: the current one when
// the session carries a known tag, otherwise the welcome menu. It also
// serves as the routing-gap fallback.
func (f *Flows) handleUnrecognized(_ context.Context, sess *session.UserSession, _ command.Command) (dispatch.Result, error) {
	current := sess.CurrentMenu
	if _, ok := menuCopy[current]; ok {
		return dispatch.Result{
			Reply: "I didn't catch that.\n\n" + renderMenu(current),
		}, nil
	}
	// Unknown or empty tag: recover to the welcome menu.
	return dispatch.Result{
		Reply: "I didn't catch that.\n\n" + renderMenu(session.MenuWelcome),
		Patch: session.Patch{CurrentMenu: session.MenuRef(session.MenuWelcome)},
	}, nil
}

func (f *Flows) handleHook(_ context.Context, _ *session.UserSession, cmd command.Command) (dispatch.Result, error) {
	return dispatch.Result{
		Reply: fmt.Sprintf("Hook %q received. Integration check OK.", cmd.Target),
	}, nil
}
