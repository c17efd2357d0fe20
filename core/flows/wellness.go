package flows

import (
	"context"

	"prepbot/core/command"
	"prepbot/core/dispatch"
	"prepbot/core/session"
)

const confidenceReply = "You've got this. Every question you try teaches you something, " +
	"even the ones you miss. Keep showing up and the results will follow."

const stressReply = "Take a slow breath: in for four counts, hold for four, out for four. " +
	"Do that three times. Exams matter, but so does your rest — a calm brain remembers more."

func (f *Flows) handleConfidenceBoost(_ context.Context, _ *session.UserSession, _ command.Command) (dispatch.Result, error) {
	return dispatch.Result{
		Reply: confidenceReply + "\n\n" + renderMenu(session.MenuMain),
		Patch: session.Patch{CurrentMenu: session.MenuRef(session.MenuMain)},
	}, nil
}

func (f *Flows) handleStressRelief(_ context.Context, _ *session.UserSession, _ command.Command) (dispatch.Result, error) {
	return dispatch.Result{
		Reply: stressReply + "\n\n" + renderMenu(session.MenuMain),
		Patch: session.Patch{CurrentMenu: session.MenuRef(session.MenuMain)},
	}, nil
}
