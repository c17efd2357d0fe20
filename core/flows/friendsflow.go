package flows

import (
	"context"
	"strings"

	"prepbot/core/command"
	"prepbot/core/dispatch"
	"prepbot/core/session"
)

func (f *Flows) handleFriends(ctx context.Context, sess *session.UserSession, cmd command.Command) (dispatch.Result, error) {
	switch cmd.Action {
	case "add":
		return dispatch.Result{
			Reply: "Send me your friend's username (with or without the @).",
			Patch: session.Patch{
				ExpectingInput: session.StringRef(session.InputFriendUsername),
			},
		}, nil
	case "list":
		names, err := f.Friends.List(ctx, sess.ID)
		if err != nil {
			return dispatch.Result{}, err
		}
		reply := "You haven't added any study buddies yet."
		if len(names) > 0 {
			reply = "Your study buddies: @" + strings.Join(names, ", @")
		}
		return dispatch.Result{
			Reply: reply + "\n\n" + renderMenu(session.MenuFriends),
		}, nil
	default: // "menu"
		return dispatch.Result{
			Reply: renderMenu(session.MenuFriends),
			Patch: session.Patch{
				CurrentMenu:      session.MenuRef(session.MenuFriends),
				ActiveQuestionID: session.StringRef(""),
			},
		}, nil
	}
}

// handleFriendAdd consumes the captured username and closes the input state.
func (f *Flows) handleFriendAdd(ctx context.Context, sess *session.UserSession, cmd command.Command) (dispatch.Result, error) {
	username := strings.TrimSpace(strings.TrimPrefix(cmd.Target, "@"))
	if err := f.Friends.Add(ctx, sess.ID, username); err != nil {
		return dispatch.Result{}, err
	}
	return dispatch.Result{
		Reply: "Added @" + username + " to your study buddies!\n\n" + renderMenu(session.MenuFriends),
		Patch: session.Patch{
			CurrentMenu:    session.MenuRef(session.MenuFriends),
			ExpectingInput: session.StringRef(""),
		},
	}, nil
}
