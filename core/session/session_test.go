package session

import (
	"context"
	"encoding/json"
	"testing"
)

func TestEnsureCreatesRegistrationEntry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess, err := store.Ensure(ctx, "42")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if sess.CurrentMenu != MenuRegistrationName {
		t.Fatalf("new session menu = %q, want %q", sess.CurrentMenu, MenuRegistrationName)
	}

	// Second Ensure must not reset an advanced session.
	if _, err := store.Patch(ctx, "42", Patch{CurrentMenu: MenuRef(MenuMain)}); err != nil {
		t.Fatalf("patch: %v", err)
	}
	again, err := store.Ensure(ctx, "42")
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if again.CurrentMenu != MenuMain {
		t.Fatalf("ensure reset menu to %q", again.CurrentMenu)
	}
}

func TestPatchMergesOnlySetFields(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Ensure(ctx, "7"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	blob := json.RawMessage(`{"flow":"practice","data":{"served":1}}`)
	sess, err := store.Patch(ctx, "7", Patch{
		CurrentMenu:      MenuRef(MenuPracticeActive),
		ActiveQuestionID: StringRef("q-1"),
		FlowContext:      ContextRef(blob),
		DisplayName:      StringRef("Dana"),
	})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if sess.CurrentMenu != MenuPracticeActive || sess.ActiveQuestionID != "q-1" || sess.DisplayName != "Dana" {
		t.Fatalf("patch not applied: %+v", sess)
	}

	// A later patch that only clears the question must keep everything else.
	sess, err = store.Patch(ctx, "7", Patch{ActiveQuestionID: StringRef("")})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if sess.ActiveQuestionID != "" {
		t.Fatalf("question not cleared")
	}
	if sess.CurrentMenu != MenuPracticeActive || sess.DisplayName != "Dana" {
		t.Fatalf("unrelated fields changed: %+v", sess)
	}
	if string(sess.FlowContext) != string(blob) {
		t.Fatalf("flow context changed: %s", sess.FlowContext)
	}
}

func TestPatchUnknownSession(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Patch(context.Background(), "missing", Patch{CurrentMenu: MenuRef(MenuMain)}); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestKnownMenus(t *testing.T) {
	for _, m := range AllMenus {
		if !Known(m) {
			t.Fatalf("declared menu %q not known", m)
		}
	}
	if Known(Menu("bogus")) {
		t.Fatal("bogus menu reported known")
	}
}
