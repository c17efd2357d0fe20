package menu

import (
	"testing"

	"prepbot/core/command"
	"prepbot/core/session"
)

func TestDefaultTableAudit(t *testing.T) {
	if err := Default().Audit(); err != nil {
		t.Fatalf("Audit() = %v", err)
	}
}

func TestResolveStampsChoice(t *testing.T) {
	table := Default()

	cmd, ok := table.Resolve(session.MenuMathTopics, 2)
	if !ok {
		t.Fatalf("Resolve(math_topics, 2) not found")
	}
	if cmd.Type != command.TypePickTopic {
		t.Fatalf("type = %q, want pick_topic", cmd.Type)
	}
	if cmd.Subject != "math" || cmd.Topic != "geometry" {
		t.Fatalf("subject/topic = %q/%q", cmd.Subject, cmd.Topic)
	}
	if cmd.MenuChoice != 2 {
		t.Fatalf("menu choice = %d, want 2", cmd.MenuChoice)
	}
}

func TestResolveOutOfRange(t *testing.T) {
	table := Default()

	for _, choice := range []int{0, -3, 100} {
		if _, ok := table.Resolve(session.MenuWelcome, choice); ok {
			t.Fatalf("Resolve(welcome, %d) = ok, want miss", choice)
		}
	}
	if _, ok := table.Resolve(session.Menu("mystery"), 1); ok {
		t.Fatalf("Resolve(mystery, 1) = ok, want miss")
	}
}

func TestRangeDescriptors(t *testing.T) {
	table := Default()

	tests := []struct {
		menu session.Menu
		want string
	}{
		{session.MenuWelcome, "1-3"},
		{session.MenuMain, "1-7"},
		{session.MenuMathTopics, "1-5"},
		{session.MenuPostAnswer, "1-5"},
		{session.MenuRegistrationGrade, "1-6"},
	}
	for _, tt := range tests {
		got, ok := table.RangeDescriptor(tt.menu)
		if !ok {
			t.Fatalf("RangeDescriptor(%q) not found", tt.menu)
		}
		if got != tt.want {
			t.Fatalf("RangeDescriptor(%q) = %q, want %q", tt.menu, got, tt.want)
		}
	}

	if _, ok := table.RangeDescriptor(session.MenuRegistrationName); ok {
		t.Fatalf("free-text menu must not carry a range descriptor")
	}
	if got := table.WidestRange(); got != "1-7" {
		t.Fatalf("WidestRange() = %q, want 1-7", got)
	}
}

// Every table entry must resolve to a command type the dispatcher can
// route; a typo here would otherwise surface as a runtime routing gap.
func TestEveryEntryHasKnownType(t *testing.T) {
	table := Default()
	for _, m := range table.Menus() {
		for choice := 1; choice <= table.Max(m); choice++ {
			cmd, ok := table.Resolve(m, choice)
			if !ok {
				t.Fatalf("menu %q choice %d missing", m, choice)
			}
			if !command.KnownType(cmd.Type) {
				t.Fatalf("menu %q choice %d has unknown type %q", m, choice, cmd.Type)
			}
		}
	}
}

func TestAuditCatchesDefects(t *testing.T) {
	t.Run("missing menu row", func(t *testing.T) {
		table := &Table{rows: map[session.Menu]row{}}
		if err := table.Audit(); err == nil {
			t.Fatalf("Audit() = nil, want error for missing rows")
		}
	})

	t.Run("row for free-text menu", func(t *testing.T) {
		table := Default()
		table.add(session.MenuRegistrationName, command.Command{Type: command.TypeRegistration})
		if err := table.Audit(); err == nil {
			t.Fatalf("Audit() = nil, want error for exempt menu row")
		}
	})

	t.Run("row for undeclared menu", func(t *testing.T) {
		table := Default()
		table.add(session.Menu("mystery"), command.Command{Type: command.TypeHelp})
		if err := table.Audit(); err == nil {
			t.Fatalf("Audit() = nil, want error for undeclared menu")
		}
	})

	t.Run("unknown command type", func(t *testing.T) {
		table := Default()
		table.add(session.MenuFriends, command.Command{Type: command.Type("bogus")})
		if err := table.Audit(); err == nil {
			t.Fatalf("Audit() = nil, want error for unknown type")
		}
	})
}
