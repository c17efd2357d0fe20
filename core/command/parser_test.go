package command_test

import (
	"testing"

	"prepbot/core/command"
	"prepbot/core/menu"
	"prepbot/core/session"
)

func newParser(t *testing.T) *command.Parser {
	t.Helper()
	table := menu.Default()
	if err := table.Audit(); err != nil {
		t.Fatalf("table audit: %v", err)
	}
	return command.NewParser(table)
}

func TestParseMenuNumerics(t *testing.T) {
	p := newParser(t)

	tests := []struct {
		name     string
		input    string
		menu     session.Menu
		wantType command.Type
		wantAct  string
	}{
		{"welcome choice 2", "2", session.MenuWelcome, command.TypeConfidenceBoost, "start"},
		{"welcome choice 1", "1", session.MenuWelcome, command.TypeMainMenu, ""},
		{"main choice 3", "3", session.MenuMain, command.TypeHomework, "menu"},
		{"whitespace and leading zeros", " 03 ", session.MenuMain, command.TypeHomework, "menu"},
		{"post answer next", "1", session.MenuPostAnswer, command.TypeNextQuestion, ""},
		{"practice stop", "3", session.MenuPracticeActive, command.TypePractice, "stop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.input, command.ParseContext{CurrentMenu: tt.menu})
			if got.Type != tt.wantType {
				t.Fatalf("Parse(%q) type = %q, want %q", tt.input, got.Type, tt.wantType)
			}
			if got.Action != tt.wantAct {
				t.Fatalf("Parse(%q) action = %q, want %q", tt.input, got.Action, tt.wantAct)
			}
		})
	}
}

func TestParseInvalidOption(t *testing.T) {
	p := newParser(t)

	tests := []struct {
		name      string
		input     string
		menu      session.Menu
		wantRange string
	}{
		{"out of range high", "7", session.MenuPostAnswer, "1-5"},
		{"zero", "0", session.MenuMain, "1-7"},
		{"negative", "-1", session.MenuMain, "1-7"},
		{"way out of range", "99", session.MenuWelcome, "1-3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.input, command.ParseContext{CurrentMenu: tt.menu})
			if got.Type != command.TypeInvalidOption {
				t.Fatalf("Parse(%q) type = %q, want invalid_option", tt.input, got.Type)
			}
			if got.ValidRange != tt.wantRange {
				t.Fatalf("Parse(%q) range = %q, want %q", tt.input, got.ValidRange, tt.wantRange)
			}
		})
	}
}

func TestParseUnknownMenuDegrades(t *testing.T) {
	p := newParser(t)

	// A session carrying a menu tag the table has never heard of must not
	// crash; numeric input is rejected with the widest known range.
	got := p.Parse("2", command.ParseContext{CurrentMenu: session.Menu("mystery")})
	if got.Type != command.TypeInvalidOption {
		t.Fatalf("type = %q, want invalid_option", got.Type)
	}
	if got.ValidRange != "1-7" {
		t.Fatalf("range = %q, want widest range 1-7", got.ValidRange)
	}
}

func TestParseKeywords(t *testing.T) {
	p := newParser(t)

	tests := []struct {
		input    string
		wantType command.Type
	}{
		{"menu", command.TypeMainMenu},
		{"MAIN MENU", command.TypeMainMenu},
		{"start", command.TypeWelcomeMenu},
		{"help", command.TypeHelp},
		{"subjects", command.TypeShowSubjects},
		{"practice", command.TypePractice},
		{"my report", command.TypeReport},
		{"exam prep", command.TypeExamPrep},
		{"Stress", command.TypeStressRelief},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			// Keywords work regardless of which menu is active.
			got := p.Parse(tt.input, command.ParseContext{CurrentMenu: session.MenuMain})
			if got.Type != tt.wantType {
				t.Fatalf("Parse(%q) type = %q, want %q", tt.input, got.Type, tt.wantType)
			}
		})
	}
}

func TestParsePrefixCommands(t *testing.T) {
	p := newParser(t)

	tests := []struct {
		input      string
		wantType   command.Type
		wantTarget string
	}{
		{"help with fractions", command.TypeHelpWith, "fractions"},
		{"hook ping", command.TypeHook, "ping"},
		{"change time 18:30", command.TypeChangeTime, "18:30"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := p.Parse(tt.input, command.ParseContext{CurrentMenu: session.MenuMain})
			if got.Type != tt.wantType {
				t.Fatalf("Parse(%q) type = %q, want %q", tt.input, got.Type, tt.wantType)
			}
			if got.Target != tt.wantTarget {
				t.Fatalf("Parse(%q) target = %q, want %q", tt.input, got.Target, tt.wantTarget)
			}
		})
	}

	// A bare prefix with no argument is not a command.
	got := p.Parse("help with", command.ParseContext{CurrentMenu: session.MenuMain})
	if got.Type != command.TypeUnrecognized {
		t.Fatalf("bare prefix type = %q, want unrecognized", got.Type)
	}
}

func TestParseAnswerPriority(t *testing.T) {
	p := newParser(t)
	pctx := command.ParseContext{
		CurrentMenu:       session.MenuNone,
		ExpectingAnswer:   true,
		HasActiveQuestion: true,
	}

	valid := []struct {
		input string
		want  string
	}{
		{"a", "A"},
		{"A", "A"},
		{" b) ", "B"},
		{"C.", "C"},
		{"answer d", "D"},
		{"OPTION A", "A"},
	}
	for _, tt := range valid {
		t.Run(tt.input, func(t *testing.T) {
			got := p.Parse(tt.input, pctx)
			if got.Type != command.TypeAnswer {
				t.Fatalf("Parse(%q) type = %q, want answer", tt.input, got.Type)
			}
			if got.Answer != tt.want {
				t.Fatalf("Parse(%q) answer = %q, want %q", tt.input, got.Answer, tt.want)
			}
		})
	}

	// Anything else while a question is pending is an invalid answer: the
	// question is never silently abandoned, not even for global keywords.
	invalid := []string{"E", "menu", "practice", "1", "banana", "answer"}
	for _, input := range invalid {
		t.Run("invalid "+input, func(t *testing.T) {
			got := p.Parse(input, pctx)
			if got.Type != command.TypeInvalidAnswer {
				t.Fatalf("Parse(%q) type = %q, want invalid_answer", input, got.Type)
			}
			if got.Correction != command.AnswerCorrection {
				t.Fatalf("Parse(%q) correction = %q", input, got.Correction)
			}
		})
	}
}

func TestParseFreeTextCapture(t *testing.T) {
	p := newParser(t)

	t.Run("registration name keeps casing", func(t *testing.T) {
		got := p.Parse("  Lena  ", command.ParseContext{
			CurrentMenu:                session.MenuRegistrationName,
			ExpectingRegistrationInput: true,
		})
		if got.Type != command.TypeRegistration || got.Action != "name" {
			t.Fatalf("type/action = %q/%q, want registration/name", got.Type, got.Action)
		}
		if got.Target != "Lena" {
			t.Fatalf("target = %q, want %q", got.Target, "Lena")
		}
	})

	t.Run("friend username", func(t *testing.T) {
		got := p.Parse("@study_pal", command.ParseContext{
			CurrentMenu:           session.MenuFriends,
			ExpectingUsernameKind: session.InputFriendUsername,
		})
		if got.Type != command.TypeFriendAdd {
			t.Fatalf("type = %q, want friend_add", got.Type)
		}
		if got.Target != "@study_pal" {
			t.Fatalf("target = %q", got.Target)
		}
	})

	t.Run("exam date", func(t *testing.T) {
		got := p.Parse("2026-09-15", command.ParseContext{
			CurrentMenu:       session.MenuExamPrepDate,
			ExpectingExamDate: true,
		})
		if got.Type != command.TypeExamPrep || got.Action != "set_date" {
			t.Fatalf("type/action = %q/%q, want exam_prep/set_date", got.Type, got.Action)
		}
		if got.Target != "2026-09-15" {
			t.Fatalf("target = %q", got.Target)
		}
	})
}

func TestParseUnrecognized(t *testing.T) {
	p := newParser(t)

	tests := []struct {
		name  string
		input string
		menu  session.Menu
	}{
		{"free text in a menu", "banana", session.MenuMain},
		{"empty", "", session.MenuMain},
		{"whitespace only", "   ", session.MenuWelcome},
		{"no state at all", "hello", session.MenuNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.input, command.ParseContext{CurrentMenu: tt.menu})
			if got.Type != command.TypeUnrecognized {
				t.Fatalf("Parse(%q) type = %q, want unrecognized", tt.input, got.Type)
			}
		})
	}
}
