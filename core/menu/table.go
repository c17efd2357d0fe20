// Package menu declares the transition table of the conversation state
// machine: which numeric choice in which menu produces which command.
// Designing a new flow means adding a row here, never a parser branch.
package menu

import (
	"fmt"

	"prepbot/core/command"
	"prepbot/core/session"
)

type row struct {
	max     int
	entries map[int]command.Command
}

// Table maps (menu, choice) pairs to command templates and carries the
// per-menu valid-range descriptors used for rejections.
type Table struct {
	rows map[session.Menu]row
}

// Default builds the production transition table.
func Default() *Table {
	t := &Table{rows: make(map[session.Menu]row)}

	t.add(session.MenuWelcome,
		command.Command{Type: command.TypeMainMenu},
		command.Command{Type: command.TypeConfidenceBoost, Action: "start"},
		command.Command{Type: command.TypeStressRelief, Action: "start"},
	)
	t.add(session.MenuMain,
		command.Command{Type: command.TypeShowSubjects},
		command.Command{Type: command.TypePractice, Action: "start"},
		command.Command{Type: command.TypeHomework, Action: "menu"},
		command.Command{Type: command.TypeExamPrep, Action: "start"},
		command.Command{Type: command.TypeReport},
		command.Command{Type: command.TypeFriends, Action: "menu"},
		command.Command{Type: command.TypeHelp},
	)
	t.add(session.MenuSubject,
		command.Command{Type: command.TypeShowTopics, Subject: "math"},
		command.Command{Type: command.TypeShowTopics, Subject: "english"},
		command.Command{Type: command.TypeMainMenu},
	)
	t.add(session.MenuMathTopics,
		command.Command{Type: command.TypePickTopic, Subject: "math", Topic: "algebra"},
		command.Command{Type: command.TypePickTopic, Subject: "math", Topic: "geometry"},
		command.Command{Type: command.TypePickTopic, Subject: "math", Topic: "fractions"},
		command.Command{Type: command.TypePickTopic, Subject: "math", Topic: "word_problems"},
		command.Command{Type: command.TypeShowSubjects},
	)
	t.add(session.MenuEnglishTopics,
		command.Command{Type: command.TypePickTopic, Subject: "english", Topic: "grammar"},
		command.Command{Type: command.TypePickTopic, Subject: "english", Topic: "vocabulary"},
		command.Command{Type: command.TypePickTopic, Subject: "english", Topic: "reading"},
		command.Command{Type: command.TypePickTopic, Subject: "english", Topic: "writing"},
		command.Command{Type: command.TypeShowSubjects},
	)
	t.add(session.MenuPostAnswer,
		command.Command{Type: command.TypeNextQuestion},
		command.Command{Type: command.TypeExplain},
		command.Command{Type: command.TypeShowSubjects},
		command.Command{Type: command.TypePractice, Action: "start"},
		command.Command{Type: command.TypeMainMenu},
	)
	t.add(session.MenuPracticeActive,
		command.Command{Type: command.TypePractice, Action: "continue"},
		command.Command{Type: command.TypeShowSubjects},
		command.Command{Type: command.TypePractice, Action: "stop"},
	)
	t.add(session.MenuRegistrationGrade,
		command.Command{Type: command.TypeRegistration, Action: "grade"},
		command.Command{Type: command.TypeRegistration, Action: "grade"},
		command.Command{Type: command.TypeRegistration, Action: "grade"},
		command.Command{Type: command.TypeRegistration, Action: "grade"},
		command.Command{Type: command.TypeRegistration, Action: "grade"},
		command.Command{Type: command.TypeRegistration, Action: "grade"},
	)
	t.add(session.MenuExamPrepSubject,
		command.Command{Type: command.TypeExamPrep, Action: "subject", Subject: "math"},
		command.Command{Type: command.TypeExamPrep, Action: "subject", Subject: "english"},
		command.Command{Type: command.TypeMainMenu},
	)
	t.add(session.MenuHomework,
		command.Command{Type: command.TypeHomework, Action: "list"},
		command.Command{Type: command.TypeHomework, Action: "help"},
		command.Command{Type: command.TypeMainMenu},
	)
	t.add(session.MenuFriends,
		command.Command{Type: command.TypeFriends, Action: "add"},
		command.Command{Type: command.TypeFriends, Action: "list"},
		command.Command{Type: command.TypeMainMenu},
	)

	return t
}

// add registers a contiguous 1..n row for the menu.
func (t *Table) add(m session.Menu, templates ...command.Command) {
	entries := make(map[int]command.Command, len(templates))
	for i, tpl := range templates {
		entries[i+1] = tpl
	}
	t.rows[m] = row{max: len(templates), entries: entries}
}

// Resolve maps (menu, choice) to the stamped command.
func (t *Table) Resolve(m session.Menu, choice int) (command.Command, bool) {
	r, ok := t.rows[m]
	if !ok {
		return command.Command{}, false
	}
	tpl, ok := r.entries[choice]
	if !ok {
		return command.Command{}, false
	}
	tpl.MenuChoice = choice
	return tpl, true
}

// RangeDescriptor returns the human-readable valid range for a menu.
func (t *Table) RangeDescriptor(m session.Menu) (string, bool) {
	r, ok := t.rows[m]
	if !ok {
		return "", false
	}
	return fmt.Sprintf("1-%d", r.max), true
}

// WidestRange returns the descriptor of the largest row, used to degrade
// gracefully when the session carries an unknown menu tag.
func (t *Table) WidestRange() string {
	widest := 0
	for _, r := range t.rows {
		if r.max > widest {
			widest = r.max
		}
	}
	if widest == 0 {
		return "1-1"
	}
	return fmt.Sprintf("1-%d", widest)
}

// Menus lists every menu that has a table row.
func (t *Table) Menus() []session.Menu {
	out := make([]session.Menu, 0, len(t.rows))
	for m := range t.rows {
		out = append(out, m)
	}
	return out
}

// Max returns the row size for a menu, zero when absent.
func (t *Table) Max(m session.Menu) int {
	return t.rows[m].max
}

// Audit verifies the table is a complete, well-formed description of the
// state machine: every declared menu is either covered or explicitly
// exempt (free-text states), every row is contiguous from 1, and every
// template carries a known command type. An error here is a configuration
// defect, caught at startup or in tests, never at message time.
func (t *Table) Audit() error {
	for _, m := range session.AllMenus {
		if session.FreeTextMenus[m] {
			if _, ok := t.rows[m]; ok {
				return fmt.Errorf("menu %q is free-text exempt but has a table row", m)
			}
			continue
		}
		if _, ok := t.rows[m]; !ok {
			return fmt.Errorf("menu %q has no table row and is not exempt", m)
		}
	}
	for m, r := range t.rows {
		if !session.Known(m) {
			return fmt.Errorf("table row for undeclared menu %q", m)
		}
		if r.max == 0 {
			return fmt.Errorf("menu %q has an empty row", m)
		}
		for i := 1; i <= r.max; i++ {
			tpl, ok := r.entries[i]
			if !ok {
				return fmt.Errorf("menu %q is missing choice %d", m, i)
			}
			if !command.KnownType(tpl.Type) {
				return fmt.Errorf("menu %q choice %d has unknown command type %q", m, i, tpl.Type)
			}
		}
	}
	return nil
}
