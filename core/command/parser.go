package command

import (
	"strconv"
	"strings"

	"prepbot/core/session"
)

// Parser turns raw text plus a session projection into exactly one Command.
// It is total: it never fails and never performs I/O.
type Parser struct {
	table MenuTable
}

// NewParser builds a parser over the given menu transition table.
func NewParser(table MenuTable) *Parser {
	return &Parser{table: table}
}

// Parse classifies rawText using the fixed priority order:
//
//  1. answer detection when a question is pending (a failed attempt yields
//     invalid_answer and short-circuits everything else, so a pending
//     question is never silently dropped)
//  2. global keyword commands
//  3. menu-relative numeric input via the transition table
//  4. contextual free-text capture (registration name, friend username,
//     exam date)
//  5. unrecognized
//
// The order is the correctness contract and must not be rearranged.
func (p *Parser) Parse(rawText string, pctx ParseContext) Command {
	normalized := normalize(rawText)
	if normalized == "" {
		return Command{Type: TypeUnrecognized, OriginalInput: rawText}
	}

	// 1. A pending question wins over navigation.
	if pctx.ExpectingAnswer || pctx.HasActiveQuestion {
		if letter, ok := ValidateAnswer(normalized); ok {
			return Command{Type: TypeAnswer, Answer: letter, OriginalInput: rawText}
		}
		return Command{
			Type:          TypeInvalidAnswer,
			Correction:    AnswerCorrection,
			OriginalInput: rawText,
		}
	}

	// 2. Global keywords, checked before menu numerics by contract.
	if cmd, ok := matchKeyword(strings.ToLower(normalized)); ok {
		cmd.OriginalInput = rawText
		return cmd
	}

	// 3. Menu-relative numeric input. Anything that parses as an integer
	// while a menu is active either hits the table or is rejected with
	// that menu's valid range; non-numeric text falls through.
	if choice, numeric := parseChoice(normalized); numeric {
		if cmd, ok := p.table.Resolve(pctx.CurrentMenu, choice); ok {
			cmd.OriginalInput = rawText
			return cmd
		}
		if rangeDesc, known := p.table.RangeDescriptor(pctx.CurrentMenu); known {
			return Command{
				Type:          TypeInvalidOption,
				ValidRange:    rangeDesc,
				MenuChoice:    choice,
				OriginalInput: rawText,
			}
		}
		// Unknown menu tags degrade to the widest range of any known
		// menu instead of crashing.
		if pctx.CurrentMenu != "" && !session.Known(pctx.CurrentMenu) {
			return Command{
				Type:          TypeInvalidOption,
				ValidRange:    p.table.WidestRange(),
				MenuChoice:    choice,
				OriginalInput: rawText,
			}
		}
	}

	// 4. Contextual free-text capture.
	switch {
	case pctx.ExpectingRegistrationInput:
		return Command{Type: TypeRegistration, Action: "name", Target: normalized, OriginalInput: rawText}
	case pctx.ExpectingUsernameKind == session.InputFriendUsername:
		return Command{Type: TypeFriendAdd, Target: normalized, OriginalInput: rawText}
	case pctx.ExpectingExamDate:
		return Command{Type: TypeExamPrep, Action: "set_date", Target: normalized, OriginalInput: rawText}
	}

	// 5. Fallback.
	return Command{Type: TypeUnrecognized, OriginalInput: rawText}
}

// normalize trims and collapses interior whitespace runs without touching
// letter case, so free-text payloads keep their original casing.
func normalize(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// parseChoice accepts integers with surrounding whitespace and leading
// zeros. Zero and negatives parse as numbers so they can be rejected with
// the menu's range descriptor rather than falling through.
func parseChoice(text string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, false
	}
	return n, true
}
