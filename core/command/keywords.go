package command

import "strings"

// Global keyword commands are available in every state (subject to answer
// priority). Matching is exact-phrase on trimmed, lowercased,
// whitespace-collapsed input.
var keywordCommands = map[string]Command{
	"start":            {Type: TypeWelcomeMenu},
	"menu":             {Type: TypeMainMenu},
	"main menu":        {Type: TypeMainMenu},
	"home":             {Type: TypeMainMenu},
	"help":             {Type: TypeHelp},
	"subjects":         {Type: TypeShowSubjects},
	"practice":         {Type: TypePractice, Action: "start"},
	"report":           {Type: TypeReport},
	"my report":        {Type: TypeReport},
	"exam":             {Type: TypeExamPrep, Action: "start"},
	"exam prep":        {Type: TypeExamPrep, Action: "start"},
	"homework":         {Type: TypeHomework, Action: "menu"},
	"friends":          {Type: TypeFriends, Action: "menu"},
	"stress":           {Type: TypeStressRelief, Action: "start"},
	"stress relief":    {Type: TypeStressRelief, Action: "start"},
	"confidence":       {Type: TypeConfidenceBoost, Action: "start"},
	"confidence boost": {Type: TypeConfidenceBoost, Action: "start"},
}

// Prefix commands split on the first whitespace run after the prefix and
// treat the remainder as the argument.
var prefixCommands = []struct {
	prefix string
	typ    Type
}{
	{"hook ", TypeHook},
	{"help with ", TypeHelpWith},
	{"change time ", TypeChangeTime},
}

// matchKeyword resolves the normalized text against exact-phrase keywords
// first, then prefix commands. The argument keeps its original remainder
// (already trimmed and collapsed, lowercase).
func matchKeyword(normalized string) (Command, bool) {
	if cmd, ok := keywordCommands[normalized]; ok {
		return cmd, true
	}
	for _, pc := range prefixCommands {
		if strings.HasPrefix(normalized, pc.prefix) {
			arg := strings.TrimSpace(normalized[len(pc.prefix):])
			if arg == "" {
				continue
			}
			return Command{Type: pc.typ, Target: arg}, true
		}
	}
	return Command{}, false
}
