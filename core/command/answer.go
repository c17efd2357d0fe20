package command

import (
	"regexp"
	"strings"
)

// AnswerCorrection is the fixed user-facing message for malformed answer
// attempts. It names the exact expected format.
const AnswerCorrection = "Please answer with one of A, B, C or D. You can also send it like \"A)\" or \"Answer A\"."

// The answer alphabet {A,B,C,D} plus its decorated forms is the wire
// protocol for quiz responses and must stay stable for client
// compatibility.
var decoratedAnswerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^([A-D])[).]$`),
	regexp.MustCompile(`^ANSWER\s+([A-D])$`),
	regexp.MustCompile(`^OPTION\s+([A-D])$`),
}

// ValidateAnswer normalizes text and checks it against the answer alphabet.
// It reports the bare letter on success and never guesses intent on
// partial matches.
func ValidateAnswer(text string) (string, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(text))
	if normalized == "" {
		return "", false
	}
	switch normalized {
	case "A", "B", "C", "D":
		return normalized, true
	}
	for _, re := range decoratedAnswerPatterns {
		if m := re.FindStringSubmatch(normalized); m != nil {
			return m[1], true
		}
	}
	return "", false
}
