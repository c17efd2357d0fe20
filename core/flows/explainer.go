package flows

import (
	"context"
	"fmt"
	"strings"

	"prepbot/core/question"
)

// StaticExplainer serves explanations straight from the question bank and
// keeps a small set of canned topic primers. It is the default when no
// external explainer is wired in.
type StaticExplainer struct{}

func (StaticExplainer) Explain(_ context.Context, q *question.Question) (string, error) {
	if q.Explanation != "" {
		return fmt.Sprintf("The answer is %s. %s", q.Correct, q.Explanation), nil
	}
	return fmt.Sprintf("The answer is %s.", q.Correct), nil
}

var topicPrimers = map[string]string{
	"algebra":       "Algebra tip: whatever you do to one side of an equation, do to the other. Isolate the variable step by step.",
	"geometry":      "Geometry tip: draw the figure and label everything you know before reaching for a formula.",
	"fractions":     "Fractions tip: to add or subtract, get a common denominator first. To divide, multiply by the reciprocal.",
	"word problems": "Word problem tip: underline the numbers, name the unknown, and write the relationship as an equation before solving.",
	"grammar":       "Grammar tip: find the subject and verb first and check they agree, then look at the clauses around them.",
	"vocabulary":    "Vocabulary tip: use the sentence around an unknown word. Context usually narrows it to one or two meanings.",
	"reading":       "Reading tip: read the questions before the passage so you know what to look for.",
	"writing":       "Writing tip: one idea per paragraph. State it in the first sentence, support it in the rest.",
}

func (StaticExplainer) HelpWith(_ context.Context, topic string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(topic))
	if primer, ok := topicPrimers[key]; ok {
		return primer, nil
	}
	return fmt.Sprintf("I don't have notes on %q yet, but send \"subjects\" and I'll quiz you on what I do know.", topic), nil
}
