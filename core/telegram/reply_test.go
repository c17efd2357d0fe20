package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateReply(t *testing.T) {
	long := strings.Repeat("x", 1500)

	tests := []struct {
		name  string
		text  string
		max   int
		want  string
		runes int
	}{
		{"short passes through", "hello", 1200, "hello", 5},
		{"exact limit untouched", strings.Repeat("a", 10), 10, strings.Repeat("a", 10), 10},
		{"over limit cut with marker", long, 1200, "", 1200},
		{"zero max disables", long, 0, long, 1500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateReply(tt.text, tt.max)
			if tt.want != "" && got != tt.want {
				t.Fatalf("TruncateReply = %q, want %q", got, tt.want)
			}
			if n := utf8.RuneCountInString(got); n != tt.runes {
				t.Fatalf("rune count = %d, want %d", n, tt.runes)
			}
		})
	}
}

func TestTruncateReplyRuneSafe(t *testing.T) {
	// Cutting multibyte text must never split a rune.
	text := strings.Repeat("ид", 700) // 1400 runes, 2800 bytes
	got := TruncateReply(text, 1200)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated text is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(got); n != 1200 {
		t.Fatalf("rune count = %d, want 1200", n)
	}
	if !strings.HasSuffix(got, truncationSuffix) {
		t.Fatalf("missing truncation marker")
	}
}
