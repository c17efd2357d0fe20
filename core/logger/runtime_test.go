package logger

import "testing"

func TestCompactRID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"123:456:789", "3f.co.lx"},
		{"0:0:0", "0.0.0"},
		{"not-a-rid", "not-a-rid"},
		{"1:2", "1:2"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := CompactRID(tc.in); got != tc.want {
			t.Fatalf("CompactRID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeLimit(t *testing.T) {
	if got := SanitizeLimit("abc\x00def", 10); got != "abcdef" {
		t.Fatalf("control chars not stripped: %q", got)
	}
	if got := SanitizeLimit("abcdef", 3); got != "abc" {
		t.Fatalf("limit not applied: %q", got)
	}
	if got := SanitizeLimit("abc", 0); got != "" {
		t.Fatalf("zero limit should empty: %q", got)
	}
}

func TestBuildRID(t *testing.T) {
	if got := BuildRID(1, 2, 3); got != "1:2:3" {
		t.Fatalf("BuildRID = %q", got)
	}
}
