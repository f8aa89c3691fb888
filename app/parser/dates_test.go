package parser

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"2023-07-03T12:00:00Z", "2023-07-03T12:00:00Z"},
		{"2023-07-03T12:00:00+02:00", "2023-07-03T10:00:00Z"},
		{"Mon, 03 Jul 2023 12:00:00 GMT", "2023-07-03T12:00:00Z"},
		{"Mon, 03 Jul 2023 12:00:00 +0000", "2023-07-03T12:00:00Z"},
		{"Mon, 3 Jul 2023 12:00:00 +0000", "2023-07-03T12:00:00Z"},
		{"2023-07-03", "2023-07-03T00:00:00Z"},
		{"  2023-07-03T12:00:00Z  ", "2023-07-03T12:00:00Z"},
		{"July 3, 2023", "2023-07-03T00:00:00Z"},
	}
	for _, c := range cases {
		got := parseDate(c.input)
		if got == nil {
			t.Errorf("Expected %q to parse, got nil", c.input)
			continue
		}
		if got.Format(time.RFC3339) != c.want {
			t.Errorf("Expected %q for %q, got %q", c.want, c.input, got.Format(time.RFC3339))
		}
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not a date", "13/45/20233 99:99"} {
		if got := parseDate(input); got != nil {
			t.Errorf("Expected nil for %q, got %v", input, got)
		}
	}
}
