package logger

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"short string untouched", "hello", 10, "hello"},
		{"exact limit untouched", "hello", 5, "hello"},
		{"long string cut with ellipsis", "hello world", 5, "hello..."},
		{"zero limit yields empty", "hello", 0, ""},
		{"surrounding space trimmed", "  hi  ", 10, "hi"},
		{"multibyte runes counted as runes", "привет мир", 6, "привет..."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Truncate(tc.in, tc.limit); got != tc.want {
				t.Fatalf("Truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
			}
		})
	}
}
