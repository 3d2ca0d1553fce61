package job

import (
	"strings"
	"testing"
)

func TestNewIDStable(t *testing.T) {
	a := NewID(SourceGreenhouse, "12345", "https://example.com/apply")
	b := NewID(SourceGreenhouse, "12345", "https://example.com/apply")
	if a != b {
		t.Fatalf("id not stable: %q vs %q", a, b)
	}
}

func TestNewIDDistinguishesSources(t *testing.T) {
	a := NewID(SourceGreenhouse, "12345", "")
	b := NewID(SourceLever, "12345", "")
	if a == b {
		t.Fatalf("ids collide across sources: %q", a)
	}
}

func TestNewIDFallsBackToURL(t *testing.T) {
	a := NewID(SourceRemoteOK, "", "https://remoteok.com/jobs/1")
	b := NewID(SourceRemoteOK, "  ", "https://remoteok.com/jobs/1")
	if a != b {
		t.Fatalf("blank native id should fall back to url: %q vs %q", a, b)
	}
}

func TestTruncateDescriptionShortUntouched(t *testing.T) {
	s := "short description"
	if got := TruncateDescription(s); got != s {
		t.Fatalf("short description modified: %q", got)
	}
}

func TestTruncateDescriptionTokenBoundary(t *testing.T) {
	word := "abcdefghij" // 10 bytes
	var b strings.Builder
	for b.Len() < MaxDescriptionBytes+100 {
		b.WriteString(word)
		b.WriteByte(' ')
	}

	got := TruncateDescription(b.String())
	if len(got) > MaxDescriptionBytes {
		t.Fatalf("truncated length %d exceeds max %d", len(got), MaxDescriptionBytes)
	}
	if strings.HasSuffix(got, " ") {
		t.Fatalf("trailing whitespace left after truncation")
	}
	// Never mid-word: the result must end with a complete token.
	if !strings.HasSuffix(got, word) {
		t.Fatalf("truncation split a word: ...%q", got[len(got)-15:])
	}
}

func TestTruncateDescriptionMultibyte(t *testing.T) {
	// A run of multibyte runes with no spaces near the limit must still
	// produce valid UTF-8.
	s := strings.Repeat("日本語テキスト ", 2000)
	got := TruncateDescription(s)
	if len(got) > MaxDescriptionBytes {
		t.Fatalf("length %d exceeds max", len(got))
	}
	for _, r := range got {
		if r == '�' {
			t.Fatal("invalid UTF-8 after truncation")
		}
	}
}
