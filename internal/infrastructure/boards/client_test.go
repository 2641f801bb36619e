package boards

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateKeepsShortStrings(t *testing.T) {
	t.Parallel()

	if got := truncate("Python Developer", maxTextLen); got != "Python Developer" {
		t.Fatalf("short string changed: %q", got)
	}
}

func TestTruncateBoundsASCII(t *testing.T) {
	t.Parallel()

	got := truncate(strings.Repeat("a", 300), maxTextLen)
	if len(got) != maxTextLen {
		t.Fatalf("expected %d bytes, got %d", maxTextLen, len(got))
	}
}

func TestTruncateKeepsValidUTF8(t *testing.T) {
	t.Parallel()

	// Devanagari runes are 3 bytes each; 200 is not a multiple of 3, so a
	// byte slice would split a rune at the boundary.
	location := strings.Repeat("नई दिल्ली ", 30)

	got := truncate(location, maxTextLen)
	if len(got) > maxTextLen {
		t.Fatalf("expected at most %d bytes, got %d", maxTextLen, len(got))
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
}

func TestIsIndianLocation(t *testing.T) {
	t.Parallel()

	if !isIndianLocation("Bangalore, Karnataka") {
		t.Error("Bangalore should resolve as Indian")
	}
	if isIndianLocation("Berlin, Germany") {
		t.Error("Berlin should not resolve as Indian")
	}
}
