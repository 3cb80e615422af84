package layout

import (
	"strings"
	"testing"
)

// charWidth measures every rune as one unit wide, which makes expected line
// breaks easy to reason about in tests.
func charWidth(s string) float64 {
	return float64(len([]rune(s)))
}

func TestWrapEmptyText(t *testing.T) {
	if lines := Wrap(charWidth, "", 10); lines != nil {
		t.Fatalf("expected no lines for empty text, got %v", lines)
	}
}

func TestWrapSingleShortLine(t *testing.T) {
	lines := Wrap(charWidth, "hello", 10)
	if len(lines) != 1 || lines[0] != "hello" {
		t.Fatalf("expected [hello], got %v", lines)
	}
}

func TestWrapGreedyBreaks(t *testing.T) {
	lines := Wrap(charWidth, "aa bb cc dd", 5)
	want := []string{"aa bb", "cc dd"}
	if len(lines) != len(want) {
		t.Fatalf("expected %v, got %v", want, lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestWrapNoLineExceedsWidth(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog near the riverbank"
	for _, width := range []float64{4, 7, 10, 25} {
		for _, line := range Wrap(charWidth, text, width) {
			if charWidth(line) > width {
				t.Fatalf("width %v: line %q measures %v", width, line, charWidth(line))
			}
		}
	}
}

func TestWrapPreservesParagraphBreaks(t *testing.T) {
	lines := Wrap(charWidth, "one\n\ntwo", 10)
	want := []string{"one", "", "two"}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %v", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestWrapHardSplitsOversizeWord(t *testing.T) {
	lines := Wrap(charWidth, "abcdefghij", 4)
	if len(lines) != 3 {
		t.Fatalf("expected 3 pieces, got %v", lines)
	}
	if joined := strings.Join(lines, ""); joined != "abcdefghij" {
		t.Fatalf("pieces lost characters: %q", joined)
	}
	for _, line := range lines {
		if charWidth(line) > 4 {
			t.Fatalf("piece %q exceeds width", line)
		}
	}
}

func TestWrapWordAfterHardSplitJoinsLastPiece(t *testing.T) {
	lines := Wrap(charWidth, "abcdef gh", 5)
	// abcdef -> "abcde" "f", then "gh" joins "f".
	want := []string{"abcde", "f gh"}
	if len(lines) != len(want) {
		t.Fatalf("expected %v, got %v", want, lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestHeightFloorsAtOneLine(t *testing.T) {
	if h := Height(0, 5); h != 5 {
		t.Fatalf("expected one line height for empty text, got %v", h)
	}
	if h := Height(3, 5); h != 15 {
		t.Fatalf("expected 15, got %v", h)
	}
}

func TestVAlignOffset(t *testing.T) {
	tests := []struct {
		name  string
		box   float64
		text  float64
		align VAlign
		want  float64
	}{
		{"top", 30, 10, AlignTop, 0},
		{"middle", 30, 10, AlignMiddle, 10},
		{"bottom", 30, 10, AlignBottom, 20},
		{"overflow starts at top", 10, 30, AlignMiddle, 0},
		{"exact fit", 10, 10, AlignBottom, 0},
	}
	for _, tt := range tests {
		if got := VAlignOffset(tt.box, tt.text, tt.align); got != tt.want {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestMaxVisibleLines(t *testing.T) {
	if n := MaxVisibleLines(20, 0, 5, 10); n != 4 {
		t.Fatalf("expected 4 visible lines, got %d", n)
	}
	if n := MaxVisibleLines(3, 0, 5, 10); n != 1 {
		t.Fatalf("short box must still show one line, got %d", n)
	}
	if n := MaxVisibleLines(100, 0, 5, 3); n != 3 {
		t.Fatalf("expected clamp to line count, got %d", n)
	}
}
