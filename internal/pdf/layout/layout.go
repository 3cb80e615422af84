// Package layout implements the text layout engine: greedy word wrapping
// against a measured string width and vertical alignment within a fixed box.
package layout

import "strings"

// Measure reports the rendered width of a string in the current font,
// typically fpdf's GetStringWidth.
type Measure func(s string) float64

// VAlign selects the vertical placement of a text block within a box.
type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

// Wrap breaks text into lines no wider than maxWidth. Explicit "\n" breaks
// are preserved, with blank source lines kept as empty output lines. A single
// word wider than maxWidth is hard-split at the widest prefix that fits.
// Empty input yields no lines.
func Wrap(measure Measure, text string, maxWidth float64) []string {
	if text == "" || maxWidth <= 0 {
		return nil
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		if paragraph == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrapParagraph(measure, paragraph, maxWidth)...)
	}
	return lines
}

func wrapParagraph(measure Measure, paragraph string, maxWidth float64) []string {
	var lines []string
	current := ""

	flush := func() {
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
	}

	for _, word := range strings.Fields(paragraph) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		flush()

		if measure(word) <= maxWidth {
			current = word
			continue
		}
		// Oversize word: split at the widest fitting prefix, repeatedly.
		for _, piece := range splitWord(measure, word, maxWidth) {
			lines = append(lines, piece)
		}
		if len(lines) > 0 {
			// The final piece may still have room for following words.
			current = lines[len(lines)-1]
			lines = lines[:len(lines)-1]
		}
	}
	flush()

	if len(lines) == 0 {
		lines = append(lines, paragraph)
	}
	return lines
}

// splitWord chops a word into rune chunks each no wider than maxWidth.
// Always returns at least one piece; a single rune wider than maxWidth is
// emitted as-is rather than dropped.
func splitWord(measure Measure, word string, maxWidth float64) []string {
	var pieces []string
	runes := []rune(word)

	for len(runes) > 0 {
		n := len(runes)
		for n > 1 && measure(string(runes[:n])) > maxWidth {
			n--
		}
		pieces = append(pieces, string(runes[:n]))
		runes = runes[n:]
	}
	return pieces
}

// Height returns the vertical extent of wrapped text: at least one line height
// even for empty text, otherwise lineCount * lineHeight.
func Height(lineCount int, lineHeight float64) float64 {
	h := float64(lineCount) * lineHeight
	if h < lineHeight {
		return lineHeight
	}
	return h
}

// WrapHeight wraps text and returns the lines together with their total
// height (never less than one line height).
func WrapHeight(measure Measure, text string, maxWidth, lineHeight float64) ([]string, float64) {
	lines := Wrap(measure, text, maxWidth)
	return lines, Height(len(lines), lineHeight)
}

// VAlignOffset returns the Y offset of the first line so that a text block of
// textHeight sits top-flush, centered, or bottom-flush within a box of
// boxHeight. Text taller than the box starts at the top; callers clip
// overflow lines at the box bottom.
func VAlignOffset(boxHeight, textHeight float64, align VAlign) float64 {
	if textHeight >= boxHeight {
		return 0
	}
	switch align {
	case AlignMiddle:
		return (boxHeight - textHeight) / 2
	case AlignBottom:
		return boxHeight - textHeight
	default:
		return 0
	}
}

// MaxVisibleLines reports how many lines of lineHeight fit fully inside a box
// of boxHeight starting at the given offset; at least one line is always
// considered visible so short boxes still show something.
func MaxVisibleLines(boxHeight, offset, lineHeight float64, lineCount int) int {
	if lineHeight <= 0 {
		return lineCount
	}
	fit := int((boxHeight - offset) / lineHeight)
	if fit < 1 {
		fit = 1
	}
	if fit > lineCount {
		fit = lineCount
	}
	return fit
}
