// Package draw provides the primitive drawing helpers shared by every report
// template: checkboxes, bordered text cells, label/value rows, and tri-state
// result cells.
package draw

import (
	"evmaint_backend/internal/pdf/layout"

	"github.com/go-pdf/fpdf"
)

// CellPadding is the horizontal inset applied inside bordered cells.
const CellPadding = 1.0

// Checkbox draws a square checkbox at (x, y) with the given side length,
// with an X mark when checked.
func Checkbox(pdf *fpdf.Fpdf, x, y, size float64, checked bool) {
	pdf.Rect(x, y, size, size, "D")
	if checked {
		inset := size * 0.2
		pdf.Line(x+inset, y+inset, x+size-inset, y+size-inset)
		pdf.Line(x+size-inset, y+inset, x+inset, y+size-inset)
	}
}

// TextBox draws a bordered box and renders wrapped text inside it with the
// given horizontal alignment ("L", "C", "R") and vertical alignment. Empty
// text still draws the border. Lines that would pass the box bottom are
// clipped.
func TextBox(pdf *fpdf.Fpdf, x, y, w, h float64, text string, lineHeight float64, hAlign string, vAlign layout.VAlign) {
	pdf.Rect(x, y, w, h, "D")
	FillText(pdf, x, y, w, h, text, lineHeight, hAlign, vAlign)
}

// FillText renders wrapped text inside a box without drawing a border.
func FillText(pdf *fpdf.Fpdf, x, y, w, h float64, text string, lineHeight float64, hAlign string, vAlign layout.VAlign) {
	if text == "" {
		return
	}

	usable := w - 2*CellPadding
	lines, textH := layout.WrapHeight(pdf.GetStringWidth, text, usable, lineHeight)
	offset := layout.VAlignOffset(h, textH, vAlign)
	visible := layout.MaxVisibleLines(h, offset, lineHeight, len(lines))

	for i := 0; i < visible; i++ {
		lineY := y + offset + float64(i)*lineHeight
		lineX := x + CellPadding
		switch hAlign {
		case "C":
			lineX = x + (w-pdf.GetStringWidth(lines[i]))/2
		case "R":
			lineX = x + w - CellPadding - pdf.GetStringWidth(lines[i])
		}
		// Text positions at the baseline; drop it ~75% into the line box.
		pdf.Text(lineX, lineY+lineHeight*0.75, lines[i])
	}
}

// KVRow draws a "Label: value" row with the value underlined across the
// remaining width, returning the Y below the row.
func KVRow(pdf *fpdf.Fpdf, x, y, totalWidth, lineHeight float64, label, value string) float64 {
	labelW := pdf.GetStringWidth(label) + 2
	pdf.Text(x, y+lineHeight*0.75, label)

	valueX := x + labelW
	valueW := totalWidth - labelW
	pdf.Text(valueX+1, y+lineHeight*0.75, value)
	pdf.Line(valueX, y+lineHeight, valueX+valueW, y+lineHeight)
	return y + lineHeight
}

// ResultCell draws a tri-state Pass/Fail/N/A cell as three bordered thirds
// with exactly one state checked.
func ResultCell(pdf *fpdf.Fpdf, x, y, w, h float64, result Result) {
	third := w / 3
	labels := []string{"Pass", "Fail", "N/A"}
	states := []Result{ResultPass, ResultFail, ResultNA}

	boxSize := 3.0
	for i := 0; i < 3; i++ {
		cellX := x + float64(i)*third
		pdf.Rect(cellX, y, third, h, "D")

		content := boxSize + 1 + pdf.GetStringWidth(labels[i])
		startX := cellX + (third-content)/2
		boxY := y + (h-boxSize)/2
		Checkbox(pdf, startX, boxY, boxSize, result == states[i])
		pdf.Text(startX+boxSize+1, boxY+boxSize-0.5, labels[i])
	}
}

// SubResultCell stacks tri-state rows vertically within one result cell for a
// parent row with sub-items. The first line is left blank so sub-results line
// up against their sub-item titles below the parent's title line.
func SubResultCell(pdf *fpdf.Fpdf, x, y, w, h, lineHeight float64, results []Result) {
	pdf.Rect(x, y, w, h, "D")

	rowY := y + lineHeight
	for _, res := range results {
		if rowY+lineHeight > y+h+0.01 {
			break
		}
		ResultCell(pdf, x, rowY, w, lineHeight, res)
		rowY += lineHeight
	}
}
