package report

import (
	"fmt"

	"evmaint_backend/internal/pdf/draw"
	"evmaint_backend/internal/pdf/layout"
)

const indexColWidth = 10.0

// DrawChecklist renders the ordered items as the main checklist table,
// paginating with lookahead: a row that would cross the printable bottom
// moves whole to a fresh page with the header, continuation banner, and
// column header redrawn above it.
func (c *Context) DrawChecklist(items []Item) {
	c.SetBodyFont("")
	y := c.drawColumnHeader(c.PDF.GetY())
	c.PDF.SetY(y)

	for _, item := range items {
		rowH := c.rowHeight(item)
		y = c.BreakIfNeeded(rowH, func(newY float64) float64 {
			c.SetBodyFont("")
			return c.drawColumnHeader(newY)
		})
		c.drawRow(y, item, rowH)
		c.PDF.SetY(y + rowH)
	}
}

// drawColumnHeader renders the checklist column titles and returns the Y
// below them.
func (c *Context) drawColumnHeader(y float64) float64 {
	pdf := c.PDF
	h := 6.0
	x := marginLeft

	c.SetBodyFont("B")
	cols := []struct {
		w     float64
		title string
	}{
		{indexColWidth, "No."},
		{c.Config.ColItemW - indexColWidth, "Inspection Item"},
		{c.Config.ColResultW, "Result"},
		{c.Config.ColRemarkW, "Remark"},
	}
	for _, col := range cols {
		pdf.Rect(x, y, col.w, h, "D")
		pdf.Text(x+(col.w-pdf.GetStringWidth(col.title))/2, y+h-1.8, col.title)
		x += col.w
	}
	c.SetBodyFont("")
	return y + h
}

// rowHeight computes the drawn height of one row: the max of the wrapped
// item text, the wrapped remark, sub-item stack height, the template floor,
// and any reserved line count for known-large rows.
func (c *Context) rowHeight(item Item) float64 {
	measure := c.PDF.GetStringWidth

	itemW := c.Config.ColItemW - indexColWidth - 2*draw.CellPadding
	_, itemH := layout.WrapHeight(measure, item.Text, itemW, lineHeight)

	remarkW := c.Config.ColRemarkW - 2*draw.CellPadding
	_, remarkH := layout.WrapHeight(measure, combinedRemark(item), remarkW, lineHeight)

	h := itemH
	if remarkH > h {
		h = remarkH
	}
	if len(item.Subs) > 0 {
		// Parent title line plus one tri-state line per sub-item, and each
		// sub-item's own wrapped text below the parent text.
		subText := itemH
		for _, sub := range item.Subs {
			_, sh := layout.WrapHeight(measure, sub.Text, itemW, lineHeight)
			subText += sh
		}
		stack := lineHeight * float64(len(item.Subs)+1)
		if subText > h {
			h = subText
		}
		if stack > h {
			h = stack
		}
	}
	if reserved, ok := c.Config.ReservedLines[item.Index]; ok {
		if rh := lineHeight * float64(reserved); rh > h {
			h = rh
		}
	}
	if h < c.Config.MinRowHeight {
		h = c.Config.MinRowHeight
	}
	return h
}

// drawRow renders one checklist row at y with the precomputed height.
func (c *Context) drawRow(y float64, item Item, rowH float64) {
	pdf := c.PDF
	x := marginLeft

	// Index column.
	draw.TextBox(pdf, x, y, indexColWidth, rowH, fmt.Sprintf("%d", item.Index), lineHeight, "C", layout.AlignTop)
	x += indexColWidth

	// Item column: parent text, then sub-item texts.
	itemW := c.Config.ColItemW - indexColWidth
	pdf.Rect(x, y, itemW, rowH, "D")
	text := item.Text
	for _, sub := range item.Subs {
		text += "\n" + sub.Text
	}
	draw.FillText(pdf, x, y, itemW, rowH, text, lineHeight, "L", layout.AlignTop)
	x += itemW

	// Result column: single tri-state cell, or a stacked cell for sub-items.
	if len(item.Subs) > 0 {
		results := make([]draw.Result, 0, len(item.Subs))
		for _, sub := range item.Subs {
			results = append(results, sub.Result)
		}
		draw.SubResultCell(pdf, x, y, c.Config.ColResultW, rowH, lineHeight, results)
	} else {
		draw.ResultCell(pdf, x, y, c.Config.ColResultW, rowH, item.Result)
	}
	x += c.Config.ColResultW

	// Remark column. Sub-item remarks are appended under the parent remark.
	draw.TextBox(pdf, x, y, c.Config.ColRemarkW, rowH, combinedRemark(item), lineHeight, "L", layout.AlignTop)
}

// combinedRemark is the remark cell content: the parent remark with every
// non-empty sub-item remark appended. rowHeight measures exactly this string
// so a long sub-remark grows the row instead of being clipped.
func combinedRemark(item Item) string {
	remark := item.Remark
	for _, sub := range item.Subs {
		if sub.Remark != "" {
			remark += "\n" + sub.Remark
		}
	}
	return remark
}

// DrawSummary renders the free-text summary and the overall PASS/FAIL/N-A
// verdict checkbox row below the checklist.
func (c *Context) DrawSummary() {
	pdf := c.PDF
	width := c.PrintableWidth()

	_, summaryH := layout.WrapHeight(pdf.GetStringWidth, c.Report.Summary, width-2*draw.CellPadding, lineHeight)
	// Title line (lineHeight+1), summary box (summaryH+2, advanced by
	// summaryH+4), verdict row (6). The bottom of the verdict cell is the
	// true block extent.
	blockH := summaryH + lineHeight + 11

	y := c.BreakIfNeeded(blockH, nil)

	c.SetBodyFont("B")
	pdf.Text(marginLeft, y+lineHeight*0.75, "Summary")
	c.SetBodyFont("")
	y += lineHeight + 1
	draw.TextBox(pdf, marginLeft, y, width, summaryH+2, c.Report.Summary, lineHeight, "L", layout.AlignTop)
	y += summaryH + 4

	c.SetBodyFont("B")
	pdf.Text(marginLeft, y+3, "Inspection Results:")
	c.SetBodyFont("")
	labelW := pdf.GetStringWidth("Inspection Results:") + 6
	draw.ResultCell(pdf, marginLeft+labelW, y, 72, 6, draw.NormalizeResult(c.Report.SummaryCheck))
	pdf.SetY(y + 8)
}
