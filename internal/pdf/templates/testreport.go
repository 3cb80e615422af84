package templates

import (
	"strconv"
	"strings"

	"evmaint_backend/internal/pdf/draw"
	"evmaint_backend/internal/pdf/layout"
	"evmaint_backend/internal/pdf/report"
)

// Test matrix geometry (mm).
const (
	testLabelColW = 10.0
	testItemColW  = 70.0
	testLimitColW = 30.0
	testHeaderH   = 6.0
	testMinRowH   = 7.0
	testGlyphSize = 9.0
	identRowH     = 6.0
	identLabelPad = 4.0
	checkGlyph    = "✓"
	crossGlyph    = "✗"
)

// testRowKind selects how a result cell is rendered.
type testRowKind int

const (
	// Numeric reading plus a pass/fail glyph.
	testRowValue testRowKind = iota
	// Trip-time string ("28 ms") plus a pass/fail glyph.
	testRowTrip
	// Pass/fail glyph only.
	testRowCheck
)

// testRow is one line of a safety/charging test matrix. Readings are looked
// up in the measurement set "<section set>_<connector>" under Key, with the
// verdict under Key+"_pf".
type testRow struct {
	Key   string
	Title string
	Unit  string
	Limit string
	Kind  testRowKind
}

// testSection is one matrix with a rotated vertical label spanning its rows.
type testSection struct {
	Label string
	Set   string
	Rows  []testRow
}

// testConnectors are the connector column keys and their printed headers.
var testConnectors = []struct {
	Key    string
	Header string
}{
	{"h1", "Connector 1"},
	{"h2", "Connector 2"},
}

var electricalSection = testSection{
	Label: "Electrical Safety",
	Set:   "electrical",
	Rows: []testRow{
		{Key: "ins_lpe", Title: "Insulation Resistance DC(+) - PE", Unit: "MΩ", Limit: "≥ 1 MΩ"},
		{Key: "ins_npe", Title: "Insulation Resistance DC(-) - PE", Unit: "MΩ", Limit: "≥ 1 MΩ"},
		{Key: "earth_cont", Title: "Protective Earth Continuity", Unit: "Ω", Limit: "≤ 0.1 Ω"},
		{Key: "touch_current", Title: "Touch Current", Unit: "mA", Limit: "≤ 3.5 mA"},
		{Key: "rcd_1x", Title: "RCD Trip Time (1 × IΔn)", Unit: "ms", Limit: "≤ 300 ms", Kind: testRowTrip},
		{Key: "rcd_5x", Title: "RCD Trip Time (5 × IΔn)", Unit: "ms", Limit: "≤ 40 ms", Kind: testRowTrip},
	},
}

var chargerSection = testSection{
	Label: "Charger Safety",
	Set:   "charger",
	Rows: []testRow{
		{Key: "cp_state_a", Title: "Control Pilot Voltage, State A", Unit: "V", Limit: "12 ± 0.6 V"},
		{Key: "cp_state_b", Title: "Control Pilot Voltage, State B", Unit: "V", Limit: "9 ± 0.6 V"},
		{Key: "cp_state_c", Title: "Control Pilot Voltage, State C", Unit: "V", Limit: "6 ± 0.6 V"},
		{Key: "out_voltage", Title: "Output Voltage at Rated Load", Unit: "V"},
		{Key: "out_current", Title: "Output Current at Rated Load", Unit: "A"},
		{Key: "estop", Title: "Emergency Stop Cuts Output", Kind: testRowCheck},
		{Key: "interlock", Title: "Connector Interlock While Charging", Kind: testRowCheck},
	},
}

// testItemTitle resolves a test-file item key ("1", "r2") to the test-item
// name printed in that section's matrix. Unknown sections or out-of-range
// indexes return "" so the caller keeps the raw key.
func testItemTitle(section, item string) string {
	var rows []testRow
	switch section {
	case electricalSection.Set:
		rows = electricalSection.Rows
	case chargerSection.Set:
		rows = chargerSection.Rows
	default:
		return ""
	}
	i := strings.IndexFunc(item, func(r rune) bool { return r >= '0' && r <= '9' })
	if i < 0 {
		return ""
	}
	idx, err := strconv.Atoi(item[i:])
	if err != nil || idx < 1 || idx > len(rows) {
		return ""
	}
	return rows[idx-1].Title
}

// identRows is the equipment identification block, filled from the head map.
var identRows = []headField{
	{"Manufacturer", "manufacturer"},
	{"Model", "model"},
	{"Serial Number", "serial"},
	{"Firmware Version", "firmware"},
	{"Rated Power", "power"},
}

// drawIdentBlock renders the two-column identification table. The label
// column sizes itself to the widest label.
func drawIdentBlock(rc *report.Context, rows []headField) {
	pdf := rc.PDF
	rc.SetBodyFont("")

	labelW := 0.0
	for _, r := range rows {
		if w := pdf.GetStringWidth(r.label); w > labelW {
			labelW = w
		}
	}
	labelW += identLabelPad

	x := rc.MarginLeft()
	w := rc.PrintableWidth()
	y := pdf.GetY() + 1

	for _, r := range rows {
		pdf.Rect(x, y, labelW, identRowH, "D")
		pdf.Rect(x+labelW, y, w-labelW, identRowH, "D")
		pdf.Text(x+draw.CellPadding+1, y+identRowH-2, r.label)
		pdf.Text(x+labelW+draw.CellPadding+1, y+identRowH-2, rc.Report.HeadValue(r.key))
		y += identRowH
	}
	pdf.SetY(y + 2)
}

// drawTestSection renders one test matrix: rotated vertical section label,
// connector column header, and one row per test item. The section is kept on
// one page (a break happens before it, never inside it).
func drawTestSection(rc *report.Context, sec testSection) {
	pdf := rc.PDF
	rc.SetBodyFont("")

	heights := make([]float64, len(sec.Rows))
	total := testHeaderH
	for i, row := range sec.Rows {
		heights[i] = testRowHeight(rc, row)
		total += heights[i]
	}

	y := rc.BreakIfNeeded(total+2, nil)
	y += 2
	x := rc.MarginLeft()
	connW := (rc.PrintableWidth() - testLabelColW - testItemColW - testLimitColW) / float64(len(testConnectors))

	// Column header row. The label column header stays blank; the vertical
	// label spans it below.
	rc.SetBodyFont("B")
	pdf.Rect(x, y, testLabelColW, testHeaderH, "D")
	hx := x + testLabelColW
	for _, col := range []struct {
		w     float64
		title string
	}{{testItemColW, "Test Item"}, {testLimitColW, "Limit"}} {
		pdf.Rect(hx, y, col.w, testHeaderH, "D")
		pdf.Text(hx+(col.w-pdf.GetStringWidth(col.title))/2, y+testHeaderH-1.8, col.title)
		hx += col.w
	}
	for _, conn := range testConnectors {
		pdf.Rect(hx, y, connW, testHeaderH, "D")
		pdf.Text(hx+(connW-pdf.GetStringWidth(conn.Header))/2, y+testHeaderH-1.8, conn.Header)
		hx += connW
	}
	rc.SetBodyFont("")

	rowY := y + testHeaderH
	for i, row := range sec.Rows {
		drawTestRow(rc, sec, row, rowY, heights[i], connW)
		rowY += heights[i]
	}

	// Vertical label box spanning every row below the header.
	pdf.Rect(x, y+testHeaderH, testLabelColW, total-testHeaderH, "D")
	drawVerticalLabel(rc, x, y+testHeaderH, testLabelColW, total-testHeaderH, sec.Label)

	pdf.SetY(rowY + 2)
}

func testRowHeight(rc *report.Context, row testRow) float64 {
	_, h := layout.WrapHeight(rc.PDF.GetStringWidth, row.Title,
		testItemColW-2*draw.CellPadding, rc.LineHeight())
	h += 2
	if h < testMinRowH {
		h = testMinRowH
	}
	return h
}

func drawTestRow(rc *report.Context, sec testSection, row testRow, y, h, connW float64) {
	pdf := rc.PDF
	x := rc.MarginLeft() + testLabelColW

	draw.TextBox(pdf, x, y, testItemColW, h, row.Title, rc.LineHeight(), "L", layout.AlignMiddle)
	x += testItemColW

	pdf.Rect(x, y, testLimitColW, h, "D")
	if row.Limit != "" {
		limitW := mixedTextWidth(rc, row.Limit)
		drawMixedText(rc, x+(testLimitColW-limitW)/2, y+h/2+1.5, row.Limit)
	}
	x += testLimitColW

	for _, conn := range testConnectors {
		pdf.Rect(x, y, connW, h, "D")
		drawTestResult(rc, sec, row, conn.Key, x, y, connW, h)
		x += connW
	}
}

// drawTestResult fills one connector cell: reading text and a pass/fail
// glyph, or "-" when no reading was recorded.
func drawTestResult(rc *report.Context, sec testSection, row testRow, conn string, x, y, w, h float64) {
	pdf := rc.PDF
	set := sec.Set + "_" + conn
	value := rc.Report.Measure(set, row.Key)
	verdict := draw.NormalizeResult(rc.Report.Measure(set, row.Key+"_pf"))

	text := ""
	switch row.Kind {
	case testRowCheck:
		// Glyph only; an unrecorded check stays blank.
		if rc.Report.Measure(set, row.Key+"_pf") == "" {
			pdf.Text(x+(w-pdf.GetStringWidth("-"))/2, y+h/2+1.5, "-")
			return
		}
	default:
		if value == "" {
			pdf.Text(x+(w-pdf.GetStringWidth("-"))/2, y+h/2+1.5, "-")
			return
		}
		text = value
		if row.Unit != "" {
			text += " " + row.Unit
		}
	}

	glyphW := glyphWidth(rc)
	textW := mixedTextWidth(rc, text)
	gap := 0.0
	if text != "" {
		gap = 2.0
	}
	startX := x + (w-textW-gap-glyphW)/2
	baseY := y + h/2 + 1.5

	endX := drawMixedText(rc, startX, baseY, text)
	drawVerdictGlyph(rc, endX+gap, baseY, verdict)
	rc.SetBodyFont("")
}

// drawVerdictGlyph draws the checkmark/cross using the symbol face, falling
// back to P/F letters when no symbol font resolved.
func drawVerdictGlyph(rc *report.Context, x, baseY float64, verdict draw.Result) {
	pdf := rc.PDF
	glyph, letter := checkGlyph, "P"
	if verdict != draw.ResultPass {
		glyph, letter = crossGlyph, "F"
	}
	if rc.Fonts.HasSymbol {
		rc.SetSymbolFont(testGlyphSize)
		pdf.Text(x, baseY, glyph)
		rc.SetBodyFont("")
		return
	}
	rc.SetBodyFont("B")
	pdf.Text(x, baseY, letter)
	rc.SetBodyFont("")
}

func glyphWidth(rc *report.Context) float64 {
	if !rc.Fonts.HasSymbol {
		rc.SetBodyFont("B")
		w := rc.PDF.GetStringWidth("P")
		rc.SetBodyFont("")
		return w
	}
	rc.SetSymbolFont(testGlyphSize)
	w := rc.PDF.GetStringWidth(checkGlyph)
	rc.SetBodyFont("")
	return w
}

// drawMixedText renders a string whose ohm characters come from the symbol
// face: the body font lacks the glyph, so the string is split and each ohm is
// measured and positioned manually. Returns the X after the last segment.
func drawMixedText(rc *report.Context, x, baseY float64, text string) float64 {
	pdf := rc.PDF
	for _, seg := range splitOnOhm(text) {
		if seg == "Ω" && rc.Fonts.HasSymbol {
			rc.SetSymbolFont(testGlyphSize)
			pdf.Text(x, baseY, seg)
			x += pdf.GetStringWidth(seg)
			rc.SetBodyFont("")
			continue
		}
		pdf.Text(x, baseY, seg)
		x += pdf.GetStringWidth(seg)
	}
	return x
}

func mixedTextWidth(rc *report.Context, text string) float64 {
	pdf := rc.PDF
	w := 0.0
	for _, seg := range splitOnOhm(text) {
		if seg == "Ω" && rc.Fonts.HasSymbol {
			rc.SetSymbolFont(testGlyphSize)
			w += pdf.GetStringWidth(seg)
			rc.SetBodyFont("")
			continue
		}
		w += pdf.GetStringWidth(seg)
	}
	return w
}

// splitOnOhm splits text into runs, isolating each ohm sign in its own
// segment.
func splitOnOhm(text string) []string {
	var segs []string
	var cur strings.Builder
	for _, r := range text {
		if r == 'Ω' {
			if cur.Len() > 0 {
				segs = append(segs, cur.String())
				cur.Reset()
			}
			segs = append(segs, string(r))
			continue
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		segs = append(segs, cur.String())
	}
	return segs
}

// drawVerticalLabel writes text rotated 90 degrees, running bottom-to-top,
// centered within the label column box.
func drawVerticalLabel(rc *report.Context, x, y, w, h float64, text string) {
	pdf := rc.PDF
	rc.SetBodyFont("B")
	textW := pdf.GetStringWidth(text)

	// Rotation pivots at the text origin; place it so the run is centered
	// vertically and the baseline sits near the column middle.
	originX := x + w/2 + 1.5
	originY := y + h/2 + textW/2

	pdf.TransformBegin()
	pdf.TransformRotate(90, originX, originY)
	pdf.Text(originX, originY, text)
	pdf.TransformEnd()
	rc.SetBodyFont("")
}
