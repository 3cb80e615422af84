package report

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"evmaint_backend/internal/pdf/document"
	"evmaint_backend/internal/pdf/draw"
	"evmaint_backend/internal/pdf/layout"
	"evmaint_backend/internal/pdf/photos"
	"evmaint_backend/platform/logger"
)

type renderCfg struct{}

func (renderCfg) GetUploadsDir() string               { return "" }
func (renderCfg) GetPublicDir() string                { return "" }
func (renderCfg) GetFontsDir() string                 { return "" }
func (renderCfg) GetPhotosBaseURL() string            { return "" }
func (renderCfg) GetPhotosHeaders() map[string]string { return nil }
func (renderCfg) IsPDFDebug() bool                    { return false }

func testConfig() Config {
	return Config{
		Name:         "test",
		Title:        "Inspection Report",
		DocCode:      "FM-TEST-01",
		RowTitles:    map[string]string{"r1": "First item", "r2": "Second item"},
		ColItemW:     92,
		ColResultW:   48,
		ColRemarkW:   46,
		MinRowHeight: 7,
		PhotosPerRow: 3,
		PhotoSlotH:   38,
		Signatures:   []string{"Performed by", "Approved by"},
	}
}

func newTestContext(t *testing.T, cfg Config, rep document.Report) *Context {
	t.Helper()
	log := logger.New("development", false)
	cache := photos.NewCache(photos.NewResolver(renderCfg{}, log))
	return NewContext(context.Background(), cfg, rep, renderCfg{}, cache, log)
}

func TestBuildItemsOrdersParentsAndSubs(t *testing.T) {
	rep := document.Report{
		Rows: map[string]document.RowResult{
			"r2":      {PF: "fail"},
			"r1":      {PF: "pass"},
			"r1_sub2": {PF: "pass"},
			"r1_sub1": {PF: "fail"},
			"rX":      {PF: "pass"},
		},
	}
	c := newTestContext(t, testConfig(), rep)

	items := c.BuildItems()
	if len(items) != 2 {
		t.Fatalf("expected 2 items (malformed key skipped), got %d", len(items))
	}
	if items[0].Index != 1 || items[1].Index != 2 {
		t.Fatalf("items out of order: %d, %d", items[0].Index, items[1].Index)
	}
	if len(items[0].Subs) != 2 {
		t.Fatalf("expected 2 sub-items under r1, got %d", len(items[0].Subs))
	}
	if items[0].Subs[0].Index != 1 || items[0].Subs[1].Index != 2 {
		t.Fatalf("sub-items out of order: %d, %d", items[0].Subs[0].Index, items[0].Subs[1].Index)
	}
	if items[0].Subs[0].Result != draw.ResultFail {
		t.Fatalf("sub-item result = %v, want fail", items[0].Subs[0].Result)
	}
}

func TestBuildItemsSynthesizesParentForOrphanSubs(t *testing.T) {
	rep := document.Report{
		Rows: map[string]document.RowResult{
			"r3_sub1": {PF: "pass"},
		},
	}
	c := newTestContext(t, testConfig(), rep)

	items := c.BuildItems()
	if len(items) != 1 {
		t.Fatalf("expected 1 synthesized parent, got %d", len(items))
	}
	if items[0].Index != 3 || items[0].Result != draw.ResultNA {
		t.Fatalf("synthesized parent = %+v", items[0])
	}
	if items[0].Text != "Item 3" {
		t.Fatalf("expected generic title, got %q", items[0].Text)
	}
}

func TestFormatMeasuresDashAndPreFallback(t *testing.T) {
	rule := MeasureRule{
		Set:    "m16",
		Keys:   []string{"l1", "l2"},
		Labels: []string{"L1-N", "L2-N"},
		Unit:   "V",
	}

	rep := document.Report{
		MeasuresPre: map[string]map[string]string{
			"m16": {"l1": "230.1"},
		},
	}
	c := newTestContext(t, testConfig(), rep)

	got := c.formatMeasures(rule)
	want := "L1-N: 230.1 V\nL2-N: - V"
	if got != want {
		t.Fatalf("formatMeasures = %q, want %q", got, want)
	}
}

func TestRowHeightCoversWrappedContent(t *testing.T) {
	longText := "An inspection item description long enough to wrap across multiple lines of the item column in the checklist table."
	longRemark := "A remark long enough to wrap across several lines of the narrower remark column, which must widen the row."

	rep := document.Report{Rows: map[string]document.RowResult{}}
	cfg := testConfig()
	c := newTestContext(t, cfg, rep)
	c.SetBodyFont("")

	item := Item{Index: 1, Text: longText, Remark: longRemark}
	h := c.rowHeight(item)

	_, itemH := layout.WrapHeight(c.PDF.GetStringWidth, longText, cfg.ColItemW-indexColWidth-2*draw.CellPadding, lineHeight)
	_, remarkH := layout.WrapHeight(c.PDF.GetStringWidth, longRemark, cfg.ColRemarkW-2*draw.CellPadding, lineHeight)

	if h < itemH {
		t.Fatalf("row height %f below wrapped item height %f", h, itemH)
	}
	if h < remarkH {
		t.Fatalf("row height %f below wrapped remark height %f", h, remarkH)
	}
}

func TestRowHeightCoversSubItemRemarks(t *testing.T) {
	cfg := testConfig()
	c := newTestContext(t, cfg, document.Report{})
	c.SetBodyFont("")

	item := Item{
		Index:  6,
		Text:   "Inspect main circuit breaker",
		Remark: "see sub-items",
		Subs: []SubItem{
			{Index: 1, Text: "Test trip mechanism", Result: draw.ResultFail,
				Remark: "Trip mechanism sluggish on the second actuation; recommend lubrication of the operating linkage and a follow-up functional test within thirty days."},
			{Index: 2, Text: "Inspect contacts", Result: draw.ResultFail,
				Remark: "Contact surfaces show pitting consistent with repeated switching under load; replacement parts ordered and scheduled for the next maintenance window."},
		},
	}
	h := c.rowHeight(item)

	_, remarkH := layout.WrapHeight(c.PDF.GetStringWidth, combinedRemark(item),
		cfg.ColRemarkW-2*draw.CellPadding, lineHeight)
	if h < remarkH {
		t.Fatalf("row height %f below combined sub-remark height %f", h, remarkH)
	}
}

func TestRowHeightHonorsReservedLines(t *testing.T) {
	cfg := testConfig()
	cfg.ReservedLines = map[int]int{4: 7}
	c := newTestContext(t, cfg, document.Report{})
	c.SetBodyFont("")

	h := c.rowHeight(Item{Index: 4, Text: "short"})
	if want := lineHeight * 7; h < want {
		t.Fatalf("reserved row height %f, want at least %f", h, want)
	}
}

func TestChecklistPaginatesLongDocuments(t *testing.T) {
	rows := map[string]document.RowResult{}
	titles := map[string]string{}
	for i := 1; i <= 60; i++ {
		key := fmt.Sprintf("r%d", i)
		rows[key] = document.RowResult{PF: "pass", Remark: "checked during the scheduled visit"}
		titles[key] = fmt.Sprintf("Inspection item number %d with a description that wraps", i)
	}

	cfg := testConfig()
	cfg.RowTitles = titles
	c := newTestContext(t, cfg, document.Report{Rows: rows})
	c.StartPage()
	c.DrawChecklist(c.BuildItems())

	_, pages, err := c.Output()
	if err != nil {
		t.Fatalf("output failed: %v", err)
	}
	if pages < 2 {
		t.Fatalf("60 rows must paginate, got %d page(s)", pages)
	}
}

func TestSummaryStaysAboveFooter(t *testing.T) {
	rep := document.Report{
		Summary:      "No abnormalities found during the scheduled inspection.",
		SummaryCheck: "pass",
	}
	cfg := testConfig()
	c := newTestContext(t, cfg, rep)
	c.SetBodyFont("")

	_, summaryH := layout.WrapHeight(c.PDF.GetStringWidth, rep.Summary,
		c.PrintableWidth()-2*draw.CellPadding, lineHeight)

	// Leave just less room than the block's drawn extent so an
	// under-reserved break keeps it on this page and the verdict row
	// crosses the printable bottom.
	c.StartPage()
	c.PDF.SetY(c.PrintableBottom() - (summaryH + lineHeight + 10.5))
	c.DrawSummary()

	if bottom := c.PDF.GetY() - 2; bottom > c.PrintableBottom() {
		t.Fatalf("summary verdict bottom %f crosses printable bottom %f", bottom, c.PrintableBottom())
	}
}

func TestConfigColumnsSpanPrintableWidth(t *testing.T) {
	cfg := testConfig()
	c := newTestContext(t, cfg, document.Report{})

	if got, want := cfg.printableWidth(), c.PrintableWidth(); got != want {
		t.Fatalf("column widths sum to %f, want printable width %f", got, want)
	}
}

func TestOutputIsIdempotent(t *testing.T) {
	rep := document.Report{
		IssueID: "EV-2024-0042",
		Rows: map[string]document.RowResult{
			"r1": {PF: "pass"},
			"r2": {PF: "fail", Remark: "loose terminal"},
		},
		Summary:      "Minor findings, see remarks.",
		SummaryCheck: "fail",
	}

	render := func() []byte {
		c := newTestContext(t, testConfig(), rep)
		c.StartPage()
		c.DrawChecklist(c.BuildItems())
		c.DrawSummary()
		out, _, err := c.Output()
		if err != nil {
			t.Fatalf("output failed: %v", err)
		}
		return out
	}

	first := render()
	second := render()
	if !bytes.Equal(first, second) {
		t.Fatal("rendering the same document twice must be byte-identical")
	}
}
