package templates

import (
	"context"
	"strconv"

	"evmaint_backend/internal/pdf/document"
	"evmaint_backend/internal/pdf/draw"
	"evmaint_backend/internal/pdf/layout"
	"evmaint_backend/internal/pdf/merge"
	"evmaint_backend/internal/pdf/report"
)

// Attachment index geometry (mm).
const (
	indexNoColW   = 12.0
	indexRefColW  = 92.0
	indexPageColW = 22.0
	indexRowH     = 7.0
)

var dcTestConfig = report.Config{
	Name:    "dctest",
	Title:   "DC Charger Safety Test Report",
	TitleTH: "รายงานผลการทดสอบเครื่องอัดประจุไฟฟ้ากระแสตรง",
	DocCode: "FM-TST-DC-01",

	RowTitles: map[string]string{},

	PhotosPerRow: 3,
	PhotoSlotH:   38,
	MaxPhotos:    6,

	Signatures: []string{"Tested by", "Reviewed by", "Approved by"},
	HeaderQR:   true,
}

// testHeadFields is the job block shared by the DC and AC test reports.
var testHeadFields = []headField{
	{"Station Name", "station_name"},
	{"Station Code", "station_code"},
	{"Location", "location"},
	{"Test Date", "test_date"},
	{"Test Engineer", "engineer"},
	{"Work Order No.", "work_order"},
}

func renderDCTest(ctx context.Context, rep document.Report, deps Deps) ([]byte, int, error) {
	return renderTest(ctx, rep, deps, dcTestConfig, true)
}

// renderTest is the shared flow of the DC and AC test reports: job and
// equipment identification blocks, the two safety matrices, verdict, photos,
// and (DC only) the attachment index plus physical merge.
func renderTest(ctx context.Context, rep document.Report, deps Deps, cfg report.Config, withAttachments bool) ([]byte, int, error) {
	rc := report.NewContext(ctx, cfg, rep, deps.RenderCfg, deps.Cache, deps.Log)
	rc.StartPage()

	drawHeadBlock(rc, testHeadFields)
	drawIdentBlock(rc, identRows)
	drawTestSection(rc, electricalSection)
	drawTestSection(rc, chargerSection)
	rc.DrawSummary()

	if len(rep.Photos) > 0 {
		rc.DrawPhotoSection("Reference Photos", rep.Photos)
	}

	if !withAttachments || len(rep.TestFiles) == 0 {
		return rc.Output()
	}

	entries := merge.Collect(ctx, rep.TestFiles, deps.Cache, deps.Log, testItemTitle)
	if len(entries) == 0 {
		return rc.Output()
	}
	atts := drawAttachmentIndex(rc, entries)

	main, mainPages, err := rc.Output()
	if err != nil {
		return nil, 0, err
	}

	merged, err := merge.Merge(main, mainPages, rc.PageHeight(), atts, deps.Log)
	if err != nil {
		// A failed merge degrades to the unmerged report; the index page
		// still lists every attachment.
		deps.Log.Warn("attachment merge failed, returning unmerged report", "error", err)
		return main, mainPages, nil
	}

	total := mainPages
	for _, att := range atts {
		total += att.Pages
	}
	return merged, total, nil
}

// drawAttachmentIndex renders the index pages listing every test file, plans
// each PDF attachment's destination page, and records the clickable row
// rectangles for the post-merge link annotations. Destination pages are
// computed before drawing because the rows print them.
func drawAttachmentIndex(rc *report.Context, entries []merge.IndexEntry) []*merge.Attachment {
	rc.BeginPhotoSection()
	y := rc.NewSectionPage()
	yStart := drawIndexHeader(rc, y)

	capacity := int((rc.PrintableBottom() - yStart) / indexRowH)
	if capacity < 1 {
		capacity = 1
	}
	indexPages := (len(entries) + capacity - 1) / capacity
	mainPages := rc.PDF.PageNo() + indexPages - 1
	atts := merge.PlanEntries(entries, mainPages)

	y = yStart
	onPage := 0
	for i, e := range entries {
		if onPage == capacity {
			y = drawIndexHeader(rc, rc.NewSectionPage())
			onPage = 0
		}
		drawIndexRow(rc, y, i+1, e)
		if e.Attachment != nil {
			e.Attachment.LinkRect = merge.MMRect{
				X: rc.MarginLeft(), Y: y, W: rc.PrintableWidth(), H: indexRowH,
			}
			e.Attachment.LinkPage = rc.PDF.PageNo()
		}
		y += indexRowH
		onPage++
	}
	rc.PDF.SetY(y)
	return atts
}

func drawIndexHeader(rc *report.Context, y float64) float64 {
	pdf := rc.PDF
	x := rc.MarginLeft()

	rc.SetBodyFont("B")
	pdf.Text(x, y+4, "Attached Test Instrument Reports")
	y += 6

	nameW := rc.PrintableWidth() - indexNoColW - indexRefColW - indexPageColW
	hx := x
	for _, col := range []struct {
		w     float64
		title string
	}{
		{indexNoColW, "No."},
		{indexRefColW, "Reference"},
		{nameW, "File Name"},
		{indexPageColW, "Page"},
	} {
		pdf.Rect(hx, y, col.w, testHeaderH, "D")
		pdf.Text(hx+(col.w-pdf.GetStringWidth(col.title))/2, y+testHeaderH-1.8, col.title)
		hx += col.w
	}
	rc.SetBodyFont("")
	return y + testHeaderH
}

func drawIndexRow(rc *report.Context, y float64, no int, e merge.IndexEntry) {
	pdf := rc.PDF
	x := rc.MarginLeft()
	nameW := rc.PrintableWidth() - indexNoColW - indexRefColW - indexPageColW

	page := "N/A"
	if e.Attachment != nil {
		page = strconv.Itoa(e.Attachment.TargetPage)
	}

	draw.TextBox(pdf, x, y, indexNoColW, indexRowH, strconv.Itoa(no), rc.LineHeight(), "C", layout.AlignMiddle)
	draw.TextBox(pdf, x+indexNoColW, y, indexRefColW, indexRowH, e.Label, rc.LineHeight(), "L", layout.AlignMiddle)
	draw.TextBox(pdf, x+indexNoColW+indexRefColW, y, nameW, indexRowH, e.Filename, rc.LineHeight(), "L", layout.AlignMiddle)
	draw.TextBox(pdf, x+indexNoColW+indexRefColW+nameW, y, indexPageColW, indexRowH, page, rc.LineHeight(), "C", layout.AlignMiddle)
}
