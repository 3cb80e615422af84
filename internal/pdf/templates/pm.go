package templates

import (
	"context"

	"evmaint_backend/internal/pdf/document"
	"evmaint_backend/internal/pdf/draw"
	"evmaint_backend/internal/pdf/report"
)

// headField is one label/key pair of the job information block.
type headField struct {
	label string
	key   string
}

// renderPM is the shared flow of every preventive-maintenance template:
// header page, job information, checklist with pagination, summary verdict,
// then before/after photo pages.
func renderPM(ctx context.Context, rep document.Report, deps Deps, cfg report.Config, head []headField) ([]byte, int, error) {
	rc := report.NewContext(ctx, cfg, rep, deps.RenderCfg, deps.Cache, deps.Log)
	rc.StartPage()

	drawHeadBlock(rc, head)
	rc.DrawChecklist(rc.BuildItems())
	rc.DrawSummary()

	if len(rep.PhotosPre) > 0 {
		rc.DrawPhotoSection("Reference Photos (Before)", rep.PhotosPre)
	}
	if len(rep.Photos) > 0 {
		rc.DrawPhotoSection("Reference Photos (After)", rep.Photos)
	}

	return rc.Output()
}

// drawHeadBlock renders the job information block as two K/V columns.
func drawHeadBlock(rc *report.Context, fields []headField) {
	if len(fields) == 0 {
		return
	}
	pdf := rc.PDF
	rc.SetBodyFont("")

	colW := rc.PrintableWidth() / 2
	rowH := 6.0
	y := pdf.GetY() + 1

	for i, f := range fields {
		col := i % 2
		x := rc.MarginLeft() + float64(col)*colW
		draw.KVRow(pdf, x, y, colW-4, rowH, f.label, rc.Report.HeadValue(f.key))
		if col == 1 || i == len(fields)-1 {
			y += rowH
		}
	}
	pdf.SetY(y + 2)
}

// pmHeadFields is the job block most PM forms share.
var pmHeadFields = []headField{
	{"Station Name", "station_name"},
	{"Station Code", "station_code"},
	{"Location", "location"},
	{"Inspection Date", "inspect_date"},
	{"Inspector", "inspector"},
	{"Work Order No.", "work_order"},
}
