package templates

import (
	"context"

	"evmaint_backend/internal/pdf/document"
	"evmaint_backend/internal/pdf/draw"
	"evmaint_backend/internal/pdf/layout"
	"evmaint_backend/internal/pdf/report"
)

var cmConfig = report.Config{
	Name:    "cm",
	Title:   "Corrective Maintenance Report",
	TitleTH: "รายงานการบำรุงรักษาเชิงแก้ไข",
	DocCode: "FM-CM-01",

	ColItemW:     96,
	ColResultW:   46,
	ColRemarkW:   44,
	MinRowHeight: 7,

	RowTitles: map[string]string{
		"r1": "อุปกรณ์กลับมาใช้งานได้ตามปกติ / Equipment restored to normal operation",
		"r2": "ทดสอบการทำงานหลังการแก้ไข / Post-repair function test performed",
		"r3": "ตรวจสอบความปลอดภัยทางไฟฟ้าหลังการแก้ไข / Post-repair electrical safety check",
		"r4": "เก็บกวาดพื้นที่ปฏิบัติงาน / Work area cleaned up",
	},

	PhotosPerRow: 3,
	PhotoSlotH:   38,
	MaxPhotos:    6,

	Signatures: []string{"Performed by", "Approved by", "Witnessed by"},
}

var cmHeadFields = append(pmHeadFields,
	headField{"Equipment", "equipment"},
	headField{"Incident Date", "incident_date"},
	headField{"Incident Ref.", "incident_ref"},
)

// cmSections are the narrative blocks a corrective report documents, read
// from the head metadata.
var cmSections = []struct {
	title string
	key   string
}{
	{"Problem Found / ปัญหาที่พบ", "problem"},
	{"Root Cause / สาเหตุ", "cause"},
	{"Corrective Action / การแก้ไข", "action"},
	{"Parts Replaced / อะไหล่ที่เปลี่ยน", "parts"},
}

func renderCM(ctx context.Context, rep document.Report, deps Deps) ([]byte, int, error) {
	rc := report.NewContext(ctx, cmConfig, rep, deps.RenderCfg, deps.Cache, deps.Log)
	rc.StartPage()

	drawHeadBlock(rc, cmHeadFields)

	for _, section := range cmSections {
		drawNarrative(rc, section.title, rc.Report.HeadValue(section.key))
	}

	rc.DrawChecklist(rc.BuildItems())
	rc.DrawSummary()

	if len(rep.Photos) > 0 {
		rc.DrawPhotoSection("Reference Photos", rep.Photos)
	}

	return rc.Output()
}

// drawNarrative renders one titled free-text block sized to its wrapped
// content, with a minimum of three lines so empty sections still leave room
// for handwriting on the printed form.
func drawNarrative(rc *report.Context, title, text string) {
	pdf := rc.PDF
	width := rc.PrintableWidth()
	lineH := rc.LineHeight()

	_, textH := layout.WrapHeight(pdf.GetStringWidth, text, width-2*draw.CellPadding, lineH)
	boxH := textH + 2
	if floor := 3 * lineH; boxH < floor {
		boxH = floor
	}

	y := rc.BreakIfNeeded(boxH+lineH+3, nil)

	rc.SetBodyFont("B")
	pdf.Text(rc.MarginLeft(), y+lineH*0.75, title)
	rc.SetBodyFont("")
	draw.TextBox(pdf, rc.MarginLeft(), y+lineH+1, width, boxH, text, lineH, "L", layout.AlignTop)
	pdf.SetY(y + lineH + 1 + boxH + 2)
}
