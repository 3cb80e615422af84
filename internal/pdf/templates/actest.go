package templates

import (
	"context"

	"evmaint_backend/internal/pdf/document"
	"evmaint_backend/internal/pdf/report"
)

var acTestConfig = report.Config{
	Name:    "actest",
	Title:   "AC Charger Safety Test Report",
	TitleTH: "รายงานผลการทดสอบเครื่องอัดประจุไฟฟ้ากระแสสลับ",
	DocCode: "FM-TST-AC-01",

	RowTitles: map[string]string{},

	PhotosPerRow: 3,
	PhotoSlotH:   38,
	MaxPhotos:    6,

	Signatures: []string{"Tested by", "Reviewed by", "Approved by"},
	HeaderQR:   true,
}

func renderACTest(ctx context.Context, rep document.Report, deps Deps) ([]byte, int, error) {
	return renderTest(ctx, rep, deps, acTestConfig, false)
}
