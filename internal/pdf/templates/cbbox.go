package templates

import (
	"context"

	"evmaint_backend/internal/pdf/document"
	"evmaint_backend/internal/pdf/report"
)

var cbboxConfig = report.Config{
	Name:    "cbbox",
	Title:   "Circuit Breaker Box Preventive Maintenance Report",
	TitleTH: "รายงานการบำรุงรักษาเชิงป้องกัน กล่องเบรกเกอร์ (CB BOX)",
	DocCode: "FM-PM-CBB-01",

	ColItemW:     96,
	ColResultW:   46,
	ColRemarkW:   44,
	MinRowHeight: 7,

	RowTitles: map[string]string{
		"r1": "ตรวจสอบสภาพภายนอกกล่องเบรกเกอร์ / Check breaker box exterior condition",
		"r2": "ตรวจสอบการยึดติดกับผนังหรือโครงสร้าง / Check mounting to wall or structure",
		"r3": "ทำความสะอาดภายในกล่อง / Clean box interior",
		"r4": "ตรวจสอบความแน่นของขั้วต่อสาย / Check tightness of terminations",
		"r5": "ตรวจสอบสภาพเบรกเกอร์ / Inspect breaker condition",
		"r6": "ตรวจสอบระบบต่อลงดิน / Check earthing connection",
		"r7": "ตรวจสอบซีลกันน้ำ / Check weatherproof seals",
		"r8": "ตรวจสอบป้ายเตือนอันตราย / Check hazard warning labels",
	},

	PhotosPerRow: 3,
	PhotoSlotH:   38,
	MaxPhotos:    6,

	Signatures: []string{"Performed by", "Approved by", "Witnessed by"},
}

func renderCBBox(ctx context.Context, rep document.Report, deps Deps) ([]byte, int, error) {
	return renderPM(ctx, rep, deps, cbboxConfig, pmHeadFields)
}
