package templates

import (
	"context"

	"evmaint_backend/internal/pdf/document"
	"evmaint_backend/internal/pdf/report"
)

var ccbConfig = report.Config{
	Name:    "ccb",
	Title:   "Charger Circuit Breaker Preventive Maintenance Report",
	TitleTH: "รายงานการบำรุงรักษาเชิงป้องกัน ตู้เบรกเกอร์เครื่องอัดประจุ (CCB)",
	DocCode: "FM-PM-CCB-01",

	ColItemW:     96,
	ColResultW:   46,
	ColRemarkW:   44,
	MinRowHeight: 7,

	ReservedLines: map[int]int{8: 7},
	MeasureRules: map[int]report.MeasureRule{
		8: {
			Set:    "ccb_v",
			Keys:   []string{"l1n", "l2n", "l3n", "l1l2", "l2l3", "l3l1"},
			Labels: []string{"L1-N", "L2-N", "L3-N", "L1-L2", "L2-L3", "L3-L1"},
			Unit:   "V",
		},
	},

	RowTitles: map[string]string{
		"r1":  "ตรวจสอบสภาพภายนอกตู้ CCB / Check CCB enclosure exterior condition",
		"r2":  "ทำความสะอาดภายในตู้ / Clean panel interior",
		"r3":  "ตรวจสอบความแน่นของขั้วต่อสาย / Check tightness of terminations",
		"r4":  "ตรวจสอบเบรกเกอร์แต่ละวงจร / Inspect branch circuit breakers",
		"r5":  "ทดสอบอุปกรณ์ป้องกันไฟรั่ว (RCD) / Test residual current devices",
		"r6":  "ตรวจสอบร่องรอยความร้อนผิดปกติ / Inspect for overheating signs",
		"r7":  "ตรวจสอบระบบต่อลงดิน / Check earthing connections",
		"r8":  "วัดแรงดันไฟฟ้า / Measure voltage",
		"r9":  "ตรวจสอบซีลกันน้ำและประตูตู้ / Check door seals and locking",
		"r10": "ตรวจสอบป้ายชื่อวงจร / Check circuit labelling",
	},

	PhotosPerRow: 3,
	PhotoSlotH:   38,
	MaxPhotos:    6,

	Signatures: []string{"Performed by", "Approved by", "Witnessed by"},
}

func renderCCB(ctx context.Context, rep document.Report, deps Deps) ([]byte, int, error) {
	return renderPM(ctx, rep, deps, ccbConfig, pmHeadFields)
}
