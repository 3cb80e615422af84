package templates

import (
	"context"

	"evmaint_backend/internal/pdf/document"
	"evmaint_backend/internal/pdf/report"
)

var mdbConfig = report.Config{
	Name:    "mdb",
	Title:   "Main Distribution Board Preventive Maintenance Report",
	TitleTH: "รายงานการบำรุงรักษาเชิงป้องกัน ตู้จ่ายไฟฟ้าหลัก (MDB)",
	DocCode: "FM-PM-MDB-01",

	ColItemW:     96,
	ColResultW:   46,
	ColRemarkW:   44,
	MinRowHeight: 7,

	ReservedLines: map[int]int{10: 7},
	MeasureRules: map[int]report.MeasureRule{
		10: {
			Set:    "mdb_v",
			Keys:   []string{"l1n", "l2n", "l3n", "l1l2", "l2l3", "l3l1"},
			Labels: []string{"L1-N", "L2-N", "L3-N", "L1-L2", "L2-L3", "L3-L1"},
			Unit:   "V",
		},
		11: {
			Set:    "mdb_a",
			Keys:   []string{"l1", "l2", "l3", "n"},
			Labels: []string{"L1", "L2", "L3", "N"},
			Unit:   "A",
		},
	},

	RowTitles: map[string]string{
		"r1":      "ตรวจสอบสภาพภายนอกตู้ MDB / Check MDB enclosure exterior condition",
		"r2":      "ตรวจสอบป้ายชื่อวงจรและแผนผังไฟฟ้า / Check circuit labels and single-line diagram",
		"r3":      "ทำความสะอาดภายในตู้ / Clean panel interior",
		"r4":      "ตรวจสอบความแน่นของขั้วต่อสาย / Check and torque busbar and cable terminations",
		"r5":      "ตรวจสอบร่องรอยความร้อนผิดปกติ / Inspect for signs of overheating or discoloration",
		"r6":      "ตรวจสอบเซอร์กิตเบรกเกอร์หลัก / Inspect main circuit breaker",
		"r6_sub1": "ทดสอบกลไกปลดวงจร / Test trip mechanism",
		"r6_sub2": "ตรวจสอบหน้าสัมผัส / Inspect contacts",
		"r7":      "ตรวจสอบอุปกรณ์ป้องกันแรงดันเกิน (Surge Protection) / Check surge protection device",
		"r8":      "ตรวจสอบระบบต่อลงดินของตู้ / Check panel earthing connections",
		"r9":      "ตรวจสอบซีลกันน้ำและประตูตู้ / Check door seals and locking",
		"r10":     "วัดแรงดันไฟฟ้า / Measure voltage",
		"r11":     "วัดกระแสโหลด / Measure load current",
		"r12":     "ตรวจสอบอุณหภูมิจุดต่อด้วยกล้องความร้อน / Thermal scan of terminations",
	},

	PhotosPerRow: 3,
	PhotoSlotH:   38,
	MaxPhotos:    6,

	Signatures: []string{"Performed by", "Approved by", "Witnessed by"},
}

func renderMDB(ctx context.Context, rep document.Report, deps Deps) ([]byte, int, error) {
	return renderPM(ctx, rep, deps, mdbConfig, pmHeadFields)
}
