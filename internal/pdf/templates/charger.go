package templates

import (
	"context"

	"evmaint_backend/internal/pdf/document"
	"evmaint_backend/internal/pdf/report"
)

var chargerConfig = report.Config{
	Name:    "charger",
	Title:   "EV Charger Preventive Maintenance Report",
	TitleTH: "รายงานการบำรุงรักษาเชิงป้องกัน เครื่องอัดประจุไฟฟ้า",
	DocCode: "FM-PM-CHG-01",

	ColItemW:     92,
	ColResultW:   48,
	ColRemarkW:   46,
	MinRowHeight: 7,

	// r16 carries the six-line supply voltage block, r17 the CP reading.
	ReservedLines: map[int]int{16: 7},
	MeasureRules: map[int]report.MeasureRule{
		16: {
			Set:    "m16",
			Keys:   []string{"l1n", "l2n", "l3n", "l1l2", "l2l3", "l3l1"},
			Labels: []string{"L1-N", "L2-N", "L3-N", "L1-L2", "L2-L3", "L3-L1"},
			Unit:   "V",
		},
		17: {
			Set:    "cp",
			Keys:   []string{"value"},
			Labels: []string{"CP"},
			Unit:   "V",
		},
	},

	RowTitles: map[string]string{
		"r1":  "ตรวจสอบสภาพภายนอกตู้ชาร์จ / Check charger cabinet exterior condition",
		"r2":  "ตรวจสอบป้ายเตือนและสัญลักษณ์ความปลอดภัย / Check warning labels and safety signs",
		"r3":  "ตรวจสอบสภาพสายชาร์จและหัวชาร์จ / Check charging cable and connector condition",
		"r4":  "ตรวจสอบจอแสดงผลและไฟแสดงสถานะ / Check display screen and status indicators",
		"r5":  "ตรวจสอบปุ่มหยุดฉุกเฉิน / Test emergency stop button",
		"r6":  "ทำความสะอาดภายในตู้และแผงกรองอากาศ / Clean cabinet interior and air filters",
		"r7":  "ตรวจสอบพัดลมระบายความร้อน / Check cooling fans operation",
		"r8":  "ตรวจสอบความแน่นของจุดต่อสายไฟ / Check tightness of electrical terminations",
		"r9":  "ตรวจสอบสภาพฉนวนสายไฟภายใน / Check internal wiring insulation condition",
		"r10": "ตรวจสอบอุปกรณ์ป้องกันกระแสเกิน / Check overcurrent protection devices",
		"r11": "ทดสอบอุปกรณ์ป้องกันไฟรั่ว (RCD) / Test residual current device (RCD)",
		"r12": "ตรวจสอบระบบต่อลงดิน / Check earthing system continuity",
		"r13": "ตรวจสอบการเชื่อมต่อเครือข่ายและระบบสื่อสาร / Check network and communication link",
		"r14": "ทดสอบการอ่านค่ามิเตอร์ไฟฟ้า / Verify energy meter readings",
		"r15": "ทดสอบวงจรชาร์จกับรถยนต์ทดสอบ / Perform charging test with test vehicle",
		"r16": "วัดแรงดันไฟฟ้าด้านเข้า / Measure supply voltage",
		"r17": "วัดสัญญาณ Control Pilot / Measure Control Pilot signal",
		"r18": "ตรวจสอบความสะอาดบริเวณโดยรอบ / Check cleanliness of surrounding area",
	},

	PhotosPerRow: 3,
	PhotoSlotH:   38,
	MaxPhotos:    6,

	Signatures: []string{"Performed by", "Approved by", "Witnessed by"},
}

var chargerHeadFields = append(pmHeadFields,
	headField{"Charger Brand", "charger_brand"},
	headField{"Charger Model", "charger_model"},
	headField{"Serial Number", "serial_no"},
	headField{"Charger Power (kW)", "charger_power"},
)

func renderCharger(ctx context.Context, rep document.Report, deps Deps) ([]byte, int, error) {
	return renderPM(ctx, rep, deps, chargerConfig, chargerHeadFields)
}
