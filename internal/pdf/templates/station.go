package templates

import (
	"context"

	"evmaint_backend/internal/pdf/document"
	"evmaint_backend/internal/pdf/report"
)

var stationConfig = report.Config{
	Name:    "station",
	Title:   "Charging Station Preventive Maintenance Report",
	TitleTH: "รายงานการบำรุงรักษาเชิงป้องกัน สถานีอัดประจุไฟฟ้า",
	DocCode: "FM-PM-STN-01",

	ColItemW:     96,
	ColResultW:   46,
	ColRemarkW:   44,
	MinRowHeight: 7,

	RowTitles: map[string]string{
		"r1":  "ตรวจสอบสภาพพื้นผิวลานจอดและช่องจอด / Check parking bay surface and markings",
		"r2":  "ตรวจสอบหลังคาและโครงสร้างกันฝน / Check canopy and weather protection structure",
		"r3":  "ตรวจสอบแสงสว่างบริเวณสถานี / Check station lighting",
		"r4":  "ตรวจสอบป้ายสถานีและป้ายแนะนำการใช้งาน / Check station signage and usage instructions",
		"r5":  "ตรวจสอบกล้องวงจรปิด / Check CCTV operation",
		"r6":  "ตรวจสอบเสาหลักกันชน / Check protective bollards",
		"r7":  "ตรวจสอบระบบระบายน้ำ / Check drainage system",
		"r8":  "ตรวจสอบถังดับเพลิง / Check fire extinguisher presence and expiry",
		"r9":  "ตรวจสอบความสะอาดโดยรวมของสถานี / Check overall station cleanliness",
		"r10": "ตรวจสอบจุดเชื่อมต่อสื่อสารของสถานี / Check station communication cabinet",
	},

	PhotosPerRow: 3,
	PhotoSlotH:   38,
	MaxPhotos:    6,

	Signatures: []string{"Performed by", "Approved by", "Witnessed by"},
}

func renderStation(ctx context.Context, rep document.Report, deps Deps) ([]byte, int, error) {
	return renderPM(ctx, rep, deps, stationConfig, pmHeadFields)
}
