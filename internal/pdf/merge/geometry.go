package merge

// mmToPoint converts millimeters to PDF point units.
const mmToPoint = 72.0 / 25.4

// MMRect is a rectangle in page millimeter coordinates with the origin at
// the top-left corner, Y growing downward (the drawing library's system).
type MMRect struct {
	X, Y, W, H float64
}

// PDFRect is a rectangle in PDF point units with the origin at the
// bottom-left corner, Y growing upward, expressed as lower-left and
// upper-right corners.
type PDFRect struct {
	LLX, LLY, URX, URY float64
}

// MMRectToPDFPoints converts a millimeter rectangle into PDF point
// coordinates, flipping the Y axis against the page height.
func MMRectToPDFPoints(pageHeightMM float64, r MMRect) PDFRect {
	return PDFRect{
		LLX: r.X * mmToPoint,
		LLY: (pageHeightMM - r.Y - r.H) * mmToPoint,
		URX: (r.X + r.W) * mmToPoint,
		URY: (pageHeightMM - r.Y) * mmToPoint,
	}
}
