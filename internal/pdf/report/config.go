package report

// MeasureRule attaches a derived measurement string to a checklist row. The
// values come from the report's measurement set named by Set; each key is
// printed as "<label>: <value> <unit>" on its own line after the row title.
type MeasureRule struct {
	Set    string
	Keys   []string
	Labels []string
	Unit   string
}

// Config carries the per-template layout parameters that drive the shared
// rendering engine: titles, the static row-title table, column geometry, and
// photo grid shape. One Config per report template, compiled in.
type Config struct {
	// Template identity.
	Name    string
	Title   string
	TitleTH string
	DocCode string

	// RowTitles maps row keys ("r1", "r1_sub2") to display titles.
	RowTitles map[string]string

	// Checklist column widths in mm. Item + Result + Remark should equal the
	// printable width.
	ColItemW   float64
	ColResultW float64
	ColRemarkW float64

	// MinRowHeight is the floor for one checklist row in mm.
	MinRowHeight float64

	// ReservedLines widens known-large rows: row index -> line count the
	// remark column reserves regardless of actual text.
	ReservedLines map[int]int

	// MeasureRules maps row indices to derived measurement strings.
	MeasureRules map[int]MeasureRule

	// Photo grid shape.
	PhotosPerRow int
	PhotoSlotH   float64
	MaxPhotos    int

	// Signatures names the footer signature blocks, in order. Empty means the
	// template has no footer block.
	Signatures []string

	// HeaderQR renders an issue-ID QR code in the header's right zone.
	HeaderQR bool
}

// printableWidth is the checklist width implied by the column config.
func (c Config) printableWidth() float64 {
	return c.ColItemW + c.ColResultW + c.ColRemarkW
}
