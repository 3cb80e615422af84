package report

// Footer signature block geometry in mm.
const (
	signatureRowH   = 5.0
	signatureRows   = 4 // name, signature, date, company
	footerTopMargin = 3.0
)

// footerHeight is the vertical space the signature block reserves at the
// bottom of content pages.
func (c *Context) footerHeight() float64 {
	if len(c.Config.Signatures) == 0 {
		return 0
	}
	return footerTopMargin + signatureRowH*(signatureRows+1)
}

// drawFooter renders the repeating signature block at a fixed distance from
// the page bottom: one column per signatory, each with name/signature/date/
// company sub-rows. Photo pages suppress it.
func (c *Context) drawFooter() {
	sigs := c.Config.Signatures
	if len(sigs) == 0 {
		return
	}

	pdf := c.PDF
	colW := c.PrintableWidth() / float64(len(sigs))
	top := pageHeight - marginBottom - signatureRowH*(signatureRows+1)

	c.SetBodyFont("B")
	for i, title := range sigs {
		x := marginLeft + float64(i)*colW
		pdf.Rect(x, top, colW, signatureRowH, "D")
		pdf.Text(x+(colW-pdf.GetStringWidth(title))/2, top+signatureRowH-1.5, title)
	}

	c.SetBodyFont("")
	labels := []string{"Name", "Signature", "Date", "Company"}
	for r, label := range labels {
		y := top + signatureRowH*float64(r+1)
		for i := range sigs {
			x := marginLeft + float64(i)*colW
			pdf.Rect(x, y, colW, signatureRowH, "D")
			pdf.Text(x+1.5, y+signatureRowH-1.5, label+":")
		}
	}
}
