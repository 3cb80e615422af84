package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// Header geometry in mm. Every template shares the three-zone structure:
// logo box | title box | page-number and issue-ID box.
const (
	headerHeight = 22.0
	logoBoxWidth = 32.0
	infoBoxWidth = 42.0
	logoImage    = "logo.png"
	qrImageName  = "issue-qr"
)

// drawHeader renders the fixed three-zone header at the top inset and
// returns the Y immediately below it.
func (c *Context) drawHeader() float64 {
	pdf := c.PDF
	x := marginLeft
	y := marginTop
	titleW := c.PrintableWidth() - logoBoxWidth - infoBoxWidth

	// Logo zone. A missing logo file leaves the box blank.
	pdf.Rect(x, y, logoBoxWidth, headerHeight, "D")
	c.drawLogo(x, y)

	// Title zone: English title over Thai title, centered.
	tx := x + logoBoxWidth
	pdf.Rect(tx, y, titleW, headerHeight, "D")
	pdf.SetFont(c.Fonts.Body, "B", titleFontSize)
	titleY := y + 8.0
	pdf.Text(tx+(titleW-pdf.GetStringWidth(c.Config.Title))/2, titleY, c.Config.Title)
	if c.Config.TitleTH != "" {
		c.SetBodyFont("")
		pdf.Text(tx+(titleW-pdf.GetStringWidth(c.Config.TitleTH))/2, titleY+6, c.Config.TitleTH)
	}
	if c.Config.DocCode != "" {
		c.SetBodyFont("")
		pdf.Text(tx+2, y+headerHeight-2, c.Config.DocCode)
	}

	// Info zone: page counter, issue ID and optionally a QR of it.
	ix := tx + titleW
	half := headerHeight / 2
	pdf.Rect(ix, y, infoBoxWidth, half, "D")
	pdf.Rect(ix, y+half, infoBoxWidth, half, "D")

	c.SetBodyFont("")
	pageLabel := fmt.Sprintf("Page %d of {nb}", pdf.PageNo())
	pdf.Text(ix+2, y+half-4, pageLabel)
	pdf.Text(ix+2, y+half+7, "Issue ID:")
	pdf.Text(ix+2, y+headerHeight-3, c.Report.IssueID)

	if c.Config.HeaderQR {
		c.drawIssueQR(ix+infoBoxWidth-half+1, y+half+1, half-2)
	}

	return y + headerHeight + 3
}

func (c *Context) drawLogo(x, y float64) {
	info := c.PDF.GetImageInfo(logoImage)
	if info == nil {
		data, ok := c.Photos.Get(c.ctx, logoImage)
		if !ok {
			return
		}
		kind := sniffImageType(data)
		if kind == "" {
			return
		}
		info = c.PDF.RegisterImageOptionsReader(logoImage,
			fpdf.ImageOptions{ImageType: kind}, bytes.NewReader(data))
		if info == nil {
			return
		}
	}
	c.PDF.ImageOptions(logoImage, x+4, y+2, logoBoxWidth-8, headerHeight-4,
		false, fpdf.ImageOptions{}, 0, "")
}

// drawIssueQR renders a QR of the issue ID in the header corner. QR failures
// leave the corner blank.
func (c *Context) drawIssueQR(x, y, size float64) {
	if c.Report.IssueID == "" {
		return
	}
	if c.PDF.GetImageInfo(qrImageName) == nil {
		png, err := qrcode.Encode(c.Report.IssueID, qrcode.Medium, 128)
		if err != nil {
			return
		}
		c.PDF.RegisterImageOptionsReader(qrImageName,
			fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	}
	c.PDF.ImageOptions(qrImageName, x, y, size, size, false, fpdf.ImageOptions{}, 0, "")
}

// drawContinuedBanner renders the continuation title line under the header on
// overflow pages and returns the Y below it.
func (c *Context) drawContinuedBanner(y float64) float64 {
	pdf := c.PDF
	pdf.SetFont(c.Fonts.Body, "B", bodyFontSize+1)
	banner := c.Config.Title + " (Continued)"
	pdf.Text(marginLeft+(c.PrintableWidth()-pdf.GetStringWidth(banner))/2, y+4, banner)
	return y + 7
}

// sniffImageType detects JPEG and PNG payloads for fpdf registration.
func sniffImageType(data []byte) string {
	switch {
	case len(data) > 3 && data[0] == 0xFF && data[1] == 0xD8:
		return "JPG"
	case len(data) > 8 && bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "PNG"
	default:
		return ""
	}
}
