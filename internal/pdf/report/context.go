// Package report implements the shared report rendering engine: page and
// header management, the checklist row composer with pagination, the photo
// grid, and footer signature blocks. Templates parameterize it with a Config
// and add their own specialized sections.
package report

import (
	"bytes"
	"context"
	"time"

	"evmaint_backend/internal/pdf/document"
	"evmaint_backend/internal/pdf/fonts"
	"evmaint_backend/internal/pdf/photos"
	"evmaint_backend/platform/config"
	"evmaint_backend/platform/logger"

	"github.com/go-pdf/fpdf"
)

// Page geometry in mm (A4 portrait).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 12.0
	marginRight  = 12.0
	marginTop    = 10.0
	marginBottom = 12.0

	bodyFontSize  = 9.0
	titleFontSize = 12.0
	lineHeight    = 4.5
)

// creationDate is pinned so rendering the same document twice produces
// byte-identical output.
var creationDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Context holds the state of one report render.
type Context struct {
	PDF    *fpdf.Fpdf
	Fonts  fonts.Fonts
	Config Config
	Report document.Report
	Photos *photos.Cache
	Log    *logger.Logger

	ctx context.Context

	// onPhotoPage suppresses the footer signature block on photo pages.
	onPhotoPage bool
	continued   bool
	bodyTop     float64
}

// NewContext prepares an fpdf document with fonts loaded and manual page
// breaks (the composer paginates itself with lookahead).
func NewContext(ctx context.Context, cfg Config, rep document.Report, renderCfg config.RenderConfig, cache *photos.Cache, log *logger.Logger) *Context {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetCreationDate(creationDate)
	pdf.SetModificationDate(creationDate)
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.AliasNbPages("")

	log = log.WithComponent("pdf")
	f := fonts.Load(pdf, renderCfg.GetFontsDir(), log)

	return &Context{
		PDF:    pdf,
		Fonts:  f,
		Config: cfg,
		Report: rep,
		Photos: cache,
		Log:    log,
		ctx:    ctx,
	}
}

// Ctx returns the request context for photo resolution.
func (c *Context) Ctx() context.Context { return c.ctx }

// SetBodyFont selects the body face at the standard size.
func (c *Context) SetBodyFont(style string) {
	c.PDF.SetFont(c.Fonts.Body, style, bodyFontSize)
}

// SetSymbolFont selects the symbol face for glyphs the body face lacks.
func (c *Context) SetSymbolFont(size float64) {
	c.PDF.SetFont(c.Fonts.Symbol, "", size)
}

// PrintableBottom is the lowest Y body content may reach on the current page:
// the bottom margin, minus the footer block when one is drawn on this page.
func (c *Context) PrintableBottom() float64 {
	bottom := pageHeight - marginBottom
	if !c.onPhotoPage && len(c.Config.Signatures) > 0 {
		bottom -= c.footerHeight()
	}
	return bottom
}

// PrintableWidth is the horizontal extent between margins.
func (c *Context) PrintableWidth() float64 {
	return pageWidth - marginLeft - marginRight
}

// MarginLeft exposes the left margin for template-level drawing.
func (c *Context) MarginLeft() float64 { return marginLeft }

// PageHeight exposes the page height for coordinate conversions.
func (c *Context) PageHeight() float64 { return pageHeight }

// LineHeight exposes the body line height for template-level drawing.
func (c *Context) LineHeight() float64 { return lineHeight }

// StartPage begins a new page: header, optional continuation banner, footer
// signature block. Returns the Y where body content starts.
func (c *Context) StartPage() float64 {
	c.PDF.AddPage()
	y := c.drawHeader()
	if c.continued {
		y = c.drawContinuedBanner(y)
	}
	if !c.onPhotoPage && len(c.Config.Signatures) > 0 {
		c.drawFooter()
	}
	c.bodyTop = y
	c.PDF.SetY(y)
	return y
}

// BreakIfNeeded starts a new page when rowHeight would cross the printable
// bottom. redraw, when non-nil, re-renders the section's column header on the
// fresh page. Returns the Y content should be drawn at.
func (c *Context) BreakIfNeeded(rowHeight float64, redraw func(y float64) float64) float64 {
	y := c.PDF.GetY()
	if y+rowHeight <= c.PrintableBottom() {
		return y
	}

	c.continued = true
	y = c.StartPage()
	if redraw != nil {
		y = redraw(y)
		c.PDF.SetY(y)
	}
	return y
}

// BeginPhotoSection flags subsequent pages as photo pages, which suppresses
// the footer signature block.
func (c *Context) BeginPhotoSection() {
	c.onPhotoPage = true
}

// NewSectionPage starts a fresh page for a new top-level section, clearing
// any continuation state so the page carries the plain title banner.
func (c *Context) NewSectionPage() float64 {
	c.continued = false
	return c.StartPage()
}

// Output closes the document and returns its bytes plus the page count.
func (c *Context) Output() ([]byte, int, error) {
	pages := c.PDF.PageNo()
	var buf bytes.Buffer
	if err := c.PDF.Output(&buf); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), pages, nil
}
