package report

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"evmaint_backend/internal/pdf/document"
	"evmaint_backend/internal/pdf/draw"
	"evmaint_backend/internal/pdf/layout"

	"github.com/go-pdf/fpdf"
)

const (
	photoQuestionColW = 52.0
	photoCellPad      = 1.5
	photoHeaderH      = 6.0
)

// DrawPhotoSection renders the reference-photo pages: a two-column table of
// question text and a photo grid, starting on a fresh page with the footer
// signature block suppressed. Groups render in ascending numeric key order.
// Missing photo files render as centered "-" placeholders.
func (c *Context) DrawPhotoSection(title string, groups map[string][]document.Photo) {
	keys := sortedGroupKeys(groups)
	if len(keys) == 0 {
		return
	}

	// Warm the cache across workers before any drawing happens.
	var urls []string
	for _, key := range keys {
		for _, p := range groups[key] {
			urls = append(urls, p.URL)
		}
	}
	c.Photos.Warm(c.ctx, urls)

	c.BeginPhotoSection()
	y := c.NewSectionPage()

	c.SetBodyFont("B")
	c.PDF.Text(marginLeft, y+4, title)
	c.SetBodyFont("")
	y = c.drawPhotoColumnHeader(y + 6)
	c.PDF.SetY(y)

	for _, key := range keys {
		photos := groups[key]
		if c.Config.MaxPhotos > 0 && len(photos) > c.Config.MaxPhotos {
			photos = photos[:c.Config.MaxPhotos]
		}
		rowH := c.photoRowHeight(key, photos)
		y = c.BreakIfNeeded(rowH, func(newY float64) float64 {
			c.SetBodyFont("")
			return c.drawPhotoColumnHeader(newY)
		})
		c.drawPhotoRow(y, key, photos, rowH)
		c.PDF.SetY(y + rowH)
	}
}

func (c *Context) drawPhotoColumnHeader(y float64) float64 {
	pdf := c.PDF
	gridW := c.PrintableWidth() - photoQuestionColW

	c.SetBodyFont("B")
	pdf.Rect(marginLeft, y, photoQuestionColW, photoHeaderH, "D")
	pdf.Text(marginLeft+(photoQuestionColW-pdf.GetStringWidth("Item / Question"))/2, y+photoHeaderH-1.8, "Item / Question")
	pdf.Rect(marginLeft+photoQuestionColW, y, gridW, photoHeaderH, "D")
	pdf.Text(marginLeft+photoQuestionColW+(gridW-pdf.GetStringWidth("Reference Photos"))/2, y+photoHeaderH-1.8, "Reference Photos")
	c.SetBodyFont("")
	return y + photoHeaderH
}

// photoRowHeight is the max of the wrapped question text and the photo grid's
// stacked line heights.
func (c *Context) photoRowHeight(key string, photos []document.Photo) float64 {
	_, textH := layout.WrapHeight(c.PDF.GetStringWidth, c.photoQuestion(key),
		photoQuestionColW-2*draw.CellPadding, lineHeight)

	perRow := c.Config.PhotosPerRow
	if perRow < 1 {
		perRow = 3
	}
	gridLines := (len(photos) + perRow - 1) / perRow
	if gridLines < 1 {
		gridLines = 1
	}
	gridH := float64(gridLines)*(c.Config.PhotoSlotH+2*photoCellPad) + photoCellPad

	if textH+2*photoCellPad > gridH {
		return textH + 2*photoCellPad
	}
	return gridH
}

func (c *Context) drawPhotoRow(y float64, key string, photos []document.Photo, rowH float64) {
	pdf := c.PDF
	gridW := c.PrintableWidth() - photoQuestionColW

	draw.TextBox(pdf, marginLeft, y, photoQuestionColW, rowH, c.photoQuestion(key), lineHeight, "L", layout.AlignTop)
	pdf.Rect(marginLeft+photoQuestionColW, y, gridW, rowH, "D")

	perRow := c.Config.PhotosPerRow
	if perRow < 1 {
		perRow = 3
	}
	slotW := (gridW - float64(perRow+1)*photoCellPad) / float64(perRow)

	for i, photo := range photos {
		col := i % perRow
		line := i / perRow
		slotX := marginLeft + photoQuestionColW + photoCellPad + float64(col)*(slotW+photoCellPad)
		slotY := y + photoCellPad + float64(line)*(c.Config.PhotoSlotH+2*photoCellPad)
		c.drawPhotoSlot(slotX, slotY, slotW, c.Config.PhotoSlotH, photo)
	}
	if len(photos) == 0 {
		c.drawPlaceholder(marginLeft+photoQuestionColW, y, gridW, rowH)
	}
}

// drawPhotoSlot letterboxes one photo into its slot, or draws the "-"
// placeholder when the photo cannot be resolved or registered.
func (c *Context) drawPhotoSlot(x, y, w, h float64, photo document.Photo) {
	data, ok := c.Photos.Get(c.ctx, photo.URL)
	if !ok {
		c.drawPlaceholder(x, y, w, h)
		return
	}
	kind := sniffImageType(data)
	if kind == "" {
		c.drawPlaceholder(x, y, w, h)
		return
	}

	name := "photo:" + photo.URL
	info := c.PDF.GetImageInfo(name)
	if info == nil {
		info = c.PDF.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: kind}, bytes.NewReader(data))
	}
	if info == nil || info.Width() <= 0 || info.Height() <= 0 {
		c.drawPlaceholder(x, y, w, h)
		return
	}

	scale := w / info.Width()
	if s := h / info.Height(); s < scale {
		scale = s
	}
	drawW := info.Width() * scale
	drawH := info.Height() * scale
	c.PDF.ImageOptions(name, x+(w-drawW)/2, y+(h-drawH)/2, drawW, drawH, false, fpdf.ImageOptions{}, 0, "")
}

func (c *Context) drawPlaceholder(x, y, w, h float64) {
	c.PDF.Text(x+(w-c.PDF.GetStringWidth("-"))/2, y+h/2, "-")
}

// photoQuestion maps a photo group key (g<N> or r<N>) to its question text,
// reusing the checklist titles where the keys line up.
func (c *Context) photoQuestion(key string) string {
	rowKey := key
	if strings.HasPrefix(key, "g") {
		rowKey = "r" + key[1:]
	}
	if title, ok := c.Config.RowTitles[rowKey]; ok {
		return title
	}
	if idx, ok := groupIndex(key); ok {
		return fmt.Sprintf("Item %d", idx)
	}
	return key
}

func groupIndex(key string) (int, bool) {
	if len(key) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(key[1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// sortedGroupKeys orders group keys numerically, skipping malformed ones.
func sortedGroupKeys(groups map[string][]document.Photo) []string {
	type entry struct {
		key string
		idx int
	}
	entries := make([]entry, 0, len(groups))
	for key := range groups {
		idx, ok := groupIndex(key)
		if !ok {
			continue
		}
		entries = append(entries, entry{key: key, idx: idx})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].idx < entries[j].idx })

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.key)
	}
	return keys
}
