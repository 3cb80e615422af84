// Package merge implements the attachment merge engine for DC test reports:
// it appends referenced instrument PDFs to the rendered report, adds
// bookmarks for each attachment, and stamps clickable link annotations onto
// the report's attachment index page.
package merge

import (
	"bytes"
	"fmt"
	"io"

	"evmaint_backend/platform/logger"

	ledongthuc "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Attachment is one test-file reference scheduled for the merge. TargetPage
// is assigned during planning: the 1-based page the attachment's first page
// will occupy in the merged output.
type Attachment struct {
	Bookmark   string
	Data       []byte
	IsPDF      bool
	Pages      int
	TargetPage int

	// LinkRect is the index-page row rectangle (mm, top-left origin) that
	// becomes a clickable link, and LinkPage the 1-based page it sits on.
	LinkRect MMRect
	LinkPage int
}

// CountPages reports the page count of a PDF held in memory.
func CountPages(data []byte) (int, error) {
	r, err := ledongthuc.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}
	return r.NumPage(), nil
}

// Plan assigns destination pages by sequential accumulation: the first PDF
// attachment lands right after the main document's last page, each following
// one after the previous attachment's pages. Non-PDF attachments get no
// destination. Returns the total merged page count.
func Plan(mainPages int, atts []*Attachment) int {
	next := mainPages + 1
	for _, att := range atts {
		if !att.IsPDF || att.Pages == 0 {
			continue
		}
		att.TargetPage = next
		next += att.Pages
	}
	return next - 1
}

// Merge appends every plannable attachment to the main document and
// decorates the result with bookmarks and index-page link annotations.
// An attachment that cannot be processed is skipped; merging only the main
// document is still a success.
func Merge(main []byte, mainPages int, pageHeightMM float64, atts []*Attachment, log *logger.Logger) ([]byte, error) {
	log = log.WithComponent("merge")

	readers := []io.ReadSeeker{bytes.NewReader(main)}
	merged := make([]*Attachment, 0, len(atts))
	for _, att := range atts {
		if !att.IsPDF || att.Pages == 0 || att.TargetPage == 0 {
			continue
		}
		readers = append(readers, bytes.NewReader(att.Data))
		merged = append(merged, att)
	}
	if len(merged) == 0 {
		return main, nil
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, conf); err != nil {
		return nil, fmt.Errorf("merging attachments: %w", err)
	}

	out, err := addBookmarks(buf.Bytes(), merged, conf)
	if err != nil {
		// Bookmarks are decoration; keep the merged document.
		log.Warn("adding bookmarks failed", "error", err)
		out = buf.Bytes()
	}

	out, err = addLinks(out, pageHeightMM, merged, conf)
	if err != nil {
		log.Warn("adding link annotations failed", "error", err)
	}
	return out, nil
}

func addBookmarks(data []byte, atts []*Attachment, conf *model.Configuration) ([]byte, error) {
	bms := make([]pdfcpu.Bookmark, 0, len(atts)+1)
	bms = append(bms, pdfcpu.Bookmark{Title: "Test Report", PageFrom: 1})
	for _, att := range atts {
		bms = append(bms, pdfcpu.Bookmark{Title: att.Bookmark, PageFrom: att.TargetPage})
	}

	var buf bytes.Buffer
	if err := api.AddBookmarks(bytes.NewReader(data), &buf, bms, true, conf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addLinks(data []byte, pageHeightMM float64, atts []*Attachment, conf *model.Configuration) ([]byte, error) {
	current := data
	for _, att := range atts {
		if att.LinkPage == 0 || att.LinkRect.W <= 0 {
			continue
		}

		pr := MMRectToPDFPoints(pageHeightMM, att.LinkRect)
		rect := types.NewRectangle(pr.LLX, pr.LLY, pr.URX, pr.URY)
		dest := &model.Destination{Typ: model.DestFit, PageNr: att.TargetPage}
		ann := model.NewLinkAnnotation(*rect, 0, "", att.Bookmark, "", model.AnnNoZoom, nil, dest, "", nil, false, 0, model.BSSolid)

		var buf bytes.Buffer
		pages := []string{fmt.Sprintf("%d", att.LinkPage)}
		if err := api.AddAnnotations(bytes.NewReader(current), &buf, pages, ann, conf); err != nil {
			return current, err
		}
		current = buf.Bytes()
	}
	return current, nil
}
