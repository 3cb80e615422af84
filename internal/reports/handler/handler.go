// Package handler exposes the reports module's HTTP endpoints.
package handler

import (
	"fmt"
	"net/http"

	"evmaint_backend/internal/reports/service"
	"evmaint_backend/internal/reports/transport"
	"evmaint_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const contentTypePDF = "application/pdf"

// Handler handles HTTP requests for report listing and PDF generation.
type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// List returns report summaries visible to the caller.
// GET /api/v1/reports?type=&station=
func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	summaries, err := h.svc.List(c.Request.Context(),
		c.Query("type"), c.Query("station"),
		identity.HasRole("admin"), identity.Stations())
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.SummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, transport.SummaryResponse{
			ID:        s.ID,
			Type:      s.Type,
			IssueID:   s.IssueID,
			StationID: s.StationID,
			CreatedAt: s.CreatedAt,
		})
	}
	httpkit.OK(c, transport.ListResponse{Items: items, Total: len(items)})
}

// Get returns one raw report document.
// GET /api/v1/reports/:type/:id
func (h *Handler) Get(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	doc, err := h.svc.Get(c.Request.Context(), c.Param("type"), c.Param("id"),
		identity.HasRole("admin"), identity.Stations())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, doc)
}

// PDF renders a report document and serves the PDF, inline by default or as
// a download when ?download=1.
// GET /api/v1/reports/:type/:id/pdf
func (h *Handler) PDF(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	rendered, err := h.svc.Render(c.Request.Context(), c.Param("type"), c.Param("id"),
		identity.HasRole("admin"), identity.Stations())
	if httpkit.HandleError(c, err) {
		return
	}

	name := rendered.IssueID
	if name == "" {
		name = c.Param("id")
	}
	servePDFBytes(c, name, c.Query("download") == "1", rendered.Bytes)
}

func servePDFBytes(c *gin.Context, name string, download bool, pdfBytes []byte) {
	disposition := "inline"
	if download {
		disposition = "attachment"
	}
	c.Header("Content-Type", contentTypePDF)
	c.Header("Content-Disposition", fmt.Sprintf(`%s; filename="%s.pdf"`, disposition, name))
	c.Data(http.StatusOK, contentTypePDF, pdfBytes)
}
