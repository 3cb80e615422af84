// Package handler exposes the stations module's HTTP endpoints.
package handler

import (
	"net/http"

	"evmaint_backend/internal/stations/service"
	"evmaint_backend/internal/stations/transport"
	"evmaint_backend/platform/httpkit"
	"evmaint_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for station management.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func toStationResponse(s service.Station) transport.StationResponse {
	return transport.StationResponse{
		Code:      s.Code,
		Name:      s.Name,
		NameTH:    s.NameTH,
		Address:   s.Address,
		Province:  s.Province,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Brand:     s.Brand,
		Chargers:  s.Chargers,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// List returns the stations visible to the caller.
// GET /api/v1/stations
func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	stations, err := h.svc.List(c.Request.Context(), identity.HasRole("admin"), identity.Stations())
	if httpkit.HandleError(c, err) {
		return
	}
	items := make([]transport.StationResponse, 0, len(stations))
	for _, s := range stations {
		items = append(items, toStationResponse(s))
	}
	httpkit.OK(c, transport.StationListResponse{Items: items, Total: len(items)})
}

// Get returns one station by code.
// GET /api/v1/stations/:id
func (h *Handler) Get(c *gin.Context) {
	station, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toStationResponse(station))
}

// Create provisions a new station.
// POST /api/v1/admin/stations
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	station, err := h.svc.Create(c.Request.Context(), service.CreateInput{
		Code:      req.Code,
		Name:      req.Name,
		NameTH:    req.NameTH,
		Address:   req.Address,
		Province:  req.Province,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Brand:     req.Brand,
		Chargers:  req.Chargers,
		Status:    req.Status,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, toStationResponse(station))
}

// Update applies partial changes to a station.
// PUT /api/v1/admin/stations/:id
func (h *Handler) Update(c *gin.Context) {
	var req transport.UpdateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	station, err := h.svc.Update(c.Request.Context(), c.Param("id"), service.UpdateInput{
		Name:      req.Name,
		NameTH:    req.NameTH,
		Address:   req.Address,
		Province:  req.Province,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Brand:     req.Brand,
		Chargers:  req.Chargers,
		Status:    req.Status,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toStationResponse(station))
}

// Delete removes a station.
// DELETE /api/v1/admin/stations/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}
