// Package handler exposes the telemetry endpoints: a latest-sample lookup and
// a Server-Sent Events stream that polls MongoDB for new samples.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"evmaint_backend/internal/telemetry/repository"
	"evmaint_backend/internal/telemetry/sse"
	"evmaint_backend/platform/config"
	"evmaint_backend/platform/httpkit"
	"evmaint_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// pollBatchLimit caps how many samples one poll tick may push to a client.
const pollBatchLimit = 100

// Handler handles telemetry HTTP requests.
type Handler struct {
	repo *repository.Repository
	hub  *sse.Hub
	cfg  config.TelemetryConfig
	log  *logger.Logger
}

func New(repo *repository.Repository, hub *sse.Hub, cfg config.TelemetryConfig, log *logger.Logger) *Handler {
	return &Handler{repo: repo, hub: hub, cfg: cfg, log: log.WithComponent("telemetry")}
}

// Latest returns the most recent telemetry sample for a station.
// GET /api/v1/stations/:id/telemetry/latest
func (h *Handler) Latest(c *gin.Context) {
	stationID := c.Param("id")

	sample, err := h.repo.Latest(c.Request.Context(), stationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httpkit.Error(c, http.StatusNotFound, "no telemetry for station", nil)
			return
		}
		h.log.DatabaseError("telemetry.latest", err)
		httpkit.Error(c, http.StatusInternalServerError, "failed to load telemetry", nil)
		return
	}
	httpkit.OK(c, sample)
}

// Stream is a long-lived SSE response pushing new telemetry samples for a
// station. It polls the telemetry collection at the configured interval for
// samples newer than the last one sent, and relays hub events (such as
// report_generated) for the same station. A heartbeat comment is written on
// every empty poll so proxies keep the connection alive.
// GET /api/v1/stations/:id/telemetry/stream
func (h *Handler) Stream(c *gin.Context) {
	stationID := c.Param("id")

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	client := h.hub.Subscribe(stationID)
	defer h.hub.Unsubscribe(client)

	c.SSEvent(string(sse.EventConnected), gin.H{"stationId": stationID})
	c.Writer.Flush()

	// Start from the newest stored sample so the client gets an immediate
	// snapshot, then only deltas.
	lastTS := time.Now().UTC()
	if latest, err := h.repo.Latest(c.Request.Context(), stationID); err == nil {
		h.sendSample(c, latest)
		lastTS = latest.TS
	}

	ticker := time.NewTicker(h.cfg.GetTelemetryPollInterval())
	defer ticker.Stop()

	clientGone := c.Request.Context().Done()
	for {
		select {
		case <-clientGone:
			return

		case event, ok := <-client.Events:
			if !ok {
				return
			}
			payload, _ := json.Marshal(event)
			c.SSEvent(string(event.Type), string(payload))
			c.Writer.Flush()

		case <-ticker.C:
			samples, err := h.repo.Since(c.Request.Context(), stationID, lastTS, pollBatchLimit)
			if err != nil {
				if c.Request.Context().Err() != nil {
					return
				}
				h.log.DatabaseError("telemetry.poll", err)
				continue
			}
			if len(samples) == 0 {
				fmt.Fprint(c.Writer, ": ping\n\n")
				c.Writer.Flush()
				continue
			}
			for _, sample := range samples {
				h.sendSample(c, sample)
				lastTS = sample.TS
			}
		}
	}
}

func (h *Handler) sendSample(c *gin.Context, sample repository.Sample) {
	payload, _ := json.Marshal(sample)
	c.SSEvent(string(sse.EventTelemetry), string(payload))
	c.Writer.Flush()
}
