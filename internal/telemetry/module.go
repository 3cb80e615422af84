// Package telemetry provides the live telemetry bounded context module:
// an SSE hub plus MongoDB polling streams per connected client.
package telemetry

import (
	"context"

	"evmaint_backend/internal/events"
	apphttp "evmaint_backend/internal/http"
	"evmaint_backend/internal/telemetry/handler"
	"evmaint_backend/internal/telemetry/repository"
	"evmaint_backend/internal/telemetry/sse"
	"evmaint_backend/platform/config"
	"evmaint_backend/platform/httpkit"
	"evmaint_backend/platform/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

// Module is the telemetry bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	hub     *sse.Hub
	repo    *repository.Repository
}

// NewModule constructs the telemetry module and subscribes the SSE hub to
// report-generation events so watchers of a station see new reports live.
func NewModule(db *mongo.Database, cfg config.TelemetryConfig, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(db)
	hub := sse.NewHub(log)

	bus.Subscribe(events.ReportGenerated{}.EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		if rg, ok := e.(events.ReportGenerated); ok && rg.StationID != "" {
			hub.Publish(rg.StationID, sse.Event{
				Type:      sse.EventReportGenerated,
				StationID: rg.StationID,
				Data: map[string]interface{}{
					"reportType": rg.ReportType,
					"reportId":   rg.ReportID,
					"issueId":    rg.IssueID,
					"pages":      rg.Pages,
				},
			})
		}
		return nil
	}))

	return &Module{
		handler: handler.New(repo, hub, cfg, log),
		hub:     hub,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "telemetry" }

// EnsureIndexes creates the MongoDB indexes the module depends on.
func (m *Module) EnsureIndexes(ctx context.Context) error {
	return m.repo.EnsureIndexes(ctx)
}

// Close shuts down the SSE hub.
func (m *Module) Close() {
	m.hub.Close()
}

// RegisterRoutes mounts the telemetry routes. Both require a station grant.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/stations/:id/telemetry")
	group.Use(httpkit.RequireStationAccess("id"))
	{
		group.GET("/latest", m.handler.Latest)
		group.GET("/stream", m.handler.Stream)
	}
}

var _ apphttp.Module = (*Module)(nil)
