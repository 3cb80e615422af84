// Package reports provides the maintenance-report bounded context module:
// report document access and PDF generation.
package reports

import (
	"context"

	"evmaint_backend/internal/events"
	apphttp "evmaint_backend/internal/http"
	"evmaint_backend/internal/reports/handler"
	"evmaint_backend/internal/reports/repository"
	"evmaint_backend/internal/reports/service"
	"evmaint_backend/platform/config"
	"evmaint_backend/platform/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

// Module is the reports bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
}

// NewModule constructs the reports module against the given database.
func NewModule(db *mongo.Database, renderCfg config.RenderConfig, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(db)
	svc := service.New(repo, renderCfg, bus, log)
	return &Module{
		handler: handler.New(svc),
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "reports" }

// EnsureIndexes creates the MongoDB indexes the module depends on.
func (m *Module) EnsureIndexes(ctx context.Context) error {
	return m.repo.EnsureIndexes(ctx)
}

// RegisterRoutes mounts the report routes for authenticated users. Station
// authorization happens in the service against the document's station.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	reports := ctx.Protected.Group("/reports")
	{
		reports.GET("", m.handler.List)
		reports.GET("/:type/:id", m.handler.Get)
		reports.GET("/:type/:id/pdf", m.handler.PDF)
	}
}

var _ apphttp.Module = (*Module)(nil)
