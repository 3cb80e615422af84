// Package stations provides the charging station bounded context module.
package stations

import (
	"context"

	apphttp "evmaint_backend/internal/http"
	"evmaint_backend/internal/stations/handler"
	"evmaint_backend/internal/stations/repository"
	"evmaint_backend/internal/stations/service"
	"evmaint_backend/platform/httpkit"
	"evmaint_backend/platform/logger"
	"evmaint_backend/platform/validator"

	"go.mongodb.org/mongo-driver/mongo"
)

// Module is the stations bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
}

// NewModule constructs the stations module against the given database.
func NewModule(db *mongo.Database, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(db)
	svc := service.New(repo, log)
	return &Module{
		handler: handler.New(svc, val),
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "stations" }

// EnsureIndexes creates the MongoDB indexes the module depends on.
func (m *Module) EnsureIndexes(ctx context.Context) error {
	return m.repo.EnsureIndexes(ctx)
}

// RegisterRoutes mounts read routes for all authenticated users and
// CRUD routes for admins. Reading a single station requires a grant.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/stations", m.handler.List)
	ctx.Protected.GET("/stations/:id", httpkit.RequireStationAccess("id"), m.handler.Get)

	admin := ctx.Admin.Group("/stations")
	{
		admin.POST("", m.handler.Create)
		admin.PUT("/:id", m.handler.Update)
		admin.DELETE("/:id", m.handler.Delete)
	}
}

var _ apphttp.Module = (*Module)(nil)
