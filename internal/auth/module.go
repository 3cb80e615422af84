package auth

import (
	"context"

	"evmaint_backend/internal/auth/handler"
	"evmaint_backend/internal/auth/repository"
	"evmaint_backend/internal/auth/service"
	"evmaint_backend/internal/events"
	apphttp "evmaint_backend/internal/http"
	"evmaint_backend/platform/config"
	"evmaint_backend/platform/logger"
	"evmaint_backend/platform/validator"

	"go.mongodb.org/mongo-driver/mongo"
)

// Module wires the auth bounded context: repository, service, and HTTP handlers.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
}

// NewModule constructs the auth module against the given database.
func NewModule(db *mongo.Database, cfg config.AuthServiceConfig, bus events.Bus, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(db)
	svc := service.New(repo, cfg, bus, log)
	return &Module{
		handler: handler.New(svc, val),
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "auth" }

// EnsureIndexes creates the MongoDB indexes the module depends on.
func (m *Module) EnsureIndexes(ctx context.Context) error {
	return m.repo.EnsureIndexes(ctx)
}

// RegisterRoutes mounts auth routes: public sign-in endpoints are rate limited,
// profile endpoints require authentication, user administration requires admin.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(authGroup)

	me := ctx.Protected.Group("/users/me")
	{
		me.GET("", m.handler.GetMe)
		me.PATCH("", m.handler.UpdateMe)
		me.POST("/password", m.handler.ChangePassword)
	}

	users := ctx.Admin.Group("/users")
	{
		users.POST("", m.handler.CreateUser)
		users.GET("", m.handler.ListUsers)
		users.PUT("/:id/stations", m.handler.SetUserStations)
	}
}

var _ apphttp.Module = (*Module)(nil)
