package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/cloudnote/cloudnote/internal/auth"
	"github.com/cloudnote/cloudnote/internal/config"
	"github.com/cloudnote/cloudnote/internal/identity"
	"github.com/cloudnote/cloudnote/internal/middleware"
	"github.com/cloudnote/cloudnote/internal/notification"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	var repo identity.Repository
	if d.DB != nil {
		repo = identity.NewPostgresRepository(d.DB)
	} else {
		repo = identity.NewMemoryRepository()
	}

	hasher := identity.NewBcryptHasher(d.Cfg.BcryptCost)
	notifier := notification.NewLoggerNotifier(d.Logger)
	identitySvc := identity.NewService(repo, hasher, notifier)
	tokens := auth.NewTokenService(d.Cfg.JWTSecret)
	handler := auth.NewHandler(identitySvc, tokens, d.Logger)

	var idem fiber.Handler
	if d.Cache != nil {
		idem = middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger)
	}
	RegisterAuthRoutes(app, handler, tokens, idem)

	return nil
}
