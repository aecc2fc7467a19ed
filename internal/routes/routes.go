package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/vendomat/vendomat/internal/account"
	"github.com/vendomat/vendomat/internal/auth"
	"github.com/vendomat/vendomat/internal/catalog"
	"github.com/vendomat/vendomat/internal/config"
	"github.com/vendomat/vendomat/internal/middleware"
	"github.com/vendomat/vendomat/internal/notification"
	"github.com/vendomat/vendomat/internal/purchase"
	"github.com/vendomat/vendomat/internal/store"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. Without a database
// the whole stack runs on the shared in-memory store, which is only allowed in
// dev mode.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.Dev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	var (
		accountRepo account.Repository
		productRepo catalog.Repository
		buyStore    purchase.Store
	)
	if d.DB != nil {
		accountRepo = account.NewPostgresRepository(d.DB)
		productRepo = catalog.NewPostgresRepository(d.DB)
		buyStore = purchase.NewPostgresStore(d.DB)
	} else {
		mem := store.NewMemory()
		accountRepo = mem.Accounts()
		productRepo = mem.Products()
		buyStore = mem
	}

	accountSvc := account.NewService(accountRepo)
	catalogSvc := catalog.NewService(productRepo)
	notifier := notification.NewLoggerNotifier(d.Logger)
	purchaseSvc := purchase.NewService(buyStore, notifier)
	authSvc := auth.NewService(d.Cfg, accountSvc)

	accountHandler := account.NewHandler(accountSvc)
	catalogHandler := catalog.NewHandler(catalogSvc)
	purchaseHandler := purchase.NewHandler(purchaseSvc)
	authHandler := auth.NewHandler(accountSvc, authSvc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	api.Post("/accounts/register", accountHandler.Register)
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Protected routes
	protected := api.Group("", middleware.JWTAuth(d.Cfg))
	RegisterLedgerRoutes(protected, accountHandler)
	RegisterCatalogRoutes(protected, catalogHandler)
	RegisterPurchaseRoutes(protected, purchaseHandler)

	return nil
}
