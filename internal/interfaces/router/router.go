package router

import (
	"context"
	"fmt"

	evsvc "rental-registry/internal/application/events"
	"rental-registry/internal/application/ledger"
	"rental-registry/internal/config"
	"rental-registry/internal/domain"
	"rental-registry/internal/infrastructure/database"
	accthandler "rental-registry/internal/interfaces/handlers/accounts"
	healthhandler "rental-registry/internal/interfaces/handlers/health"
	reghandler "rental-registry/internal/interfaces/handlers/registry"
	sesshandler "rental-registry/internal/interfaces/handlers/session"
	"rental-registry/internal/metrics"
	"rental-registry/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp opens the database and Redis named by cfg and builds the app.
// DATABASE_URL selects Postgres; otherwise the embedded SQLite file is used.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	var (
		db  *gorm.DB
		err error
	)
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
	} else {
		log.Info().Str("path", cfg.SQLitePath).Msg("DATABASE_URL not set; using embedded SQLite")
		db, err = database.OpenSQLite(cfg.SQLitePath)
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opt)

	app, err := New(cfg, db, rdb)
	if err != nil {
		return nil, nil, nil, err
	}
	return app, db, rdb, nil
}

// New migrates db, constructs the registry and mounts every route.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*fiber.App, error) {
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.New(reg)

	executor := &ledger.Executor{
		DB:       db,
		Contract: domain.AccountID(cfg.ContractAccount),
		Observer: m,
	}
	owner, err := executor.Bootstrap(context.Background(), domain.AccountID(cfg.RegistryOwner))
	if err != nil {
		return nil, fmt.Errorf("bootstrap registry: %w", err)
	}
	log.Info().Str("owner", owner.String()).Str("contract", cfg.ContractAccount).Msg("registry ready")

	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	sessionCfg := middleware.SessionConfig{
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.IsProduction(),
	}
	app.Use(middleware.Session(rdb))
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{Rdb: rdb, DB: &gormDBPinger{db: db}}
	app.Get("/", hh.Summary)
	app.Get("/reset", middleware.RequireAdminKey(cfg.HealthAdminKey), hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	sh := &sesshandler.Handlers{Rdb: rdb, Config: sessionCfg}
	sessionGroup := app.Group("/api/v1/session")
	sessionGroup.Post("/open", sh.Open)
	sessionGroup.Get("/me", sh.Me)
	sessionGroup.Delete("/close", sh.Close)
	sessionGroup.Delete("/all", sh.CloseAll)

	rh := &reghandler.Handlers{Executor: executor, Events: &evsvc.Service{DB: db}}
	requireCaller := middleware.RequireCaller()
	regGroup := app.Group("/api/v1/registry")
	regGroup.Post("/properties", requireCaller, rh.ApproveProperty)
	regGroup.Delete("/properties/:id", requireCaller, rh.RemoveProperty)
	regGroup.Put("/properties/:id/price", requireCaller, rh.SetPrice)
	regGroup.Put("/properties/:id/tenant", requireCaller, rh.ApproveTenant)
	regGroup.Post("/properties/:id/rent", requireCaller, rh.PayRent)
	regGroup.Get("/properties/:id/landlord", rh.GetLandlord)
	regGroup.Get("/properties/:id/price", rh.GetPrice)
	regGroup.Get("/properties/:id/tenant", rh.GetTenant)
	regGroup.Get("/properties/:id/timespans/:tenant", rh.GetTimespan)
	regGroup.Get("/balance", rh.GetBalance)
	regGroup.Get("/events", rh.GetEvents)

	ah := &accthandler.Handlers{Executor: executor}
	acctGroup := app.Group("/api/v1/accounts")
	acctGroup.Get("/:id/balance", ah.Balance)
	acctGroup.Post("/deposit", middleware.RequireAdminKey(cfg.LedgerAdminKey), ah.Deposit)

	return app, nil
}
