package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/amgrenovation/ops-dashboard/internal/audit"
	"github.com/amgrenovation/ops-dashboard/internal/auth"
	"github.com/amgrenovation/ops-dashboard/internal/config"
	dbpkg "github.com/amgrenovation/ops-dashboard/internal/db"
	infraRepo "github.com/amgrenovation/ops-dashboard/internal/infra/repository"
	"github.com/amgrenovation/ops-dashboard/internal/logger"
	"github.com/amgrenovation/ops-dashboard/internal/profile"
	"github.com/amgrenovation/ops-dashboard/internal/routes"
	"github.com/amgrenovation/ops-dashboard/internal/scheduler"
	"github.com/amgrenovation/ops-dashboard/internal/settings"
	"github.com/amgrenovation/ops-dashboard/internal/storage"
	"github.com/amgrenovation/ops-dashboard/internal/timezone"
	ucBilling "github.com/amgrenovation/ops-dashboard/internal/usecase/billing"
	"github.com/amgrenovation/ops-dashboard/internal/validators"
	"github.com/amgrenovation/ops-dashboard/internal/webhook"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		// The logger is not built yet.
		panic(err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	timezone.SetBusiness(cfg.Timezone)

	if err := validators.RegisterGin(); err != nil {
		log.Fatal("register validators", zap.Error(err))
	}

	// ======================================================
	// STORAGE
	// ======================================================
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}
	if err := dbpkg.SeedAdmin(context.Background(), db, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword, log); err != nil {
		log.Fatal("seed admin", zap.Error(err))
	}

	var cache profile.Cache = profile.NewMemoryCache(cfg.ProfileCacheTTL)
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		cache = profile.NewRedisCache(rdb, cfg.ProfileCacheTTL)
	}

	var store storage.ObjectStore = storage.Disabled{}
	if cfg.Storage.Enabled() {
		s3Store, err := storage.NewS3Store(cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("object storage", zap.Error(err))
		}
		store = s3Store
	}

	// ======================================================
	// SINGLETONS
	// ======================================================
	auditDispatcher := audit.NewDispatcher(audit.New(db), log)
	defer auditDispatcher.Close()

	deps := routes.Deps{
		DB:       db,
		Config:   cfg,
		Logger:   log,
		Tokens:   auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL),
		Profiles: profile.NewCachedResolver(profile.NewDBResolver(db), cache, log),
		Sender:   webhook.NewDispatcher(cfg.Webhook.Timeout, log),
		Store:    store,
		Audit:    auditDispatcher,
		Settings: settings.NewService(db, cfg.Webhook.BaseURL),
	}

	// ======================================================
	// JOBS
	// ======================================================
	jobs := scheduler.New(timezone.Business(), log)
	sweep := ucBilling.NewSweepOverdue(infraRepo.NewBillingGormRepository(db), log)
	if err := jobs.Add("overdue_invoices", cfg.OverdueSweepSchedule, sweep.Execute); err != nil {
		log.Fatal("schedule overdue sweep", zap.Error(err))
	}
	jobs.Start()
	defer jobs.Stop()

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(logger.GinMiddleware(log), logger.Recovery(log))

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
