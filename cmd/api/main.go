package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/skyops/crew-roster-api/api/swagger"
	"github.com/skyops/crew-roster-api/internal/fdtl"
	"github.com/skyops/crew-roster-api/internal/handler"
	"github.com/skyops/crew-roster-api/internal/middleware"
	"github.com/skyops/crew-roster-api/internal/models"
	"github.com/skyops/crew-roster-api/internal/repository"
	"github.com/skyops/crew-roster-api/internal/service"
	"github.com/skyops/crew-roster-api/pkg/cache"
	"github.com/skyops/crew-roster-api/pkg/config"
	"github.com/skyops/crew-roster-api/pkg/database"
	"github.com/skyops/crew-roster-api/pkg/jobs"
	"github.com/skyops/crew-roster-api/pkg/logger"
	corsmiddleware "github.com/skyops/crew-roster-api/pkg/middleware/cors"
	reqidmiddleware "github.com/skyops/crew-roster-api/pkg/middleware/requestid"
)

// @title Crew Roster API
// @version 1.0.0
// @description FDTL-aware crew rostering service
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var cacheRepo *repository.CacheRepository
	if cfg.Utilization.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, utilization cache disabled", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	crewRepo := repository.NewCrewRepository(db)
	flightRepo := repository.NewFlightRepository(db)
	dutyLogRepo := repository.NewDutyLogRepository(db)
	rosterRepo := repository.NewRosterRepository(db)
	violationRepo := repository.NewViolationRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	userRepo := repository.NewUserRepository(db)

	limits := fdtl.Limits{
		MinRestHours:         cfg.FDTL.MinRestHours,
		MaxFDPHours:          cfg.FDTL.MaxFDPHours,
		MaxDailyFlyHours:     cfg.FDTL.MaxDailyFlyHours,
		MaxWeeklyFlyHours:    cfg.FDTL.MaxWeeklyFlyHours,
		MaxRolling28FlyHours: cfg.FDTL.MaxRolling28FlyHours,
	}

	authSvc := service.NewAuthService(userRepo, auditRepo, validate, logr, service.AuthConfig{
		Secret:      cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	crewSvc := service.NewCrewService(crewRepo, auditRepo, validate, logr)
	flightSvc := service.NewFlightService(flightRepo, auditRepo, validate, logr)
	builderSvc := service.NewRosterBuilderService(flightRepo, crewRepo, dutyLogRepo, rosterRepo, metrics, logr, service.RosterBuilderConfig{
		Limits:              limits,
		SupportingPerFlight: cfg.Roster.SupportingPerFlight,
		SeedDutyHistory:     cfg.Roster.SeedDutyHistory,
	})

	// CacheRepository methods tolerate a nil receiver, so the services can
	// hold it unconditionally and degrade to cache-miss behaviour.
	rosterSvc := service.NewRosterService(rosterRepo, crewRepo, flightRepo, dutyLogRepo, auditRepo, cacheRepo, limits, validate, logr)
	utilizationSvc := service.NewUtilizationService(dutyLogRepo, cacheRepo, metrics, logr, service.UtilizationConfig{CacheTTL: cfg.Utilization.CacheTTL})
	exportSvc := service.NewExportService(rosterRepo, violationRepo, logr)

	buildQueue := jobs.NewQueue("roster-build", func(ctx context.Context, job jobs.Job) error {
		payload, ok := job.Payload.(handler.BuildJobPayload)
		if !ok {
			return fmt.Errorf("unexpected payload type for job %s", job.ID)
		}
		result, err := builderSvc.Build(ctx, payload.Start, payload.End)
		if err != nil {
			return err
		}
		logr.Sugar().Infow("queued roster build finished",
			"job_id", job.ID,
			"requested_by", payload.RequestedBy,
			"assignments", result.TotalAssignments,
			"violations", result.TotalViolations,
		)
		return nil
	}, jobs.QueueConfig{Workers: cfg.Roster.BuildQueueWorkers, MaxRetries: 1, Logger: logr})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	buildQueue.Start(ctx)
	defer buildQueue.Stop()

	authHandler := handler.NewAuthHandler(authSvc)
	crewHandler := handler.NewCrewHandler(crewSvc)
	flightHandler := handler.NewFlightHandler(flightSvc)
	rosterHandler := handler.NewRosterHandler(builderSvc, rosterSvc, buildQueue)
	violationHandler := handler.NewViolationHandler(violationRepo)
	utilizationHandler := handler.NewUtilizationHandler(utilizationSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metrics, db.Ping)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	{
		protected.GET("/crew", crewHandler.List)
		protected.GET("/crew/:id", crewHandler.Get)
		protected.POST("/crew", crewHandler.Create)
		protected.PUT("/crew/:id", crewHandler.Update)
		protected.DELETE("/crew/:id", middleware.RequireRole(models.RoleAdmin), crewHandler.Deactivate)

		protected.GET("/flights", flightHandler.List)
		protected.GET("/flights/:id", flightHandler.Get)
		protected.POST("/flights", flightHandler.Create)

		protected.POST("/roster/build", rosterHandler.Build)
		protected.GET("/roster", rosterHandler.List)
		protected.GET("/roster/crew/:crew_id", rosterHandler.ListByCrew)
		protected.POST("/roster/:id/override", rosterHandler.Override)

		protected.GET("/violations", violationHandler.List)
		protected.GET("/utilization", utilizationHandler.Summary)

		if cfg.Exports.Enabled {
			protected.GET("/exports/roster", exportHandler.Roster)
			protected.GET("/exports/violations", exportHandler.Violations)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
