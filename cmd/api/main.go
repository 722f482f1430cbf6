package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/helpdesk-assignment/internal/api/http"
	"github.com/spec-kit/helpdesk-assignment/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-assignment/internal/config"
	"github.com/spec-kit/helpdesk-assignment/internal/events"
	"github.com/spec-kit/helpdesk-assignment/internal/observability"
	"github.com/spec-kit/helpdesk-assignment/internal/persistence"
	"github.com/spec-kit/helpdesk-assignment/internal/registry"
	"github.com/spec-kit/helpdesk-assignment/internal/repository"
	"github.com/spec-kit/helpdesk-assignment/internal/scoring"
	"github.com/spec-kit/helpdesk-assignment/internal/seed"
	"github.com/spec-kit/helpdesk-assignment/internal/service"
	"github.com/spec-kit/helpdesk-assignment/internal/storage"
	"github.com/spec-kit/helpdesk-assignment/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	var snapshotStore storage.Store
	var redisStore *storage.RedisStore
	if cfg.Redis.Addr != "" {
		redisStore = storage.NewRedisStore(cfg.Redis, logger)
		defer redisStore.Close()
		snapshotStore = redisStore
	} else {
		logger.Warn("REDIS_ADDR not set; registry snapshots kept in memory")
		snapshotStore = storage.NewMemoryStore()
	}

	categories := seed.Categories()
	technicianRegistry := registry.NewTechnicianRegistry(ctx, snapshotStore, logger,
		seed.Technicians(), seed.CategoryAssignments())
	responsibleRegistry := registry.NewResponsibleRegistry(ctx, snapshotStore, logger,
		seed.RoleDefinitions(), seed.ResponsibleAssignments())

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	historyRepo := repository.NewAssignmentHistoryRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	engine := scoring.NewEngine(categories)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Categories: categories,
		Dispatcher: dispatcher,
	})
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		TicketRepo:  ticketRepo,
		Technicians: technicianRegistry,
		Engine:      engine,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Logger:      logger,
	})
	roleService := service.NewRoleService(service.RoleDependencies{
		Roles:       responsibleRegistry,
		Technicians: technicianRegistry,
		Dispatcher:  dispatcher,
	})
	auditService := service.NewAuditService(historyRepo, logger)
	worker.StartAuditWorker(auditService, dispatcher)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	var snapshotPinger handlers.Pinger
	if redisStore != nil {
		snapshotPinger = redisStore
	}
	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, snapshotPinger)
	ticketsHandler := handlers.NewTicketsHandler(ticketService)
	assignmentsHandler := handlers.NewAssignmentsHandler(assignmentService, auditService)
	techniciansHandler := handlers.NewTechniciansHandler(technicianRegistry, categories)
	rolesHandler := handlers.NewRolesHandler(roleService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      healthHandler,
		Tickets:     ticketsHandler,
		Assignments: assignmentsHandler,
		Technicians: techniciansHandler,
		Roles:       rolesHandler,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
