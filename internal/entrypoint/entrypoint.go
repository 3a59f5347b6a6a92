package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/bookapi/internal/audit"
	"github.com/mrlokans/bookapi/internal/config"
	"github.com/mrlokans/bookapi/internal/database"
	auditrepo "github.com/mrlokans/bookapi/internal/database/audit"
	http_controllers "github.com/mrlokans/bookapi/internal/http"
	"github.com/mrlokans/bookapi/internal/logging"
	"github.com/mrlokans/bookapi/internal/scheduler"
	"github.com/mrlokans/bookapi/internal/schema"
	"github.com/mrlokans/bookapi/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the wired components of a running service.
type App struct {
	Router    *gin.Engine
	DB        *database.Database
	Audit     *audit.Service
	Tasks     *tasks.Client
	Scheduler *scheduler.AuditCleanupScheduler

	log         *zap.Logger
	cancelTasks context.CancelFunc
}

// Setup opens the database and wires every component described by cfg.
// Background workers are started; call Shutdown to stop them.
func Setup(cfg *config.Config, version string, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &App{log: logger}

	db, err := database.NewDatabase(cfg.Database.Path, logger.Named("database"))
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	app.DB = db

	if cfg.Audit.Enabled {
		app.Audit = audit.NewService(auditrepo.NewRepository(db.DB), logger)
	}

	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}
		app.Tasks, err = tasks.NewClient(cfg.Database.Path, taskCfg, logger)
		if err != nil {
			app.Shutdown(context.Background())
			return nil, fmt.Errorf("initialize task queue: %w", err)
		}

		if app.Audit != nil {
			app.Tasks.Register(tasks.NewAuditCleanup(app.Audit, cfg.Audit.RetentionDays, logger).Queue())
		}

		var taskCtx context.Context
		taskCtx, app.cancelTasks = context.WithCancel(context.Background())
		go app.Tasks.Start(taskCtx)
	}

	if app.Tasks != nil && app.Audit != nil {
		app.Scheduler = scheduler.NewAuditCleanupScheduler(app.Tasks, scheduler.AuditCleanupConfig{
			Schedule:      cfg.Audit.CleanupSchedule,
			RetentionDays: cfg.Audit.RetentionDays,
		}, logger)
		if err := app.Scheduler.Start(context.Background()); err != nil {
			app.Shutdown(context.Background())
			return nil, fmt.Errorf("start audit cleanup scheduler: %w", err)
		}
	} else if cfg.Audit.Enabled {
		logger.Warn("task queue disabled, audit events will not be cleaned up")
	}

	if cfg.HTTP.ReadOnly {
		logger.Info("read-only mode enabled, write operations will be blocked")
	}

	var taskQueue http_controllers.TaskQueue
	if app.Tasks != nil {
		taskQueue = app.Tasks
	}

	app.Router = http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:     db,
		Validator:    schema.NewValidator(time.Now),
		Logger:       logger,
		AuditService: app.Audit,
		TaskQueue:    taskQueue,
		ReadOnly:     cfg.HTTP.ReadOnly,
		HSTSMaxAge:   cfg.HTTP.HSTSMaxAge,
		Version:      version,
	})

	return app, nil
}

// Shutdown stops background work and closes the database. Safe to call on a
// partially initialized App.
func (a *App) Shutdown(ctx context.Context) {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Tasks != nil {
		a.Tasks.Stop(ctx)
		if a.cancelTasks != nil {
			a.cancelTasks()
		}
		if err := a.Tasks.Close(); err != nil {
			a.log.Error("error closing task client", zap.Error(err))
		}
	}
	if a.Audit != nil {
		a.Audit.Wait()
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.log.Error("error closing database", zap.Error(err))
		}
	}
}

func Serve(router *gin.Engine, cfg *config.Config, logger *zap.Logger, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", addr))
		// service connections
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 sends SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server", zap.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop accepting requests before tearing down what they use
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	logger.Info("server exiting")
}

func Run(cfg *config.Config, version string) {
	logger, flush, err := logging.New(cfg.Logging, version)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer flush()

	if cfg.Logging.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("starting Book API", zap.String("version", version))

	app, err := Setup(cfg, version, logger)
	if err != nil {
		logger.Fatal("failed to start", zap.Error(err))
	}

	Serve(app.Router, cfg, logger, app.Shutdown)
}

// Migrate creates or upgrades the database schema and exits.
func Migrate(cfg *config.Config, version string) error {
	logger, flush, err := logging.New(cfg.Logging, version)
	if err != nil {
		return err
	}
	defer flush()

	db, err := database.NewDatabase(cfg.Database.Path, logger.Named("database"))
	if err != nil {
		return err
	}
	logger.Info("migrations applied", zap.String("path", cfg.Database.Path))
	return db.Close()
}
