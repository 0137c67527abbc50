package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clubware/club-management/internal"
	"github.com/clubware/club-management/internal/announcement"
	announcementPostgres "github.com/clubware/club-management/internal/announcement/postgres"
	"github.com/clubware/club-management/internal/application"
	applicationPostgres "github.com/clubware/club-management/internal/application/postgres"
	"github.com/clubware/club-management/internal/event"
	eventPostgres "github.com/clubware/club-management/internal/event/postgres"
	"github.com/clubware/club-management/internal/task"
	taskPostgres "github.com/clubware/club-management/internal/task/postgres"
	"github.com/clubware/club-management/internal/transport/rest"
	"github.com/clubware/club-management/internal/user"
	userPostgres "github.com/clubware/club-management/internal/user/postgres"
	"github.com/clubware/club-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	ORM      *gorm.DB
	Router   *chi.Mux
	Logger   *slog.Logger
	Handlers rest.Handlers
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB,
		deps.Config.Environment, deps.Config.Server.AllowedOrigins,
		deps.Handlers, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := internal.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Level, config.Logging.Format)
	lg := logger.LoggerWrapper()

	db, orm, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	router := chi.NewRouter()
	handlers := buildHandlers(orm, config, lg)

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		ORM:      orm,
		Router:   router,
		Handlers: handlers,
	}, nil
}

func buildHandlers(orm *gorm.DB, config *internal.Config, lg *slog.Logger) rest.Handlers {
	baseHandler := rest.NewBaseHandler(lg)

	userRepo := userPostgres.NewUserRepository(orm)
	userService := user.NewService(userRepo, config.Security.BCryptCost, lg)

	applicationRepo := applicationPostgres.NewApplicationRepository(orm)
	applicationService := application.NewService(applicationRepo, userService, lg)

	eventRepo := eventPostgres.NewEventRepository(orm)
	eventService := event.NewService(eventRepo, lg)

	taskRepo := taskPostgres.NewTaskRepository(orm)
	taskService := task.NewService(taskRepo, lg)

	announcementRepo := announcementPostgres.NewAnnouncementRepository(orm)
	announcementService := announcement.NewService(announcementRepo, lg)

	return rest.Handlers{
		Applications:  application.NewHandler(baseHandler, applicationService),
		Events:        event.NewHandler(baseHandler, eventService),
		Tasks:         task.NewHandler(baseHandler, taskService),
		Announcements: announcement.NewHandler(baseHandler, announcementService),
		Users:         user.NewHandler(baseHandler, userService),
	}
}

// initDB opens the pgx-backed connection and wraps it with GORM for the
// repositories. Both share one pool.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, *gorm.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	orm, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: dbConn.DB}), &gorm.Config{})
	if err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	return dbConn, orm, nil
}
