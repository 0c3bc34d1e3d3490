// Package server initializes and runs the API server. It wires the database,
// repositories, services, and the HTTP router, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/mail"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/rest"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/dmitrijs2005/taskkeeper/internal/server/storage"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config      *config.Config
	logger      *logging.ZapLogger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	userService *services.UserService
	taskService *services.TaskService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger, err := logging.NewProductionZapLogger()
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	avatars, err := newAvatarStore(ctx, cfg, db, rm)
	if err != nil {
		return nil, fmt.Errorf("avatar store init error: %w", err)
	}

	mailer := newMailer(cfg, logger)

	us := services.NewUserService(db, rm, avatars, mailer, logger, cfg)
	ts := services.NewTaskService(db, rm)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		repomanager: rm,
		userService: us,
		taskService: ts,
	}, nil
}

func newAvatarStore(ctx context.Context, cfg *config.Config, db *sql.DB, rm repomanager.RepositoryManager) (storage.AvatarStore, error) {
	if cfg.AvatarStore == config.AvatarStoreS3 {
		return storage.NewS3Store(ctx, storage.S3Options{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
	}
	return storage.NewPostgresStore(db, rm), nil
}

func newMailer(cfg *config.Config, logger logging.Logger) mail.Mailer {
	if cfg.SendGridAPIKey == "" {
		logger.Info(context.Background(), "no SendGrid API key configured, emails disabled")
		return mail.NoopMailer{}
	}
	return mail.NewSendGridMailer(cfg.SendGridAPIKey, cfg.MailFromAddress)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	router := rest.NewRouter(app.userService, app.taskService, app.logger)

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "http shutdown error", "err", err.Error())
		}
	}()

	app.logger.Info(ctx, "starting http server", "addr", app.config.EndpointAddrHTTP)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "err", err.Error())
	}
	_ = app.logger.Sync()

	return nil
}
