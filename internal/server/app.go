// Package server initializes and runs the account service.
// It opens the database, applies migrations, wires the user service
// and registration notifier, and starts the HTTP server with graceful
// shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/easylend/userservice/internal/logging"
	"github.com/easylend/userservice/internal/server/config"
	"github.com/easylend/userservice/internal/server/events"
	"github.com/easylend/userservice/internal/server/httpapi"
	"github.com/easylend/userservice/internal/server/repositories/repomanager"
	"github.com/easylend/userservice/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	publisher   *events.ChanPublisher
	notifier    *events.LogNotifier
	userService *services.UserService
	httpServer  *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	publisher := events.NewChanPublisher(64)
	notifier := events.NewLogNotifier(logger)

	us := services.NewUserService(db, m, publisher, cfg)
	hs := httpapi.NewServer(cfg.EndpointAddr, logger, us, cfg.PublicBaseURL)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		publisher:   publisher,
		notifier:    notifier,
		userService: us,
		httpServer:  hs,
	}, nil
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

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.notifier.Run(ctx, app.publisher.Events())
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
		}
		cancelFunc()
	}()

	wg.Wait()

	app.publisher.Close()
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	app.logger.Info(ctx, "App stopped")
}
