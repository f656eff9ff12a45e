package control

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pressly/goose/v3"

	"github.com/phamduc/solwatch/internal/core/config"
	"github.com/phamduc/solwatch/internal/geyser"
	"github.com/phamduc/solwatch/internal/health"
	"github.com/phamduc/solwatch/internal/sink"
	"github.com/phamduc/solwatch/internal/sink/postgres"
	redissink "github.com/phamduc/solwatch/internal/sink/redis"
	"github.com/phamduc/solwatch/internal/stream"
)

// App wires the geyser client, stream manager, sinks and health server into
// one lifecycle.
type App struct {
	cfg          *config.AppConfig
	log          *slog.Logger
	client       *geyser.Client
	manager      *stream.Manager
	healthServer *health.Server
	db           *sql.DB
	emitter      *redissink.Emitter

	errCh chan error
}

// NewApp builds the application from configuration. Construction dials the
// geyser endpoint and verifies every configured sink backend.
func NewApp(ctx context.Context, cfg *config.AppConfig, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}

	client, err := geyser.NewClient(ctx, cfg.Geyser.Endpoint, cfg.Geyser.XToken)
	if err != nil {
		return nil, fmt.Errorf("geyser client: %w", err)
	}

	app := &App{
		cfg:    cfg,
		log:    log,
		client: client,
		errCh:  make(chan error, 1),
	}

	sinks := []sink.TransactionSink{sink.NewLog(log)}

	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("postgres: %w", err)
		}
		app.db = db

		if err := goose.SetDialect("postgres"); err != nil {
			app.Close()
			return nil, fmt.Errorf("goose dialect: %w", err)
		}
		if err := goose.Up(db, "migrations"); err != nil {
			app.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}

		sinks = append(sinks, postgres.NewRepo(db))
		log.Info("postgres sink enabled")
	}

	if cfg.Redis.URL != "" {
		emitter, err := redissink.NewEmitter(cfg.Redis)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		app.emitter = emitter
		sinks = append(sinks, emitter)
		log.Info("redis sink enabled")
	}

	app.manager = stream.NewManager(stream.Config{
		Endpoint:     cfg.Geyser.Endpoint,
		MaxAttempts:  cfg.Geyser.MaxReconnectAttempts,
		BaseInterval: cfg.Geyser.ReconnectInterval,
		Logger:       log,
	}, stream.SubscriberFunc(func(ctx context.Context, req *geyser.SubscribeRequest) (stream.Stream, error) {
		return client.Subscribe(ctx, req)
	}), sink.NewFanout(log, sinks...))

	app.healthServer = health.NewServer(app.manager, cfg.Server.Port)

	return app, nil
}

// Start launches the health server and the subscription cycle. It returns
// immediately; terminal failures are delivered on Wait.
func (a *App) Start(ctx context.Context) error {
	go func() {
		if err := a.healthServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("health server error", "error", err)
		}
	}()
	a.log.Info("health server started", "port", a.cfg.Server.Port)

	req := buildSubscribeRequest(a.cfg.Filter)

	go func() {
		a.errCh <- a.manager.Connect(ctx, req)
	}()
	a.log.Info("subscription starting", "endpoint", a.cfg.Geyser.Endpoint)

	return nil
}

// Wait delivers the terminal error of the subscription cycle.
func (a *App) Wait() <-chan error {
	return a.errCh
}

// Stop shuts down the health server and releases every backend.
func (a *App) Stop(ctx context.Context) error {
	var errs []error

	if a.healthServer != nil {
		if err := a.healthServer.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("health server: %w", err))
		}
	}
	a.Close()

	return errors.Join(errs...)
}

// Close releases connections without touching the HTTP server.
func (a *App) Close() {
	if a.emitter != nil {
		_ = a.emitter.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
	if a.client != nil {
		_ = a.client.Close()
	}
}

// buildSubscribeRequest maps the filter config onto the wire request. The
// request is built once; the manager reuses it for every reconnect.
func buildSubscribeRequest(f config.FilterConfig) *geyser.SubscribeRequest {
	vote := f.IncludeVotes
	failed := f.IncludeFailed
	commitment := int32(commitmentLevel(f.Commitment))

	return &geyser.SubscribeRequest{
		Transactions: map[string]*geyser.SubscribeRequestFilterTransactions{
			"solwatch": {
				Vote:            &vote,
				Failed:          &failed,
				AccountInclude:  f.AccountInclude,
				AccountExclude:  f.AccountExclude,
				AccountRequired: f.AccountRequired,
			},
		},
		Commitment: &commitment,
	}
}

func commitmentLevel(s string) geyser.CommitmentLevel {
	switch s {
	case "processed":
		return geyser.CommitmentProcessed
	case "finalized":
		return geyser.CommitmentFinalized
	default:
		return geyser.CommitmentConfirmed
	}
}
