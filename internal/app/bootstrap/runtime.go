package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/taskdeck/taskdeck/internal/adapters/http"
	"github.com/taskdeck/taskdeck/internal/adapters/jsonfile"
	"github.com/taskdeck/taskdeck/internal/adapters/security"
	"github.com/taskdeck/taskdeck/internal/application"
	"github.com/taskdeck/taskdeck/internal/logging"
)

// Runtime wires configuration, logging, the two services, and the HTTP
// server into one startable unit.
type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	data       *application.DataService
	auth       *application.AuthService
}

// NewRuntime loads configuration, installs the process logger, and builds
// the full service graph.
func NewRuntime(configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
		Debug: cfg.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	slog.SetDefault(logger)
	logger.Info("bootstrapping taskdeck",
		"app", cfg.AppName,
		"version", cfg.Version,
		"http_port", cfg.HTTPPort,
		"data_file", cfg.DataFile,
	)

	data := application.NewDataService(jsonfile.New(cfg.DataFile))
	auth := application.NewAuthService(application.AuthConfig{
		Secret:            cfg.AuthSecret,
		SessionTTL:        cfg.SessionTTL,
		MaxFailedAttempts: cfg.MaxFailedAttempts,
	}, security.NewBcryptHasher(cfg.BcryptCost))

	handler := httpadapter.NewHandler(data, auth)
	router := httpadapter.NewRouter(handler)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		data:       data,
		auth:       auth,
	}, nil
}

// Config returns the resolved configuration.
func (r *Runtime) Config() Config {
	return r.cfg
}

// DataService exposes the store for non-HTTP callers.
func (r *Runtime) DataService() *application.DataService {
	return r.data
}

// AuthService exposes the auth service for non-HTTP callers.
func (r *Runtime) AuthService() *application.AuthService {
	return r.auth
}

// Run serves HTTP until the context is canceled or a signal arrives, then
// shuts down gracefully.
func (r *Runtime) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("http server started", "addr", r.httpServer.Addr)
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		r.logger.Info("shutdown signal received")
	case err := <-errCh:
		r.logger.Error("server failure", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	return nil
}
