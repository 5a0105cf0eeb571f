package application

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/rcopts/internal/api"
	"github.com/eugenenazirov/rcopts/internal/config"
	"github.com/eugenenazirov/rcopts/internal/directive"
	"github.com/eugenenazirov/rcopts/internal/loader"
	"github.com/eugenenazirov/rcopts/internal/options"
	"github.com/eugenenazirov/rcopts/internal/storage"
)

// App encapsulates the option tables and the HTTP server that exposes them.
type App struct {
	registry *options.Registry
	storage  *storage.MemoryStorage
	result   loader.Result
	handler  *api.Handler
	router   http.Handler
	logger   *zap.Logger
	server   *http.Server
}

// New loads the configured options file and wires the read-only HTTP API.
// A missing options file is logged and the defaults are served.
func New(cfg config.Config, logger *zap.Logger, loaderOpts ...loader.Option) (*App, error) {
	reg := options.Default()
	store := storage.NewWithDefaults(reg)

	opts := append([]loader.Option{
		loader.WithLogger(logger),
		loader.WithDiagnostics(os.Stderr),
	}, loaderOpts...)
	ld := loader.New(directive.NewDispatcher(reg, store), opts...)

	result, err := ld.Load(cfg.OptionsFile)
	switch {
	case errors.Is(err, loader.ErrOpen):
		logger.Warn("options file unavailable, serving defaults",
			zap.String("path", cfg.OptionsFile),
			zap.Error(err),
		)
	case err != nil:
		return nil, fmt.Errorf("failed to load options: %w", err)
	case result.Failed():
		logger.Warn("options file has errors",
			zap.String("path", result.Path),
			zap.Int("failures", result.Failures),
		)
	}

	handler := api.NewHandler(reg, store, api.WithLoadResult(result))
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		registry: reg,
		storage:  store,
		result:   result,
		handler:  handler,
		router:   apiRouter,
		logger:   logger,
		server:   NewServer(cfg, BuildRootHandler(apiRouter)),
	}, nil
}

// BuildRootHandler routes /api/ requests to apiHandler and sends the bare root to the option listing.
func BuildRootHandler(apiHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/api/options", http.StatusFound)
	}))
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening",
			zap.String("addr", a.server.Addr),
			zap.String("options_file", a.result.Path),
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Storage returns the loaded option tables.
func (a *App) Storage() *storage.MemoryStorage {
	return a.storage
}

// Close releases the string tables. The server must already be stopped.
func (a *App) Close() {
	a.storage.ResetStrings()
}
