package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/HammerMeetNail/dailycheck/internal/config"
	"github.com/HammerMeetNail/dailycheck/internal/database"
	"github.com/HammerMeetNail/dailycheck/internal/handlers"
	"github.com/HammerMeetNail/dailycheck/internal/journal"
	"github.com/HammerMeetNail/dailycheck/internal/logging"
	"github.com/HammerMeetNail/dailycheck/internal/metrics"
	"github.com/HammerMeetNail/dailycheck/internal/middleware"
	"github.com/HammerMeetNail/dailycheck/internal/models"
	"github.com/HammerMeetNail/dailycheck/internal/server"
	"github.com/HammerMeetNail/dailycheck/internal/services"
)

type serveOptions struct {
	ConfigPath string
	Port       int
}

func (o *serveOptions) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&o.ConfigPath, "config", "c", "", "TOML config file (overrides CONFIG_FILE)")
	flagSet.IntVarP(&o.Port, "port", "p", 0, "listen port (overrides config and SERVER_PORT)")
}

func newServeCommand() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

func newLogger(cfg config.LogConfig) *logging.Logger {
	var logger *logging.Logger
	if cfg.File != "" {
		logger = logging.NewFile(logging.FileOptions{
			Path:       cfg.File,
			MaxSizeMB:  cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAgeDays: cfg.MaxAgeDays,
			Compress:   true,
		})
	} else {
		logger = logging.New()
	}
	return logger.SetLevel(logging.ParseLevel(cfg.Level))
}

func runServe(ctx context.Context, opts *serveOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.Port != 0 {
		cfg.Server.Port = opts.Port
	}

	logger := newLogger(cfg.Log)
	defer func() { _ = logger.Close() }()
	// Handlers derive their component loggers from the default at construction.
	logging.Default = logger

	logger.Info("Starting dailycheck server...", logging.Fields{"env": cfg.Server.Environment})

	keys, err := services.DeriveKeys(cfg.Auth.Secret)
	if err != nil {
		return fmt.Errorf("deriving keys: %w", err)
	}

	var (
		sessions    services.SessionStore
		counter     middleware.Counter
		redisHealth handlers.HealthChecker
	)
	if cfg.Redis.Enabled {
		logger.Info("Connecting to Redis", logging.Fields{"addr": cfg.Redis.Addr()})
		redisDB, err := database.NewRedisDB(cfg.Redis)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() { _ = redisDB.Close() }()

		sessions = services.NewRedisSessionStore(services.NewRedisAdapter(redisDB.Client))
		counter = middleware.NewRedisCounter(redisDB.Client)
		redisHealth = redisDB
		logger.Info("Connected to Redis")
	} else {
		logger.Warn("Redis disabled; sessions and rate limits are kept in memory")
		sessions = services.NewMemorySessionStore()
		counter = middleware.NewMemoryCounter()
	}

	store := journal.NewQuestionStore(models.DefaultCatalog())
	customize := journal.NewCustomizeView(store)
	defer customize.Close()
	daily := journal.NewJournalView(store)
	defer daily.Close()

	m := metrics.New()
	stopGauge := m.TrackActiveQuestions(store)
	defer stopGauge()

	garmin := services.NewGarminAuthService(cfg.Garmin, keys.TokenSigning)
	if garmin.Mock() {
		logger.Info("Garmin client id not configured; using mock login")
		garmin.SetMockDelay(time.Second)
	}

	router := server.NewRouter(server.Deps{
		Config:    cfg,
		Logger:    logger,
		Metrics:   m,
		Store:     store,
		Customize: customize,
		Daily:     daily,
		Auth:      services.NewAuthService(sessions, keys.SessionHash),
		Garmin:    garmin,
		CheckIns:  services.NewCheckInService(store),
		Data:      services.NewMockDataService(nil),
		Counter:   counter,
		Redis:     redisHealth,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		// No WriteTimeout: the event stream is a long-lived websocket.
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", logging.Fields{"addr": addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Server is shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	srv.SetKeepAlivesEnabled(false)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Could not gracefully shutdown the server", logging.Fields{"error": err})
		return err
	}

	logger.Info("Server stopped")
	return nil
}
