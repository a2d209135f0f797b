package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/redis/go-redis/v9"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/potledger/internal/auth"
	"github.com/mmynk/potledger/internal/config"
	"github.com/mmynk/potledger/internal/events"
	"github.com/mmynk/potledger/internal/metrics"
	"github.com/mmynk/potledger/internal/middleware"
	"github.com/mmynk/potledger/internal/service"
	"github.com/mmynk/potledger/internal/storage"
	"github.com/mmynk/potledger/internal/storage/jsonfile"
	"github.com/mmynk/potledger/internal/storage/sqlite"
	"github.com/mmynk/potledger/pkg/ledgerv1/ledgerv1connect"
	"github.com/mmynk/potledger/pkg/logging"
)

func main() {
	debug := flag.Bool("debug", false, "log at debug level with colored output, ignoring LOG_LEVEL and LOG_FORMAT")
	flag.Parse()

	// Config first so LOG_LEVEL and LOG_FORMAT can come from .env
	cfg, err := config.Load()
	if *debug {
		logging.SetupWithLevel(slog.LevelDebug)
	} else {
		logging.Setup()
	}
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	store, err := openStore(cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close()

	publisher := newPublisher(cfg.Events)
	defer publisher.Close()

	rdb := newRedisClient(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	m := metrics.New()

	interceptors := []connect.Interceptor{middleware.MetricsInterceptor(m)}

	mux := http.NewServeMux()

	if cfg.Auth.Enabled() {
		authenticator, err := auth.NewPasswordAuthenticator(cfg.Auth.OwnerPassword)
		if err != nil {
			return fmt.Errorf("failed to set up owner password: %w", err)
		}
		jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

		authSvc := service.NewAuthService(authenticator, jwtManager, slog.Default())
		mux.Handle(ledgerv1connect.NewAuthServiceHandler(authSvc,
			connect.WithInterceptors(middleware.MetricsInterceptor(m), middleware.LoggingInterceptor()),
		))

		interceptors = append(interceptors, middleware.RequireAuth(jwtManager))
		slog.Info("Owner authentication enabled", "token_ttl", cfg.Auth.TokenTTL)
	} else {
		slog.Warn("JWT_SECRET not set, ledger API is unauthenticated")
	}
	interceptors = append(interceptors, middleware.LoggingInterceptor())

	ledgerSvc := service.NewLedgerService(store, publisher, m)
	mux.Handle(ledgerv1connect.NewLedgerServiceHandler(ledgerSvc, connect.WithInterceptors(interceptors...)))

	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	handler := middleware.RequestLogger(middleware.CORS(middleware.RateLimit(cfg.RateLimit, rdb)(mux)))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func openStore(cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Driver {
	case "json":
		if err := os.MkdirAll(filepath.Dir(cfg.StatePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		store, err := jsonfile.Open(cfg.StatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open state file: %w", err)
		}
		slog.Info("Storage initialized", "driver", cfg.Driver, "path", cfg.StatePath)
		return store, nil
	default:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		slog.Info("Storage initialized", "driver", cfg.Driver, "database", cfg.DBPath)
		return store, nil
	}
}

// newPublisher connects to the broker, falling back to a no-op publisher
// when none is configured or it is unreachable.
func newPublisher(cfg config.EventsConfig) events.Publisher {
	if cfg.AMQPURL == "" {
		slog.Info("AMQP_URL not set, session events disabled")
		return events.Nop{}
	}
	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.Queue)
	if err != nil {
		slog.Warn("Message broker unavailable, session events disabled", "error", err)
		return events.Nop{}
	}
	slog.Info("Publishing session events", "queue", cfg.Queue)
	return publisher
}

// newRedisClient returns nil when Redis is not configured or not reachable,
// which disables rate limiting.
func newRedisClient(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unavailable, rate limiting disabled", "addr", cfg.Addr, "error", err)
		_ = client.Close()
		return nil
	}
	slog.Info("Redis connected", "addr", cfg.Addr)
	return client
}
