package main

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

	"github.com/example/hotel-console/internal/application"
	"github.com/example/hotel-console/internal/config"
	"github.com/example/hotel-console/internal/hotelapi"
	httptransport "github.com/example/hotel-console/internal/http"
	"github.com/example/hotel-console/internal/persistence"
	"github.com/example/hotel-console/internal/persistence/sqlite"
)

const housekeepingInterval = time.Hour

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if loaded, err := config.LoadEnvFiles(); err != nil {
		logger.Error("failed to load env file", "error", err)
		os.Exit(1)
	} else if loaded {
		logger.Info("loaded environment from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(ctx); err != nil {
		logger.Error("failed to apply storage schema", "error", err)
		os.Exit(1)
	}

	handler, err := newHandler(cfg, storage, nil, logger)
	if err != nil {
		logger.Error("failed to assemble console", "error", err)
		os.Exit(1)
	}

	go runHousekeeping(ctx, storage, cfg.ProfileTTL, housekeepingInterval, time.Now, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("hotel console listening", "addr", server.Addr, "api_base_url", cfg.APIBaseURL, "mutation_policy", mutationPolicy(cfg).String())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

type profileStorage interface {
	persistence.StorageRepository
	Ping(ctx context.Context) error
}

// newHandler wires the API client, views and transport. httpClient may be nil.
func newHandler(cfg config.Config, storage profileStorage, httpClient *http.Client, logger *slog.Logger) (http.Handler, error) {
	client, err := hotelapi.NewClient(cfg.APIBaseURL, httpClient, logger)
	if err != nil {
		return nil, err
	}
	csrfKey, err := cfg.CSRFKey()
	if err != nil {
		return nil, err
	}
	renderer, err := httptransport.NewRenderer(logger)
	if err != nil {
		return nil, err
	}

	api := newHotelAPIAdapter(client)
	signIn := application.NewSignInService(api, logger)

	return httptransport.NewRouter(httptransport.RouterConfig{
		Public: httptransport.NewPublicHandler(api, renderer, logger),
		Account: httptransport.NewAccountHandler(httptransport.AccountHandlerConfig{
			Bookings: api,
			Guests:   api,
			SignIn:   signIn,
			Renderer: renderer,
			Logger:   logger,
		}),
		Admin: httptransport.NewAdminHandler(httptransport.AdminHandlerConfig{
			Bookings: api,
			SignIn:   signIn,
			Policy:   mutationPolicy(cfg),
			Renderer: renderer,
			Logger:   logger,
		}),
		Health: httptransport.NewHealthHandler(storage, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.StorageProfile(storage, httptransport.ProfileOptions{
				Secure: cfg.SecureCookies,
				MaxAge: cfg.ProfileTTL,
				Logger: logger,
			}),
		},
		CSRFKey:       csrfKey,
		SecureCookies: cfg.SecureCookies,
		Logger:        logger,
	}), nil
}

func mutationPolicy(cfg config.Config) application.MutationPolicy {
	if cfg.LegacyMutations {
		return application.MutationPolicyLegacy
	}
	return application.MutationPolicyGated
}
