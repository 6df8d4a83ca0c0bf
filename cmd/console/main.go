// Command console runs the DevNexus marketplace console on localhost.
//
// @title        DevNexus Marketplace Console API
// @version      1.0
// @description  Local console over the DevNexus marketplace backend.
// @host         localhost:3000
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devnexus/marketplace-console/internal/api"
	"github.com/devnexus/marketplace-console/internal/api/handler"
	"github.com/devnexus/marketplace-console/internal/core/ports"
	"github.com/devnexus/marketplace-console/internal/core/service"
	"github.com/devnexus/marketplace-console/internal/infrastructure/backend"
	"github.com/devnexus/marketplace-console/internal/infrastructure/tokenstore"
	"github.com/devnexus/marketplace-console/internal/pkg/config"
	"github.com/devnexus/marketplace-console/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Pretty: true})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "devnexus-console",
	})

	tokens, closeTokens, err := openTokenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Token.Store).Msg("failed to open token store")
	}
	defer closeTokens()

	client, err := backend.NewClient(backend.Config{
		BaseURL: cfg.Backend.URL,
		Timeout: cfg.Backend.Timeout,
	}, tokens, nil, logger.Component("backend"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build backend client")
	}

	session := service.NewSessionService(client, tokens, logger.Component("session"))
	client.OnUnauthorized(session.HandleUnauthorized)

	wizards := service.NewWizardManager(client, session, cfg.Wizard.MaxUploadFiles, logger.Component("wizard"))
	profile := service.NewProfileService(client, client, session, logger.Component("profile"))
	catalog := service.NewCatalogService(client, client, logger.Component("catalog"))

	e := api.NewRouter(api.Dependencies{
		Session: session,
		Wizards: wizards,
		Profile: profile,
		Catalog: catalog,
		Probes: map[string]handler.Pinger{
			"backend":     client,
			"token_store": tokens,
		},
		Uploads: handler.UploadLimits{
			MaxFiles: cfg.Wizard.MaxUploadFiles,
			MaxBytes: cfg.Wizard.MaxUploadBytes,
		},
		Logger: logger.Component("http"),
	})

	// Guarded routes answer "loading" until this returns.
	go session.Initialize(ctx)

	addr := "127.0.0.1:" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Str("backend", cfg.Backend.URL).Msg("console listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openTokenStore picks the configured token backend. The returned func
// releases whatever connection the store holds.
func openTokenStore(ctx context.Context, cfg *config.Config) (ports.TokenStore, func(), error) {
	if cfg.Token.Store != config.TokenStoreRedis {
		return tokenstore.NewFileStore(cfg.Token.File), func() {}, nil
	}

	rdb, err := tokenstore.ConnectRedis(ctx, tokenstore.RedisConfig{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
		Key:  cfg.Redis.TokenKey,
	})
	if err != nil {
		return nil, nil, err
	}
	return tokenstore.NewRedisStore(rdb, cfg.Redis.TokenKey), func() { _ = rdb.Close() }, nil
}
