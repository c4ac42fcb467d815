// Server entrypoint for the PRES auth gateway.
//
// @title        PRES Auth Gateway
// @version      1.0
// @description  Authentication and authorization gateway for the PRES user and search APIs.
// @BasePath     /
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pres-portal/auth-gateway/internal/api"
	"github.com/pres-portal/auth-gateway/internal/core/service"
	"github.com/pres-portal/auth-gateway/internal/infrastructure/config"
	mongodb "github.com/pres-portal/auth-gateway/internal/infrastructure/db/mongo"
	"github.com/pres-portal/auth-gateway/internal/infrastructure/db/postgres"
	redisdb "github.com/pres-portal/auth-gateway/internal/infrastructure/db/redis"
	"github.com/pres-portal/auth-gateway/internal/infrastructure/directory"
	"github.com/pres-portal/auth-gateway/internal/infrastructure/queue"
	"github.com/pres-portal/auth-gateway/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("configuration invalid")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Backing stores ---
	pg, err := postgres.Open(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres unavailable")
	}
	defer pg.Close()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	defer rdb.Close()

	mongoClient, mdb, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo unavailable")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	// --- Security core ---
	verifier, err := service.NewCredentialVerifier()
	if err != nil {
		log.Fatal().Err(err).Msg("verifier init failed")
	}

	users := postgres.NewUserRepository(pg)
	resolver := service.NewIdentityResolver(users)
	local := service.NewLocalProvider(resolver, verifier)

	dir := directory.NewClient(cfg.Directory.URL, cfg.Directory.Domain, 0)
	remote := service.NewDirectoryProvider(dir)

	chain := service.NewChain(local, remote)

	registry := redisdb.NewSessionRegistry(rdb, cfg.MaxSessions)
	sessions := service.NewSessionManager(registry, cfg.SessionSecret, cfg.SessionTTL)

	audit := queue.NewAuditDispatcher(0, mongodb.NewAuditRepository(mdb), log)
	audit.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Log:      log,
		Users:    users,
		Chain:    chain,
		Policy:   api.DefaultPolicy(),
		Sessions: sessions,
		Audit:    audit,
		PG:       pg,
		Redis:    rdb,
		Mongo:    mdb,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("auth gateway listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
