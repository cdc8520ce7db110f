package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cafehub/gateway/internal/api"
	"github.com/cafehub/gateway/internal/core/ports"
	"github.com/cafehub/gateway/internal/core/service"
	"github.com/cafehub/gateway/internal/infrastructure/config"
	redisdb "github.com/cafehub/gateway/internal/infrastructure/db/redis"
	"github.com/cafehub/gateway/internal/infrastructure/rpc"
	"github.com/cafehub/gateway/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet.
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// Optional credential denylist.
	var rdb *goredis.Client
	var denylist ports.Denylist = service.NoopDenylist{}
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect failed")
		}
		denylist = redisdb.NewDenylist(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("credential denylist enabled")
	} else {
		log.Warn().Msg("no REDIS_ADDR set: logout clears the cookie but cannot revoke stolen credentials")
	}

	credentials := service.NewCredentialService(cfg.JWTSecret, cfg.CredentialTTL, denylist, log)

	// Backend clients share one transport; connections are long-lived and
	// read-only across requests.
	httpClient := &http.Client{}
	core := rpc.NewCoreClient(cfg.Backends.CoreURL, httpClient, cfg.Backends.CallTimeout, log)
	reviews := rpc.NewReviewClient(cfg.Backends.ReviewURL, httpClient, cfg.Backends.CallTimeout, log)
	reservations := rpc.NewReservationClient(cfg.Backends.ReservationURL, httpClient, cfg.Backends.CallTimeout, log)

	aggregator := service.NewAggregatorService(core, reviews, reservations, credentials, log)

	e := api.NewRouter(api.Deps{
		Aggregator:  aggregator,
		Credentials: credentials,
		Redis:       rdb,
		TokenTTL:    cfg.CredentialTTL,
		Logger:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
