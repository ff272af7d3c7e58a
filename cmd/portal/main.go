package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/enterprisehub/portal/internal/api"
	"github.com/enterprisehub/portal/internal/api/metrics"
	"github.com/enterprisehub/portal/internal/core/navigation"
	"github.com/enterprisehub/portal/internal/core/ports"
	"github.com/enterprisehub/portal/internal/core/service"
	"github.com/enterprisehub/portal/internal/infrastructure/authapi"
	"github.com/enterprisehub/portal/internal/infrastructure/tokenstore"
	"github.com/enterprisehub/portal/internal/pkg/config"
	"github.com/enterprisehub/portal/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env != "production",
	})

	ctx := context.Background()

	tokens, rdb := buildTokenStore(ctx, cfg, log)
	client := authapi.NewClient(cfg.AuthBaseURL, cfg.RequestTimeout, log)
	session := service.NewSessionService(client, tokens, log)

	// Attempt to restore a persisted session before serving anything, so the
	// first render already sees the restored identity. Failures land the user
	// on the login page with no error banner.
	restoreCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	start := time.Now()
	restored := session.Restore(restoreCtx)
	cancel()
	metrics.AuthRequestDuration.WithLabelValues("restore").Observe(time.Since(start).Seconds())
	if restored {
		metrics.SessionRestoresTotal.WithLabelValues("restored").Inc()
	} else {
		metrics.SessionRestoresTotal.WithLabelValues("unauthenticated").Inc()
	}

	e := api.NewRouter(api.Deps{
		Session:     session,
		Manifest:    navigation.Default(),
		AuthBaseURL: cfg.AuthBaseURL,
		CSRFKey:     loadCSRFKey(cfg, log),
		Production:  cfg.Env == "production",
		Redis:       rdb,
		Log:         log,
	})

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("portal listening")
		if err := e.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	log.Info().Msg("portal stopped")
}

func buildTokenStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.TokenStore, *redis.Client) {
	switch cfg.Token.Backend {
	case "redis":
		rdb, err := tokenstore.Connect(ctx, tokenstore.RedisConfig{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis token store unavailable")
		}
		return tokenstore.NewRedisStore(rdb), rdb
	case "file", "":
		return tokenstore.NewFileStore(cfg.Token.Path), nil
	default:
		log.Fatal().Str("backend", cfg.Token.Backend).Msg("unknown token store backend")
		return nil, nil
	}
}

// loadCSRFKey decodes CSRF_KEY (64 hex characters). In development a random
// per-process key is generated instead; in production the key is required.
func loadCSRFKey(cfg *config.Config, log zerolog.Logger) []byte {
	if cfg.CSRFKey != "" {
		key, err := hex.DecodeString(cfg.CSRFKey)
		if err != nil || len(key) != 32 {
			log.Fatal().Msg("CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if cfg.Env == "production" {
		log.Fatal().Msg("CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatal().Err(err).Msg("failed to generate CSRF key")
	}
	log.Warn().Msg("using random CSRF key; set CSRF_KEY for production")
	return key
}
