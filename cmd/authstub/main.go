// authstub runs the in-memory authentication backend for local development:
//
//	AUTHSTUB_ADDR=:8000 AUTHSTUB_JWT_SECRET=dev-secret go run ./cmd/authstub
//
// It seeds the demo accounts the portal's login page offers.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sethvargo/go-envconfig"

	"github.com/enterprisehub/portal/internal/stubauth"
	"github.com/enterprisehub/portal/pkg/logger"
)

type stubConfig struct {
	Addr      string `env:"AUTHSTUB_ADDR,       default=:8000"`
	JWTSecret string `env:"AUTHSTUB_JWT_SECRET, default=dev-secret"`
	LogLevel  string `env:"LOG_LEVEL,           default=info"`
}

func main() {
	var cfg stubConfig
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("authstub: failed to load configuration: %v", err))
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	svc := stubauth.NewService(cfg.JWTSecret, 0)
	if err := svc.SeedDemoAccounts(); err != nil {
		log.Fatal().Err(err).Msg("failed to seed demo accounts")
	}

	e := stubauth.NewRouter(svc)
	log.Info().Str("addr", cfg.Addr).Msg("authstub listening")
	if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server failed")
	}
}
