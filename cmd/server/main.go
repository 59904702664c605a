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

	"github.com/saeidalz13/battlesea/api"
	"github.com/saeidalz13/battlesea/db"
	"github.com/saeidalz13/battlesea/db/sqlc"
	"github.com/saeidalz13/battlesea/internal/config"
	"github.com/saeidalz13/battlesea/internal/logger"
	"github.com/saeidalz13/battlesea/internal/rng"
	mb "github.com/saeidalz13/battlesea/models/battleship"
	mc "github.com/saeidalz13/battlesea/models/connection"
)

const shutdownTimeout = time.Second * 10

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.Stage, cfg.LogLevel)

	if err := cfg.Rules.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid rules")
	}

	// analytics are optional
	var querier sqlc.Querier
	if cfg.DatabaseURL != "" {
		psql := db.MustConnectToDb(cfg.DatabaseURL, log)
		defer psql.Close()
		querier = sqlc.New(psql)
	} else {
		log.Warn().Msg("DATABASE_URL is empty; analytics disabled")
	}
	dbManager := sqlc.NewDbManager(querier)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessionManager := mc.NewBattleshipSessionManager(log)
	go sessionManager.CleanupPeriodically(ctx)

	gameManager := mb.NewBattleshipGameManager(cfg.Rules, rng.New(cfg.Seed))
	rp := api.NewRequestProcessor(sessionManager, gameManager, dbManager.Analytics, log)

	server := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler: api.NewRouter(rp),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shut down server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
