package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"

	"github.com/saeidalz13/battlesea/internal/config"
	"github.com/saeidalz13/battlesea/internal/console"
	"github.com/saeidalz13/battlesea/internal/logger"
	"github.com/saeidalz13/battlesea/internal/rng"
	mb "github.com/saeidalz13/battlesea/models/battleship"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.Stage, cfg.LogLevel)

	if err := cfg.Rules.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid rules")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	presenter := console.NewPresenter(os.Stdout, cfg.ShotDelay)
	input := console.NewInput(os.Stdin, os.Stdout)
	gameManager := mb.NewBattleshipGameManager(cfg.Rules, rng.New(cfg.Seed))

	presenter.Greet()
	game, err := gameManager.CreateGame(ctx, input, presenter)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create game")
	}
	log.Debug().Str("game", game.Uuid()).Msg("game created")

	state, err := game.Run(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			log.Info().Msg("game abandoned")
			return
		}
		log.Fatal().Err(err).Msg("game stopped")
	}
	log.Debug().Stringer("state", state).Int("shots", game.Shots()).Msg("game over")
}
