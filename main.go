package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"gametree/config"
	"gametree/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML file describing the experiment")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	var cfg config.Config
	if err := cfg.Load(*configPath); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("log-level", cfg.LogLevel).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := experiments.Run(ctx, &cfg)
	if err != nil {
		log.Fatal().Err(err).Msgf("%s experiment failed", cfg.Name)
	}
	log.Info().Str("run-id", report.RunID).Str("dir", report.Dir).Int("games", len(report.Games)).Msg("experiment-complete")
}
