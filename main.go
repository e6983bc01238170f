package main

import (
	"os"

	"github.com/LM-Towner/audioTranscriber/internal/bootstrap"
	"github.com/LM-Towner/audioTranscriber/internal/logging"
)

func main() {
	cfg := logging.DefaultConfig()
	cfg.Format = "console"
	if level := os.Getenv("AUDIOTRANSCRIBER_LOG_LEVEL"); level != "" {
		cfg.Level = level
	}
	logging.Init(cfg)

	app, err := bootstrap.New()
	if err != nil {
		logging.Logger().Fatal().Err(err).Msg("bootstrap app")
	}

	if err := app.Run(); err != nil {
		logging.Logger().Fatal().Err(err).Msg("run app")
	}
}
