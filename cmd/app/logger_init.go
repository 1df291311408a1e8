package main

import (
	"github.com/lunareth/FarfinderBot_Go/internal/config"
	"github.com/lunareth/FarfinderBot_Go/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	// Source info only in dev
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "farfinder-core",
		Environment: cfg.Environment,
		AddSource:   addSource,
	})
}
