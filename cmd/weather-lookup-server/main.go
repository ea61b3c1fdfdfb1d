// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package main implements the weather-lookup backend server.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/wneessen/weather-lookup/internal/config"
	"github.com/wneessen/weather-lookup/internal/i18n"
	"github.com/wneessen/weather-lookup/internal/logger"
	"github.com/wneessen/weather-lookup/internal/server"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, os.Interrupt)
	defer cancel()

	// Initialize Logger
	log := logger.New(slog.LevelError)

	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment variables only")
	}

	// Read config
	confPath := flag.String("config", "", "path to the config file")
	flag.Parse()
	conf, err := config.Load(*confPath)
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}

	log = logger.New(conf.LogLevel)
	lang, err := i18n.Language(conf.Locale)
	if err != nil {
		log.Error("failed to detect language", logger.Err(err))
		os.Exit(1)
	}

	// Initialize the server
	srv, err := server.NewFromConfig(ctx, conf, log, lang)
	if err != nil {
		log.Error("failed to initialize weather-lookup server", logger.Err(err))
		os.Exit(1)
	}

	log.Info("starting weather-lookup server", slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date))
	if err = srv.Run(ctx); err != nil {
		log.Error("weather-lookup server failed", logger.Err(err))
		os.Exit(1)
	}
	log.Info("weather-lookup server stopped")
}
