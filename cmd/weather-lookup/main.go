// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package main implements the weather-lookup terminal client.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wneessen/weather-lookup/internal/client"
	"github.com/wneessen/weather-lookup/internal/config"
	"github.com/wneessen/weather-lookup/internal/http"
	"github.com/wneessen/weather-lookup/internal/i18n"
	"github.com/wneessen/weather-lookup/internal/job"
	"github.com/wneessen/weather-lookup/internal/location"
	"github.com/wneessen/weather-lookup/internal/logger"
	"github.com/wneessen/weather-lookup/internal/template"
)

type runMode int

const (
	runOnce runMode = iota
	runInteractive
	runWatch
)

// selectRun picks how the client runs for the given location argument and watch interval.
func selectRun(input string, watch time.Duration) (runMode, error) {
	switch {
	case watch < 0:
		return runOnce, fmt.Errorf("invalid watch interval: %s", watch)
	case input == "" && watch > 0:
		return runOnce, errors.New("watch mode requires a location argument")
	case input == "":
		return runInteractive, nil
	case watch > 0:
		return runWatch, nil
	default:
		return runOnce, nil
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, os.Interrupt)
	defer cancel()

	log := logger.New(slog.LevelError)

	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment variables only")
	}

	confPath := flag.String("config", "", "path to the config file")
	mode := flag.String("mode", "search", "lookup mode: search, forecast or hourly")
	units := flag.String("units", "", "unit system: metric or imperial (default from config)")
	endpoint := flag.String("endpoint", "", "weather-lookup server URL (default from config)")
	watch := flag.Duration("watch", 0, "repeat the lookup on this interval, e.g. 10m")
	flag.Usage = func() {
		_, _ = fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [\"City, ST\" | ZIP]\n\n"+
			"Without a location, locations are read from stdin, one per line.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	input := strings.Join(flag.Args(), " ")
	run, err := selectRun(input, *watch)
	if err != nil {
		log.Error("invalid arguments", logger.Err(err))
		flag.Usage()
		os.Exit(2)
	}

	conf, err := config.Load(*confPath)
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}
	log = logger.New(conf.LogLevel)

	lookupMode, err := client.ParseMode(*mode)
	if err != nil {
		log.Error("invalid lookup mode", logger.Err(err))
		os.Exit(1)
	}
	if *endpoint == "" {
		*endpoint = conf.Client.Endpoint
	}
	if *units == "" {
		*units = conf.Units
	}

	localizer, err := i18n.New(conf.Locale)
	if err != nil {
		log.Error("failed to initialize localizer", logger.Err(err))
		os.Exit(1)
	}
	tpls, err := template.New(conf, localizer)
	if err != nil {
		log.Error("failed to parse templates", logger.Err(err))
		os.Exit(1)
	}
	backend, err := client.New(http.New(log), *endpoint, conf.Client.Timeout)
	if err != nil {
		log.Error("failed to create weather-lookup client", logger.Err(err))
		os.Exit(1)
	}

	policy := location.StatePolicyPermissive
	if conf.Location.StrictStates {
		policy = location.StatePolicyStrict
	}
	session, err := client.NewSession(backend, location.Parser{Policy: policy}, tpls, localizer, os.Stdout,
		lookupMode, *units)
	if err != nil {
		log.Error("failed to create session", logger.Err(err))
		os.Exit(1)
	}

	switch run {
	case runInteractive:
		err = session.Interactive(ctx, os.Stdin, func(err error) {
			log.Error("weather lookup failed", logger.Err(err))
		})
	case runWatch:
		job.New(*watch, func(ctx context.Context) {
			if err := session.Lookup(ctx, input); err != nil && ctx.Err() == nil {
				log.Error("weather lookup failed", logger.Err(err))
			}
		}, job.WithImmediateRun()).Start(ctx)
	default:
		err = session.Lookup(ctx, input)
	}
	if err != nil && ctx.Err() == nil {
		log.Error("weather lookup failed", logger.Err(err))
		os.Exit(1)
	}
}
