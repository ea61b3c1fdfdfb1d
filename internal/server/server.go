// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package server implements the weather-lookup HTTP backend.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/wneessen/weather-lookup/internal/api"
	"github.com/wneessen/weather-lookup/internal/config"
	"github.com/wneessen/weather-lookup/internal/geocode"
	"github.com/wneessen/weather-lookup/internal/history"
	"github.com/wneessen/weather-lookup/internal/location"
	"github.com/wneessen/weather-lookup/internal/logger"
	"github.com/wneessen/weather-lookup/internal/presenter"
	"github.com/wneessen/weather-lookup/internal/weather"
)

const purgeJobName = "geocode_cache_purge_job"

var errInvalidRequest = errors.New("invalid request")

// purger is implemented by geocoders that keep expiring entries.
type purger interface {
	Purge() int
}

type Server struct {
	config    *config.Config
	logger    *logger.Logger
	geocoder  geocode.Geocoder
	weather   weather.Provider
	history   history.Recorder
	presenter *presenter.Presenter
	parser    location.Parser
	units     weather.UnitSystem
	scheduler gocron.Scheduler
	mux       *http.ServeMux
}

func New(conf *config.Config, log *logger.Logger, geocoder geocode.Geocoder, provider weather.Provider,
	recorder history.Recorder,
) (*Server, error) {
	if conf == nil {
		return nil, errors.New("config is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	if geocoder == nil || provider == nil || recorder == nil {
		return nil, errors.New("geocoder, weather provider and history recorder are required")
	}
	units, err := weather.ParseUnitSystem(conf.Units, weather.Imperial)
	if err != nil {
		return nil, err
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	policy := location.StatePolicyPermissive
	if conf.Location.StrictStates {
		policy = location.StatePolicyStrict
	}

	s := &Server{
		config:    conf,
		logger:    log,
		geocoder:  geocoder,
		weather:   provider,
		history:   recorder,
		presenter: presenter.New(),
		parser:    location.Parser{Policy: policy},
		units:     units,
		scheduler: scheduler,
		mux:       http.NewServeMux(),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST "+api.PathSearch, s.handleSearch)
	s.mux.HandleFunc("GET "+api.PathForecast, s.handleForecast)
	s.mux.HandleFunc("GET "+api.PathHourly, s.handleHourly)
	s.mux.HandleFunc("POST "+api.PathLocation, s.handleLocation)
	s.mux.HandleFunc("GET "+api.PathHistory, s.handleHistory)
	s.mux.HandleFunc("GET "+api.PathHealth, s.handleHealth)
}

// Router returns the HTTP handler with all routes and middleware applied.
func (s *Server) Router() http.Handler {
	return s.requestID(s.accessLog(s.mux))
}

// Run serves HTTP on the configured listen address until ctx is canceled and then shuts the
// server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if cache, ok := s.geocoder.(purger); ok && s.config.Server.CachePurge > 0 {
		_, err := s.scheduler.NewJob(
			gocron.DurationJob(s.config.Server.CachePurge),
			gocron.NewTask(s.purgeCache, cache),
			gocron.WithContext(ctx),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithName(purgeJobName),
		)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", purgeJobName, err)
		}
	}
	s.scheduler.Start()

	listener, err := net.Listen("tcp", s.config.Server.Listen)
	if err != nil {
		_ = s.scheduler.Shutdown()
		return fmt.Errorf("failed to listen on %s: %w", s.config.Server.Listen, err)
	}
	srv := &http.Server{
		Handler:           s.Router(),
		ReadTimeout:       s.config.Server.ReadTimeout,
		ReadHeaderTimeout: s.config.Server.ReadTimeout,
		WriteTimeout:      s.config.Server.WriteTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("weather-lookup server listening", slog.String("addr", listener.Addr().String()),
			slog.String("geocoder", s.geocoder.Name()), slog.String("weather_provider", s.weather.Name()))
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err = <-serveErr:
		if err != nil {
			runErr = fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}

	s.logger.Info("shutting down weather-lookup server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("failed to shut down HTTP server: %w", err))
	}
	if err = s.scheduler.Shutdown(); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("failed to shut down scheduler: %w", err))
	}
	if err = s.history.Close(); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("failed to close history recorder: %w", err))
	}
	return runErr
}

func (s *Server) purgeCache(cache purger) {
	start := time.Now()
	removed := cache.Purge()
	s.logger.Debug("purged expired geocode cache entries", slog.Int("removed", removed),
		slog.Duration("took", time.Since(start)))
}

// resolve geocodes loc and records the search. A location that cannot be found yields an
// error wrapping geocode.ErrNotFound.
func (s *Server) resolve(ctx context.Context, loc location.Location) (geocode.Address, error) {
	if s.parser.Policy == location.StatePolicyStrict && loc.Kind() == location.KindCityState &&
		!location.IsValidState(loc.State()) {
		return geocode.Address{}, fmt.Errorf("unknown state %q: %w", loc.State(), errInvalidRequest)
	}

	addr, err := s.geocoder.Search(ctx, loc)
	if err != nil {
		return addr, fmt.Errorf("failed to geocode %q: %w", loc, err)
	}
	if err = s.history.Record(ctx, history.NewEntry(loc, addr)); err != nil {
		s.logger.Error("failed to record search history", logger.Err(err), slog.String("query", loc.String()))
	}
	if !addr.Found {
		return addr, fmt.Errorf("%q: %w", loc, geocode.ErrNotFound)
	}
	s.logger.Debug("location resolved", slog.String("query", loc.String()),
		slog.String("display_name", addr.DisplayName), slog.Bool("cache_hit", addr.CacheHit))
	return addr, nil
}

// lookup resolves loc and fetches the weather for it.
func (s *Server) lookup(ctx context.Context, loc location.Location, units weather.UnitSystem) (geocode.Address, *weather.Data, error) {
	addr, err := s.resolve(ctx, loc)
	if err != nil {
		return addr, nil, err
	}
	data, err := s.weather.GetWeather(ctx, addr.Coordinate(), units)
	if err != nil {
		return addr, nil, fmt.Errorf("failed to fetch weather data: %w", err)
	}
	return addr, data, nil
}

// statusFor maps an error from the lookup chain to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errInvalidRequest), errors.Is(err, location.ErrInvalidWire):
		return http.StatusBadRequest
	case errors.Is(err, geocode.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
