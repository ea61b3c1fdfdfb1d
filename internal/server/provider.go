// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/wneessen/weather-lookup/internal/config"
	"github.com/wneessen/weather-lookup/internal/geocode"
	geocodeearth "github.com/wneessen/weather-lookup/internal/geocode/provider/geocode-earth"
	"github.com/wneessen/weather-lookup/internal/geocode/provider/opencage"
	nominatim "github.com/wneessen/weather-lookup/internal/geocode/provider/osm-nominatim"
	"github.com/wneessen/weather-lookup/internal/history"
	"github.com/wneessen/weather-lookup/internal/http"
	"github.com/wneessen/weather-lookup/internal/logger"
	"github.com/wneessen/weather-lookup/internal/weather"
	openmeteo "github.com/wneessen/weather-lookup/internal/weather/provider/open-meteo"
)

// NewFromConfig builds a Server with the geocoder, weather provider and history recorder
// selected by the configuration.
func NewFromConfig(ctx context.Context, conf *config.Config, log *logger.Logger, lang language.Tag) (*Server, error) {
	geocoder, err := selectGeocodeProvider(conf, log, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode provider: %w", err)
	}
	provider, err := selectWeatherProvider(conf, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create weather provider: %w", err)
	}
	recorder, err := selectHistoryRecorder(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to create history recorder: %w", err)
	}

	return New(conf, log, geocoder, provider, recorder)
}

func selectGeocodeProvider(conf *config.Config, log *logger.Logger, lang language.Tag) (*geocode.CachedGeocoder, error) {
	var geocoder geocode.Geocoder

	switch strings.ToLower(conf.GeoCoder.Provider) {
	case "nominatim":
		geocoder = nominatim.New(http.New(log), lang)
	case "opencage":
		if conf.GeoCoder.APIKey == "" {
			return nil, fmt.Errorf("opencage geocoder requires an API key")
		}
		geocoder = opencage.New(http.New(log), lang, conf.GeoCoder.APIKey)
	case "geocode-earth":
		if conf.GeoCoder.APIKey == "" {
			return nil, fmt.Errorf("geocode-earth geocoder requires an API key")
		}
		geocoder = geocodeearth.New(http.New(log), lang, conf.GeoCoder.APIKey)
	default:
		return nil, fmt.Errorf("unsupported geocoder type: %s", conf.GeoCoder.Provider)
	}

	return geocode.NewCachedGeocoder(geocoder, conf.GeoCoder.CacheHit, conf.GeoCoder.CacheMiss), nil
}

func selectWeatherProvider(conf *config.Config, log *logger.Logger) (provider weather.Provider, err error) {
	switch strings.ToLower(conf.Weather.Provider) {
	case "open-meteo":
		provider, err = openmeteo.New(http.New(log), log)
		if err != nil {
			return provider, fmt.Errorf("failed to create Open-Meteo weather provider: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported weather provider: %s", conf.Weather.Provider)
	}
	return provider, nil
}

// selectHistoryRecorder returns a PostgreSQL recorder if a DSN is configured and a bounded
// in-memory recorder otherwise.
func selectHistoryRecorder(ctx context.Context, conf *config.Config) (history.Recorder, error) {
	if conf.History.DSN == "" {
		return history.NewMemory(conf.History.Size), nil
	}
	return history.NewPostgres(ctx, conf.History.DSN)
}
