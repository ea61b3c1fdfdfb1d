// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package api defines the JSON payloads exchanged between the weather-lookup server and client.
package api

import (
	"time"

	"github.com/wneessen/weather-lookup/internal/location"
)

const (
	PathSearch   = "/search"
	PathForecast = "/forecast"
	PathHourly   = "/hourly"
	PathLocation = "/api/location"
	PathHistory  = "/api/history"
	PathHealth   = "/healthz"

	HeaderRequestID = "X-Request-ID"
)

// Place is a resolved location.
type Place struct {
	Query       *location.Location `json:"query,omitempty"`
	DisplayName string             `json:"display_name"`
	City        string             `json:"city"`
	State       string             `json:"state"`
	CityState   string             `json:"city_state"`
	PostalCode  string             `json:"postal_code"`
	Country     string             `json:"country"`
	Latitude    float64            `json:"latitude"`
	Longitude   float64            `json:"longitude"`
}

type Units struct {
	System        string `json:"system"`
	Temperature   string `json:"temperature"`
	WindSpeed     string `json:"wind_speed"`
	Precipitation string `json:"precipitation"`
}

// Condition describes the weather for a WMO weather code. Icon is an image URL, Emoji a
// terminal-friendly alternative. Both are empty for unknown codes.
type Condition struct {
	WeatherCode int    `json:"weather_code"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Emoji       string `json:"emoji"`
	IsDay       bool   `json:"is_day"`
}

type Current struct {
	Condition
	Time                time.Time `json:"time"`
	Temperature         float64   `json:"temperature"`
	ApparentTemperature *float64  `json:"apparent_temperature"`
	WindSpeed           *float64  `json:"wind_speed"`
	Precipitation       *float64  `json:"precipitation"`
}

type Hour struct {
	Condition
	Time                     string    `json:"time"`
	Timestamp                time.Time `json:"timestamp"`
	Temperature              float64   `json:"temperature"`
	PrecipitationProbability *float64  `json:"precipitation_probability"`
}

type Day struct {
	Condition
	Date                        string   `json:"date"`
	Weekday                     string   `json:"weekday"`
	TemperatureMax              float64  `json:"temperature_max"`
	TemperatureMin              float64  `json:"temperature_min"`
	UVIndexMax                  *float64 `json:"uv_index_max"`
	PrecipitationProbabilityMax *float64 `json:"precipitation_probability_max"`
	Sunrise                     string   `json:"sunrise"`
	Sunset                      string   `json:"sunset"`
}

// Meta is shared by all weather responses.
type Meta struct {
	Location    Place     `json:"location"`
	Units       Units     `json:"units"`
	Timezone    string    `json:"timezone"`
	UpdatedTime string    `json:"updated_time"`
	GeneratedAt time.Time `json:"generated_at"`
}

// SearchResponse is returned by POST /search.
type SearchResponse struct {
	Meta
	Current       Current `json:"current"`
	Today         Day     `json:"today"`
	Hourly        []Hour  `json:"hourly"`
	MoonPhase     string  `json:"moon_phase"`
	MoonPhaseIcon string  `json:"moon_phase_icon"`
}

// ForecastResponse is returned by GET /forecast.
type ForecastResponse struct {
	Meta
	Daily []Day `json:"daily"`
}

// HourlyResponse is returned by GET /hourly.
type HourlyResponse struct {
	Meta
	Hourly []Hour `json:"hourly"`
}

type HistoryEntry struct {
	ID         string    `json:"id"`
	Query      string    `json:"query"`
	Kind       string    `json:"kind"`
	Found      bool      `json:"found"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	SearchedAt time.Time `json:"searched_at"`
}

type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}
