// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/weather-lookup/internal/coords"
	"github.com/wneessen/weather-lookup/internal/vartype"
)

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
)

// Provider is implemented by each weather API backend.
type Provider interface {
	Name() string
	GetWeather(ctx context.Context, coords coords.Coordinate, system UnitSystem) (*Data, error)
}

// UnitSystem selects the measurement units a provider reports in.
type UnitSystem string

type Data struct {
	GeneratedAt time.Time
	Coordinates coords.Coordinate
	Timezone    *time.Location
	Units       Units

	Current Instant
	Hourly  []Instant
	Daily   []Day
}

type Instant struct {
	InstantTime              time.Time
	Temperature              float64
	ApparentTemperature      vartype.VarFloat64
	WeatherCode              int
	WindSpeed                vartype.VarFloat64
	Precipitation            vartype.VarFloat64
	PrecipitationProbability vartype.VarFloat64
	IsDay                    bool
}

type Day struct {
	Date                        time.Time
	TemperatureMax              float64
	TemperatureMin              float64
	UVIndexMax                  vartype.VarFloat64
	PrecipitationProbabilityMax vartype.VarFloat64
	WeatherCode                 int
	Sunrise                     time.Time
	Sunset                      time.Time
}

type Units struct {
	System        UnitSystem
	Temperature   string
	WindSpeed     string
	Precipitation string
}

// ParseUnitSystem returns the unit system for s. An empty string yields def.
func ParseUnitSystem(s string, def UnitSystem) (UnitSystem, error) {
	switch UnitSystem(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return def, nil
	case Metric:
		return Metric, nil
	case Imperial:
		return Imperial, nil
	default:
		return "", fmt.Errorf("unsupported unit system: %q", s)
	}
}

// Units returns the display units for the unit system.
func (u UnitSystem) Units() Units {
	if u == Imperial {
		return Units{System: Imperial, Temperature: "°F", WindSpeed: "mph", Precipitation: "inch"}
	}
	return Units{System: Metric, Temperature: "°C", WindSpeed: "km/h", Precipitation: "mm"}
}

// Today returns the first daily entry, or false if the provider returned no daily data.
func (d *Data) Today() (Day, bool) {
	if d == nil || len(d.Daily) == 0 {
		return Day{}, false
	}
	return d.Daily[0], true
}

// Location returns the time zone of the forecast location, falling back to UTC.
func (d *Data) Location() *time.Location {
	if d == nil || d.Timezone == nil {
		return time.UTC
	}
	return d.Timezone
}
