// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/wneessen/weather-lookup/internal/coords"
	"github.com/wneessen/weather-lookup/internal/http"
	"github.com/wneessen/weather-lookup/internal/logger"
	"github.com/wneessen/weather-lookup/internal/vartype"
	"github.com/wneessen/weather-lookup/internal/weather"
)

const (
	name         = "open-meteo"
	apiEndpoint  = "https://api.open-meteo.com/v1/forecast"
	apiTimeout   = time.Second * 10
	forecastDays = 7
)

var (
	currentFields = []string{
		"temperature_2m", "apparent_temperature", "is_day", "weather_code", "wind_speed_10m", "precipitation",
	}
	hourlyFields = []string{
		"temperature_2m", "apparent_temperature", "weather_code", "precipitation_probability", "precipitation",
		"wind_speed_10m", "is_day",
	}
	dailyFields = []string{
		"weather_code", "temperature_2m_max", "temperature_2m_min", "uv_index_max",
		"precipitation_probability_max", "sunrise", "sunset",
	}
)

type OpenMeteo struct {
	log  *logger.Logger
	http *http.Client
}

// resTime is a local wall time as returned by the API with timezone=auto. It carries no zone
// until it is anchored to the response's time zone.
type resTime struct {
	time.Time
}

type resBool struct {
	bool
}

type response struct {
	Latitude             float64 `json:"latitude"`
	Longitude            float64 `json:"longitude"`
	GenerationTimeMs     float64 `json:"generationtime_ms"`
	UTCOffsetSeconds     int     `json:"utc_offset_seconds"`
	Timezone             string  `json:"timezone"`
	TimezoneAbbreviation string  `json:"timezone_abbreviation"`
	Elevation            float64 `json:"elevation"`
	Current              struct {
		Time                resTime  `json:"time"`
		Interval            int      `json:"interval"`
		Temperature         float64  `json:"temperature_2m"`
		ApparentTemperature *float64 `json:"apparent_temperature"`
		IsDay               resBool  `json:"is_day"`
		WeatherCode         int      `json:"weather_code"`
		WindSpeed           *float64 `json:"wind_speed_10m"`
		Precipitation       *float64 `json:"precipitation"`
	} `json:"current"`
	Hourly struct {
		Time                     []resTime  `json:"time"`
		Temperature              []float64  `json:"temperature_2m"`
		ApparentTemperature      []*float64 `json:"apparent_temperature"`
		WeatherCode              []int      `json:"weather_code"`
		PrecipitationProbability []*float64 `json:"precipitation_probability"`
		Precipitation            []*float64 `json:"precipitation"`
		WindSpeed                []*float64 `json:"wind_speed_10m"`
		IsDay                    []resBool  `json:"is_day"`
	} `json:"hourly"`
	Daily struct {
		Time                        []resTime  `json:"time"`
		WeatherCode                 []int      `json:"weather_code"`
		TemperatureMax              []float64  `json:"temperature_2m_max"`
		TemperatureMin              []float64  `json:"temperature_2m_min"`
		UVIndexMax                  []*float64 `json:"uv_index_max"`
		PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
		Sunrise                     []resTime  `json:"sunrise"`
		Sunset                      []resTime  `json:"sunset"`
	} `json:"daily"`
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

func New(http *http.Client, log *logger.Logger) (*OpenMeteo, error) {
	if http == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &OpenMeteo{http: http, log: log}, nil
}

func (o *OpenMeteo) Name() string {
	return name
}

func (o *OpenMeteo) GetWeather(ctx context.Context, coords coords.Coordinate, system weather.UnitSystem) (*weather.Data, error) {
	res := new(response)
	data := new(weather.Data)

	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%f", coords.Lat))
	query.Set("longitude", fmt.Sprintf("%f", coords.Lon))
	query.Set("current", strings.Join(currentFields, ","))
	query.Set("hourly", strings.Join(hourlyFields, ","))
	query.Set("daily", strings.Join(dailyFields, ","))
	query.Set("timezone", "auto")
	query.Set("forecast_days", fmt.Sprintf("%d", forecastDays))
	if system == weather.Imperial {
		query.Set("temperature_unit", "fahrenheit")
		query.Set("wind_speed_unit", "mph")
		query.Set("precipitation_unit", "inch")
	}

	code, err := o.http.GetWithTimeout(ctx, apiEndpoint, res, query, nil, apiTimeout)
	if err != nil {
		return data, fmt.Errorf("failed to retrieve weather data from Open-Meteo API: %w", err)
	}
	if code != 200 {
		if res.Reason != "" {
			return data, fmt.Errorf("Open-Meteo API returned non-positive response code: %d (%s)", code, res.Reason)
		}
		return data, fmt.Errorf("Open-Meteo API returned non-positive response code: %d", code)
	}

	loc := o.timezone(res)
	data.GeneratedAt = time.Now()
	data.Coordinates = coords
	data.Timezone = loc
	data.Units = system.Units()
	data.Current = weather.Instant{
		InstantTime:         res.Current.Time.in(loc),
		Temperature:         res.Current.Temperature,
		ApparentTemperature: optional(res.Current.ApparentTemperature),
		WeatherCode:         res.Current.WeatherCode,
		WindSpeed:           optional(res.Current.WindSpeed),
		Precipitation:       optional(res.Current.Precipitation),
		IsDay:               res.Current.IsDay.bool,
	}

	hourly := res.Hourly
	for i := range hourly.Time {
		if i >= len(hourly.Temperature) || i >= len(hourly.WeatherCode) {
			o.log.Warn("Open-Meteo hourly series is shorter than its time axis", slog.Int("index", i))
			break
		}
		instant := weather.Instant{
			InstantTime:              hourly.Time[i].in(loc),
			Temperature:              hourly.Temperature[i],
			ApparentTemperature:      optionalAt(hourly.ApparentTemperature, i),
			WeatherCode:              hourly.WeatherCode[i],
			WindSpeed:                optionalAt(hourly.WindSpeed, i),
			Precipitation:            optionalAt(hourly.Precipitation, i),
			PrecipitationProbability: optionalAt(hourly.PrecipitationProbability, i),
		}
		if i < len(hourly.IsDay) {
			instant.IsDay = hourly.IsDay[i].bool
		}
		data.Hourly = append(data.Hourly, instant)
	}

	daily := res.Daily
	for i := range daily.Time {
		if i >= len(daily.TemperatureMax) || i >= len(daily.TemperatureMin) || i >= len(daily.WeatherCode) {
			o.log.Warn("Open-Meteo daily series is shorter than its time axis", slog.Int("index", i))
			break
		}
		day := weather.Day{
			Date:                        daily.Time[i].in(loc),
			TemperatureMax:              daily.TemperatureMax[i],
			TemperatureMin:              daily.TemperatureMin[i],
			UVIndexMax:                  optionalAt(daily.UVIndexMax, i),
			PrecipitationProbabilityMax: optionalAt(daily.PrecipitationProbabilityMax, i),
			WeatherCode:                 daily.WeatherCode[i],
		}
		if i < len(daily.Sunrise) {
			day.Sunrise = daily.Sunrise[i].in(loc)
		}
		if i < len(daily.Sunset) {
			day.Sunset = daily.Sunset[i].in(loc)
		}
		data.Daily = append(data.Daily, day)
	}

	return data, nil
}

// timezone resolves the IANA zone of the response. If the zone database does not know it,
// the fixed UTC offset of the response is used instead.
func (o *OpenMeteo) timezone(res *response) *time.Location {
	if res.Timezone != "" {
		loc, err := time.LoadLocation(res.Timezone)
		if err == nil {
			return loc
		}
		o.log.Warn("failed to load time zone, falling back to UTC offset",
			slog.String("timezone", res.Timezone), logger.Err(err))
	}
	return time.FixedZone(res.TimezoneAbbreviation, res.UTCOffsetSeconds)
}

func (r *resTime) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("empty time")
	}
	if b[0] != '"' || len(b) < 2 {
		return fmt.Errorf("invalid time format: %s", string(b))
	}

	layout := "2006-01-02T15:04"
	value := string(b[1 : len(b)-1])
	if !strings.Contains(value, "T") {
		layout = "2006-01-02"
	}
	apiTime, err := time.Parse(layout, value)
	if err != nil {
		return fmt.Errorf("failed to parse time: %w", err)
	}
	r.Time = apiTime

	return nil
}

// in returns the wall time of r in loc.
func (r resTime) in(loc *time.Location) time.Time {
	t := r.Time
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
}

func (r *resBool) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("empty bool")
	}
	if b[0] == '0' || string(b) == "false" || string(b) == "null" {
		return nil
	}
	r.bool = true
	return nil
}

func optional(v *float64) vartype.VarFloat64 {
	if v == nil {
		return vartype.VarFloat64{}
	}
	return vartype.NewVariable(*v)
}

func optionalAt(values []*float64, i int) vartype.VarFloat64 {
	if i >= len(values) {
		return vartype.VarFloat64{}
	}
	return optional(values[i])
}
