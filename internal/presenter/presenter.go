// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"fmt"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/wneessen/go-moonphase"

	"github.com/wneessen/weather-lookup/internal/api"
	"github.com/wneessen/weather-lookup/internal/coords"
	"github.com/wneessen/weather-lookup/internal/geocode"
	"github.com/wneessen/weather-lookup/internal/location"
	"github.com/wneessen/weather-lookup/internal/weather"
)

const (
	clockFormat = "15:04"
	dateFormat  = "2006-01-02"
	unknown     = "Unknown"
)

// Presenter turns provider data into the wire payloads returned by the server.
type Presenter struct {
	now func() time.Time
}

func New() *Presenter {
	return &Presenter{now: time.Now}
}

// Place builds the wire representation of a resolved location.
func (p *Presenter) Place(query location.Location, addr geocode.Address) api.Place {
	place := api.Place{
		DisplayName: addr.DisplayName,
		City:        addr.City,
		State:       addr.State,
		CityState:   addr.CityState(),
		PostalCode:  addr.PostalCode,
		Country:     addr.Country,
		Latitude:    addr.Latitude,
		Longitude:   addr.Longitude,
	}
	if !query.IsZero() {
		place.Query = &query
	}
	return place
}

// Search builds the current conditions payload with today's summary and the next hours.
func (p *Presenter) Search(query location.Location, addr geocode.Address, data *weather.Data, hours int) api.SearchResponse {
	now := p.now()
	phase := moonphase.New(now).PhaseName()
	res := api.SearchResponse{
		Meta:          p.meta(query, addr, data, now),
		Current:       p.current(data.Current),
		Hourly:        p.hours(data, now, hours),
		MoonPhase:     phase,
		MoonPhaseIcon: MoonPhaseIcon[phase],
	}
	if today, ok := data.Today(); ok {
		res.Today = p.day(today)
	}
	return res
}

// Forecast builds the daily forecast payload.
func (p *Presenter) Forecast(query location.Location, addr geocode.Address, data *weather.Data) api.ForecastResponse {
	res := api.ForecastResponse{
		Meta:  p.meta(query, addr, data, p.now()),
		Daily: make([]api.Day, 0, len(data.Daily)),
	}
	for _, day := range data.Daily {
		res.Daily = append(res.Daily, p.day(day))
	}
	return res
}

// Hourly builds the hourly forecast payload.
func (p *Presenter) Hourly(query location.Location, addr geocode.Address, data *weather.Data, hours int) api.HourlyResponse {
	now := p.now()
	return api.HourlyResponse{
		Meta:   p.meta(query, addr, data, now),
		Hourly: p.hours(data, now, hours),
	}
}

// Describe returns the condition for a WMO weather code. Unknown codes are described as
// "Unknown" with no icon.
func Describe(code int, isDay bool) api.Condition {
	cond := api.Condition{WeatherCode: code, IsDay: isDay, Description: unknown}
	wmo, ok := WMOConditions[code]
	if !ok {
		return cond
	}
	suffix := "n"
	cond.Description = wmo.night
	if isDay {
		suffix = "d"
		cond.Description = wmo.day
	}
	cond.Icon = fmt.Sprintf(iconURLFormat, wmo.icon, suffix)
	cond.Emoji = WMOWeatherIcons[code][isDay]
	return cond
}

// HourlyWindow returns up to n hourly entries starting with the first hour strictly after now,
// compared in the time zone of the forecast location. If no hour lies after now, the window
// starts with the first entry.
func HourlyWindow(data *weather.Data, now time.Time, n int) []weather.Instant {
	if data == nil || n < 1 {
		return nil
	}
	now = now.In(data.Location())
	start := 0
	for i, instant := range data.Hourly {
		if instant.InstantTime.After(now) {
			start = i
			break
		}
	}
	end := min(start+n, len(data.Hourly))
	return data.Hourly[start:end]
}

// IsDaytime reports whether t lies between sunrise and sunset at the given coordinates on the
// day of t. The second return value is false during polar day or night, when the sun does not
// rise or set.
func IsDaytime(coord coords.Coordinate, t time.Time) (bool, bool) {
	rise, set := sunrise.SunriseSunset(coord.Lat, coord.Lon, t.Year(), t.Month(), t.Day())
	if rise.IsZero() || set.IsZero() {
		return false, false
	}
	return !t.Before(rise) && !t.After(set), true
}

func (p *Presenter) meta(query location.Location, addr geocode.Address, data *weather.Data, now time.Time) api.Meta {
	return api.Meta{
		Location: p.Place(query, addr),
		Units: api.Units{
			System:        string(data.Units.System),
			Temperature:   data.Units.Temperature,
			WindSpeed:     data.Units.WindSpeed,
			Precipitation: data.Units.Precipitation,
		},
		Timezone:    data.Location().String(),
		UpdatedTime: now.In(data.Location()).Format(clockFormat),
		GeneratedAt: data.GeneratedAt,
	}
}

func (p *Presenter) current(in weather.Instant) api.Current {
	return api.Current{
		Condition:           Describe(in.WeatherCode, in.IsDay),
		Time:                in.InstantTime,
		Temperature:         in.Temperature,
		ApparentTemperature: in.ApparentTemperature.Ptr(),
		WindSpeed:           in.WindSpeed.Ptr(),
		Precipitation:       in.Precipitation.Ptr(),
	}
}

func (p *Presenter) hours(data *weather.Data, now time.Time, n int) []api.Hour {
	window := HourlyWindow(data, now, n)
	hours := make([]api.Hour, 0, len(window))
	for _, in := range window {
		isDay, ok := IsDaytime(data.Coordinates, in.InstantTime)
		if !ok {
			isDay = in.IsDay
		}
		hours = append(hours, api.Hour{
			Condition:                Describe(in.WeatherCode, isDay),
			Time:                     in.InstantTime.Format(clockFormat),
			Timestamp:                in.InstantTime,
			Temperature:              in.Temperature,
			PrecipitationProbability: in.PrecipitationProbability.Ptr(),
		})
	}
	return hours
}

// day renders a daily entry with its daytime condition.
func (p *Presenter) day(in weather.Day) api.Day {
	day := api.Day{
		Condition:                   Describe(in.WeatherCode, true),
		Date:                        in.Date.Format(dateFormat),
		Weekday:                     in.Date.Format("Mon"),
		TemperatureMax:              in.TemperatureMax,
		TemperatureMin:              in.TemperatureMin,
		UVIndexMax:                  in.UVIndexMax.Ptr(),
		PrecipitationProbabilityMax: in.PrecipitationProbabilityMax.Ptr(),
	}
	if !in.Sunrise.IsZero() {
		day.Sunrise = in.Sunrise.Format(clockFormat)
	}
	if !in.Sunset.IsZero() {
		day.Sunset = in.Sunset.Format(clockFormat)
	}
	return day
}
