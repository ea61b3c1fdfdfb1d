// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package template renders backend payloads for the terminal.
package template

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/spreak"
	"github.com/vorlif/spreak/localize"

	"github.com/wneessen/weather-lookup/internal/api"
	"github.com/wneessen/weather-lookup/internal/config"
)

const notAvailable = "n/a"

type Templates struct {
	Current *template.Template
	Hour    *template.Template
	Day     *template.Template

	localizer *spreak.Localizer
	humanizer *humanize.Humanizer
}

// hourView and dayView give the line templates access to the units of the payload via $.Units.
type hourView struct {
	api.Hour
	Units api.Units
}

type dayView struct {
	api.Day
	Units api.Units
}

var i18nVars = map[string]localize.MsgID{
	"updated":         "Updated",
	"temp":            "Temperature",
	"apparent":        "feels like",
	"high":            "High",
	"low":             "Low",
	"uv":              "UV index",
	"precip":          "Precipitation",
	"windspeed":       "Wind speed",
	"moonphase":       "Moon phase",
	"sunrise":         "Sunrise",
	"sunset":          "Sunset",
	"nexthours":       "Next hours",
	"hourlyfor":       "Hourly forecast for",
	"forecastfor":     "7-day forecast for",
	"nohourly":        "Hourly forecast not available",
	"new moon":        "New moon",
	"waxing crescent": "Waxing crescent",
	"first quarter":   "First quarter",
	"waxing gibbous":  "Waxing gibbous",
	"full moon":       "Full moon",
	"waning gibbous":  "Waning gibbous",
	"third quarter":   "Third quarter",
	"waning crescent": "Waning crescent",
}

func New(conf *config.Config, loc *spreak.Localizer) (*Templates, error) {
	if loc == nil {
		return nil, fmt.Errorf("localizer is required")
	}
	collection, err := humanize.New(humanize.WithLocale(de.New()))
	if err != nil {
		return nil, fmt.Errorf("failed to create humanizer: %w", err)
	}
	tpls := &Templates{
		localizer: loc,
		humanizer: collection.CreateHumanizer(loc.Language()),
	}

	tpl, err := template.New("current").Funcs(tpls.templateFuncMap()).Parse(conf.Templates.Current)
	if err != nil {
		return tpls, fmt.Errorf("failed to parse current template: %w", err)
	}
	tpls.Current = tpl

	tpl, err = template.New("hour").Funcs(tpls.templateFuncMap()).Parse(conf.Templates.Hour)
	if err != nil {
		return tpls, fmt.Errorf("failed to parse hour template: %w", err)
	}
	tpls.Hour = tpl

	tpl, err = template.New("day").Funcs(tpls.templateFuncMap()).Parse(conf.Templates.Day)
	if err != nil {
		return tpls, fmt.Errorf("failed to parse day template: %w", err)
	}
	tpls.Day = tpl

	return tpls, nil
}

// RenderSearch writes the current conditions followed by the hourly section.
func (t *Templates) RenderSearch(w io.Writer, res *api.SearchResponse) error {
	if err := t.Current.Execute(w, res); err != nil {
		return fmt.Errorf("failed to render current template: %w", err)
	}
	if _, err := fmt.Fprintf(w, "\n%s:\n", t.loc("nexthours")); err != nil {
		return err
	}
	return t.renderHours(w, res.Hourly, res.Units)
}

func (t *Templates) RenderForecast(w io.Writer, res *api.ForecastResponse) error {
	if _, err := fmt.Fprintf(w, "%s %s\n", t.loc("forecastfor"), placeName(res.Location)); err != nil {
		return err
	}
	for _, day := range res.Daily {
		if err := t.Day.Execute(w, dayView{Day: day, Units: res.Units}); err != nil {
			return fmt.Errorf("failed to render day template: %w", err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (t *Templates) RenderHourly(w io.Writer, res *api.HourlyResponse) error {
	if _, err := fmt.Fprintf(w, "%s %s\n", t.loc("hourlyfor"), placeName(res.Location)); err != nil {
		return err
	}
	return t.renderHours(w, res.Hourly, res.Units)
}

func (t *Templates) renderHours(w io.Writer, hours []api.Hour, units api.Units) error {
	if len(hours) == 0 {
		_, err := fmt.Fprintln(w, t.loc("nohourly"))
		return err
	}
	for _, hour := range hours {
		if err := t.Hour.Execute(w, hourView{Hour: hour, Units: units}); err != nil {
			return fmt.Errorf("failed to render hour template: %w", err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (t *Templates) templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"loc":           t.loc,
		"humanTime":     t.humanTime,
		"localizedTime": t.localizedTime,
		"timeFormat":    timeFormat,
		"floatFormat":   floatFormat,
		"round":         round,
		"optional":      optional,
		"emoji":         EmojiWithSpace,
		"pad":           runewidth.FillRight,
		"lc":            strings.ToLower,
		"uc":            strings.ToUpper,
	}
}

func (t *Templates) loc(val string) string {
	if raw, ok := i18nVars[strings.ToLower(val)]; ok {
		return t.localizer.Get(raw)
	}
	return val
}

func (t *Templates) humanTime(val time.Time) string {
	return t.humanizer.NaturalTime(val)
}

func (t *Templates) localizedTime(val time.Time) string {
	return t.humanizer.FormatTime(val, humanize.TimeFormat)
}

func placeName(place api.Place) string {
	if place.CityState != "" {
		return place.CityState
	}
	if place.Query != nil {
		return place.Query.String()
	}
	return ""
}

func timeFormat(val time.Time, fmt string) string {
	return val.Format(fmt)
}

func floatFormat(val float64, precision int) string {
	pow := math.Pow(10, float64(precision))
	return fmt.Sprintf("%.*f", precision, math.Trunc(val*pow)/pow)
}

func round(val float64) int {
	return int(math.Round(val))
}

// optional rounds an optional value, or returns "n/a" if it is missing.
func optional(val *float64) string {
	if val == nil {
		return notAvailable
	}
	return strconv.Itoa(round(*val))
}

// EmojiWithSpace returns the emoji followed by enough space to keep terminal columns aligned.
// An empty emoji yields an empty string.
func EmojiWithSpace(emoji string) string {
	if emoji == "" {
		return ""
	}
	width := runewidth.StringWidth(emoji)
	return fmt.Sprintf("%s%s", emoji, strings.Repeat(" ", max(3-width, 1)))
}
