// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kkyr/fig"
)

const (
	configEnv = "WEATHERLOOKUP"

	DefaultCurrentTpl = "{{.Location.CityState}}\n" +
		"{{loc \"updated\"}}: {{.UpdatedTime}} ({{humanTime .GeneratedAt}})\n" +
		"{{emoji .Current.Emoji}}{{.Current.Description}}\n" +
		"{{loc \"temp\"}}: {{round .Current.Temperature}}{{.Units.Temperature}}, " +
		"{{loc \"apparent\"}} {{optional .Current.ApparentTemperature}}{{.Units.Temperature}}\n" +
		"{{loc \"high\"}}/{{loc \"low\"}}: {{round .Today.TemperatureMax}}{{.Units.Temperature}} / " +
		"{{round .Today.TemperatureMin}}{{.Units.Temperature}}\n" +
		"{{loc \"uv\"}}: {{optional .Today.UVIndexMax}}  " +
		"{{loc \"precip\"}}: {{optional .Today.PrecipitationProbabilityMax}}%  " +
		"{{loc \"windspeed\"}}: {{optional .Current.WindSpeed}} {{.Units.WindSpeed}}\n" +
		"{{loc \"moonphase\"}}: {{emoji .MoonPhaseIcon}}{{loc .MoonPhase}}\n"
	DefaultHourTpl = "{{pad .Time 6}}{{pad (printf \"%d%s\" (round .Temperature) $.Units.Temperature) 7}}" +
		"{{pad (printf \"%s%%\" (optional .PrecipitationProbability)) 5}}{{emoji .Emoji}}{{.Description}}"
	DefaultDayTpl = "{{pad .Date 12}}{{pad (printf \"%d/%d%s\" (round .TemperatureMax) (round .TemperatureMin) " +
		"$.Units.Temperature) 12}}{{pad (printf \"%s%%\" (optional .PrecipitationProbabilityMax)) 5}}" +
		"{{emoji .Emoji}}{{.Description}}"
)

// Config represents the application's configuration structure.
type Config struct {
	// Allowed values: metric, imperial
	Units    string     `fig:"units" default:"imperial"`
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	Location struct {
		// Reject city/state input whose state code is not a known US state or territory
		StrictStates bool `fig:"strict_states"`
	} `fig:"location"`

	Server struct {
		Listen          string        `fig:"listen" default:"127.0.0.1:8080"`
		ReadTimeout     time.Duration `fig:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `fig:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `fig:"shutdown_timeout" default:"10s"`
		CachePurge      time.Duration `fig:"cache_purge" default:"10m"`
	} `fig:"server"`

	Client struct {
		Endpoint string        `fig:"endpoint" default:"http://127.0.0.1:8080"`
		Timeout  time.Duration `fig:"timeout" default:"15s"`
	} `fig:"client"`

	Weather struct {
		Provider string `fig:"provider" default:"open-meteo"`
		// Allowed value: 1 to 48, 0 selects the default
		SearchHours uint `fig:"search_hours" default:"6"`
		// Allowed value: 1 to 48, 0 selects the default
		HourlyHours uint `fig:"hourly_hours" default:"24"`
	} `fig:"weather"`

	GeoCoder struct {
		// Allowed values: nominatim, opencage, geocode-earth
		Provider  string        `fig:"provider" default:"nominatim"`
		APIKey    string        `fig:"apikey"`
		CacheHit  time.Duration `fig:"cache_hit" default:"24h"`
		CacheMiss time.Duration `fig:"cache_miss" default:"1h"`
	} `fig:"geocoder"`

	History struct {
		// PostgreSQL connection string; when empty, history is kept in memory
		DSN string `fig:"dsn"`
		// Entries kept in memory, 0 selects the default
		Size int `fig:"size" default:"100"`
	} `fig:"history"`

	Templates struct {
		Current string `fig:"current"`
		Hour    string `fig:"hour"`
		Day     string `fig:"day"`
	} `fig:"templates"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	c.Units = strings.ToLower(c.Units)
	if c.Units != "metric" && c.Units != "imperial" {
		return fmt.Errorf("invalid units: %s", c.Units)
	}
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	if c.Weather.SearchHours < 1 || c.Weather.SearchHours > 48 {
		return fmt.Errorf("invalid search hours: %d", c.Weather.SearchHours)
	}
	if c.Weather.HourlyHours < 1 || c.Weather.HourlyHours > 48 {
		return fmt.Errorf("invalid hourly hours: %d", c.Weather.HourlyHours)
	}
	if strings.ToLower(c.Weather.Provider) != "open-meteo" {
		return fmt.Errorf("unsupported weather provider: %s", c.Weather.Provider)
	}
	switch strings.ToLower(c.GeoCoder.Provider) {
	case "nominatim":
	case "opencage", "geocode-earth":
		if c.GeoCoder.APIKey == "" {
			return fmt.Errorf("geocoder %s requires an API key", c.GeoCoder.Provider)
		}
	default:
		return fmt.Errorf("unsupported geocoder: %s", c.GeoCoder.Provider)
	}
	if c.History.Size < 1 {
		return fmt.Errorf("invalid history size: %d", c.History.Size)
	}
	if c.Templates.Current == "" {
		c.Templates.Current = DefaultCurrentTpl
	}
	if c.Templates.Hour == "" {
		c.Templates.Hour = DefaultHourTpl
	}
	if c.Templates.Day == "" {
		c.Templates.Day = DefaultDayTpl
	}

	return nil
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}

// Load returns the configuration from confPath if set, from the first config file found in
// ~/.config/weather-lookup otherwise, and from defaults and environment if there is none.
func Load(confPath string) (*Config, error) {
	if confPath != "" {
		return NewFromFile(filepath.Dir(confPath), filepath.Base(confPath))
	}
	if path, file := findConfigFile(); path != "" && file != "" {
		return NewFromFile(path, file)
	}
	return New()
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "weather-lookup", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
