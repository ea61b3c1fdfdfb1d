// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vorlif/spreak"

	"github.com/wneessen/weather-lookup/internal/api"
	"github.com/wneessen/weather-lookup/internal/i18n"
	"github.com/wneessen/weather-lookup/internal/location"
)

// Mode selects which backend view a lookup requests.
type Mode string

const (
	ModeSearch   Mode = "search"
	ModeForecast Mode = "forecast"
	ModeHourly   Mode = "hourly"

	prompt = "> "
)

func ParseMode(s string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return ModeSearch, nil
	case ModeSearch, ModeForecast, ModeHourly:
		return mode, nil
	default:
		return "", fmt.Errorf("unsupported mode: %q", s)
	}
}

// Renderer writes backend payloads for the user.
type Renderer interface {
	RenderSearch(w io.Writer, res *api.SearchResponse) error
	RenderForecast(w io.Writer, res *api.ForecastResponse) error
	RenderHourly(w io.Writer, res *api.HourlyResponse) error
}

// Session turns user input into lookups and renders the results.
type Session struct {
	client    *Client
	parser    location.Parser
	renderer  Renderer
	localizer *spreak.Localizer
	out       io.Writer
	mode      Mode
	units     string
}

func NewSession(client *Client, parser location.Parser, renderer Renderer, localizer *spreak.Localizer,
	out io.Writer, mode Mode, units string,
) (*Session, error) {
	if client == nil || renderer == nil || localizer == nil || out == nil {
		return nil, errors.New("client, renderer, localizer and output are required")
	}
	return &Session{
		client:    client,
		parser:    parser,
		renderer:  renderer,
		localizer: localizer,
		out:       out,
		mode:      mode,
		units:     units,
	}, nil
}

// Lookup parses input and renders the backend's answer for it. Unparseable input and unknown
// locations are reported to the user and do not count as errors. Unparseable input never
// reaches the backend.
func (s *Session) Lookup(ctx context.Context, input string) error {
	loc, ok := s.parser.Parse(input)
	if !ok {
		_, err := fmt.Fprintln(s.out, s.localizer.Get(i18n.MsgInvalidInput))
		return err
	}

	err := s.lookup(ctx, loc)
	if errors.Is(err, ErrNotFound) {
		_, err = fmt.Fprintln(s.out, s.localizer.Get(i18n.MsgNotFound))
	}
	return err
}

func (s *Session) lookup(ctx context.Context, loc location.Location) error {
	switch s.mode {
	case ModeForecast:
		res, err := s.client.Forecast(ctx, loc, s.units)
		if err != nil {
			return err
		}
		return s.renderer.RenderForecast(s.out, res)
	case ModeHourly:
		res, err := s.client.Hourly(ctx, loc, s.units)
		if err != nil {
			return err
		}
		return s.renderer.RenderHourly(s.out, res)
	default:
		res, err := s.client.Search(ctx, loc, s.units)
		if err != nil {
			return err
		}
		return s.renderer.RenderSearch(s.out, res)
	}
}

// Interactive reads one location per line from in until EOF, "quit" or "exit". Failed
// lookups are reported through onError and do not end the session.
func (s *Session) Interactive(ctx context.Context, in io.Reader, onError func(error)) error {
	scanner := bufio.NewScanner(in)
	for {
		if _, err := io.WriteString(s.out, prompt); err != nil {
			return err
		}
		if !scanner.Scan() {
			if _, err := io.WriteString(s.out, "\n"); err != nil {
				return err
			}
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return nil
		}
		if err := s.Lookup(ctx, line); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}
