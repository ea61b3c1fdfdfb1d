// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package client talks to the weather-lookup backend. Every call performs exactly one request.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	stdhttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wneessen/weather-lookup/internal/api"
	"github.com/wneessen/weather-lookup/internal/http"
	"github.com/wneessen/weather-lookup/internal/location"
)

var (
	// ErrNotFound is returned when the backend could not resolve the location.
	ErrNotFound = errors.New("location not found")

	ErrEmptyLocation = errors.New("location is empty")
)

// ServerError is a non-200 response of the backend.
type ServerError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *ServerError) Error() string {
	msg := fmt.Sprintf("server responded with status %d: %s", e.StatusCode, e.Message)
	if e.RequestID != "" {
		msg += " (request id: " + e.RequestID + ")"
	}
	return msg
}

func (e *ServerError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == stdhttp.StatusNotFound
}

type Client struct {
	http     *http.Client
	endpoint *url.URL
	timeout  time.Duration
}

// New returns a client for the backend at endpoint, e.g. http://127.0.0.1:8080.
func New(client *http.Client, endpoint string, timeout time.Duration) (*Client, error) {
	if client == nil {
		return nil, errors.New("http client is required")
	}
	base, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse endpoint URL: %w", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("invalid endpoint URL: %q", endpoint)
	}
	if timeout <= 0 {
		timeout = http.DefaultTimeout
	}
	return &Client{http: client, endpoint: base, timeout: timeout}, nil
}

// Search posts loc to the backend and returns current conditions with the next hours.
// An empty units string selects the backend's default.
func (c *Client) Search(ctx context.Context, loc location.Location, units string) (*api.SearchResponse, error) {
	if loc.IsZero() {
		return nil, ErrEmptyLocation
	}
	var raw json.RawMessage
	status, err := c.http.PostJSON(ctx, c.url(api.PathSearch), &raw, loc, unitsQuery(units), c.timeout)
	res := new(api.SearchResponse)
	if err = decodeResponse(status, err, raw, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Forecast returns the daily forecast for loc.
func (c *Client) Forecast(ctx context.Context, loc location.Location, units string) (*api.ForecastResponse, error) {
	res := new(api.ForecastResponse)
	if err := c.get(ctx, api.PathForecast, loc, units, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Hourly returns the hourly forecast for loc.
func (c *Client) Hourly(ctx context.Context, loc location.Location, units string) (*api.HourlyResponse, error) {
	res := new(api.HourlyResponse)
	if err := c.get(ctx, api.PathHourly, loc, units, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) get(ctx context.Context, path string, loc location.Location, units string, target any) error {
	if loc.IsZero() {
		return ErrEmptyLocation
	}
	query := unitsQuery(units)
	switch loc.Kind() {
	case location.KindPostalCode:
		query.Set("postal_code", loc.PostalCode())
	case location.KindCityState:
		query.Set("city", loc.City())
		query.Set("state", loc.State())
	}

	var raw json.RawMessage
	status, err := c.http.GetWithTimeout(ctx, c.url(path), &raw, query, nil, c.timeout)
	return decodeResponse(status, err, raw, target)
}

func (c *Client) url(path string) string {
	return c.endpoint.JoinPath(path).String()
}

func unitsQuery(units string) url.Values {
	query := url.Values{}
	if units = strings.TrimSpace(units); units != "" {
		query.Set("units", units)
	}
	return query
}

// decodeResponse turns the result of a request into target or an error. Non-200 responses
// become a *ServerError carrying the backend's message if the body holds one.
func decodeResponse(status int, reqErr error, raw json.RawMessage, target any) error {
	if status == 0 {
		return fmt.Errorf("failed to reach weather-lookup server: %w", reqErr)
	}
	if status != stdhttp.StatusOK {
		serverErr := &ServerError{StatusCode: status, Message: stdhttp.StatusText(status)}
		var res api.ErrorResponse
		if reqErr == nil && json.Unmarshal(raw, &res) == nil && res.Error != "" {
			serverErr.Message = res.Error
			serverErr.RequestID = res.RequestID
		}
		return serverErr
	}
	if reqErr != nil {
		return reqErr
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to decode server response: %w", err)
	}
	return nil
}
