// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/wneessen/weather-lookup/internal/api"
	"github.com/wneessen/weather-lookup/internal/history"
	"github.com/wneessen/weather-lookup/internal/location"
	"github.com/wneessen/weather-lookup/internal/logger"
	"github.com/wneessen/weather-lookup/internal/weather"
)

const maxBodySize = 1 << 16

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	loc, err := decodeLocation(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	units, err := s.requestUnits(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	addr, data, err := s.lookup(r.Context(), loc, units)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, s.presenter.Search(loc, addr, data, int(s.config.Weather.SearchHours)))
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	loc, units, err := s.queryParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	addr, data, err := s.lookup(r.Context(), loc, units)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, s.presenter.Forecast(loc, addr, data))
}

func (s *Server) handleHourly(w http.ResponseWriter, r *http.Request) {
	loc, units, err := s.queryParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	addr, data, err := s.lookup(r.Context(), loc, units)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, s.presenter.Hourly(loc, addr, data, int(s.config.Weather.HourlyHours)))
}

// handleLocation only geocodes the posted location.
func (s *Server) handleLocation(w http.ResponseWriter, r *http.Request) {
	loc, err := decodeLocation(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	addr, err := s.resolve(r.Context(), loc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, s.presenter.Place(loc, addr))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := history.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil || val < 1 {
			s.writeError(w, r, fmt.Errorf("invalid limit %q: %w", raw, errInvalidRequest))
			return
		}
		limit = val
	}

	entries, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to read search history", logger.Err(err))
		s.writeJSON(w, r, http.StatusInternalServerError, api.ErrorResponse{
			Error:     "failed to read search history",
			RequestID: RequestIDFromContext(r.Context()),
		})
		return
	}

	res := api.HistoryResponse{Entries: make([]api.HistoryEntry, 0, len(entries))}
	for _, entry := range entries {
		res.Entries = append(res.Entries, api.HistoryEntry{
			ID:         entry.ID.String(),
			Query:      entry.Query,
			Kind:       entry.Kind,
			Found:      entry.Found,
			City:       entry.City,
			State:      entry.State,
			PostalCode: entry.PostalCode,
			SearchedAt: entry.SearchedAt,
		})
	}
	s.writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok\n")
}

// decodeLocation reads a JSON location body. The location type validates the wire form itself.
func decodeLocation(w http.ResponseWriter, r *http.Request) (location.Location, error) {
	var loc location.Location
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&loc)
	switch {
	case errors.Is(err, io.EOF):
		return loc, fmt.Errorf("no location data provided: %w", errInvalidRequest)
	case errors.Is(err, location.ErrInvalidWire):
		return loc, err
	case err != nil:
		return loc, fmt.Errorf("invalid location data: %w", errInvalidRequest)
	case loc.IsZero():
		return loc, location.ErrInvalidWire
	}
	return loc, nil
}

// queryParams reads the location and unit system of a GET request.
func (s *Server) queryParams(r *http.Request) (location.Location, weather.UnitSystem, error) {
	query := r.URL.Query()
	loc, err := location.FromFields(query.Get("postal_code"), query.Get("city"), query.Get("state"))
	if err != nil {
		return loc, "", err
	}
	units, err := s.requestUnits(r)
	return loc, units, err
}

func (s *Server) requestUnits(r *http.Request) (weather.UnitSystem, error) {
	units, err := weather.ParseUnitSystem(r.URL.Query().Get("units"), s.units)
	if err != nil {
		return units, fmt.Errorf("%w: %w", errInvalidRequest, err)
	}
	return units, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode JSON response", logger.Err(err),
			slog.String("request_id", RequestIDFromContext(r.Context())))
	}
}

// writeError logs err and writes it as a JSON error with the status statusFor selects.
// Upstream details are not exposed to the caller.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	switch status {
	case http.StatusNotFound:
		msg = "location not found"
	case http.StatusBadGateway:
		msg = "failed to retrieve weather data"
		s.logger.Error("weather lookup failed", logger.Err(err),
			slog.String("request_id", RequestIDFromContext(r.Context())))
	default:
		s.logger.Debug("rejected request", logger.Err(err),
			slog.String("request_id", RequestIDFromContext(r.Context())))
	}
	s.writeJSON(w, r, status, api.ErrorResponse{Error: msg, RequestID: RequestIDFromContext(r.Context())})
}
