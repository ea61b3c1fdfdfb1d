// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package history records the searches served by the backend.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wneessen/weather-lookup/internal/geocode"
	"github.com/wneessen/weather-lookup/internal/location"
)

// DefaultLimit is used by Recent when no positive limit is given.
const DefaultLimit = 10

// Recorder stores search history entries.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

type Entry struct {
	ID         uuid.UUID
	Query      string
	Kind       string
	Found      bool
	City       string
	State      string
	PostalCode string
	SearchedAt time.Time
}

// NewEntry returns an entry for a search of loc that resolved to addr.
func NewEntry(loc location.Location, addr geocode.Address) Entry {
	return Entry{
		ID:         uuid.New(),
		Query:      loc.String(),
		Kind:       loc.Kind().String(),
		Found:      addr.Found,
		City:       addr.City,
		State:      addr.State,
		PostalCode: addr.PostalCode,
		SearchedAt: time.Now().UTC(),
	}
}

func normalizeLimit(limit, upper int) int {
	if limit < 1 {
		limit = DefaultLimit
	}
	if upper > 0 && limit > upper {
		limit = upper
	}
	return limit
}
