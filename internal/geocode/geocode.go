// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"errors"

	"github.com/wneessen/weather-lookup/internal/coords"
	"github.com/wneessen/weather-lookup/internal/location"
)

// ErrNotFound is returned by callers that require a found address.
var ErrNotFound = errors.New("location not found")

// Address is the result of resolving a location. Found is false if the provider had no match,
// in which case the remaining fields are empty.
type Address struct {
	Found       bool
	CacheHit    bool
	Latitude    float64
	Longitude   float64
	DisplayName string
	PostalCode  string
	City        string
	State       string
	Country     string
}

// Geocoder resolves a parsed location to coordinates and address details.
type Geocoder interface {
	Name() string
	Search(ctx context.Context, loc location.Location) (Address, error)
}

func (a Address) Coordinate() coords.Coordinate {
	return coords.Coordinate{Lat: a.Latitude, Lon: a.Longitude}
}

// CityState returns "City, ST", or the bare city if no state is known.
func (a Address) CityState() string {
	if a.State == "" {
		return a.City
	}
	return a.City + ", " + a.State
}
