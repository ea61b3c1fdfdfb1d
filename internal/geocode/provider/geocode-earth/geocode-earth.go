// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocodeearth

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/weather-lookup/internal/geocode"
	"github.com/wneessen/weather-lookup/internal/http"
	"github.com/wneessen/weather-lookup/internal/location"
)

const (
	APIEndpoint = "https://api.geocode.earth/v1/search"
	APITimeout  = time.Second * 10
	name        = "geocode-earth"
)

type GeocodeEarth struct {
	apikey   string
	http     *http.Client
	lang     language.Tag
	endpoint string
}

type Response struct {
	Features []Feature `json:"features"`
	Type     string    `json:"type"`
}

type Feature struct {
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
	Type       string     `json:"type"`
}

// Geometry holds a GeoJSON point, ordered longitude first.
type Geometry struct {
	Coordinates []float64 `json:"coordinates"`
	Type        string    `json:"type"`
}

type Properties struct {
	DisplayName string `json:"label"`
	City        string `json:"locality"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
	Postcode    string `json:"postalcode"`
	State       string `json:"region"`
	StateCode   string `json:"region_a"`
}

func New(client *http.Client, lang language.Tag, apikey string) *GeocodeEarth {
	return &GeocodeEarth{
		apikey:   apikey,
		lang:     lang,
		http:     client,
		endpoint: APIEndpoint,
	}
}

func (g *GeocodeEarth) Name() string {
	return name
}

func (g *GeocodeEarth) Search(ctx context.Context, loc location.Location) (geocode.Address, error) {
	var response Response

	if loc.IsZero() {
		return geocode.Address{}, fmt.Errorf("cannot search for empty location")
	}

	query := url.Values{}
	query.Set("api_key", g.apikey)
	query.Set("text", loc.String())
	query.Set("boundary.country", "US")
	query.Set("size", "1")
	query.Set("lang", g.lang.String())

	code, err := g.http.GetWithTimeout(ctx, g.endpoint, &response, query, nil, APITimeout)
	if err != nil {
		return geocode.Address{}, fmt.Errorf("failed to retrieve address details from geocode.earth API: %w", err)
	}
	if code != 200 {
		return geocode.Address{}, fmt.Errorf("received non-positive response code from geocode.earth API: %d", code)
	}
	if len(response.Features) < 1 {
		return geocode.Address{}, nil
	}

	feature := response.Features[0]
	if len(feature.Geometry.Coordinates) < 2 {
		return geocode.Address{}, fmt.Errorf("geocode.earth API returned a feature without coordinates")
	}

	// Fill the geocode.Address struct
	result := feature.Properties
	address := geocode.Address{
		Found:       true,
		Latitude:    feature.Geometry.Coordinates[1],
		Longitude:   feature.Geometry.Coordinates[0],
		DisplayName: result.DisplayName,
		Country:     result.Country,
		PostalCode:  result.Postcode,
		City:        result.City,
		State:       strings.ToUpper(result.StateCode),
	}
	if address.State == "" {
		if abbrev, ok := location.AbbrevFromName(result.State); ok {
			address.State = abbrev
		}
	}

	return address, nil
}
