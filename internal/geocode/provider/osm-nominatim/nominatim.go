// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package nominatim

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/weather-lookup/internal/geocode"
	"github.com/wneessen/weather-lookup/internal/http"
	"github.com/wneessen/weather-lookup/internal/location"
)

const (
	APISearchEndpoint = "https://nominatim.openstreetmap.org/search"
	APITimeout        = time.Second * 10
	name              = "osm-nominatim"
)

type Nominatim struct {
	http     *http.Client
	lang     language.Tag
	endpoint string
}

type SearchResult struct {
	APILat      string  `json:"lat"`
	APILon      string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Address     Address `json:"address"`
}

type Address struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Hamlet       string `json:"hamlet"`
	State        string `json:"state"`
	ISO31662Lvl4 string `json:"ISO3166-2-lvl4"`
	Postcode     string `json:"postcode"`
	Country      string `json:"country"`
	CountryCode  string `json:"country_code"`
}

func New(client *http.Client, lang language.Tag) *Nominatim {
	return &Nominatim{
		lang:     lang,
		http:     client,
		endpoint: APISearchEndpoint,
	}
}

func (n *Nominatim) Name() string {
	return name
}

// Search performs a structured search restricted to the United States and returns the first
// result. An empty result set is reported as an address that was not found.
func (n *Nominatim) Search(ctx context.Context, loc location.Location) (geocode.Address, error) {
	var results []SearchResult
	var err error

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("addressdetails", "1")
	query.Set("countrycodes", "us")
	query.Set("limit", "1")
	query.Set("accept-language", n.lang.String())
	switch loc.Kind() {
	case location.KindPostalCode:
		query.Set("postalcode", loc.PostalCode())
	case location.KindCityState:
		query.Set("city", loc.City())
		query.Set("state", loc.State())
	default:
		return geocode.Address{}, fmt.Errorf("cannot search for empty location")
	}

	code, err := n.http.GetWithTimeout(ctx, n.endpoint, &results, query, nil, APITimeout)
	if err != nil {
		return geocode.Address{}, fmt.Errorf("failed to fetch address details from Nominatim API: %w", err)
	}
	if code != 200 {
		return geocode.Address{}, fmt.Errorf("received non-positive response code from Nominatim API: %d", code)
	}
	if len(results) < 1 {
		return geocode.Address{}, nil
	}

	// Fill the geocode.Address struct
	result := results[0]
	address := geocode.Address{
		Found:       true,
		DisplayName: result.DisplayName,
		Country:     result.Address.Country,
		PostalCode:  result.Address.Postcode,
		City:        firstNonEmpty(result.Address.City, result.Address.Town, result.Address.Village, result.Address.Hamlet),
		State:       stateAbbrev(result.Address),
	}
	address.Latitude, err = strconv.ParseFloat(result.APILat, 64)
	if err != nil {
		return geocode.Address{}, fmt.Errorf("failed to parse latitude from Nominatim API response: %w", err)
	}
	address.Longitude, err = strconv.ParseFloat(result.APILon, 64)
	if err != nil {
		return geocode.Address{}, fmt.Errorf("failed to parse longitude from Nominatim API response: %w", err)
	}

	// Nominatim omits the city for some postal code results
	if address.City == "" && loc.Kind() == location.KindCityState {
		address.City = loc.City()
	}
	if address.PostalCode == "" && loc.Kind() == location.KindPostalCode {
		address.PostalCode = loc.PostalCode()
	}

	return address, nil
}

// stateAbbrev prefers the ISO 3166-2 subdivision code ("US-NC") and falls back to mapping the
// state name.
func stateAbbrev(addr Address) string {
	if code, ok := strings.CutPrefix(addr.ISO31662Lvl4, "US-"); ok && location.IsValidState(code) {
		return code
	}
	if abbrev, ok := location.AbbrevFromName(addr.State); ok {
		return abbrev
	}
	return addr.State
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
