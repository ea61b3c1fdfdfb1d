// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package opencage

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
	APIEndpoint = "https://api.opencagedata.com/geocode/v1/json"
	APITimeout  = time.Second * 10
	name        = "opencage"
)

type OpenCage struct {
	apikey   string
	http     *http.Client
	lang     language.Tag
	endpoint string
}

type Response struct {
	Results      []Result `json:"results"`
	Status       Status   `json:"status"`
	TotalResults int      `json:"total_results"`
}

type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Result struct {
	Components  Components `json:"components"`
	DisplayName string     `json:"formatted"`
	Geometry    Geometry   `json:"geometry"`
}

type Components struct {
	NormalizedCity string `json:"_normalized_city"`
	City           string `json:"city"`
	Country        string `json:"country"`
	CountryCode    string `json:"country_code"`
	Postcode       string `json:"postcode"`
	State          string `json:"state"`
	StateCode      string `json:"state_code"`
	Town           string `json:"town"`
	Village        string `json:"village"`
}

type Geometry struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lng"`
}

func New(client *http.Client, lang language.Tag, apikey string) *OpenCage {
	return &OpenCage{
		apikey:   apikey,
		lang:     lang,
		http:     client,
		endpoint: APIEndpoint,
	}
}

func (o *OpenCage) Name() string {
	return name
}

func (o *OpenCage) Search(ctx context.Context, loc location.Location) (geocode.Address, error) {
	var response Response

	if loc.IsZero() {
		return geocode.Address{}, fmt.Errorf("cannot search for empty location")
	}

	query := url.Values{}
	query.Set("key", o.apikey)
	query.Set("q", loc.String()+", USA")
	query.Set("countrycode", "us")
	query.Set("limit", "1")
	query.Set("no_annotations", "1")
	query.Set("no_record", "1")
	query.Set("language", o.lang.String())

	code, err := o.http.GetWithTimeout(ctx, o.endpoint, &response, query, nil, APITimeout)
	if err != nil {
		return geocode.Address{}, fmt.Errorf("failed to retrieve address details from OpenCage API: %w", err)
	}
	if code != 200 {
		return geocode.Address{}, fmt.Errorf("received non-positive response code from OpenCage API: %d (%s)",
			code, response.Status.Message)
	}
	if len(response.Results) < 1 {
		return geocode.Address{}, nil
	}

	// Fill the geocode.Address struct
	result := response.Results[0]
	address := geocode.Address{
		Found:       true,
		Latitude:    result.Geometry.Lat,
		Longitude:   result.Geometry.Lon,
		DisplayName: result.DisplayName,
		Country:     result.Components.Country,
		PostalCode:  result.Components.Postcode,
		City:        result.Components.NormalizedCity,
		State:       strings.ToUpper(result.Components.StateCode),
	}
	if address.City == "" {
		switch {
		case result.Components.City != "":
			address.City = result.Components.City
		case result.Components.Town != "":
			address.City = result.Components.Town
		case result.Components.Village != "":
			address.City = result.Components.Village
		}
	}
	if address.State == "" {
		if abbrev, ok := location.AbbrevFromName(result.Components.State); ok {
			address.State = abbrev
		}
	}

	return address, nil
}
