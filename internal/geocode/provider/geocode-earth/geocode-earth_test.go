// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocodeearth

import (
	"errors"
	"log/slog"
	stdhttp "net/http"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/wneessen/weather-lookup/internal/geocode"
	"github.com/wneessen/weather-lookup/internal/http"
	"github.com/wneessen/weather-lookup/internal/location"
	"github.com/wneessen/weather-lookup/internal/logger"
	"github.com/wneessen/weather-lookup/internal/testhelper"
)

const (
	cityFile       = "../../../../testdata/geocode-earth_raleigh.json"
	postalFile     = "../../../../testdata/geocode-earth_27587.json"
	emptyFile      = "../../../../testdata/geocode-earth_empty.json"
	noGeometryFile = "../../../../testdata/geocode-earth_nogeometry.json"
	testAPIKey     = "test-api-key"
)

func TestNew(t *testing.T) {
	t.Run("provider name is correct", func(t *testing.T) {
		coder := testCoder(t)
		if coder.Name() != name {
			t.Errorf("expected provider name to be %q, got %q", name, coder.Name())
		}
	})
}

func TestGeocodeEarth_Search(t *testing.T) {
	t.Run("city and state search succeeds", func(t *testing.T) {
		respond := testhelper.JSONResponse(t, cityFile, 200)
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			query := req.URL.Query()
			if query.Get("text") != "Raleigh, NC" {
				t.Errorf("expected text to be %q, got %q", "Raleigh, NC", query.Get("text"))
			}
			if query.Get("boundary.country") != "US" {
				t.Error("expected country boundary to be sent")
			}
			if query.Get("api_key") != testAPIKey {
				t.Error("expected API key to be sent")
			}
			return respond(req)
		}
		coder := testCoderWithRoundtripFunc(t, rtFn)
		addr, err := coder.Search(t.Context(), location.NewCityState("Raleigh", "NC"))
		if err != nil {
			t.Fatal(err)
		}
		if !addr.Found {
			t.Fatal("expected address to be found")
		}
		if addr.Latitude != 35.7803977 || addr.Longitude != -78.6390989 {
			t.Errorf("expected GeoJSON coordinates to be swapped, got %f,%f", addr.Latitude, addr.Longitude)
		}
		if addr.CityState() != "Raleigh, NC" {
			t.Errorf("expected city and state to be %q, got %q", "Raleigh, NC", addr.CityState())
		}
	})
	t.Run("postal code search maps the region name", func(t *testing.T) {
		coder := testCoderWithRoundtripFunc(t, testhelper.JSONResponse(t, postalFile, 200))
		addr, err := coder.Search(t.Context(), location.NewPostalCode("27587"))
		if err != nil {
			t.Fatal(err)
		}
		if addr.State != "NC" {
			t.Errorf("expected state to be %q, got %q", "NC", addr.State)
		}
		if addr.City != "Wake Forest" {
			t.Errorf("expected city to be %q, got %q", "Wake Forest", addr.City)
		}
	})
	t.Run("empty result is not found", func(t *testing.T) {
		coder := testCoderWithRoundtripFunc(t, testhelper.JSONResponse(t, emptyFile, 200))
		addr, err := coder.Search(t.Context(), location.NewPostalCode("99999"))
		if err != nil {
			t.Fatal(err)
		}
		if addr.Found {
			t.Error("expected address to be not found")
		}
	})
	t.Run("feature without coordinates fails", func(t *testing.T) {
		coder := testCoderWithRoundtripFunc(t, testhelper.JSONResponse(t, noGeometryFile, 200))
		_, err := coder.Search(t.Context(), location.NewCityState("Raleigh", "NC"))
		if err == nil {
			t.Fatal("expected search to fail")
		}
		if !strings.Contains(err.Error(), "without coordinates") {
			t.Errorf("unexpected error: %s", err)
		}
	})
	t.Run("non-200 response fails", func(t *testing.T) {
		coder := testCoderWithRoundtripFunc(t, testhelper.JSONResponse(t, emptyFile, 401))
		if _, err := coder.Search(t.Context(), location.NewPostalCode("27587")); err == nil {
			t.Fatal("expected search to fail")
		}
	})
	t.Run("search fails on transport error", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return nil, errors.New("intentionally failing")
		}
		coder := testCoderWithRoundtripFunc(t, rtFn)
		if _, err := coder.Search(t.Context(), location.NewPostalCode("27587")); err == nil {
			t.Fatal("expected API request to fail")
		}
	})
	t.Run("empty location fails", func(t *testing.T) {
		coder := testCoder(t)
		if _, err := coder.Search(t.Context(), location.Location{}); err == nil {
			t.Fatal("expected search to fail")
		}
	})
}

func testCoder(_ *testing.T) geocode.Geocoder {
	testHttpClient := http.New(logger.New(slog.LevelDebug))
	return New(testHttpClient, language.English, testAPIKey)
}

func testCoderWithRoundtripFunc(_ *testing.T, fn func(req *stdhttp.Request) (*stdhttp.Response, error)) geocode.Geocoder {
	testHttpClient := http.New(logger.New(slog.LevelDebug))
	testHttpClient.Transport = testhelper.MockRoundTripper{Fn: fn}
	return New(testHttpClient, language.English, testAPIKey)
}
