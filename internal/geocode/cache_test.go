// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/wneessen/weather-lookup/internal/location"
)

const (
	testHitTTL  = 200 * time.Millisecond
	testMissTTL = 100 * time.Millisecond
)

var testAddress = Address{
	Found:       true,
	Latitude:    35.6446,
	Longitude:   -78.3961,
	DisplayName: "Zebulon, Wake County, North Carolina, 27597, United States",
	PostalCode:  "27597",
	City:        "Zebulon",
	State:       "NC",
	Country:     "United States",
}

type mockGeocoder struct {
	calls int
}

func (m *mockGeocoder) Name() string { return "mock" }

func (m *mockGeocoder) Search(_ context.Context, loc location.Location) (Address, error) {
	m.calls++
	switch loc.String() {
	case "27597", "Zebulon, NC":
		return testAddress, nil
	case "00000":
		return Address{}, errors.New("lookup intentionally failed")
	default:
		return Address{}, nil
	}
}

func TestNewCachedGeocoder(t *testing.T) {
	t.Run("a new geocoder should be returned", func(t *testing.T) {
		coder := NewCachedGeocoder(&mockGeocoder{}, testHitTTL, testMissTTL)
		if coder == nil {
			t.Fatal("expected a non-nil geocoder")
		}
		if coder.Name() != "geocoder cache using mock" {
			t.Errorf("expected geocoder name to be 'geocoder cache using mock', got %q", coder.Name())
		}
	})
}

func TestCachedGeocoder_Search(t *testing.T) {
	t.Run("first lookup misses, second lookup hits the cache", func(t *testing.T) {
		mock := &mockGeocoder{}
		coder := NewCachedGeocoder(mock, testHitTTL, testMissTTL)
		addr, err := coder.Search(t.Context(), location.NewPostalCode("27597"))
		if err != nil {
			t.Fatal(err)
		}
		if !addr.Found {
			t.Fatal("expected address to be found")
		}
		if addr.CacheHit {
			t.Error("expected cache miss")
		}
		addr, err = coder.Search(t.Context(), location.NewPostalCode("27597"))
		if err != nil {
			t.Fatal(err)
		}
		if !addr.CacheHit {
			t.Error("expected cache hit")
		}
		if addr.City != testAddress.City {
			t.Errorf("expected city to be %q, got %q", testAddress.City, addr.City)
		}
		if mock.calls != 1 {
			t.Errorf("expected one upstream lookup, got %d", mock.calls)
		}
	})
	t.Run("city lookups are case-insensitive", func(t *testing.T) {
		mock := &mockGeocoder{}
		coder := NewCachedGeocoder(mock, testHitTTL, testMissTTL)
		if _, err := coder.Search(t.Context(), location.NewCityState("Zebulon", "NC")); err != nil {
			t.Fatal(err)
		}
		addr, err := coder.Search(t.Context(), location.NewCityState("zebulon", "nc"))
		if err != nil {
			t.Fatal(err)
		}
		if !addr.CacheHit {
			t.Error("expected cache hit")
		}
	})
	t.Run("unknown location is cached as a miss", func(t *testing.T) {
		mock := &mockGeocoder{}
		coder := NewCachedGeocoder(mock, testHitTTL, testMissTTL)
		addr, err := coder.Search(t.Context(), location.NewCityState("Nowhere", "NC"))
		if err != nil {
			t.Fatal(err)
		}
		if addr.Found {
			t.Fatal("expected address to be not found")
		}
		addr, err = coder.Search(t.Context(), location.NewCityState("Nowhere", "NC"))
		if err != nil {
			t.Fatal(err)
		}
		if !addr.CacheHit || addr.Found {
			t.Error("expected cached negative result")
		}
	})
	t.Run("failed lookups are not cached", func(t *testing.T) {
		mock := &mockGeocoder{}
		coder := NewCachedGeocoder(mock, testHitTTL, testMissTTL)
		for i := 0; i < 2; i++ {
			if _, err := coder.Search(t.Context(), location.NewPostalCode("00000")); err == nil {
				t.Fatal("expected an error")
			}
		}
		if mock.calls != 2 {
			t.Errorf("expected two upstream lookups, got %d", mock.calls)
		}
		if coder.Len() != 0 {
			t.Errorf("expected empty cache, got %d entries", coder.Len())
		}
	})
	t.Run("cache should not trigger on expired TTL", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			coder := NewCachedGeocoder(&mockGeocoder{}, testHitTTL, testMissTTL)
			if _, err := coder.Search(t.Context(), location.NewPostalCode("27597")); err != nil {
				t.Fatal(err)
			}
			time.Sleep(testHitTTL * 2)
			addr, err := coder.Search(t.Context(), location.NewPostalCode("27597"))
			if err != nil {
				t.Fatal(err)
			}
			if addr.CacheHit {
				t.Error("expected cache miss")
			}
		})
	})
	t.Run("cache should hit on non-expired TTL", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			coder := NewCachedGeocoder(&mockGeocoder{}, testHitTTL, testMissTTL)
			if _, err := coder.Search(t.Context(), location.NewPostalCode("27597")); err != nil {
				t.Fatal(err)
			}
			time.Sleep(testHitTTL - 5*time.Millisecond)
			addr, err := coder.Search(t.Context(), location.NewPostalCode("27597"))
			if err != nil {
				t.Fatal(err)
			}
			if !addr.CacheHit {
				t.Error("expected cache hit")
			}
		})
	})
}

func TestCachedGeocoder_Purge(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		coder := NewCachedGeocoder(&mockGeocoder{}, testHitTTL, testMissTTL)
		if _, err := coder.Search(t.Context(), location.NewPostalCode("27597")); err != nil {
			t.Fatal(err)
		}
		if _, err := coder.Search(t.Context(), location.NewCityState("Nowhere", "NC")); err != nil {
			t.Fatal(err)
		}
		if coder.Len() != 2 {
			t.Fatalf("expected 2 cache entries, got %d", coder.Len())
		}
		if removed := coder.Purge(); removed != 0 {
			t.Errorf("expected no entries to be purged, got %d", removed)
		}

		time.Sleep(testMissTTL + time.Millisecond)
		if removed := coder.Purge(); removed != 1 {
			t.Errorf("expected the miss entry to be purged, got %d", removed)
		}
		time.Sleep(testHitTTL)
		if removed := coder.Purge(); removed != 1 {
			t.Errorf("expected the hit entry to be purged, got %d", removed)
		}
		if coder.Len() != 0 {
			t.Errorf("expected empty cache, got %d entries", coder.Len())
		}
	})
}
