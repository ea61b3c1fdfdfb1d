// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package history

import (
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/wneessen/weather-lookup/internal/geocode"
	"github.com/wneessen/weather-lookup/internal/location"
	"github.com/wneessen/weather-lookup/internal/testhelper"
)

func TestNewEntry(t *testing.T) {
	t.Run("found city search", func(t *testing.T) {
		addr := geocode.Address{Found: true, City: "Raleigh", State: "NC"}
		entry := NewEntry(location.NewCityState("Raleigh", "nc"), addr)
		if entry.ID == uuid.Nil {
			t.Error("expected entry ID to be set")
		}
		if entry.Query != "Raleigh, NC" {
			t.Errorf("expected query to be %q, got %q", "Raleigh, NC", entry.Query)
		}
		if entry.Kind != "city_state" {
			t.Errorf("expected kind to be %q, got %q", "city_state", entry.Kind)
		}
		if !entry.Found || entry.City != "Raleigh" || entry.State != "NC" {
			t.Errorf("unexpected entry: %+v", entry)
		}
		if entry.SearchedAt.IsZero() {
			t.Error("expected timestamp to be set")
		}
	})
	t.Run("geocoder values are kept as returned", func(t *testing.T) {
		addr := geocode.Address{Found: true, City: "Wake Forest", State: "North Carolina", PostalCode: "27587-1234"}
		entry := NewEntry(location.NewPostalCode("27587"), addr)
		if entry.PostalCode != "27587-1234" {
			t.Errorf("expected postal code to be %q, got %q", "27587-1234", entry.PostalCode)
		}
		if entry.State != "North Carolina" {
			t.Errorf("expected state to be %q, got %q", "North Carolina", entry.State)
		}
		if entry.Query != "27587" || entry.Kind != "postal_code" {
			t.Errorf("unexpected entry: %+v", entry)
		}
	})
	t.Run("entries get unique IDs", func(t *testing.T) {
		loc := location.NewPostalCode("27587")
		first := NewEntry(loc, geocode.Address{})
		second := NewEntry(loc, geocode.Address{})
		if first.ID == second.ID {
			t.Error("expected unique entry IDs")
		}
		if first.Found {
			t.Error("expected entry to be not found")
		}
	})
}

func TestMemory(t *testing.T) {
	t.Run("recent entries are returned newest first", func(t *testing.T) {
		mem := NewMemory(5)
		for i := 0; i < 3; i++ {
			if err := mem.Record(t.Context(), testEntry(i)); err != nil {
				t.Fatalf("failed to record entry: %s", err)
			}
		}
		entries, err := mem.Recent(t.Context(), 10)
		if err != nil {
			t.Fatalf("failed to read entries: %s", err)
		}
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		if entries[0].Query != "query-2" || entries[2].Query != "query-0" {
			t.Errorf("unexpected order: %s, %s", entries[0].Query, entries[2].Query)
		}
	})
	t.Run("oldest entries are overwritten", func(t *testing.T) {
		mem := NewMemory(3)
		for i := 0; i < 7; i++ {
			_ = mem.Record(t.Context(), testEntry(i))
		}
		entries, err := mem.Recent(t.Context(), 10)
		if err != nil {
			t.Fatalf("failed to read entries: %s", err)
		}
		want := []string{"query-6", "query-5", "query-4"}
		if len(entries) != len(want) {
			t.Fatalf("expected %d entries, got %d", len(want), len(entries))
		}
		for i, entry := range entries {
			if entry.Query != want[i] {
				t.Errorf("expected entry %d to be %q, got %q", i, want[i], entry.Query)
			}
		}
	})
	t.Run("limit is applied", func(t *testing.T) {
		mem := NewMemory(50)
		for i := 0; i < 20; i++ {
			_ = mem.Record(t.Context(), testEntry(i))
		}
		entries, _ := mem.Recent(t.Context(), 2)
		if len(entries) != 2 {
			t.Errorf("expected 2 entries, got %d", len(entries))
		}
		entries, _ = mem.Recent(t.Context(), 0)
		if len(entries) != DefaultLimit {
			t.Errorf("expected default limit of %d entries, got %d", DefaultLimit, len(entries))
		}
	})
	t.Run("empty history", func(t *testing.T) {
		mem := NewMemory(0)
		entries, err := mem.Recent(t.Context(), 5)
		if err != nil {
			t.Fatalf("failed to read entries: %s", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected no entries, got %d", len(entries))
		}
		if err = mem.Close(); err != nil {
			t.Errorf("failed to close recorder: %s", err)
		}
	})
	t.Run("concurrent recording is safe", func(t *testing.T) {
		mem := NewMemory(10)
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Go(func() {
				_ = mem.Record(t.Context(), testEntry(i))
			})
		}
		wg.Wait()
		entries, _ := mem.Recent(t.Context(), 100)
		if len(entries) != 10 {
			t.Errorf("expected 10 entries, got %d", len(entries))
		}
	})
}

func TestPostgres_integration(t *testing.T) {
	testhelper.PerformIntegrationTests(t)
	dsn := os.Getenv("WEATHERLOOKUP_HISTORY_DSN")
	if dsn == "" {
		t.Skip("skipping integration test, WEATHERLOOKUP_HISTORY_DSN not set")
	}
	pg, err := NewPostgres(t.Context(), dsn)
	if err != nil {
		t.Fatalf("failed to connect to PostgreSQL: %s", err)
	}
	t.Cleanup(func() { _ = pg.Close() })

	entry := NewEntry(location.NewCityState("Raleigh", "NC"), geocode.Address{Found: true, City: "Raleigh", State: "NC"})
	if err = pg.Record(t.Context(), entry); err != nil {
		t.Fatalf("failed to record entry: %s", err)
	}
	entries, err := pg.Recent(t.Context(), 1)
	if err != nil {
		t.Fatalf("failed to read entries: %s", err)
	}
	if len(entries) != 1 || entries[0].ID != entry.ID {
		t.Errorf("expected recorded entry to be returned, got %+v", entries)
	}

	long := NewEntry(location.NewPostalCode("27587"), geocode.Address{
		Found: true, City: "Wake Forest", State: "North Carolina", PostalCode: "27587-1234;27588",
	})
	if err = pg.Record(t.Context(), long); err != nil {
		t.Fatalf("failed to record entry with unabbreviated values: %s", err)
	}
	entries, err = pg.Recent(t.Context(), 1)
	if err != nil {
		t.Fatalf("failed to read entries: %s", err)
	}
	if len(entries) != 1 || entries[0].PostalCode != long.PostalCode || entries[0].State != long.State {
		t.Errorf("expected unabbreviated values to be stored, got %+v", entries)
	}
}

func TestNewPostgres(t *testing.T) {
	t.Run("invalid DSN fails", func(t *testing.T) {
		if _, err := NewPostgres(t.Context(), "postgres://%zz"); err == nil {
			t.Fatal("expected connection to fail")
		}
	})
}

func testEntry(i int) Entry {
	return Entry{ID: uuid.New(), Query: fmt.Sprintf("query-%d", i), Kind: "postal_code"}
}
