// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestNew(t *testing.T) {
	t.Run("new i18n provider with empty locale string succeeds", func(t *testing.T) {
		provider, err := New("")
		if err != nil {
			t.Fatalf("failed to create i18n provider: %s", err)
		}
		if provider == nil {
			t.Fatal("expected i18n provider to be non-nil")
		}
	})
	t.Run("german catalog is loaded", func(t *testing.T) {
		provider, err := New("de")
		if err != nil {
			t.Fatalf("failed to create i18n provider: %s", err)
		}
		if got := provider.Get("Temperature"); got != "Temperatur" {
			t.Errorf("expected translation to be %q, got %q", "Temperatur", got)
		}
		if got := provider.Get(MsgNotFound); got != "Ort nicht gefunden." {
			t.Errorf("expected translation to be %q, got %q", "Ort nicht gefunden.", got)
		}
	})
	t.Run("english returns the source text", func(t *testing.T) {
		provider, err := New("en")
		if err != nil {
			t.Fatalf("failed to create i18n provider: %s", err)
		}
		if got := provider.Get(MsgInvalidInput); got != string(MsgInvalidInput) {
			t.Errorf("expected source text, got %q", got)
		}
	})
	t.Run("unsupported language falls back to english", func(t *testing.T) {
		provider, err := New("fr")
		if err != nil {
			t.Fatalf("failed to create i18n provider: %s", err)
		}
		if got := provider.Get("Temperature"); got != "Temperature" {
			t.Errorf("expected fallback to be %q, got %q", "Temperature", got)
		}
	})
	t.Run("invalid locale fails", func(t *testing.T) {
		if _, err := New("not a locale!"); err == nil {
			t.Fatal("expected i18n provider creation to fail")
		}
	})
}

func TestLanguage(t *testing.T) {
	tag, err := Language("de-DE")
	if err != nil {
		t.Fatalf("failed to parse language: %s", err)
	}
	base, _ := tag.Base()
	if want, _ := language.German.Base(); base != want {
		t.Errorf("expected base language to be %s, got %s", want, base)
	}
	if tag, err = Language(""); err != nil || tag == language.Und {
		t.Errorf("expected a detected or fallback language, got %s (%v)", tag, err)
	}
}
