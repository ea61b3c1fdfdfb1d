// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package i18n provides the localizer for user-facing text. Catalogs are embedded gettext
// .po files, English is the source language.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/Xuanwo/go-locale"
	"github.com/vorlif/spreak"
	"github.com/vorlif/spreak/localize"
	"golang.org/x/text/language"
)

// Messages printed by the client outside of templates.
const (
	MsgInvalidInput localize.Singular = `Please enter a valid city, state, or postal code. For example: "Raleigh, NC" or "27587".`
	MsgNotFound     localize.Singular = "Location not found."
)

//go:embed locale/*
var locales embed.FS

// New returns a localizer for loc, e.g. "de" or "en-US". An empty loc is detected from the
// environment and falls back to English.
func New(loc string) (*spreak.Localizer, error) {
	tag, err := Language(loc)
	if err != nil {
		return nil, err
	}

	localeFS, err := fs.Sub(locales, "locale")
	if err != nil {
		return nil, fmt.Errorf("failed to load locales: %w", err)
	}

	bundle, err := spreak.NewBundle(
		spreak.WithSourceLanguage(language.English),
		spreak.WithFallbackLanguage(language.English),
		spreak.WithDomainFs("", localeFS),
		spreak.WithLanguage(tag),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create i18n bundle: %w", err)
	}
	return spreak.NewLocalizer(bundle, tag), nil
}

// Language parses loc into a language tag. An empty loc is detected from the environment.
func Language(loc string) (language.Tag, error) {
	if loc == "" {
		tag, err := locale.Detect()
		if err != nil {
			return language.English, nil
		}
		return tag, nil
	}
	tag, err := language.Parse(loc)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", loc, err)
	}
	return tag, nil
}
