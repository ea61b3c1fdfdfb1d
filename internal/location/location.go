// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package location parses free-form user input into a US postal code or a city/state pair.
package location

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Kind identifies which variant a Location holds.
type Kind int

const (
	KindNone Kind = iota
	KindPostalCode
	KindCityState
)

// StatePolicy controls how the two-letter state code of a city/state input is checked.
type StatePolicy int

const (
	// StatePolicyPermissive accepts any two ASCII letters as a state code.
	StatePolicyPermissive StatePolicy = iota
	// StatePolicyStrict only accepts codes listed in ValidStates.
	StatePolicyStrict
)

// whiteSpace matches what a browser treats as white space in text input.
const whiteSpace = `\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var (
	postalCodeRegex = regexp.MustCompile(`^[0-9]{5}$`)
	cityStateRegex  = regexp.MustCompile(`^([A-Za-z` + whiteSpace + `.'-]+),[` + whiteSpace + `]*([A-Za-z]{2})$`)

	// ErrInvalidWire is returned when a JSON location body holds neither a postal code nor a
	// complete city/state pair, or holds both.
	ErrInvalidWire = errors.New("location must be either a postal code or a city and state")
)

// Location is either a postal code or a city/state pair, never both. The zero value holds
// neither and is only returned alongside a failed parse.
type Location struct {
	kind       Kind
	postalCode string
	city       string
	state      string
}

// Parser parses location strings under a given StatePolicy.
type Parser struct {
	Policy StatePolicy
}

// wire is the JSON body exchanged with the backend.
type wire struct {
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	State      string `json:"state"`
}

// Parse parses input with the permissive state policy.
func Parse(input string) (Location, bool) {
	return Parser{Policy: StatePolicyPermissive}.Parse(input)
}

// Parse classifies the trimmed input as a five digit postal code or a "City, ST" pair. The
// state code is uppercased, the city keeps its case. It returns false if the input matches
// neither form or, under StatePolicyStrict, names an unknown state.
func (p Parser) Parse(input string) (Location, bool) {
	trimmed := strings.TrimFunc(input, isSpace)

	if postalCodeRegex.MatchString(trimmed) {
		return NewPostalCode(trimmed), true
	}

	match := cityStateRegex.FindStringSubmatch(trimmed)
	if match == nil {
		return Location{}, false
	}
	city := strings.TrimFunc(match[1], isSpace)
	state := strings.ToUpper(match[2])
	if p.Policy == StatePolicyStrict && !IsValidState(state) {
		return Location{}, false
	}
	return NewCityState(city, state), true
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// NewPostalCode returns a postal code location. The code is not validated.
func NewPostalCode(code string) Location {
	return Location{kind: KindPostalCode, postalCode: code}
}

// NewCityState returns a city/state location. The state code is uppercased.
func NewCityState(city, state string) Location {
	return Location{kind: KindCityState, city: city, state: strings.ToUpper(state)}
}

func (l Location) Kind() Kind {
	return l.kind
}

func (l Location) PostalCode() string {
	return l.postalCode
}

func (l Location) City() string {
	return l.city
}

func (l Location) State() string {
	return l.state
}

// IsZero reports whether the Location holds neither variant.
func (l Location) IsZero() bool {
	return l.kind == KindNone
}

// String returns the location the way a user would type it, e.g. "27587" or "Raleigh, NC".
func (l Location) String() string {
	switch l.kind {
	case KindPostalCode:
		return l.postalCode
	case KindCityState:
		return l.city + ", " + l.state
	default:
		return ""
	}
}

func (k Kind) String() string {
	switch k {
	case KindPostalCode:
		return "postal_code"
	case KindCityState:
		return "city_state"
	default:
		return "none"
	}
}

// MarshalJSON encodes the Location as {"postal_code", "city", "state"} with the fields of the
// unused variant set to empty strings.
func (l Location) MarshalJSON() ([]byte, error) {
	return json.Marshal(wire{PostalCode: l.postalCode, City: l.city, State: l.state})
}

// UnmarshalJSON decodes and validates the wire form. Exactly one variant must be populated.
func (l *Location) UnmarshalJSON(data []byte) error {
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("failed to decode location: %w", err)
	}
	loc, err := FromFields(w.PostalCode, w.City, w.State)
	if err != nil {
		return err
	}
	*l = loc
	return nil
}

// FromFields builds a Location from its three wire fields, e.g. taken from a query string.
func FromFields(postalCode, city, state string) (Location, error) {
	postalCode = strings.TrimSpace(postalCode)
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)

	switch {
	case postalCode != "" && city == "" && state == "":
		if !postalCodeRegex.MatchString(postalCode) {
			return Location{}, fmt.Errorf("invalid postal code %q: %w", postalCode, ErrInvalidWire)
		}
		return NewPostalCode(postalCode), nil
	case postalCode == "" && city != "" && state != "":
		loc, ok := Parse(city + ", " + state)
		if !ok {
			return Location{}, fmt.Errorf("invalid city/state %q, %q: %w", city, state, ErrInvalidWire)
		}
		return loc, nil
	default:
		return Location{}, ErrInvalidWire
	}
}
