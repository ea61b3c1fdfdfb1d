// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package location

import "strings"

// ValidStates maps the two-letter USPS abbreviation of every US state, DC and the inhabited
// territories to its name.
var ValidStates = map[string]string{
	"AL": "Alabama",
	"AK": "Alaska",
	"AZ": "Arizona",
	"AR": "Arkansas",
	"CA": "California",
	"CO": "Colorado",
	"CT": "Connecticut",
	"DE": "Delaware",
	"FL": "Florida",
	"GA": "Georgia",
	"HI": "Hawaii",
	"ID": "Idaho",
	"IL": "Illinois",
	"IN": "Indiana",
	"IA": "Iowa",
	"KS": "Kansas",
	"KY": "Kentucky",
	"LA": "Louisiana",
	"ME": "Maine",
	"MD": "Maryland",
	"MA": "Massachusetts",
	"MI": "Michigan",
	"MN": "Minnesota",
	"MS": "Mississippi",
	"MO": "Missouri",
	"MT": "Montana",
	"NE": "Nebraska",
	"NV": "Nevada",
	"NH": "New Hampshire",
	"NJ": "New Jersey",
	"NM": "New Mexico",
	"NY": "New York",
	"NC": "North Carolina",
	"ND": "North Dakota",
	"OH": "Ohio",
	"OK": "Oklahoma",
	"OR": "Oregon",
	"PA": "Pennsylvania",
	"RI": "Rhode Island",
	"SC": "South Carolina",
	"SD": "South Dakota",
	"TN": "Tennessee",
	"TX": "Texas",
	"UT": "Utah",
	"VT": "Vermont",
	"VA": "Virginia",
	"WA": "Washington",
	"WV": "West Virginia",
	"WI": "Wisconsin",
	"WY": "Wyoming",
	"DC": "District of Columbia",
	"PR": "Puerto Rico",
	"GU": "Guam",
	"VI": "United States Virgin Islands",
	"AS": "American Samoa",
	"MP": "Northern Mariana Islands",
}

var nameToAbbrev = func() map[string]string {
	m := make(map[string]string, len(ValidStates))
	for abbrev, name := range ValidStates {
		m[strings.ToLower(name)] = abbrev
	}
	return m
}()

// IsValidState reports whether code is a known state abbreviation. The check is case-insensitive.
func IsValidState(code string) bool {
	_, ok := ValidStates[strings.ToUpper(code)]
	return ok
}

// AbbrevFromName returns the abbreviation for a state name like "North Carolina". Names that are
// already a valid abbreviation are returned uppercased.
func AbbrevFromName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if IsValidState(name) {
		return strings.ToUpper(name), true
	}
	abbrev, ok := nameToAbbrev[strings.ToLower(name)]
	return abbrev, ok
}
