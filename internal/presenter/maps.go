// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

const iconURLFormat = "https://openweathermap.org/img/wn/%s%s@2x.png"

// MoonPhaseIcon is a map where moon phase names are keys and their corresponding emoji representations are values.
var MoonPhaseIcon = map[string]string{
	"New Moon":        "🌑",
	"Waxing Crescent": "🌒",
	"First Quarter":   "🌓",
	"Waxing Gibbous":  "🌔",
	"Full Moon":       "🌕",
	"Waning Gibbous":  "🌖",
	"Third Quarter":   "🌗",
	"Waning Crescent": "🌘",
}

type condition struct {
	day   string
	night string
	icon  string
}

// WMOConditions maps WMO weather codes to their day and night descriptions and the
// OpenWeatherMap icon code.
var WMOConditions = map[int]condition{
	0:  {"Sunny", "Clear", "01"},
	1:  {"Mainly Sunny", "Mainly Clear", "01"},
	2:  {"Partly Cloudy", "Partly Cloudy", "02"},
	3:  {"Cloudy", "Cloudy", "03"},
	45: {"Foggy", "Foggy", "50"},
	48: {"Rime Fog", "Rime Fog", "50"},
	51: {"Light Drizzle", "Light Drizzle", "09"},
	53: {"Drizzle", "Drizzle", "09"},
	55: {"Heavy Drizzle", "Heavy Drizzle", "09"},
	56: {"Light Freezing Drizzle", "Light Freezing Drizzle", "09"},
	57: {"Freezing Drizzle", "Freezing Drizzle", "09"},
	61: {"Light Rain", "Light Rain", "10"},
	63: {"Rain", "Rain", "10"},
	65: {"Heavy Rain", "Heavy Rain", "10"},
	66: {"Light Freezing Rain", "Light Freezing Rain", "10"},
	67: {"Freezing Rain", "Freezing Rain", "10"},
	71: {"Light Snow", "Light Snow", "13"},
	73: {"Snow", "Snow", "13"},
	75: {"Heavy Snow", "Heavy Snow", "13"},
	77: {"Snow Grains", "Snow Grains", "13"},
	80: {"Light Showers", "Light Showers", "09"},
	81: {"Showers", "Showers", "09"},
	82: {"Heavy Showers", "Heavy Showers", "09"},
	85: {"Light Snow Showers", "Light Snow Showers", "13"},
	86: {"Snow Showers", "Snow Showers", "13"},
	95: {"Thunderstorm", "Thunderstorm", "11"},
	96: {"Light Thunderstorms With Hail", "Light Thunderstorms With Hail", "11"},
	99: {"Thunderstorm With Hail", "Thunderstorm With Hail", "11"},
}

// WMOWeatherIcons maps WMO weather codes to single emoji icons for day (true) and night (false)
var WMOWeatherIcons = map[int]map[bool]string{
	0: {
		true:  "☀️", // Clear sky (day)
		false: "🌙",
	},
	1: {
		true:  "🌤️", // Mainly clear (day)
		false: "🌙",
	},
	2: {
		true:  "⛅", // Partly cloudy
		false: "☁️",
	},
	3: {
		true:  "☁️", // Overcast
		false: "☁️",
	},
	45: {
		true:  "🌫️", // Fog
		false: "🌫️",
	},
	48: {
		true:  "🌫️", // Depositing rime fog
		false: "🌫️",
	},
	51: {
		true:  "🌦️", // Drizzle: Light
		false: "🌧️",
	},
	53: {
		true:  "🌧️", // Drizzle: Moderate
		false: "🌧️",
	},
	55: {
		true:  "🌧️", // Drizzle: Dense intensity
		false: "🌧️",
	},
	56: {
		true:  "🌨️", // Freezing drizzle: Light
		false: "🌨️",
	},
	57: {
		true:  "🌨️", // Freezing drizzle: Dense intensity
		false: "🌨️",
	},
	61: {
		true:  "🌦️", // Rain: Slight
		false: "🌧️",
	},
	63: {
		true:  "🌧️", // Rain: Moderate
		false: "🌧️",
	},
	65: {
		true:  "🌧️", // Rain: Heavy
		false: "🌧️",
	},
	66: {
		true:  "🌨️", // Freezing rain: Light
		false: "🌨️",
	},
	67: {
		true:  "🌨️", // Freezing rain: Heavy
		false: "🌨️",
	},
	71: {
		true:  "🌨️", // Snow fall: Slight
		false: "🌨️",
	},
	73: {
		true:  "🌨️", // Snow fall: Moderate
		false: "🌨️",
	},
	75: {
		true:  "🌨️", // Snow fall: Heavy
		false: "🌨️",
	},
	77: {
		true:  "🌨️", // Snow grains
		false: "🌨️",
	},
	80: {
		true:  "🌦️", // Rain showers: Slight
		false: "🌧️",
	},
	81: {
		true:  "🌧️", // Rain showers: Moderate
		false: "🌧️",
	},
	82: {
		true:  "🌧️", // Rain showers: Violent
		false: "🌧️",
	},
	85: {
		true:  "🌨️", // Snow showers: Slight
		false: "🌨️",
	},
	86: {
		true:  "🌨️", // Snow showers: Heavy
		false: "🌨️",
	},
	95: {
		true:  "🌩️", // Thunderstorm: Slight or moderate
		false: "🌩️",
	},
	96: {
		true:  "⛈️", // Thunderstorm with slight hail
		false: "⛈️",
	},
	99: {
		true:  "⛈️", // Thunderstorm with heavy hail
		false: "⛈️",
	},
}
