// Package location normalizes free-form location strings into a structured
// form and maps countries onto broad regions for match scoring.
package location

import "strings"

// Type classifies where the work happens.
type Type string

const (
	TypeOnsite Type = "onsite"
	TypeHybrid Type = "hybrid"
	TypeRemote Type = "remote"
)

// Location is the canonical location shape carried on a Job.
type Location struct {
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
	Type    Type   `json:"type"`
	Raw     string `json:"raw,omitempty"`
}

var remoteKeywords = []string{"remote", "anywhere", "worldwide", "work from home", "wfh", "distributed"}

var hybridKeywords = []string{"hybrid", "remote-friendly", "flexible"}

var countryAliases = map[string]string{
	"usa": "USA", "us": "USA", "u.s.": "USA", "united states": "USA",
	"canada": "Canada", "uk": "United Kingdom", "gb": "United Kingdom",
	"united kingdom": "United Kingdom", "germany": "Germany",
	"france": "France", "netherlands": "Netherlands", "spain": "Spain",
	"india": "India", "singapore": "Singapore", "australia": "Australia",
	"uae": "UAE", "united arab emirates": "UAE", "japan": "Japan",
	"brazil": "Brazil", "mexico": "Mexico", "poland": "Poland",
	"ireland": "Ireland",
}

var cityAliases = map[string]string{
	"sf":            "San Francisco",
	"san francisco": "San Francisco",
	"nyc":           "New York",
	"new york city": "New York",
	"new york":      "New York",
	"bengaluru":     "Bangalore",
	"bangalore":     "Bangalore",
	"new delhi":     "Delhi",
	"gurugram":      "Gurgaon",
	"london":        "London",
	"berlin":        "Berlin",
	"amsterdam":     "Amsterdam",
	"dubai":         "Dubai",
	"seattle":       "Seattle",
	"austin":        "Austin",
	"boston":        "Boston",
	"toronto":       "Toronto",
}

// cityCountry lets a bare city string imply its country.
var cityCountry = map[string]string{
	"San Francisco": "USA", "New York": "USA", "Seattle": "USA",
	"Austin": "USA", "Boston": "USA",
	"London": "United Kingdom", "Berlin": "Germany",
	"Amsterdam": "Netherlands", "Toronto": "Canada",
	"Bangalore": "India", "Delhi": "India", "Gurgaon": "India",
	"Dubai": "UAE", "Singapore": "Singapore",
}

var countryRegion = map[string]string{
	"USA": "north-america", "Canada": "north-america", "Mexico": "north-america",
	"United Kingdom": "europe", "Germany": "europe", "France": "europe",
	"Netherlands": "europe", "Spain": "europe", "Poland": "europe", "Ireland": "europe",
	"India": "asia-pacific", "Singapore": "asia-pacific", "Japan": "asia-pacific",
	"Australia": "asia-pacific", "UAE": "middle-east", "Brazil": "south-america",
}

// Normalize parses a raw location string into a Location. Remote keywords win
// over any geography; hybrid keywords only set the type.
func Normalize(raw string) Location {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{Type: TypeOnsite, Raw: "Not specified"}
	}

	lower := strings.ToLower(raw)

	for _, kw := range remoteKeywords {
		if strings.Contains(lower, kw) {
			return Location{Type: TypeRemote, Raw: raw}
		}
	}

	typ := TypeOnsite
	for _, kw := range hybridKeywords {
		if strings.Contains(lower, kw) {
			typ = TypeHybrid
			break
		}
	}

	city, country := splitCityCountry(raw)
	return Location{City: city, Country: country, Type: typ, Raw: raw}
}

func splitCityCountry(raw string) (city, country string) {
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch len(parts) {
	case 1:
		single := strings.ToLower(parts[0])
		if c, ok := countryAliases[single]; ok {
			return "", c
		}
		city = canonicalCity(parts[0])
		return city, cityCountry[city]
	default:
		// City, Country or City, State, Country.
		city = canonicalCity(parts[0])
		country = canonicalCountry(parts[len(parts)-1])
		if country == "" {
			country = cityCountry[city]
		}
		return city, country
	}
}

func canonicalCity(s string) string {
	if c, ok := cityAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c
	}
	return strings.TrimSpace(s)
}

func canonicalCountry(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	if c, ok := countryAliases[lower]; ok {
		return c
	}
	// A trailing US state abbreviation is not a country.
	if len(lower) == 2 {
		return "USA"
	}
	return strings.Title(lower) //nolint:staticcheck // ASCII country names only
}

// Region returns the broad region for a country, or empty when unknown.
func Region(country string) string {
	return countryRegion[country]
}
