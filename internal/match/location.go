package match

import (
	"strings"

	"github.com/resumi/job-discovery/internal/location"
	"github.com/resumi/job-discovery/internal/profile"
)

// LocationRule names which location rule produced the factor.
type LocationRule string

const (
	LocationRemote       LocationRule = "remote"
	LocationExactCity    LocationRule = "exact_city"
	LocationSameCountry  LocationRule = "same_country"
	LocationSameRegion   LocationRule = "same_region"
	LocationMismatch     LocationRule = "mismatch"
	LocationNoPreference LocationRule = "no_preference"
)

const (
	factorExactCity   = 1.0
	factorSameCountry = 0.7
	factorSameRegion  = 0.4
	factorMismatch    = 0.25
)

// locationFactor applies the location rules in precedence order. A remote job
// overrides any geographic penalty; a profile with no location mentions
// imposes no preference. Otherwise the best rule across all mentions wins.
func locationFactor(p *profile.Profile, loc location.Location) (float64, LocationRule) {
	if loc.Type == location.TypeRemote {
		return 1.0, LocationRemote
	}

	mentions := geographicMentions(p.LocationMentions)
	if len(mentions) == 0 {
		return 1.0, LocationNoPreference
	}

	best, rule := factorMismatch, LocationMismatch
	for _, mention := range mentions {
		f, r := mentionFactor(mention, loc)
		if f > best {
			best, rule = f, r
		}
	}
	return best, rule
}

func mentionFactor(mention, jobLoc location.Location) (float64, LocationRule) {
	if mention.City != "" && jobLoc.City != "" &&
		strings.EqualFold(mention.City, jobLoc.City) {
		return factorExactCity, LocationExactCity
	}
	if mention.Country != "" && jobLoc.Country != "" &&
		strings.EqualFold(mention.Country, jobLoc.Country) {
		return factorSameCountry, LocationSameCountry
	}
	if r := location.Region(mention.Country); r != "" && r == location.Region(jobLoc.Country) {
		return factorSameRegion, LocationSameRegion
	}
	return factorMismatch, LocationMismatch
}

// geographicMentions normalizes the profile's raw mentions and keeps the ones
// carrying geography. A bare "Remote" mention is not a place.
func geographicMentions(raw []string) []location.Location {
	var out []location.Location
	for _, m := range raw {
		loc := location.Normalize(m)
		if loc.Type == location.TypeRemote {
			continue
		}
		if loc.City == "" && loc.Country == "" {
			continue
		}
		out = append(out, loc)
	}
	return out
}
