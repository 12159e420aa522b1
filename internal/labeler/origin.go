package labeler

import (
	"strings"

	"github.com/Veraticus/museum-pulse/internal/model"
)

var usStates = map[string]struct{}{
	"alabama": {}, "alaska": {}, "arizona": {}, "arkansas": {}, "california": {},
	"colorado": {}, "connecticut": {}, "delaware": {}, "florida": {}, "georgia": {},
	"hawaii": {}, "idaho": {}, "illinois": {}, "indiana": {}, "iowa": {},
	"kansas": {}, "kentucky": {}, "louisiana": {}, "maine": {}, "maryland": {},
	"massachusetts": {}, "michigan": {}, "minnesota": {}, "mississippi": {}, "missouri": {},
	"montana": {}, "nebraska": {}, "nevada": {}, "new hampshire": {}, "new jersey": {},
	"new mexico": {}, "new york": {}, "north carolina": {}, "north dakota": {}, "ohio": {},
	"oklahoma": {}, "oregon": {}, "pennsylvania": {}, "rhode island": {}, "south carolina": {},
	"south dakota": {}, "tennessee": {}, "texas": {}, "utah": {}, "vermont": {},
	"virginia": {}, "washington": {}, "west virginia": {}, "wisconsin": {}, "wyoming": {},
}

var localKeywords = []string{"new york", "nyc", "brooklyn", "manhattan", "queens", "bronx"}

// IsUSState reports whether region names one of the 50 US states.
func IsUSState(region string) bool {
	_, ok := usStates[strings.ToLower(strings.Join(strings.Fields(region), " "))]
	return ok
}

// ParseOrigin splits a free-text hometown into city and region. A blank
// hometown yields Unknown for both; a single token is the region with an
// empty city; otherwise the first and last tokens are used.
func ParseOrigin(hometown string) (city, region string) {
	if strings.TrimSpace(hometown) == "" {
		return model.UnknownOrigin, model.UnknownOrigin
	}

	parts := strings.Split(hometown, ",")
	if len(parts) == 1 {
		return "", orUnknown(parts[0])
	}
	return orUnknown(parts[0]), orUnknown(parts[len(parts)-1])
}

func orUnknown(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return model.UnknownOrigin
	}
	return token
}

// Country maps a region to its country-level name: US states collapse to USA.
func Country(region string) string {
	if IsUSState(region) {
		return model.CountryUSA
	}
	return region
}

// ClassifyTouristType derives the reviewer's tourist type from their origin.
func ClassifyTouristType(city, region string) model.TouristType {
	if city == model.UnknownOrigin || region == model.UnknownOrigin {
		return model.TouristNotSpecified
	}
	if !IsUSState(region) {
		return model.TouristForeign
	}

	lc := strings.ToLower(city)
	for _, kw := range localKeywords {
		if strings.Contains(lc, kw) {
			return model.TouristLocal
		}
	}
	return model.TouristDomestic
}
