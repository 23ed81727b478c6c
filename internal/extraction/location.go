package extraction

import (
	"regexp"
	"strings"
)

const (
	minLocationLen = 3
	maxLocationLen = 50
)

var (
	// "Location: Austin, Texas", "based in San Francisco, California"
	labelledLocation = regexp.MustCompile(`(?i:located?\s*(?:in|at)?|address|location|based\s+in|living\s+in)[:\s]*([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)*,[ \t]*[A-Z][A-Za-z \t]+)`)
	// "Seattle, WA"
	cityStateLocation = regexp.MustCompile(`\b([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)*,[ \t]*[A-Z]{2})\b`)

	locationLabel = regexp.MustCompile(`(?i)^(?:located?\s*(?:in|at)?|address|location|based\s*in|living\s*in)[:\s]*`)
)

// KnownCities is the fallback list searched when no structured location is found.
var KnownCities = []string{
	"New York", "Los Angeles", "San Francisco", "Chicago", "Boston", "Seattle", "Austin", "Denver",
	"Atlanta", "Dallas", "Houston", "Miami", "London", "Toronto", "Sydney",
	"Melbourne", "Berlin", "Paris", "Singapore", "Dubai", "Mumbai", "Bangalore", "Karachi",
	"Lahore", "Islamabad", "Rawalpindi", "Faisalabad", "Peshawar",
}

// washingtonDC accepts "Washington DC", "Washington D.C" and "Washington D.C.".
// The match ends at the "C" so the trailing \b always has a word character
// on its left.
const washingtonDC = `Washington D\.?C\.?`

var knownCityPattern = buildCityPattern(KnownCities, washingtonDC)

// buildCityPattern joins the quoted city names and any extra raw patterns
// into one case-insensitive, word-bounded alternation.
func buildCityPattern(cities []string, patterns ...string) *regexp.Regexp {
	alts := make([]string, 0, len(cities)+len(patterns))
	for _, c := range cities {
		alts = append(alts, regexp.QuoteMeta(c))
	}
	alts = append(alts, patterns...)
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)
}

// ExtractLocation tries, in order, a labelled "City, Region" phrase, a
// "City, ST" pair and a list of well-known cities. Only the first match of
// each pattern is considered, and it is accepted when its length after label
// stripping lies strictly between 3 and 50 characters.
func ExtractLocation(text string) string {
	if m := labelledLocation.FindStringSubmatch(text); m != nil {
		if loc, ok := acceptLocation(m[1]); ok {
			return loc
		}
	}
	if m := cityStateLocation.FindStringSubmatch(text); m != nil {
		if loc, ok := acceptLocation(m[1]); ok {
			return loc
		}
	}
	if m := knownCityPattern.FindString(text); m != "" {
		if loc, ok := acceptLocation(m); ok {
			return loc
		}
	}
	return ""
}

func acceptLocation(candidate string) (string, bool) {
	loc := strings.TrimSpace(candidate)
	loc = strings.TrimSpace(locationLabel.ReplaceAllString(loc, ""))
	if len(loc) > minLocationLen && len(loc) < maxLocationLen {
		return loc, true
	}
	return "", false
}
