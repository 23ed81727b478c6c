package jobsearch

import (
	"strings"

	"github.com/jonathan/jobhunt/internal/types"
)

// FilterByLocation keeps listings that are remote or whose location shares a
// comma-separated part with requested: a requested part occurs in the
// listing's location, or the part contains the listing's first location
// segment. Matching is case-insensitive. An empty request keeps everything.
// A listing without a location is kept: its empty first segment is contained
// in every requested part.
func FilterByLocation(in []types.JobListing, requested string) []types.JobListing {
	parts := locationParts(requested)
	if len(parts) == 0 {
		return in
	}

	out := make([]types.JobListing, 0, len(in))
	for _, l := range in {
		if l.Remote || locationMatches(parts, l.Location) {
			out = append(out, l)
		}
	}
	return out
}

func locationParts(requested string) []string {
	var parts []string
	for _, p := range strings.Split(strings.ToLower(requested), ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func locationMatches(parts []string, location string) bool {
	location = strings.ToLower(strings.TrimSpace(location))
	head, _, _ := strings.Cut(location, ",")
	head = strings.TrimSpace(head)

	for _, part := range parts {
		if strings.Contains(location, part) || strings.Contains(part, head) {
			return true
		}
	}
	return false
}
