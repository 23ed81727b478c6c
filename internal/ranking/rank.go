package ranking

import (
	"sort"

	"github.com/jonathan/jobhunt/internal/types"
)

// RankListings sets MatchScore on every listing and sorts the slice by score,
// highest first. Listings with equal scores keep the provider's order.
func RankListings(listings []types.JobListing, skills, topSkills []string) {
	for i := range listings {
		listings[i].MatchScore = MatchScore(listings[i].Title, listings[i].Description, skills, topSkills)
	}

	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].MatchScore > listings[j].MatchScore
	})
}
