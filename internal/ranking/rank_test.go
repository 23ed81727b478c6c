package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/jobhunt/internal/types"
)

func ids(listings []types.JobListing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.ExternalID
	}
	return out
}

func TestRankListings_SortsDescending(t *testing.T) {
	listings := []types.JobListing{
		{ExternalID: "low", Title: "Accountant"},
		{ExternalID: "high", Title: "Go Engineer", Description: "Go, Kubernetes, PostgreSQL"},
		{ExternalID: "mid", Title: "Backend Engineer", Description: "Kubernetes"},
	}

	RankListings(listings, []string{"Go", "Kubernetes", "PostgreSQL"}, []string{"Go"})

	assert.Equal(t, []string{"high", "mid", "low"}, ids(listings))
	assert.Equal(t, 35, listings[0].MatchScore)
	assert.Equal(t, 10, listings[1].MatchScore)
	assert.Equal(t, 0, listings[2].MatchScore)
}

func TestRankListings_StableOnTies(t *testing.T) {
	listings := []types.JobListing{
		{ExternalID: "A", Title: "Go"},
		{ExternalID: "B", Title: "Python"},
		{ExternalID: "C", Title: "Go"},
		{ExternalID: "D", Title: "Rust"},
		{ExternalID: "E", Title: "Go"},
	}

	RankListings(listings, []string{"Go"}, nil)

	assert.Equal(t, []string{"A", "C", "E", "B", "D"}, ids(listings))
}

func TestRankListings_Empty(t *testing.T) {
	assert.NotPanics(t, func() { RankListings(nil, []string{"Go"}, nil) })
}
