package jobsearch

import (
	"time"

	"github.com/jonathan/jobhunt/internal/types"
)

// Session accumulates listings across a fresh search and its load-more
// calls. Listings never holds two entries with the same ExternalID.
type Session struct {
	ID        string             `json:"id"`
	ResumeID  string             `json:"resumeId,omitempty"`
	Plan      types.SearchPlan   `json:"searchPlan"`
	Skills    []string           `json:"skills"`
	Filters   Filters            `json:"filters"`
	Listings  []types.JobListing `json:"jobs"`
	NextPage  int                `json:"nextPage"`
	Exhausted bool               `json:"exhausted"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// ApplyFresh replaces the accumulated listings with page, de-duplicated
// within itself, and points NextPage after it.
func (s *Session) ApplyFresh(page *Page) {
	s.Listings = Dedupe(nil, page.Listings)
	s.NextPage = page.Number + 1
	s.Exhausted = page.Exhausted
	s.UpdatedAt = time.Now().UTC()
}

// ApplyMore appends the listings of page not already in the session and
// advances NextPage. It returns the listings that were added.
func (s *Session) ApplyMore(page *Page) []types.JobListing {
	added := Dedupe(s.Listings, page.Listings)
	s.Listings = append(s.Listings, added...)
	s.NextPage++
	s.Exhausted = page.Exhausted
	s.UpdatedAt = time.Now().UTC()
	return added
}

// Dedupe returns the entries of incoming whose ExternalID is neither in
// existing nor earlier in incoming, in their original order.
func Dedupe(existing, incoming []types.JobListing) []types.JobListing {
	seen := make(map[string]bool, len(existing)+len(incoming))
	for _, l := range existing {
		seen[l.ExternalID] = true
	}
	out := make([]types.JobListing, 0, len(incoming))
	for _, l := range incoming {
		if seen[l.ExternalID] {
			continue
		}
		seen[l.ExternalID] = true
		out = append(out, l)
	}
	return out
}
