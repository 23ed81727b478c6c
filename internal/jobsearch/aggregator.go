// Package jobsearch runs one page of a job search against a listings
// provider and accumulates pages into a de-duplicated session.
package jobsearch

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/jobhunt/internal/listings"
	"github.com/jonathan/jobhunt/internal/logging"
	"github.com/jonathan/jobhunt/internal/ranking"
	"github.com/jonathan/jobhunt/internal/types"
)

// ExhaustionThreshold is the raw page size below which a search is
// considered to have no further pages. A provider may return a short page
// and still have more results; callers accept that approximation.
const ExhaustionThreshold = 5

// Filters narrow a search.
type Filters struct {
	Location       string `json:"location,omitempty"`
	Remote         bool   `json:"remote,omitempty"`
	EmploymentType string `json:"jobType,omitempty"`
	Experience     string `json:"experience,omitempty"`
	DatePosted     string `json:"datePosted,omitempty"`
}

// Page is one scored, sorted and filtered provider page.
type Page struct {
	Number   int
	Listings []types.JobListing
	// Raw is the provider's record count before mapping, filtering or
	// de-duplication.
	Raw       int
	Exhausted bool
}

// Aggregator fetches and ranks listing pages.
type Aggregator struct {
	provider listings.Provider
	logger   logrus.FieldLogger
}

// NewAggregator creates an Aggregator over provider.
func NewAggregator(provider listings.Provider, logger logrus.FieldLogger) *Aggregator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Aggregator{provider: provider, logger: logger.WithField("component", "jobsearch")}
}

// FetchPage issues one provider request for page and returns its listings
// scored against skills and plan.TopSkills, highest score first. Skill-derived
// plans also drop listings outside filters.Location unless they are remote.
// Provider errors are returned unchanged.
func (a *Aggregator) FetchPage(ctx context.Context, plan types.SearchPlan, skills []string, filters Filters, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	logger := a.logger.WithFields(logrus.Fields{"provider": a.provider.Name(), "page": page})

	result, err := a.provider.Search(ctx, listings.Query{
		Text:           plan.SearchString,
		Location:       filters.Location,
		Page:           page,
		RemoteOnly:     filters.Remote,
		EmploymentType: filters.EmploymentType,
		Experience:     filters.Experience,
		DatePosted:     filters.DatePosted,
	})
	if err != nil {
		logger.WithError(err).Error("listings search failed")
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}

	found := withIDs(result.Listings)
	ranking.RankListings(found, skills, plan.TopSkills)
	if !plan.Manual {
		found = FilterByLocation(found, filters.Location)
	}

	logger.WithFields(logrus.Fields{"raw": result.Raw, "kept": len(found)}).Debug("listings page fetched")
	return &Page{
		Number:    page,
		Listings:  found,
		Raw:       result.Raw,
		Exhausted: result.Raw < ExhaustionThreshold,
	}, nil
}

// withIDs drops listings without an external id; they cannot be
// de-duplicated or tracked.
func withIDs(in []types.JobListing) []types.JobListing {
	out := make([]types.JobListing, 0, len(in))
	for _, l := range in {
		if l.ExternalID != "" {
			out = append(out, l)
		}
	}
	return out
}
