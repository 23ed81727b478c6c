package jobsearch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobhunt/internal/listings"
	"github.com/jonathan/jobhunt/internal/types"
)

type stubProvider struct {
	pages   map[int]*listings.Result
	err     error
	queries []listings.Query
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Search(_ context.Context, q listings.Query) (*listings.Result, error) {
	s.queries = append(s.queries, q)
	if s.err != nil {
		return nil, s.err
	}
	if r, ok := s.pages[q.Page]; ok {
		return r, nil
	}
	return &listings.Result{}, nil
}

func listing(id, title, location string) types.JobListing {
	return types.JobListing{ExternalID: id, Title: title, Location: location}
}

func result(ls ...types.JobListing) *listings.Result {
	return &listings.Result{Listings: ls, Raw: len(ls)}
}

func TestFetchPage_ScoresAndSorts(t *testing.T) {
	provider := &stubProvider{pages: map[int]*listings.Result{
		1: result(
			listing("a", "Office Manager", ""),
			listing("b", "Go Developer", ""),
			listing("c", "Go and Kubernetes Engineer", ""),
		),
	}}
	agg := NewAggregator(provider, nil)
	plan := types.SearchPlan{SearchString: "go developer", TopSkills: []string{"kubernetes"}, Manual: true}

	page, err := agg.FetchPage(context.Background(), plan, []string{"Go", "Kubernetes"}, Filters{}, 1)
	require.NoError(t, err)

	require.Len(t, page.Listings, 3)
	assert.Equal(t, "c", page.Listings[0].ExternalID)
	assert.Equal(t, 25, page.Listings[0].MatchScore)
	assert.Equal(t, "b", page.Listings[1].ExternalID)
	assert.Equal(t, 10, page.Listings[1].MatchScore)
	assert.Equal(t, 0, page.Listings[2].MatchScore)
}

func TestFetchPage_PassesQuery(t *testing.T) {
	provider := &stubProvider{}
	agg := NewAggregator(provider, nil)
	plan := types.SearchPlan{SearchString: "sre in Berlin", Manual: true}
	filters := Filters{Location: "Berlin", Remote: true, EmploymentType: "FULLTIME", Experience: "senior", DatePosted: "week"}

	_, err := agg.FetchPage(context.Background(), plan, nil, filters, 3)
	require.NoError(t, err)

	require.Len(t, provider.queries, 1)
	assert.Equal(t, listings.Query{
		Text:           "sre in Berlin",
		Location:       "Berlin",
		Page:           3,
		RemoteOnly:     true,
		EmploymentType: "FULLTIME",
		Experience:     "senior",
		DatePosted:     "week",
	}, provider.queries[0])
}

func TestFetchPage_PageDefaultsToOne(t *testing.T) {
	provider := &stubProvider{}
	page, err := NewAggregator(provider, nil).FetchPage(context.Background(), types.SearchPlan{}, nil, Filters{}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, provider.queries[0].Page)
}

func TestFetchPage_Exhaustion(t *testing.T) {
	tests := []struct {
		raw  int
		want bool
	}{
		{raw: 0, want: true},
		{raw: 4, want: true},
		{raw: 5, want: false},
		{raw: 10, want: false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.raw), func(t *testing.T) {
			provider := &stubProvider{pages: map[int]*listings.Result{1: {Raw: tt.raw}}}
			page, err := NewAggregator(provider, nil).FetchPage(context.Background(), types.SearchPlan{Manual: true}, nil, Filters{}, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, page.Exhausted)
		})
	}
}

func TestFetchPage_ExhaustionUsesRawCount(t *testing.T) {
	// Five raw records, all outside the requested location.
	var ls []types.JobListing
	for i := 0; i < 5; i++ {
		ls = append(ls, listing(fmt.Sprint(i), "Engineer", "Paris, France"))
	}
	provider := &stubProvider{pages: map[int]*listings.Result{1: result(ls...)}}

	page, err := NewAggregator(provider, nil).FetchPage(context.Background(), types.SearchPlan{}, nil, Filters{Location: "Austin, TX"}, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Listings)
	assert.Equal(t, 5, page.Raw)
	assert.False(t, page.Exhausted)
}

func TestFetchPage_DropsListingsWithoutID(t *testing.T) {
	provider := &stubProvider{pages: map[int]*listings.Result{1: result(listing("", "Engineer", ""), listing("x", "Engineer", ""))}}

	page, err := NewAggregator(provider, nil).FetchPage(context.Background(), types.SearchPlan{Manual: true}, nil, Filters{}, 1)
	require.NoError(t, err)
	require.Len(t, page.Listings, 1)
	assert.Equal(t, "x", page.Listings[0].ExternalID)
	assert.Equal(t, 2, page.Raw)
}

func TestFetchPage_LocationFilterOnlyForSkillPlans(t *testing.T) {
	pages := map[int]*listings.Result{1: result(
		listing("a", "Engineer", "Austin, TX"),
		listing("b", "Engineer", "Paris, France"),
	)}
	filters := Filters{Location: "Austin"}

	skillPage, err := NewAggregator(&stubProvider{pages: pages}, nil).FetchPage(context.Background(), types.SearchPlan{}, nil, filters, 1)
	require.NoError(t, err)
	require.Len(t, skillPage.Listings, 1)
	assert.Equal(t, "a", skillPage.Listings[0].ExternalID)

	manualPage, err := NewAggregator(&stubProvider{pages: pages}, nil).FetchPage(context.Background(), types.SearchPlan{Manual: true}, nil, filters, 1)
	require.NoError(t, err)
	assert.Len(t, manualPage.Listings, 2)
}

func TestFetchPage_ProviderError(t *testing.T) {
	providerErr := &listings.ProviderError{Provider: "stub", StatusCode: 429, Message: "Too Many Requests"}
	agg := NewAggregator(&stubProvider{err: providerErr}, nil)

	page, err := agg.FetchPage(context.Background(), types.SearchPlan{}, nil, Filters{}, 1)
	assert.Nil(t, page)

	var got *listings.ProviderError
	require.True(t, errors.As(err, &got))
	assert.True(t, got.RateLimited())
}
