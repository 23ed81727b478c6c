package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/jobhunt/internal/jobsearch"
	"github.com/jonathan/jobhunt/internal/planner"
	"github.com/jonathan/jobhunt/internal/types"
)

// ErrNoSkills is returned when a search has neither skills nor a query.
var ErrNoSkills = errors.New("no skills or search query provided")

// ErrSessionsDisabled is returned when no session store is configured.
var ErrSessionsDisabled = errors.New("search sessions are not enabled")

// SearchResult is one page of a stateless search.
type SearchResult struct {
	Listings  []types.JobListing `json:"jobs"`
	Page      int                `json:"page"`
	NextPage  int                `json:"nextPage"`
	Exhausted bool               `json:"exhausted"`
	Plan      types.SearchPlan   `json:"searchPlan"`
	Skills    []string           `json:"skills"`
}

// SessionPage is the state of a server-held session after a call, plus the
// listings that call added.
type SessionPage struct {
	SessionID string             `json:"sessionId"`
	Listings  []types.JobListing `json:"jobs"`
	Added     []types.JobListing `json:"added"`
	NextPage  int                `json:"nextPage"`
	Exhausted bool               `json:"exhausted"`
	Plan      types.SearchPlan   `json:"searchPlan"`
}

type searchContext struct {
	skills     []string
	experience []string
	rawText    string
}

// resolve picks the skills of a search: the explicit list, else the stored
// résumé's skills. The résumé also contributes experience keywords and its
// text to planning.
func (s *Service) resolve(ctx context.Context, req types.SearchRequest) (searchContext, error) {
	var sc searchContext
	if req.ResumeID != "" {
		record, err := s.resumes.GetResume(ctx, req.ResumeID)
		if err != nil {
			return sc, err
		}
		sc.skills = record.Skills
		sc.experience = record.Analysis.ExperienceKeywords()
		sc.rawText = record.RawText
	}
	if explicit := cleanSkills(req.Skills); len(explicit) > 0 {
		sc.skills = explicit
	}
	if len(sc.skills) == 0 && strings.TrimSpace(req.Query) == "" {
		return sc, ErrNoSkills
	}
	return sc, nil
}

func filtersFor(req types.SearchRequest) jobsearch.Filters {
	return jobsearch.Filters{
		Location:       strings.TrimSpace(req.Location),
		Remote:         req.Remote,
		EmploymentType: req.JobType,
		Experience:     req.Experience,
		DatePosted:     req.DatePosted,
	}
}

func (s *Service) plan(ctx context.Context, req types.SearchRequest, sc searchContext) types.SearchPlan {
	plan := s.planner.Plan(ctx, planner.Input{
		ManualQuery: req.Query,
		Skills:      sc.skills,
		Experience:  sc.experience,
		RawText:     sc.rawText,
		Location:    strings.TrimSpace(req.Location),
		Seniority:   req.Seniority,
	})
	s.emit(ctx, StepPlan, "Search: "+plan.SearchString, plan)
	return plan
}

// Search runs one page of a stateless search.
func (s *Service) Search(ctx context.Context, req types.SearchRequest) (*SearchResult, error) {
	sc, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	plan := s.plan(ctx, req, sc)

	pageNum := req.Page
	if pageNum < 1 {
		pageNum = 1
	}
	page, err := s.aggregator.FetchPage(ctx, plan, sc.skills, filtersFor(req), pageNum)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, StepFetch, fmt.Sprintf("Fetched %d listings", len(page.Listings)), nil)

	return &SearchResult{
		Listings:  jobsearch.Dedupe(nil, page.Listings),
		Page:      page.Number,
		NextPage:  page.Number + 1,
		Exhausted: page.Exhausted,
		Plan:      plan,
		Skills:    nonNil(sc.skills),
	}, nil
}

// StartSession runs the first page of a search and keeps the accumulated
// state server-side for LoadMore.
func (s *Service) StartSession(ctx context.Context, req types.SearchRequest) (*SessionPage, error) {
	if s.sessions == nil {
		return nil, ErrSessionsDisabled
	}
	sc, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	plan := s.plan(ctx, req, sc)
	filters := filtersFor(req)

	page, err := s.aggregator.FetchPage(ctx, plan, sc.skills, filters, 1)
	if err != nil {
		return nil, err
	}

	session := &jobsearch.Session{
		ID:       uuid.NewString(),
		ResumeID: req.ResumeID,
		Plan:     plan,
		Skills:   nonNil(sc.skills),
		Filters:  filters,
	}
	session.ApplyFresh(page)
	if err := s.sessions.PutSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"session_id": session.ID, "jobs": len(session.Listings)}).Info("search session started")
	return sessionPage(session, session.Listings), nil
}

// LoadMore fetches the session's next page and appends the listings it has
// not seen. Calls for one session are serialized. An exhausted session is
// returned unchanged without a provider call. Provider errors leave the
// session as it was.
func (s *Service) LoadMore(ctx context.Context, sessionID string) (*SessionPage, error) {
	if s.sessions == nil {
		return nil, ErrSessionsDisabled
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Exhausted {
		return sessionPage(session, []types.JobListing{}), nil
	}

	page, err := s.aggregator.FetchPage(ctx, session.Plan, session.Skills, session.Filters, session.NextPage)
	if err != nil {
		return nil, err
	}
	added := session.ApplyMore(page)
	if err := s.sessions.PutSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": session.ID,
		"page":       page.Number,
		"added":      len(added),
		"exhausted":  session.Exhausted,
	}).Info("search session extended")
	return sessionPage(session, added), nil
}

func sessionPage(s *jobsearch.Session, added []types.JobListing) *SessionPage {
	return &SessionPage{
		SessionID: s.ID,
		Listings:  s.Listings,
		Added:     added,
		NextPage:  s.NextPage,
		Exhausted: s.Exhausted,
		Plan:      s.Plan,
	}
}

func cleanSkills(skills []string) []string {
	var out []string
	for _, sk := range skills {
		if sk = strings.TrimSpace(sk); sk != "" {
			out = append(out, sk)
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
