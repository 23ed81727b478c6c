// Package planner builds the search query for a job search, either from a
// manual query or from LLM suggestions over the candidate's résumé.
package planner

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/jobhunt/internal/ingestion"
	"github.com/jonathan/jobhunt/internal/llm"
	"github.com/jonathan/jobhunt/internal/logging"
	"github.com/jonathan/jobhunt/internal/prompts"
	"github.com/jonathan/jobhunt/internal/schemas"
	"github.com/jonathan/jobhunt/internal/types"
)

// Limits applied to model suggestions and inputs.
const (
	MaxJobTitles     = 5
	MaxQueries       = 3
	MaxTopSkills     = 5
	MaxExcerptChars  = 1500
	fallbackSkills   = 3
	titlesInSearch   = 2
	orJoin           = " OR "
	temperature      = 0.3
	maxTokens        = 500
	defaultSeniority = types.SeniorityMid
)

// Input is what a plan is built from. A non-blank ManualQuery skips the model.
type Input struct {
	ManualQuery string
	Skills      []string
	Experience  []string
	RawText     string
	Location    string
	// Seniority is used for manual plans; empty means mid.
	Seniority string
}

// Planner builds SearchPlans. A nil client always takes the fallback path.
type Planner struct {
	client llm.Client
	logger logrus.FieldLogger
}

// New creates a Planner. client may be nil.
func New(client llm.Client, logger logrus.FieldLogger) *Planner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Planner{client: client, logger: logger.WithField("component", "planner")}
}

type suggestion struct {
	JobTitles     []string `json:"jobTitles"`
	SearchQueries []string `json:"searchQueries"`
	Seniority     string   `json:"seniority"`
	TopSkills     []string `json:"topSkills"`
}

// Plan never fails: model errors degrade to a skills-only plan.
func (p *Planner) Plan(ctx context.Context, in Input) types.SearchPlan {
	if query := strings.TrimSpace(in.ManualQuery); query != "" {
		return ManualPlan(query, in.Skills, in.Seniority, in.Location)
	}

	sug, err := p.suggest(ctx, in)
	if err != nil {
		p.logger.WithError(err).Warn("search planning degraded to skills")
		sug = suggestion{}
	}

	plan := types.SearchPlan{
		JobTitles: limit(compact(sug.JobTitles), MaxJobTitles),
		Queries:   limit(compact(sug.SearchQueries), MaxQueries),
		TopSkills: limit(compact(sug.TopSkills), MaxTopSkills),
		Seniority: strings.ToLower(strings.TrimSpace(sug.Seniority)),
	}
	if err != nil {
		plan.Queries = firstN(in.Skills, fallbackSkills)
	}
	if len(plan.TopSkills) == 0 {
		plan.TopSkills = firstN(in.Skills, MaxTopSkills)
	}
	if plan.Seniority == "" {
		plan.Seniority = defaultSeniority
	}

	plan.SearchString = withLocation(searchString(plan, in.Skills), in.Location)
	return plan
}

// ManualPlan uses query verbatim as the job-title basis.
func ManualPlan(query string, skills []string, seniority, location string) types.SearchPlan {
	query = strings.TrimSpace(query)
	if seniority == "" {
		seniority = defaultSeniority
	}
	return types.SearchPlan{
		SearchString: withLocation(query, location),
		JobTitles:    []string{query},
		Queries:      []string{},
		TopSkills:    firstN(skills, MaxTopSkills),
		Seniority:    seniority,
		Manual:       true,
	}
}

func (p *Planner) suggest(ctx context.Context, in Input) (suggestion, error) {
	var sug suggestion
	if p.client == nil {
		return sug, llm.ErrNotConfigured
	}

	excerpt := ""
	if raw := strings.TrimSpace(in.RawText); raw != "" {
		excerpt = "Resume excerpt: " + ingestion.Truncate(raw, MaxExcerptChars)
	}
	prompt, err := prompts.Render("search.json", "plan-search", map[string]string{
		"Skills":     strings.Join(in.Skills, ", "),
		"Experience": strings.Join(in.Experience, ", "),
		"Excerpt":    excerpt,
	})
	if err != nil {
		return sug, err
	}

	err = llm.CompleteJSON(ctx, p.client, llm.Request{
		System:      prompts.MustGet("search.json", "system"),
		Prompt:      prompt,
		Tier:        llm.TierLite,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}, schemas.SearchPlan, &sug)
	return sug, err
}

// searchString picks the first two titles joined with OR, else the first
// query, else the first three skills.
func searchString(plan types.SearchPlan, skills []string) string {
	if len(plan.JobTitles) > 0 {
		return strings.Join(firstN(plan.JobTitles, titlesInSearch), orJoin)
	}
	if len(plan.Queries) > 0 {
		return plan.Queries[0]
	}
	return strings.Join(firstN(skills, fallbackSkills), " ")
}

func withLocation(search, location string) string {
	if location = strings.TrimSpace(location); location != "" {
		return search + " in " + location
	}
	return search
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

func limit(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
