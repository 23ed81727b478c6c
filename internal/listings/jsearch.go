package listings

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/jobhunt/internal/fetch"
	"github.com/jonathan/jobhunt/internal/ingestion"
	"github.com/jonathan/jobhunt/internal/types"
)

const (
	jsearchDefaultHost = "jsearch.p.rapidapi.com"
	defaultDatePosted  = "month"
	defaultNumPages    = 3
)

// JSearchConfig configures the RapidAPI JSearch client.
type JSearchConfig struct {
	APIKey   string
	Host     string
	NumPages int
	Timeout  time.Duration
	// BaseURL overrides https://<Host>; used by tests.
	BaseURL string
}

// JSearchClient searches JSearch on RapidAPI.
type JSearchClient struct {
	cfg JSearchConfig
}

// NewJSearchClient creates a client. Missing credentials are reported by
// Search, not here.
func NewJSearchClient(cfg JSearchConfig) *JSearchClient {
	if cfg.Host == "" {
		cfg.Host = jsearchDefaultHost
	}
	if cfg.NumPages <= 0 {
		cfg.NumPages = defaultNumPages
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = fetch.DefaultTimeout
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://" + cfg.Host
	}
	return &JSearchClient{cfg: cfg}
}

// Name implements Provider.
func (c *JSearchClient) Name() string { return SourceJSearch }

type jsearchResponse struct {
	Status string       `json:"status"`
	Data   []jsearchJob `json:"data"`
}

type jsearchJob struct {
	ID             string   `json:"job_id"`
	Title          string   `json:"job_title"`
	EmployerName   string   `json:"employer_name"`
	EmployerLogo   string   `json:"employer_logo"`
	City           string   `json:"job_city"`
	State          string   `json:"job_state"`
	Country        string   `json:"job_country"`
	Description    string   `json:"job_description"`
	MinSalary      *float64 `json:"job_min_salary"`
	MaxSalary      *float64 `json:"job_max_salary"`
	SalaryCurrency string   `json:"job_salary_currency"`
	EmploymentType string   `json:"job_employment_type"`
	IsRemote       bool     `json:"job_is_remote"`
	ApplyLink      string   `json:"job_apply_link"`
	PostedAt       string   `json:"job_posted_at_datetime_utc"`
	RequiredSkills []string `json:"job_required_skills"`
}

// Search implements Provider.
func (c *JSearchClient) Search(ctx context.Context, q Query) (*Result, error) {
	if c.cfg.APIKey == "" {
		return nil, &ConfigurationMissingError{Provider: SourceJSearch, Missing: []string{"RAPIDAPI_KEY"}}
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	datePosted := q.DatePosted
	if datePosted == "" {
		datePosted = defaultDatePosted
	}

	params := url.Values{}
	params.Set("query", q.Text)
	params.Set("page", strconv.Itoa(page))
	params.Set("num_pages", strconv.Itoa(c.cfg.NumPages))
	params.Set("date_posted", datePosted)
	params.Set("remote_jobs_only", strconv.FormatBool(q.RemoteOnly))
	if q.Experience != "" {
		params.Set("job_requirements", q.Experience)
	}
	if q.EmploymentType != "" {
		params.Set("employment_types", q.EmploymentType)
	}

	opts := fetch.DefaultOptions()
	opts.Timeout = c.cfg.Timeout
	opts.Headers = map[string]string{
		"X-RapidAPI-Key":  c.cfg.APIKey,
		"X-RapidAPI-Host": c.cfg.Host,
	}

	var resp jsearchResponse
	if _, err := fetch.JSON(ctx, strings.TrimRight(c.cfg.BaseURL, "/")+"/search", params, opts, &resp); err != nil {
		return nil, providerError(SourceJSearch, err)
	}

	result := &Result{Listings: make([]types.JobListing, 0, len(resp.Data)), Raw: len(resp.Data)}
	for _, job := range resp.Data {
		result.Listings = append(result.Listings, job.toListing())
	}
	return result, nil
}

func (j jsearchJob) toListing() types.JobListing {
	skills := j.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return types.JobListing{
		ExternalID:     j.ID,
		Title:          j.Title,
		Company:        j.EmployerName,
		CompanyLogo:    j.EmployerLogo,
		Location:       jsearchLocation(j.City, j.State, j.Country),
		Description:    ingestion.PlainDescription(j.Description),
		Salary:         FormatSalary(j.MinSalary, j.MaxSalary, j.SalaryCurrency),
		JobType:        j.EmploymentType,
		Remote:         j.IsRemote,
		ApplyLink:      j.ApplyLink,
		PostedAt:       j.PostedAt,
		RequiredSkills: skills,
		Source:         SourceJSearch,
	}
}

// jsearchLocation renders "city, state", "city, country", the bare country
// or "Remote", in that order of preference.
func jsearchLocation(city, state, country string) string {
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city + ", " + country
	case country != "":
		return country
	default:
		return "Remote"
	}
}
