package listings

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/jobhunt/internal/fetch"
	"github.com/jonathan/jobhunt/internal/ingestion"
	"github.com/jonathan/jobhunt/internal/types"
)

const (
	adzunaBaseURL     = "https://api.adzuna.com"
	adzunaPageSize    = 10
	adzunaDefaultCtry = "us"
)

// adzunaCurrencies maps an Adzuna country to the currency of its salaries.
var adzunaCurrencies = map[string]string{
	"us": "USD", "gb": "GBP", "ca": "CAD", "au": "AUD", "nz": "NZD",
	"in": "INR", "sg": "SGD", "za": "ZAR", "br": "BRL", "mx": "MXN",
	"pl": "PLN", "ch": "CHF",
	"de": "EUR", "fr": "EUR", "nl": "EUR", "it": "EUR", "es": "EUR", "at": "EUR", "be": "EUR",
}

// adzunaMaxDaysOld maps a date-posted filter to Adzuna's max_days_old.
var adzunaMaxDaysOld = map[string]int{
	"today": 1,
	"3days": 3,
	"week":  7,
	"month": 30,
}

// AdzunaConfig configures the Adzuna client.
type AdzunaConfig struct {
	AppID    string
	AppKey   string
	Country  string
	NumPages int
	Timeout  time.Duration
	BaseURL  string
}

// AdzunaClient searches the Adzuna public API.
type AdzunaClient struct {
	cfg AdzunaConfig
}

// NewAdzunaClient creates a client. Missing credentials are reported by Search.
func NewAdzunaClient(cfg AdzunaConfig) *AdzunaClient {
	cfg.Country = strings.ToLower(strings.TrimSpace(cfg.Country))
	if cfg.Country == "" {
		cfg.Country = adzunaDefaultCtry
	}
	if cfg.NumPages <= 0 {
		cfg.NumPages = defaultNumPages
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = fetch.DefaultTimeout
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = adzunaBaseURL
	}
	return &AdzunaClient{cfg: cfg}
}

// Name implements Provider.
func (c *AdzunaClient) Name() string { return SourceAdzuna }

type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
	Count   int            `json:"count"`
}

type adzunaResult struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Company      adzunaName `json:"company"`
	Location     adzunaName `json:"location"`
	SalaryMin    *float64   `json:"salary_min"`
	SalaryMax    *float64   `json:"salary_max"`
	RedirectURL  string     `json:"redirect_url"`
	Created      string     `json:"created"`
	ContractTime string     `json:"contract_time"`
	ContractType string     `json:"contract_type"`
}

type adzunaName struct {
	DisplayName string `json:"display_name"`
}

// Search implements Provider.
func (c *AdzunaClient) Search(ctx context.Context, q Query) (*Result, error) {
	var missing []string
	if c.cfg.AppID == "" {
		missing = append(missing, "ADZUNA_APP_ID")
	}
	if c.cfg.AppKey == "" {
		missing = append(missing, "ADZUNA_APP_KEY")
	}
	if len(missing) > 0 {
		return nil, &ConfigurationMissingError{Provider: SourceAdzuna, Missing: missing}
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	what, where := splitLocation(q.Text, q.Location)
	params := url.Values{}
	params.Set("app_id", c.cfg.AppID)
	params.Set("app_key", c.cfg.AppKey)
	params.Set("results_per_page", strconv.Itoa(adzunaPageSize*c.cfg.NumPages))
	params.Set("what", what)
	if where != "" {
		params.Set("where", where)
	}
	if days, ok := adzunaMaxDaysOld[q.DatePosted]; ok {
		params.Set("max_days_old", strconv.Itoa(days))
	} else if q.DatePosted == "" {
		params.Set("max_days_old", strconv.Itoa(adzunaMaxDaysOld[defaultDatePosted]))
	}
	switch q.EmploymentType {
	case "FULLTIME":
		params.Set("full_time", "1")
	case "PARTTIME":
		params.Set("part_time", "1")
	case "CONTRACTOR":
		params.Set("contract", "1")
	}

	opts := fetch.DefaultOptions()
	opts.Timeout = c.cfg.Timeout

	endpoint := fmt.Sprintf("%s/v1/api/jobs/%s/search/%d", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Country, page)
	var resp adzunaResponse
	if _, err := fetch.JSON(ctx, endpoint, params, opts, &resp); err != nil {
		return nil, providerError(SourceAdzuna, err)
	}

	currency := adzunaCurrencies[c.cfg.Country]
	result := &Result{Listings: make([]types.JobListing, 0, len(resp.Results)), Raw: len(resp.Results)}
	for _, r := range resp.Results {
		listing := r.toListing(currency)
		if q.RemoteOnly && !listing.Remote {
			continue
		}
		result.Listings = append(result.Listings, listing)
	}
	return result, nil
}

func (r adzunaResult) toListing(currency string) types.JobListing {
	location := r.Location.DisplayName
	return types.JobListing{
		ExternalID:     r.ID,
		Title:          r.Title,
		Company:        r.Company.DisplayName,
		Location:       location,
		Description:    ingestion.PlainDescription(r.Description),
		Salary:         FormatSalary(r.SalaryMin, r.SalaryMax, currency),
		JobType:        adzunaJobType(r.ContractTime, r.ContractType),
		Remote:         mentionsRemote(r.Title) || mentionsRemote(location),
		ApplyLink:      r.RedirectURL,
		PostedAt:       r.Created,
		RequiredSkills: []string{},
		Source:         SourceAdzuna,
	}
}

func adzunaJobType(contractTime, contractType string) string {
	switch {
	case contractType == "contract":
		return "CONTRACTOR"
	case contractTime == "full_time":
		return "FULLTIME"
	case contractTime == "part_time":
		return "PARTTIME"
	default:
		return ""
	}
}

func mentionsRemote(text string) bool {
	return strings.Contains(strings.ToLower(text), "remote")
}

// splitLocation removes the " in <location>" suffix from a search string so
// the location can be sent as its own parameter.
func splitLocation(text, location string) (what, where string) {
	location = strings.TrimSpace(location)
	if location == "" {
		return text, ""
	}
	suffix := " in " + location
	if strings.HasSuffix(text, suffix) {
		return strings.TrimSuffix(text, suffix), location
	}
	return text, location
}
