package types

// SalaryNotSpecified is the salary text used when a listing carries no bounds.
const SalaryNotSpecified = "Not specified"

// JobListing is one normalized result from a listings provider.
type JobListing struct {
	ExternalID     string   `json:"externalId"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	CompanyLogo    string   `json:"companyLogo,omitempty"`
	Location       string   `json:"location"`
	Description    string   `json:"description"`
	Salary         string   `json:"salary"`
	JobType        string   `json:"jobType"`
	Remote         bool     `json:"remote"`
	ApplyLink      string   `json:"applyLink"`
	PostedAt       string   `json:"postedAt,omitempty"`
	MatchScore     int      `json:"matchScore"`
	RequiredSkills []string `json:"requiredSkills"`
	Source         string   `json:"source,omitempty"`
}

// SearchPlan is the query built for one search request.
type SearchPlan struct {
	SearchString string   `json:"searchString"`
	JobTitles    []string `json:"jobTitles"`
	Queries      []string `json:"queries,omitempty"`
	TopSkills    []string `json:"topSkills"`
	Seniority    string   `json:"seniority"`
	Manual       bool     `json:"manual"`
}
