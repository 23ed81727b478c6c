package types

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Application statuses, in the order they usually occur.
var ApplicationStatuses = []string{"saved", "applied", "interviewing", "offered", "rejected", "withdrawn"}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("application_status", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, s := range ApplicationStatuses {
			if value == s {
				return true
			}
		}
		return false
	})
	return v
}

// SearchRequest is a job search over a stored résumé, an explicit skill list or a manual query.
type SearchRequest struct {
	ResumeID   string   `json:"resumeId,omitempty" validate:"omitempty,uuid"`
	Skills     []string `json:"skills,omitempty" validate:"omitempty,max=50,dive,max=100"`
	Query      string   `json:"query,omitempty" validate:"max=200"`
	Location   string   `json:"location,omitempty" validate:"max=100"`
	Remote     bool     `json:"remote,omitempty"`
	Page       int      `json:"page,omitempty" validate:"gte=0,lte=100"`
	Experience string   `json:"experience,omitempty" validate:"omitempty,oneof=under_3_years_experience more_than_3_years_experience no_experience no_degree"`
	JobType    string   `json:"jobType,omitempty" validate:"omitempty,oneof=FULLTIME PARTTIME CONTRACTOR INTERN"`
	DatePosted string   `json:"datePosted,omitempty" validate:"omitempty,oneof=all today 3days week month"`
	Seniority  string   `json:"seniority,omitempty" validate:"omitempty,oneof=junior mid senior lead executive"`
}

// ErrNoSearchInput is returned when a search names no résumé, skills or query.
var ErrNoSearchInput = errors.New("a resumeId, skills or query is required")

// Validate validates the SearchRequest using the validator.
func (r *SearchRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.ResumeID == "" && len(r.Skills) == 0 && strings.TrimSpace(r.Query) == "" {
		return ErrNoSearchInput
	}
	return nil
}

// SaveApplicationRequest saves a listing to the tracker.
type SaveApplicationRequest struct {
	ResumeID string     `json:"resumeId,omitempty"`
	Job      JobListing `json:"job"`
	Notes    string     `json:"notes,omitempty" validate:"max=5000"`
}

// Validate validates the SaveApplicationRequest using the validator.
func (r *SaveApplicationRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if strings.TrimSpace(r.Job.ExternalID) == "" {
		return errors.New("job.externalId is required")
	}
	if strings.TrimSpace(r.Job.Title) == "" {
		return errors.New("job.title is required")
	}
	return nil
}

// UpdateApplicationRequest changes the status of a tracked application.
type UpdateApplicationRequest struct {
	Status string  `json:"status" validate:"required,application_status"`
	Notes  *string `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

// Validate validates the UpdateApplicationRequest using the validator.
func (r *UpdateApplicationRequest) Validate() error {
	return validate.Struct(r)
}

// CandidateProfile is the résumé context handed to the document generators.
type CandidateProfile struct {
	Name       string       `json:"name,omitempty"`
	Skills     []string     `json:"skills,omitempty"`
	Summary    string       `json:"summary,omitempty"`
	Experience []string     `json:"experience,omitempty"`
	Links      ContactLinks `json:"links,omitempty"`
}

// CoverLetterRequest asks for a cover letter for one job.
type CoverLetterRequest struct {
	ResumeID        string            `json:"resumeId,omitempty"`
	Profile         *CandidateProfile `json:"profile,omitempty"`
	JobTitle        string            `json:"jobTitle,omitempty" validate:"max=200"`
	Company         string            `json:"companyName,omitempty" validate:"max=200"`
	JobDescription  string            `json:"jobDescription" validate:"required,min=10,max=20000"`
	Position        string            `json:"position,omitempty"`
	ExperienceLevel string            `json:"experienceLevel,omitempty"`
	Tone            string            `json:"tone,omitempty" validate:"omitempty,oneof=professional enthusiastic concise"`
}

// Validate validates the CoverLetterRequest using the validator.
func (r *CoverLetterRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return requireProfile(r.ResumeID, r.Profile)
}

// ColdEmailRequest asks for an outreach message.
type ColdEmailRequest struct {
	ResumeID       string            `json:"resumeId,omitempty"`
	Profile        *CandidateProfile `json:"profile,omitempty"`
	JobTitle       string            `json:"jobTitle,omitempty" validate:"max=200"`
	Company        string            `json:"companyName,omitempty" validate:"max=200"`
	JobDescription string            `json:"jobDescription,omitempty" validate:"max=20000"`
	RecipientRole  string            `json:"recipientRole,omitempty" validate:"max=100"`
	EmailType      string            `json:"emailType,omitempty" validate:"omitempty,oneof=recruiter hiring_manager referral linkedin"`
	Tone           string            `json:"tone,omitempty" validate:"omitempty,oneof=professional friendly bold"`
}

// Validate validates the ColdEmailRequest using the validator.
func (r *ColdEmailRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return requireProfile(r.ResumeID, r.Profile)
}

// InterviewQuestionsRequest asks for a practice question set.
type InterviewQuestionsRequest struct {
	Skills     []string `json:"skills" validate:"required,min=1,dive,required"`
	Role       string   `json:"role,omitempty" validate:"max=200"`
	Difficulty string   `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	Category   string   `json:"category,omitempty" validate:"omitempty,oneof=technical behavioral system-design all"`
	Exclude    []string `json:"excludeQuestions,omitempty"`
}

// Validate validates the InterviewQuestionsRequest using the validator.
func (r *InterviewQuestionsRequest) Validate() error {
	return validate.Struct(r)
}

// EvaluateAnswerRequest asks for feedback on a practice answer.
type EvaluateAnswerRequest struct {
	Question       string   `json:"question" validate:"required"`
	Answer         string   `json:"answer" validate:"required,max=20000"`
	ExpectedPoints []string `json:"expectedPoints,omitempty"`
}

// Validate validates the EvaluateAnswerRequest using the validator.
func (r *EvaluateAnswerRequest) Validate() error {
	return validate.Struct(r)
}

func requireProfile(resumeID string, profile *CandidateProfile) error {
	if resumeID != "" {
		return nil
	}
	if profile == nil || len(profile.Skills) == 0 {
		return errors.New("resume data is required: upload a resume first or provide profile.skills")
	}
	return nil
}
