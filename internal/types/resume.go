// Package types provides the records shared by extraction, analysis, search and tracking.
package types

import (
	"time"
)

// Link kinds recognised in résumé text.
const (
	LinkLinkedIn  = "linkedin"
	LinkGitHub    = "github"
	LinkPortfolio = "portfolio"
	LinkTwitter   = "twitter"
	LinkBehance   = "behance"
	LinkDribbble  = "dribbble"
)

// ContactLinks maps a link kind to an absolute URL. A kind is present only when
// a matching pattern was found in the text.
type ContactLinks map[string]string

// ExtractedText is the decoded text content of a PDF.
type ExtractedText struct {
	Text      string `json:"text"`
	PageCount int    `json:"pageCount"`
}

// BasicExtraction holds the fields pulled out of résumé text by pattern matching.
type BasicExtraction struct {
	Skills   []string     `json:"skills"`
	Email    string       `json:"email,omitempty"`
	Phone    string       `json:"phone,omitempty"`
	Links    ContactLinks `json:"links"`
	Location string       `json:"location,omitempty"`
}

// Seniority levels accepted in a ResumeAnalysis.
const (
	SeniorityJunior    = "junior"
	SeniorityMid       = "mid"
	SenioritySenior    = "senior"
	SeniorityLead      = "lead"
	SeniorityExecutive = "executive"
)

// IsSeniority reports whether s is one of the known seniority levels.
func IsSeniority(s string) bool {
	switch s {
	case SeniorityJunior, SeniorityMid, SenioritySenior, SeniorityLead, SeniorityExecutive:
		return true
	}
	return false
}

// Timeline entry kinds.
const (
	TimelineWork      = "work"
	TimelineEducation = "education"
)

// TimelineEntry is one work or education item, most recent first in a ResumeAnalysis.
type TimelineEntry struct {
	Kind         string   `json:"type"`
	Title        string   `json:"title"`
	Organization string   `json:"organization"`
	Duration     string   `json:"duration"`
	Highlights   []string `json:"highlights"`
}

// ResumeAnalysis is the structured summary produced by the LLM, or its heuristic fallback.
type ResumeAnalysis struct {
	Summary           string          `json:"summary"`
	SuggestedRoles    []string        `json:"suggestedRoles"`
	SeniorityLevel    string          `json:"seniorityLevel"`
	Location          string          `json:"location,omitempty"`
	CategorizedSkills SkillCategories `json:"categorizedSkills"`
	Timeline          []TimelineEntry `json:"timeline"`
}

// ExperienceKeywords returns the titles of work entries in timeline order.
func (a *ResumeAnalysis) ExperienceKeywords() []string {
	if a == nil {
		return nil
	}
	var out []string
	for _, e := range a.Timeline {
		if e.Kind == TimelineWork && e.Title != "" {
			out = append(out, e.Title)
		}
	}
	return out
}

// ResumeRecord is the stored result of one résumé upload.
type ResumeRecord struct {
	ID         string          `json:"id"`
	FileName   string          `json:"fileName"`
	RawText    string          `json:"-"`
	PageCount  int             `json:"pageCount"`
	Skills     []string        `json:"skills"`
	Email      string          `json:"email,omitempty"`
	Phone      string          `json:"phone,omitempty"`
	Links      ContactLinks    `json:"links"`
	Location   string          `json:"location,omitempty"`
	Analysis   *ResumeAnalysis `json:"aiAnalysis"`
	AIAnalyzed bool            `json:"aiAnalyzed"`
	UploadedAt time.Time       `json:"uploadedAt"`
}

// ResumeSummary is the list view of a ResumeRecord.
type ResumeSummary struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	Skills     []string  `json:"skills"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Summary returns the list view of the record.
func (r *ResumeRecord) Summary() ResumeSummary {
	return ResumeSummary{
		ID:         r.ID,
		FileName:   r.FileName,
		Skills:     r.Skills,
		UploadedAt: r.UploadedAt,
	}
}
