package types

import "time"

// Application is a saved job listing tracked through the hiring process.
type Application struct {
	ID        string     `json:"id"`
	ResumeID  string     `json:"resumeId,omitempty"`
	Listing   JobListing `json:"listing"`
	Status    string     `json:"status"`
	Notes     string     `json:"notes,omitempty"`
	AppliedAt *time.Time `json:"appliedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
