package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/jobhunt/internal/types"
)

// CandidateProfile builds the generator context for a request. A stored
// résumé supplies skills, summary, experience and links; non-empty fields of
// supplied override it.
func (s *Service) CandidateProfile(ctx context.Context, resumeID string, supplied *types.CandidateProfile) (types.CandidateProfile, error) {
	var profile types.CandidateProfile
	if resumeID != "" {
		record, err := s.resumes.GetResume(ctx, resumeID)
		if err != nil {
			return profile, err
		}
		profile = profileFromRecord(record)
	}

	if supplied != nil {
		if supplied.Name != "" {
			profile.Name = supplied.Name
		}
		if len(supplied.Skills) > 0 {
			profile.Skills = supplied.Skills
		}
		if supplied.Summary != "" {
			profile.Summary = supplied.Summary
		}
		if len(supplied.Experience) > 0 {
			profile.Experience = supplied.Experience
		}
		if len(supplied.Links) > 0 {
			profile.Links = supplied.Links
		}
	}
	return profile, nil
}

func profileFromRecord(r *types.ResumeRecord) types.CandidateProfile {
	profile := types.CandidateProfile{
		Skills: r.Skills,
		Links:  r.Links,
	}
	if r.Analysis == nil {
		return profile
	}
	if r.AIAnalyzed {
		profile.Summary = r.Analysis.Summary
	}
	for _, e := range r.Analysis.Timeline {
		if e.Kind != types.TimelineWork {
			continue
		}
		line := fmt.Sprintf("%s at %s (%s)", e.Title, e.Organization, e.Duration)
		if len(e.Highlights) > 0 {
			line += ": " + strings.Join(e.Highlights, "; ")
		}
		profile.Experience = append(profile.Experience, line)
	}
	return profile
}
