package analysis

import (
	"strings"

	"github.com/jonathan/jobhunt/internal/types"
)

// Normalize fixes up a decoded analysis so downstream code sees the same
// shape as the fallback: seniority inside the enum, no nil slices, no blank
// skills, roles or highlights.
func Normalize(a *types.ResumeAnalysis) {
	a.Summary = strings.TrimSpace(a.Summary)
	a.Location = strings.TrimSpace(a.Location)

	a.SeniorityLevel = strings.ToLower(strings.TrimSpace(a.SeniorityLevel))
	if !types.IsSeniority(a.SeniorityLevel) {
		a.SeniorityLevel = types.SeniorityMid
	}

	a.SuggestedRoles = compact(a.SuggestedRoles)

	categories := make(types.SkillCategories, 0, len(a.CategorizedSkills))
	for _, cat := range a.CategorizedSkills {
		cat.Skills = compact(cat.Skills)
		categories = append(categories, cat)
	}
	a.CategorizedSkills = categories

	if a.Timeline == nil {
		a.Timeline = []types.TimelineEntry{}
	}
	for i := range a.Timeline {
		entry := &a.Timeline[i]
		entry.Kind = strings.ToLower(strings.TrimSpace(entry.Kind))
		if entry.Kind != types.TimelineEducation {
			entry.Kind = types.TimelineWork
		}
		entry.Highlights = compact(entry.Highlights)
	}
}

// compact trims entries and drops empty ones. The result is never nil.
func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
