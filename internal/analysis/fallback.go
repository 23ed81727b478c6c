package analysis

import (
	"github.com/jonathan/jobhunt/internal/types"
)

// FallbackSummary is the summary of a degraded analysis.
const FallbackSummary = "AI analysis unavailable. Configure an LLM API key to enable resume analysis."

// FallbackCategory holds the pattern-matched skills in a degraded analysis.
const FallbackCategory = "Technical"

// Fallback builds the degraded analysis from pattern-matched fields. It has
// the same shape as a model-produced analysis, with SeniorityLevel set to
// mid as for any analysis whose level is unknown.
func Fallback(basic *types.BasicExtraction) *types.ResumeAnalysis {
	skills := []string{}
	location := ""
	if basic != nil {
		skills = append(skills, basic.Skills...)
		location = basic.Location
	}

	return &types.ResumeAnalysis{
		Summary:        FallbackSummary,
		SuggestedRoles: []string{},
		SeniorityLevel: types.SeniorityMid,
		Location:       location,
		CategorizedSkills: types.SkillCategories{
			{Name: FallbackCategory, Skills: skills},
		},
		Timeline: []types.TimelineEntry{},
	}
}

// AuthoritativeSkills picks the skills list of a résumé record: the flattened
// model categories when the model produced a non-empty set, else the
// pattern-matched skills.
func AuthoritativeSkills(result Result, basic *types.BasicExtraction) []string {
	if result.OK() {
		if flat := result.Analysis.CategorizedSkills.Flatten(); len(flat) > 0 {
			return flat
		}
	}
	if basic == nil || basic.Skills == nil {
		return []string{}
	}
	return basic.Skills
}
