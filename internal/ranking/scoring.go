// Package ranking scores job listings against a candidate's skills and
// orders them by relevance.
package ranking

import (
	"strings"
)

// Points added per matched skill.
const (
	skillPoints    = 10
	topSkillPoints = 5
	maxScore       = 100
)

// MatchScore returns the relevance of a listing to a candidate in [0, 100].
// Every skill found as a case-insensitive substring of title+description adds
// 10; every top skill found adds another 5, so a skill in both lists counts
// twice. Blank skills are ignored. Matching has no word boundaries: "Java"
// matches inside "JavaScript".
func MatchScore(title, description string, skills, topSkills []string) int {
	text := strings.ToLower(title + " " + description)

	score := countMatches(text, skills)*skillPoints + countMatches(text, topSkills)*topSkillPoints
	if score > maxScore {
		return maxScore
	}
	return score
}

func countMatches(text string, skills []string) int {
	n := 0
	for _, skill := range skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill != "" && strings.Contains(text, skill) {
			n++
		}
	}
	return n
}
