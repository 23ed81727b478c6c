package extraction

import "strings"

// SkillVocabulary is the fixed list of technology terms searched for in résumé text.
var SkillVocabulary = []string{
	"JavaScript", "TypeScript", "Python", "Java", "C++", "C#", "Ruby", "Go", "Rust", "PHP", "Swift", "Kotlin",
	"React", "Angular", "Vue", "Next.js", "HTML", "CSS", "SASS", "Tailwind", "Bootstrap", "jQuery",
	"Node.js", "Express", "Django", "Flask", "Spring", "FastAPI", "Rails", "Laravel", "ASP.NET",
	"MongoDB", "PostgreSQL", "MySQL", "Redis", "SQLite", "Oracle", "SQL Server", "Firebase", "DynamoDB",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins", "CI/CD", "Terraform", "Ansible",
	"Git", "GitHub", "GitLab", "Jira", "Agile", "Scrum", "REST API", "GraphQL", "Microservices",
	"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "Pandas", "NumPy",
	"React Native", "Flutter", "iOS", "Android", "Linux", "Unix", "Bash", "PowerShell",
}

// ExtractSkills returns every vocabulary term whose lower-cased name occurs in
// the lower-cased text. Matching is plain substring search, so "Java" is found
// inside "JavaScript" and "Go" inside "Google". Results follow vocabulary order.
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool, len(SkillVocabulary))
	found := make([]string, 0)
	for _, skill := range SkillVocabulary {
		if seen[skill] {
			continue
		}
		if strings.Contains(lower, strings.ToLower(skill)) {
			seen[skill] = true
			found = append(found, skill)
		}
	}
	return found
}
