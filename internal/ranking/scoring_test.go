package ranking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		skills      []string
		topSkills   []string
		want        int
	}{
		{
			name:        "no overlap",
			title:       "Accountant",
			description: "Prepare quarterly filings.",
			skills:      []string{"Go", "Kubernetes"},
			topSkills:   []string{"Kubernetes"},
			want:        0,
		},
		{
			name:        "three skills two top skills",
			title:       "Full Stack Developer",
			description: "We use JavaScript, React and Node.js every day.",
			skills:      []string{"JavaScript", "React", "Node.js"},
			topSkills:   []string{"React", "Node.js"},
			want:        40,
		},
		{
			name:        "case insensitive",
			title:       "PYTHON developer",
			description: "",
			skills:      []string{"python"},
			want:        10,
		},
		{
			name:        "substring without word boundary",
			title:       "Frontend Engineer",
			description: "Strong JavaScript skills.",
			skills:      []string{"Java"},
			want:        10,
		},
		{
			name:        "title counts",
			title:       "Go Engineer",
			description: "Backend services.",
			skills:      []string{"Go"},
			topSkills:   []string{"Go"},
			want:        15,
		},
		{
			name:        "blank skills ignored",
			title:       "Engineer",
			description: "anything",
			skills:      []string{"", "  "},
			topSkills:   []string{""},
			want:        0,
		},
		{
			name:        "nil lists",
			title:       "Engineer",
			description: "anything",
			want:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchScore(tt.title, tt.description, tt.skills, tt.topSkills))
		})
	}
}

func TestMatchScore_ClampsTo100(t *testing.T) {
	skills := []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "a10", "a11"}
	description := strings.Join(skills, " ")

	assert.Equal(t, 100, MatchScore("", description, skills, skills))
}

func TestMatchScore_Range(t *testing.T) {
	skills := []string{"Go", "Rust", "SQL"}
	for _, text := range []string{"", "go", "rust sql go", strings.Repeat("go ", 100)} {
		score := MatchScore(text, text, skills, skills)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}
