package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillCategories_UnmarshalPreservesOrder(t *testing.T) {
	data := `{"Programming Languages": ["Go", "Python"], "Databases": ["PostgreSQL"], "Cloud & DevOps": ["Docker", "Go"]}`

	var cats SkillCategories
	require.NoError(t, json.Unmarshal([]byte(data), &cats))

	require.Len(t, cats, 3)
	assert.Equal(t, "Programming Languages", cats[0].Name)
	assert.Equal(t, "Databases", cats[1].Name)
	assert.Equal(t, "Cloud & DevOps", cats[2].Name)
	assert.Equal(t, []string{"Go", "Python", "PostgreSQL", "Docker"}, cats.Flatten())
}

func TestSkillCategories_SkipsNonArrayValues(t *testing.T) {
	data := `{"Tools": "Git", "Frameworks": ["React", 3, "Vue"], "Empty": null}`

	var cats SkillCategories
	require.NoError(t, json.Unmarshal([]byte(data), &cats))

	skills, ok := cats.Get("Frameworks")
	require.True(t, ok)
	assert.Equal(t, []string{"React", "Vue"}, skills)

	_, ok = cats.Get("Tools")
	assert.False(t, ok)
}

func TestSkillCategories_RejectsNonObject(t *testing.T) {
	var cats SkillCategories
	err := json.Unmarshal([]byte(`["Go"]`), &cats)
	assert.Error(t, err)
}

func TestSkillCategories_MarshalRoundTripKeepsOrder(t *testing.T) {
	cats := SkillCategories{
		{Name: "Technical", Skills: []string{"Go", "Rust"}},
		{Name: "Soft Skills", Skills: nil},
	}

	out, err := json.Marshal(cats)
	require.NoError(t, err)
	assert.Equal(t, `{"Technical":["Go","Rust"],"Soft Skills":[]}`, string(out))
}

func TestSkillCategories_FlattenEmpty(t *testing.T) {
	var cats SkillCategories
	flat := cats.Flatten()
	assert.NotNil(t, flat)
	assert.Empty(t, flat)
}

func TestResumeAnalysis_ExperienceKeywords(t *testing.T) {
	a := &ResumeAnalysis{
		Timeline: []TimelineEntry{
			{Kind: TimelineWork, Title: "Senior Engineer"},
			{Kind: TimelineEducation, Title: "BSc Computer Science"},
			{Kind: TimelineWork, Title: "Engineer"},
		},
	}
	assert.Equal(t, []string{"Senior Engineer", "Engineer"}, a.ExperienceKeywords())

	var nilAnalysis *ResumeAnalysis
	assert.Nil(t, nilAnalysis.ExperienceKeywords())
}
