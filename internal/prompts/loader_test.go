package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("analysis.json", "analyze-resume")
	require.NoError(t, err)
	assert.Contains(t, prompt, "structured analysis")
	assert.Contains(t, prompt, "{{.ResumeText}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("search.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_ValidPrompt(t *testing.T) {
	ClearCache()

	assert.NotPanics(t, func() {
		assert.NotEmpty(t, MustGet("search.json", "plan-search"))
	})
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", Format(template, data))
}

func TestFormat_NoPlaceholders(t *testing.T) {
	template := "No placeholders here"
	assert.Equal(t, template, Format(template, map[string]string{"Key": "Value"}))
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	assert.Equal(t, template, Format(template, map[string]string{})) // Placeholder remains
}

func TestFormat_ValueContainingPlaceholder(t *testing.T) {
	// Substituted values are not expanded again.
	got := Format("{{.A}} {{.B}}", map[string]string{"A": "{{.B}}", "B": "b"})
	assert.Equal(t, "{{.B}} b", got)
}

func TestRender(t *testing.T) {
	ClearCache()

	got, err := Render("search.json", "plan-search", map[string]string{
		"Skills":     "Go, Kubernetes",
		"Experience": "Backend Engineer",
		"Excerpt":    "",
	})
	require.NoError(t, err)
	assert.Contains(t, got, "Skills: Go, Kubernetes")
	assert.Contains(t, got, "Experience keywords: Backend Engineer")
	assert.NotContains(t, got, "{{.")
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("writing.json")
	require.NoError(t, err)
	assert.Contains(t, keys, "cover-letter")
	assert.Contains(t, keys, "cold-email")
	assert.Contains(t, keys, "interview-questions")
	assert.Contains(t, keys, "evaluate-answer")
	assert.IsIncreasing(t, keys)
}

func TestEverySystemPromptPresent(t *testing.T) {
	ClearCache()

	for _, file := range []string{"analysis.json", "search.json"} {
		_, err := Get(file, "system")
		assert.NoError(t, err, file)
	}
	for _, key := range []string{"cover-letter", "cold-email", "interview-questions", "evaluate-answer"} {
		_, err := Get("writing.json", key+"-system")
		assert.NoError(t, err, key)
	}
}

func TestCaching(t *testing.T) {
	ClearCache()

	prompt1, err := Get("analysis.json", "system")
	require.NoError(t, err)

	prompt2, err := Get("analysis.json", "system")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
