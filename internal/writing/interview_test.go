package writing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobhunt/internal/llm"
)

const questionsJSON = `{
  "questions": [
    {"question": "What is a goroutine?", "category": "technical", "difficulty": "hard", "skill": "Go"},
    {"id": 7, "question": "Explain MVCC.", "category": "technical", "difficulty": "hard", "skill": "PostgreSQL", "expectedPoints": ["snapshots"]}
  ]
}`

func TestInterviewQuestions(t *testing.T) {
	stub := &stubClient{response: questionsJSON}
	g := New(stub, nil)

	set, err := g.InterviewQuestions(context.Background(), QuestionsInput{
		Skills:     []string{"Go", "PostgreSQL"},
		Role:       "Backend Engineer",
		Difficulty: DifficultyHard,
		Category:   CategoryTechnical,
	})
	require.NoError(t, err)
	assert.False(t, set.Fallback)
	require.Len(t, set.Questions, 2)
	assert.Equal(t, 1, set.Questions[0].ID)
	assert.Equal(t, 7, set.Questions[1].ID)
	assert.Equal(t, []string{}, set.Questions[0].ExpectedPoints)
	assert.Equal(t, 2, set.Summary.TotalQuestions)

	req := stub.requests[0]
	assert.Equal(t, float32(0.7), req.Temperature)
	assert.Equal(t, 8000, req.MaxTokens)
	assert.Contains(t, req.Prompt, "questions for a Backend Engineer position for a candidate with these skills: Go, PostgreSQL.")
	assert.Contains(t, req.Prompt, difficultyGuides[DifficultyHard])
	assert.Contains(t, req.Prompt, categoryGuides[CategoryTechnical])
	assert.Contains(t, req.Prompt, "ALL questions must be HARD difficulty level")
	assert.NotContains(t, req.Prompt, "IMPORTANT")
}

func TestInterviewQuestions_Defaults(t *testing.T) {
	stub := &stubClient{response: questionsJSON}
	g := New(stub, nil)

	skills := make([]string, 12)
	for i := range skills {
		skills[i] = fmt.Sprintf("skill%d", i)
	}
	_, err := g.InterviewQuestions(context.Background(), QuestionsInput{Skills: skills, Difficulty: "impossible"})
	require.NoError(t, err)

	prompt := stub.requests[0].Prompt
	assert.Contains(t, prompt, "questions for a candidate with these skills: skill0,")
	assert.Contains(t, prompt, "skill9.")
	assert.NotContains(t, prompt, "skill10")
	assert.Contains(t, prompt, difficultyGuides[DifficultyMedium])
	assert.Contains(t, prompt, categoryGuides[CategoryAll])
}

func TestInterviewQuestions_Exclusions(t *testing.T) {
	stub := &stubClient{response: questionsJSON}
	g := New(stub, nil)

	var asked []string
	for i := 1; i <= 25; i++ {
		asked = append(asked, fmt.Sprintf("question %d", i))
	}
	_, err := g.InterviewQuestions(context.Background(), QuestionsInput{Skills: []string{"Go"}, Exclude: asked})
	require.NoError(t, err)

	prompt := stub.requests[0].Prompt
	assert.Contains(t, prompt, "IMPORTANT: Do NOT generate questions similar")
	assert.Contains(t, prompt, "1. question 6\n")
	assert.Contains(t, prompt, "20. question 25\n")
	assert.NotContains(t, prompt, "question 5\n")
}

func TestInterviewQuestions_FallbackOnFailure(t *testing.T) {
	tests := []struct {
		name string
		stub *stubClient
	}{
		{name: "call error", stub: &stubClient{err: &llm.CallError{Provider: llm.ProviderGroq, Cause: errors.New("boom")}}},
		{name: "not json", stub: &stubClient{response: "I cannot help with that"}},
		{name: "no questions", stub: &stubClient{response: `{"questions": []}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := New(tt.stub, nil).InterviewQuestions(context.Background(), QuestionsInput{Skills: []string{"Rust"}, Difficulty: DifficultyEasy})
			require.NoError(t, err)
			assert.True(t, set.Fallback)
			require.Len(t, set.Questions, 3)
			assert.Equal(t, "Explain the key concepts of Rust and when you would use it.", set.Questions[0].Question)
			assert.Equal(t, DifficultyEasy, set.Questions[0].Difficulty)
			assert.Equal(t, DifficultyMedium, set.Questions[1].Difficulty)
		})
	}
}

func TestFallbackQuestions_NoSkills(t *testing.T) {
	set := FallbackQuestions(nil, DifficultyMedium)
	assert.True(t, strings.Contains(set.Questions[2].Question, "a programming application"))
	assert.Equal(t, []string{"programming", "Problem Solving"}, set.Summary.SkillsCovered)
	assert.Equal(t, 3, set.Summary.TotalQuestions)
}

func TestEvaluateAnswer(t *testing.T) {
	stub := &stubClient{response: `{"score": 8, "strengths": ["Clear"], "suggestedAnswer": "More detail"}`}
	g := New(stub, nil)

	eval, err := g.EvaluateAnswer(context.Background(), EvaluateInput{
		Question:       "What is a goroutine?",
		Answer:         "A lightweight thread.",
		ExpectedPoints: []string{"scheduler", "stack growth"},
	})
	require.NoError(t, err)
	assert.Equal(t, 8, eval.Score)
	assert.Equal(t, []string{}, eval.Improvements)
	assert.False(t, eval.Fallback)

	req := stub.requests[0]
	assert.Equal(t, float32(0.5), req.Temperature)
	assert.Equal(t, 1000, req.MaxTokens)
	assert.Contains(t, req.Prompt, "Expected key points: scheduler, stack growth")
}

func TestEvaluateAnswer_Fallback(t *testing.T) {
	for _, response := range []string{`{"score": 14}`, "garbage"} {
		eval, err := New(&stubClient{response: response}, nil).EvaluateAnswer(context.Background(), EvaluateInput{Question: "q", Answer: "a"})
		require.NoError(t, err)
		assert.Equal(t, FallbackEvaluation(), eval)
	}
}

func TestInterviewTips(t *testing.T) {
	react := InterviewTips("React")
	assert.Contains(t, react.KeyTopics, "Hooks")

	generic := InterviewTips("Elixir")
	assert.Equal(t, "What are the main features of Elixir?", generic.CommonQuestions[0])
	assert.Len(t, generic.KeyTopics, 4)

	assert.Equal(t, "What are the main features of react?", InterviewTips("react").CommonQuestions[0])
}
