package writing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/jobhunt/internal/llm"
	"github.com/jonathan/jobhunt/internal/schemas"
	"github.com/jonathan/jobhunt/internal/types"
)

// Question difficulties and categories.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	CategoryTechnical    = "technical"
	CategoryBehavioral   = "behavioral"
	CategorySystemDesign = "system-design"
	CategoryAll          = "all"
)

const (
	maxQuestionSkills = 10
	maxExclusions     = 20
)

var difficultyGuides = map[string]string{
	DifficultyEasy:   "EASY difficulty: Generate beginner-friendly questions that test basic understanding, definitions, and simple concepts. These should be answerable by junior developers or those new to the technology.",
	DifficultyMedium: "MEDIUM difficulty: Generate intermediate questions that require practical experience, understanding of common patterns, and ability to explain trade-offs. Suitable for mid-level developers.",
	DifficultyHard:   "HARD difficulty: Generate advanced questions that require deep expertise, complex problem-solving, system design thinking, and knowledge of edge cases. These should challenge senior developers.",
}

var categoryGuides = map[string]string{
	CategoryTechnical:    "Focus only on technical questions about the listed skills.",
	CategoryBehavioral:   "Focus only on behavioral/situational questions relevant to software development.",
	CategorySystemDesign: "Focus only on system design and architecture questions.",
	CategoryAll:          "Include a mix of technical, behavioral, and problem-solving questions.",
}

// QuestionsInput selects a practice question set.
type QuestionsInput struct {
	Skills     []string
	Role       string
	Difficulty string
	Category   string
	// Exclude lists questions already asked; only the most recent 20 are sent.
	Exclude []string
}

// InterviewQuestions generates ten practice questions. When the model call
// or its output fails, a three-question set built from the first skill is
// returned with Fallback set and a nil error. Only an unconfigured client is
// an error.
func (g *Generator) InterviewQuestions(ctx context.Context, in QuestionsInput) (*types.QuestionSet, error) {
	if g.client == nil {
		return nil, llm.ErrNotConfigured
	}

	difficulty := in.Difficulty
	if _, ok := difficultyGuides[difficulty]; !ok {
		difficulty = DifficultyMedium
	}
	category := in.Category
	if _, ok := categoryGuides[category]; !ok {
		category = CategoryAll
	}
	skills := in.Skills
	if len(skills) > maxQuestionSkills {
		skills = skills[:maxQuestionSkills]
	}
	roleContext := ""
	if role := strings.TrimSpace(in.Role); role != "" {
		roleContext = "for a " + role + " position "
	}

	var out types.QuestionSet
	err := g.complete(ctx, "interview-questions", map[string]string{
		"RoleContext":     roleContext,
		"Skills":          strings.Join(skills, ", "),
		"DifficultyGuide": difficultyGuides[difficulty],
		"CategoryGuide":   categoryGuides[category],
		"Exclusions":      exclusions(in.Exclude),
		"DifficultyUpper": strings.ToUpper(difficulty),
		"Difficulty":      difficulty,
	}, 0.7, 8000, schemas.InterviewQuestions, &out)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		g.logger.WithError(err).Warn("interview question generation failed, using fallback set")
		return FallbackQuestions(in.Skills, difficulty), nil
	}

	for i := range out.Questions {
		if out.Questions[i].ID == 0 {
			out.Questions[i].ID = i + 1
		}
		if out.Questions[i].ExpectedPoints == nil {
			out.Questions[i].ExpectedPoints = []string{}
		}
	}
	if out.Summary.TotalQuestions == 0 {
		out.Summary.TotalQuestions = len(out.Questions)
	}
	if out.Summary.SkillsCovered == nil {
		out.Summary.SkillsCovered = []string{}
	}
	return &out, nil
}

func exclusions(asked []string) string {
	if len(asked) == 0 {
		return ""
	}
	if len(asked) > maxExclusions {
		asked = asked[len(asked)-maxExclusions:]
	}

	var b strings.Builder
	b.WriteString("\n\nIMPORTANT: Do NOT generate questions similar to these previously asked questions:\n")
	for i, q := range asked {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	b.WriteString("\nGenerate completely different questions that test different aspects of the skills.")
	return b.String()
}

// FallbackQuestions is the fixed three-question set used when generation
// fails.
func FallbackQuestions(skills []string, difficulty string) *types.QuestionSet {
	primary := "programming"
	if len(skills) > 0 && strings.TrimSpace(skills[0]) != "" {
		primary = skills[0]
	}

	return &types.QuestionSet{
		Questions: []types.InterviewQuestion{
			{
				ID:             1,
				Question:       fmt.Sprintf("Explain the key concepts of %s and when you would use it.", primary),
				Category:       CategoryTechnical,
				Difficulty:     difficulty,
				Skill:          primary,
				ExpectedPoints: []string{"Clear definition", "Use cases", "Advantages and limitations"},
				Tips:           "Start with a clear definition, then provide concrete examples.",
			},
			{
				ID:             2,
				Question:       "Tell me about a challenging project you worked on and how you overcame obstacles.",
				Category:       CategoryBehavioral,
				Difficulty:     DifficultyMedium,
				Skill:          "Problem Solving",
				ExpectedPoints: []string{"Clear problem description", "Actions taken", "Results achieved", "Lessons learned"},
				Tips:           "Use the STAR method: Situation, Task, Action, Result.",
			},
			{
				ID:             3,
				Question:       fmt.Sprintf("How would you debug a performance issue in a %s application?", primary),
				Category:       "problem-solving",
				Difficulty:     difficulty,
				Skill:          primary,
				ExpectedPoints: []string{"Systematic approach", "Profiling tools", "Common bottlenecks", "Optimization strategies"},
				Tips:           "Show your debugging process step by step.",
			},
		},
		Summary: types.QuestionSetSummary{
			TotalQuestions:    3,
			SkillsCovered:     []string{primary, "Problem Solving"},
			EstimatedDuration: "15 minutes",
		},
		Fallback: true,
	}
}

// EvaluateInput is one practice answer to grade.
type EvaluateInput struct {
	Question       string
	Answer         string
	ExpectedPoints []string
}

// EvaluateAnswer scores an answer from 1 to 10. A failed model call or an
// invalid answer yields a neutral score-5 evaluation with Fallback set.
func (g *Generator) EvaluateAnswer(ctx context.Context, in EvaluateInput) (*types.AnswerEvaluation, error) {
	if g.client == nil {
		return nil, llm.ErrNotConfigured
	}

	var out types.AnswerEvaluation
	err := g.complete(ctx, "evaluate-answer", map[string]string{
		"Question":       in.Question,
		"ExpectedPoints": strings.Join(in.ExpectedPoints, ", "),
		"Answer":         in.Answer,
	}, 0.5, 1000, schemas.AnswerEvaluation, &out)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		g.logger.WithError(err).Warn("answer evaluation failed, using neutral score")
		return FallbackEvaluation(), nil
	}

	if out.Strengths == nil {
		out.Strengths = []string{}
	}
	if out.Improvements == nil {
		out.Improvements = []string{}
	}
	return &out, nil
}

// FallbackEvaluation is the neutral evaluation used when grading fails.
func FallbackEvaluation() *types.AnswerEvaluation {
	return &types.AnswerEvaluation{
		Score:           5,
		Strengths:       []string{"Attempted to answer the question"},
		Improvements:    []string{"Could not evaluate - please try again"},
		SuggestedAnswer: "Evaluation failed",
		Fallback:        true,
	}
}
