package writing

import (
	"context"
	"fmt"

	"github.com/jonathan/jobhunt/internal/llm"
	"github.com/jonathan/jobhunt/internal/schemas"
	"github.com/jonathan/jobhunt/internal/types"
)

// Cover letter tones.
const (
	ToneProfessional = "professional"
	ToneEnthusiastic = "enthusiastic"
	ToneConcise      = "concise"
)

var coverLetterTones = map[string]string{
	ToneProfessional: "Use a formal, professional tone. Be polished and corporate-appropriate.",
	ToneEnthusiastic: "Use an enthusiastic and passionate tone while remaining professional. Show genuine excitement about the opportunity.",
	ToneConcise:      "Keep the letter brief and to-the-point. Focus on the most impactful qualifications. Aim for 3 short paragraphs maximum.",
}

// CoverLetterInput is the job side of a cover letter.
type CoverLetterInput struct {
	JobTitle        string
	Company         string
	JobDescription  string
	Position        string
	ExperienceLevel string
	Tone            string
}

// CoverLetter writes a cover letter for profile applying to in. An unknown
// tone is treated as professional.
func (g *Generator) CoverLetter(ctx context.Context, profile types.CandidateProfile, in CoverLetterInput) (*types.CoverLetter, error) {
	if g.client == nil {
		return nil, llm.ErrNotConfigured
	}

	tone, ok := coverLetterTones[in.Tone]
	if !ok {
		tone = coverLetterTones[ToneProfessional]
	}

	var out types.CoverLetter
	err := g.complete(ctx, "cover-letter", map[string]string{
		"Name":            orDefault(profile.Name, defaultName),
		"Skills":          joinOr(profile.Skills, ", ", notProvided),
		"Experience":      joinOr(profile.Experience, "\n", notProvided),
		"Summary":         profile.Summary,
		"JobTitle":        orDefault(in.JobTitle, notSpecified),
		"Company":         orDefault(in.Company, notSpecified),
		"Position":        orDefault(in.Position, "Full-time"),
		"ExperienceLevel": orDefault(in.ExperienceLevel, notSpecified),
		"JobDescription":  orDefault(in.JobDescription, notProvided),
		"Tone":            tone,
	}, 0.7, 4000, schemas.CoverLetter, &out)
	if err != nil {
		g.logger.WithError(err).Warn("cover letter generation failed")
		return nil, fmt.Errorf("failed to generate cover letter: %w", err)
	}

	if out.Highlights == nil {
		out.Highlights = []string{}
	}
	if out.MatchedSkills == nil {
		out.MatchedSkills = []string{}
	}
	return &out, nil
}
