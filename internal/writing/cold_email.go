package writing

import (
	"context"
	"fmt"

	"github.com/jonathan/jobhunt/internal/llm"
	"github.com/jonathan/jobhunt/internal/schemas"
	"github.com/jonathan/jobhunt/internal/types"
)

// Outreach message types.
const (
	EmailRecruiter     = "recruiter"
	EmailHiringManager = "hiring_manager"
	EmailReferral      = "referral"
	EmailLinkedIn      = "linkedin"
)

// Outreach tones. ToneProfessional is shared with cover letters.
const (
	ToneFriendly = "friendly"
	ToneBold     = "bold"
)

var coldEmailTones = map[string]string{
	ToneProfessional: "Formal and polished. Corporate-appropriate.",
	ToneFriendly:     "Warm, conversational, and approachable while remaining professional.",
	ToneBold:         "Confident and attention-grabbing. Stand out from the crowd.",
}

// maxOutreachExperience bounds the experience entries quoted in outreach.
const maxOutreachExperience = 3

// linkLabels fixes the order and labels of profile links in outreach.
var linkLabels = []struct{ kind, label string }{
	{types.LinkLinkedIn, "LinkedIn"},
	{types.LinkGitHub, "GitHub"},
	{types.LinkPortfolio, "Portfolio"},
	{types.LinkTwitter, "Twitter/X"},
	{types.LinkBehance, "Behance"},
	{types.LinkDribbble, "Dribbble"},
}

// ColdEmailInput is the target side of an outreach message.
type ColdEmailInput struct {
	JobTitle       string
	Company        string
	JobDescription string
	RecipientRole  string
	EmailType      string
	Tone           string
}

// ColdEmail writes an outreach message. The type defaults to recruiter and
// the tone to professional.
func (g *Generator) ColdEmail(ctx context.Context, profile types.CandidateProfile, in ColdEmailInput) (*types.ColdEmail, error) {
	if g.client == nil {
		return nil, llm.ErrNotConfigured
	}

	emailType := in.EmailType
	if _, ok := emailTypeGuide(emailType, ""); !ok {
		emailType = EmailRecruiter
	}
	guide, _ := emailTypeGuide(emailType, in.RecipientRole)
	tone, ok := coldEmailTones[in.Tone]
	if !ok {
		tone = coldEmailTones[ToneProfessional]
	}

	experience := profile.Experience
	if len(experience) > maxOutreachExperience {
		experience = experience[:maxOutreachExperience]
	}

	var out types.ColdEmail
	err := g.complete(ctx, "cold-email", map[string]string{
		"Name":           orDefault(profile.Name, defaultName),
		"Skills":         joinOr(profile.Skills, ", ", notProvided),
		"Experience":     joinOr(experience, ", ", notProvided),
		"Summary":        profile.Summary,
		"Links":          linksText(profile.Links),
		"Company":        orDefault(in.Company, notSpecified),
		"JobTitle":       orDefault(in.JobTitle, notSpecified),
		"JobDescription": orDefault(in.JobDescription, notProvided),
		"RecipientRole":  orDefault(in.RecipientRole, "Recruiter"),
		"EmailType":      guide,
		"Tone":           tone,
		"Type":           emailType,
	}, 0.75, 2000, schemas.ColdEmail, &out)
	if err != nil {
		g.logger.WithError(err).Warn("cold email generation failed")
		return nil, fmt.Errorf("failed to generate cold email: %w", err)
	}

	if out.Type == "" {
		out.Type = emailType
	}
	if out.Tips == nil {
		out.Tips = []string{}
	}
	return &out, nil
}

func emailTypeGuide(emailType, recipient string) (string, bool) {
	switch emailType {
	case EmailRecruiter:
		return fmt.Sprintf("This is a cold email to a RECRUITER (%s). Focus on making their job easier: show you're a strong fit they'd want to present to their hiring managers.",
			orDefault(recipient, "Recruiter")), true
	case EmailHiringManager:
		return fmt.Sprintf("This is a cold email to a HIRING MANAGER (%s). Focus on the business value you bring and how you can solve their team's problems.",
			orDefault(recipient, "Hiring Manager")), true
	case EmailReferral:
		return "This is an email asking for a REFERRAL from someone at the company. Be respectful of their time, mention what drew you to the company, and make it easy for them to refer you.", true
	case EmailLinkedIn:
		return "This is a SHORT LinkedIn connection request message (under 300 characters). Be concise, personalized, and give a clear reason for connecting.", true
	}
	return "", false
}

// linksText lists the known profile links one per line, or "None provided".
func linksText(links types.ContactLinks) string {
	var lines []string
	for _, l := range linkLabels {
		if url := links[l.kind]; url != "" {
			lines = append(lines, l.label+": "+url)
		}
	}
	return joinOr(lines, "\n  ", "None provided")
}
