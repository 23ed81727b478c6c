package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/jobhunt/internal/types"
)

type linkPattern struct {
	kind    string
	pattern *regexp.Regexp
}

const urlPrefix = `(?:https?://)?(?:www\.)?`

var platformPatterns = []linkPattern{
	{types.LinkLinkedIn, regexp.MustCompile(`(?i)` + urlPrefix + `linkedin\.com/in/[\w-]+/?`)},
	{types.LinkGitHub, regexp.MustCompile(`(?i)` + urlPrefix + `github\.com/[\w-]+/?`)},
	{types.LinkTwitter, regexp.MustCompile(`(?i)` + urlPrefix + `(?:twitter\.com|x\.com)/[\w-]+/?`)},
	{types.LinkBehance, regexp.MustCompile(`(?i)` + urlPrefix + `behance\.net/[\w-]+/?`)},
	{types.LinkDribbble, regexp.MustCompile(`(?i)` + urlPrefix + `dribbble\.com/[\w-]+/?`)},
}

var portfolioPattern = regexp.MustCompile(`(?i)` + urlPrefix + `[\w-]+\.(?:dev|io|me|com|co|tech|design|portfolio)(?:/[\w-]*)?`)

// Domains never reported as a portfolio.
var portfolioExcludes = []string{"linkedin", "github", "twitter", "facebook", "rapidapi", "google"}

// ExtractLinks finds at most one URL per known platform plus a portfolio
// guess. The portfolio guess is the first domain-shaped token with a common
// personal-site suffix that is not a known platform, so an email domain can
// be picked up.
func ExtractLinks(text string) types.ContactLinks {
	links := make(types.ContactLinks)

	for _, lp := range platformPatterns {
		if m := lp.pattern.FindString(text); m != "" {
			links[lp.kind] = withScheme(m)
		}
	}

	for _, m := range portfolioPattern.FindAllString(text, -1) {
		if excludedPortfolio(m) {
			continue
		}
		links[types.LinkPortfolio] = withScheme(m)
		break
	}

	return links
}

func excludedPortfolio(match string) bool {
	lower := strings.ToLower(match)
	for _, ex := range portfolioExcludes {
		if strings.Contains(lower, ex) {
			return true
		}
	}
	return false
}

func withScheme(url string) string {
	if strings.HasPrefix(strings.ToLower(url), "http") {
		return url
	}
	return "https://" + url
}
