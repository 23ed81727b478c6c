package extraction

import "github.com/jonathan/jobhunt/internal/types"

// Extract runs every pattern extractor over text. It is a pure function of its input.
func Extract(text string) *types.BasicExtraction {
	return &types.BasicExtraction{
		Skills:   ExtractSkills(text),
		Email:    ExtractEmail(text),
		Phone:    ExtractPhone(text),
		Links:    ExtractLinks(text),
		Location: ExtractLocation(text),
	}
}
