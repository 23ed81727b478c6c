// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/jobhunt/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fit(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// fit truncates line to width runes, marking the cut with "...".
func fit(line string, width int) string {
	runes := []rune(line)
	if len(runes) <= width {
		return line
	}
	return string(runes[:width-3]) + "..."
}

// listPreview joins up to maxItemsToShow items and counts the rest.
func listPreview(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	count := min(len(items), maxItemsToShow)
	s := strings.Join(items[:count], ", ")
	if len(items) > maxItemsToShow {
		s += fmt.Sprintf(" (+%d more)", len(items)-maxItemsToShow)
	}
	return s
}

// PrintProgress outputs one pipeline step as a single line.
//
//nolint:errcheck
func (p *Printer) PrintProgress(step, message string) {
	fmt.Fprintf(p.out, "• %-14s %s\n", step, message)
}

// PrintResume outputs a human-readable summary of an ingested résumé.
func (p *Printer) PrintResume(record *types.ResumeRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s (%d pages)\n", record.FileName, record.PageCount))
	if record.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", record.Email))
	}
	if record.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:    %s\n", record.Phone))
	}
	if record.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", record.Location))
	}
	sb.WriteString(fmt.Sprintf("Skills:   %s\n", listPreview(record.Skills)))

	kinds := make([]string, 0, len(record.Links))
	for kind := range record.Links {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		sb.WriteString(fmt.Sprintf("  %-10s %s\n", kind, record.Links[kind]))
	}

	if a := record.Analysis; a != nil && record.AIAnalyzed {
		sb.WriteString("\n")
		if a.SeniorityLevel != "" {
			sb.WriteString(fmt.Sprintf("Level:    %s\n", a.SeniorityLevel))
		}
		sb.WriteString(fmt.Sprintf("Roles:    %s\n", listPreview(a.SuggestedRoles)))
		count := min(len(a.Timeline), maxItemsToShow)
		for _, e := range a.Timeline[:count] {
			sb.WriteString(fmt.Sprintf("  [%s] %s, %s\n", e.Kind, e.Title, e.Organization))
		}
	} else {
		sb.WriteString("\nAI analysis unavailable; pattern extraction only\n")
	}

	p.printBox("RESUME "+record.ID, sb.String())
}

// PrintSearchPage outputs the plan and top listings of one search page.
func (p *Printer) PrintSearchPage(plan types.SearchPlan, listings []types.JobListing, page int, exhausted bool) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Query:    %s\n", plan.SearchString))
	if !plan.Manual {
		sb.WriteString(fmt.Sprintf("Titles:   %s\n", listPreview(plan.JobTitles)))
		sb.WriteString(fmt.Sprintf("Top:      %s\n", listPreview(plan.TopSkills)))
	}
	sb.WriteString(fmt.Sprintf("Page:     %d (%d listings)\n", page, len(listings)))
	if exhausted {
		sb.WriteString("No further pages\n")
	}
	sb.WriteString("\n")

	count := min(len(listings), maxItemsToShow)
	for i, l := range listings[:count] {
		sb.WriteString(fmt.Sprintf("%d. [%3d%%] %s\n", i+1, l.MatchScore, l.Title))
		where := l.Location
		if l.Remote {
			where += " (remote)"
		}
		sb.WriteString(fmt.Sprintf("   %s, %s\n", l.Company, strings.TrimSpace(where)))
	}
	if len(listings) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more listings", len(listings)-maxItemsToShow))
	}

	p.printBox("JOB SEARCH", sb.String())
}
