// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/resume-assist/internal/types"
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
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// PrintProfile outputs a summary of a normalized profile
func (p *Printer) PrintProfile(profile *types.NormalizedProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(profile.Name)))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", orDash(profile.Email)))
	sb.WriteString(fmt.Sprintf("Location: %s\n", orDash(profile.Location)))
	sb.WriteString("\n")

	counts := []struct {
		label string
		n     int
	}{
		{"Experience", len(profile.Experience)},
		{"Education", len(profile.Education)},
		{"Projects", len(profile.Projects)},
		{"Certifications", len(profile.Certifications)},
		{"Languages", len(profile.Languages)},
		{"Volunteer", len(profile.VolunteerWork)},
		{"Publications", len(profile.Publications)},
		{"Awards", len(profile.Awards)},
	}
	for _, c := range counts {
		if c.n > 0 {
			sb.WriteString(fmt.Sprintf("%-15s %d\n", c.label+":", c.n))
		}
	}

	if len(profile.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(profile.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills[i]))
		}
		if len(profile.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-maxItemsToShow))
		}
	}

	p.printBox("NORMALIZED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStrategy outputs the selected career-stage strategy
func (p *Printer) PrintStrategy(s types.ResumeStrategy) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Type:  %s\n", s.Type))
	sb.WriteString(fmt.Sprintf("Years: %d\n", s.Years))
	sb.WriteString(fmt.Sprintf("Level: %s", s.RequirementLevel))

	p.printBox("RESUME STRATEGY", sb.String())
}

// PrintResume outputs the generated record with its per-section parse status
func (p *Printer) PrintResume(record *types.ResumeRecord) {
	if record == nil || record.Resume == nil {
		return
	}
	r := record.Resume

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:    %s\n", record.ID))
	sb.WriteString(fmt.Sprintf("Role:  %s\n", record.Role))
	sb.WriteString(fmt.Sprintf("Model: %s\n", record.Model))
	sb.WriteString(fmt.Sprintf("Name:  %s\n", orDash(r.Header.Name)))

	if len(record.Sections) > 0 {
		sb.WriteString("\nSections:\n")
		names := make([]string, 0, len(record.Sections))
		for name := range record.Sections {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("  %-16s %s\n", name, record.Sections[name]))
		}
	}

	if r.Summary != "" {
		sb.WriteString("\nSummary:\n")
		sb.WriteString(r.Summary)
	}

	p.printBox("GENERATED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
