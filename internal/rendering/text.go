package rendering

import (
	"strings"

	"github.com/jonathan/resume-assist/internal/types"
)

// ToPlainText renders the resume as plain text with upper-case headings and
// bold markers removed.
func ToPlainText(r *types.GeneratedResume) string {
	var header types.Contact
	if r != nil {
		header = r.Header
	}
	return writeText(buildView(r, header))
}

// ToStandardText renders the fixed ATS template as plain text
func ToStandardText(r *types.GeneratedResume, p *types.NormalizedProfile) string {
	return writeText(standardView(r, p))
}

func writeText(v resumeView) string {
	var b strings.Builder

	if v.Name != "" {
		b.WriteString(strings.ToUpper(StripBold(v.Name)))
		b.WriteString("\n")
	}
	if len(v.Contacts) > 0 {
		b.WriteString(strings.Join(v.Contacts, " | "))
		b.WriteString("\n")
	}

	for _, s := range v.Sections {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		heading := strings.ToUpper(s.Heading)
		b.WriteString(heading)
		b.WriteString("\n")
		b.WriteString(strings.Repeat("-", len(heading)))
		b.WriteString("\n")

		for _, p := range s.Paragraphs {
			b.WriteString(StripBold(p))
			b.WriteString("\n")
		}
		for _, item := range s.Items {
			b.WriteString("• ")
			b.WriteString(StripBold(item))
			b.WriteString("\n")
		}
		for i, e := range s.Entries {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(StripBold(joinNonEmpty(" | ", e.Title, e.Subtitle, e.Meta)))
			b.WriteString("\n")
			for _, bullet := range e.Bullets {
				b.WriteString("  • ")
				b.WriteString(StripBold(bullet))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}
