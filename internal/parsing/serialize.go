package parsing

import (
	"strings"

	"github.com/jonathan/resume-assist/internal/types"
)

// Serialize writes a resume back into the document shape the model is asked
// to return, with record sections as bold/pipe text blocks.
// Parse(Serialize(r)) reproduces r for records whose titles are non-empty and
// whose values contain no pipes.
func Serialize(r *types.GeneratedResume) map[string]any {
	if r == nil {
		r = types.NewGeneratedResume()
	}
	doc := map[string]any{
		"header": map[string]any{
			"name":      r.Header.Name,
			"email":     r.Header.Email,
			"phone":     r.Header.Phone,
			"location":  r.Header.Location,
			"linkedin":  r.Header.LinkedIn,
			"github":    r.Header.GitHub,
			"portfolio": r.Header.Portfolio,
		},
		"summary":        r.Summary,
		"skills":         r.Skills,
		"technicalTools": r.TechnicalTools,
		"achievements":   toAnySlice(r.Achievements),
		"softSkills":     toAnySlice(r.SoftSkills),
		"additionalInfo": r.AdditionalInfo,
		"interests":      r.Interests,
		"latexCode":      r.LatexCode,
	}
	for _, name := range RecordSections {
		doc[name] = FormatSection(name, r)
	}
	return doc
}

// FormatSection renders one record section in the bold/pipe convention:
// a "**Title** | field | field" header per record, "• " bullet lines for
// descriptions, and a blank line between records. Unknown sections render empty.
func FormatSection(name string, r *types.GeneratedResume) string {
	var blocks []string
	switch name {
	case SectionExperience:
		for _, e := range r.Experience {
			blocks = append(blocks, formatRecord(e.Role, []string{e.Company, e.Duration}, e.Description))
		}
	case SectionEducation:
		for _, e := range r.Education {
			blocks = append(blocks, formatRecord(e.Degree, trimTrailing([]string{e.University, e.Year, e.Duration}, 1), ""))
		}
	case SectionProjects:
		for _, p := range r.Projects {
			blocks = append(blocks, formatRecord(p.Title, []string{p.Tech}, p.Description))
		}
	case SectionCertifications:
		for _, c := range r.Certifications {
			blocks = append(blocks, formatRecord(c.Title, []string{c.Issuer}, ""))
		}
	case SectionLanguages:
		for _, l := range r.Languages {
			blocks = append(blocks, formatRecord(l.Language, []string{l.Proficiency}, ""))
		}
	case SectionVolunteerWork:
		for _, v := range r.VolunteerWork {
			blocks = append(blocks, formatRecord(v.Role, []string{v.Organization, v.Duration}, v.Description))
		}
	case SectionPublications:
		for _, p := range r.Publications {
			blocks = append(blocks, formatRecord(p.Title, []string{p.Publication, p.Date}, ""))
		}
	case SectionAwards:
		for _, a := range r.Awards {
			blocks = append(blocks, formatRecord(a.Title, []string{a.Organization, a.Date}, ""))
		}
	}
	return strings.Join(blocks, "\n\n")
}

func formatRecord(title string, fields []string, description string) string {
	var b strings.Builder
	b.WriteString("**" + title + "**")
	for _, f := range fields {
		b.WriteString(" | " + f)
	}
	for _, line := range strings.Split(description, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			b.WriteString("\n• " + line)
		}
	}
	return b.String()
}

// trimTrailing drops empty trailing fields, keeping at least keep of them
func trimTrailing(fields []string, keep int) []string {
	n := len(fields)
	for n > keep && fields[n-1] == "" {
		n--
	}
	return fields[:n]
}

func toAnySlice(items []string) []any {
	out := make([]any, 0, len(items))
	for _, s := range items {
		out = append(out, s)
	}
	return out
}
