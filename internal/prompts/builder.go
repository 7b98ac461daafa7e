package prompts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-assist/internal/types"
)

// BuildResumePrompt serializes a normalized profile, its strategy and the
// target role into the generation prompt. Empty collections are written as an
// explicit "No X data provided" line. The inputs are not modified.
func BuildResumePrompt(p *types.NormalizedProfile, s types.ResumeStrategy, role, extraRequirements string) string {
	if p == nil {
		p = types.NewNormalizedProfile()
	}

	return Format(MustGet(ResumeFile, "generate-resume"), map[string]string{
		"Role":              strings.TrimSpace(role),
		"RequirementLevel":  string(s.RequirementLevel),
		"Years":             strconv.Itoa(s.Years),
		"Profile":           ProfileBlock(p),
		"Strategy":          s.Recommendation,
		"Style":             MustGet(ResumeFile, "style-instructions"),
		"ExtraRequirements": extraBlock(p.ExtraRequirements, extraRequirements),
		"OutputContract":    MustGet(ResumeFile, "output-contract"),
	})
}

// ProfileBlock renders every profile field as labelled text
func ProfileBlock(p *types.NormalizedProfile) string {
	var b strings.Builder

	b.WriteString("Personal Details:\n")
	writeField(&b, "Name", p.Name)
	writeField(&b, "Email", p.Email)
	writeField(&b, "Phone", p.Phone)
	writeField(&b, "Location", p.Location)
	writeField(&b, "LinkedIn", p.LinkedIn)
	writeField(&b, "GitHub", p.GitHub)
	writeField(&b, "Portfolio", p.PortfolioURL)
	writeField(&b, "Total Experience", p.TotalExperience)
	writeField(&b, "Citizenship", p.Citizenship)
	writeField(&b, "Visa Status", p.VisaStatus)
	writeField(&b, "Sponsorship Required", p.Sponsorship)

	writeSection(&b, "Education", "education", len(p.Education), func(i int) string {
		e := p.Education[i]
		line := joinNonEmpty(", ", e.Degree, e.University)
		if when := joinNonEmpty(", ", e.Year, e.Duration); when != "" {
			line += " (" + when + ")"
		}
		return line
	})

	writeSection(&b, "Experience", "experience", len(p.Experience), func(i int) string {
		e := p.Experience[i]
		line := e.Role
		if e.Company != "" {
			line = joinNonEmpty(" at ", e.Role, e.Company)
		}
		if e.Duration != "" {
			line += " (" + e.Duration + ")"
		}
		return line + indent(e.Description)
	})

	writeSection(&b, "Projects", "projects", len(p.Projects), func(i int) string {
		pr := p.Projects[i]
		line := pr.Title
		if pr.Tech != "" {
			line += " [" + pr.Tech + "]"
		}
		return line + indent(pr.Description)
	})

	writeSection(&b, "Certifications", "certifications", len(p.Certifications), func(i int) string {
		c := p.Certifications[i]
		return joinNonEmpty(" - ", c.Title, c.Issuer)
	})

	writeSection(&b, "Languages", "languages", len(p.Languages), func(i int) string {
		l := p.Languages[i]
		return joinNonEmpty(": ", l.Language, l.Proficiency)
	})

	writeList(&b, "Skills", "skills", p.Skills)
	writeList(&b, "Technical Tools", "technical tools", p.TechnicalTools)

	writeSection(&b, "Volunteer Work", "volunteer work", len(p.VolunteerWork), func(i int) string {
		v := p.VolunteerWork[i]
		line := joinNonEmpty(" at ", v.Role, v.Organization)
		if v.Duration != "" {
			line += " (" + v.Duration + ")"
		}
		return line + indent(v.Description)
	})

	writeSection(&b, "Publications", "publications", len(p.Publications), func(i int) string {
		pub := p.Publications[i]
		return joinNonEmpty(", ", pub.Title, pub.Publication, pub.Date)
	})

	writeSection(&b, "Awards", "awards", len(p.Awards), func(i int) string {
		a := p.Awards[i]
		return joinNonEmpty(", ", a.Title, a.Organization, a.Date)
	})

	b.WriteString("\nInterests:\n")
	if p.Interests != "" {
		b.WriteString(p.Interests + "\n")
	} else {
		b.WriteString("No interests data provided\n")
	}

	if p.ExtraInfo != "" {
		b.WriteString("\nAdditional Information:\n" + p.ExtraInfo + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		value = "Not provided"
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}

func writeSection(b *strings.Builder, label, noun string, n int, line func(int) string) {
	fmt.Fprintf(b, "\n%s:\n", label)
	if n == 0 {
		fmt.Fprintf(b, "No %s data provided\n", noun)
		return
	}
	for i := 0; i < n; i++ {
		fmt.Fprintf(b, "%d. %s\n", i+1, line(i))
	}
}

func writeList(b *strings.Builder, label, noun string, items []string) {
	fmt.Fprintf(b, "\n%s:\n", label)
	if len(items) == 0 {
		fmt.Fprintf(b, "No %s data provided\n", noun)
		return
	}
	b.WriteString(strings.Join(items, ", ") + "\n")
}

func extraBlock(values ...string) string {
	var parts []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, "\n")
}

func joinNonEmpty(sep string, values ...string) string {
	var parts []string
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}

// indent puts each description line on its own indented row under the record
func indent(description string) string {
	if description == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.Split(description, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			b.WriteString("\n   " + line)
		}
	}
	return b.String()
}
