package rendering

import (
	"strings"

	"github.com/jonathan/resume-assist/internal/types"
)

// Standard-format headings
const (
	headingCoreSkills   = "Core Skills"
	headingAchievements = "Key Achievements"
	headingSoftSkills   = "Soft Skills"
	headingAdditional   = "Additional Information"
	headingDeclaration  = "Declaration"
)

const declarationText = "I hereby declare that the information furnished above is true to the best of my knowledge and belief."

// standardView lays out the fixed ATS template: header, summary, skills by
// category, experience, education, certifications, achievements, soft skills,
// additional information and declaration. Each section is dropped when its
// data is empty.
func standardView(r *types.GeneratedResume, p *types.NormalizedProfile) resumeView {
	if r == nil {
		r = types.NewGeneratedResume()
	}
	contact := r.Header.WithProfile(p)
	v := resumeView{Name: contact.Name, Contacts: contactLine(contact)}

	add := func(s sectionView) {
		if !s.empty() {
			v.Sections = append(v.Sections, s)
		}
	}

	add(sectionView{Heading: headingSummary, Paragraphs: paragraphs(r.Summary)})
	add(sectionView{Heading: headingCoreSkills, Items: skillCategories(r, p)})
	add(sectionView{Heading: headingExperience, Entries: experienceEntries(r.Experience)})
	add(sectionView{Heading: headingEducation, Entries: educationEntries(r.Education)})
	add(sectionView{Heading: headingCertifications, Entries: certificationEntries(r.Certifications)})
	add(sectionView{Heading: headingAchievements, Items: achievements(r)})
	add(sectionView{Heading: headingSoftSkills, Items: nonEmpty(r.SoftSkills)})
	add(sectionView{Heading: headingAdditional, Items: additionalInfo(r, p)})
	if contact.Name != "" {
		add(sectionView{Heading: headingDeclaration, Paragraphs: []string{declarationText, contact.Name}})
	}

	return v
}

// skillCategories returns "Category: values" lines. Lines that already carry
// a category are kept; a flat list becomes "Technical Skills".
func skillCategories(r *types.GeneratedResume, p *types.NormalizedProfile) []string {
	var out []string
	skills := paragraphs(r.Skills)
	if len(skills) == 0 && p != nil && len(p.Skills) > 0 {
		skills = []string{strings.Join(p.Skills, ", ")}
	}
	for _, line := range skills {
		if strings.Contains(line, ":") {
			out = append(out, line)
		} else {
			out = append(out, "Technical Skills: "+line)
		}
	}

	tools := strings.TrimSpace(r.TechnicalTools)
	if tools == "" && p != nil && len(p.TechnicalTools) > 0 {
		tools = strings.Join(p.TechnicalTools, ", ")
	}
	if tools != "" {
		out = append(out, "Tools: "+tools)
	}
	return out
}

// achievements falls back to award titles when the model gave none
func achievements(r *types.GeneratedResume) []string {
	if out := nonEmpty(r.Achievements); len(out) > 0 {
		return out
	}
	var out []string
	for _, a := range r.Awards {
		if line := joinNonEmpty(" - ", a.Title, joinNonEmpty(", ", a.Organization, a.Date)); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func additionalInfo(r *types.GeneratedResume, p *types.NormalizedProfile) []string {
	if p == nil {
		p = types.NewNormalizedProfile()
	}
	var out []string
	labelled := func(label, value string) {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, label+": "+value)
		}
	}

	languages := r.Languages
	if len(languages) == 0 {
		languages = p.Languages
	}
	var spoken []string
	for _, l := range languages {
		if l.Proficiency != "" {
			spoken = append(spoken, l.Language+" ("+l.Proficiency+")")
		} else if l.Language != "" {
			spoken = append(spoken, l.Language)
		}
	}
	labelled("Languages", strings.Join(spoken, ", "))

	interests := r.Interests
	if strings.TrimSpace(interests) == "" {
		interests = p.Interests
	}
	labelled("Interests", interests)
	labelled("Date of Birth", p.DateOfBirth)
	labelled("Nationality", p.Citizenship)
	labelled("Visa Status", p.VisaStatus)

	out = append(out, paragraphs(r.AdditionalInfo)...)
	return out
}

func nonEmpty(items []string) []string {
	var out []string
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
