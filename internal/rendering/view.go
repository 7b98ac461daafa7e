package rendering

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-assist/internal/types"
)

// entryView is one record of a section: a title line and its bullets
type entryView struct {
	Title    string
	Subtitle string
	Meta     string
	Bullets  []string
}

// sectionView is one rendered section. Exactly one of Paragraphs, Items and
// Entries is normally set.
type sectionView struct {
	Heading    string
	Paragraphs []string
	Items      []string
	Entries    []entryView
}

func (s sectionView) empty() bool {
	return len(s.Paragraphs) == 0 && len(s.Items) == 0 && len(s.Entries) == 0
}

// resumeView is the format-independent layout shared by every formatter
type resumeView struct {
	Name     string
	Contacts []string
	Sections []sectionView
}

// Section headings
const (
	headingSummary        = "Professional Summary"
	headingSkills         = "Skills"
	headingExperience     = "Professional Experience"
	headingEducation      = "Education"
	headingProjects       = "Projects"
	headingCertifications = "Certifications"
	headingLanguages      = "Languages"
	headingTools          = "Technical Tools"
	headingVolunteer      = "Volunteer Experience"
	headingPublications   = "Publications"
	headingAwards         = "Awards"
	headingInterests      = "Interests"
)

// buildView lays out a resume in display order, omitting empty sections
func buildView(r *types.GeneratedResume, contact types.Contact) resumeView {
	if r == nil {
		r = types.NewGeneratedResume()
	}
	v := resumeView{Name: contact.Name, Contacts: contactLine(contact)}

	add := func(s sectionView) {
		if !s.empty() {
			v.Sections = append(v.Sections, s)
		}
	}

	add(sectionView{Heading: headingSummary, Paragraphs: paragraphs(r.Summary)})
	add(sectionView{Heading: headingSkills, Paragraphs: paragraphs(r.Skills)})
	add(sectionView{Heading: headingExperience, Entries: experienceEntries(r.Experience)})
	add(sectionView{Heading: headingEducation, Entries: educationEntries(r.Education)})
	add(sectionView{Heading: headingProjects, Entries: projectEntries(r.Projects)})
	add(sectionView{Heading: headingCertifications, Entries: certificationEntries(r.Certifications)})
	add(sectionView{Heading: headingLanguages, Entries: languageEntries(r.Languages)})
	add(sectionView{Heading: headingTools, Paragraphs: paragraphs(r.TechnicalTools)})
	add(sectionView{Heading: headingVolunteer, Entries: volunteerEntries(r.VolunteerWork)})
	add(sectionView{Heading: headingPublications, Entries: publicationEntries(r.Publications)})
	add(sectionView{Heading: headingAwards, Entries: awardEntries(r.Awards)})
	add(sectionView{Heading: headingInterests, Paragraphs: paragraphs(r.Interests)})

	return v
}

func contactLine(c types.Contact) []string {
	var out []string
	for _, s := range []string{c.Email, c.Phone, c.Location, c.LinkedIn, c.GitHub, c.Portfolio} {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// paragraphs splits text into non-empty trimmed lines
func paragraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

var bulletPrefixRe = regexp.MustCompile(`^(?:•\s*|[-–*▪]\s+)`)

// bullets splits a description into lines without leading bullet markers
func bullets(description string) []string {
	var out []string
	for _, line := range paragraphs(description) {
		line = strings.TrimSpace(bulletPrefixRe.ReplaceAllString(line, ""))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func joinNonEmpty(sep string, values ...string) string {
	var parts []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}

// entry builds an entryView, promoting the subtitle when the title is empty
func entry(title, subtitle, meta, description string) (entryView, bool) {
	title, subtitle = strings.TrimSpace(title), strings.TrimSpace(subtitle)
	if title == "" {
		title, subtitle = subtitle, ""
	}
	if title == "" {
		return entryView{}, false
	}
	return entryView{Title: title, Subtitle: subtitle, Meta: strings.TrimSpace(meta), Bullets: bullets(description)}, true
}

func collect[T any](items []T, fn func(T) (entryView, bool)) []entryView {
	var out []entryView
	for _, item := range items {
		if e, ok := fn(item); ok {
			out = append(out, e)
		}
	}
	return out
}

func experienceEntries(items []types.Experience) []entryView {
	return collect(items, func(e types.Experience) (entryView, bool) {
		return entry(e.Role, e.Company, e.Duration, e.Description)
	})
}

func educationEntries(items []types.Education) []entryView {
	return collect(items, func(e types.Education) (entryView, bool) {
		return entry(e.Degree, e.University, joinNonEmpty(", ", e.Year, e.Duration), "")
	})
}

func projectEntries(items []types.Project) []entryView {
	return collect(items, func(p types.Project) (entryView, bool) {
		return entry(p.Title, p.Tech, "", p.Description)
	})
}

func certificationEntries(items []types.Certification) []entryView {
	return collect(items, func(c types.Certification) (entryView, bool) {
		return entry(c.Title, c.Issuer, "", "")
	})
}

func languageEntries(items []types.Language) []entryView {
	return collect(items, func(l types.Language) (entryView, bool) {
		return entry(l.Language, l.Proficiency, "", "")
	})
}

func volunteerEntries(items []types.VolunteerWork) []entryView {
	return collect(items, func(v types.VolunteerWork) (entryView, bool) {
		return entry(v.Role, v.Organization, v.Duration, v.Description)
	})
}

func publicationEntries(items []types.Publication) []entryView {
	return collect(items, func(p types.Publication) (entryView, bool) {
		return entry(p.Title, p.Publication, p.Date, "")
	})
}

func awardEntries(items []types.Award) []entryView {
	return collect(items, func(a types.Award) (entryView, bool) {
		return entry(a.Title, a.Organization, a.Date, "")
	})
}
