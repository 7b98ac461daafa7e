// Package parsing recovers a structured resume from generation model output.
package parsing

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-assist/internal/types"
)

// SectionStatus reports how a resume section was recovered
type SectionStatus string

// Section statuses
const (
	// StatusParsed means every record in the section was recovered
	StatusParsed SectionStatus = "parsed"
	// StatusPartial means some records were recovered and some were dropped
	StatusPartial SectionStatus = "partial"
	// StatusUnparsed means the section had content but no record matched
	StatusUnparsed SectionStatus = "unparsed"
	// StatusAbsent means the model omitted the section or left it empty
	StatusAbsent SectionStatus = "absent"
)

// Record section names, in display order
const (
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
	SectionLanguages      = "languages"
	SectionVolunteerWork  = "volunteerWork"
	SectionPublications   = "publications"
	SectionAwards         = "awards"
)

// RecordSections lists the sections parsed from bold/pipe text
var RecordSections = []string{
	SectionExperience,
	SectionEducation,
	SectionProjects,
	SectionCertifications,
	SectionLanguages,
	SectionVolunteerWork,
	SectionPublications,
	SectionAwards,
}

// Result is a parsed resume with per-section diagnostics
type Result struct {
	Resume   *types.GeneratedResume
	Sections map[string]SectionStatus
}

// Degraded returns the sections that lost content during parsing, sorted
func (r Result) Degraded() []string {
	var out []string
	for name, status := range r.Sections {
		if status == StatusPartial || status == StatusUnparsed {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// StatusMap returns the section statuses as plain strings for persistence
func (r Result) StatusMap() map[string]string {
	out := make(map[string]string, len(r.Sections))
	for name, status := range r.Sections {
		out[name] = string(status)
	}
	return out
}

// Parse converts a decoded model response into a GeneratedResume.
// It never fails: sections that cannot be recovered become empty, and every
// collection of the result is a non-nil slice.
func Parse(doc map[string]any) Result {
	d := record(doc)
	r := types.NewGeneratedResume()
	sections := make(map[string]SectionStatus, len(RecordSections))

	r.Header = parseHeader(d.value("header", "contact", "contactInfo", "personalInfo"))
	r.Summary = flatText(d.value("summary", "professionalSummary", "objective", "profile"))
	r.Skills = displayList(d.value("skills", "coreSkills", "technicalSkills"))
	r.TechnicalTools = displayList(d.value("technicalTools", "tools", "technologies"))

	r.Experience, sections[SectionExperience] = experienceSpec.parse(d.value("experience", "workExperience", "professionalExperience"))
	r.Education, sections[SectionEducation] = educationSpec.parse(d.value("education"))
	r.Projects, sections[SectionProjects] = projectSpec.parse(d.value("projects"))
	r.Certifications, sections[SectionCertifications] = certificationSpec.parse(d.value("certifications", "certificates"))
	r.Languages, sections[SectionLanguages] = languageSpec.parse(d.value("languages"))
	r.VolunteerWork, sections[SectionVolunteerWork] = volunteerSpec.parse(d.value("volunteerWork", "volunteer", "volunteering"))
	r.Publications, sections[SectionPublications] = publicationSpec.parse(d.value("publications"))
	r.Awards, sections[SectionAwards] = awardSpec.parse(d.value("awards", "honors"))

	r.Achievements = itemList(d.value("achievements", "keyAchievements"))
	r.SoftSkills = itemList(d.value("softSkills"))
	r.AdditionalInfo = flatText(d.value("additionalInfo", "additionalInformation"))
	r.Interests = displayList(d.value("interests", "hobbies"))
	r.LatexCode = scalar(d.value("latexCode", "latex"))

	sanitize(r)
	return Result{Resume: r, Sections: sections}
}

// sanitize guarantees every collection is a non-nil slice
func sanitize(r *types.GeneratedResume) {
	if r.Experience == nil {
		r.Experience = []types.Experience{}
	}
	if r.Education == nil {
		r.Education = []types.Education{}
	}
	if r.Projects == nil {
		r.Projects = []types.Project{}
	}
	if r.Certifications == nil {
		r.Certifications = []types.Certification{}
	}
	if r.Languages == nil {
		r.Languages = []types.Language{}
	}
	if r.VolunteerWork == nil {
		r.VolunteerWork = []types.VolunteerWork{}
	}
	if r.Publications == nil {
		r.Publications = []types.Publication{}
	}
	if r.Awards == nil {
		r.Awards = []types.Award{}
	}
	if r.Achievements == nil {
		r.Achievements = []string{}
	}
	if r.SoftSkills == nil {
		r.SoftSkills = []string{}
	}
}

// Sanitize is exported for callers that build a GeneratedResume from
// stored JSON, where collections may have been encoded as null.
func Sanitize(r *types.GeneratedResume) *types.GeneratedResume {
	if r == nil {
		return types.NewGeneratedResume()
	}
	sanitize(r)
	return r
}

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^\+?[\d\s().-]{7,}$`)
	urlRe   = regexp.MustCompile(`(?i)^(?:https?://|www\.)|\.(?:com|dev|io|me|net|org|app)(?:/|$)`)
)

// parseHeader accepts a contact object or a "Name | email | phone" line
func parseHeader(v any) types.Contact {
	switch val := v.(type) {
	case map[string]any:
		d := record(val)
		return types.Contact{
			Name:      d.str("name", "fullName"),
			Email:     d.str("email"),
			Phone:     d.str("phone", "mobile"),
			Location:  d.str("location", "address", "city"),
			LinkedIn:  d.str("linkedin", "linkedIn", "linkedinUrl"),
			GitHub:    d.str("github", "gitHub", "githubUrl"),
			Portfolio: d.str("portfolio", "website", "portfolioURL"),
		}
	case string:
		return headerFromText(val)
	}
	return types.Contact{}
}

func headerFromText(text string) types.Contact {
	var c types.Contact
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == '|' || r == '\n' || r == '•'
	})
	for _, tok := range tokens {
		tok = strings.Trim(strings.TrimSpace(tok), "*")
		lower := strings.ToLower(tok)
		switch {
		case tok == "":
		case c.Name == "":
			c.Name = tok
		case emailRe.MatchString(tok):
			c.Email = tok
		case strings.Contains(lower, "linkedin.com"):
			c.LinkedIn = tok
		case strings.Contains(lower, "github.com"):
			c.GitHub = tok
		case urlRe.MatchString(tok):
			c.Portfolio = tok
		case phoneRe.MatchString(tok):
			c.Phone = tok
		case c.Location == "":
			c.Location = tok
		}
	}
	return c
}

// displayList renders a skills-like value as one display string.
// Arrays are joined with ", "; a category object, or an array of
// {"category", "items"} objects, becomes one "Category: a, b" line each.
func displayList(v any) string {
	switch val := v.(type) {
	case []any:
		var plain, lines []string
		for _, item := range val {
			if obj, ok := item.(map[string]any); ok {
				if line := categoryLine(obj); line != "" {
					lines = append(lines, line)
				}
			} else if s := stripBullet(scalar(item)); s != "" {
				plain = append(plain, s)
			}
		}
		if len(plain) > 0 {
			lines = append([]string{strings.Join(plain, ", ")}, lines...)
		}
		return strings.Join(lines, "\n")
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var lines []string
		for _, k := range keys {
			if items := scalar(val[k]); items != "" {
				lines = append(lines, k+": "+items)
			}
		}
		return strings.Join(lines, "\n")
	default:
		return scalar(v)
	}
}

// categoryLine renders one element of a skills array given as an object
func categoryLine(obj map[string]any) string {
	d := record(obj)
	label := d.str("category", "name", "title", "group", "label")
	items := scalar(d.value("items", "skills", "list", "values", "keywords"))
	switch {
	case label != "" && items != "":
		return label + ": " + items
	case items != "":
		return items
	case label != "":
		return label
	default:
		return displayList(obj)
	}
}

// flatText joins an array of paragraphs with a space
func flatText(v any) string {
	if items, ok := v.([]any); ok {
		return joinItems(items, " ")
	}
	return scalar(v)
}

// itemList accepts an array of strings or a bullet/newline separated string
func itemList(v any) []string {
	out := []string{}
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s := stripBullet(scalar(item)); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, line := range strings.Split(val, "\n") {
			if s := stripBullet(line); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
