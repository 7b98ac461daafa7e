package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-assist/internal/types"
)

var (
	blockSplitRe = regexp.MustCompile(`\n[ \t]*\n`)
	// headerRe matches "**Title** | field | field"; group 2 keeps the leading pipe
	headerRe = regexp.MustCompile(`^\*\*(.+?)\*\*\s*(\|.*)?$`)
	bulletRe = regexp.MustCompile(`^(?:•\s*|[-*▪]\s+)`)
)

// rawRecord is one header line and the lines that follow it
type rawRecord struct {
	title  string
	fields []string
	lines  []string
}

func (r rawRecord) field(i int) string {
	if i < len(r.fields) {
		return r.fields[i]
	}
	return ""
}

func (r rawRecord) description() string {
	return strings.Join(r.lines, "\n")
}

// splitRecords splits a text block into records. Records are separated by
// blank lines, and a header line also starts a new record. Content that
// appears before any header in a block cannot be attributed and is counted
// as dropped.
func splitRecords(text string) (records []rawRecord, dropped int) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, block := range blockSplitRe.Split(text, -1) {
		var current *rawRecord
		orphan := false
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if m := headerRe.FindStringSubmatch(line); m != nil {
				if current != nil {
					records = append(records, *current)
				}
				current = &rawRecord{title: strings.TrimSpace(m[1]), fields: splitFields(m[2])}
				continue
			}
			if current == nil {
				orphan = true
				continue
			}
			if item := stripBullet(line); item != "" {
				current.lines = append(current.lines, item)
			}
		}
		if current != nil {
			records = append(records, *current)
		}
		if orphan {
			dropped++
		}
	}
	return records, dropped
}

// splitFields splits "| a | b" into ["a", "b"]
func splitFields(rest string) []string {
	if rest == "" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(rest, "|"), "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func stripBullet(line string) string {
	return strings.TrimSpace(bulletRe.ReplaceAllString(strings.TrimSpace(line), ""))
}

// sectionSpec describes how one record section is recovered from text
// headers and from JSON objects.
type sectionSpec[T any] struct {
	minFields int
	maxFields int
	fromText  func(r rawRecord) T
	fromMap   func(d record) (T, bool)
}

func (s sectionSpec[T]) parseText(text string) (out []T, dropped int) {
	records, dropped := splitRecords(text)
	for _, r := range records {
		if len(r.fields) < s.minFields || len(r.fields) > s.maxFields {
			dropped++
			continue
		}
		out = append(out, s.fromText(r))
	}
	return out, dropped
}

// parse accepts a text block, an array of objects or strings, or a single
// object. It never fails; the status reports whether content was lost.
func (s sectionSpec[T]) parse(v any) ([]T, SectionStatus) {
	out := []T{}
	dropped := 0

	switch val := v.(type) {
	case nil:
		return out, StatusAbsent
	case string:
		if strings.TrimSpace(val) == "" {
			return out, StatusAbsent
		}
		recs, d := s.parseText(val)
		out, dropped = append(out, recs...), d
	case []any:
		if len(val) == 0 {
			return out, StatusAbsent
		}
		for _, item := range val {
			switch it := item.(type) {
			case map[string]any:
				if rec, ok := s.fromMap(record(it)); ok {
					out = append(out, rec)
				} else {
					dropped++
				}
			case string:
				if strings.TrimSpace(it) == "" {
					continue
				}
				recs, d := s.parseText(it)
				out = append(out, recs...)
				dropped += d
			default:
				dropped++
			}
		}
	case map[string]any:
		if len(val) == 0 {
			return out, StatusAbsent
		}
		if rec, ok := s.fromMap(record(val)); ok {
			out = append(out, rec)
		} else {
			dropped++
		}
	default:
		dropped++
	}

	return out, statusOf(len(out), dropped)
}

func statusOf(parsed, dropped int) SectionStatus {
	switch {
	case dropped == 0 && parsed == 0:
		return StatusAbsent
	case dropped == 0:
		return StatusParsed
	case parsed == 0:
		return StatusUnparsed
	default:
		return StatusPartial
	}
}

var experienceSpec = sectionSpec[types.Experience]{
	minFields: 2, maxFields: 2,
	fromText: func(r rawRecord) types.Experience {
		return types.Experience{Role: r.title, Company: r.field(0), Duration: r.field(1), Description: r.description()}
	},
	fromMap: func(d record) (types.Experience, bool) {
		e := types.Experience{
			Role:        d.str("role", "title", "position", "jobTitle", "designation"),
			Company:     d.str("company", "companyName", "organization", "employer"),
			Duration:    d.str("duration", "dates", "period", "date"),
			Description: d.lines("description", "bullets", "responsibilities", "achievements", "highlights"),
		}
		if e.Duration == "" {
			e.Duration = d.span()
		}
		return e, e.Role != "" || e.Company != ""
	},
}

var educationSpec = sectionSpec[types.Education]{
	minFields: 1, maxFields: 3,
	fromText: func(r rawRecord) types.Education {
		return types.Education{Degree: r.title, University: r.field(0), Year: r.field(1), Duration: r.field(2)}
	},
	fromMap: func(d record) (types.Education, bool) {
		e := types.Education{
			Degree:     d.str("degree", "qualification", "course", "title"),
			University: d.str("university", "institution", "school", "college"),
			Year:       d.str("year", "graduationYear", "passingYear"),
			Duration:   d.str("duration", "dates", "period"),
		}
		if e.Duration == "" {
			e.Duration = d.span()
		}
		return e, e.Degree != "" || e.University != ""
	},
}

var projectSpec = sectionSpec[types.Project]{
	minFields: 1, maxFields: 1,
	fromText: func(r rawRecord) types.Project {
		return types.Project{Title: r.title, Tech: r.field(0), Description: r.description()}
	},
	fromMap: func(d record) (types.Project, bool) {
		p := types.Project{
			Title:       d.str("title", "name", "projectName"),
			Tech:        d.inline("tech", "technologies", "techStack", "stack", "tools"),
			Description: d.lines("description", "details", "bullets", "highlights"),
		}
		return p, p.Title != ""
	},
}

var certificationSpec = sectionSpec[types.Certification]{
	minFields: 1, maxFields: 1,
	fromText: func(r rawRecord) types.Certification {
		return types.Certification{Title: r.title, Issuer: r.field(0)}
	},
	fromMap: func(d record) (types.Certification, bool) {
		c := types.Certification{
			Title:  d.str("title", "name", "certification"),
			Issuer: d.str("issuer", "organization", "authority", "issuedBy"),
		}
		return c, c.Title != ""
	},
}

var languageSpec = sectionSpec[types.Language]{
	minFields: 1, maxFields: 1,
	fromText: func(r rawRecord) types.Language {
		return types.Language{Language: r.title, Proficiency: r.field(0)}
	},
	fromMap: func(d record) (types.Language, bool) {
		l := types.Language{
			Language:    d.str("language", "name"),
			Proficiency: d.str("proficiency", "level", "fluency"),
		}
		return l, l.Language != ""
	},
}

var volunteerSpec = sectionSpec[types.VolunteerWork]{
	minFields: 2, maxFields: 2,
	fromText: func(r rawRecord) types.VolunteerWork {
		return types.VolunteerWork{Role: r.title, Organization: r.field(0), Duration: r.field(1), Description: r.description()}
	},
	fromMap: func(d record) (types.VolunteerWork, bool) {
		v := types.VolunteerWork{
			Role:         d.str("role", "title", "position"),
			Organization: d.str("organization", "organisation", "company", "cause"),
			Duration:     d.str("duration", "dates", "period"),
			Description:  d.lines("description", "bullets", "highlights"),
		}
		if v.Duration == "" {
			v.Duration = d.span()
		}
		return v, v.Role != "" || v.Organization != ""
	},
}

var publicationSpec = sectionSpec[types.Publication]{
	minFields: 2, maxFields: 2,
	fromText: func(r rawRecord) types.Publication {
		return types.Publication{Title: r.title, Publication: r.field(0), Date: r.field(1)}
	},
	fromMap: func(d record) (types.Publication, bool) {
		p := types.Publication{
			Title:       d.str("title", "name"),
			Publication: d.str("publication", "publisher", "journal", "venue", "conference"),
			Date:        d.str("date", "year", "published"),
		}
		return p, p.Title != ""
	},
}

var awardSpec = sectionSpec[types.Award]{
	minFields: 2, maxFields: 2,
	fromText: func(r rawRecord) types.Award {
		return types.Award{Title: r.title, Organization: r.field(0), Date: r.field(1)}
	},
	fromMap: func(d record) (types.Award, bool) {
		a := types.Award{
			Title:        d.str("title", "name", "award"),
			Organization: d.str("organization", "issuer", "awardedBy"),
			Date:         d.str("date", "year"),
		}
		return a, a.Title != ""
	},
}

// record is a JSON object returned by the model
type record map[string]any

// value returns the first non-empty value among keys, trying exact matches
// before case-insensitive ones.
func (d record) value(keys ...string) any {
	for _, k := range keys {
		if v, ok := d[k]; ok && !blank(v) {
			return v
		}
	}
	for _, k := range keys {
		for actual, v := range d {
			if strings.EqualFold(actual, k) && !blank(v) {
				return v
			}
		}
	}
	return nil
}

func (d record) str(keys ...string) string {
	return scalar(d.value(keys...))
}

// lines joins list values one per line, stripping bullet markers
func (d record) lines(keys ...string) string {
	return joinItems(d.value(keys...), "\n")
}

// inline joins list values with commas
func (d record) inline(keys ...string) string {
	return joinItems(d.value(keys...), ", ")
}

func (d record) span() string {
	start := d.str("startDate", "start", "from")
	end := d.str("endDate", "end", "to")
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start + " - Present"
	}
	return end
}

func blank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	}
	return false
}

func scalar(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		return joinItems(val, ", ")
	}
	return ""
}

func joinItems(v any, sep string) string {
	items, ok := v.([]any)
	if !ok {
		if sep == "\n" {
			return cleanLines(scalar(v))
		}
		return scalar(v)
	}
	var parts []string
	for _, item := range items {
		if s := stripBullet(scalar(item)); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

// cleanLines strips bullet markers and blank lines from multi-line text
func cleanLines(text string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if s := stripBullet(line); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n")
}
