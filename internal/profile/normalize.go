// Package profile converts schema-less stored profile documents into the
// canonical NormalizedProfile used as generation input.
package profile

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-assist/internal/types"
)

// Normalize builds a NormalizedProfile from a raw stored document.
// It never fails: any value that cannot be coerced to its target shape becomes
// the empty string or an empty slice. Every collection in the result is non-nil.
func Normalize(raw map[string]any) *types.NormalizedProfile {
	p := types.NewNormalizedProfile()
	if len(raw) == 0 {
		return p
	}
	doc := flatten(raw)

	p.Name = doc.field(scalarAliases, "name")
	if p.Name == "" {
		p.Name = strings.TrimSpace(doc.str([]string{"firstName", "first_name"}) + " " + doc.str([]string{"lastName", "last_name"}))
	}
	p.Email = doc.field(scalarAliases, "email")
	p.Phone = doc.field(scalarAliases, "phone")
	p.LinkedIn = doc.field(scalarAliases, "linkedin")
	p.GitHub = doc.field(scalarAliases, "github")
	p.PortfolioURL = doc.field(scalarAliases, "portfolioURL")
	p.Location = locationString(doc.lookup(scalarAliases["location"]))
	p.Gender = doc.field(scalarAliases, "gender")
	p.DateOfBirth = doc.field(scalarAliases, "dateOfBirth")
	p.Citizenship = doc.field(scalarAliases, "citizenship")
	p.TotalExperience = doc.field(scalarAliases, "totalExperience")
	p.VisaStatus = doc.field(scalarAliases, "visaStatus")
	p.Sponsorship = doc.field(scalarAliases, "sponsorship")
	p.Interests = joinInline(doc.lookup(scalarAliases["interests"]))
	p.ExtraRequirements = doc.field(scalarAliases, "extraRequirements")
	p.ExtraInfo = doc.field(scalarAliases, "extraInfo")

	p.Experience = normalizeCollection(doc.lookup(collectionAliases["experience"]), experienceFields, experienceFromDoc, parseExperienceText)
	p.Education = normalizeCollection(doc.lookup(collectionAliases["education"]), educationFields, educationFromDoc, parseEducationText)
	p.Projects = normalizeCollection(doc.lookup(collectionAliases["projects"]), projectFields, projectFromDoc, parseProjectsText)
	p.Certifications = normalizeCollection(doc.lookup(collectionAliases["certifications"]), certificationFields, certificationFromDoc, parseCertificationsText)
	p.Languages = normalizeCollection(doc.lookup(collectionAliases["languages"]), languageFields, languageFromDoc, parseLanguagesText)
	p.VolunteerWork = normalizeCollection(doc.lookup(collectionAliases["volunteerWork"]), volunteerFields, volunteerFromDoc, parseVolunteerText)
	p.Publications = normalizeCollection(doc.lookup(collectionAliases["publications"]), publicationFields, publicationFromDoc, parsePublicationsText)
	p.Awards = normalizeCollection(doc.lookup(collectionAliases["awards"]), awardFields, awardFromDoc, parseAwardsText)
	p.TechnicalTools = normalizeStringList(doc.lookup(collectionAliases["technicalTools"]))
	p.Skills = normalizeStringList(doc.lookup(collectionAliases["skills"]))

	return p
}

// ToDocument converts a normalized profile back into document form, as it
// would be read from the store. Normalize(ToDocument(p)) equals p.
func ToDocument(p *types.NormalizedProfile) map[string]any {
	doc := map[string]any{}
	if p == nil {
		return doc
	}
	data, err := json.Marshal(p)
	if err != nil {
		return doc
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return map[string]any{}
	}
	return doc
}

// normalizeCollection runs the ordered extraction strategies for one
// collection field: structured entries, map-encoded lists, free text, default.
func normalizeCollection[T any](v any, table aliasTable, fromDoc func(document) (T, bool), fromText func(string) []T) []T {
	out := []T{}
	for _, entry := range listEntries(v, table) {
		switch e := entry.(type) {
		case map[string]any:
			if rec, ok := fromDoc(document(e)); ok {
				out = append(out, rec)
			}
		case string:
			out = append(out, fromText(e)...)
		}
	}
	return out
}

// normalizeStringList flattens arrays, category maps, objects and delimited
// strings into a list of trimmed, non-empty items. Order is preserved.
func normalizeStringList(v any) []string {
	out := []string{}
	switch val := v.(type) {
	case string:
		return splitList(val)
	case []any:
		for _, item := range val {
			out = append(out, normalizeStringList(item)...)
		}
	case []string:
		for _, item := range val {
			out = append(out, splitList(item)...)
		}
	case map[string]any:
		d := document(val)
		if name := d.str(stringItemFields); name != "" {
			return []string{name}
		}
		for _, item := range orderedValues(val) {
			out = append(out, normalizeStringList(item)...)
		}
	case nil:
	default:
		if s := asString(val); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// joinInline renders a scalar or list value as comma separated text
func joinInline(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.Join(normalizeStringList(v), ", ")
}

// locationString accepts a plain address or a structured {city, state, country} object
func locationString(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return asString(v)
	}
	d := document(m)
	var parts []string
	for _, key := range []string{"street", "line1", "city", "state", "region", "country", "zip", "postalCode"} {
		if s := d.str([]string{key}); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// dateSpan builds "start - end" from split date fields
func dateSpan(d document, table aliasTable) string {
	start := d.field(table, "startDate")
	end := d.field(table, "endDate")
	if end == "" && d.str([]string{"current", "currentlyWorking", "isCurrent", "present"}) == "Yes" {
		end = "Present"
	}
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start + " - Present"
	}
	return end
}

func experienceFromDoc(d document) (types.Experience, bool) {
	exp := types.Experience{
		Company:     d.field(experienceFields, "company"),
		Role:        d.field(experienceFields, "role"),
		Duration:    d.field(experienceFields, "duration"),
		Description: d.field(experienceFields, "description"),
	}
	if exp.Duration == "" {
		exp.Duration = dateSpan(d, experienceFields)
	}
	return exp, exp.Company != "" || exp.Role != ""
}

func educationFromDoc(d document) (types.Education, bool) {
	edu := types.Education{
		Degree:     d.field(educationFields, "degree"),
		University: d.field(educationFields, "university"),
		Year:       d.field(educationFields, "year"),
		Duration:   d.field(educationFields, "duration"),
	}
	if edu.Duration == "" {
		edu.Duration = dateSpan(d, educationFields)
	}
	return edu, edu.Degree != "" || edu.University != ""
}

func projectFromDoc(d document) (types.Project, bool) {
	proj := types.Project{
		Title:       d.field(projectFields, "title"),
		Tech:        joinInline(d.lookup(projectFields["tech"])),
		Description: d.field(projectFields, "description"),
	}
	return proj, proj.Title != ""
}

func certificationFromDoc(d document) (types.Certification, bool) {
	cert := types.Certification{
		Title:  d.field(certificationFields, "title"),
		Issuer: d.field(certificationFields, "issuer"),
	}
	return cert, cert.Title != ""
}

func languageFromDoc(d document) (types.Language, bool) {
	lang := types.Language{
		Language:    d.field(languageFields, "language"),
		Proficiency: d.field(languageFields, "proficiency"),
	}
	return lang, lang.Language != ""
}

func volunteerFromDoc(d document) (types.VolunteerWork, bool) {
	vol := types.VolunteerWork{
		Role:         d.field(volunteerFields, "role"),
		Organization: d.field(volunteerFields, "organization"),
		Duration:     d.field(volunteerFields, "duration"),
		Description:  d.field(volunteerFields, "description"),
	}
	if vol.Duration == "" {
		vol.Duration = dateSpan(d, volunteerFields)
	}
	return vol, vol.Role != "" || vol.Organization != ""
}

func publicationFromDoc(d document) (types.Publication, bool) {
	pub := types.Publication{
		Title:       d.field(publicationFields, "title"),
		Publication: d.field(publicationFields, "publication"),
		Date:        d.field(publicationFields, "date"),
	}
	return pub, pub.Title != ""
}

func awardFromDoc(d document) (types.Award, bool) {
	award := types.Award{
		Title:        d.field(awardFields, "title"),
		Organization: d.field(awardFields, "organization"),
		Date:         d.field(awardFields, "date"),
	}
	return award, award.Title != ""
}
