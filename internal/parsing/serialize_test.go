package parsing

import (
	"testing"

	"github.com/jonathan/resume-assist/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullResume() *types.GeneratedResume {
	r := types.NewGeneratedResume()
	r.Header = types.Contact{Name: "Asha Rao", Email: "a@x.com", Phone: "+91 98765 43210", LinkedIn: "linkedin.com/in/asha"}
	r.Summary = "Backend engineer with 3 years of experience building payment systems."
	r.Skills = "Go, PostgreSQL, Kubernetes"
	r.TechnicalTools = "Git, Docker"
	r.Experience = []types.Experience{
		{Role: "Backend Engineer", Company: "Acme", Duration: "2021 - Present", Description: "Built billing APIs\nCut p99 latency by 40%"},
		{Role: "Intern", Company: "Globex", Duration: ""},
	}
	r.Education = []types.Education{
		{Degree: "B.Tech", University: "XYZ University", Year: "2020"},
		{Degree: "M.Tech", University: "ABC Institute", Duration: "2020 - 2022"},
		{Degree: "Diploma", University: "City College"},
	}
	r.Projects = []types.Project{{Title: "Resume Bot", Tech: "Go, Gemini", Description: "Generates resumes"}}
	r.Certifications = []types.Certification{{Title: "CKA", Issuer: "CNCF"}, {Title: "Go Basics", Issuer: ""}}
	r.Languages = []types.Language{{Language: "English", Proficiency: "Fluent"}}
	r.VolunteerWork = []types.VolunteerWork{{Role: "Mentor", Organization: "Code Club", Duration: "2021", Description: "Taught kids Python"}}
	r.Publications = []types.Publication{{Title: "Fast Queues", Publication: "JOSS", Date: "2021"}}
	r.Awards = []types.Award{{Title: "Hackathon Winner", Organization: "ACM", Date: "2019"}}
	r.Achievements = []string{"Top performer 2022"}
	r.SoftSkills = []string{"Ownership"}
	r.AdditionalInfo = "Open to relocation"
	r.Interests = "chess, running"
	return r
}

func TestSerialize_RoundTrip(t *testing.T) {
	original := fullResume()

	result := Parse(Serialize(original))

	assert.Equal(t, original, result.Resume)
	for _, name := range RecordSections {
		assert.Equal(t, StatusParsed, result.Sections[name], name)
	}
}

func TestSerialize_RoundTripEmpty(t *testing.T) {
	original := types.NewGeneratedResume()

	result := Parse(Serialize(original))

	assert.Equal(t, original, result.Resume)
	for _, name := range RecordSections {
		assert.Equal(t, StatusAbsent, result.Sections[name], name)
	}
}

func TestFormatSection(t *testing.T) {
	r := fullResume()

	assert.Equal(t,
		"**Backend Engineer** | Acme | 2021 - Present\n• Built billing APIs\n• Cut p99 latency by 40%\n\n**Intern** | Globex | ",
		FormatSection(SectionExperience, r))
	assert.Equal(t,
		"**B.Tech** | XYZ University | 2020\n\n**M.Tech** | ABC Institute |  | 2020 - 2022\n\n**Diploma** | City College",
		FormatSection(SectionEducation, r))
	assert.Equal(t, "**English** | Fluent", FormatSection(SectionLanguages, r))
	assert.Equal(t, "", FormatSection("unknown", r))
}

func TestSerialize_ParseIsStableAfterOnePass(t *testing.T) {
	doc := map[string]any{
		"experience": "**Engineer** | Acme | 2020\n• did things\n\n**Dev** | Beta | 2019",
		"skills":     []any{"Go", "SQL"},
	}

	first := Parse(doc).Resume
	second := Parse(Serialize(first)).Resume

	require.Len(t, second.Experience, 2)
	assert.Equal(t, first, second)
}
