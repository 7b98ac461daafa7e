package parsing

import (
	"testing"

	"github.com/jonathan/resume-assist/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ExperienceTextBlock(t *testing.T) {
	doc := map[string]any{
		"experience": "**Backend Engineer** | Acme | 2021 - Present\n• Built billing APIs in Go\n• Cut p99 latency by 40%\n\n**Intern** | Globex | 2020",
	}

	result := Parse(doc)

	require.Len(t, result.Resume.Experience, 2)
	assert.Equal(t, types.Experience{
		Role:        "Backend Engineer",
		Company:     "Acme",
		Duration:    "2021 - Present",
		Description: "Built billing APIs in Go\nCut p99 latency by 40%",
	}, result.Resume.Experience[0])
	assert.Equal(t, "Intern", result.Resume.Experience[1].Role)
	assert.Equal(t, "", result.Resume.Experience[1].Description)
	assert.Equal(t, StatusParsed, result.Sections[SectionExperience])
}

func TestParse_HeaderWithoutBlankLineStartsNewRecord(t *testing.T) {
	doc := map[string]any{
		"projects": "**Resume Bot** | Go, Gemini\n- Generates resumes\n**Tracker** | React\n* Tracks applications",
	}

	result := Parse(doc)

	require.Len(t, result.Resume.Projects, 2)
	assert.Equal(t, "Generates resumes", result.Resume.Projects[0].Description)
	assert.Equal(t, types.Project{Title: "Tracker", Tech: "React", Description: "Tracks applications"}, result.Resume.Projects[1])
}

func TestParse_DropsRecordsWithoutMatchingHeader(t *testing.T) {
	doc := map[string]any{
		"experience": "Worked at Acme for a while\n\n**Engineer** | Acme | 2020 - 2022\n\n**Missing duration** | Acme",
		"awards":     "Won a hackathon once",
	}

	result := Parse(doc)

	require.Len(t, result.Resume.Experience, 1)
	assert.Equal(t, "Engineer", result.Resume.Experience[0].Role)
	assert.Equal(t, StatusPartial, result.Sections[SectionExperience])

	assert.Empty(t, result.Resume.Awards)
	assert.NotNil(t, result.Resume.Awards)
	assert.Equal(t, StatusUnparsed, result.Sections[SectionAwards])
	assert.Equal(t, []string{SectionAwards, SectionExperience}, result.Degraded())
}

func TestParse_DistinguishesAbsentFromUnparsed(t *testing.T) {
	doc := map[string]any{
		"certifications": "",
		"languages":      []any{},
		"publications":   "no structure here",
	}

	result := Parse(doc)

	assert.Equal(t, StatusAbsent, result.Sections[SectionCertifications])
	assert.Equal(t, StatusAbsent, result.Sections[SectionLanguages])
	assert.Equal(t, StatusAbsent, result.Sections[SectionAwards])
	assert.Equal(t, StatusUnparsed, result.Sections[SectionPublications])
}

func TestParse_EducationOptionalYear(t *testing.T) {
	doc := map[string]any{
		"education": "**B.Tech Computer Science** | XYZ University | 2020\n\n**Class XII** | City School",
	}

	result := Parse(doc)

	assert.Equal(t, []types.Education{
		{Degree: "B.Tech Computer Science", University: "XYZ University", Year: "2020"},
		{Degree: "Class XII", University: "City School"},
	}, result.Resume.Education)
}

func TestParse_ArrayOfObjects(t *testing.T) {
	doc := map[string]any{
		"experience": []any{
			map[string]any{
				"title":    "SRE",
				"company":  "Initech",
				"duration": "2019 - 2021",
				"bullets":  []any{"• Ran on-call", "Automated deploys"},
			},
			map[string]any{"unrelated": true},
			"**Analyst** | Initrode | 2018",
			42.0,
		},
		"projects": []any{
			map[string]any{"name": "CLI", "technologies": []any{"Go", "Cobra"}},
		},
	}

	result := Parse(doc)

	require.Len(t, result.Resume.Experience, 2)
	assert.Equal(t, "Ran on-call\nAutomated deploys", result.Resume.Experience[0].Description)
	assert.Equal(t, "Initrode", result.Resume.Experience[1].Company)
	assert.Equal(t, StatusPartial, result.Sections[SectionExperience])
	assert.Equal(t, "Go, Cobra", result.Resume.Projects[0].Tech)
}

func TestParse_SingleObjectIsWrapped(t *testing.T) {
	doc := map[string]any{
		"certifications": map[string]any{"name": "CKA", "issuer": "CNCF"},
	}

	result := Parse(doc)

	assert.Equal(t, []types.Certification{{Title: "CKA", Issuer: "CNCF"}}, result.Resume.Certifications)
	assert.Equal(t, StatusParsed, result.Sections[SectionCertifications])
}

func TestParse_WrongShapesBecomeEmptyCollections(t *testing.T) {
	doc := map[string]any{
		"experience":   12.0,
		"education":    true,
		"achievements": map[string]any{"x": "y"},
	}

	result := Parse(doc)

	assert.NotNil(t, result.Resume.Experience)
	assert.Empty(t, result.Resume.Experience)
	assert.Equal(t, StatusUnparsed, result.Sections[SectionExperience])
	assert.Empty(t, result.Resume.Education)
	assert.NotNil(t, result.Resume.Achievements)
}

func TestParse_NilDocument(t *testing.T) {
	result := Parse(nil)

	require.NotNil(t, result.Resume)
	assert.NotNil(t, result.Resume.Experience)
	assert.NotNil(t, result.Resume.Awards)
	assert.NotNil(t, result.Resume.SoftSkills)
	for _, name := range RecordSections {
		assert.Equal(t, StatusAbsent, result.Sections[name], name)
	}
	assert.Empty(t, result.Degraded())
}

func TestParse_SkillsDisplayString(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "array", value: []any{"Go", "SQL", "Docker"}, expected: "Go, SQL, Docker"},
		{name: "string passthrough", value: "Go | SQL", expected: "Go | SQL"},
		{name: "categories", value: map[string]any{"Languages": []any{"Go", "Python"}, "Cloud": "AWS"}, expected: "Cloud: AWS\nLanguages: Go, Python"},
		{
			name: "array of category objects",
			value: []any{
				map[string]any{"category": "Languages", "items": []any{"Go", "Python"}},
				map[string]any{"category": "Cloud", "skills": "AWS, GCP"},
			},
			expected: "Languages: Go, Python\nCloud: AWS, GCP",
		},
		{
			name:     "named objects mixed with strings",
			value:    []any{"SQL", map[string]any{"name": "Kubernetes", "level": "expert"}},
			expected: "SQL\nKubernetes",
		},
		{name: "absent", value: nil, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(map[string]any{"skills": tt.value})
			assert.Equal(t, tt.expected, result.Resume.Skills)
		})
	}
}

func TestParse_HeaderObjectAndText(t *testing.T) {
	fromObject := Parse(map[string]any{
		"header": map[string]any{"name": "Asha Rao", "email": "a@x.com", "website": "asha.dev"},
	})
	assert.Equal(t, types.Contact{Name: "Asha Rao", Email: "a@x.com", Portfolio: "asha.dev"}, fromObject.Resume.Header)

	fromText := Parse(map[string]any{
		"header": "**Asha Rao**\na@x.com | +91 98765 43210 | Pune, India | linkedin.com/in/asha | github.com/asha | https://asha.dev",
	})
	assert.Equal(t, types.Contact{
		Name:      "Asha Rao",
		Email:     "a@x.com",
		Phone:     "+91 98765 43210",
		Location:  "Pune, India",
		LinkedIn:  "linkedin.com/in/asha",
		GitHub:    "github.com/asha",
		Portfolio: "https://asha.dev",
	}, fromText.Resume.Header)
}

func TestParse_ListsAndText(t *testing.T) {
	result := Parse(map[string]any{
		"summary":      []any{"Backend engineer.", "Loves Go."},
		"achievements": "• Top performer 2022\n- Promoted twice",
		"softSkills":   []any{"Communication", " ", "Ownership"},
		"interests":    []any{"chess", "running"},
	})

	assert.Equal(t, "Backend engineer. Loves Go.", result.Resume.Summary)
	assert.Equal(t, []string{"Top performer 2022", "Promoted twice"}, result.Resume.Achievements)
	assert.Equal(t, []string{"Communication", "Ownership"}, result.Resume.SoftSkills)
	assert.Equal(t, "chess, running", result.Resume.Interests)
}

func TestSanitize(t *testing.T) {
	r := Sanitize(&types.GeneratedResume{Summary: "x"})

	assert.Equal(t, "x", r.Summary)
	assert.NotNil(t, r.Experience)
	assert.NotNil(t, r.Publications)
	assert.NotNil(t, Sanitize(nil).Education)
}
