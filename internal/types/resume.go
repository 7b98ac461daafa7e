package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// StrategyType is the career-stage classification used to steer generation
type StrategyType string

const (
	// StrategyFresher is for candidates with less than two years of experience
	StrategyFresher StrategyType = "fresher"
	// StrategyExperienced is for candidates with two or more years of experience
	StrategyExperienced StrategyType = "experienced"
)

// RequirementLevel is the seniority band derived from years of experience
type RequirementLevel string

// Requirement levels
const (
	LevelEntry  RequirementLevel = "entry-level"
	LevelMid    RequirementLevel = "mid-level"
	LevelSenior RequirementLevel = "senior"
)

// ResumeStrategy is the derived career-stage classification for one generation request
type ResumeStrategy struct {
	Type             StrategyType     `json:"type"`
	Years            int              `json:"years"`
	RequirementLevel RequirementLevel `json:"requirementLevel"`
	Recommendation   string           `json:"recommendation"`
}

// Contact is the header block of a generated resume
type Contact struct {
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// IsZero reports whether the contact block carries no data
func (c Contact) IsZero() bool {
	return c == Contact{}
}

// WithProfile returns c with its empty fields filled from the profile
func (c Contact) WithProfile(p *NormalizedProfile) Contact {
	if p == nil {
		return c
	}
	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = src
		}
	}
	fill(&c.Name, p.Name)
	fill(&c.Email, p.Email)
	fill(&c.Phone, p.Phone)
	fill(&c.Location, p.Location)
	fill(&c.LinkedIn, p.LinkedIn)
	fill(&c.GitHub, p.GitHub)
	fill(&c.Portfolio, p.PortfolioURL)
	return c
}

// GeneratedResume is the structured resume recovered from model output.
// Collections are always non-nil after parsing; Skills and TechnicalTools
// are display strings rather than token lists.
type GeneratedResume struct {
	Header         Contact         `json:"header"`
	Summary        string          `json:"summary"`
	Skills         string          `json:"skills"`
	TechnicalTools string          `json:"technicalTools"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
	Languages      []Language      `json:"languages"`
	VolunteerWork  []VolunteerWork `json:"volunteerWork"`
	Publications   []Publication   `json:"publications"`
	Awards         []Award         `json:"awards"`
	Achievements   []string        `json:"achievements"`
	SoftSkills     []string        `json:"softSkills"`
	AdditionalInfo string          `json:"additionalInfo,omitempty"`
	Interests      string          `json:"interests,omitempty"`
	LatexCode      string          `json:"latexCode,omitempty"`
}

// NewGeneratedResume returns a resume whose collections are all empty, non-nil slices.
func NewGeneratedResume() *GeneratedResume {
	return &GeneratedResume{
		Experience:     []Experience{},
		Education:      []Education{},
		Projects:       []Project{},
		Certifications: []Certification{},
		Languages:      []Language{},
		VolunteerWork:  []VolunteerWork{},
		Publications:   []Publication{},
		Awards:         []Award{},
		Achievements:   []string{},
		SoftSkills:     []string{},
	}
}

// ResumeRecord is a persisted generated resume with its generation metadata.
// ProfileSnapshot is a denormalized copy of the profile the resume was built from.
type ResumeRecord struct {
	ID              uuid.UUID          `json:"id"`
	UserID          string             `json:"userId,omitempty"`
	Role            string             `json:"role"`
	Model           string             `json:"model"`
	GeneratedAt     time.Time          `json:"generatedAt"`
	Strategy        ResumeStrategy     `json:"strategy"`
	Resume          *GeneratedResume   `json:"resume"`
	ProfileSnapshot *NormalizedProfile `json:"profileSnapshot"`
	Sections        map[string]string  `json:"sections,omitempty"`
}
