// Package types provides type definitions for structured data used throughout the resume pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

// NormalizedProfile is the canonical, array-safe form of a stored user profile.
// JSON field names match the document store so a marshaled profile can be
// normalized again without loss.
type NormalizedProfile struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	LinkedIn        string `json:"linkedin"`
	GitHub          string `json:"github"`
	PortfolioURL    string `json:"portfolioURL"`
	Location        string `json:"location"`
	Gender          string `json:"gender"`
	DateOfBirth     string `json:"dateOfBirth"`
	Citizenship     string `json:"citizenship"`
	TotalExperience string `json:"totalExperience"`
	VisaStatus      string `json:"visaStatus"`
	Sponsorship     string `json:"sponsorship"`

	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
	Languages      []Language      `json:"languages"`
	TechnicalTools []string        `json:"technicalTools"`
	VolunteerWork  []VolunteerWork `json:"volunteerWork"`
	Publications   []Publication   `json:"publications"`
	Awards         []Award         `json:"awards"`
	Skills         []string        `json:"skills"`

	Interests         string `json:"interests"`
	ExtraRequirements string `json:"extraRequirements"`
	ExtraInfo         string `json:"extraInfo"`
}

// Experience is a single employment entry
type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Duration    string `json:"duration"`
	Description string `json:"description,omitempty"`
}

// Education is a single degree or course of study
type Education struct {
	Degree     string `json:"degree"`
	University string `json:"university"`
	Year       string `json:"year,omitempty"`
	Duration   string `json:"duration,omitempty"`
}

// Project is a personal or professional project
type Project struct {
	Title       string `json:"title"`
	Tech        string `json:"tech"`
	Description string `json:"description,omitempty"`
}

// Certification is a professional certification
type Certification struct {
	Title  string `json:"title"`
	Issuer string `json:"issuer"`
}

// Language is a spoken language and the candidate's proficiency in it
type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

// VolunteerWork is an unpaid role
type VolunteerWork struct {
	Role         string `json:"role"`
	Organization string `json:"organization"`
	Duration     string `json:"duration"`
	Description  string `json:"description,omitempty"`
}

// Publication is a published article, paper or book
type Publication struct {
	Title       string `json:"title"`
	Publication string `json:"publication"`
	Date        string `json:"date"`
}

// Award is an honor or recognition
type Award struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Date         string `json:"date"`
}

// NewNormalizedProfile returns a profile whose collections are all empty, non-nil slices.
func NewNormalizedProfile() *NormalizedProfile {
	return &NormalizedProfile{
		Experience:     []Experience{},
		Education:      []Education{},
		Projects:       []Project{},
		Certifications: []Certification{},
		Languages:      []Language{},
		TechnicalTools: []string{},
		VolunteerWork:  []VolunteerWork{},
		Publications:   []Publication{},
		Awards:         []Award{},
		Skills:         []string{},
	}
}

// IsZero reports whether every field of the experience entry is empty
func (e Experience) IsZero() bool {
	return e.Company == "" && e.Role == "" && e.Duration == "" && e.Description == ""
}

// IsZero reports whether every field of the education entry is empty
func (e Education) IsZero() bool {
	return e.Degree == "" && e.University == "" && e.Year == "" && e.Duration == ""
}
