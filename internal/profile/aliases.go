package profile

// aliasTable maps a canonical field name to the source keys it may be stored under,
// in priority order. The canonical name is always listed first so normalized
// output reads back unchanged.
type aliasTable map[string][]string

// scalarAliases covers the identity and free-text fields of a profile document.
var scalarAliases = aliasTable{
	"name":              {"name", "fullName", "full_name", "displayName", "candidateName"},
	"email":             {"email", "emailAddress", "email_address", "contactEmail", "mail"},
	"phone":             {"phone", "phoneNumber", "phone_number", "mobile", "mobileNumber", "contactNumber"},
	"linkedin":          {"linkedin", "linkedIn", "linkedinUrl", "linkedinURL", "linkedin_url", "linkedinProfile"},
	"github":            {"github", "gitHub", "githubUrl", "githubURL", "github_url", "githubProfile"},
	"portfolioURL":      {"portfolioURL", "portfolioUrl", "portfolio", "website", "personalWebsite", "portfolio_url"},
	"location":          {"location", "address", "currentLocation", "city", "residence"},
	"gender":            {"gender", "sex"},
	"dateOfBirth":       {"dateOfBirth", "dob", "birthDate", "date_of_birth", "birthday"},
	"citizenship":       {"citizenship", "nationality", "citizen"},
	"totalExperience":   {"totalExperience", "total_experience", "yearsOfExperience", "experienceYears", "yearsExperience", "workExperienceYears"},
	"visaStatus":        {"visaStatus", "visa_status", "visa", "workAuthorization", "workPermit"},
	"sponsorship":       {"sponsorship", "needsSponsorship", "requireSponsorship", "sponsorshipRequired", "requiresSponsorship"},
	"interests":         {"interests", "hobbies", "hobbiesAndInterests"},
	"extraRequirements": {"extraRequirements", "extra_requirements", "specialRequirements", "requirements"},
	"extraInfo":         {"extraInfo", "extra_info", "additionalInfo", "additionalInformation", "notes"},
}

// collectionAliases covers the list-valued fields of a profile document.
var collectionAliases = aliasTable{
	"experience":     {"experience", "experiences", "workExperience", "work_experience", "employment", "employmentHistory", "jobs", "workHistory"},
	"education":      {"education", "educations", "educationDetails", "academics", "qualifications"},
	"projects":       {"projects", "project", "personalProjects", "portfolioProjects"},
	"certifications": {"certifications", "certificates", "certification", "licenses"},
	"languages":      {"languages", "language", "spokenLanguages", "languagesKnown"},
	"technicalTools": {"technicalTools", "technical_tools", "tools", "toolsAndTechnologies", "technologies", "softwareTools"},
	"volunteerWork":  {"volunteerWork", "volunteer_work", "volunteer", "volunteering", "volunteerExperience"},
	"publications":   {"publications", "publication", "papers", "articles"},
	"awards":         {"awards", "award", "honors", "achievements", "honorsAndAwards"},
	"skills":         {"skills", "skillSet", "skillset", "keySkills", "coreSkills", "technicalSkills"},
}

// containerKeys hold nested sections written by the multi-step profile form.
var containerKeys = []string{"profile", "personalInfo", "personalDetails", "basicInfo", "contactInfo", "professionalInfo", "steps", "formData"}

// Record-level alias tables, one per collection entity.
var (
	experienceFields = aliasTable{
		"company":     {"company", "companyName", "organization", "employer", "organisation", "firm"},
		"role":        {"role", "title", "position", "jobTitle", "designation"},
		"duration":    {"duration", "period", "dates", "dateRange", "timeline", "tenure"},
		"description": {"description", "responsibilities", "details", "summary", "achievements", "highlights"},
		"startDate":   {"startDate", "start_date", "from", "start"},
		"endDate":     {"endDate", "end_date", "to", "end"},
	}
	educationFields = aliasTable{
		"degree":     {"degree", "qualification", "course", "program", "degreeName", "fieldOfStudy"},
		"university": {"university", "institution", "school", "college", "institute", "universityName"},
		"year":       {"year", "graduationYear", "passingYear", "yearOfPassing", "completionYear"},
		"duration":   {"duration", "period", "dates", "dateRange"},
		"startDate":  {"startDate", "start_date", "from", "start"},
		"endDate":    {"endDate", "end_date", "to", "end"},
	}
	projectFields = aliasTable{
		"title":       {"title", "name", "projectName", "projectTitle"},
		"tech":        {"tech", "technologies", "techStack", "stack", "tools", "technologiesUsed"},
		"description": {"description", "details", "summary", "highlights"},
	}
	certificationFields = aliasTable{
		"title":  {"title", "name", "certification", "certificateName", "certificationName"},
		"issuer": {"issuer", "issuedBy", "organization", "authority", "provider", "issuingOrganization"},
	}
	languageFields = aliasTable{
		"language":    {"language", "name", "lang"},
		"proficiency": {"proficiency", "level", "fluency", "proficiencyLevel"},
	}
	volunteerFields = aliasTable{
		"role":         {"role", "title", "position"},
		"organization": {"organization", "organisation", "company", "org", "organizationName"},
		"duration":     {"duration", "period", "dates", "dateRange"},
		"description":  {"description", "details", "summary", "responsibilities"},
		"startDate":    {"startDate", "start_date", "from", "start"},
		"endDate":      {"endDate", "end_date", "to", "end"},
	}
	publicationFields = aliasTable{
		"title":       {"title", "name", "paperTitle"},
		"publication": {"publication", "publisher", "journal", "venue", "conference"},
		"date":        {"date", "year", "publishedDate", "publicationDate"},
	}
	awardFields = aliasTable{
		"title":        {"title", "name", "award", "awardName"},
		"organization": {"organization", "issuer", "awardedBy", "organisation", "presenter"},
		"date":         {"date", "year", "awardDate"},
	}
	// stringItemFields are keys holding the text of a skill or tool stored as an object
	stringItemFields = []string{"name", "skill", "tool", "title", "value", "label"}
)
