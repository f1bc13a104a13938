package parsing

// ExperienceEntry is one best-effort structured work history item.
type ExperienceEntry struct {
	Company     string `json:"company,omitempty"`
	Role        string `json:"role,omitempty"`
	Dates       string `json:"dates,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationEntry is one best-effort structured education item.
type EducationEntry struct {
	Institution    string `json:"institution,omitempty"`
	Degree         string `json:"degree,omitempty"`
	GraduationDate string `json:"graduationDate,omitempty"`
}

// ProjectEntry is one best-effort structured project item.
type ProjectEntry struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// ParsedResumeData is the structured output of the parsing flow. Every field
// except RawText is optional; structuring is best-effort and the model is
// instructed to omit fields it cannot confidently infer. RawText always holds
// the original extracted text as an authoritative fallback copy.
type ParsedResumeData struct {
	Name           string            `json:"name,omitempty"`
	Email          string            `json:"email,omitempty"`
	Phone          string            `json:"phone,omitempty"`
	LinkedInURL    string            `json:"linkedinProfileUrl,omitempty"`
	Summary        string            `json:"summary,omitempty"`
	Skills         []string          `json:"skills,omitempty"`
	Experience     []ExperienceEntry `json:"experience,omitempty"`
	Education      []EducationEntry  `json:"education,omitempty"`
	Projects       []ProjectEntry    `json:"projects,omitempty"`
	Certifications []string          `json:"certifications,omitempty"`
	RawText        string            `json:"rawText"`
}
