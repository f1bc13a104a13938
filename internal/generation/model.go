package generation

import (
	"errors"
	"fmt"
	"strings"
)

// Career levels drive section ordering in the generated document.
const (
	LevelStudentIntern = "Student/Intern"
	LevelBeginner      = "Beginner"
	LevelMidLevel      = "Mid-Level"
	LevelExecutive     = "Executive"
)

// ValidationError marks malformed flow input.
var ValidationError = errors.New("validation error")

// InterviewAnswer pairs a generated question with the user's answer.
type InterviewAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Education is one schooling entry of the profile.
type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	GraduationDate string `json:"graduationDate"`
}

// WorkExperience is one employment entry of the profile.
type WorkExperience struct {
	Company          string `json:"company"`
	Role             string `json:"role"`
	Dates            string `json:"dates"`
	Responsibilities string `json:"responsibilities"`
}

// Profile is the structured form input driving resume generation.
type Profile struct {
	Name              string            `json:"name"`
	ContactInfo       string            `json:"contactInfo"`
	TargetJobTitle    string            `json:"targetJobTitle"`
	YearsOfExperience int               `json:"yearsOfExperience"`
	CareerLevel       string            `json:"careerLevel"`
	Education         []Education       `json:"education"`
	WorkExperience    []WorkExperience  `json:"workExperience"`
	Skills            []string          `json:"skills"`
	Projects          []string          `json:"projects,omitempty"`
	Certifications    []string          `json:"certifications,omitempty"`
	JobDescription    string            `json:"jobDescription,omitempty"`
	EmphasisSkills    []string          `json:"emphasisSkills,omitempty"`
	LinkedInURL       string            `json:"linkedinProfileUrl,omitempty"`
	InterviewAnswers  []InterviewAnswer `json:"interviewAnswers,omitempty"`
}

// Validate enforces the profile invariants: at least one education and one
// work experience entry, non-empty skills, and a known career level.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ValidationError)
	}
	if strings.TrimSpace(p.TargetJobTitle) == "" {
		return fmt.Errorf("%w: targetJobTitle is required", ValidationError)
	}
	switch p.CareerLevel {
	case LevelStudentIntern, LevelBeginner, LevelMidLevel, LevelExecutive:
	default:
		return fmt.Errorf("%w: unknown careerLevel %q", ValidationError, p.CareerLevel)
	}
	if len(p.Education) == 0 {
		return fmt.Errorf("%w: at least one education entry is required", ValidationError)
	}
	if len(p.WorkExperience) == 0 {
		return fmt.Errorf("%w: at least one work experience entry is required", ValidationError)
	}
	if len(p.Skills) == 0 {
		return fmt.Errorf("%w: skills must not be empty", ValidationError)
	}
	return nil
}
