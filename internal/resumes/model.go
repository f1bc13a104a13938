package resumes

import (
	"time"

	"resumeforge/internal/parsing"
)

// Record is a saved resume owned by a user.
type Record struct {
	ID              string
	UserID          string
	Name            string
	MarkdownContent string
	JSONData        *parsing.ParsedResumeData
	AtsScore        *int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
