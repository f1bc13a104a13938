package resumes

import (
	"time"

	"resumeforge/internal/parsing"
)

// ResumeResponse is the outward-facing representation of a saved resume.
type ResumeResponse struct {
	ResumeID        string                    `json:"resumeId"`
	Name            string                    `json:"name"`
	MarkdownContent string                    `json:"markdownContent"`
	JSONData        *parsing.ParsedResumeData `json:"jsonData,omitempty"`
	AtsScore        *int                      `json:"atsScore,omitempty"`
	CreatedAt       time.Time                 `json:"createdAt"`
	UpdatedAt       time.Time                 `json:"updatedAt"`
}

// ResumeSummary is the list representation: metadata without document bodies.
type ResumeSummary struct {
	ResumeID  string    `json:"resumeId"`
	Name      string    `json:"name"`
	AtsScore  *int      `json:"atsScore,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toResponse(rec Record) ResumeResponse {
	return ResumeResponse{
		ResumeID:        rec.ID,
		Name:            rec.Name,
		MarkdownContent: rec.MarkdownContent,
		JSONData:        rec.JSONData,
		AtsScore:        rec.AtsScore,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
}

func toSummary(rec Record) ResumeSummary {
	return ResumeSummary{
		ResumeID:  rec.ID,
		Name:      rec.Name,
		AtsScore:  rec.AtsScore,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
