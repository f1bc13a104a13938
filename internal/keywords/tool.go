package keywords

import (
	"context"
	"encoding/json"

	"resumeforge/internal/llm"
)

// Tool exposes keyword suggestion as a callable the model may invoke
// mid-generation.
type Tool struct{}

type toolInput struct {
	JobTitle               string   `json:"jobTitle,omitempty"`
	Industry               string   `json:"industry,omitempty"`
	JobDescriptionKeywords []string `json:"jobDescriptionKeywords,omitempty"`
	Count                  int      `json:"count,omitempty"`
}

func (Tool) Name() string {
	return "atsKeywordRetriever"
}

func (Tool) Description() string {
	return "Retrieves a list of ATS-friendly keywords based on job title, industry, or existing keywords. Use this to enhance resume content for better ATS performance."
}

func (Tool) InputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"jobTitle": map[string]any{
				"type":        "string",
				"description": "The target job title.",
			},
			"industry": map[string]any{
				"type":        "string",
				"description": "The industry of the job.",
			},
			"jobDescriptionKeywords": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Keywords extracted from the job description.",
			},
			"count": map[string]any{
				"type":        "integer",
				"description": "Number of keywords to retrieve.",
			},
		},
	}
}

func (Tool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var in toolInput
	if len(input) > 0 {
		// Malformed arguments degrade to the generic fallback set.
		_ = json.Unmarshal(input, &in)
	}
	suggested := Suggest(Input{
		JobTitle:     in.JobTitle,
		Industry:     in.Industry,
		SeedKeywords: in.JobDescriptionKeywords,
		Count:        in.Count,
	})
	return json.Marshal(suggested)
}

var _ llm.Tool = Tool{}
