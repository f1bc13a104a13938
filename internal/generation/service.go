package generation

import (
	"context"
	_ "embed"
	"encoding/json"
	"strings"

	"resumeforge/internal/keywords"
	"resumeforge/internal/llm"
	"resumeforge/internal/shared/metrics"
)

//go:embed prompts/generate.tmpl
var generatePromptText string

var generatePrompt = llm.MustTemplate("generation/generate", generatePromptText)

// Service turns a profile into a full resume document.
type Service struct {
	Gateway llm.Gateway
}

type generateOutput struct {
	ResumeMarkdown string `json:"resumeMarkdown"`
}

// Generate builds the generation prompt from the profile and returns the
// produced resume markdown. The keyword tool is attached so the model can
// fetch ATS keyword suggestions keyed off the job description or, absent one,
// the target job title.
func (s *Service) Generate(ctx context.Context, profile Profile) (string, error) {
	done := metrics.ObserveFlow("generate")
	markdown, err := s.generate(ctx, profile)
	done(err)
	return markdown, err
}

func (s *Service) generate(ctx context.Context, profile Profile) (string, error) {
	if err := profile.Validate(); err != nil {
		return "", err
	}

	prompt, err := llm.Render(generatePrompt, profile)
	if err != nil {
		return "", err
	}

	raw, err := s.Gateway.Generate(ctx, llm.Request{
		Prompt: prompt,
		Tools:  []llm.Tool{keywords.Tool{}},
	})
	if err != nil {
		return "", err
	}

	var out generateOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", &llm.GenerationError{Reason: "generation output does not match schema", Err: err}
	}
	if strings.TrimSpace(out.ResumeMarkdown) == "" {
		return "", llm.Generationf("resumeMarkdown is missing or empty")
	}
	return out.ResumeMarkdown, nil
}
