package parsing

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"resumeforge/internal/extract"
	"resumeforge/internal/llm"
	"resumeforge/internal/shared/metrics"
	"resumeforge/internal/shared/telemetry"
)

//go:embed prompts/structure.tmpl
var structurePromptText string

var structurePrompt = llm.MustTemplate("parsing/structure", structurePromptText)

type promptContext struct {
	FileName string
	RawText  string
}

// Service orchestrates extraction plus LLM structuring.
type Service struct {
	Gateway llm.Gateway
}

// Parse turns a raw file into structured resume data.
//
// Extraction failures are recoverable by design: undecodable bytes yield a
// record whose RawText holds a human-readable error message, and an
// empty-but-decodable file yields a record with empty RawText. Gateway
// failures propagate to the caller.
func (s *Service) Parse(ctx context.Context, data []byte, declaredType, fileName string) (ParsedResumeData, error) {
	done := metrics.ObserveFlow("parse")
	result, err := s.parse(ctx, data, declaredType, fileName)
	done(err)
	return result, err
}

func (s *Service) parse(ctx context.Context, data []byte, declaredType, fileName string) (ParsedResumeData, error) {
	rawText, err := extract.ExtractText(data, declaredType)
	if err != nil {
		var extErr *extract.ExtractionError
		if errors.As(err, &extErr) && extErr.Empty {
			return ParsedResumeData{RawText: ""}, nil
		}
		telemetry.Warn("parse.extract_failed", map[string]any{
			"file_type": declaredType,
			"error":     err.Error(),
		})
		return ParsedResumeData{RawText: fmt.Sprintf("Error extracting text: %v", err)}, nil
	}

	if fileName == "" {
		fileName = "uploaded file"
	}
	prompt, err := llm.Render(structurePrompt, promptContext{FileName: fileName, RawText: rawText})
	if err != nil {
		return ParsedResumeData{}, err
	}

	raw, err := s.Gateway.Generate(ctx, llm.Request{Prompt: prompt})
	if err != nil {
		return ParsedResumeData{}, err
	}

	var parsed ParsedResumeData
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return ParsedResumeData{}, &llm.GenerationError{Reason: "parsed resume does not match schema", Err: err}
	}

	// The extracted text is authoritative regardless of what the model
	// returned for rawText.
	parsed.RawText = rawText
	return parsed, nil
}
