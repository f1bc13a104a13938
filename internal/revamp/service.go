package revamp

import (
	"context"
	_ "embed"
	"encoding/json"
	"strings"

	"resumeforge/internal/generation"
	"resumeforge/internal/keywords"
	"resumeforge/internal/llm"
	"resumeforge/internal/parsing"
	"resumeforge/internal/shared/metrics"
)

//go:embed prompts/revamp.tmpl
var revampPromptText string

var revampPrompt = llm.MustTemplate("revamp/revamp", revampPromptText)

// Request carries a previously parsed resume plus optional tailoring context.
type Request struct {
	Parsed               parsing.ParsedResumeData     `json:"parsedResumeData"`
	TargetJobDescription string                       `json:"targetJobDescription,omitempty"`
	InterviewAnswers     []generation.InterviewAnswer `json:"interviewAnswers,omitempty"`
	CareerLevel          string                       `json:"careerLevel,omitempty"`
	TargetJobTitle       string                       `json:"targetJobTitle,omitempty"`
}

// Result is the revamped document plus the change log shown to the user.
type Result struct {
	RevampedResumeMarkdown string   `json:"revampedResumeMarkdown"`
	Suggestions            []string `json:"suggestions"`
}

type promptContext struct {
	ParsedJSON           string
	TargetJobDescription string
	InterviewAnswers     []generation.InterviewAnswer
	CareerLevel          string
	TargetJobTitle       string
}

// Service rewrites an existing resume into a stronger document.
type Service struct {
	Gateway llm.Gateway
}

// Revamp improves the parsed resume, tailored to the job description when one
// is given. Both the revamped markdown and the suggestions list must come back
// from the model; a response missing either is a generation failure.
func (s *Service) Revamp(ctx context.Context, req Request) (Result, error) {
	done := metrics.ObserveFlow("revamp")
	result, err := s.revamp(ctx, req)
	done(err)
	return result, err
}

func (s *Service) revamp(ctx context.Context, req Request) (Result, error) {
	parsedJSON, err := json.MarshalIndent(req.Parsed, "", "  ")
	if err != nil {
		return Result{}, err
	}

	prompt, err := llm.Render(revampPrompt, promptContext{
		ParsedJSON:           string(parsedJSON),
		TargetJobDescription: req.TargetJobDescription,
		InterviewAnswers:     req.InterviewAnswers,
		CareerLevel:          req.CareerLevel,
		TargetJobTitle:       req.TargetJobTitle,
	})
	if err != nil {
		return Result{}, err
	}

	raw, err := s.Gateway.Generate(ctx, llm.Request{
		Prompt: prompt,
		Tools:  []llm.Tool{keywords.Tool{}},
	})
	if err != nil {
		return Result{}, err
	}

	var out Result
	if err := json.Unmarshal(raw, &out); err != nil {
		return Result{}, &llm.GenerationError{Reason: "revamp output does not match schema", Err: err}
	}
	if strings.TrimSpace(out.RevampedResumeMarkdown) == "" {
		return Result{}, llm.Generationf("revampedResumeMarkdown is missing or empty")
	}
	if len(out.Suggestions) == 0 {
		return Result{}, llm.Generationf("suggestions are missing")
	}
	return out, nil
}
