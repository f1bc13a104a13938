package atsopt

import (
	"context"
	_ "embed"
	"encoding/json"
	"strings"

	"resumeforge/internal/keywords"
	"resumeforge/internal/llm"
	"resumeforge/internal/shared/metrics"
)

//go:embed prompts/optimize.tmpl
var optimizePromptText string

var optimizePrompt = llm.MustTemplate("atsopt/optimize", optimizePromptText)

// Input is a resume plus the job description to score it against.
type Input struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// KeywordAnalysis breaks down keyword coverage against the job description.
type KeywordAnalysis struct {
	FoundKeywords   []string `json:"foundKeywords,omitempty"`
	MissingKeywords []string `json:"missingKeywords,omitempty"`
	DensityScore    *float64 `json:"densityScore,omitempty"`
}

// AtsAnalysisDetails is the structured review accompanying the score.
type AtsAnalysisDetails struct {
	Strengths             []string        `json:"strengths,omitempty"`
	KeywordAnalysis       KeywordAnalysis `json:"keywordAnalysis"`
	FormattingSuggestions []string        `json:"formattingSuggestions,omitempty"`
	ToneAndTenseCheck     []string        `json:"toneAndTenseCheck,omitempty"`
	GeneralSuggestions    []string        `json:"generalSuggestions,omitempty"`
}

// Result is the optimized document with its score and analysis.
type Result struct {
	OptimizedResumeMarkdown string              `json:"optimizedResumeMarkdown"`
	AtsMatchScore           int                 `json:"atsMatchScore"`
	Analysis                *AtsAnalysisDetails `json:"analysis"`
}

// Service scores and rewrites a resume against a job description.
type Service struct {
	Gateway llm.Gateway
}

// Optimize runs the ATS analysis. The model must return the optimized
// markdown, a score in [0,100] and the analysis block; anything less is a
// generation failure.
func (s *Service) Optimize(ctx context.Context, in Input) (Result, error) {
	done := metrics.ObserveFlow("optimize")
	result, err := s.optimize(ctx, in)
	done(err)
	return result, err
}

func (s *Service) optimize(ctx context.Context, in Input) (Result, error) {
	prompt, err := llm.Render(optimizePrompt, in)
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
		return Result{}, &llm.GenerationError{Reason: "optimization output does not match schema", Err: err}
	}
	if strings.TrimSpace(out.OptimizedResumeMarkdown) == "" {
		return Result{}, llm.Generationf("optimizedResumeMarkdown is missing or empty")
	}
	if out.AtsMatchScore < 0 || out.AtsMatchScore > 100 {
		return Result{}, llm.Generationf("atsMatchScore %d is outside [0,100]", out.AtsMatchScore)
	}
	if out.Analysis == nil {
		return Result{}, llm.Generationf("analysis is missing")
	}
	if ds := out.Analysis.KeywordAnalysis.DensityScore; ds != nil && (*ds < 0 || *ds > 1) {
		return Result{}, llm.Generationf("densityScore %v is outside [0,1]", *ds)
	}
	return out, nil
}
