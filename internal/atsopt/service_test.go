package atsopt

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"resumeforge/internal/llm"
)

type fakeGateway struct {
	response json.RawMessage
	err      error
	lastReq  llm.Request
}

func (f *fakeGateway) Generate(ctx context.Context, req llm.Request) (json.RawMessage, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeGateway) Complete(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("not used")
}

const fullResponse = `{
	"optimizedResumeMarkdown": "# Optimized",
	"atsMatchScore": 82,
	"analysis": {
		"strengths": ["Clear section headers"],
		"keywordAnalysis": {"foundKeywords": ["Go"], "missingKeywords": ["Kubernetes"], "densityScore": 0.7},
		"formattingSuggestions": ["Avoid tables"],
		"toneAndTenseCheck": ["Use past tense for past roles", "Prefer active voice"],
		"generalSuggestions": ["Quantify achievements"]
	}
}`

func TestOptimizeReturnsScoreAndAnalysis(t *testing.T) {
	gw := &fakeGateway{response: json.RawMessage(fullResponse)}
	svc := &Service{Gateway: gw}

	got, err := svc.Optimize(context.Background(), Input{ResumeText: "# Resume", JobDescription: "Go engineer with Kubernetes"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AtsMatchScore != 82 {
		t.Fatalf("score = %d, want 82", got.AtsMatchScore)
	}
	if got.Analysis == nil || len(got.Analysis.KeywordAnalysis.MissingKeywords) != 1 {
		t.Fatalf("unexpected analysis: %+v", got.Analysis)
	}
	if got.Analysis.KeywordAnalysis.DensityScore == nil || *got.Analysis.KeywordAnalysis.DensityScore != 0.7 {
		t.Fatal("density score should survive decoding")
	}
	if len(got.Analysis.ToneAndTenseCheck) != 2 || got.Analysis.ToneAndTenseCheck[0] != "Use past tense for past roles" {
		t.Fatalf("tone and tense feedback = %v", got.Analysis.ToneAndTenseCheck)
	}
	if !strings.Contains(gw.lastReq.Prompt, "Go engineer with Kubernetes") {
		t.Fatal("prompt should embed the job description")
	}
	if len(gw.lastReq.Tools) != 1 || gw.lastReq.Tools[0].Name() != "atsKeywordRetriever" {
		t.Fatal("expected the keyword tool to be attached")
	}
}

func TestOptimizeScoreOutOfRangeIsGenerationError(t *testing.T) {
	for _, score := range []int{-1, 101} {
		resp, _ := json.Marshal(map[string]any{
			"optimizedResumeMarkdown": "# R",
			"atsMatchScore":           score,
			"analysis":                map[string]any{},
		})
		svc := &Service{Gateway: &fakeGateway{response: resp}}
		_, err := svc.Optimize(context.Background(), Input{ResumeText: "r", JobDescription: "jd"})
		if !llm.IsGenerationError(err) {
			t.Fatalf("score %d: expected generation error, got %v", score, err)
		}
	}
}

func TestOptimizeMissingMarkdownIsGenerationError(t *testing.T) {
	svc := &Service{Gateway: &fakeGateway{response: json.RawMessage(`{"atsMatchScore":50,"analysis":{}}`)}}

	_, err := svc.Optimize(context.Background(), Input{ResumeText: "r", JobDescription: "jd"})
	if !llm.IsGenerationError(err) {
		t.Fatalf("expected generation error, got %v", err)
	}
}

func TestOptimizeMissingAnalysisIsGenerationError(t *testing.T) {
	svc := &Service{Gateway: &fakeGateway{response: json.RawMessage(`{"optimizedResumeMarkdown":"# R","atsMatchScore":50}`)}}

	_, err := svc.Optimize(context.Background(), Input{ResumeText: "r", JobDescription: "jd"})
	if !llm.IsGenerationError(err) {
		t.Fatalf("expected generation error, got %v", err)
	}
}

func TestOptimizeDensityScoreOutOfRangeIsGenerationError(t *testing.T) {
	for _, density := range []float64{-0.1, 1.5} {
		resp, _ := json.Marshal(map[string]any{
			"optimizedResumeMarkdown": "# R",
			"atsMatchScore":           60,
			"analysis": map[string]any{
				"keywordAnalysis": map[string]any{"densityScore": density},
			},
		})
		svc := &Service{Gateway: &fakeGateway{response: resp}}
		_, err := svc.Optimize(context.Background(), Input{ResumeText: "r", JobDescription: "jd"})
		if !llm.IsGenerationError(err) {
			t.Fatalf("density %v: expected generation error, got %v", density, err)
		}
	}
}

func TestOptimizePropagatesGatewayError(t *testing.T) {
	svc := &Service{Gateway: &fakeGateway{err: errors.New("model unavailable")}}

	if _, err := svc.Optimize(context.Background(), Input{ResumeText: "r", JobDescription: "jd"}); err == nil {
		t.Fatal("expected error")
	}
}
