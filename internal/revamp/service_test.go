package revamp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"resumeforge/internal/generation"
	"resumeforge/internal/llm"
	"resumeforge/internal/parsing"
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

func sampleRequest() Request {
	return Request{
		Parsed: parsing.ParsedResumeData{
			Name:    "Grace Hopper",
			Summary: "Compiler pioneer",
			Skills:  []string{"COBOL", "Leadership"},
			RawText: "Grace Hopper\nCompiler pioneer",
		},
		CareerLevel:    generation.LevelExecutive,
		TargetJobTitle: "VP of Engineering",
	}
}

func TestRevampReturnsDocumentAndSuggestions(t *testing.T) {
	gw := &fakeGateway{response: json.RawMessage(`{"revampedResumeMarkdown":"# Grace Hopper","suggestions":["Quantified achievements"]}`)}
	svc := &Service{Gateway: gw}

	got, err := svc.Revamp(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.RevampedResumeMarkdown != "# Grace Hopper" {
		t.Fatalf("unexpected markdown: %q", got.RevampedResumeMarkdown)
	}
	if len(got.Suggestions) != 1 {
		t.Fatalf("unexpected suggestions: %v", got.Suggestions)
	}
	if !strings.Contains(gw.lastReq.Prompt, `"Compiler pioneer"`) {
		t.Fatal("prompt should embed the parsed resume as JSON")
	}
	if len(gw.lastReq.Tools) != 1 || gw.lastReq.Tools[0].Name() != "atsKeywordRetriever" {
		t.Fatal("expected the keyword tool to be attached")
	}
}

func TestRevampEmbedsJobDescription(t *testing.T) {
	gw := &fakeGateway{response: json.RawMessage(`{"revampedResumeMarkdown":"# R","suggestions":["s"]}`)}
	svc := &Service{Gateway: gw}

	req := sampleRequest()
	req.TargetJobDescription = "Own the distributed storage roadmap"
	if _, err := svc.Revamp(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gw.lastReq.Prompt, "Own the distributed storage roadmap") {
		t.Fatal("prompt should embed the target job description")
	}
}

func TestRevampMissingMarkdownIsGenerationError(t *testing.T) {
	svc := &Service{Gateway: &fakeGateway{response: json.RawMessage(`{"suggestions":["s"]}`)}}

	_, err := svc.Revamp(context.Background(), sampleRequest())
	if !llm.IsGenerationError(err) {
		t.Fatalf("expected generation error, got %v", err)
	}
}

func TestRevampMissingSuggestionsIsGenerationError(t *testing.T) {
	svc := &Service{Gateway: &fakeGateway{response: json.RawMessage(`{"revampedResumeMarkdown":"# R"}`)}}

	_, err := svc.Revamp(context.Background(), sampleRequest())
	if !llm.IsGenerationError(err) {
		t.Fatalf("expected generation error, got %v", err)
	}
}

func TestRevampPropagatesGatewayError(t *testing.T) {
	svc := &Service{Gateway: &fakeGateway{err: errors.New("model unavailable")}}

	if _, err := svc.Revamp(context.Background(), sampleRequest()); err == nil {
		t.Fatal("expected error")
	}
}
