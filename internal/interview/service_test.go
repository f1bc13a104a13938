package interview

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

func TestQuestionsUsesModelOutput(t *testing.T) {
	gw := &fakeGateway{response: json.RawMessage(`{"questions":["Q1","Q2","Q3"]}`)}
	svc := &Service{Gateway: gw}

	got := svc.Questions(context.Background(), Input{TargetRole: "Senior Software Engineer", ExperienceLevel: "Mid-Level", Count: 3})
	if len(got) != 3 || got[0] != "Q1" {
		t.Fatalf("unexpected questions: %v", got)
	}
	if !strings.Contains(gw.lastReq.Prompt, "Senior Software Engineer") {
		t.Fatal("prompt should embed the target role")
	}
}

func TestQuestionsFallbackOnGatewayError(t *testing.T) {
	svc := &Service{Gateway: &fakeGateway{err: errors.New("model unavailable")}}

	got := svc.Questions(context.Background(), Input{Count: 15})
	if len(got) != 15 {
		t.Fatalf("expected 15 fallback questions, got %d", len(got))
	}
	if got[0] != fallbackQuestions[0] {
		t.Fatalf("fallback order must be fixed, got first question %q", got[0])
	}
}

func TestQuestionsFallbackOnEmptyList(t *testing.T) {
	svc := &Service{Gateway: &fakeGateway{response: json.RawMessage(`{"questions":[]}`)}}

	got := svc.Questions(context.Background(), Input{Count: 5})
	if len(got) != 5 {
		t.Fatalf("expected 5 fallback questions, got %d", len(got))
	}
	for i, q := range got {
		if q != fallbackQuestions[i] {
			t.Fatalf("fallback question %d = %q, want %q", i, q, fallbackQuestions[i])
		}
	}
}

func TestQuestionsNeverEmpty(t *testing.T) {
	svc := &Service{Gateway: &fakeGateway{response: json.RawMessage(`{}`)}}

	got := svc.Questions(context.Background(), Input{})
	if len(got) == 0 {
		t.Fatal("questions list must never be empty")
	}
	if len(got) != DefaultCount {
		t.Fatalf("expected default count %d, got %d", DefaultCount, len(got))
	}
}

func TestQuestionsTruncatesToCount(t *testing.T) {
	gw := &fakeGateway{response: json.RawMessage(`{"questions":["a","b","c","d"]}`)}
	svc := &Service{Gateway: gw}

	got := svc.Questions(context.Background(), Input{Count: 2})
	if len(got) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(got))
	}
}
