package polish

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"resumeforge/internal/llm"
	"resumeforge/internal/shared/metrics"
)

// Tones accepted by CorrectGrammarAndTone.
const (
	ToneProfessional = "professional"
	ToneCreative     = "creative"
	ToneExecutive    = "executive"
)

// SummaryInput feeds GenerateSummary.
type SummaryInput struct {
	KeyAchievements      string `json:"keyAchievements"`
	ExperienceHighlights string `json:"experienceHighlights"`
	TargetRole           string `json:"targetRole"`
}

// GrammarInput feeds CorrectGrammarAndTone.
type GrammarInput struct {
	Text string `json:"text"`
	Tone string `json:"tone"`
}

// Service groups the small single-text editing flows.
type Service struct {
	Gateway llm.Gateway
}

// EnhanceBulletPoint rewrites one draft bullet point for impact.
func (s *Service) EnhanceBulletPoint(ctx context.Context, text string) (string, error) {
	done := metrics.ObserveFlow("polish_bullet")
	out, err := s.enhanceBulletPoint(ctx, text)
	done(err)
	return out, err
}

func (s *Service) enhanceBulletPoint(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("bullet point text is required")
	}
	prompt := fmt.Sprintf("Rewrite the following bullet point to be more impactful and use strong action verbs:\n\n%s", text)
	out, err := s.Gateway.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", llm.Generationf("enhanced bullet point is empty")
	}
	return out, nil
}

// GenerateSummary writes a professional summary from achievements,
// experience highlights and the target role.
func (s *Service) GenerateSummary(ctx context.Context, in SummaryInput) (string, error) {
	done := metrics.ObserveFlow("polish_summary")
	out, err := s.generateSummary(ctx, in)
	done(err)
	return out, err
}

func (s *Service) generateSummary(ctx context.Context, in SummaryInput) (string, error) {
	if strings.TrimSpace(in.TargetRole) == "" {
		return "", fmt.Errorf("targetRole is required")
	}
	prompt := fmt.Sprintf(
		"You are a professional resume writer. Generate a compelling resume summary for a candidate targeting the role of %s, highlighting their key achievements: %s, and experience highlights: %s. The summary should be concise, engaging, and tailored to capture the attention of recruiters. Focus on quantifying achievements whenever possible and aligning the summary with the desired job role.\n\nOutput ONLY a JSON object with a single key \"summary\".",
		in.TargetRole, in.KeyAchievements, in.ExperienceHighlights,
	)
	raw, err := s.Gateway.Generate(ctx, llm.Request{Prompt: prompt})
	if err != nil {
		return "", err
	}
	var out struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", &llm.GenerationError{Reason: "summary output does not match schema", Err: err}
	}
	if strings.TrimSpace(out.Summary) == "" {
		return "", llm.Generationf("summary is missing or empty")
	}
	return out.Summary, nil
}

// CorrectGrammarAndTone fixes grammar and spelling while enforcing the
// requested tone.
func (s *Service) CorrectGrammarAndTone(ctx context.Context, in GrammarInput) (string, error) {
	done := metrics.ObserveFlow("polish_grammar")
	out, err := s.correctGrammarAndTone(ctx, in)
	done(err)
	return out, err
}

func (s *Service) correctGrammarAndTone(ctx context.Context, in GrammarInput) (string, error) {
	switch in.Tone {
	case ToneProfessional, ToneCreative, ToneExecutive:
	default:
		return "", fmt.Errorf("unknown tone %q", in.Tone)
	}
	if strings.TrimSpace(in.Text) == "" {
		return "", fmt.Errorf("text is required")
	}
	prompt := fmt.Sprintf(
		"Correct the grammar and spelling of the following text. Ensure the tone is %s.\n\nText: %s\n\nOutput ONLY a JSON object with a single key \"correctedText\".",
		in.Tone, in.Text,
	)
	raw, err := s.Gateway.Generate(ctx, llm.Request{Prompt: prompt})
	if err != nil {
		return "", err
	}
	var out struct {
		CorrectedText string `json:"correctedText"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", &llm.GenerationError{Reason: "correction output does not match schema", Err: err}
	}
	if strings.TrimSpace(out.CorrectedText) == "" {
		return "", llm.Generationf("correctedText is missing or empty")
	}
	return out.CorrectedText, nil
}
