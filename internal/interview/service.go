package interview

import (
	"context"
	_ "embed"
	"encoding/json"

	"resumeforge/internal/llm"
	"resumeforge/internal/shared/metrics"
	"resumeforge/internal/shared/telemetry"
)

//go:embed prompts/questions.tmpl
var questionsPromptText string

var questionsPrompt = llm.MustTemplate("interview/questions", questionsPromptText)

// DefaultCount is the number of questions requested when the caller does not
// set one, matching the length of the fallback list.
const DefaultCount = 15

// Input provides the personalization context for question generation.
type Input struct {
	Domain                string `json:"domain,omitempty"`
	ExperienceLevel       string `json:"experienceLevel,omitempty"`
	TargetRole            string `json:"targetRole,omitempty"`
	ExistingResumeSummary string `json:"existingResumeSummary,omitempty"`
	UserName              string `json:"userName,omitempty"`
	Count                 int    `json:"count,omitempty"`
}

// fallbackQuestions is the hand-authored list used when the model yields no
// questions. The interview step is mandatory-by-default before generation and
// revamp, so the orchestrator must always have questions to show.
var fallbackQuestions = []string{
	"What is a project or accomplishment you are most proud of and why?",
	"Describe a significant challenge you faced at work and how you overcame it. What was the outcome?",
	"What are your top 3-5 skills that are most relevant to the role you're applying for? Provide an example of how you've used each.",
	"Can you quantify any of your achievements? (e.g., increased sales by X%, reduced costs by Y%, improved efficiency by Z%)",
	"What kind of work environment or company culture do you thrive in and why?",
	"What are your short-term career goals (next 1-2 years)?",
	"What are your long-term career goals (next 3-5 years)?",
	"Describe a time you had to learn a new skill or technology quickly. How did you approach it?",
	"Tell me about a time you worked effectively as part of a team.",
	"What makes you unique or stand out from other candidates for this type of role?",
	"What aspects of the [targetRole] role are you most excited about?",
	"How do you stay updated with trends in the [domain] industry?",
	"Describe a situation where you took initiative or demonstrated leadership.",
	"What are your key strengths you would bring to this role?",
	"Is there anything else you'd like to highlight about your experience or skills that we haven't covered?",
}

// Service generates personalized interview questions.
type Service struct {
	Gateway llm.Gateway
}

type questionsOutput struct {
	Questions []string `json:"questions"`
}

// Questions asks the model for Count personalized questions. It never fails:
// a gateway error or an empty list substitutes the fixed fallback questions,
// truncated to the requested count.
func (s *Service) Questions(ctx context.Context, in Input) []string {
	done := metrics.ObserveFlow("interview")
	questions := s.questions(ctx, in)
	done(nil)
	return questions
}

func (s *Service) questions(ctx context.Context, in Input) []string {
	count := in.Count
	if count <= 0 {
		count = DefaultCount
	}
	in.Count = count

	prompt, err := llm.Render(questionsPrompt, in)
	if err != nil {
		telemetry.Error("interview.prompt_render_failed", map[string]any{"error": err.Error()})
		return fallback(count)
	}

	raw, err := s.Gateway.Generate(ctx, llm.Request{Prompt: prompt})
	if err != nil {
		telemetry.Warn("interview.fallback", map[string]any{"error": err.Error()})
		return fallback(count)
	}

	var out questionsOutput
	if err := json.Unmarshal(raw, &out); err != nil || len(out.Questions) == 0 {
		telemetry.Warn("interview.fallback", map[string]any{"reason": "empty or malformed question list"})
		return fallback(count)
	}

	if len(out.Questions) > count {
		out.Questions = out.Questions[:count]
	}
	return out.Questions
}

func fallback(count int) []string {
	if count > len(fallbackQuestions) {
		count = len(fallbackQuestions)
	}
	out := make([]string, count)
	copy(out, fallbackQuestions[:count])
	return out
}
