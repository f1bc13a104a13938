package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resumeforge/internal/atsopt"
	"resumeforge/internal/generation"
	"resumeforge/internal/interview"
	"resumeforge/internal/resumes"
	"resumeforge/internal/revamp"
	"resumeforge/internal/shared/telemetry"
)

// Service drives sessions through the workflow: request → interview →
// flow → Ready → optimize/save/export.
type Service struct {
	Sessions   *SessionStore
	Interview  *interview.Service
	Generation *generation.Service
	Revamp     *revamp.Service
	Optimize   *atsopt.Service
	Resumes    *resumes.Service
}

// Snapshot is the externally visible view of a session.
type Snapshot struct {
	SessionID     string                     `json:"sessionId"`
	State         State                      `json:"state"`
	Questions     []string                   `json:"questions,omitempty"`
	Document      string                     `json:"document,omitempty"`
	Suggestions   []string                   `json:"suggestions,omitempty"`
	AtsScore      *int                       `json:"atsScore,omitempty"`
	Analysis      *atsopt.AtsAnalysisDetails `json:"analysis,omitempty"`
	SavedResumeID string                     `json:"savedResumeId,omitempty"`
	UpdatedAt     time.Time                  `json:"updatedAt"`
}

func snapshot(s *Session) Snapshot {
	return Snapshot{
		SessionID:     s.ID,
		State:         s.FSM.State(),
		Questions:     s.Questions,
		Document:      s.Document,
		Suggestions:   s.Suggestions,
		AtsScore:      s.AtsScore,
		Analysis:      s.Analysis,
		SavedResumeID: s.SavedResumeID,
		UpdatedAt:     s.UpdatedAt,
	}
}

// Create opens a new Idle session for the user.
func (svc *Service) Create(userId string) Snapshot {
	s := svc.Sessions.Create(userId)
	return snapshot(s)
}

// Get returns the current view of a session.
func (svc *Service) Get(userId, sessionId string) (Snapshot, error) {
	s, err := svc.Sessions.Get(userId, sessionId)
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s), nil
}

// StartGenerate validates the profile, then moves the session into the
// interview: questions are produced before any document is generated.
func (svc *Service) StartGenerate(ctx context.Context, userId, sessionId string, profile generation.Profile) (Snapshot, error) {
	s, err := svc.Sessions.Get(userId, sessionId)
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := profile.Validate(); err != nil {
		return Snapshot{}, err
	}
	if err := s.FSM.Begin(FlowGenerate); err != nil {
		return Snapshot{}, err
	}

	questions := svc.Interview.Questions(ctx, interview.Input{
		TargetRole:      profile.TargetJobTitle,
		ExperienceLevel: profile.CareerLevel,
		UserName:        profile.Name,
	})
	if err := s.FSM.QuestionsReady(); err != nil {
		s.FSM.Fail()
		return Snapshot{}, err
	}

	s.PendingFlow = FlowGenerate
	s.PendingGenerate = &profile
	s.PendingRevamp = nil
	s.ParsedData = nil
	s.Questions = questions
	s.touch()
	return snapshot(s), nil
}

// StartRevamp stores the revamp request and runs the interview step, seeded
// from the parsed resume.
func (svc *Service) StartRevamp(ctx context.Context, userId, sessionId string, req revamp.Request) (Snapshot, error) {
	s, err := svc.Sessions.Get(userId, sessionId)
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(req.Parsed.RawText) == "" && req.Parsed.Name == "" {
		return Snapshot{}, fmt.Errorf("%w: parsedResumeData is required", ErrInvalidRequest)
	}
	if err := s.FSM.Begin(FlowRevamp); err != nil {
		return Snapshot{}, err
	}

	questions := svc.Interview.Questions(ctx, interview.Input{
		TargetRole:            req.TargetJobTitle,
		ExperienceLevel:       req.CareerLevel,
		ExistingResumeSummary: req.Parsed.Summary,
		UserName:              req.Parsed.Name,
	})
	if err := s.FSM.QuestionsReady(); err != nil {
		s.FSM.Fail()
		return Snapshot{}, err
	}

	s.PendingFlow = FlowRevamp
	s.PendingRevamp = &req
	s.PendingGenerate = nil
	parsed := req.Parsed
	s.ParsedData = &parsed
	s.Questions = questions
	s.touch()
	return snapshot(s), nil
}

// SubmitAnswers attaches interview answers to the pending request and runs
// the flow. An empty answers slice is the skip path; it behaves identically
// except nothing new is embedded in the prompt.
func (svc *Service) SubmitAnswers(ctx context.Context, userId, sessionId string, answers []generation.InterviewAnswer) (Snapshot, error) {
	s, err := svc.Sessions.Get(userId, sessionId)
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	flow := s.PendingFlow
	if err := s.FSM.AnswersSubmitted(flow); err != nil {
		return Snapshot{}, err
	}

	switch flow {
	case FlowGenerate:
		profile := *s.PendingGenerate
		profile.InterviewAnswers = answers
		markdown, err := svc.Generation.Generate(ctx, profile)
		if err != nil {
			s.FSM.Fail()
			telemetry.Warn("session.flow_failed", map[string]any{"flow": string(flow), "error": err.Error()})
			return Snapshot{}, err
		}
		s.Document = markdown
		s.Suggestions = nil
	case FlowRevamp:
		req := *s.PendingRevamp
		req.InterviewAnswers = answers
		result, err := svc.Revamp.Revamp(ctx, req)
		if err != nil {
			s.FSM.Fail()
			telemetry.Warn("session.flow_failed", map[string]any{"flow": string(flow), "error": err.Error()})
			return Snapshot{}, err
		}
		s.Document = result.RevampedResumeMarkdown
		s.Suggestions = result.Suggestions
	}

	if err := s.FSM.Succeed(); err != nil {
		return Snapshot{}, err
	}
	s.AtsScore = nil
	s.Analysis = nil
	s.clearInterviewState()
	s.touch()
	return snapshot(s), nil
}

// Skip runs the pending flow without interview answers.
func (svc *Service) Skip(ctx context.Context, userId, sessionId string) (Snapshot, error) {
	return svc.SubmitAnswers(ctx, userId, sessionId, nil)
}

// RunOptimize scores and rewrites the current document against a job
// description. On failure the document, score and analysis are untouched.
func (svc *Service) RunOptimize(ctx context.Context, userId, sessionId, jobDescription string) (Snapshot, error) {
	s, err := svc.Sessions.Get(userId, sessionId)
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(jobDescription) == "" {
		return Snapshot{}, fmt.Errorf("%w: jobDescription is required", ErrInvalidRequest)
	}
	if err := s.FSM.BeginOptimize(); err != nil {
		return Snapshot{}, err
	}

	result, err := svc.Optimize.Optimize(ctx, atsopt.Input{
		ResumeText:     s.Document,
		JobDescription: jobDescription,
	})
	if err != nil {
		s.FSM.Fail()
		telemetry.Warn("session.flow_failed", map[string]any{"flow": "optimize", "error": err.Error()})
		return Snapshot{}, err
	}

	if err := s.FSM.Succeed(); err != nil {
		return Snapshot{}, err
	}
	s.Document = result.OptimizedResumeMarkdown
	score := result.AtsMatchScore
	s.AtsScore = &score
	s.Analysis = result.Analysis
	s.touch()
	return snapshot(s), nil
}

// Save persists the session document through the resumes service. Passing a
// resumeId updates that resume in place; otherwise a new one is created and
// later saves of this session keep updating it.
func (svc *Service) Save(ctx context.Context, userId, sessionId, name, resumeId string) (Snapshot, error) {
	s, err := svc.Sessions.Get(userId, sessionId)
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FSM.State() != StateReady || strings.TrimSpace(s.Document) == "" {
		return Snapshot{}, fmt.Errorf("%w: no document to save", ErrInvalidRequest)
	}
	if resumeId == "" {
		resumeId = s.SavedResumeID
	}

	rec, err := svc.Resumes.Save(ctx, userId, resumes.SaveInput{
		ResumeID:        resumeId,
		Name:            name,
		MarkdownContent: s.Document,
		JSONData:        s.ParsedData,
		AtsScore:        s.AtsScore,
	})
	if err != nil {
		return Snapshot{}, err
	}
	s.SavedResumeID = rec.ID
	s.touch()
	return snapshot(s), nil
}

// Document returns the session's current markdown, for export.
func (svc *Service) Document(userId, sessionId string) (string, error) {
	s, err := svc.Sessions.Get(userId, sessionId)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(s.Document) == "" {
		return "", fmt.Errorf("%w: no document to export", ErrInvalidRequest)
	}
	return s.Document, nil
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}
