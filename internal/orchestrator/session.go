package orchestrator

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"resumeforge/internal/atsopt"
	"resumeforge/internal/generation"
	"resumeforge/internal/parsing"
	"resumeforge/internal/revamp"
)

// ErrSessionNotFound is returned for unknown or foreign session ids.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidRequest marks caller mistakes (missing fields, no document yet) so
// the handler can keep 400 for input errors and reserve 5xx for upstream ones.
var ErrInvalidRequest = errors.New("invalid request")

// Session is the transient editing state of one workflow run. It lives in
// memory only; durable state goes through the resumes repository on save.
type Session struct {
	mu sync.Mutex

	ID     string
	UserID string
	FSM    *FSM

	PendingFlow     Flow
	PendingGenerate *generation.Profile
	PendingRevamp   *revamp.Request
	Questions       []string

	// ParsedData survives the interview state; it is persisted alongside the
	// document on save when the session came from a revamp.
	ParsedData *parsing.ParsedResumeData

	Document      string
	Suggestions   []string
	AtsScore      *int
	Analysis      *atsopt.AtsAnalysisDetails
	SavedResumeID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// clearInterviewState drops the pending request and questions after a flow
// completes.
func (s *Session) clearInterviewState() {
	s.PendingFlow = ""
	s.PendingGenerate = nil
	s.PendingRevamp = nil
	s.Questions = nil
}

// SessionStore holds live sessions in memory, scoped by owner.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session // ownerKey(userId, sessionId) -> session
}

// NewSessionStore constructs an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

func ownerKey(userId, sessionId string) string {
	return userId + "/" + sessionId
}

// Create registers a fresh Idle session for the user.
func (st *SessionStore) Create(userId string) *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:        uuid.NewString(),
		UserID:    userId,
		FSM:       NewFSM(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	st.mu.Lock()
	st.sessions[ownerKey(userId, s.ID)] = s
	st.mu.Unlock()
	return s
}

// Get returns the user's session or ErrSessionNotFound. A session owned by
// someone else is indistinguishable from a missing one.
func (st *SessionStore) Get(userId, sessionId string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[ownerKey(userId, sessionId)]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}
