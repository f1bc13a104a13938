package orchestrator

import "fmt"

// State is one step of the resume building workflow.
type State string

const (
	StateIdle                       State = "idle"
	StateAwaitingInterviewQuestions State = "awaiting_interview_questions"
	StateAwaitingInterviewAnswers   State = "awaiting_interview_answers"
	StateGenerating                 State = "generating"
	StateRevamping                  State = "revamping"
	StateOptimizing                 State = "optimizing"
	StateReady                      State = "ready"
)

// Flow names the long-running operation a session is driving.
type Flow string

const (
	FlowGenerate Flow = "generate"
	FlowRevamp   Flow = "revamp"
)

// ErrIllegalTransition is returned when an event is not valid in the current
// state. The state is left untouched.
type ErrIllegalTransition struct {
	From  State
	Event string
}

func (e *ErrIllegalTransition) Error() string {
	return fmt.Sprintf("event %q is not allowed in state %q", e.Event, e.From)
}

// FSM tracks the workflow state plus the last stable state to fall back to
// when a flow fails mid-transition.
type FSM struct {
	state      State
	lastStable State
}

// NewFSM starts in Idle.
func NewFSM() *FSM {
	return &FSM{state: StateIdle, lastStable: StateIdle}
}

// State returns the current state.
func (m *FSM) State() State {
	return m.state
}

func (m *FSM) isStable(s State) bool {
	switch s {
	case StateIdle, StateAwaitingInterviewAnswers, StateReady:
		return true
	}
	return false
}

func (m *FSM) set(next State) {
	if m.isStable(m.state) {
		m.lastStable = m.state
	}
	m.state = next
	if m.isStable(next) {
		m.lastStable = next
	}
}

// Begin starts a generate or revamp run. Allowed from Idle and from Ready,
// so a finished session can be rerun with fresh input.
func (m *FSM) Begin(flow Flow) error {
	if m.state != StateIdle && m.state != StateReady {
		return &ErrIllegalTransition{From: m.state, Event: string(flow)}
	}
	m.set(StateAwaitingInterviewQuestions)
	return nil
}

// QuestionsReady moves on once interview questions have been produced.
func (m *FSM) QuestionsReady() error {
	if m.state != StateAwaitingInterviewQuestions {
		return &ErrIllegalTransition{From: m.state, Event: "questions_ready"}
	}
	m.set(StateAwaitingInterviewAnswers)
	return nil
}

// AnswersSubmitted starts the pending flow, with or without answers.
func (m *FSM) AnswersSubmitted(flow Flow) error {
	if m.state != StateAwaitingInterviewAnswers {
		return &ErrIllegalTransition{From: m.state, Event: "answers_submitted"}
	}
	switch flow {
	case FlowGenerate:
		m.set(StateGenerating)
	case FlowRevamp:
		m.set(StateRevamping)
	default:
		return &ErrIllegalTransition{From: m.state, Event: string(flow)}
	}
	return nil
}

// BeginOptimize starts ATS optimization of the current document.
func (m *FSM) BeginOptimize() error {
	if m.state != StateReady {
		return &ErrIllegalTransition{From: m.state, Event: "optimize"}
	}
	m.set(StateOptimizing)
	return nil
}

// Succeed completes the in-flight flow and lands in Ready.
func (m *FSM) Succeed() error {
	switch m.state {
	case StateGenerating, StateRevamping, StateOptimizing:
		m.set(StateReady)
		return nil
	}
	return &ErrIllegalTransition{From: m.state, Event: "succeed"}
}

// Fail aborts the in-flight step and restores the last stable state.
func (m *FSM) Fail() {
	m.state = m.lastStable
}
