package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCompile    EventType = "compile"
	EventEvaluate   EventType = "evaluate"
	EventGrid       EventType = "grid"
	EventSessionEnd EventType = "session_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	ProgramID uint64    `json:"program_id,omitempty"`
}

// CompileEvent is emitted after parse and resolve, successful or not.
type CompileEvent struct {
	EventBase
	Nodes    int           `json:"nodes"`
	Exports  int           `json:"exports"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// EvaluateEvent is emitted for single-point evaluations made through the facade.
type EvaluateEvent struct {
	EventBase
	Point    Vec3          `json:"point"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// GridEvent is emitted once per grid pass.
type GridEvent struct {
	EventBase
	Points   int           `json:"points"`
	Faults   int           `json:"faults"`
	Duration time.Duration `json:"duration"`
}

// SessionStats counts memo traffic of one session.
type SessionStats struct {
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evaluated uint64 `json:"evaluated"`
}

// SessionEvent reports a session's counters when its pass finishes.
type SessionEvent struct {
	EventBase
	Stats SessionStats `json:"stats"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnCompile    func(context.Context, *CompileEvent)
	OnEvaluate   func(context.Context, *EvaluateEvent)
	OnGrid       func(context.Context, *GridEvent)
	OnSessionEnd func(context.Context, *SessionEvent)
}
