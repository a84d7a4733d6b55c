package orchestrator

import "codeberg.org/snonux/neural/internal/language"

// RequestState describes the request lifecycle
type RequestState int

const (
	// Idle means no request is outstanding, or no request has finished yet
	// when used as an outcome
	Idle RequestState = iota
	InFlight
	Success
	Failed
)

func (s RequestState) String() string {
	switch s {
	case Idle:
		return "idle"
	case InFlight:
		return "in-flight"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is everything the presentation layer shows
type Snapshot struct {
	Input  string
	Result string
	Pair   language.Pair

	// State is InFlight while any backend request is outstanding
	State RequestState
	// Outcome is Success or Failed for the last displayed backend answer
	Outcome RequestState

	Healthy       bool
	AutoTranslate bool

	// Cached and Copied are short lived indicators
	Cached bool
	Copied bool
}
