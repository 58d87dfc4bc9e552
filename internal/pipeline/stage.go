package pipeline

import "time"

// Stage is a pipeline state.
type Stage string

const (
	StageValidated       Stage = "validated"
	StageProbed          Stage = "probed"
	StageFormatSelected  Stage = "format_selected"
	StageFetching        Stage = "fetching"
	StageFetched         Stage = "fetched"
	StageConversionCheck Stage = "conversion_check"
	StageCompleted       Stage = "completed"
	StageFailed          Stage = "failed"
)

// validTransitions defines allowed state transitions.
// Key is the "from" stage, value is list of valid "to" stages.
var validTransitions = map[Stage][]Stage{
	StageValidated:       {StageProbed, StageFailed},
	StageProbed:          {StageFormatSelected, StageFailed},
	StageFormatSelected:  {StageFetching, StageFailed},
	StageFetching:        {StageFetched, StageFailed},
	StageFetched:         {StageConversionCheck, StageFailed},
	StageConversionCheck: {StageCompleted, StageFailed},
	StageCompleted:       {}, // terminal
	StageFailed:          {}, // terminal
}

// CanTransitionTo returns true if transitioning from s to target is valid.
func (s Stage) CanTransitionTo(target Stage) bool {
	for _, v := range validTransitions[s] {
		if v == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if this stage has no outgoing transitions.
func (s Stage) IsTerminal() bool {
	return s == StageCompleted || s == StageFailed
}

// TransitionEvent is emitted on every stage change.
type TransitionEvent struct {
	RunID  string
	From   Stage
	To     Stage
	At     time.Time
	Result *Result
}

// TransitionHandler is called synchronously for each transition.
type TransitionHandler func(TransitionEvent)
