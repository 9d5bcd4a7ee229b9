package executor

import (
	"time"

	"github.com/arthur-debert/importsteps/pkg/steps"
)

// Phase is the lifecycle state of a controller
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePreprocessing
	PhasePostprocessing
	PhaseBatchFinalizing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePreprocessing:
		return "preprocessing"
	case PhasePostprocessing:
		return "postprocessing"
	case PhaseBatchFinalizing:
		return "batch-finalizing"
	default:
		return "unknown"
	}
}

// DeferredItem is a step waiting for the end of the batch
type DeferredItem struct {
	Step      *steps.Step
	AssetPath string
}

// StepResult records what happened to one step on one asset
type StepResult struct {
	Step      *steps.Step
	AssetPath string
	Phase     Phase
	Success   bool
	Skipped   bool // step disabled
	Deferred  bool // queued for the end of the batch
	Error     error
	Duration  time.Duration
}

// Failed counts the results that carry an error
func Failed(results []StepResult) int {
	n := 0
	for _, r := range results {
		if r.Error != nil {
			n++
		}
	}
	return n
}
