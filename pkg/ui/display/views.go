// Package display holds the view models the renderers draw. They are plain
// data with json tags so every output format shows the same thing.
package display

import (
	"sort"
	"time"

	"github.com/arthur-debert/importsteps/pkg/core"
	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/executor"
	"github.com/arthur-debert/importsteps/pkg/steps"
	"github.com/arthur-debert/importsteps/pkg/types"
)

// Result statuses
const (
	StatusApplied  = "applied"
	StatusSkipped  = "skipped"
	StatusDeferred = "deferred"
	StatusFailed   = "failed"
)

// StepView is one configured step
type StepView struct {
	ID            string            `json:"id"`
	Kind          string            `json:"kind"`
	Target        string            `json:"target"`
	SubAssetMatch string            `json:"sub_asset_match,omitempty"`
	Types         string            `json:"types"`
	Enabled       bool              `json:"enabled"`
	Priority      int               `json:"priority"`
	Deferred      bool              `json:"deferred"`
	Summary       string            `json:"summary"`
	Params        map[string]string `json:"params,omitempty"`
}

// StepList is a titled list of steps, in the order they were given
type StepList struct {
	Title string     `json:"title"`
	Steps []StepView `json:"steps"`
}

// NewStepView builds the view of s. universe is the set of known type tags,
// used to print "Everything".
func NewStepView(s *steps.Step, universe []types.TypeTag) StepView {
	v := StepView{
		ID:            s.ID,
		Kind:          string(s.Kind()),
		Target:        s.Target.String(),
		SubAssetMatch: s.Target.SubAssetMatch,
		Types:         s.Target.DescribeTypes(universe),
		Enabled:       s.Enabled,
		Priority:      s.Priority,
		Summary:       s.String(),
	}
	if s.Params != nil {
		v.Deferred = s.IsDeferred()
		if params, err := steps.EncodeParams(s.Params); err == nil && len(params) > 0 {
			v.Params = params
		}
	}
	return v
}

// NewStepList builds a list view
func NewStepList(title string, list []*steps.Step, universe []types.TypeTag) *StepList {
	out := &StepList{Title: title, Steps: make([]StepView, 0, len(list))}
	for _, s := range list {
		out.Steps = append(out.Steps, NewStepView(s, universe))
	}
	return out
}

// ResultView is the outcome of one step on one asset
type ResultView struct {
	StepID     string  `json:"step_id"`
	Kind       string  `json:"kind"`
	Asset      string  `json:"asset"`
	Phase      string  `json:"phase"`
	Status     string  `json:"status"`
	Error      string  `json:"error,omitempty"`
	Code       string  `json:"code,omitempty"`
	DurationMS float64 `json:"duration_ms"`
}

// NewResultView builds the view of one executor result
func NewResultView(r executor.StepResult) ResultView {
	v := ResultView{
		Asset:      r.AssetPath,
		Phase:      r.Phase.String(),
		DurationMS: float64(r.Duration) / float64(time.Millisecond),
	}
	if r.Step != nil {
		v.StepID = r.Step.ID
		v.Kind = string(r.Step.Kind())
	}

	switch {
	case r.Error != nil:
		v.Status = StatusFailed
		v.Error = r.Error.Error()
		if code := errors.GetErrorCode(r.Error); code != errors.ErrUnknown {
			v.Code = string(code)
		}
	case r.Skipped:
		v.Status = StatusSkipped
	case r.Deferred:
		v.Status = StatusDeferred
	default:
		v.Status = StatusApplied
	}
	return v
}

func newResultViews(results []executor.StepResult) []ResultView {
	out := make([]ResultView, 0, len(results))
	for _, r := range results {
		out = append(out, NewResultView(r))
	}
	return out
}

// ObjectView is one imported object and its immediate results
type ObjectView struct {
	Asset   string       `json:"asset"`
	Name    string       `json:"name"`
	Types   []string     `json:"types"`
	Results []ResultView `json:"results"`
}

// BatchView summarizes an import batch
type BatchView struct {
	Objects    []ObjectView `json:"objects"`
	Deferred   []ResultView `json:"deferred"`
	Applied    int          `json:"applied"`
	Failed     int          `json:"failed"`
	DurationMS float64      `json:"duration_ms"`
}

// NewBatchView builds the view of a batch report
func NewBatchView(r *core.BatchReport) *BatchView {
	v := &BatchView{
		Objects:    make([]ObjectView, 0, len(r.Objects)),
		Deferred:   newResultViews(r.Deferred),
		Applied:    r.Applied(),
		Failed:     r.Failed(),
		DurationMS: float64(r.Duration) / float64(time.Millisecond),
	}
	for _, o := range r.Objects {
		ov := ObjectView{Results: newResultViews(o.Results)}
		if o.Object != nil {
			ov.Asset = o.Object.AssetPath
			ov.Name = o.Object.DisplayName()
			ov.Types = types.Strings(o.Object.Types)
		}
		v.Objects = append(v.Objects, ov)
	}
	return v
}

// SuffixRow is one name passed through suffix unification
type SuffixRow struct {
	Input   string `json:"input"`
	Output  string `json:"output"`
	Changed bool   `json:"changed"`
}

// SuffixView is the result of unifying a set of names
type SuffixView struct {
	Separator  string      `json:"separator"`
	IgnoreCase bool        `json:"ignore_case"`
	Rows       []SuffixRow `json:"rows"`
}

// NewSuffixView runs names through resolve and records each outcome
func NewSuffixView(separator string, ignoreCase bool, names []string, resolve func(string) string) *SuffixView {
	v := &SuffixView{Separator: separator, IgnoreCase: ignoreCase, Rows: make([]SuffixRow, 0, len(names))}
	for _, name := range names {
		out := resolve(name)
		v.Rows = append(v.Rows, SuffixRow{Input: name, Output: out, Changed: out != name})
	}
	return v
}

// KindView describes a step kind
type KindView struct {
	Kind     string   `json:"kind"`
	WorksFor []string `json:"works_for"`
	Deferred bool     `json:"deferred"`
	Params   []string `json:"params"`
}

// KindList lists every registered kind
type KindList struct {
	Kinds []KindView `json:"kinds"`
}

// NewKindList describes every registered step kind, in name order
func NewKindList() *KindList {
	out := &KindList{}
	for _, kind := range steps.Kinds() {
		params, err := steps.NewParams(kind)
		if err != nil {
			continue
		}
		kv := KindView{Kind: string(kind), WorksFor: types.Strings(params.WorksFor())}
		_, kv.Deferred = params.(steps.Completer)
		if fields, err := steps.EncodeParams(params); err == nil {
			for name := range fields {
				kv.Params = append(kv.Params, name)
			}
			sort.Strings(kv.Params)
		}
		out.Kinds = append(out.Kinds, kv)
	}
	return out
}
