package core

import (
	"time"

	"github.com/arthur-debert/importsteps/pkg/executor"
	"github.com/arthur-debert/importsteps/pkg/steps"
	"github.com/arthur-debert/importsteps/pkg/types"
)

// ObjectReport groups the immediate results for one object
type ObjectReport struct {
	Object  *types.ImportedObject
	Results []executor.StepResult
}

// BatchReport is the outcome of one import batch
type BatchReport struct {
	Objects  []ObjectReport
	Deferred []executor.StepResult
	Duration time.Duration
}

// Failed counts failed steps in both phases
func (r *BatchReport) Failed() int {
	n := executor.Failed(r.Deferred)
	for _, o := range r.Objects {
		n += executor.Failed(o.Results)
	}
	return n
}

// Applied counts steps that ran and succeeded, skipped ones excluded
func (r *BatchReport) Applied() int {
	n := 0
	count := func(results []executor.StepResult) {
		for _, res := range results {
			if res.Success && !res.Skipped {
				n++
			}
		}
	}
	for _, o := range r.Objects {
		count(o.Results)
	}
	count(r.Deferred)
	return n
}

// RunBatch imports objects as one batch, in order
func (e *Engine) RunBatch(objects []*types.ImportedObject, importer string) *BatchReport {
	start := time.Now()
	c := e.NewController()
	report := &BatchReport{}

	c.BeginBatch()
	for _, obj := range objects {
		c.OnPreprocess(obj.AssetPath)
		results := c.OnObjectImported(obj, steps.ImportContext{Importer: importer})
		report.Objects = append(report.Objects, ObjectReport{Object: obj, Results: results})
	}
	report.Deferred = c.EndBatch()
	report.Duration = time.Since(start)

	e.logger.Info().
		Int("objects", len(objects)).
		Int("applied", report.Applied()).
		Int("failed", report.Failed()).
		Dur("duration", report.Duration).
		Msg("Batch imported")
	return report
}
