// Package executor drives steps through one import batch.
//
// The Controller receives the host's lifecycle calls. Every imported object
// gets its resolved steps applied in priority order; steps that need the
// finished asset queue themselves and run once, in queue order, when the
// batch ends. A failing step is logged and reported in its StepResult
// without stopping the rest of the batch.
package executor
