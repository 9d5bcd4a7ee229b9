// Package core wires the importsteps components into one Engine.
//
// An Engine is built once per process with Initialize: it loads the
// configuration, opens or creates the state file and restores the step
// collections. Every mutation goes through the Engine and is flushed to the
// state file immediately. Close flushes once more.
//
// The Engine exposes the query and mutation operations configuration
// surfaces need (AddStep, RemoveStep, StepsForID, StepsForPattern,
// StepsForFolder) and creates lifecycle Controllers for import batches.
package core
