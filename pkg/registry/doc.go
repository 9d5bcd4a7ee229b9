// Package registry provides a generic, thread-safe table of values keyed by
// a string type. The step kind table registers every built-in kind in it
// from an init function.
package registry
