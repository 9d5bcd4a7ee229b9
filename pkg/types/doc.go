// Package types defines the core data model shared by the step pipeline:
// type tags and their hierarchy, the Target a step is attached to, and the
// ImportedObject the host hands over for each imported file.
package types
