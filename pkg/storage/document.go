package storage

import (
	"github.com/arthur-debert/importsteps/pkg/pattern"
	"github.com/arthur-debert/importsteps/pkg/suffix"
)

// CurrentVersion is written into every new state document
const CurrentVersion = 1

// Document is the persisted state: both step collections plus the suffix
// table and the wildcard tokens the patterns were written with
type Document struct {
	Version      int                     `toml:"version" yaml:"version"`
	Wildcards    pattern.Wildcards       `toml:"wildcards" yaml:"wildcards"`
	Suffixes     SuffixSettings          `toml:"suffixes" yaml:"suffixes"`
	IDSteps      map[string][]StepRecord `toml:"id_steps" yaml:"id_steps"`
	PatternSteps []StepRecord            `toml:"pattern_steps" yaml:"pattern_steps"`

	// records DecodeSteps could not rebuild; written back untouched
	heldIDs      map[string][]StepRecord
	heldPatterns []StepRecord
}

// Held returns how many stored records are kept without being loaded
func (d *Document) Held() int {
	n := len(d.heldPatterns)
	for _, records := range d.heldIDs {
		n += len(records)
	}
	return n
}

// DropHeld forgets the records kept by DecodeSteps, so the next save
// removes them from the file
func (d *Document) DropHeld() {
	d.heldIDs = nil
	d.heldPatterns = nil
}

// SuffixSettings is the persisted suffix table
type SuffixSettings struct {
	Separator           string        `toml:"separator" yaml:"separator"`
	SeparatorVariations []string      `toml:"separator_variations" yaml:"separator_variations"`
	Rules               []suffix.Rule `toml:"rules" yaml:"rules"`
}

// StepRecord is one serialized step. Params holds the kind's declared
// fields as name/value pairs.
type StepRecord struct {
	ID       string            `toml:"id" yaml:"id"`
	Kind     string            `toml:"kind" yaml:"kind"`
	Enabled  bool              `toml:"enabled" yaml:"enabled"`
	Priority int               `toml:"priority" yaml:"priority"`
	Target   TargetRecord      `toml:"target" yaml:"target"`
	Params   map[string]string `toml:"params,omitempty" yaml:"params,omitempty"`
}

// TargetRecord is a serialized target
type TargetRecord struct {
	StableID      string   `toml:"stable_id,omitempty" yaml:"stable_id,omitempty"`
	Path          string   `toml:"path,omitempty" yaml:"path,omitempty"`
	SubAssetMatch string   `toml:"sub_asset_match,omitempty" yaml:"sub_asset_match,omitempty"`
	Types         []string `toml:"types" yaml:"types"`
}

// DefaultDocument returns an empty state using w and table
func DefaultDocument(w pattern.Wildcards, table *suffix.Table) *Document {
	doc := &Document{
		Version:   CurrentVersion,
		Wildcards: w,
		IDSteps:   make(map[string][]StepRecord),
	}
	doc.SetSuffixes(table)
	return doc
}

// SetSuffixes copies table into the document
func (d *Document) SetSuffixes(table *suffix.Table) {
	d.Suffixes = SuffixSettings{
		Separator:           table.Separator,
		SeparatorVariations: append([]string(nil), table.SeparatorVariations...),
		Rules:               append([]suffix.Rule(nil), table.Rules...),
	}
}

// SuffixTable builds a suffix table from the document, falling back to the
// defaults for anything left empty
func (d *Document) SuffixTable() *suffix.Table {
	table := suffix.DefaultTable()
	if d.Suffixes.Separator != "" {
		table.Separator = d.Suffixes.Separator
	}
	if len(d.Suffixes.SeparatorVariations) > 0 {
		table.SeparatorVariations = append([]string(nil), d.Suffixes.SeparatorVariations...)
	}
	if len(d.Suffixes.Rules) > 0 {
		table.Rules = append([]suffix.Rule(nil), d.Suffixes.Rules...)
	}
	return table
}

// StepCount counts the records in both collections
func (d *Document) StepCount() int {
	n := len(d.PatternSteps)
	for _, list := range d.IDSteps {
		n += len(list)
	}
	return n
}
