package types

import (
	"strings"
)

// Target identifies what a step applies to. A target with a StableID is an
// id-target and its PathPattern is ignored; otherwise it is a pattern-target.
type Target struct {
	StableID      string
	PathPattern   string
	SubAssetMatch string
	Types         []TypeTag
}

// NewIDTarget creates a target anchored to a stable asset id
func NewIDTarget(id string, tags ...TypeTag) Target {
	return Target{StableID: id, Types: append([]TypeTag(nil), tags...)}
}

// NewPatternTarget creates a target matched by path pattern and types
func NewPatternTarget(pattern string, tags ...TypeTag) Target {
	return Target{PathPattern: pattern, Types: append([]TypeTag(nil), tags...)}
}

// IsIDTarget reports whether the target is anchored to a stable id
func (t Target) IsIDTarget() bool {
	return t.StableID != ""
}

// IsEmpty is true when the target has no id, no path and no types
func (t Target) IsEmpty() bool {
	return t.StableID == "" && t.PathPattern == "" && len(t.Types) == 0
}

// TargetsNoTypes is true when the target declares no types. Such a target
// matches nothing.
func (t Target) TargetsNoTypes() bool {
	return len(t.Types) == 0
}

// TargetsContainType reports an exact membership of tag
func (t Target) TargetsContainType(tag TypeTag) bool {
	for _, d := range t.Types {
		if d == tag {
			return true
		}
	}
	return false
}

// CheckType reports whether any of the given tags is, or descends from, a
// declared type.
func (t Target) CheckType(h *Hierarchy, tags ...TypeTag) bool {
	return h.AnyIsA(tags, t.Types)
}

// SwitchType toggles tag in the declared set. The set is rebuilt, never
// edited in place, so copies of the target keep their own types.
func (t *Target) SwitchType(tag TypeTag) {
	if tag == "" {
		return
	}
	next := make([]TypeTag, 0, len(t.Types)+1)
	found := false
	for _, d := range t.Types {
		if d == tag {
			found = true
			continue
		}
		next = append(next, d)
	}
	if !found {
		next = append(next, tag)
	}
	t.Types = next
}

// SetAllTypes replaces the declared set
func (t *Target) SetAllTypes(tags []TypeTag) {
	t.Types = append([]TypeTag(nil), tags...)
}

// ClearAllTypes empties the declared set
func (t *Target) ClearAllTypes() {
	t.Types = nil
}

// DescribeTypes renders the declared set for display. An empty set is
// "Nothing". "Everything" is used only when universe has more than one tag
// and every one of them is declared.
func (t Target) DescribeTypes(universe []TypeTag) string {
	if len(t.Types) == 0 {
		return "Nothing"
	}

	if len(universe) > 1 && coversAll(t.Types, universe) {
		return "Everything"
	}

	names := make([]string, len(t.Types))
	for i, tag := range t.Types {
		names[i] = string(tag)
	}
	return strings.Join(names, " | ")
}

// String describes the anchor of the target
func (t Target) String() string {
	if t.IsIDTarget() {
		return "id:" + t.StableID
	}
	return t.PathPattern
}

func coversAll(declared, universe []TypeTag) bool {
	set := make(map[TypeTag]bool, len(declared))
	for _, d := range declared {
		set[d] = true
	}
	for _, u := range universe {
		if !set[u] {
			return false
		}
	}
	return true
}
