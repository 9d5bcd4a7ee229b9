package types

import (
	"sort"
)

// TypeTag names a kind of importable object, like "Mesh" or "Texture2D"
type TypeTag string

// Built-in type tags
const (
	TypeObject        TypeTag = "Object"
	TypeGameObject    TypeTag = "GameObject"
	TypeMesh          TypeTag = "Mesh"
	TypeMaterial      TypeTag = "Material"
	TypeAnimationClip TypeTag = "AnimationClip"
	TypeTexture       TypeTag = "Texture"
	TypeTexture2D     TypeTag = "Texture2D"
	TypeAudioClip     TypeTag = "AudioClip"
)

// DefaultParents maps each built-in tag to its parent. Object is the root.
var DefaultParents = map[TypeTag]TypeTag{
	TypeGameObject:    TypeObject,
	TypeMesh:          TypeObject,
	TypeMaterial:      TypeObject,
	TypeAnimationClip: TypeObject,
	TypeTexture:       TypeObject,
	TypeTexture2D:     TypeTexture,
	TypeAudioClip:     TypeObject,
}

// Hierarchy resolves subtype relations between type tags
type Hierarchy struct {
	parents map[TypeTag]TypeTag
	known   map[TypeTag]bool
}

// NewHierarchy builds a hierarchy from a child -> parent map. Tags that only
// appear as parents are known roots.
func NewHierarchy(parents map[TypeTag]TypeTag) *Hierarchy {
	h := &Hierarchy{
		parents: make(map[TypeTag]TypeTag, len(parents)),
		known:   make(map[TypeTag]bool, len(parents)+1),
	}
	for child, parent := range parents {
		if child == "" {
			continue
		}
		h.known[child] = true
		if parent != "" && parent != child {
			h.parents[child] = parent
			h.known[parent] = true
		}
	}
	return h
}

// DefaultHierarchy returns the built-in hierarchy
func DefaultHierarchy() *Hierarchy {
	return NewHierarchy(DefaultParents)
}

// Known reports whether tag is part of the hierarchy
func (h *Hierarchy) Known(tag TypeTag) bool {
	return h.known[tag]
}

// IsA reports whether tag equals ancestor or descends from it
func (h *Hierarchy) IsA(tag, ancestor TypeTag) bool {
	if tag == "" || ancestor == "" {
		return false
	}
	// bounded walk so a cyclic user hierarchy cannot loop forever
	for i := 0; i <= len(h.parents); i++ {
		if tag == ancestor {
			return true
		}
		parent, ok := h.parents[tag]
		if !ok {
			return false
		}
		tag = parent
	}
	return false
}

// AnyIsA reports whether any candidate tag IsA any of the declared tags
func (h *Hierarchy) AnyIsA(candidates, declared []TypeTag) bool {
	for _, c := range candidates {
		for _, d := range declared {
			if h.IsA(c, d) {
				return true
			}
		}
	}
	return false
}

// Tags returns every known tag sorted by name
func (h *Hierarchy) Tags() []TypeTag {
	tags := make([]TypeTag, 0, len(h.known))
	for tag := range h.known {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// ParseTypeTags converts raw strings into tags and reports the ones the
// hierarchy does not know. Unknown tags are still returned so they survive
// a load/save round trip.
func (h *Hierarchy) ParseTypeTags(raw []string) (tags []TypeTag, unknown []string) {
	for _, s := range raw {
		if s == "" {
			continue
		}
		tag := TypeTag(s)
		if !h.Known(tag) {
			unknown = append(unknown, s)
		}
		tags = append(tags, tag)
	}
	return tags, unknown
}

// Strings converts tags back to plain strings
func Strings(tags []TypeTag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}
