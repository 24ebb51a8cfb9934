package item

import (
	"slices"
	"strings"
)

// Stack represents one item stack as the host item system hands it to us:
// the visible fields plus an open tag map carrying arbitrary metadata,
// including the backpack marker keys. The storage codec treats the whole
// struct as an opaque blob; its wire shape is owned here.
type Stack struct {
	// Material is the host material name, e.g. "barrel" or "diamond_sword"
	Material string `yaml:"material" json:"material"`

	// Count is the stack quantity
	Count int `yaml:"count" json:"count"`

	// Name is the custom display name (empty = material default)
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Lore is the tooltip description lines
	Lore []string `yaml:"lore,omitempty" json:"lore,omitempty"`

	// Glint enables the enchanted glow effect
	Glint bool `yaml:"glint,omitempty" json:"glint,omitempty"`

	// Tags is the host metadata container (NBT equivalent)
	Tags map[string]any `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// IsEmpty reports whether the stack counts as an empty slot. Air and
// zero-count stacks are empty; empty slots are stored as absence, never as
// an entry.
func (s *Stack) IsEmpty() bool {
	if s == nil {
		return true
	}
	if s.Count <= 0 {
		return true
	}
	return s.Material == "" || strings.EqualFold(s.Material, "air")
}

// Clone returns a deep copy. Stored stacks must be independent of the live
// UI objects they were copied from, so lore and tags are copied all the way
// down.
func (s *Stack) Clone() *Stack {
	if s == nil {
		return nil
	}
	c := *s
	c.Lore = slices.Clone(s.Lore)
	c.Tags = cloneTagMap(s.Tags)
	return &c
}

// cloneTagMap deep-copies a tag map, descending into nested maps and
// slices (the shapes YAML and JSON decoding produce).
func cloneTagMap(tags map[string]any) map[string]any {
	if tags == nil {
		return nil
	}
	out := make(map[string]any, len(tags))
	for k, v := range tags {
		out[k] = cloneTagValue(v)
	}
	return out
}

func cloneTagValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneTagMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneTagValue(e)
		}
		return out
	default:
		return v
	}
}

// SlotMap is a sparse mapping from slot index to the stack occupying it.
// Absent keys mean empty slots.
type SlotMap map[int]*Stack

// Clone returns a deep copy of the map and every stack in it.
func (m SlotMap) Clone() SlotMap {
	if m == nil {
		return nil
	}
	out := make(SlotMap, len(m))
	for idx, s := range m {
		out[idx] = s.Clone()
	}
	return out
}

// Snapshot deep-copies the occupied slots only. Empty or nil stacks are
// dropped so the result honors the absence-means-empty invariant.
func (m SlotMap) Snapshot() SlotMap {
	out := make(SlotMap, len(m))
	for idx, s := range m {
		if s.IsEmpty() {
			continue
		}
		out[idx] = s.Clone()
	}
	return out
}

// Occupied returns the number of occupied slots.
func (m SlotMap) Occupied() int {
	n := 0
	for _, s := range m {
		if !s.IsEmpty() {
			n++
		}
	}
	return n
}
