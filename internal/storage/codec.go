package storage

import (
	"fmt"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/supafloof/backpacks/internal/item"
)

// recordKey is the single grouping key in every record document. Children
// are decimal slot-index strings mapping to item blobs.
const recordKey = "slot"

// record mirrors the on-disk document shape. Values stay as raw nodes so
// one bad entry cannot abort the rest of the record.
type record struct {
	Slot map[string]yaml.Node `yaml:"slot"`
}

// Encode serializes the occupied slots of a slot map to the record format.
// Empty stacks and negative indices are never written; entries are emitted
// in ascending index order so records diff cleanly.
func Encode(slots item.SlotMap) ([]byte, error) {
	indices := make([]int, 0, len(slots))
	for idx, s := range slots {
		if idx < 0 || s.IsEmpty() {
			continue
		}
		indices = append(indices, idx)
	}
	slices.Sort(indices)

	entries := &yaml.Node{Kind: yaml.MappingNode}
	for _, idx := range indices {
		key := &yaml.Node{}
		key.SetString(strconv.Itoa(idx))
		val := &yaml.Node{}
		if err := val.Encode(slots[idx]); err != nil {
			return nil, fmt.Errorf("encode slot %d: %w", idx, err)
		}
		entries.Content = append(entries.Content, key, val)
	}

	return yaml.Marshal(map[string]*yaml.Node{recordKey: entries})
}

// Decode parses a record document back into a slot map. Per-entry failures
// (non-numeric or negative slot keys, undecodable item blobs) drop that
// entry and are reported in dropped for the caller to log; only a
// document-level parse failure returns an error. A document without the
// grouping key decodes to an empty map.
func Decode(data []byte) (slots item.SlotMap, dropped []string, err error) {
	var rec record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, nil, fmt.Errorf("parse record: %w", err)
	}

	slots = make(item.SlotMap, len(rec.Slot))
	for key, node := range rec.Slot {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 {
			dropped = append(dropped, fmt.Sprintf("slot key %q is not a non-negative integer", key))
			continue
		}

		var s item.Stack
		if err := node.Decode(&s); err != nil {
			dropped = append(dropped, fmt.Sprintf("slot %d holds an undecodable item: %v", idx, err))
			continue
		}
		if s.IsEmpty() {
			// Empty slots are represented by absence; a stored empty
			// entry is noise from outside editing.
			continue
		}
		slots[idx] = &s
	}

	return slots, dropped, nil
}
