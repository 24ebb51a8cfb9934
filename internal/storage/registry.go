package storage

import (
	"sync"

	"github.com/supafloof/backpacks/internal/item"
)

// Registry is the authoritative in-memory view of every container's
// contents. It is loaded wholesale at startup and updated by session
// closes; reads always see the latest closed state.
type Registry struct {
	mu         sync.RWMutex
	containers map[string]item.SlotMap
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{containers: make(map[string]item.SlotMap)}
}

// ReplaceAll swaps in a freshly loaded container set, discarding whatever
// the registry held before. The registry takes ownership of m.
func (r *Registry) ReplaceAll(m map[string]item.SlotMap) {
	if m == nil {
		m = make(map[string]item.SlotMap)
	}
	r.mu.Lock()
	r.containers = m
	r.mu.Unlock()
}

// Get returns a deep copy of the contents for id. Callers may mutate the
// result freely without holding any lock.
func (r *Registry) Get(id string) (item.SlotMap, bool) {
	r.mu.RLock()
	slots, ok := r.containers[id]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return slots.Clone(), true
}

// Put stores slots as the contents for id, replacing any previous entry.
// The registry takes ownership of slots; callers must not touch it after.
func (r *Registry) Put(id string, slots item.SlotMap) {
	if slots == nil {
		slots = item.SlotMap{}
	}
	r.mu.Lock()
	r.containers[id] = slots
	r.mu.Unlock()
}

// Ensure registers id with empty contents if it is not already known.
// Existing contents are left untouched.
func (r *Registry) Ensure(id string) {
	r.mu.Lock()
	if _, ok := r.containers[id]; !ok {
		r.containers[id] = item.SlotMap{}
	}
	r.mu.Unlock()
}

// Has reports whether id is known to the registry.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	_, ok := r.containers[id]
	r.mu.RUnlock()
	return ok
}

// Remove forgets id. Saved record files are untouched; this exists for
// explicit purges, not for normal play.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.containers, id)
	r.mu.Unlock()
}

// All returns a deep copy of every container keyed by identifier.
func (r *Registry) All() map[string]item.SlotMap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]item.SlotMap, len(r.containers))
	for id, slots := range r.containers {
		out[id] = slots.Clone()
	}
	return out
}

// IDs returns the known identifiers in no particular order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.containers))
	for id := range r.containers {
		out = append(out, id)
	}
	return out
}

// Len returns the number of known containers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.containers)
}

// Occupied returns the number of occupied slots for id, or 0 if unknown.
// Cheaper than Get when only the count is needed.
func (r *Registry) Occupied(id string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.containers[id].Occupied()
}
