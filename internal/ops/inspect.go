package ops

import (
	"slices"

	"github.com/sahilm/fuzzy"

	"github.com/supafloof/backpacks/internal/errors"
	"github.com/supafloof/backpacks/internal/item"
)

// maxAmbiguousCandidates caps the candidate list returned with an
// ambiguous-identifier error.
const maxAmbiguousCandidates = 5

// InspectInput contains parameters for the Inspect operation.
type InspectInput struct {
	Query string // required, full identifier or a fragment of one
}

// SlotView is one occupied slot in inspect output, ordered by index.
type SlotView struct {
	Slot     int    `json:"slot"`
	Material string `json:"material"`
	Count    int    `json:"count"`
	Name     string `json:"name,omitempty"`
}

// InspectOutput contains the result of the Inspect operation.
type InspectOutput struct {
	ID       string     `json:"id"`
	Personal bool       `json:"personal"`
	OnDisk   bool       `json:"on_disk"`
	Occupied int        `json:"occupied"`
	Accounts []string   `json:"accounts,omitempty"` // accounts with the container open
	Slots    []SlotView `json:"slots"`
}

// Inspect resolves a full or partial identifier to a single container and
// returns its current contents as the registry sees them. Fragments that
// match several containers fail with the candidate list instead of
// guessing.
func (s *Service) Inspect(input InspectInput) (*InspectOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input.Query == "" {
		return nil, errors.NewInvalidRequest("identifier is required")
	}

	id, err := s.resolveLocked(input.Query)
	if err != nil {
		return nil, err
	}

	slots, _ := s.registry.Get(id)

	out := &InspectOutput{
		ID:       id,
		Personal: item.IsPersonalIdentifier(id),
		OnDisk:   s.store.Exists(id),
		Occupied: slots.Occupied(),
		Slots:    make([]SlotView, 0, len(slots)),
	}

	for _, sess := range s.sessions.All() {
		if sess.Container == id {
			out.Accounts = append(out.Accounts, sess.AccountID)
		}
	}

	indices := make([]int, 0, len(slots))
	for idx := range slots {
		indices = append(indices, idx)
	}
	slices.Sort(indices)
	for _, idx := range indices {
		st := slots[idx]
		out.Slots = append(out.Slots, SlotView{
			Slot:     idx,
			Material: st.Material,
			Count:    st.Count,
			Name:     st.Name,
		})
	}

	return out, nil
}

// resolveLocked maps a query to exactly one known identifier. Exact hits
// win outright; otherwise a fuzzy match must be unique.
func (s *Service) resolveLocked(query string) (string, error) {
	if s.registry.Has(query) {
		return query, nil
	}

	ids := s.registry.IDs()
	slices.Sort(ids)

	matches := fuzzy.Find(query, ids)
	switch len(matches) {
	case 0:
		return "", errors.NewNotFound(query)
	case 1:
		return matches[0].Str, nil
	}

	candidates := make([]string, 0, maxAmbiguousCandidates)
	for _, m := range matches {
		candidates = append(candidates, m.Str)
		if len(candidates) == maxAmbiguousCandidates {
			break
		}
	}
	return "", errors.NewAmbiguousIdentifier(query, candidates)
}
