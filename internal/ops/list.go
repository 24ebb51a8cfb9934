package ops

import (
	"slices"

	"github.com/supafloof/backpacks/internal/item"
)

// ContainerSummary describes one known container without its contents.
type ContainerSummary struct {
	ID       string `json:"id"`
	Personal bool   `json:"personal"`
	Occupied int    `json:"occupied"`
	Open     bool   `json:"open"`
}

// ListInput contains parameters for the List operation.
type ListInput struct {
	Limit  int // default: 20, max: 100
	Offset int // default: 0
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []ContainerSummary `json:"items"`
	Pagination Pagination         `json:"pagination"`
	Sort       string             `json:"sort"`
}

// List returns known containers ordered by identifier with pagination.
func (s *Service) List(input ListInput) *ListOutput {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Apply limit defaults and bounds
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	// Ensure offset is non-negative
	offset := max(input.Offset, 0)

	ids := s.registry.IDs()
	slices.Sort(ids)
	total := len(ids)

	open := make(map[string]bool)
	for _, sess := range s.sessions.All() {
		open[sess.Container] = true
	}

	start := min(offset, total)
	end := min(offset+limit, total)

	// Ensure we return an empty array rather than nil
	items := make([]ContainerSummary, 0, end-start)
	for _, id := range ids[start:end] {
		items = append(items, ContainerSummary{
			ID:       id,
			Personal: item.IsPersonalIdentifier(id),
			Occupied: s.registry.Occupied(id),
			Open:     open[id],
		})
	}

	return &ListOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
		Sort: "id_asc",
	}
}
