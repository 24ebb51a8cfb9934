package ops

import (
	"github.com/supafloof/backpacks/internal/errors"
	"github.com/supafloof/backpacks/internal/item"
)

// Item kinds accepted by Mint.
const (
	KindBackpack = "backpack"
	KindDoubler  = "doubler"
)

// MintInput contains parameters for the Mint operation.
type MintInput struct {
	Kind     string // "backpack" (default) or "doubler"
	Material string // backpacks only; defaults to the configured material
	Capacity int    // backpacks only; defaults to the base tier
}

// MintOutput contains the result of the Mint operation.
type MintOutput struct {
	Item     *item.Stack `json:"item"`
	ID       string      `json:"id,omitempty"`       // backpacks only
	Capacity int         `json:"capacity,omitempty"` // backpacks only
}

// Mint creates a fresh backpack or doubler item. New backpacks register
// their identifier immediately and get an empty record on disk, so a
// minted-but-never-opened backpack still shows up on the admin surfaces.
func (s *Service) Mint(input MintInput) (*MintOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch input.Kind {
	case KindDoubler:
		return &MintOutput{Item: item.NewUpgradeToken()}, nil
	case "", KindBackpack:
	default:
		return nil, errors.NewInvalidRequest("kind must be \"backpack\" or \"doubler\"")
	}

	capacity := input.Capacity
	if capacity == 0 {
		capacity = item.BaseCapacity
	}
	if !item.ValidCapacity(capacity) {
		return nil, errors.NewInvalidRequest("capacity must be 27 or 54")
	}

	material := input.Material
	if material == "" {
		material = s.cfg.BackpackItem
	}
	if !item.ValidMaterial(material) {
		return nil, errors.NewInvalidRequest("material is not a valid material name")
	}

	stack := item.NewContainer(material, capacity)
	if capacity == item.DoubledCapacity {
		item.Upgrade(stack)
	}

	id, _ := item.IdentifierOf(stack)
	s.registry.Ensure(id)
	s.store.Save(id, item.SlotMap{})

	s.log.Info("minted backpack", "container", id, "capacity", capacity, "material", material)

	return &MintOutput{Item: stack, ID: id, Capacity: capacity}, nil
}
