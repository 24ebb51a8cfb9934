package ops

import (
	"github.com/supafloof/backpacks/internal/errors"
	"github.com/supafloof/backpacks/internal/item"
)

// UpgradeInput contains parameters for the Upgrade operation.
type UpgradeInput struct {
	Item *item.Stack // required, the backpack being upgraded
}

// UpgradeOutput contains the result of the Upgrade operation.
type UpgradeOutput struct {
	Capacity int `json:"capacity"`
}

// Upgrade doubles the capacity of the given backpack item in place. Only
// the item's marker and display change; the identifier is untouched and
// neither the registry nor the store is involved, so stored contents
// simply gain room the next time the backpack opens.
func (s *Service) Upgrade(input UpgradeInput) (*UpgradeOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input.Item == nil || input.Item.IsEmpty() {
		return nil, errors.NewInvalidRequest("no item to upgrade")
	}
	if !item.IsContainer(input.Item) {
		return nil, errors.NewNotABackpack()
	}

	// A backpack that cannot name its container must not be upgraded:
	// the doubler would be spent on an item that can never open.
	id, ok := item.IdentifierOf(input.Item)
	if !ok || !item.ValidIdentifier(id) {
		return nil, errors.NewCorruptMarker()
	}

	if input.Item.Count != 1 {
		return nil, errors.NewStackedBackpack(input.Item.Count)
	}
	if item.CapacityOf(input.Item) >= item.DoubledCapacity {
		return nil, errors.NewAlreadyUpgraded(item.CapacityOf(input.Item))
	}

	item.Upgrade(input.Item)

	s.log.Info("upgraded backpack", "container", id, "capacity", item.DoubledCapacity)

	return &UpgradeOutput{Capacity: item.DoubledCapacity}, nil
}
