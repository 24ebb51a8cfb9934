package item

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// DefaultMaterial is the container material used when the configured one
// is unusable.
const DefaultMaterial = "barrel"

// materialPattern matches material identifiers like "barrel" or
// "red_shulker_box".
var materialPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// ValidMaterial reports whether name is shaped like a material identifier.
func ValidMaterial(name string) bool {
	return materialPattern.MatchString(name)
}

// tokenMaterial is the upgrade token's fixed material.
const tokenMaterial = "paper"

// Display text shared by creation and upgrade.
const (
	containerName   = "Backpack"
	tokenName       = "Backpack Capacity Doubler"
	loreDescription = "A portable storage container"
	loreUsage       = "Right-click to open"
	upgradeBadge    = "✦ UPGRADED ✦"
)

// NewContainer creates a transferable container stack with a fresh random
// identifier. The identifier links the physical item to its storage record;
// duplicated items keep their own identifiers and therefore their own
// inventories. Registration of the identifier with the registry and store
// is the caller's job.
func NewContainer(material string, capacity int) *Stack {
	if material == "" {
		material = DefaultMaterial
	}
	return &Stack{
		Material: material,
		Count:    1,
		Name:     containerName,
		Lore:     containerLore(capacity, false),
		Glint:    true,
		Tags: map[string]any{
			TagContainer:  true,
			TagCapacity:   capacity,
			TagIdentifier: uuid.NewString(),
		},
	}
}

// NewUpgradeToken creates a capacity doubler stack. Tokens are stateless
// beyond their marker flag and stack freely.
func NewUpgradeToken() *Stack {
	return &Stack{
		Material: tokenMaterial,
		Count:    1,
		Name:     tokenName,
		Lore: []string{
			"Doubles backpack storage capacity",
			fmt.Sprintf("%d slots → %d slots", BaseCapacity, DoubledCapacity),
			"",
			"Right-click onto a backpack to apply",
		},
		Glint: true,
		Tags: map[string]any{
			TagUpgradeToken: true,
		},
	}
}

// containerLore builds the tooltip lines for a container at the given
// capacity.
func containerLore(capacity int, upgraded bool) []string {
	lore := []string{
		loreDescription,
		fmt.Sprintf("Capacity: %d slots", capacity),
	}
	if upgraded {
		lore = append(lore, upgradeBadge)
	}
	return append(lore, "", loreUsage)
}
