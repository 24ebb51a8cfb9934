package item

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Marker tag keys stored in a stack's tag map. Once written to an item
// instance, the identifier key never changes; upgrades rewrite only the
// capacity key and the display text.
const (
	TagContainer    = "backpack"
	TagCapacity     = "backpack_size"
	TagIdentifier   = "backpack_uuid"
	TagUpgradeToken = "doubler"
)

// Capacity tiers. These are the only legal slot counts; capacity never
// decreases.
const (
	BaseCapacity    = 27
	DoubledCapacity = 54
)

// personalPrefix distinguishes the deterministic per-account identifier
// namespace from the random item-backed one.
const personalPrefix = "personal-"

// Marker is the identity/capacity/kind data read off an item's tags.
type Marker struct {
	Container    bool   `json:"container"`
	UpgradeToken bool   `json:"upgrade_token"`
	Capacity     int    `json:"capacity,omitempty"`
	Identifier   string `json:"identifier,omitempty"`
}

// MarkerOf reads the marker data from a stack's tags. A nil stack or a
// stack without tags yields a zero Marker, never an error.
func MarkerOf(s *Stack) Marker {
	if s == nil || s.Tags == nil {
		return Marker{}
	}
	m := Marker{
		Container:    tagBool(s.Tags, TagContainer),
		UpgradeToken: tagBool(s.Tags, TagUpgradeToken),
	}
	if m.Container {
		m.Capacity = BaseCapacity
		if n, ok := tagInt(s.Tags, TagCapacity); ok {
			m.Capacity = n
		}
		m.Identifier, _ = tagString(s.Tags, TagIdentifier)
	}
	return m
}

// IsContainer reports whether the stack carries the container marker.
func IsContainer(s *Stack) bool {
	return MarkerOf(s).Container
}

// IsUpgradeToken reports whether the stack carries the upgrade-token marker.
func IsUpgradeToken(s *Stack) bool {
	return MarkerOf(s).UpgradeToken
}

// CapacityOf returns the stack's stored capacity, defaulting to the base
// tier when the field is missing, or 0 for a non-container.
func CapacityOf(s *Stack) int {
	m := MarkerOf(s)
	if !m.Container {
		return 0
	}
	return m.Capacity
}

// IdentifierOf returns the stack's container identifier. ok is false for a
// non-container or when the identifier tag is missing; callers treat the
// latter as marker corruption, never as a prompt to generate a fresh one.
func IdentifierOf(s *Stack) (string, bool) {
	m := MarkerOf(s)
	if !m.Container || m.Identifier == "" {
		return "", false
	}
	return m.Identifier, true
}

// ValidCapacity reports whether n is one of the two legal tiers.
func ValidCapacity(n int) bool {
	return n == BaseCapacity || n == DoubledCapacity
}

// PersonalIdentifier derives the deterministic container identifier for an
// account. Same account, same identifier, always.
func PersonalIdentifier(accountID string) string {
	return personalPrefix + accountID
}

// IsPersonalIdentifier reports whether id belongs to the personal
// namespace.
func IsPersonalIdentifier(id string) bool {
	return strings.HasPrefix(id, personalPrefix)
}

// identifierPattern rejects anything that could escape the record
// directory once the identifier becomes a filename.
var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidIdentifier reports whether id is shaped like a container identifier:
// a random UUID or a personal token. Identifiers become record filenames,
// so everything else is rejected before it reaches the filesystem.
func ValidIdentifier(id string) bool {
	if id == "" || !identifierPattern.MatchString(id) {
		return false
	}
	if IsPersonalIdentifier(id) {
		return len(id) > len(personalPrefix)
	}
	return uuid.Validate(id) == nil
}

// tagBool reads a boolean tag. Hosts hand tags through YAML or JSON
// decoding, so values arrive under varying concrete types.
func tagBool(tags map[string]any, key string) bool {
	v, ok := tags[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func tagInt(tags map[string]any, key string) (int, bool) {
	switch v := tags[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func tagString(tags map[string]any, key string) (string, bool) {
	v, ok := tags[key].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
