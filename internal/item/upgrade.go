package item

// Upgrade transitions a container stack from the base tier to the doubled
// tier in place. The capacity tag and lore change; the identifier does not.
// No registry or store interaction is needed because slot maps are sparse
// and capacity-agnostic at the storage layer, so the existing record
// already supports the doubled index range.
//
// Preconditions (single unstacked container currently at the base tier)
// are enforced by the caller, not here.
func Upgrade(s *Stack) {
	if s == nil || s.Tags == nil {
		return
	}
	s.Tags[TagCapacity] = DoubledCapacity
	s.Lore = containerLore(DoubledCapacity, true)
}
