package ops

import (
	"github.com/supafloof/backpacks/internal/errors"
	"github.com/supafloof/backpacks/internal/item"
	"github.com/supafloof/backpacks/internal/session"
)

// OpenInput contains parameters for the Open operation.
type OpenInput struct {
	AccountID string      // required, the user opening the backpack
	Item      *item.Stack // required, the backpack item in hand
}

// OpenOutput contains the result of the Open and OpenPersonal operations.
type OpenOutput struct {
	Session *session.Session `json:"session"`
	Created bool             `json:"created"` // identifier was seen for the first time
}

// Open starts a session over the backpack item the user is holding. The
// item's marker decides which container backs the view and how many
// slots it gets; the item itself stores nothing.
func (s *Service) Open(input OpenInput) (*OpenOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input.AccountID == "" {
		return nil, errors.NewInvalidRequest("account id is required")
	}
	if input.Item == nil || input.Item.IsEmpty() {
		return nil, errors.NewInvalidRequest("no item to open")
	}
	if !item.IsContainer(input.Item) {
		return nil, errors.NewNotABackpack()
	}

	// A marked container without a usable identifier is corruption.
	// Minting a replacement here would orphan the stored contents.
	id, ok := item.IdentifierOf(input.Item)
	if !ok || !item.ValidIdentifier(id) {
		return nil, errors.NewCorruptMarker()
	}

	capacity := item.CapacityOf(input.Item)
	if !item.ValidCapacity(capacity) {
		s.log.Warn("backpack carries an illegal capacity, using base tier",
			"container", id, "capacity", capacity)
		capacity = item.BaseCapacity
	}

	return s.openLocked(input.AccountID, id, capacity), nil
}

// OpenPersonalInput contains parameters for the OpenPersonal operation.
type OpenPersonalInput struct {
	AccountID string // required
}

// OpenPersonal opens the account's personal backpack, the one that needs
// no item. The identifier derives from the account, so every server
// sharing the data directory resolves the same container.
func (s *Service) OpenPersonal(input OpenPersonalInput) (*OpenOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input.AccountID == "" {
		return nil, errors.NewInvalidRequest("account id is required")
	}
	id := item.PersonalIdentifier(input.AccountID)
	if !item.ValidIdentifier(id) {
		return nil, errors.NewInvalidRequest("account id contains invalid characters")
	}

	return s.openLocked(input.AccountID, id, s.cfg.PersonalCapacity), nil
}

// openLocked finishes an open once identity and capacity are settled.
// A session the account already holds is flushed first, so nothing is
// lost when the host skipped a close event.
func (s *Service) openLocked(accountID, containerID string, capacity int) *OpenOutput {
	if _, ok := s.sessions.Get(accountID); ok {
		s.closeLocked(accountID)
	}

	created := !s.registry.Has(containerID)
	if created {
		s.registry.Ensure(containerID)
	}

	contents, _ := s.registry.Get(containerID)
	sess := s.sessions.Open(accountID, containerID, capacity, contents)

	s.log.Info("opened backpack",
		"account", accountID, "container", containerID, "capacity", capacity, "session", sess.ID)
	return &OpenOutput{Session: sess, Created: created}
}
