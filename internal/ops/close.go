package ops

// CloseInput contains parameters for the Close operation.
type CloseInput struct {
	AccountID string // required
}

// CloseOutput contains the result of the Close operation.
type CloseOutput struct {
	Saved     bool   `json:"saved"` // false when the account had nothing open
	Container string `json:"container,omitempty"`
	Occupied  int    `json:"occupied"`
}

// Close ends the account's open session, committing the live view to the
// registry and to disk. Closing with nothing open is a no-op, which lets
// hosts fire close events as often as they like.
func (s *Service) Close(input CloseInput) *CloseOutput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked(input.AccountID)
}

// closeLocked commits and removes the account's session. The session is
// only forgotten after the registry and store hold the new contents, so
// a failure partway leaves the view reachable rather than half-saved.
func (s *Service) closeLocked(accountID string) *CloseOutput {
	sess, ok := s.sessions.Get(accountID)
	if !ok {
		return &CloseOutput{Saved: false}
	}

	snapshot := sess.View.Snapshot()
	occupied := snapshot.Occupied()

	s.store.Save(sess.Container, snapshot)
	s.registry.Put(sess.Container, snapshot)
	s.sessions.Remove(accountID)

	s.log.Info("closed backpack",
		"account", accountID, "container", sess.Container, "occupied", occupied, "session", sess.ID)

	return &CloseOutput{Saved: true, Container: sess.Container, Occupied: occupied}
}
