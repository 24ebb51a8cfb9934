package ops

// Startup loads every stored record into the registry, replacing whatever
// it held. It runs once before the service begins taking operations; the
// registry is authoritative from then on and disk is never re-read.
func (s *Service) Startup() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded, err := s.store.LoadAll()
	if err != nil {
		return err
	}

	s.registry.ReplaceAll(loaded)
	s.log.Info("loaded backpack records", "containers", len(loaded), "dir", s.store.Dir())
	return nil
}

// Shutdown force-closes every open session, flushing each one to the
// registry and disk. Live views are unreachable after the host goes
// down, so anything left open would otherwise lose its changes.
func (s *Service) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	flushed := 0
	for _, sess := range s.sessions.All() {
		s.closeLocked(sess.AccountID)
		flushed++
	}

	if flushed > 0 {
		s.log.Info("flushed open backpack sessions", "sessions", flushed)
	}
}
