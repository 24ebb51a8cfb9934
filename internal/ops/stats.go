package ops

// StatsOutput contains the result of the Stats operation.
type StatsOutput struct {
	Containers    int    `json:"containers"`
	OpenSessions  int    `json:"open_sessions"`
	OccupiedSlots int    `json:"occupied_slots"`
	RecordFiles   int    `json:"record_files"`
	DiskBytes     int64  `json:"disk_bytes"`
	DataDir       string `json:"data_dir"`
}

// Stats reports registry and on-disk totals for the admin surfaces.
func (s *Service) Stats() (*StatsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := &StatsOutput{
		Containers:   s.registry.Len(),
		OpenSessions: s.sessions.Len(),
		DataDir:      s.store.Dir(),
	}

	for _, id := range s.registry.IDs() {
		out.OccupiedSlots += s.registry.Occupied(id)
	}

	records, err := s.store.Records()
	if err != nil {
		return nil, err
	}
	out.RecordFiles = len(records)
	for _, rec := range records {
		out.DiskBytes += rec.Size
	}

	return out, nil
}
