package ops

import "time"

// SessionSummary describes one open session.
type SessionSummary struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Container string    `json:"container"`
	Capacity  int       `json:"capacity"`
	Occupied  int       `json:"occupied"`
	OpenedAt  time.Time `json:"opened_at"`
}

// SessionsOutput contains the result of the Sessions operation.
type SessionsOutput struct {
	Items []SessionSummary `json:"items"`
	Count int              `json:"count"`
}

// Sessions lists every open session, oldest first.
func (s *Service) Sessions() *SessionsOutput {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.sessions.All()
	items := make([]SessionSummary, 0, len(all))
	for _, sess := range all {
		items = append(items, SessionSummary{
			ID:        sess.ID,
			AccountID: sess.AccountID,
			Container: sess.Container,
			Capacity:  sess.Capacity,
			Occupied:  sess.View.Occupied(),
			OpenedAt:  sess.OpenedAt,
		})
	}

	return &SessionsOutput{Items: items, Count: len(items)}
}
