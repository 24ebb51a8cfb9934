package ops

import (
	"fmt"
	"slices"
	"time"

	"github.com/supafloof/backpacks/internal/errors"
)

// PurgeInput contains parameters for the Purge operation.
type PurgeInput struct {
	ID            string // purge one specific container, whatever it holds
	OlderThanDays *int   // bulk mode: only purge records untouched for N days
	DryRun        bool   // report what would go without deleting anything
}

// PurgeOutput contains the result of the Purge operation.
type PurgeOutput struct {
	Purged  []string `json:"purged"`
	Count   int      `json:"count"`
	Message string   `json:"message"`
}

// Purge deletes record files. With an ID it removes that one container
// regardless of contents; without one it sweeps records whose containers
// are empty. Open containers are never purged. Nothing in normal play
// calls this; it exists for operators reclaiming abandoned records.
func (s *Service) Purge(input PurgeInput) (*PurgeOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input.ID != "" {
		return s.purgeOneLocked(input.ID, input.DryRun)
	}
	return s.purgeEmptyLocked(input.OlderThanDays, input.DryRun)
}

func (s *Service) purgeOneLocked(id string, dryRun bool) (*PurgeOutput, error) {
	if !s.registry.Has(id) && !s.store.Exists(id) {
		return nil, errors.NewNotFound(id)
	}
	if s.openByLocked(id) != "" {
		return nil, errors.NewInvalidRequest("backpack is open; close it first")
	}

	if !dryRun {
		if err := s.store.Remove(id); err != nil {
			return nil, err
		}
		s.registry.Remove(id)
		s.log.Info("purged backpack record", "container", id)
	}

	return &PurgeOutput{
		Purged:  []string{id},
		Count:   1,
		Message: formatPurgeMessage(1, nil, dryRun),
	}, nil
}

func (s *Service) purgeEmptyLocked(olderThanDays *int, dryRun bool) (*PurgeOutput, error) {
	records, err := s.store.Records()
	if err != nil {
		return nil, err
	}

	var cutoff time.Time
	if olderThanDays != nil {
		cutoff = time.Now().AddDate(0, 0, -*olderThanDays)
	}

	purged := []string{}
	for _, rec := range records {
		if s.registry.Occupied(rec.ID) > 0 {
			continue
		}
		if s.openByLocked(rec.ID) != "" {
			continue
		}
		if olderThanDays != nil && rec.ModTime.After(cutoff) {
			continue
		}

		if !dryRun {
			if err := s.store.Remove(rec.ID); err != nil {
				return nil, err
			}
			s.registry.Remove(rec.ID)
		}
		purged = append(purged, rec.ID)
	}
	slices.Sort(purged)

	if !dryRun && len(purged) > 0 {
		s.log.Info("purged empty backpack records", "count", len(purged))
	}

	return &PurgeOutput{
		Purged:  purged,
		Count:   len(purged),
		Message: formatPurgeMessage(len(purged), olderThanDays, dryRun),
	}, nil
}

// openByLocked returns the account holding id open, or "" when nobody is.
func (s *Service) openByLocked(id string) string {
	for _, sess := range s.sessions.All() {
		if sess.Container == id {
			return sess.AccountID
		}
	}
	return ""
}

// formatPurgeMessage creates a human-readable message for the purge result.
func formatPurgeMessage(count int, olderThanDays *int, dryRun bool) string {
	if count == 0 {
		return "No empty backpacks to purge"
	}

	backpackWord := "backpack"
	if count > 1 {
		backpackWord = "backpacks"
	}

	verb := "Purged"
	if dryRun {
		verb = "Would purge"
	}

	msg := fmt.Sprintf("%s %d %s", verb, count, backpackWord)
	if olderThanDays != nil {
		msg += fmt.Sprintf(" (untouched for more than %d days)", *olderThanDays)
	}

	return msg
}
