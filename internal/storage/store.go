package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/supafloof/backpacks/internal/item"
)

// recordExt is the fixed extension for container record files.
const recordExt = ".yml"

// Store persists container records as one YAML file per identifier under a
// single flat directory.
type Store struct {
	dir string
	log *slog.Logger
}

// NewStore returns a store rooted at dir. The directory is created lazily
// on first save, so a fresh install can load before anything exists.
func NewStore(dir string, log *slog.Logger) *Store {
	return &Store{dir: dir, log: log}
}

// Dir returns the directory the store reads and writes.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the record file path for an identifier.
func (s *Store) Path(id string) string {
	return filepath.Join(s.dir, id+recordExt)
}

// LoadAll reads every record in the store directory and returns the decoded
// contents keyed by identifier. A missing directory is a fresh install and
// yields an empty map. Unreadable or corrupt files are logged and skipped;
// only a directory-level failure returns an error.
func (s *Store) LoadAll() (map[string]item.SlotMap, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]item.SlotMap{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	out := make(map[string]item.SlotMap, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, recordExt) {
			continue
		}
		id := strings.TrimSuffix(name, recordExt)
		if id == "" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			s.log.Warn("skipping unreadable backpack record", "file", name, "error", err)
			continue
		}
		slots, dropped, err := Decode(data)
		if err != nil {
			s.log.Warn("skipping corrupt backpack record", "file", name, "error", err)
			continue
		}
		for _, reason := range dropped {
			s.log.Warn("dropped backpack record entry", "file", name, "reason", reason)
		}
		out[id] = slots
	}

	return out, nil
}

// Save writes the record for id, replacing any previous contents. Failures
// are logged and swallowed: the registry still holds the authoritative
// data, and a disk hiccup must not take the caller's event path down.
func (s *Store) Save(id string, slots item.SlotMap) {
	if err := s.write(id, slots); err != nil {
		s.log.Error("failed to save backpack record", "id", id, "error", err)
	}
}

// write performs the actual atomic write: encode, temp file in the same
// directory, then rename over the final path.
func (s *Store) write(id string, slots item.SlotMap) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	data, err := Encode(slots)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.Path(id)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Exists reports whether a record file is present for id.
func (s *Store) Exists(id string) bool {
	_, err := os.Stat(s.Path(id))
	return err == nil
}

// Remove deletes the record file for id. A record that never existed is
// not an error.
func (s *Store) Remove(id string) error {
	err := os.Remove(s.Path(id))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove record: %w", err)
	}
	return nil
}

// RecordInfo describes one record file on disk without decoding it.
type RecordInfo struct {
	ID      string
	Size    int64
	ModTime time.Time
}

// Records lists the record files currently on disk, without decoding
// their contents. A missing directory yields an empty list.
func (s *Store) Records() ([]RecordInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	var out []RecordInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, recordExt) {
			continue
		}
		id := strings.TrimSuffix(name, recordExt)
		if id == "" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			s.log.Warn("skipping unstattable backpack record", "file", name, "error", err)
			continue
		}
		out = append(out, RecordInfo{ID: id, Size: info.Size(), ModTime: info.ModTime()})
	}

	return out, nil
}
