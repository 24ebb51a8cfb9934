package ops

import (
	"log/slog"
	"sync"

	"github.com/supafloof/backpacks/internal/config"
	"github.com/supafloof/backpacks/internal/session"
	"github.com/supafloof/backpacks/internal/storage"
)

// Service coordinates every backpack operation against the registry, the
// record store, and the session tracker. A single mutex serializes
// operations: host events arrive on one thread, and the admin surfaces
// are far too light to contend.
type Service struct {
	mu       sync.Mutex
	cfg      *config.Config
	log      *slog.Logger
	store    *storage.Store
	registry *storage.Registry
	sessions *session.Tracker
}

// NewService wires a service over the given store. Call Startup before
// serving operations.
func NewService(cfg *config.Config, log *slog.Logger, store *storage.Store) *Service {
	return &Service{
		cfg:      cfg,
		log:      log,
		store:    store,
		registry: storage.NewRegistry(),
		sessions: session.NewTracker(),
	}
}

// Config returns the configuration the service was built with.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// NestingAllowed reports whether backpacks may be stored inside other
// backpacks.
func (s *Service) NestingAllowed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.AllowNestedBackpacks
}

// ApplyConfig adopts the live-safe settings from a freshly loaded
// configuration: the minting material, the nesting rule, and the personal
// capacity. The data directory and listen address stay as booted; moving
// them would strand the loaded registry.
func (s *Service) ApplyConfig(next *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.BackpackItem = next.BackpackItem
	s.cfg.AllowNestedBackpacks = next.AllowNestedBackpacks
	s.cfg.PersonalCapacity = next.PersonalCapacity

	s.log.Info("configuration reloaded",
		"backpack_item", next.BackpackItem,
		"allow_nested", next.AllowNestedBackpacks,
		"personal_capacity", next.PersonalCapacity)
}
