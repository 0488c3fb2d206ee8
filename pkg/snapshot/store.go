package snapshot

import (
	"fmt"
	"strings"

	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/decker502/skelanim/pkg/animstate"
)

const snapshotsObject = "snapshots"

// Store persists snapshots as YAML through gdata. A Store without a gdata
// manager keeps nothing: Save is a no-op and Load reports ErrNotFound.
type Store struct {
	data *gdata.Manager
}

// Open creates a store in the application's data directory.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open snapshot store %q: %w", appName, err)
	}
	return NewStore(m), nil
}

// NewStore wraps an existing gdata manager, which may be nil.
func NewStore(m *gdata.Manager) *Store {
	return &Store{data: m}
}

func checkKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\:*?"<>|`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Exists reports whether a snapshot is stored under key.
func (s *Store) Exists(key string) bool {
	if s.data == nil || checkKey(key) != nil {
		return false
	}
	return s.data.ObjectPropExists(snapshotsObject, key)
}

// Save stores the snapshot under key, replacing any previous one.
func (s *Store) Save(key string, snap Snapshot) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if s.data == nil {
		return nil
	}
	b, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot %q: %w", key, err)
	}
	if err := s.data.SaveObjectProp(snapshotsObject, key, b); err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}
	log.Debug().Str("component", "snapshot").Str("key", key).Int("tracks", len(snap.Tracks)).Msg("snapshot saved")
	return nil
}

// Load reads the snapshot stored under key.
func (s *Store) Load(key string) (Snapshot, error) {
	if err := checkKey(key); err != nil {
		return Snapshot{}, err
	}
	if !s.Exists(key) {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	b, err := s.data.LoadObjectProp(snapshotsObject, key)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot %q: %w", key, err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshal snapshot %q: %w", key, err)
	}
	return snap, nil
}

// SaveState captures state and stores it under key.
func (s *Store) SaveState(key string, state *animstate.AnimationState) error {
	return s.Save(key, Capture(state))
}

// RestoreState loads the snapshot under key into state.
func (s *Store) RestoreState(key string, state *animstate.AnimationState) error {
	snap, err := s.Load(key)
	if err != nil {
		return err
	}
	if err := Restore(state, snap); err != nil {
		return fmt.Errorf("restore snapshot %q: %w", key, err)
	}
	log.Debug().Str("component", "snapshot").Str("key", key).Int("tracks", len(snap.Tracks)).Msg("snapshot restored")
	return nil
}
