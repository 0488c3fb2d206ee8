package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/decker502/skelanim/pkg/animation"
	"github.com/decker502/skelanim/pkg/animstate"
	"github.com/decker502/skelanim/pkg/embedded"
)

// Manager holds a loaded mix configuration and builds AnimationState data
// and track entries from it. It is safe for concurrent use; Reload swaps
// the configuration atomically.
type Manager struct {
	mu       sync.RWMutex
	fsys     fs.FS
	path     string
	config   MixConfig
	mixes    map[[2]string]float64
	playback map[string]PlaybackConfig
}

// NewManager loads path from the embedded data file system. path may name a
// YAML file or a directory whose *.yaml files are merged.
func NewManager(path string) (*Manager, error) {
	fsys := embedded.FS()
	if fsys == nil {
		return nil, fmt.Errorf("load %s: %w", path, embedded.ErrNotInitialized)
	}
	return LoadFS(fsys, path)
}

// Load reads a configuration file or directory from disk.
func Load(path string) (*Manager, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigNotFound, path, err)
	}
	return LoadFS(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
}

// LoadFS reads a configuration file or directory from fsys.
func LoadFS(fsys fs.FS, name string) (*Manager, error) {
	m := &Manager{fsys: fsys, path: cleanPath(name)}
	if err := m.Reload(); err != nil {
		return nil, err
	}
	return m, nil
}

func cleanPath(name string) string {
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")
	if name == "" {
		return "."
	}
	return path.Clean(name)
}

// Reload reads the configuration again. On error the current one is kept.
func (m *Manager) Reload() error {
	cfg, err := readConfig(m.fsys, m.path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", m.path, err)
	}

	mixes := make(map[[2]string]float64, len(cfg.Mixes))
	for _, mix := range cfg.Mixes {
		mixes[[2]string{mix.From, mix.To}] = mix.Duration
	}
	playback := make(map[string]PlaybackConfig, len(cfg.Animations))
	for _, a := range cfg.Animations {
		playback[a.Name] = a
	}

	m.mu.Lock()
	m.config = cfg
	m.mixes = mixes
	m.playback = playback
	m.mu.Unlock()

	log.Debug().
		Str("component", "config").
		Str("path", m.path).
		Int("mixes", len(cfg.Mixes)).
		Int("animations", len(cfg.Animations)).
		Msg("mix config loaded")
	return nil
}

func readConfig(fsys fs.FS, name string) (MixConfig, error) {
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return MixConfig{}, fmt.Errorf("%w: %s: %v", ErrConfigNotFound, name, err)
	}
	if !info.IsDir() {
		return readFile(fsys, name)
	}

	files, err := fs.Glob(fsys, path.Join(name, "*.yaml"))
	if err != nil {
		return MixConfig{}, fmt.Errorf("scan %s: %w", name, err)
	}
	if len(files) == 0 {
		return MixConfig{}, fmt.Errorf("%w: no *.yaml files in %s", ErrConfigNotFound, name)
	}
	var cfg MixConfig
	for _, file := range files {
		part, err := readFile(fsys, file)
		if err != nil {
			return MixConfig{}, err
		}
		if err := cfg.merge(part); err != nil {
			return MixConfig{}, fmt.Errorf("%s: %w", file, err)
		}
	}
	return cfg, nil
}

func readFile(fsys fs.FS, name string) (MixConfig, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return MixConfig{}, fmt.Errorf("read %s: %w", name, err)
	}
	var cfg MixConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return MixConfig{}, fmt.Errorf("%w: %s: %v", ErrConfigParse, name, err)
	}
	return cfg, nil
}

// Config returns a copy of the loaded configuration.
func (m *Manager) Config() MixConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfg := m.config
	cfg.Mixes = append([]MixPair(nil), m.config.Mixes...)
	cfg.Animations = append([]PlaybackConfig(nil), m.config.Animations...)
	return cfg
}

// DefaultMix returns the mix duration used for pairs without an entry.
func (m *Manager) DefaultMix() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.DefaultMix
}

// Mix returns the configured duration for a pair, or the default mix and false.
func (m *Manager) Mix(from, to string) (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.mixes[[2]string{from, to}]; ok {
		return d, true
	}
	return m.config.DefaultMix, false
}

// Playback returns the playback settings of an animation. Animations without
// an entry loop forever at normal speed.
func (m *Manager) Playback(name string) (PlaybackConfig, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.playback[name]
	if !ok {
		return PlaybackConfig{Name: name}, false
	}
	return p, true
}

// Animations returns the configured animation names, sorted.
func (m *Manager) Animations() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.playback))
	for name := range m.playback {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StateData resolves the configuration against lib. Every name must exist.
func (m *Manager) StateData(lib *animation.Library) (*animstate.StateData, error) {
	if lib == nil {
		return nil, fmt.Errorf("%w: nil library", ErrConfigInvalid)
	}
	cfg := m.Config()

	data := animstate.NewStateData(lib)
	data.DefaultMix = cfg.DefaultMix
	for _, mix := range cfg.Mixes {
		if err := data.SetMixByName(mix.From, mix.To, mix.Duration); err != nil {
			return nil, fmt.Errorf("mix %s -> %s: %w", mix.From, mix.To, err)
		}
	}
	for _, a := range cfg.Animations {
		if lib.FindAnimation(a.Name) == nil {
			return nil, fmt.Errorf("playback: %w: %q", animstate.ErrAnimationNotFound, a.Name)
		}
	}
	return data, nil
}

// Play sets the animation on a track with its configured playback settings.
func (m *Manager) Play(state *animstate.AnimationState, trackIndex int, name string) (*animstate.TrackEntry, error) {
	p, _ := m.Playback(name)
	entry, err := state.SetAnimationByName(trackIndex, name, p.LoopCount())
	if err != nil {
		return nil, err
	}
	p.applyTo(entry)
	return entry, nil
}

// Queue adds the animation after the last entry of a track with its
// configured playback settings. As with AddAnimation, a delay <= 0 makes the
// mix finish when the previous entry completes, using the configured mix
// duration.
func (m *Manager) Queue(state *animstate.AnimationState, trackIndex int, name string, delay float64) (*animstate.TrackEntry, error) {
	p, _ := m.Playback(name)
	entry, err := state.AddAnimationByName(trackIndex, name, p.LoopCount(), delay)
	if err != nil {
		return nil, err
	}
	if p.MixDuration != nil && delay <= 0 && entry.Previous() != nil {
		entry.Delay += entry.MixDuration - *p.MixDuration
	}
	p.applyTo(entry)
	return entry, nil
}
