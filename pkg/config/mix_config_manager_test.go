package config

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/skelanim/pkg/animation"
	"github.com/decker502/skelanim/pkg/animstate"
	"github.com/decker502/skelanim/pkg/embedded"
)

const mixYAML = `
default_mix: 0.2
mixes:
  - {from: walk, to: run, duration: 0.3}
animations:
  - {name: walk}
  - {name: run, time_scale: 2, mix_duration: 0.1}
  - {name: jump, loop: false, reverse: true, hold_previous: true, shortest_rotation: true}
`

func newLibrary() *animation.Library {
	return &animation.Library{Animations: []*animation.Animation{
		animation.New("walk", nil, 1),
		animation.New("run", nil, 1),
		animation.New("jump", nil, 1),
	}}
}

func TestLoadFSFile(t *testing.T) {
	m, err := LoadFS(fstest.MapFS{"mix.yaml": {Data: []byte(mixYAML)}}, "./mix.yaml")
	require.NoError(t, err)

	assert.Equal(t, 0.2, m.DefaultMix())
	assert.Equal(t, []string{"jump", "run", "walk"}, m.Animations())

	d, ok := m.Mix("walk", "run")
	assert.True(t, ok)
	assert.Equal(t, 0.3, d)
	d, ok = m.Mix("run", "walk")
	assert.False(t, ok)
	assert.Equal(t, 0.2, d)

	p, ok := m.Playback("run")
	assert.True(t, ok)
	assert.Equal(t, 2.0, p.TimeScale)
	p, ok = m.Playback("crawl")
	assert.False(t, ok)
	assert.Equal(t, "crawl", p.Name)
	assert.Equal(t, animstate.LoopForever, p.LoopCount())

	cfg := m.Config()
	cfg.Mixes[0].Duration = 9
	d, _ = m.Mix("walk", "run")
	assert.Equal(t, 0.3, d, "Config returns a copy")
}

func TestLoadFSDirectory(t *testing.T) {
	fsys := fstest.MapFS{
		"mixes/base.yaml":  {Data: []byte("default_mix: 0.2\n")},
		"mixes/walk.yaml":  {Data: []byte("mixes:\n  - {from: walk, to: run, duration: 0.3}\n")},
		"mixes/empty.yaml": {Data: []byte("")},
		"mixes/notes.txt":  {Data: []byte("not yaml: [")},
	}
	m, err := LoadFS(fsys, "mixes")
	require.NoError(t, err)
	assert.Equal(t, 0.2, m.DefaultMix())
	d, ok := m.Mix("walk", "run")
	assert.True(t, ok)
	assert.Equal(t, 0.3, d)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
		path string
		want error
	}{
		{"missing", fstest.MapFS{}, "mix.yaml", ErrConfigNotFound},
		{"no yaml in directory", fstest.MapFS{"mixes/a.txt": {}}, "mixes", ErrConfigNotFound},
		{"syntax", fstest.MapFS{"mix.yaml": {Data: []byte("mixes: [")}}, "mix.yaml", ErrConfigParse},
		{"unknown field", fstest.MapFS{"mix.yaml": {Data: []byte("default_mixx: 1\n")}}, "mix.yaml", ErrConfigParse},
		{"invalid", fstest.MapFS{"mix.yaml": {Data: []byte("default_mix: -1\n")}}, "mix.yaml", ErrConfigInvalid},
		{"conflicting default", fstest.MapFS{
			"mixes/a.yaml": {Data: []byte("default_mix: 0.1\n")},
			"mixes/b.yaml": {Data: []byte("default_mix: 0.2\n")},
		}, "mixes", ErrConfigDuplicate},
		{"duplicate mix across files", fstest.MapFS{
			"mixes/a.yaml": {Data: []byte("mixes: [{from: a, to: b}]\n")},
			"mixes/b.yaml": {Data: []byte("mixes: [{from: a, to: b}]\n")},
		}, "mixes", ErrConfigDuplicate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFS(tt.fsys, tt.path)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "mix.yaml")
	require.NoError(t, os.WriteFile(file, []byte(mixYAML), 0o644))

	m, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, 0.2, m.DefaultMix())

	m, err = Load(dir)
	require.NoError(t, err)
	assert.Len(t, m.Animations(), 3)
}

func TestNewManagerUsesEmbeddedData(t *testing.T) {
	embedded.Init(nil)
	_, err := NewManager("data/mix.yaml")
	assert.ErrorIs(t, err, embedded.ErrNotInitialized)

	embedded.Init(fstest.MapFS{"data/mix.yaml": {Data: []byte(mixYAML)}})
	t.Cleanup(func() { embedded.Init(nil) })
	m, err := NewManager("data/mix.yaml")
	require.NoError(t, err)
	assert.Equal(t, 0.2, m.DefaultMix())
}

func TestReloadKeepsConfigOnError(t *testing.T) {
	fsys := fstest.MapFS{"mix.yaml": {Data: []byte(mixYAML)}}
	m, err := LoadFS(fsys, "mix.yaml")
	require.NoError(t, err)

	fsys["mix.yaml"] = &fstest.MapFile{Data: []byte("default_mix: -3\n")}
	assert.ErrorIs(t, m.Reload(), ErrConfigInvalid)
	assert.Equal(t, 0.2, m.DefaultMix())

	fsys["mix.yaml"] = &fstest.MapFile{Data: []byte("default_mix: 0.5\n")}
	require.NoError(t, m.Reload())
	assert.Equal(t, 0.5, m.DefaultMix())
	assert.Empty(t, m.Animations())
}

func TestStateData(t *testing.T) {
	m, err := LoadFS(fstest.MapFS{"mix.yaml": {Data: []byte(mixYAML)}}, "mix.yaml")
	require.NoError(t, err)
	lib := newLibrary()

	data, err := m.StateData(lib)
	require.NoError(t, err)
	walk, run, jump := lib.FindAnimation("walk"), lib.FindAnimation("run"), lib.FindAnimation("jump")
	assert.Equal(t, 0.3, data.GetMix(walk, run))
	assert.Equal(t, 0.2, data.GetMix(run, jump))

	_, err = m.StateData(nil)
	assert.ErrorIs(t, err, ErrConfigInvalid)

	lib.Animations = lib.Animations[:2]
	_, err = m.StateData(lib)
	assert.ErrorIs(t, err, animstate.ErrAnimationNotFound)

	m, err = LoadFS(fstest.MapFS{"mix.yaml": {Data: []byte("mixes: [{from: walk, to: fly}]\n")}}, "mix.yaml")
	require.NoError(t, err)
	_, err = m.StateData(newLibrary())
	assert.ErrorIs(t, err, animstate.ErrAnimationNotFound)
}

func TestPlayAndQueue(t *testing.T) {
	m, err := LoadFS(fstest.MapFS{"mix.yaml": {Data: []byte(mixYAML)}}, "mix.yaml")
	require.NoError(t, err)
	data, err := m.StateData(newLibrary())
	require.NoError(t, err)
	state, err := animstate.New(data)
	require.NoError(t, err)

	walk, err := m.Play(state, 0, "walk")
	require.NoError(t, err)
	assert.Equal(t, animstate.LoopForever, walk.Loop)
	assert.Equal(t, 1.0, walk.TimeScale)

	// walk completes at 1; the configured 0.1 mix replaces the 0.3 pair mix.
	run, err := m.Queue(state, 0, "run", 0)
	require.NoError(t, err)
	assert.Equal(t, 0.1, run.MixDuration)
	assert.InDelta(t, 0.9, run.Delay, 1e-9)
	assert.Equal(t, 2.0, run.TimeScale)

	jump, err := m.Play(state, 1, "jump")
	require.NoError(t, err)
	assert.Equal(t, animstate.LoopNone, jump.Loop)
	assert.True(t, jump.Reverse)
	assert.True(t, jump.HoldPrevious)
	assert.True(t, jump.ShortestRotation)

	_, err = m.Play(state, 0, "crawl")
	assert.ErrorIs(t, err, animstate.ErrAnimationNotFound)
	_, err = m.Queue(state, -1, "walk", 0)
	assert.ErrorIs(t, err, animstate.ErrInvalidTrack)
}
