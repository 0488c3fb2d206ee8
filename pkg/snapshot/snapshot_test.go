package snapshot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/skelanim/pkg/animation"
	"github.com/decker502/skelanim/pkg/animstate"
)

func newState(t *testing.T) *animstate.AnimationState {
	t.Helper()
	lib := &animation.Library{Animations: []*animation.Animation{
		animation.New("walk", nil, 1),
		animation.New("run", nil, 0.5),
	}}
	data := animstate.NewStateData(lib)
	require.NoError(t, data.SetMixByName("walk", "run", 0.25))
	state, err := animstate.New(data)
	require.NoError(t, err)
	return state
}

// playing sets up track 0 walking with run queued, and track 2 running fast.
func playing(t *testing.T) *animstate.AnimationState {
	t.Helper()
	state := newState(t)
	state.TimeScale = 0.5

	_, err := state.SetAnimationByName(0, "walk", animstate.LoopForever)
	require.NoError(t, err)
	state.Update(0.6)
	_, err = state.AddAnimationByName(0, "run", 3, 2)
	require.NoError(t, err)

	run, err := state.SetAnimationByName(2, "run", animstate.LoopNone)
	require.NoError(t, err)
	run.TimeScale = 2
	run.Reverse = true
	run.MixBlend = animation.MixBlendAdd
	run.Alpha = 0.5
	return state
}

func TestCapture(t *testing.T) {
	snap := Capture(playing(t))

	assert.Equal(t, Version, snap.Version)
	assert.Equal(t, 0.5, snap.TimeScale)
	require.Len(t, snap.Tracks, 2)

	walk := snap.Tracks[0]
	assert.Equal(t, 0, walk.Index)
	assert.Equal(t, "walk", walk.Current.Animation)
	assert.Equal(t, animstate.LoopForever, walk.Current.Loop)
	assert.InDelta(t, 0.3, walk.Current.TrackTime, 1e-9)
	assert.Equal(t, math.MaxFloat64, walk.Current.TrackEnd)
	require.Len(t, walk.Queue, 1)
	assert.Equal(t, "run", walk.Queue[0].Animation)
	assert.Equal(t, 3, walk.Queue[0].Loop)
	assert.Equal(t, 2.0, walk.Queue[0].Delay)
	assert.Equal(t, 0.25, walk.Queue[0].MixDuration)

	run := snap.Tracks[1]
	assert.Equal(t, 2, run.Index)
	assert.True(t, run.Current.Reverse)
	assert.Equal(t, int(animation.MixBlendAdd), run.Current.MixBlend)
	assert.Equal(t, 2.0, run.Current.TimeScale)
	assert.Equal(t, 0.5, run.Current.Alpha)
	assert.Empty(t, run.Queue)
}

func TestRestoreRoundTrip(t *testing.T) {
	snap := Capture(playing(t))

	state := newState(t)
	_, err := state.SetAnimationByName(1, "walk", animstate.LoopForever)
	require.NoError(t, err)

	require.NoError(t, Restore(state, snap))
	assert.Nil(t, state.Current(1), "tracks not in the snapshot are cleared")
	assert.Equal(t, snap, Capture(state))

	walk := state.Current(0)
	require.NotNil(t, walk.Next())
	assert.Same(t, walk, walk.Next().Previous())
}

func TestRestoreEmptyAnimation(t *testing.T) {
	state := newState(t)
	_, err := state.SetAnimationByName(0, "walk", animstate.LoopForever)
	require.NoError(t, err)
	_, err = state.AddEmptyAnimation(0, 0.5, 1)
	require.NoError(t, err)
	snap := Capture(state)
	require.Equal(t, animstate.EmptyAnimation().Name, snap.Tracks[0].Queue[0].Animation)

	restored := newState(t)
	require.NoError(t, Restore(restored, snap))
	assert.Same(t, animstate.EmptyAnimation(), restored.Current(0).Next().Animation)
	assert.Equal(t, 0.5, restored.Current(0).Next().TrackEnd)
}

func TestRestoreErrorsLeaveStateAlone(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Snapshot)
		want   error
	}{
		{"version", func(s *Snapshot) { s.Version = 99 }, ErrVersion},
		{"unknown current", func(s *Snapshot) { s.Tracks[0].Current.Animation = "fly" }, animstate.ErrAnimationNotFound},
		{"unknown queued", func(s *Snapshot) { s.Tracks[0].Queue[0].Animation = "fly" }, animstate.ErrAnimationNotFound},
		{"negative track", func(s *Snapshot) { s.Tracks[1].Index = -1 }, animstate.ErrInvalidTrack},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Capture(playing(t))
			tt.mutate(&snap)

			state := newState(t)
			current, err := state.SetAnimationByName(0, "run", animstate.LoopNone)
			require.NoError(t, err)

			assert.ErrorIs(t, Restore(state, snap), tt.want)
			assert.Same(t, current, state.Current(0))
		})
	}
}
