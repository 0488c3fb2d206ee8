package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/skelanim/pkg/animation"
	"github.com/decker502/skelanim/pkg/animstate"
	"github.com/decker502/skelanim/pkg/skeleton"
)

func newRig(t *testing.T) (*skeleton.Skeleton, *animstate.AnimationState) {
	t.Helper()
	root := skeleton.NewBoneData(0, "root", nil)
	skel, err := skeleton.New(&skeleton.SkeletonData{Name: "rig", Bones: []*skeleton.BoneData{root}})
	require.NoError(t, err)

	step := animation.NewEventTimeline(1)
	step.SetFrame(0, animation.NewEvent(0.5, animation.NewEventData("step")))
	lib := &animation.Library{Animations: []*animation.Animation{
		animation.New("walk", []animation.Timeline{step}, 1),
	}}
	state, err := animstate.New(animstate.NewStateData(lib))
	require.NoError(t, err)
	return skel, state
}

func TestNewSkeletonAnimationComponent(t *testing.T) {
	skel, state := newRig(t)

	_, err := NewSkeletonAnimationComponent(nil, state)
	assert.ErrorIs(t, err, animstate.ErrNilSkeleton)
	_, err = NewSkeletonAnimationComponent(skel, nil)
	assert.ErrorIs(t, err, ErrNilState)

	c, err := NewSkeletonAnimationComponent(skel, state)
	require.NoError(t, err)
	assert.Same(t, skel, c.Skeleton)
	assert.Same(t, state, c.State)
}

func TestEventsAreBuffered(t *testing.T) {
	skel, state := newRig(t)
	c, err := NewSkeletonAnimationComponent(skel, state)
	require.NoError(t, err)

	_, err = state.SetAnimationByName(0, "walk", animstate.LoopNone)
	require.NoError(t, err)
	for _, dt := range []float64{0, 0.75, 0.5} {
		state.Update(dt)
		_, err := state.Apply(skel)
		require.NoError(t, err)
	}

	events := c.DrainEvents()
	var kinds []string
	for _, e := range events {
		assert.Equal(t, 0, e.Track)
		assert.Equal(t, "walk", e.Animation)
		kinds = append(kinds, e.Kind.String())
	}
	assert.Equal(t, []string{"start", "event", "complete"}, kinds)
	assert.Equal(t, "step", events[1].Event.Data.Name)
	assert.Empty(t, c.DrainEvents())

	state.ClearTracks()
	assert.Equal(t, []AnimationEvent{
		{Kind: AnimationEnded, Track: 0, Animation: "walk"},
		{Kind: AnimationDisposed, Track: 0, Animation: "walk"},
	}, c.DrainEvents())
}

func TestAnimationEventKindString(t *testing.T) {
	assert.Equal(t, "interrupt", AnimationInterrupted.String())
	assert.Equal(t, "AnimationEventKind(42)", AnimationEventKind(42).String())
}
