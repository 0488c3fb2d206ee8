package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/skelanim/pkg/animstate"
	"github.com/decker502/skelanim/pkg/config"
	"github.com/decker502/skelanim/pkg/skeleton"
)

func TestLibrary(t *testing.T) {
	lib := Library()
	require.NotNil(t, lib.Skeleton)
	for i, b := range lib.Skeleton.Bones {
		assert.Equal(t, i, b.Index, b.Name)
		if b.Parent != nil {
			assert.Less(t, b.Parent.Index, b.Index, "parents come first")
		}
	}
	for _, name := range []string{Idle, Walk, Run, Jump, Wave} {
		a := lib.FindAnimation(name)
		require.NotNil(t, a, name)
		assert.Positive(t, a.Duration, name)
	}
	assert.NotNil(t, lib.FindEvent("footstep"))
	assert.Equal(t, 0.8, lib.FindEvent("land").Volume)
}

func TestMixConfigMatchesLibrary(t *testing.T) {
	cfg, err := config.Load("../../data/mix.yaml")
	require.NoError(t, err)
	data, err := cfg.StateData(Library())
	require.NoError(t, err)

	lib := data.Library
	assert.Equal(t, 0.3, data.GetMix(lib.FindAnimation(Idle), lib.FindAnimation(Walk)))
	assert.Equal(t, 0.2, data.GetMix(lib.FindAnimation(Wave), lib.FindAnimation(Idle)))
}

func TestPoses(t *testing.T) {
	lib := Library()
	skel, err := skeleton.New(lib.Skeleton)
	require.NoError(t, err)
	state, err := animstate.New(animstate.NewStateData(lib))
	require.NoError(t, err)

	_, err = state.SetAnimationByName(0, Walk, animstate.LoopForever)
	require.NoError(t, err)
	_, err = state.SetAnimationByName(1, Wave, animstate.LoopForever)
	require.NoError(t, err)
	state.Update(0)
	_, err = state.Apply(skel)
	require.NoError(t, err)

	assert.InDelta(t, 180+25, skel.Bones[LeftThigh].Rotation, 1e-9)
	assert.InDelta(t, 180-25, skel.Bones[RightThigh].Rotation, 1e-9)
	assert.InDelta(t, 160-140, skel.Bones[UpperArm].Rotation, 1e-9, "wave overrides the walk arm swing")

	skel.UpdateWorldTransform()
	assert.InDelta(t, 100, skel.Bones[Hip].WorldY, 1e-9)
	assert.InDelta(t, 160, skel.Bones[Torso].TipY(), 1e-9)
}

func TestIdleBlinks(t *testing.T) {
	lib := Library()
	skel, err := skeleton.New(lib.Skeleton)
	require.NoError(t, err)
	state, err := animstate.New(animstate.NewStateData(lib))
	require.NoError(t, err)
	_, err = state.SetAnimationByName(0, Idle, animstate.LoopForever)
	require.NoError(t, err)

	face := skel.Slots[HeadSlot]
	for _, tt := range []struct {
		dt   float64
		want string
	}{{0, "eyes_open"}, {1.85, "eyes_closed"}, {0.1, "eyes_open"}} {
		state.Update(tt.dt)
		_, err := state.Apply(skel)
		require.NoError(t, err)
		assert.Equal(t, tt.want, face.Attachment().AttachmentName())
	}
}
