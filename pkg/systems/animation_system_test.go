package systems

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/skelanim/pkg/animation"
	"github.com/decker502/skelanim/pkg/animstate"
	"github.com/decker502/skelanim/pkg/components"
	"github.com/decker502/skelanim/pkg/config"
	"github.com/decker502/skelanim/pkg/ecs"
	"github.com/decker502/skelanim/pkg/skeleton"
)

// newLibrary has "turn" rotating the arm 0..90 over 1s and "lift" moving it
// up 10, both on a two bone rig.
func newLibrary() *animation.Library {
	root := skeleton.NewBoneData(0, "root", nil)
	arm := skeleton.NewBoneData(1, "arm", root)
	arm.X = 10
	arm.Length = 5
	data := &skeleton.SkeletonData{Name: "rig", Bones: []*skeleton.BoneData{root, arm}}

	turn := animation.NewRotateTimeline(2, 0, 1)
	turn.SetFrame(0, 0, 0)
	turn.SetFrame(1, 1, 90)
	lift := animation.NewTranslateYTimeline(1, 0, 1)
	lift.SetFrame(0, 0, 10)
	return &animation.Library{
		Skeleton: data,
		Animations: []*animation.Animation{
			animation.New("turn", []animation.Timeline{turn}, 1),
			animation.New("lift", []animation.Timeline{lift}, 1),
		},
	}
}

func spawn(t *testing.T, em *ecs.EntityManager, data *animstate.StateData) (ecs.EntityID, *components.SkeletonAnimationComponent) {
	t.Helper()
	skel, err := skeleton.New(data.Library.Skeleton)
	require.NoError(t, err)
	state, err := animstate.New(data)
	require.NoError(t, err)
	anim, err := components.NewSkeletonAnimationComponent(skel, state)
	require.NoError(t, err)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, anim)
	return id, anim
}

func TestAnimationSystemPosesSkeleton(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewAnimationSystem(em, nil)
	_, anim := spawn(t, em, animstate.NewStateData(newLibrary()))

	_, err := anim.State.SetAnimationByName(0, "turn", animstate.LoopForever)
	require.NoError(t, err)

	system.Update(0.5)
	arm := anim.Skeleton.Bones[1]
	assert.InDelta(t, 45, arm.Rotation, 1e-9)
	assert.InDelta(t, 10, arm.WorldX, 1e-9)
	assert.InDelta(t, 10+5*0.70710678, arm.TipX(), 1e-6, "world transform updated")

	kinds := []components.AnimationEventKind{}
	for _, e := range anim.DrainEvents() {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []components.AnimationEventKind{components.AnimationStarted}, kinds)
}

func TestAnimationSystemSkipsPaused(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewAnimationSystem(em, nil)
	_, anim := spawn(t, em, animstate.NewStateData(newLibrary()))
	_, err := anim.State.SetAnimationByName(0, "turn", animstate.LoopForever)
	require.NoError(t, err)

	anim.Paused = true
	system.Update(0.5)
	assert.Equal(t, 0.0, anim.State.Current(0).TrackTime)
	assert.Equal(t, 0.0, anim.Skeleton.Bones[1].Rotation)

	anim.Paused = false
	system.Update(0.25)
	assert.InDelta(t, 22.5, anim.Skeleton.Bones[1].Rotation, 1e-9)
}

func TestAnimationSystemCommands(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewAnimationSystem(em, nil)
	data := animstate.NewStateData(newLibrary())
	data.DefaultMix = 0.5
	id, anim := spawn(t, em, data)

	cmd := &components.AnimationCommandComponent{Animation: "turn"}
	ecs.AddComponent(em, id, cmd)
	system.Update(0)
	assert.True(t, cmd.Processed)
	require.NoError(t, cmd.Err)
	assert.Equal(t, "turn", anim.State.Current(0).Animation.Name)
	assert.Equal(t, animstate.LoopForever, anim.State.Current(0).Loop)

	// Processed commands are not run again.
	anim.State.ClearTracks()
	system.Update(0)
	assert.Nil(t, anim.State.Current(0))

	cmd = &components.AnimationCommandComponent{Track: 1, Animation: "lift"}
	ecs.AddComponent(em, id, cmd)
	system.Update(0)
	queued := &components.AnimationCommandComponent{Track: 1, Empty: true, Queue: true, MixDuration: 0.2, Delay: 1}
	ecs.AddComponent(em, id, queued)
	system.Update(0)
	require.NoError(t, queued.Err)
	next := anim.State.Current(1).Next()
	require.NotNil(t, next)
	assert.Same(t, animstate.EmptyAnimation(), next.Animation)
	assert.Equal(t, 1.0, next.Delay)

	empty := &components.AnimationCommandComponent{Track: 1, Empty: true, MixDuration: 0.3}
	ecs.AddComponent(em, id, empty)
	system.Update(0)
	assert.Same(t, animstate.EmptyAnimation(), anim.State.Current(1).Animation)
	assert.Equal(t, 0.3, anim.State.Current(1).MixDuration)

	bad := &components.AnimationCommandComponent{Animation: "fly"}
	ecs.AddComponent(em, id, bad)
	system.Update(0)
	assert.True(t, bad.Processed)
	assert.ErrorIs(t, bad.Err, animstate.ErrAnimationNotFound)
}

func TestAnimationSystemUsesConfig(t *testing.T) {
	cfg, err := config.LoadFS(fstest.MapFS{"mix.yaml": {Data: []byte(`
default_mix: 0.25
animations:
  - {name: turn, loop: false, time_scale: 2}
  - {name: lift, repeat: 2}
`)}}, "mix.yaml")
	require.NoError(t, err)
	data, err := cfg.StateData(newLibrary())
	require.NoError(t, err)

	em := ecs.NewEntityManager()
	system := NewAnimationSystem(em, cfg)
	id, anim := spawn(t, em, data)

	ecs.AddComponent(em, id, &components.AnimationCommandComponent{Animation: "turn"})
	system.Update(0.25)
	turn := anim.State.Current(0)
	assert.Equal(t, animstate.LoopNone, turn.Loop)
	assert.Equal(t, 2.0, turn.TimeScale)
	assert.InDelta(t, 45, anim.Skeleton.Bones[1].Rotation, 1e-9)

	queued := &components.AnimationCommandComponent{Animation: "lift", Queue: true}
	ecs.AddComponent(em, id, queued)
	system.Update(0)
	require.NoError(t, queued.Err)
	assert.Equal(t, 2, turn.Next().Loop)
	assert.Equal(t, 0.25, turn.Next().MixDuration)
}

func TestAnimationSystemEntityOrder(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewAnimationSystem(em, nil)
	data := animstate.NewStateData(newLibrary())

	var order []ecs.EntityID
	for i := 0; i < 5; i++ {
		id, anim := spawn(t, em, data)
		_, err := anim.State.SetAnimationByName(0, "turn", animstate.LoopForever)
		require.NoError(t, err)
		anim.State.Current(0).Listener = &animstate.ListenerFuncs{
			OnComplete: func(*animstate.TrackEntry) { order = append(order, id) },
		}
	}
	system.Update(0.5)
	system.Update(0.75)
	assert.Equal(t, []ecs.EntityID{1, 2, 3, 4, 5}, order)
}
