package systems

import (
	"github.com/rs/zerolog/log"

	"github.com/decker502/skelanim/pkg/animstate"
	"github.com/decker502/skelanim/pkg/components"
	"github.com/decker502/skelanim/pkg/config"
	"github.com/decker502/skelanim/pkg/ecs"
)

// AnimationSystem advances and applies the AnimationState of every entity
// with a SkeletonAnimationComponent, then updates the skeleton's world
// transforms. Pending AnimationCommandComponents are executed first.
type AnimationSystem struct {
	entityManager *ecs.EntityManager
	// config supplies playback settings for commands; may be nil.
	config *config.Manager
}

// NewAnimationSystem creates the system. cfg may be nil, in which case
// commands loop their animation forever with the state's mix settings.
func NewAnimationSystem(em *ecs.EntityManager, cfg *config.Manager) *AnimationSystem {
	return &AnimationSystem{
		entityManager: em,
		config:        cfg,
	}
}

// Update runs one frame: commands, then Update, Apply and
// UpdateWorldTransform for each unpaused entity, in entity order.
func (s *AnimationSystem) Update(deltaTime float64) {
	s.processCommands()

	for _, id := range ecs.GetEntitiesWith1[*components.SkeletonAnimationComponent](s.entityManager) {
		anim, _ := ecs.GetComponent[*components.SkeletonAnimationComponent](s.entityManager, id)
		if anim.Paused {
			continue
		}
		anim.State.Update(deltaTime)
		if _, err := anim.State.Apply(anim.Skeleton); err != nil {
			log.Warn().Str("component", "AnimationSystem").Uint64("entity", uint64(id)).Err(err).Msg("apply failed")
			continue
		}
		anim.Skeleton.UpdateWorldTransform()
	}
}

func (s *AnimationSystem) processCommands() {
	entities := ecs.GetEntitiesWith2[*components.AnimationCommandComponent, *components.SkeletonAnimationComponent](s.entityManager)
	for _, id := range entities {
		cmd, _ := ecs.GetComponent[*components.AnimationCommandComponent](s.entityManager, id)
		if cmd.Processed {
			continue
		}
		anim, _ := ecs.GetComponent[*components.SkeletonAnimationComponent](s.entityManager, id)

		cmd.Err = s.execute(anim.State, cmd)
		cmd.Processed = true
		if cmd.Err != nil {
			log.Warn().
				Str("component", "AnimationSystem").
				Uint64("entity", uint64(id)).
				Int("track", cmd.Track).
				Str("animation", cmd.Animation).
				Err(cmd.Err).
				Msg("animation command failed")
		}
	}
}

func (s *AnimationSystem) execute(state *animstate.AnimationState, cmd *components.AnimationCommandComponent) error {
	var err error
	switch {
	case cmd.Empty && cmd.Queue:
		_, err = state.AddEmptyAnimation(cmd.Track, cmd.MixDuration, cmd.Delay)
	case cmd.Empty:
		_, err = state.SetEmptyAnimation(cmd.Track, cmd.MixDuration)
	case cmd.Queue && s.config != nil:
		_, err = s.config.Queue(state, cmd.Track, cmd.Animation, cmd.Delay)
	case cmd.Queue:
		_, err = state.AddAnimationByName(cmd.Track, cmd.Animation, animstate.LoopForever, cmd.Delay)
	case s.config != nil:
		_, err = s.config.Play(state, cmd.Track, cmd.Animation)
	default:
		_, err = state.SetAnimationByName(cmd.Track, cmd.Animation, animstate.LoopForever)
	}
	return err
}
