package components

// AnimationCommandComponent requests a playback change on an entity's
// SkeletonAnimationComponent. It is plain data: other systems add it and
// AnimationSystem executes it before the next update.
//
// Examples:
//
//	// crossfade to run on track 0
//	ecs.AddComponent(em, id, &AnimationCommandComponent{Animation: "run"})
//
//	// queue a one-shot jump after the current loop
//	ecs.AddComponent(em, id, &AnimationCommandComponent{Animation: "jump", Queue: true})
//
//	// mix track 1 out over 0.3s
//	ecs.AddComponent(em, id, &AnimationCommandComponent{Track: 1, Empty: true, MixDuration: 0.3})
//
// An entity holds at most one command; adding another replaces it.
type AnimationCommandComponent struct {
	Track int

	// Animation is looked up in the state's library. When a config manager
	// is set on the system its playback settings are applied.
	Animation string

	// Queue adds the animation after the last queued entry instead of
	// replacing the current one. Delay is passed to AddAnimation.
	Queue bool
	Delay float64

	// Empty mixes the track out to the setup pose over MixDuration.
	// Animation is ignored.
	Empty       bool
	MixDuration float64

	// Processed is set once the system has executed the command. Err holds
	// the failure, if any.
	Processed bool
	Err       error
}
