package components

import (
	"errors"
	"fmt"

	"github.com/decker502/skelanim/pkg/animation"
	"github.com/decker502/skelanim/pkg/animstate"
	"github.com/decker502/skelanim/pkg/skeleton"
)

// ErrNilState is returned when a component is created without an AnimationState.
var ErrNilState = errors.New("components: nil animation state")

// AnimationEventKind is the kind of a buffered AnimationEvent.
type AnimationEventKind int

const (
	AnimationStarted AnimationEventKind = iota
	AnimationInterrupted
	AnimationEnded
	AnimationCompleted
	AnimationDisposed
	// AnimationKeyed is a keyed event fired by an event timeline.
	AnimationKeyed
)

func (k AnimationEventKind) String() string {
	switch k {
	case AnimationStarted:
		return "start"
	case AnimationInterrupted:
		return "interrupt"
	case AnimationEnded:
		return "end"
	case AnimationCompleted:
		return "complete"
	case AnimationDisposed:
		return "dispose"
	case AnimationKeyed:
		return "event"
	}
	return fmt.Sprintf("AnimationEventKind(%d)", int(k))
}

// AnimationEvent is a notification copied out of the AnimationState, so it
// stays valid after the track entry is reused.
type AnimationEvent struct {
	Kind      AnimationEventKind
	Track     int
	Animation string
	// Event is set for AnimationKeyed only.
	Event *animation.Event
}

// SkeletonAnimationComponent poses a skeleton from an AnimationState.
// AnimationSystem updates and applies it every frame; notifications
// accumulate in Events until the owner drains them.
type SkeletonAnimationComponent struct {
	Skeleton *skeleton.Skeleton
	State    *animstate.AnimationState

	// Paused entities are neither updated nor applied.
	Paused bool

	// Events buffers notifications since the last DrainEvents.
	Events []AnimationEvent
}

// NewSkeletonAnimationComponent creates the component and subscribes it to
// the state's notifications.
func NewSkeletonAnimationComponent(skel *skeleton.Skeleton, state *animstate.AnimationState) (*SkeletonAnimationComponent, error) {
	if skel == nil {
		return nil, animstate.ErrNilSkeleton
	}
	if state == nil {
		return nil, ErrNilState
	}
	c := &SkeletonAnimationComponent{Skeleton: skel, State: state}
	err := state.AddListener(&animstate.ListenerFuncs{
		OnStart:     func(e *animstate.TrackEntry) { c.record(AnimationStarted, e, nil) },
		OnInterrupt: func(e *animstate.TrackEntry) { c.record(AnimationInterrupted, e, nil) },
		OnEnd:       func(e *animstate.TrackEntry) { c.record(AnimationEnded, e, nil) },
		OnComplete:  func(e *animstate.TrackEntry) { c.record(AnimationCompleted, e, nil) },
		OnDispose:   func(e *animstate.TrackEntry) { c.record(AnimationDisposed, e, nil) },
		OnEvent:     func(e *animstate.TrackEntry, ev *animation.Event) { c.record(AnimationKeyed, e, ev) },
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *SkeletonAnimationComponent) record(kind AnimationEventKind, entry *animstate.TrackEntry, ev *animation.Event) {
	c.Events = append(c.Events, AnimationEvent{
		Kind:      kind,
		Track:     entry.TrackIndex,
		Animation: entry.Animation.Name,
		Event:     ev,
	})
}

// DrainEvents returns the buffered notifications and empties the buffer.
func (c *SkeletonAnimationComponent) DrainEvents() []AnimationEvent {
	events := c.Events
	c.Events = nil
	return events
}
