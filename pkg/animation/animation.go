// Package animation evaluates keyframed timelines against a skeleton pose.
//
// An Animation is an immutable list of timelines that can be shared by any
// number of skeleton instances. Curves are sampled once when keys are
// authored so evaluation is a table lookup and a linear interpolation.
package animation

import (
	"math"

	"github.com/decker502/skelanim/pkg/skeleton"
)

// Animation is a named list of timelines.
type Animation struct {
	Name      string
	Timelines []Timeline
	Duration  float64

	timelineIDs map[string]struct{}
}

// New creates an animation. The property ids of all timelines are indexed
// for HasTimeline.
func New(name string, timelines []Timeline, duration float64) *Animation {
	a := &Animation{Name: name, Duration: duration}
	a.SetTimelines(timelines)
	return a
}

// SetTimelines replaces the timelines and rebuilds the property id index.
func (a *Animation) SetTimelines(timelines []Timeline) {
	a.Timelines = timelines
	a.timelineIDs = make(map[string]struct{})
	for _, t := range timelines {
		for _, id := range t.PropertyIDs() {
			a.timelineIDs[id] = struct{}{}
		}
	}
}

// HasTimeline reports whether any timeline animates one of the property ids.
func (a *Animation) HasTimeline(ids []string) bool {
	for _, id := range ids {
		if _, ok := a.timelineIDs[id]; ok {
			return true
		}
	}
	return false
}

// Apply poses the skeleton at time. When loop is set, times are wrapped to
// the duration. Events fired in (lastTime, time] are appended to events when
// it is not nil.
func (a *Animation) Apply(skel *skeleton.Skeleton, lastTime, time float64, loop bool, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	if loop && a.Duration != 0 {
		time = math.Mod(time, a.Duration)
		if lastTime > 0 {
			lastTime = math.Mod(lastTime, a.Duration)
		}
	}
	for _, t := range a.Timelines {
		t.Apply(skel, lastTime, time, events, alpha, blend, direction)
	}
}

// Library is the set of animations and events authored for a skeleton.
type Library struct {
	Skeleton   *skeleton.SkeletonData
	Animations []*Animation
	Events     []*EventData
}

// FindAnimation returns the animation with the given name, or nil.
func (l *Library) FindAnimation(name string) *Animation {
	for _, a := range l.Animations {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// FindEvent returns the event data with the given name, or nil.
func (l *Library) FindEvent(name string) *EventData {
	for _, e := range l.Events {
		if e.Name == name {
			return e
		}
	}
	return nil
}
