package animstate

import (
	"fmt"

	"github.com/decker502/skelanim/pkg/animation"
)

type mixKey struct {
	from, to *animation.Animation
}

// StateData holds the crossfade durations used when an AnimationState
// changes animations. It is shared by every state built from it.
type StateData struct {
	// Library resolves animation names. It may be nil when only
	// animation values are used.
	Library *animation.Library
	// DefaultMix is used for pairs with no explicit mix duration.
	DefaultMix float64

	mixes map[mixKey]float64
}

// NewStateData creates mix data for the animations of lib.
func NewStateData(lib *animation.Library) *StateData {
	return &StateData{Library: lib, mixes: make(map[mixKey]float64)}
}

// SetMix sets the crossfade duration when changing from one animation to another.
func (d *StateData) SetMix(from, to *animation.Animation, duration float64) error {
	if from == nil || to == nil {
		return ErrNilAnimation
	}
	if d.mixes == nil {
		d.mixes = make(map[mixKey]float64)
	}
	d.mixes[mixKey{from, to}] = duration
	return nil
}

// SetMixByName is SetMix using animation names resolved through Library.
func (d *StateData) SetMixByName(fromName, toName string, duration float64) error {
	from, err := d.findAnimation(fromName)
	if err != nil {
		return err
	}
	to, err := d.findAnimation(toName)
	if err != nil {
		return err
	}
	return d.SetMix(from, to, duration)
}

// GetMix returns the crossfade duration from one animation to another, or
// DefaultMix when none was set.
func (d *StateData) GetMix(from, to *animation.Animation) float64 {
	if duration, ok := d.mixes[mixKey{from, to}]; ok {
		return duration
	}
	return d.DefaultMix
}

func (d *StateData) findAnimation(name string) (*animation.Animation, error) {
	if d.Library == nil {
		return nil, fmt.Errorf("%w: %q (no animation library)", ErrAnimationNotFound, name)
	}
	a := d.Library.FindAnimation(name)
	if a == nil {
		return nil, fmt.Errorf("%w: %q", ErrAnimationNotFound, name)
	}
	return a, nil
}
