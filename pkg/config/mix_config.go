package config

import (
	"errors"
	"fmt"

	"github.com/decker502/skelanim/pkg/animstate"
)

var (
	// ErrConfigNotFound is returned when a path is neither a file nor a directory.
	ErrConfigNotFound = errors.New("config: path not found")
	// ErrConfigParse wraps YAML decoding failures.
	ErrConfigParse = errors.New("config: parse failed")
	// ErrConfigInvalid is returned for values outside their range.
	ErrConfigInvalid = errors.New("config: invalid value")
	// ErrConfigDuplicate is returned when two files define the same mix or animation.
	ErrConfigDuplicate = errors.New("config: duplicate definition")
)

// MixConfig is the top level of a mix configuration file.
//
//	default_mix: 0.2
//	mixes:
//	  - {from: walk, to: run, duration: 0.3}
//	animations:
//	  - {name: walk, loop: true, time_scale: 1.0}
type MixConfig struct {
	DefaultMix float64          `yaml:"default_mix"`
	Mixes      []MixPair        `yaml:"mixes"`
	Animations []PlaybackConfig `yaml:"animations"`
}

// MixPair is the crossfade duration used when To replaces From.
type MixPair struct {
	From     string  `yaml:"from"`
	To       string  `yaml:"to"`
	Duration float64 `yaml:"duration"`
}

// PlaybackConfig holds the track entry settings applied when an animation is
// started by name.
type PlaybackConfig struct {
	Name string `yaml:"name"`
	// Loop defaults to true when omitted.
	Loop *bool `yaml:"loop,omitempty"`
	// Repeat limits a looping animation to that many plays. 0 repeats forever.
	Repeat    int     `yaml:"repeat,omitempty"`
	TimeScale float64 `yaml:"time_scale,omitempty"`
	// MixDuration overrides the pair and default mix when set.
	MixDuration      *float64 `yaml:"mix_duration,omitempty"`
	Reverse          bool     `yaml:"reverse,omitempty"`
	HoldPrevious     bool     `yaml:"hold_previous,omitempty"`
	ShortestRotation bool     `yaml:"shortest_rotation,omitempty"`
}

// LoopCount converts Loop and Repeat to a TrackEntry.Loop value.
func (p PlaybackConfig) LoopCount() int {
	if p.Loop != nil && !*p.Loop {
		return animstate.LoopNone
	}
	if p.Repeat > 0 {
		return p.Repeat
	}
	return animstate.LoopForever
}

// applyTo copies the settings onto a freshly created entry.
func (p PlaybackConfig) applyTo(entry *animstate.TrackEntry) {
	if p.TimeScale != 0 {
		entry.TimeScale = p.TimeScale
	}
	if p.MixDuration != nil {
		entry.MixDuration = *p.MixDuration
	}
	entry.Reverse = p.Reverse
	entry.HoldPrevious = p.HoldPrevious
	entry.ShortestRotation = p.ShortestRotation
}

// Validate checks ranges and names. It does not resolve animation names;
// StateData does that against a library.
func (c *MixConfig) Validate() error {
	if c.DefaultMix < 0 {
		return fmt.Errorf("%w: default_mix %v is negative", ErrConfigInvalid, c.DefaultMix)
	}
	pairs := make(map[[2]string]struct{}, len(c.Mixes))
	for i, m := range c.Mixes {
		if m.From == "" || m.To == "" {
			return fmt.Errorf("%w: mix #%d needs both 'from' and 'to'", ErrConfigInvalid, i)
		}
		if m.Duration < 0 {
			return fmt.Errorf("%w: mix %s -> %s duration %v is negative", ErrConfigInvalid, m.From, m.To, m.Duration)
		}
		key := [2]string{m.From, m.To}
		if _, ok := pairs[key]; ok {
			return fmt.Errorf("%w: mix %s -> %s", ErrConfigDuplicate, m.From, m.To)
		}
		pairs[key] = struct{}{}
	}
	names := make(map[string]struct{}, len(c.Animations))
	for i, a := range c.Animations {
		if a.Name == "" {
			return fmt.Errorf("%w: animation #%d is missing 'name'", ErrConfigInvalid, i)
		}
		if _, ok := names[a.Name]; ok {
			return fmt.Errorf("%w: animation %q", ErrConfigDuplicate, a.Name)
		}
		names[a.Name] = struct{}{}
		if a.Repeat < 0 {
			return fmt.Errorf("%w: animation %q repeat %d is negative", ErrConfigInvalid, a.Name, a.Repeat)
		}
		if a.TimeScale < 0 {
			return fmt.Errorf("%w: animation %q time_scale %v is negative", ErrConfigInvalid, a.Name, a.TimeScale)
		}
		if a.MixDuration != nil && *a.MixDuration < 0 {
			return fmt.Errorf("%w: animation %q mix_duration %v is negative", ErrConfigInvalid, a.Name, *a.MixDuration)
		}
	}
	return nil
}

// merge appends other's definitions. A non-zero default mix may only be set once.
func (c *MixConfig) merge(other MixConfig) error {
	if other.DefaultMix != 0 {
		if c.DefaultMix != 0 && c.DefaultMix != other.DefaultMix {
			return fmt.Errorf("%w: default_mix set to both %v and %v", ErrConfigDuplicate, c.DefaultMix, other.DefaultMix)
		}
		c.DefaultMix = other.DefaultMix
	}
	c.Mixes = append(c.Mixes, other.Mixes...)
	c.Animations = append(c.Animations, other.Animations...)
	return nil
}
