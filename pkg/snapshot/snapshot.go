// Package snapshot captures the playback of an AnimationState so it can be
// saved and restored later.
//
// A snapshot holds what each track is playing and queued to play. Crossfades
// in progress are not captured: a restored track starts fully mixed in on
// its current entry.
package snapshot

import (
	"errors"
	"fmt"

	"github.com/decker502/skelanim/pkg/animation"
	"github.com/decker502/skelanim/pkg/animstate"
)

// Version is written to every snapshot. Restore rejects other versions.
const Version = 1

var (
	// ErrVersion is returned for snapshots written by an incompatible version.
	ErrVersion = errors.New("snapshot: unsupported version")
	// ErrNotFound is returned by Store.Load when no snapshot has the key.
	ErrNotFound = errors.New("snapshot: not found")
	// ErrInvalidKey is returned for keys that cannot name a file.
	ErrInvalidKey = errors.New("snapshot: invalid key")
)

// Snapshot is the playback state of every track.
type Snapshot struct {
	Version   int     `yaml:"version"`
	TimeScale float64 `yaml:"time_scale"`
	Tracks    []Track `yaml:"tracks"`
}

// Track is the current entry of one track followed by its queued entries.
type Track struct {
	Index   int     `yaml:"index"`
	Current Entry   `yaml:"current"`
	Queue   []Entry `yaml:"queue,omitempty"`
}

// Entry holds the settable fields of a TrackEntry.
type Entry struct {
	Animation        string  `yaml:"animation"`
	Loop             int     `yaml:"loop"`
	Reverse          bool    `yaml:"reverse,omitempty"`
	HoldPrevious     bool    `yaml:"hold_previous,omitempty"`
	ShortestRotation bool    `yaml:"shortest_rotation,omitempty"`
	MixBlend         int     `yaml:"mix_blend"`
	Delay            float64 `yaml:"delay"`
	TrackTime        float64 `yaml:"track_time"`
	TrackEnd         float64 `yaml:"track_end"`
	AnimationStart   float64 `yaml:"animation_start"`
	AnimationEnd     float64 `yaml:"animation_end"`
	AnimationLast    float64 `yaml:"animation_last"`
	TimeScale        float64 `yaml:"time_scale"`
	Alpha            float64 `yaml:"alpha"`
	MixDuration      float64 `yaml:"mix_duration"`

	EventThreshold      float64 `yaml:"event_threshold"`
	AttachmentThreshold float64 `yaml:"attachment_threshold"`
	DrawOrderThreshold  float64 `yaml:"draw_order_threshold"`
}

func captureEntry(e *animstate.TrackEntry) Entry {
	return Entry{
		Animation:           e.Animation.Name,
		Loop:                e.Loop,
		Reverse:             e.Reverse,
		HoldPrevious:        e.HoldPrevious,
		ShortestRotation:    e.ShortestRotation,
		MixBlend:            int(e.MixBlend),
		Delay:               e.Delay,
		TrackTime:           e.TrackTime,
		TrackEnd:            e.TrackEnd,
		AnimationStart:      e.AnimationStart,
		AnimationEnd:        e.AnimationEnd,
		AnimationLast:       e.AnimationLast(),
		TimeScale:           e.TimeScale,
		Alpha:               e.Alpha,
		MixDuration:         e.MixDuration,
		EventThreshold:      e.EventThreshold,
		AttachmentThreshold: e.AttachmentThreshold,
		DrawOrderThreshold:  e.DrawOrderThreshold,
	}
}

func (s Entry) restore(e *animstate.TrackEntry) {
	e.Reverse = s.Reverse
	e.HoldPrevious = s.HoldPrevious
	e.ShortestRotation = s.ShortestRotation
	e.MixBlend = animation.MixBlend(s.MixBlend)
	e.Delay = s.Delay
	e.TrackTime = s.TrackTime
	e.TrackEnd = s.TrackEnd
	e.AnimationStart = s.AnimationStart
	e.AnimationEnd = s.AnimationEnd
	e.SetAnimationLast(s.AnimationLast)
	e.TimeScale = s.TimeScale
	e.Alpha = s.Alpha
	e.MixDuration = s.MixDuration
	e.EventThreshold = s.EventThreshold
	e.AttachmentThreshold = s.AttachmentThreshold
	e.DrawOrderThreshold = s.DrawOrderThreshold
}

// Capture records the playback of every non-empty track.
func Capture(state *animstate.AnimationState) Snapshot {
	snap := Snapshot{Version: Version, TimeScale: state.TimeScale}
	for i, current := range state.Tracks() {
		if current == nil {
			continue
		}
		track := Track{Index: i, Current: captureEntry(current)}
		for next := current.Next(); next != nil; next = next.Next() {
			track.Queue = append(track.Queue, captureEntry(next))
		}
		snap.Tracks = append(snap.Tracks, track)
	}
	return snap
}

func findAnimation(lib *animation.Library, name string) (*animation.Animation, error) {
	if name == animstate.EmptyAnimation().Name {
		return animstate.EmptyAnimation(), nil
	}
	if lib != nil {
		if a := lib.FindAnimation(name); a != nil {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", animstate.ErrAnimationNotFound, name)
}

// Restore replaces the playback of state with the snapshot. Every animation
// is resolved before the state is touched, so on error state is unchanged.
// Listeners receive the usual end and dispose notifications for the cleared
// entries and start notifications for the restored ones.
func Restore(state *animstate.AnimationState, snap Snapshot) error {
	if snap.Version != Version {
		return fmt.Errorf("%w: %d", ErrVersion, snap.Version)
	}

	var lib *animation.Library
	if state.Data != nil {
		lib = state.Data.Library
	}
	anims := make([][]*animation.Animation, len(snap.Tracks))
	for i, track := range snap.Tracks {
		if track.Index < 0 {
			return fmt.Errorf("%w: %d", animstate.ErrInvalidTrack, track.Index)
		}
		for _, e := range append([]Entry{track.Current}, track.Queue...) {
			a, err := findAnimation(lib, e.Animation)
			if err != nil {
				return fmt.Errorf("track %d: %w", track.Index, err)
			}
			anims[i] = append(anims[i], a)
		}
	}

	state.ClearTracks()
	state.TimeScale = snap.TimeScale
	for i, track := range snap.Tracks {
		entry, err := state.SetAnimation(track.Index, anims[i][0], track.Current.Loop)
		if err != nil {
			return err
		}
		track.Current.restore(entry)
		for k, queued := range track.Queue {
			entry, err := state.AddAnimation(track.Index, anims[i][k+1], queued.Loop, queued.Delay)
			if err != nil {
				return err
			}
			queued.restore(entry)
		}
	}
	return nil
}
