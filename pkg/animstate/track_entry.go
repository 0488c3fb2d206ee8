package animstate

import (
	"math"

	"github.com/decker502/skelanim/internal/pool"
	"github.com/decker502/skelanim/pkg/animation"
)

// Loop values for TrackEntry.Loop.
const (
	// LoopNone plays the animation once and holds the last frame.
	LoopNone = 0
	// LoopForever repeats the animation until it is replaced.
	LoopForever = math.MaxInt32
)

// Loops converts a looping flag to a Loop value.
func Loops(loop bool) int {
	if loop {
		return LoopForever
	}
	return LoopNone
}

// TrackEntry is the playback state of one animation on one track.
//
// Entries are pooled: once the Dispose listener callback has run the entry
// may be reused. Hold a Handle instead of the pointer to detect that.
type TrackEntry struct {
	Animation  *animation.Animation
	TrackIndex int

	// Loop is the number of plays left, counting the one in progress. It is
	// decremented on each completion and the last play holds the final
	// frame; LoopForever never decrements. Zero or negative values play once
	// and hold the last frame.
	Loop int

	// Reverse plays the animation backward. Events are not fired.
	Reverse bool
	// HoldPrevious keeps the previous entry's values for properties this
	// entry also keys, instead of mixing them out, avoiding a visible dip.
	HoldPrevious bool
	// ShortestRotation disables rotation direction tracking while mixing, so
	// rotations always take the shortest path, even if that reverses.
	ShortestRotation bool
	// MixBlend is how this entry's values combine with lower tracks.
	// Track 0 always uses MixBlendFirst.
	MixBlend animation.MixBlend

	// Delay is the seconds to wait before this entry starts, after the previous entry.
	Delay float64
	// TrackTime is the seconds this entry has been current, scaled by TimeScale.
	TrackTime float64
	// TrackEnd is the track time at which the entry ends and the track is cleared.
	TrackEnd float64

	AnimationStart float64
	AnimationEnd   float64

	TimeScale float64
	Alpha     float64

	// MixTime counts up from 0 while the previous entry is mixed out.
	MixTime     float64
	MixDuration float64

	// Thresholds below which the entry's events, attachment and draw order
	// keys are applied while it is mixed out.
	EventThreshold      float64
	AttachmentThreshold float64
	DrawOrderThreshold  float64

	// Listener receives callbacks for this entry only.
	Listener Listener

	previous   *TrackEntry
	next       *TrackEntry
	mixingFrom *TrackEntry
	mixingTo   *TrackEntry

	trackLast         float64
	nextTrackLast     float64
	animationLast     float64
	nextAnimationLast float64
	interruptAlpha    float64
	totalAlpha        float64

	timelineMode      []int
	timelineHoldMix   []*TrackEntry
	timelinesRotation []float64

	handle pool.Handle
}

func (e *TrackEntry) reset() {
	*e = TrackEntry{
		timelineMode:      e.timelineMode[:0],
		timelineHoldMix:   e.timelineHoldMix[:0],
		timelinesRotation: e.timelinesRotation[:0],
	}
}

// Handle returns a reference that stops resolving once the entry is disposed.
func (e *TrackEntry) Handle() pool.Handle { return e.handle }

// Next returns the entry queued to play after this one, or nil.
func (e *TrackEntry) Next() *TrackEntry { return e.next }

// Previous returns the entry this one is queued after, or nil once it is current.
func (e *TrackEntry) Previous() *TrackEntry { return e.previous }

// MixingFrom returns the entry being mixed out, or nil.
func (e *TrackEntry) MixingFrom() *TrackEntry { return e.mixingFrom }

// MixingTo returns the entry this one is being mixed into, or nil.
func (e *TrackEntry) MixingTo() *TrackEntry { return e.mixingTo }

// TrackLast is the track time of the previous apply, or -1 if never applied.
func (e *TrackEntry) TrackLast() float64 { return e.trackLast }

// AnimationLast is the animation time of the previous apply.
func (e *TrackEntry) AnimationLast() float64 { return e.animationLast }

// SetAnimationLast sets the time events are fired from on the next apply.
func (e *TrackEntry) SetAnimationLast(animationLast float64) {
	e.animationLast = animationLast
	e.nextAnimationLast = animationLast
}

// InterruptAlpha is the mix percentage of the entry this one interrupted.
func (e *TrackEntry) InterruptAlpha() float64 { return e.interruptAlpha }

// TimelineModes returns the blend mode resolved for each timeline. It is
// valid after the first apply following a track change.
func (e *TrackEntry) TimelineModes() []int { return e.timelineMode }

// Looping reports whether the entry wraps at the animation end at its current
// track time. A finite Loop counts the plays left, including the one in
// progress, so the last play clamps at the end instead of wrapping.
func (e *TrackEntry) Looping() bool {
	if e.Loop <= 0 {
		return false
	}
	duration := e.AnimationEnd - e.AnimationStart
	if e.Loop == LoopForever || duration == 0 {
		return true
	}
	return e.TrackTime < e.loopsEnd(duration)
}

// loopsEnd returns the track time at which a finite loop count runs out,
// counted from the loop the entry was last applied in.
func (e *TrackEntry) loopsEnd(duration float64) float64 {
	last := e.nextTrackLast
	if last < 0 {
		last = e.TrackTime
	}
	return duration * (math.Floor(last/duration) + float64(e.Loop))
}

// AnimationTime maps the track time into the animation's start..end range.
func (e *TrackEntry) AnimationTime() float64 {
	if e.Looping() {
		duration := e.AnimationEnd - e.AnimationStart
		if duration == 0 {
			return e.AnimationStart
		}
		return math.Mod(e.TrackTime, duration) + e.AnimationStart
	}
	return math.Min(e.TrackTime+e.AnimationStart, e.AnimationEnd)
}

// IsComplete reports whether at least one loop, or the whole animation, has played.
func (e *TrackEntry) IsComplete() bool {
	return e.TrackTime >= e.AnimationEnd-e.AnimationStart
}

// WasApplied reports whether the entry has been applied at least once.
func (e *TrackEntry) WasApplied() bool {
	return e.nextTrackLast != -1
}

// IsNextReady reports whether the queued next entry will become current on the next update.
func (e *TrackEntry) IsNextReady() bool {
	return e.next != nil && e.nextTrackLast-e.next.Delay >= 0
}

// TrackComplete returns the track time at which the next completion happens:
// the end of the current loop, the animation end, or the current time if
// the animation has no duration or already ended.
func (e *TrackEntry) TrackComplete() float64 {
	duration := e.AnimationEnd - e.AnimationStart
	if duration != 0 {
		if e.Looping() {
			return duration * (1 + math.Floor(e.TrackTime/duration))
		}
		if e.TrackTime < duration {
			return duration
		}
	}
	return e.TrackTime
}

// ResetRotationDirections forgets the rotation direction of mixes, so the
// next mix takes the shortest path.
func (e *TrackEntry) ResetRotationDirections() {
	e.timelinesRotation = e.timelinesRotation[:0]
}

// settle records what an apply pass reached. Once an entry stops looping its
// next pass starts from the animation end, not the wrapped time, so events of
// the final loop are not fired again. The track time is recorded first so a
// loop count decremented by this pass counts from the loop now in progress.
func (e *TrackEntry) settle(animationTime float64) {
	e.nextTrackLast = e.TrackTime
	if !e.Looping() && e.IsComplete() {
		animationTime = e.AnimationEnd
	}
	e.nextAnimationLast = animationTime
}
