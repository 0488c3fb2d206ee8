// Package animstate plays animations on tracks, crossfading between them
// and layering tracks onto one skeleton pose.
//
// Each frame the host calls Update with the elapsed time, then Apply to pose
// the skeleton. Listener callbacks for everything that happened during the
// call are delivered before it returns.
package animstate

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/decker502/skelanim/internal/pool"
	"github.com/decker502/skelanim/pkg/animation"
	"github.com/decker502/skelanim/pkg/skeleton"
)

var (
	// ErrNilAnimation is returned when an animation argument is nil.
	ErrNilAnimation = errors.New("animation is nil")
	// ErrAnimationNotFound is returned when an animation name is unknown.
	ErrAnimationNotFound = errors.New("animation not found")
	// ErrNilSkeleton is returned by Apply when the skeleton is nil.
	ErrNilSkeleton = errors.New("skeleton is nil")
	// ErrInvalidTrack is returned for negative track indices.
	ErrInvalidTrack = errors.New("invalid track index")
	// ErrNilListener is returned when registering a nil listener.
	ErrNilListener = errors.New("listener is nil")
	// ErrNilStateData is returned when a state is created without mix data.
	ErrNilStateData = errors.New("state data is nil")
)

// Timeline modes resolved by computeHold.
const (
	// Mix from the current pose, a lower track or an earlier timeline keys the property.
	modeSubsequent = iota
	// First to key the property, mix from the setup pose.
	modeFirst
	// Held while mixing out, a lower track keys the property.
	modeHoldSubsequent
	// Held while mixing out, mix from the setup pose.
	modeHoldFirst
	// Held, faded out as the entry in timelineHoldMix mixes in.
	modeHoldMix
)

// Attachment state offsets relative to unkeyedState.
const (
	attachmentSetup   = 1
	attachmentCurrent = 2
)

var (
	emptyAnimationOnce sync.Once
	emptyAnimation     *animation.Animation
)

// EmptyAnimation returns the shared animation with no timelines used to mix
// tracks out to the setup pose.
func EmptyAnimation() *animation.Animation {
	emptyAnimationOnce.Do(func() {
		emptyAnimation = animation.New("<empty>", nil, 0)
	})
	return emptyAnimation
}

// AnimationState applies animations over time, queues animations for
// later playback, mixes between animations and layers multiple animations
// on top of each other.
//
// An AnimationState is not safe for concurrent use.
type AnimationState struct {
	Data *StateData
	// TimeScale multiplies the delta passed to Update for every track.
	TimeScale float64
	// SuppressEvents stops event timelines from firing Event callbacks.
	SuppressEvents bool

	tracks    []*TrackEntry
	events    []*animation.Event
	listeners []Listener
	queue     eventQueue

	propertyIDs       map[string]struct{}
	animationsChanged bool
	unkeyedState      int

	trackEntryPool *pool.Pool[TrackEntry]
}

// New creates an animation state using data for mix durations.
func New(data *StateData) (*AnimationState, error) {
	if data == nil {
		return nil, ErrNilStateData
	}
	s := &AnimationState{
		Data:           data,
		TimeScale:      1,
		propertyIDs:    make(map[string]struct{}),
		trackEntryPool: pool.New((*TrackEntry).reset),
	}
	s.queue.state = s
	return s, nil
}

// Update advances every track by delta seconds and queues lifecycle
// callbacks. The pose is not changed until Apply.
func (s *AnimationState) Update(delta float64) {
	delta *= s.TimeScale
	for i, current := range s.tracks {
		if current == nil {
			continue
		}

		current.animationLast = current.nextAnimationLast
		current.trackLast = current.nextTrackLast

		currentDelta := delta * current.TimeScale

		if current.Delay > 0 {
			current.Delay -= currentDelta
			if current.Delay > 0 {
				continue
			}
			currentDelta = -current.Delay
			current.Delay = 0
		}

		next := current.next
		if next != nil {
			// Promote the next entry once its delay has passed, keeping leftover time.
			nextTime := current.trackLast - next.Delay
			if nextTime >= 0 {
				next.Delay = 0
				if current.TimeScale != 0 {
					next.TrackTime += (nextTime/current.TimeScale + delta) * next.TimeScale
				}
				current.TrackTime += currentDelta
				current.next = nil
				s.setCurrent(i, next, true)
				for next.mixingFrom != nil {
					next.MixTime += delta
					next = next.mixingFrom
				}
				continue
			}
		} else if current.trackLast >= current.TrackEnd && current.mixingFrom == nil {
			s.tracks[i] = nil
			s.queue.end(current)
			s.clearNext(current)
			log.Debug().Str("component", "AnimationState").Int("track", i).
				Str("animation", current.Animation.Name).Msg("track ended")
			continue
		}

		if current.mixingFrom != nil && s.updateMixingFrom(current, delta) {
			// Every entry mixing out has completed.
			from := current.mixingFrom
			current.mixingFrom = nil
			if from != nil {
				from.mixingTo = nil
			}
			for from != nil {
				s.queue.end(from)
				from = from.mixingFrom
			}
		}

		current.TrackTime += currentDelta
	}

	s.queue.drain()
}

// updateMixingFrom advances the entries to is mixing from, oldest first. It
// returns true when the whole chain is done mixing.
func (s *AnimationState) updateMixingFrom(to *TrackEntry, delta float64) bool {
	from := to.mixingFrom
	if from == nil {
		return true
	}

	finished := s.updateMixingFrom(from, delta)

	from.animationLast = from.nextAnimationLast
	from.trackLast = from.nextTrackLast

	// mixTime > 0 ensures the entry mixing out was applied at least once.
	if to.MixTime > 0 && to.MixTime >= to.MixDuration {
		// totalAlpha == 0 ensures nothing still mixes, unless the transition is a single frame.
		if from.totalAlpha == 0 || to.MixDuration == 0 {
			to.mixingFrom = from.mixingFrom
			if from.mixingFrom != nil {
				from.mixingFrom.mixingTo = to
			}
			to.interruptAlpha = from.interruptAlpha
			s.queue.end(from)
		}
		return finished
	}

	from.TrackTime += delta * from.TimeScale
	to.MixTime += delta
	return false
}

// Apply poses the skeleton using every track's current entry, mixing in the
// entries they replaced. It reports whether any entry was applied.
func (s *AnimationState) Apply(skel *skeleton.Skeleton) (bool, error) {
	if skel == nil {
		return false, ErrNilSkeleton
	}
	if s.animationsChanged {
		s.updateTimelineModes()
	}

	applied := false
	for i, current := range s.tracks {
		if current == nil || current.Delay > 0 {
			continue
		}
		applied = true

		// Track 0 has nothing below it to blend with.
		blend := current.MixBlend
		if i == 0 {
			blend = animation.MixBlendFirst
		}

		mix := current.Alpha
		if current.mixingFrom != nil {
			mix *= s.applyMixingFrom(current, skel, blend)
		} else if current.TrackTime >= current.TrackEnd && current.next == nil {
			mix = 0
		}

		animationLast := current.animationLast
		animationTime := current.AnimationTime()
		applyTime := animationTime
		var applyEvents *[]*animation.Event
		if !s.SuppressEvents {
			applyEvents = &s.events
		}
		if current.Reverse {
			applyTime = current.Animation.Duration - applyTime
			applyEvents = nil
		}

		timelines := current.Animation.Timelines
		if (i == 0 && mix == 1) || blend == animation.MixBlendAdd {
			for _, timeline := range timelines {
				if t, ok := timeline.(*animation.AttachmentTimeline); ok {
					s.applyAttachmentTimeline(t, skel, applyTime, blend, true)
					continue
				}
				timeline.Apply(skel, animationLast, applyTime, applyEvents, mix, blend, animation.MixIn)
			}
		} else {
			timelineMode := current.timelineMode
			shortestRotation := current.ShortestRotation
			firstFrame := !shortestRotation && len(current.timelinesRotation) != len(timelines)<<1
			if firstFrame {
				current.timelinesRotation = resizeRotations(current.timelinesRotation, len(timelines)<<1)
			}
			for ii, timeline := range timelines {
				timelineBlend := animation.MixBlendSetup
				if timelineMode[ii] == modeSubsequent {
					timelineBlend = blend
				}
				switch t := timeline.(type) {
				case *animation.RotateTimeline:
					if shortestRotation {
						t.Apply(skel, animationLast, applyTime, applyEvents, mix, timelineBlend, animation.MixIn)
						continue
					}
					s.applyRotateTimeline(t, skel, applyTime, mix, timelineBlend, current.timelinesRotation, ii<<1, firstFrame)
				case *animation.AttachmentTimeline:
					s.applyAttachmentTimeline(t, skel, applyTime, blend, true)
				default:
					timeline.Apply(skel, animationLast, applyTime, applyEvents, mix, timelineBlend, animation.MixIn)
				}
			}
		}
		s.queueEvents(current, animationTime)
		s.clearEvents()
		current.settle(animationTime)
	}

	// Slots keyed only while mixing out, or before their first key, go back
	// to the setup attachment.
	setupState := s.unkeyedState + attachmentSetup
	for _, slot := range skel.Slots {
		if slot.AttachmentState == setupState {
			name := slot.Data.AttachmentName
			if name == "" {
				slot.SetAttachment(nil)
			} else {
				slot.SetAttachment(skel.GetAttachment(slot.Data.Index, name))
			}
		}
	}
	// Two states per pass so attachment states set by earlier passes are stale.
	s.unkeyedState += 2

	s.queue.drain()
	return applied, nil
}

// applyMixingFrom applies the entries to is mixing from, oldest first, and
// returns the mix percentage of to.
func (s *AnimationState) applyMixingFrom(to *TrackEntry, skel *skeleton.Skeleton, blend animation.MixBlend) float64 {
	from := to.mixingFrom
	if from.mixingFrom != nil {
		s.applyMixingFrom(from, skel, blend)
	}

	var mix float64
	if to.MixDuration == 0 {
		// Single frame mix to undo the mixing from changes.
		mix = 1
		if blend == animation.MixBlendFirst {
			blend = animation.MixBlendSetup
		}
	} else {
		mix = math.Min(1, to.MixTime/to.MixDuration)
		if blend != animation.MixBlendFirst {
			blend = from.MixBlend
		}
	}

	attachments := mix < from.AttachmentThreshold
	drawOrder := mix < from.DrawOrderThreshold
	timelines := from.Animation.Timelines
	alphaHold := from.Alpha * to.interruptAlpha
	alphaMix := alphaHold * (1 - mix)
	animationLast := from.animationLast
	animationTime := from.AnimationTime()
	applyTime := animationTime

	var events *[]*animation.Event
	if from.Reverse {
		applyTime = from.Animation.Duration - applyTime
	} else if mix < from.EventThreshold && !s.SuppressEvents {
		events = &s.events
	}

	if blend == animation.MixBlendAdd {
		for _, timeline := range timelines {
			timeline.Apply(skel, animationLast, applyTime, events, alphaMix, blend, animation.MixOut)
		}
	} else {
		timelineMode := from.timelineMode
		timelineHoldMix := from.timelineHoldMix
		shortestRotation := from.ShortestRotation
		firstFrame := !shortestRotation && len(from.timelinesRotation) != len(timelines)<<1
		if firstFrame {
			from.timelinesRotation = resizeRotations(from.timelinesRotation, len(timelines)<<1)
		}

		from.totalAlpha = 0
		for i, timeline := range timelines {
			direction := animation.MixOut
			var timelineBlend animation.MixBlend
			var alpha float64
			switch timelineMode[i] {
			case modeSubsequent:
				if _, ok := timeline.(*animation.DrawOrderTimeline); ok && !drawOrder {
					continue
				}
				timelineBlend = blend
				alpha = alphaMix
			case modeFirst:
				timelineBlend = animation.MixBlendSetup
				alpha = alphaMix
			case modeHoldSubsequent:
				timelineBlend = blend
				alpha = alphaHold
			case modeHoldFirst:
				timelineBlend = animation.MixBlendSetup
				alpha = alphaHold
			default:
				timelineBlend = animation.MixBlendSetup
				holdMix := timelineHoldMix[i]
				alpha = alphaHold * math.Max(0, 1-holdMix.MixTime/holdMix.MixDuration)
			}
			from.totalAlpha += alpha

			switch t := timeline.(type) {
			case *animation.RotateTimeline:
				if shortestRotation {
					t.Apply(skel, animationLast, applyTime, events, alpha, timelineBlend, direction)
					continue
				}
				s.applyRotateTimeline(t, skel, applyTime, alpha, timelineBlend, from.timelinesRotation, i<<1, firstFrame)
			case *animation.AttachmentTimeline:
				s.applyAttachmentTimeline(t, skel, applyTime, timelineBlend, attachments)
			default:
				if _, ok := timeline.(*animation.DrawOrderTimeline); ok && drawOrder && timelineBlend == animation.MixBlendSetup {
					direction = animation.MixIn
				}
				timeline.Apply(skel, animationLast, applyTime, events, alpha, timelineBlend, direction)
			}
		}
	}

	if to.MixDuration > 0 {
		s.queueEvents(from, animationTime)
	}
	s.clearEvents()
	from.settle(animationTime)

	return mix
}

// applyAttachmentTimeline sets the keyed attachment and records in the slot
// whether the current pass keyed it. Slots left at the setup state are
// reset to the setup attachment at the end of Apply.
func (s *AnimationState) applyAttachmentTimeline(t *animation.AttachmentTimeline, skel *skeleton.Skeleton, time float64, blend animation.MixBlend, attachments bool) {
	slot := skel.Slots[t.SlotIndex]
	if !slot.Bone.Active {
		return
	}

	if name, ok := t.NameAt(time); ok {
		s.setAttachment(skel, slot, name, attachments)
	} else if blend == animation.MixBlendSetup || blend == animation.MixBlendFirst {
		s.setAttachment(skel, slot, slot.Data.AttachmentName, attachments)
	}

	if slot.AttachmentState <= s.unkeyedState {
		slot.AttachmentState = s.unkeyedState + attachmentSetup
	}
}

func (s *AnimationState) setAttachment(skel *skeleton.Skeleton, slot *skeleton.Slot, name string, attachments bool) {
	if name == "" {
		slot.SetAttachment(nil)
	} else {
		slot.SetAttachment(skel.GetAttachment(slot.Data.Index, name))
	}
	if attachments {
		slot.AttachmentState = s.unkeyedState + attachmentCurrent
	}
}

// applyRotateTimeline mixes a bone's rotation toward the keyed value along
// the direction of the shortest route on the first frame, then keeps that
// direction even when the shortest route changes, so the bone never snaps
// across 180 degrees mid-mix. timelinesRotation[i] holds the accumulated
// rotation and timelinesRotation[i+1] the previous frame's difference.
func (s *AnimationState) applyRotateTimeline(t *animation.RotateTimeline, skel *skeleton.Skeleton, time, alpha float64, blend animation.MixBlend, timelinesRotation []float64, i int, firstFrame bool) {
	if firstFrame {
		timelinesRotation[i] = 0
	}

	if alpha == 1 {
		t.Apply(skel, 0, time, nil, 1, blend, animation.MixIn)
		return
	}

	bone := skel.Bones[t.BoneIndex]
	if !bone.Active {
		return
	}
	var r1, r2 float64
	if time < t.Frames()[0] {
		switch blend {
		case animation.MixBlendSetup:
			bone.Rotation = bone.Data.Rotation
			return
		case animation.MixBlendFirst:
			r1 = bone.Rotation
			r2 = bone.Data.Rotation
		default:
			return
		}
	} else {
		r1 = bone.Rotation
		if blend == animation.MixBlendSetup {
			r1 = bone.Data.Rotation
		}
		r2 = bone.Data.Rotation + t.CurveValue(time)
	}

	// Wrap the difference into [-180, 180).
	var total float64
	diff := r2 - r1
	diff -= float64(16384-int(16384.499999999996-diff/360)) * 360
	if diff == 0 {
		total = timelinesRotation[i]
	} else {
		var lastTotal, lastDiff float64
		if firstFrame {
			lastDiff = diff
		} else {
			lastTotal = timelinesRotation[i]
			lastDiff = timelinesRotation[i+1]
		}
		current := diff > 0
		dir := lastTotal >= 0
		// A sign change close to 0 is a crossing, not a reversal at 180.
		if signum(lastDiff) != signum(diff) && math.Abs(lastDiff) <= 90 {
			// A crossing after a full turn is a loop.
			if math.Abs(lastTotal) > 180 {
				lastTotal += 360 * signum(lastTotal)
			}
			dir = current
		}
		// Whole turns are kept in the total.
		total = diff + lastTotal - math.Mod(lastTotal, 360)
		if dir != current {
			total += 360 * signum(lastTotal)
		}
		timelinesRotation[i] = total
	}
	timelinesRotation[i+1] = diff
	bone.Rotation = r1 + total*alpha
}

// queueEvents queues the collected events and the complete callback in
// playback order: events of the loop that just ended, complete, then events
// of the next loop.
func (s *AnimationState) queueEvents(entry *TrackEntry, animationTime float64) {
	animationStart := entry.AnimationStart
	animationEnd := entry.AnimationEnd
	duration := animationEnd - animationStart

	var trackLastWrapped float64
	if duration != 0 {
		trackLastWrapped = math.Mod(entry.trackLast, duration)
	}

	events := s.events
	i := 0
	for ; i < len(events); i++ {
		event := events[i]
		if event.Time < trackLastWrapped {
			break
		}
		// Discard events outside the animation range.
		if event.Time > animationEnd {
			continue
		}
		s.queue.event(entry, event)
	}

	var complete bool
	if entry.Looping() {
		complete = duration == 0 || trackLastWrapped > math.Mod(entry.TrackTime, duration)
	} else {
		complete = animationTime >= animationEnd && entry.animationLast < animationEnd
	}
	if complete {
		if entry.Loop > 0 && entry.Loop < LoopForever {
			entry.Loop--
		}
		s.queue.complete(entry)
	}

	// Events of the next loop.
	for ; i < len(events); i++ {
		event := events[i]
		if event.Time < animationStart {
			continue
		}
		s.queue.event(entry, event)
	}
}

func (s *AnimationState) clearEvents() {
	for i := range s.events {
		s.events[i] = nil
	}
	s.events = s.events[:0]
}

// ClearTracks removes every track, ending all entries. Skeleton values are not
// reset; use SetEmptyAnimations to mix out to the setup pose.
func (s *AnimationState) ClearTracks() {
	oldDrainDisabled := s.queue.drainDisabled
	s.queue.drainDisabled = true
	for i := range s.tracks {
		s.ClearTrack(i)
	}
	s.tracks = s.tracks[:0]
	s.queue.drainDisabled = oldDrainDisabled
	s.queue.drain()
}

// ClearTrack removes the track, ending its current entry, the entries it
// mixes from and disposing queued entries. Skeleton values are not reset.
func (s *AnimationState) ClearTrack(trackIndex int) {
	if trackIndex < 0 || trackIndex >= len(s.tracks) {
		return
	}
	current := s.tracks[trackIndex]
	if current == nil {
		return
	}

	s.queue.end(current)
	s.clearNext(current)

	entry := current
	for {
		from := entry.mixingFrom
		if from == nil {
			break
		}
		s.queue.end(from)
		entry.mixingFrom = nil
		entry.mixingTo = nil
		entry = from
	}

	s.tracks[current.TrackIndex] = nil
	log.Debug().Str("component", "AnimationState").Int("track", trackIndex).Msg("track cleared")

	s.queue.drain()
}

func (s *AnimationState) setCurrent(index int, current *TrackEntry, interrupt bool) {
	from := s.expandToIndex(index)
	s.tracks[index] = current
	current.previous = nil

	if from != nil {
		if interrupt {
			s.queue.interrupt(from)
		}
		current.mixingFrom = from
		from.mixingTo = current
		current.MixTime = 0

		// Store the interrupted mix percentage.
		if from.mixingFrom != nil && from.MixDuration > 0 {
			current.interruptAlpha *= math.Min(1, from.MixTime/from.MixDuration)
		}

		// Reset rotation for mixing out, in case the entry was mixed in.
		from.timelinesRotation = from.timelinesRotation[:0]
	}

	s.queue.start(current)
}

// SetAnimationByName is SetAnimation with the animation looked up in the data's library.
func (s *AnimationState) SetAnimationByName(trackIndex int, name string, loop int) (*TrackEntry, error) {
	a, err := s.Data.findAnimation(name)
	if err != nil {
		return nil, fmt.Errorf("set animation on track %d: %w", trackIndex, err)
	}
	return s.SetAnimation(trackIndex, a, loop)
}

// SetAnimation makes the animation current on the track, discarding queued
// entries. The previous current entry is mixed out unless it was never
// applied, in which case it is ended without being interrupted.
func (s *AnimationState) SetAnimation(trackIndex int, a *animation.Animation, loop int) (*TrackEntry, error) {
	if a == nil {
		return nil, ErrNilAnimation
	}
	if trackIndex < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTrack, trackIndex)
	}

	interrupt := true
	current := s.expandToIndex(trackIndex)
	if current != nil {
		if current.nextTrackLast == -1 {
			// Nothing observed it, so don't mix from it.
			s.tracks[trackIndex] = current.mixingFrom
			s.queue.interrupt(current)
			s.queue.end(current)
			s.clearNext(current)
			log.Debug().Str("component", "AnimationState").Int("track", trackIndex).
				Str("animation", current.Animation.Name).Msg("discarded entry that was never applied")
			current = current.mixingFrom
			interrupt = false
		} else {
			s.clearNext(current)
		}
	}

	entry := s.trackEntry(trackIndex, a, loop, current)
	s.setCurrent(trackIndex, entry, interrupt)
	s.queue.drain()
	return entry, nil
}

// AddAnimationByName is AddAnimation with the animation looked up in the data's library.
func (s *AnimationState) AddAnimationByName(trackIndex int, name string, loop int, delay float64) (*TrackEntry, error) {
	a, err := s.Data.findAnimation(name)
	if err != nil {
		return nil, fmt.Errorf("add animation on track %d: %w", trackIndex, err)
	}
	return s.AddAnimation(trackIndex, a, loop, delay)
}

// AddAnimation queues the animation to play after the last entry of the
// track. If the track is empty it becomes current immediately.
//
// delay is the seconds after the previous entry starts. A delay <= 0 is
// relative to the previous entry's next completion, minus the mix
// duration, so the mix finishes when the previous entry completes.
func (s *AnimationState) AddAnimation(trackIndex int, a *animation.Animation, loop int, delay float64) (*TrackEntry, error) {
	if a == nil {
		return nil, ErrNilAnimation
	}
	if trackIndex < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTrack, trackIndex)
	}

	last := s.expandToIndex(trackIndex)
	if last != nil {
		for last.next != nil {
			last = last.next
		}
	}

	entry := s.trackEntry(trackIndex, a, loop, last)

	if last == nil {
		s.setCurrent(trackIndex, entry, true)
		s.queue.drain()
	} else {
		last.next = entry
		entry.previous = last
		if delay <= 0 {
			delay += last.TrackComplete() - entry.MixDuration
		}
	}

	entry.Delay = delay
	return entry, nil
}

// SetEmptyAnimation mixes the track out to the setup pose over mixDuration
// seconds, then clears it.
func (s *AnimationState) SetEmptyAnimation(trackIndex int, mixDuration float64) (*TrackEntry, error) {
	entry, err := s.SetAnimation(trackIndex, EmptyAnimation(), LoopNone)
	if err != nil {
		return nil, err
	}
	entry.MixDuration = mixDuration
	entry.TrackEnd = mixDuration
	return entry, nil
}

// AddEmptyAnimation queues a mix out to the setup pose after the last entry
// of the track. A delay <= 0 makes the mix finish when the previous entry
// completes.
func (s *AnimationState) AddEmptyAnimation(trackIndex int, mixDuration, delay float64) (*TrackEntry, error) {
	entry, err := s.AddAnimation(trackIndex, EmptyAnimation(), LoopNone, delay)
	if err != nil {
		return nil, err
	}
	// An entry added to an empty track is already current.
	if delay <= 0 && entry.Previous() != nil {
		entry.Delay += entry.MixDuration - mixDuration
	}
	entry.MixDuration = mixDuration
	entry.TrackEnd = mixDuration
	return entry, nil
}

// SetEmptyAnimations mixes every track out to the setup pose.
func (s *AnimationState) SetEmptyAnimations(mixDuration float64) {
	oldDrainDisabled := s.queue.drainDisabled
	s.queue.drainDisabled = true
	for _, current := range s.tracks {
		if current != nil {
			// Cannot fail: the track exists and the animation is not nil.
			_, _ = s.SetEmptyAnimation(current.TrackIndex, mixDuration)
		}
	}
	s.queue.drainDisabled = oldDrainDisabled
	s.queue.drain()
}

func (s *AnimationState) expandToIndex(index int) *TrackEntry {
	if index < len(s.tracks) {
		return s.tracks[index]
	}
	for len(s.tracks) <= index {
		s.tracks = append(s.tracks, nil)
	}
	return nil
}

func (s *AnimationState) trackEntry(trackIndex int, a *animation.Animation, loop int, last *TrackEntry) *TrackEntry {
	entry, h := s.trackEntryPool.Obtain()
	entry.handle = h
	entry.TrackIndex = trackIndex
	entry.Animation = a
	entry.Loop = loop

	entry.AnimationStart = 0
	entry.AnimationEnd = a.Duration
	entry.animationLast = -1
	entry.nextAnimationLast = -1

	entry.TrackTime = 0
	entry.trackLast = -1
	entry.nextTrackLast = -1
	entry.TrackEnd = math.MaxFloat64
	entry.TimeScale = 1

	entry.Alpha = 1
	entry.interruptAlpha = 1
	if last != nil {
		entry.MixDuration = s.Data.GetMix(last.Animation, a)
	}
	entry.MixBlend = animation.MixBlendReplace
	return entry
}

func (s *AnimationState) clearNext(entry *TrackEntry) {
	for next := entry.next; next != nil; next = next.next {
		s.queue.dispose(next)
	}
	entry.next = nil
}

// updateTimelineModes resolves the timeline modes of every entry, oldest
// entries of each track first so earlier tracks claim properties first.
// Additive entries being mixed out apply without modes, except on track 0
// which never blends additively.
func (s *AnimationState) updateTimelineModes() {
	s.animationsChanged = false

	clear(s.propertyIDs)
	for _, entry := range s.tracks {
		if entry == nil {
			continue
		}
		for entry.mixingFrom != nil {
			entry = entry.mixingFrom
		}
		for ; entry != nil; entry = entry.mixingTo {
			if entry.mixingTo == nil || entry.MixBlend != animation.MixBlendAdd || entry.TrackIndex == 0 {
				s.computeHold(entry)
			}
		}
	}
}

// computeHold decides how each timeline of entry mixes: from the setup pose
// when it is the first to key a property, and held at full strength while
// an entry it mixes to keys the same property.
func (s *AnimationState) computeHold(entry *TrackEntry) {
	to := entry.mixingTo
	timelines := entry.Animation.Timelines
	n := len(timelines)

	entry.timelineMode = resizeInts(entry.timelineMode, n)
	entry.timelineHoldMix = resizeEntries(entry.timelineHoldMix, n)

	if to != nil && to.HoldPrevious {
		for i, timeline := range timelines {
			if s.addPropertyIDs(timeline.PropertyIDs()) {
				entry.timelineMode[i] = modeHoldFirst
			} else {
				entry.timelineMode[i] = modeHoldSubsequent
			}
		}
		return
	}

outer:
	for i, timeline := range timelines {
		ids := timeline.PropertyIDs()
		switch {
		case !s.addPropertyIDs(ids):
			entry.timelineMode[i] = modeSubsequent
		case to == nil || isInstant(timeline) || !to.Animation.HasTimeline(ids):
			entry.timelineMode[i] = modeFirst
		default:
			for next := to.mixingTo; next != nil; next = next.mixingTo {
				if next.Animation.HasTimeline(ids) {
					continue
				}
				if next.MixDuration > 0 {
					entry.timelineMode[i] = modeHoldMix
					entry.timelineHoldMix[i] = next
					continue outer
				}
				break
			}
			entry.timelineMode[i] = modeHoldFirst
		}
	}
}

// addPropertyIDs reports whether any of ids was not claimed yet.
func (s *AnimationState) addPropertyIDs(ids []string) bool {
	added := false
	for _, id := range ids {
		if _, ok := s.propertyIDs[id]; !ok {
			s.propertyIDs[id] = struct{}{}
			added = true
		}
	}
	return added
}

// isInstant reports whether the timeline sets discrete values that are never mixed.
func isInstant(t animation.Timeline) bool {
	switch t.(type) {
	case *animation.AttachmentTimeline, *animation.DrawOrderTimeline, *animation.EventTimeline:
		return true
	}
	return false
}

// Current returns the current entry of the track, or nil.
func (s *AnimationState) Current(trackIndex int) *TrackEntry {
	if trackIndex < 0 || trackIndex >= len(s.tracks) {
		return nil
	}
	return s.tracks[trackIndex]
}

// Tracks returns the current entry of every track. Empty tracks are nil.
func (s *AnimationState) Tracks() []*TrackEntry {
	return s.tracks
}

// Entry resolves a handle from TrackEntry.Handle. It returns nil once the
// entry has been disposed, even if the pool reused it.
func (s *AnimationState) Entry(h pool.Handle) *TrackEntry {
	return s.trackEntryPool.Get(h)
}

// AddListener registers a listener for the events of every entry.
func (s *AnimationState) AddListener(l Listener) error {
	if l == nil {
		return ErrNilListener
	}
	s.listeners = append(s.listeners, l)
	return nil
}

// RemoveListener unregisters a listener added with AddListener.
func (s *AnimationState) RemoveListener(l Listener) {
	for i, registered := range s.listeners {
		if registered == l {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}

// ClearListeners removes every listener added with AddListener.
func (s *AnimationState) ClearListeners() {
	s.listeners = nil
}

// ClearListenerNotifications discards queued callbacks that were not
// delivered yet. Entries whose end was discarded are not returned to the pool.
func (s *AnimationState) ClearListenerNotifications() {
	s.queue.clear()
}

func resizeRotations(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}
	s = s[:n]
	clear(s)
	return s
}

func resizeInts(s []int, n int) []int {
	if cap(s) < n {
		return make([]int, n)
	}
	return s[:n]
}

func resizeEntries(s []*TrackEntry, n int) []*TrackEntry {
	if cap(s) < n {
		return make([]*TrackEntry, n)
	}
	s = s[:n]
	clear(s)
	return s
}

func signum(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
