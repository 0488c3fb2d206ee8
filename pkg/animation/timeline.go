package animation

import "github.com/decker502/skelanim/pkg/skeleton"

// Timeline interpolates values for one property group over time.
//
// Frames is a flattened array with FrameEntries values per key, the first of
// which is the key time.
type Timeline interface {
	PropertyIDs() []string
	Frames() []float64
	FrameEntries() int
	FrameCount() int
	Duration() float64

	// Apply poses the skeleton for time. Events between lastTime (exclusive)
	// and time (inclusive) are appended to events when it is not nil.
	Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection)
}

type timelineBase struct {
	frames      []float64
	entries     int
	propertyIDs []string
}

func newTimelineBase(frameCount, entries int, propertyIDs ...string) timelineBase {
	return timelineBase{
		frames:      make([]float64, frameCount*entries),
		entries:     entries,
		propertyIDs: propertyIDs,
	}
}

func (t *timelineBase) PropertyIDs() []string { return t.propertyIDs }
func (t *timelineBase) Frames() []float64     { return t.frames }
func (t *timelineBase) FrameEntries() int     { return t.entries }
func (t *timelineBase) FrameCount() int       { return len(t.frames) / t.entries }

func (t *timelineBase) Duration() float64 {
	if len(t.frames) == 0 {
		return 0
	}
	return t.frames[len(t.frames)-t.entries]
}

// search1 returns the index of the last frame with a time <= time, for one entry frames.
func search1(frames []float64, time float64) int {
	n := len(frames)
	for i := 1; i < n; i++ {
		if frames[i] > time {
			return i - 1
		}
	}
	return n - 1
}

// search returns the index of the first value of the last frame with a time <= time.
func search(frames []float64, time float64, step int) int {
	n := len(frames)
	for i := step; i < n; i += step {
		if frames[i] > time {
			return i - step
		}
	}
	return n - step
}

// setArraySize resizes s to n, zero filling any new values.
func setArraySize(s []float64, n int) []float64 {
	if cap(s) >= n {
		old := len(s)
		s = s[:n]
		for i := old; i < n; i++ {
			s[i] = 0
		}
		return s
	}
	grown := make([]float64, n)
	copy(grown, s)
	return grown
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

var (
	_ BoneTimeline = (*RotateTimeline)(nil)
	_ BoneTimeline = (*TranslateTimeline)(nil)
	_ BoneTimeline = (*TranslateXTimeline)(nil)
	_ BoneTimeline = (*TranslateYTimeline)(nil)
	_ BoneTimeline = (*ScaleTimeline)(nil)
	_ BoneTimeline = (*ScaleXTimeline)(nil)
	_ BoneTimeline = (*ScaleYTimeline)(nil)
	_ BoneTimeline = (*ShearTimeline)(nil)
	_ BoneTimeline = (*ShearXTimeline)(nil)
	_ BoneTimeline = (*ShearYTimeline)(nil)
	_ SlotTimeline = (*RGBATimeline)(nil)
	_ SlotTimeline = (*RGBTimeline)(nil)
	_ SlotTimeline = (*AlphaTimeline)(nil)
	_ SlotTimeline = (*RGBA2Timeline)(nil)
	_ SlotTimeline = (*RGB2Timeline)(nil)
	_ SlotTimeline = (*AttachmentTimeline)(nil)
	_ SlotTimeline = (*DeformTimeline)(nil)
	_ Timeline     = (*EventTimeline)(nil)
	_ Timeline     = (*DrawOrderTimeline)(nil)
	_ Timeline     = (*IkConstraintTimeline)(nil)
	_ Timeline     = (*TransformConstraintTimeline)(nil)
	_ Timeline     = (*PathConstraintPositionTimeline)(nil)
	_ Timeline     = (*PathConstraintSpacingTimeline)(nil)
	_ Timeline     = (*PathConstraintMixTimeline)(nil)
)
