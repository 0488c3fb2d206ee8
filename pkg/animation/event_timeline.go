package animation

import (
	"math"

	"github.com/decker502/skelanim/pkg/skeleton"
)

// EventTimeline fires events. It does not pose the skeleton.
type EventTimeline struct {
	timelineBase
	Events []*Event
}

// NewEventTimeline creates an event timeline.
func NewEventTimeline(frameCount int) *EventTimeline {
	return &EventTimeline{
		timelineBase: newTimelineBase(frameCount, 1, propertyID(PropertyEvent)),
		Events:       make([]*Event, frameCount),
	}
}

// SetFrame sets the event of a frame. The frame time is the event time.
func (t *EventTimeline) SetFrame(frame int, event *Event) {
	t.frames[frame] = event.Time
	t.Events[frame] = event
}

// Apply implements Timeline. Events in (lastTime, time] are collected. When
// lastTime > time the animation looped and events after lastTime are
// collected first, then those from the start up to time.
func (t *EventTimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	if events == nil {
		return
	}
	frames := t.frames
	frameCount := len(frames)
	if frameCount == 0 {
		return
	}

	if lastTime > time {
		t.Apply(skel, lastTime, math.MaxFloat64, events, alpha, blend, direction)
		lastTime = -1
	} else if lastTime >= frames[frameCount-1] {
		return
	}
	if time < frames[0] {
		return
	}

	i := 0
	if lastTime >= frames[0] {
		i = search1(frames, lastTime) + 1
		frameTime := frames[i]
		// Fire all events sharing the first frame's time.
		for i > 0 && frames[i-1] == frameTime {
			i--
		}
	}
	for ; i < frameCount && time >= frames[i]; i++ {
		*events = append(*events, t.Events[i])
	}
}

// DrawOrderTimeline changes the skeleton's draw order. Keys are not interpolated.
type DrawOrderTimeline struct {
	timelineBase
	// DrawOrders maps, per frame, draw order position to slot index.
	// A nil entry means the setup draw order.
	DrawOrders [][]int
}

// NewDrawOrderTimeline creates a draw order timeline.
func NewDrawOrderTimeline(frameCount int) *DrawOrderTimeline {
	return &DrawOrderTimeline{
		timelineBase: newTimelineBase(frameCount, 1, propertyID(PropertyDrawOrder)),
		DrawOrders:   make([][]int, frameCount),
	}
}

// SetFrame sets the time and draw order of a frame.
func (t *DrawOrderTimeline) SetFrame(frame int, time float64, drawOrder []int) {
	t.frames[frame] = time
	t.DrawOrders[frame] = drawOrder
}

// Apply implements Timeline. While mixing out with the setup blend the setup
// draw order is restored.
func (t *DrawOrderTimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	if direction == MixOut {
		if blend == MixBlendSetup {
			copy(skel.DrawOrder, skel.Slots)
		}
		return
	}
	if time < t.frames[0] {
		if blend == MixBlendSetup || blend == MixBlendFirst {
			copy(skel.DrawOrder, skel.Slots)
		}
		return
	}

	order := t.DrawOrders[search1(t.frames, time)]
	if order == nil {
		copy(skel.DrawOrder, skel.Slots)
		return
	}
	for i, slotIndex := range order {
		skel.DrawOrder[i] = skel.Slots[slotIndex]
	}
}
