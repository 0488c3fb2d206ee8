package animstate

import "github.com/decker502/skelanim/pkg/animation"

type eventType int

const (
	eventStart eventType = iota
	eventInterrupt
	eventEnd
	eventDispose
	eventComplete
	eventEvent
)

func (t eventType) String() string {
	switch t {
	case eventStart:
		return "start"
	case eventInterrupt:
		return "interrupt"
	case eventEnd:
		return "end"
	case eventDispose:
		return "dispose"
	case eventComplete:
		return "complete"
	case eventEvent:
		return "event"
	}
	return "unknown"
}

type queuedEvent struct {
	kind  eventType
	entry *TrackEntry
	event *animation.Event
}

// eventQueue buffers listener notifications so they are delivered outside
// of pose passes. Only one drain runs at a time: a drain requested from a
// listener callback is skipped and the running drain picks up whatever the
// callback queued.
type eventQueue struct {
	objects       []queuedEvent
	drainDisabled bool
	state         *AnimationState
}

func (q *eventQueue) start(entry *TrackEntry) {
	q.objects = append(q.objects, queuedEvent{kind: eventStart, entry: entry})
	q.state.animationsChanged = true
}

func (q *eventQueue) interrupt(entry *TrackEntry) {
	q.objects = append(q.objects, queuedEvent{kind: eventInterrupt, entry: entry})
}

func (q *eventQueue) end(entry *TrackEntry) {
	q.objects = append(q.objects, queuedEvent{kind: eventEnd, entry: entry})
	q.state.animationsChanged = true
}

func (q *eventQueue) dispose(entry *TrackEntry) {
	q.objects = append(q.objects, queuedEvent{kind: eventDispose, entry: entry})
}

func (q *eventQueue) complete(entry *TrackEntry) {
	q.objects = append(q.objects, queuedEvent{kind: eventComplete, entry: entry})
}

func (q *eventQueue) event(entry *TrackEntry, event *animation.Event) {
	q.objects = append(q.objects, queuedEvent{kind: eventEvent, entry: entry, event: event})
}

// drain delivers queued notifications, entry listener first, then the
// state's listeners. End is always followed by dispose, after which the
// entry goes back to the pool.
func (q *eventQueue) drain() {
	if q.drainDisabled {
		return
	}
	q.drainDisabled = true

	// Callbacks may append, so the length is re-read every iteration.
	for i := 0; i < len(q.objects); i++ {
		obj := q.objects[i]
		entry := obj.entry
		switch obj.kind {
		case eventStart:
			if entry.Listener != nil {
				entry.Listener.Start(entry)
			}
			for _, l := range q.state.listeners {
				l.Start(entry)
			}
		case eventInterrupt:
			if entry.Listener != nil {
				entry.Listener.Interrupt(entry)
			}
			for _, l := range q.state.listeners {
				l.Interrupt(entry)
			}
		case eventEnd:
			if entry.Listener != nil {
				entry.Listener.End(entry)
			}
			for _, l := range q.state.listeners {
				l.End(entry)
			}
			fallthrough
		case eventDispose:
			if entry.Listener != nil {
				entry.Listener.Dispose(entry)
			}
			for _, l := range q.state.listeners {
				l.Dispose(entry)
			}
			q.state.trackEntryPool.Free(entry.handle)
		case eventComplete:
			if entry.Listener != nil {
				entry.Listener.Complete(entry)
			}
			for _, l := range q.state.listeners {
				l.Complete(entry)
			}
		case eventEvent:
			if entry.Listener != nil {
				entry.Listener.Event(entry, obj.event)
			}
			for _, l := range q.state.listeners {
				l.Event(entry, obj.event)
			}
		}
	}
	q.clear()

	q.drainDisabled = false
}

func (q *eventQueue) clear() {
	for i := range q.objects {
		q.objects[i] = queuedEvent{}
	}
	q.objects = q.objects[:0]
}
