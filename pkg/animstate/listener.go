package animstate

import "github.com/decker502/skelanim/pkg/animation"

// Listener receives track entry lifecycle callbacks. Callbacks are delivered
// after Update, Apply or the track mutating call that queued them returns
// control to the event queue, never in the middle of a pose pass.
type Listener interface {
	// Start is called when the entry becomes current.
	Start(entry *TrackEntry)
	// Interrupt is called when another entry replaces this one as current.
	Interrupt(entry *TrackEntry)
	// End is called when the entry will never be applied again.
	End(entry *TrackEntry)
	// Dispose is called when the entry is returned to the pool. The entry
	// must not be used after this callback.
	Dispose(entry *TrackEntry)
	// Complete is called each time the entry finishes a loop or the animation.
	Complete(entry *TrackEntry)
	// Event is called for each animation event fired by the entry.
	Event(entry *TrackEntry, event *animation.Event)
}

// ListenerFuncs adapts optional functions to a Listener. Nil functions are skipped.
type ListenerFuncs struct {
	OnStart     func(entry *TrackEntry)
	OnInterrupt func(entry *TrackEntry)
	OnEnd       func(entry *TrackEntry)
	OnDispose   func(entry *TrackEntry)
	OnComplete  func(entry *TrackEntry)
	OnEvent     func(entry *TrackEntry, event *animation.Event)
}

// Start implements Listener.
func (l *ListenerFuncs) Start(entry *TrackEntry) {
	if l.OnStart != nil {
		l.OnStart(entry)
	}
}

// Interrupt implements Listener.
func (l *ListenerFuncs) Interrupt(entry *TrackEntry) {
	if l.OnInterrupt != nil {
		l.OnInterrupt(entry)
	}
}

// End implements Listener.
func (l *ListenerFuncs) End(entry *TrackEntry) {
	if l.OnEnd != nil {
		l.OnEnd(entry)
	}
}

// Dispose implements Listener.
func (l *ListenerFuncs) Dispose(entry *TrackEntry) {
	if l.OnDispose != nil {
		l.OnDispose(entry)
	}
}

// Complete implements Listener.
func (l *ListenerFuncs) Complete(entry *TrackEntry) {
	if l.OnComplete != nil {
		l.OnComplete(entry)
	}
}

// Event implements Listener.
func (l *ListenerFuncs) Event(entry *TrackEntry, event *animation.Event) {
	if l.OnEvent != nil {
		l.OnEvent(entry, event)
	}
}
