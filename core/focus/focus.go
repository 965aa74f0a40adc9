// Package focus carries the operator's "locate on map" action to the map
// renderer. Events are ephemeral: only the latest matters, and the timestamp
// keeps two clicks on the same coordinate observably distinct.
package focus

import (
	"sync"
	"time"

	"github.com/kilianp07/dispatchconsole/core/model"
	"github.com/kilianp07/dispatchconsole/internal/eventbus"
)

// Emitter publishes focus events with strictly increasing timestamps. Two
// emissions within the same millisecond still get distinct timestamps so the
// consumer re-triggers its transition.
type Emitter struct {
	bus *eventbus.Bus[model.FocusEvent]

	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewEmitter creates an Emitter publishing on the given bus.
func NewEmitter(bus *eventbus.Bus[model.FocusEvent]) *Emitter {
	return &Emitter{bus: bus, now: time.Now}
}

// Emit publishes a focus event for the coordinate, replacing any pending one
// for subscribers that consume only the latest.
func (e *Emitter) Emit(lat, lng float64) model.FocusEvent {
	e.mu.Lock()
	ts := e.now().UnixMilli()
	if ts <= e.last {
		ts = e.last + 1
	}
	e.last = ts
	e.mu.Unlock()

	ev := model.FocusEvent{Lat: lat, Lng: lng, Timestamp: ts}
	e.bus.Publish(ev)
	return ev
}

// Tracker is the consumer-side dedup: ShouldRender reports whether an event
// carries a timestamp the renderer has not consumed yet, and records it.
// Identical coordinates with a fresh timestamp must re-trigger.
type Tracker struct {
	mu       sync.Mutex
	consumed int64
	seen     bool
}

// ShouldRender returns true exactly once per distinct timestamp.
func (t *Tracker) ShouldRender(ev model.FocusEvent) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.seen && ev.Timestamp == t.consumed {
		return false
	}
	t.consumed = ev.Timestamp
	t.seen = true
	return true
}
