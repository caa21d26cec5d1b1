package bar

import (
	"sync"
	"time"
)

// Slot is the latest state of one adapter.
type Slot struct {
	Segment             Segment
	UpdatedAt           time.Time
	ConsecutiveFailures int
}

// Failing reports whether the adapter has failed at least twice in a row.
func (s Slot) Failing() bool {
	return s.ConsecutiveFailures >= 2
}

// Table holds the latest segment per adapter in registration order. Writes
// are serialized; readers get copies.
type Table struct {
	mu      sync.RWMutex
	order   []string
	slots   map[string]Slot
	changed chan struct{}
}

// NewTable reserves a slot for each name, in the order given.
func NewTable(names ...string) *Table {
	t := &Table{
		slots:   make(map[string]Slot, len(names)),
		changed: make(chan struct{}, 1),
	}
	for _, name := range names {
		t.reserve(name)
	}
	return t
}

// Reserve appends a slot for name if it does not already exist.
func (t *Table) Reserve(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reserve(name)
}

func (t *Table) reserve(name string) {
	if _, ok := t.slots[name]; ok {
		return
	}
	t.order = append(t.order, name)
	t.slots[name] = Slot{Segment: Segment{Name: name}}
}

// Set replaces the segment for seg.Name. failed marks the write as an error
// render so consecutive failures can be counted. It reports whether the
// visible segment changed; only then are listeners on Changed signalled.
func (t *Table) Set(seg Segment, failed bool) bool {
	t.mu.Lock()
	slot, ok := t.slots[seg.Name]
	if !ok {
		t.order = append(t.order, seg.Name)
	}
	changed := !ok || slot.Segment != seg
	slot.Segment = seg
	slot.UpdatedAt = time.Now()
	if failed {
		slot.ConsecutiveFailures++
	} else {
		slot.ConsecutiveFailures = 0
	}
	t.slots[seg.Name] = slot
	t.mu.Unlock()

	if changed {
		t.notify()
	}
	return changed
}

// Restyle swaps the visible segment for seg.Name without counting a new
// sample. Unknown names are ignored.
func (t *Table) Restyle(seg Segment) bool {
	t.mu.Lock()
	slot, ok := t.slots[seg.Name]
	changed := ok && slot.Segment != seg
	if changed {
		slot.Segment = seg
		t.slots[seg.Name] = slot
	}
	t.mu.Unlock()

	if changed {
		t.notify()
	}
	return changed
}

func (t *Table) notify() {
	select {
	case t.changed <- struct{}{}:
	default:
	}
}

// Changed delivers a value after one or more segments change. Signals
// coalesce, so a receiver should always render the latest Snapshot.
func (t *Table) Changed() <-chan struct{} {
	return t.changed
}

// Snapshot returns the non-empty segments in registration order.
func (t *Table) Snapshot() []Segment {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Segment, 0, len(t.order))
	for _, name := range t.order {
		seg := t.slots[name].Segment
		if seg.Empty() {
			continue
		}
		out = append(out, seg)
	}
	return out
}

// Slot returns a copy of the slot for name.
func (t *Table) Slot(name string) (Slot, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	slot, ok := t.slots[name]
	return slot, ok
}

// Names returns the registered adapter names in order.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Failing returns the names of failing adapters in order.
func (t *Table) Failing() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []string
	for _, name := range t.order {
		if t.slots[name].Failing() {
			out = append(out, name)
		}
	}
	return out
}
