package gpu

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Context pairs a device with the ledger of handles allocated through it.
type Context struct {
	Device  Device
	Tracker *Tracker
}

// NewContext returns a context with a fresh tracker.
func NewContext(dev Device) *Context {
	return &Context{Device: dev, Tracker: NewTracker()}
}

// Track wraps a freshly allocated object name and records it as live.
func (c *Context) Track(kind Kind, id uint32) *Handle {
	h := &Handle{ctx: c, kind: kind, id: id}
	c.Tracker.track(h)
	return h
}

// Leak describes a handle that was still live when checked.
type Leak struct {
	Kind      Kind
	ID        uint32
	Allocated time.Time
}

// Tracker records every live handle so shutdown can assert that all of them
// were released.
type Tracker struct {
	mu   sync.Mutex
	seq  uint64
	live map[*Handle]entry
}

type entry struct {
	seq uint64
	at  time.Time
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{live: make(map[*Handle]entry)}
}

func (t *Tracker) track(h *Handle) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.seq++
	t.live[h] = entry{seq: t.seq, at: time.Now()}
	t.mu.Unlock()
}

func (t *Tracker) forget(h *Handle) {
	if t == nil {
		return
	}
	t.mu.Lock()
	delete(t.live, h)
	t.mu.Unlock()
}

// Live returns the handles not yet released, in allocation order.
func (t *Tracker) Live() []Leak {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	type ordered struct {
		seq  uint64
		leak Leak
	}
	list := make([]ordered, 0, len(t.live))
	for h, e := range t.live {
		list = append(list, ordered{e.seq, Leak{Kind: h.kind, ID: h.id, Allocated: e.at}})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].seq < list[j].seq })

	out := make([]Leak, len(list))
	for i, o := range list {
		out[i] = o.leak
	}
	return out
}

// Report logs one entry per live handle and returns how many there were.
// Leaks are advisory: nothing is returned to the caller as an error.
func (t *Tracker) Report(log *zap.Logger) int {
	leaks := t.Live()
	now := time.Now()
	for _, l := range leaks {
		log.Warn("GPU resource leak from "+l.Kind.String(),
			zap.Uint32("handle", l.ID),
			zap.Time("allocated", l.Allocated),
			zap.Time("at", now),
		)
	}
	return len(leaks)
}
