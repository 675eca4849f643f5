// Package profiling accumulates per-frame CPU time by named section.
package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Frame holds the section totals of one frame.
type Frame struct {
	mu     sync.Mutex
	totals map[string]time.Duration
	start  time.Time
}

var current = NewFrame()

// NewFrame returns an empty frame started now.
func NewFrame() *Frame {
	return &Frame{totals: make(map[string]time.Duration), start: time.Now()}
}

// Track returns a stop func adding the elapsed time to name.
// Usage: defer profiling.Track("renderer.Render")()
func Track(name string) func() {
	return current.Track(name)
}

// ResetFrame clears the shared frame. Call at the top of each frame.
func ResetFrame() { current.Reset() }

// Elapsed is the wall time since the shared frame was reset.
func Elapsed() time.Duration { return current.Elapsed() }

// TopN formats the n slowest sections of the shared frame.
func TopN(n int) string { return current.TopN(n) }

func (f *Frame) Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		f.mu.Lock()
		f.totals[name] += d
		f.mu.Unlock()
	}
}

func (f *Frame) Reset() {
	f.mu.Lock()
	clear(f.totals)
	f.start = time.Now()
	f.mu.Unlock()
}

func (f *Frame) Elapsed() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return time.Since(f.start)
}

// Snapshot copies the section totals.
func (f *Frame) Snapshot() map[string]time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]time.Duration, len(f.totals))
	for k, v := range f.totals {
		out[k] = v
	}
	return out
}

// TopN returns e.g. "renderer.Render:4.2ms, window.PollEvents:0.3ms".
// Ties are ordered by name.
func (f *Frame) TopN(n int) string {
	type section struct {
		name string
		dur  time.Duration
	}
	snap := f.Snapshot()
	list := make([]section, 0, len(snap))
	for k, v := range snap {
		list = append(list, section{k, v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for _, s := range list[:max(n, 0)] {
		ms := float64(s.dur.Microseconds()) / 1000.0
		parts = append(parts, s.name+":"+strconv.FormatFloat(ms, 'f', -1, 64)+"ms")
	}
	return strings.Join(parts, ", ")
}
