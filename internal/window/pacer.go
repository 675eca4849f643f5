package window

import (
	"time"

	"mini-render/internal/config"
)

// FramePacer sleeps between frames to hold a target rate.
type FramePacer struct {
	framerate float64
	next      time.Time
}

// NewFramePacer paces to framerate Hz. A non-positive framerate leaves only
// the configured FPS limit.
func NewFramePacer(framerate float64) *FramePacer {
	return &FramePacer{framerate: framerate}
}

// rate is the lower of the pacer's framerate and the runtime FPS limit.
func (p *FramePacer) rate() float64 {
	rate := p.framerate
	if limit := float64(config.GetFPSLimit()); limit > 0 && (rate <= 0 || limit < rate) {
		rate = limit
	}
	return rate
}

// Wait blocks until the next frame is due. Sleeps most of the gap and spins
// the last 200µs.
func (p *FramePacer) Wait() {
	rate := p.rate()
	if rate <= 0 {
		p.next = time.Time{}
		return
	}

	target := time.Duration(float64(time.Second) / rate)

	if p.next.IsZero() {
		p.next = time.Now().Add(target)
	} else {
		p.next = p.next.Add(target)
	}

	for {
		remaining := time.Until(p.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
	}

	// resync after a hitch instead of rushing to catch up
	if late := -time.Until(p.next); late > target {
		p.next = time.Now().Add(target)
	}
}
