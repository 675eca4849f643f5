package renderer

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const bobPeriod = 1.5

// bob is a vertical offset that eases between -amplitude and +amplitude.
type bob struct {
	amplitude float32
	tween     *gween.Tween
	rising    bool
	offset    float32
}

func newBob(amplitude float32) *bob {
	if amplitude == 0 {
		return nil
	}
	return &bob{
		amplitude: amplitude,
		tween:     gween.New(-amplitude, amplitude, bobPeriod, ease.InOutSine),
		rising:    true,
		offset:    -amplitude,
	}
}

// Update advances the tween and returns the current offset. A nil bob
// never moves.
func (b *bob) Update(dt float32) float32 {
	if b == nil {
		return 0
	}
	val, finished := b.tween.Update(dt)
	b.offset = val
	if finished {
		b.rising = !b.rising
		from, to := b.amplitude, -b.amplitude
		if b.rising {
			from, to = to, from
		}
		b.tween = gween.New(from, to, bobPeriod, ease.InOutSine)
	}
	return b.offset
}
