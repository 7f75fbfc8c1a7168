package motion

import (
	"math"
	"math/rand"
)

// Saccade impulses decay as exp(-6 * elapsed) and are zeroed exactly once
// the factor drops below this cutoff.
const saccadeDecayCutoff = 0.02

// secondaryLayers adds the texture on top of the primary orbit: slow center
// drift, smooth wobble, per-tick uniform jitter and decaying saccade
// impulses. Owned exclusively by the loop goroutine.
type secondaryLayers struct {
	saccadeX     float64
	saccadeY     float64
	saccadeDecay float64
	// untilSaccade counts down in seconds; +Inf while saccades are disabled.
	untilSaccade float64
}

func newSecondaryLayers(p Params, rng *rand.Rand) *secondaryLayers {
	l := &secondaryLayers{untilSaccade: math.Inf(1)}
	if p.EnableSaccades {
		l.untilSaccade = p.SaccadeInterval.drawSeconds(rng)
	}
	return l
}

// apply returns pos with all secondary contributions added for the tick at
// session time t, advancing the saccade state by dt seconds.
func (l *secondaryLayers) apply(p Params, nb *noiseBank, rng *rand.Rand, pos Vec, t, dt float64) Vec {
	pos.X += 0.14 * p.BaseRadius * nb.centerX.Sample(t*0.03)
	pos.Y += 0.14 * p.BaseRadius * nb.centerY.Sample(t*0.028)

	wobble := p.WobbleScale * p.Jitter * nb.wobble.Sample(t*0.25)
	pos.X += wobble
	pos.Y += p.WobbleVerticalBias * wobble

	pos.X += (rng.Float64() - 0.5) * p.Jitter * p.JitterRandomScale
	pos.Y += (rng.Float64() - 0.5) * p.Jitter * p.JitterRandomScale

	if p.EnableSaccades {
		l.untilSaccade -= dt
		if l.untilSaccade <= 0 {
			l.saccadeX = rng.Float64()*16.0 - 8.0
			l.saccadeY = rng.Float64()*10.0 - 5.0
			l.saccadeDecay = 0.0
			l.untilSaccade = p.SaccadeInterval.drawSeconds(rng)
		}
	} else {
		l.saccadeX = 0.0
		l.saccadeY = 0.0
	}

	if p.EnableSaccades && (l.saccadeX != 0 || l.saccadeY != 0) {
		factor := math.Exp(-6.0 * l.saccadeDecay)
		pos.X += l.saccadeX * factor
		pos.Y += l.saccadeY * factor
		l.saccadeDecay += dt
		if factor < saccadeDecayCutoff {
			l.saccadeX = 0.0
			l.saccadeY = 0.0
		}
	}

	return pos
}
