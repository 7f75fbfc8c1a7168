// Package noise implements a deterministic, memoized value-noise field.
//
// A Field maps a continuous coordinate (typically elapsed session time scaled
// by a per-quantity rate) onto a smooth pseudo-random curve. The motion engine
// owns one independently seeded Field per physical quantity it perturbs, so
// radius, tilt, precession and drift stay decorrelated over a session.
package noise

import (
	"math"
	"math/rand"
)

// Field generates smooth pseudo-random curves using cached value noise.
//
// Lattice control points are drawn uniformly from [-1, 1] on first access and
// cached by integer index for the lifetime of the field, so a given index
// always yields the same value (memoization, never resampling). Samples are
// Catmull-Rom interpolations of the four surrounding control points, which
// keeps both the value and the first derivative continuous across lattice
// boundaries.
//
// A Field is not safe for concurrent use; the motion loop is its only caller.
type Field struct {
	rng   *rand.Rand
	cache map[int]float64
}

// New creates a field seeded for reproducibility. Two fields with the same
// seed produce identical samples for identical query sequences.
func New(seed int64) *Field {
	return &Field{
		rng:   rand.New(rand.NewSource(seed)),
		cache: make(map[int]float64),
	}
}

// value returns the lattice control point at index, generating and caching it
// on first access.
func (f *Field) value(index int) float64 {
	if v, ok := f.cache[index]; ok {
		return v
	}
	v := f.rng.Float64()*2 - 1
	f.cache[index] = v
	return v
}

// Sample evaluates the field at an arbitrary real position. The cache grows
// with the span of visited positions, which is bounded by session length at
// the loop's sample rates.
func (f *Field) Sample(position float64) float64 {
	base := math.Floor(position)
	t := position - base
	i := int(base)
	p0 := f.value(i - 1)
	p1 := f.value(i)
	p2 := f.value(i + 1)
	p3 := f.value(i + 2)
	return catmullRom(p0, p1, p2, p3, t)
}

// catmullRom interpolates between p1 and p2 at parameter t in [0, 1] using the
// standard Catmull-Rom basis with p0 and p3 as outer tangent controls.
func catmullRom(p0, p1, p2, p3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return 0.5 * ((2.0 * p1) +
		(-p0+p2)*t +
		(2.0*p0-5.0*p1+4.0*p2-p3)*t2 +
		(-p0+3.0*p1-3.0*p2+p3)*t3)
}
