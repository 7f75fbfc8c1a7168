package noise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleDeterministicAcrossInstances(t *testing.T) {
	t.Parallel()

	const seed = 42
	a := New(seed)
	b := New(seed)

	for p := -3.0; p < 12.0; p += 0.037 {
		require.Equal(t, a.Sample(p), b.Sample(p), "fields with the same seed diverged at %f", p)
	}
}

func TestSampleRepeatable(t *testing.T) {
	t.Parallel()

	f := New(7)
	positions := []float64{0.0, 0.25, 0.9999, 1.0, 1.5, -2.3, 100.7, 0.25}

	first := make([]float64, len(positions))
	for i, p := range positions {
		first[i] = f.Sample(p)
	}
	for i, p := range positions {
		require.Equal(t, first[i], f.Sample(p), "re-sampling %f changed the value", p)
	}
}

func TestSeedsDiverge(t *testing.T) {
	t.Parallel()

	a := New(1)
	b := New(2)

	diverged := false
	for p := 0.0; p < 20.0; p += 0.5 {
		if a.Sample(p) != b.Sample(p) {
			diverged = true
			break
		}
	}
	assert.True(t, diverged, "different seeds produced identical curves")
}

func TestSampleContinuity(t *testing.T) {
	t.Parallel()

	f := New(99)
	const eps = 1e-6

	// Probe across several lattice boundaries, where naive interpolation
	// schemes typically jump.
	for p := -2.0; p < 10.0; p += 0.1 {
		delta := math.Abs(f.Sample(p+eps) - f.Sample(p))
		assert.Less(t, delta, 1e-4, "discontinuity near %f", p)
	}
}

func TestSampleBounded(t *testing.T) {
	t.Parallel()

	f := New(1234)
	// Catmull-Rom can overshoot its control points, but with controls in
	// [-1, 1] the basis limits the output to well within [-1.5, 1.5].
	for p := -5.0; p < 50.0; p += 0.013 {
		v := f.Sample(p)
		assert.LessOrEqual(t, math.Abs(v), 1.5, "sample at %f escaped the basis envelope", p)
	}
}

func TestLatticeValuesMemoized(t *testing.T) {
	t.Parallel()

	f := New(5)
	// Sampling far away must not disturb previously generated lattice values.
	before := f.Sample(0.5)
	f.Sample(1000.5)
	f.Sample(-1000.5)
	assert.Equal(t, before, f.Sample(0.5))
}
