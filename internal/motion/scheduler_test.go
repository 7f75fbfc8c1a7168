package motion

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStepCadenceDeterministicWindows(t *testing.T) {
	t.Parallel()

	p := testParams()
	p.EnableKeyboardSteps = true
	p.StepInterval = Span{Low: 9 * time.Second, High: 9 * time.Second}
	p.StepHold = Span{Low: 50 * time.Millisecond, High: 50 * time.Millisecond}
	rng := rand.New(rand.NewSource(1))
	sink := newFakeSink(0, 0)
	log := zap.NewNop()
	s := newStepScheduler(p, rng)
	dt := 0.01

	var pressTicks, releaseTicks []int
	before := 0
	for i := 1; i <= 10000; i++ { // 100 simulated seconds
		s.tick(p, sink, rng, log, dt)
		if len(sink.presses) > before {
			pressTicks = append(pressTicks, i)
			before = len(sink.presses)
		}
		if len(sink.releases) == len(releaseTicks)+1 {
			releaseTicks = append(releaseTicks, i)
		}
	}

	// With degenerate windows the cadence is fully determined: a press every
	// 9 s, held for 50 ms. Repeated float subtraction can land a boundary one
	// tick late, so allow a single tick of slack per event.
	require.NotEmpty(t, pressTicks)
	assert.InDelta(t, 11, len(pressTicks), 1)
	require.Equal(t, len(pressTicks), len(releaseTicks))

	for i := 1; i < len(pressTicks); i++ {
		gap := pressTicks[i] - pressTicks[i-1]
		assert.InDelta(t, 900, gap, 1, "press spacing drifted at event %d", i)
	}
	for i := range pressTicks {
		hold := releaseTicks[i] - pressTicks[i]
		assert.InDelta(t, 5, hold, 1, "hold length drifted at event %d", i)
	}
}

func TestAtMostOneStepKeyHeld(t *testing.T) {
	t.Parallel()

	p := testParams()
	p.EnableKeyboardSteps = true
	p.StepInterval = Span{Low: 20 * time.Millisecond, High: 200 * time.Millisecond}
	p.StepHold = Span{Low: 10 * time.Millisecond, High: 150 * time.Millisecond}
	rng := rand.New(rand.NewSource(2))
	sink := newFakeSink(0, 0)
	s := newStepScheduler(p, rng)

	for i := 0; i < 50000; i++ {
		s.tick(p, sink, rng, zap.NewNop(), 0.01)
	}
	s.shutdown(sink, zap.NewNop())

	assert.LessOrEqual(t, sink.maxHeld, 1, "more than one step key was down at once")
	assert.Equal(t, len(sink.presses), len(sink.releases), "press/release pairing broken")
	assert.Zero(t, sink.heldCount())
}

func TestStepPressFailureStaysIdleAndRedraws(t *testing.T) {
	t.Parallel()

	p := testParams()
	p.EnableKeyboardSteps = true
	p.StepInterval = Span{Low: 10 * time.Millisecond, High: 10 * time.Millisecond}
	rng := rand.New(rand.NewSource(6))
	sink := newFakeSink(0, 0)
	sink.pressErr = errors.New("input channel saturated")
	s := newStepScheduler(p, rng)

	for i := 0; i < 100; i++ {
		s.tick(p, sink, rng, zap.NewNop(), 0.01)
	}

	assert.False(t, s.holding, "machine must stay idle after a rejected press")
	assert.Greater(t, s.untilPress, 0.0, "countdown must be redrawn after a rejected press")
	assert.Empty(t, sink.releases, "no release without a successful press")
	assert.Positive(t, sink.pressAttempts)
}

func TestStepDisableMidHoldReleasesImmediately(t *testing.T) {
	t.Parallel()

	p := testParams()
	p.EnableKeyboardSteps = true
	p.StepInterval = Span{Low: 10 * time.Millisecond, High: 10 * time.Millisecond}
	p.StepHold = Span{Low: time.Hour, High: time.Hour}
	rng := rand.New(rand.NewSource(7))
	sink := newFakeSink(0, 0)
	s := newStepScheduler(p, rng)

	s.tick(p, sink, rng, zap.NewNop(), 0.01)
	require.True(t, s.holding, "expected a press on the first expired tick")

	disabled := p
	disabled.EnableKeyboardSteps = false
	s.tick(disabled, sink, rng, zap.NewNop(), 0.01)

	assert.False(t, s.holding)
	require.Len(t, sink.releases, 1)
	assert.Equal(t, sink.presses[0], sink.releases[0])
}

func TestUtilityCadenceFixed(t *testing.T) {
	t.Parallel()

	p := testParams()
	p.EnableUtilityHold = true
	sink := newFakeSink(0, 0)
	u := newUtilityScheduler(p)

	var pressTicks, releaseTicks []int
	for i := 1; i <= 400; i++ { // one simulated second per tick
		u.tick(p, sink, zap.NewNop(), 1.0)
		if len(sink.presses) > len(pressTicks) {
			pressTicks = append(pressTicks, i)
		}
		if len(sink.releases) > len(releaseTicks) {
			releaseTicks = append(releaseTicks, i)
		}
	}

	require.Equal(t, []int{180, 364}, pressTicks)
	require.Equal(t, []int{184, 368}, releaseTicks)
	for _, k := range sink.presses {
		assert.Equal(t, KeyB, k)
	}
}

func TestUtilityPressFailureResetsInterval(t *testing.T) {
	t.Parallel()

	p := testParams()
	p.EnableUtilityHold = true
	sink := newFakeSink(0, 0)
	sink.pressErr = errors.New("input channel saturated")
	u := newUtilityScheduler(p)

	attempts := []int{}
	for i := 1; i <= 600; i++ {
		before := sink.pressAttempts
		u.tick(p, sink, zap.NewNop(), 1.0)
		if sink.pressAttempts > before {
			attempts = append(attempts, i)
		}
	}

	require.Equal(t, []int{180, 360, 540}, attempts)
	assert.False(t, u.holding)
	assert.Empty(t, sink.releases)
}

func TestUtilityDisableMidHoldParksTimer(t *testing.T) {
	t.Parallel()

	p := testParams()
	p.EnableUtilityHold = true
	sink := newFakeSink(0, 0)
	u := newUtilityScheduler(p)

	for i := 0; i < 182; i++ {
		u.tick(p, sink, zap.NewNop(), 1.0)
	}
	require.True(t, u.holding)

	disabled := p
	disabled.EnableUtilityHold = false
	u.tick(disabled, sink, zap.NewNop(), 1.0)
	assert.False(t, u.holding)
	require.Len(t, sink.releases, 1)
	assert.True(t, math.IsInf(u.untilPress, 1), "timer must park while disabled")

	// Parked timer must not fire no matter how long the feature stays off.
	for i := 0; i < 1000; i++ {
		u.tick(disabled, sink, zap.NewNop(), 1.0)
	}
	assert.Len(t, sink.presses, 1)

	// Re-enabling re-arms a full interval.
	u.tick(p, sink, zap.NewNop(), 1.0)
	assert.InDelta(t, utilityInterval-1.0, u.untilPress, 1e-9)
}

func TestShutdownReleasesHeldKeyExactlyOnce(t *testing.T) {
	t.Parallel()

	p := testParams()
	p.EnableKeyboardSteps = true
	p.StepInterval = Span{Low: 10 * time.Millisecond, High: 10 * time.Millisecond}
	p.StepHold = Span{Low: time.Hour, High: time.Hour}
	rng := rand.New(rand.NewSource(14))
	sink := newFakeSink(0, 0)
	s := newStepScheduler(p, rng)

	s.tick(p, sink, rng, zap.NewNop(), 0.01)
	require.True(t, s.holding)

	s.shutdown(sink, zap.NewNop())
	s.shutdown(sink, zap.NewNop())

	assert.Len(t, sink.releases, 1, "shutdown must release exactly once")
	assert.Zero(t, sink.heldCount())
}

func TestShutdownNoopWhenNothingHeld(t *testing.T) {
	t.Parallel()

	p := testParams()
	sink := newFakeSink(0, 0)
	newStepScheduler(p, rand.New(rand.NewSource(1))).shutdown(sink, zap.NewNop())
	newUtilityScheduler(p).shutdown(sink, zap.NewNop())

	assert.Empty(t, sink.releases, "no release may be sent for never-pressed keys")
}

func TestReleaseFailureDoesNotWedgeMachine(t *testing.T) {
	t.Parallel()

	p := testParams()
	p.EnableKeyboardSteps = true
	p.StepInterval = Span{Low: 10 * time.Millisecond, High: 10 * time.Millisecond}
	p.StepHold = Span{Low: 10 * time.Millisecond, High: 10 * time.Millisecond}
	rng := rand.New(rand.NewSource(15))
	sink := newFakeSink(0, 0)
	sink.releaseErr = errors.New("input channel saturated")
	s := newStepScheduler(p, rng)

	for i := 0; i < 50; i++ {
		s.tick(p, sink, rng, zap.NewNop(), 0.01)
	}

	// The key is considered released even when the key-up was rejected; the
	// machine keeps tapping.
	assert.False(t, s.holding)
	assert.Greater(t, len(sink.presses), 1)
}
