package motion

import (
	"fmt"
	"math/rand"
	"time"
)

// Key is a Windows virtual-key code.
type Key uint16

// Virtual-key codes the schedulers dispatch.
const (
	KeyW Key = 0x57
	KeyA Key = 0x41
	KeyS Key = 0x53
	KeyD Key = 0x44
	KeyB Key = 0x42
)

// String renders the key as its printable character for log fields.
func (k Key) String() string {
	if k >= 'A' && k <= 'Z' {
		return string(rune(k))
	}
	return fmt.Sprintf("0x%02X", uint16(k))
}

// Span is an inclusive duration window from which timers are drawn uniformly.
type Span struct {
	Low  time.Duration
	High time.Duration
}

// normalized returns the span with its bounds sorted. Inverted input is a user
// mistake, not an error; callers sort rather than reject.
func (s Span) normalized() Span {
	if s.High < s.Low {
		s.Low, s.High = s.High, s.Low
	}
	return s
}

// draw samples a duration uniformly from the span. A degenerate span (High at
// or below Low) always yields Low.
func (s Span) draw(rng *rand.Rand) time.Duration {
	if s.High <= s.Low {
		return s.Low
	}
	return s.Low + time.Duration(rng.Int63n(int64(s.High-s.Low)))
}

// drawSeconds samples the span and converts to float seconds, the unit the
// kinematics run in.
func (s Span) drawSeconds(rng *rand.Rand) float64 {
	return s.draw(rng).Seconds()
}

// Params is the full tunable surface of a motion session. The zero value is
// not useful; start from DefaultParams.
type Params struct {
	// BaseRadius is the nominal orbit radius in pixels. Effective radius
	// varies around it via modulation and noise.
	BaseRadius float64
	// AngularVelocity is the nominal sweep rate in radians per second.
	AngularVelocity float64
	// Jitter scales the fine-texture layers (wobble and per-tick jitter).
	Jitter float64
	// TickInterval is the motion loop period.
	TickInterval time.Duration
	// StartupDelay is the cancellable countdown before motion begins.
	StartupDelay time.Duration
	// ScreenMargin keeps the cursor at least this many pixels from each edge.
	ScreenMargin float64

	EnableKeyboardSteps bool
	EnableSaccades      bool
	EnableUtilityHold   bool

	// StepInterval spaces step-key taps; StepHold bounds how long a tap is
	// held; SaccadeInterval spaces saccade impulses.
	StepInterval    Span
	StepHold        Span
	SaccadeInterval Span

	// JitterRandomScale scales the uniform per-tick jitter component.
	JitterRandomScale float64
	// WobbleScale scales the smooth wobble component relative to Jitter.
	WobbleScale float64
	// WobbleVerticalBias attenuates wobble on the vertical axis.
	WobbleVerticalBias float64
	// SpinNoiseScale scales the noise term in the angular velocity variation.
	SpinNoiseScale float64

	// Seed drives every random draw of the session. Zero selects a random
	// seed at construction, so two default sessions never repeat.
	Seed int64
}

// DefaultParams returns the stock session tuning.
func DefaultParams() Params {
	return Params{
		BaseRadius:          220.0,
		AngularVelocity:     1.25,
		Jitter:              6.0,
		TickInterval:        10 * time.Millisecond,
		StartupDelay:        5 * time.Second,
		ScreenMargin:        2.0,
		EnableKeyboardSteps: true,
		EnableSaccades:      true,
		EnableUtilityHold:   false,
		StepInterval:        Span{Low: 9 * time.Second, High: 20 * time.Second},
		StepHold:            Span{Low: 45 * time.Millisecond, High: 120 * time.Millisecond},
		SaccadeInterval:     Span{Low: 4500 * time.Millisecond, High: 9500 * time.Millisecond},
		JitterRandomScale:   0.2,
		WobbleScale:         0.4,
		WobbleVerticalBias:  0.6,
		SpinNoiseScale:      0.16,
	}
}

// Normalize sorts every duration window in place. It never fails; inverted
// windows are repaired, not rejected.
func (p *Params) Normalize() {
	p.StepInterval = p.StepInterval.normalized()
	p.StepHold = p.StepHold.normalized()
	p.SaccadeInterval = p.SaccadeInterval.normalized()
}

// Validate rejects parameter sets the loop cannot run with.
func (p Params) Validate() error {
	if p.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %v", p.TickInterval)
	}
	if p.BaseRadius <= 0 {
		return fmt.Errorf("base radius must be positive, got %v", p.BaseRadius)
	}
	if p.AngularVelocity <= 0 {
		return fmt.Errorf("angular velocity must be positive, got %v", p.AngularVelocity)
	}
	if p.Jitter < 0 {
		return fmt.Errorf("jitter must not be negative, got %v", p.Jitter)
	}
	if p.ScreenMargin < 0 {
		return fmt.Errorf("screen margin must not be negative, got %v", p.ScreenMargin)
	}
	if p.StartupDelay < 0 {
		return fmt.Errorf("startup delay must not be negative, got %v", p.StartupDelay)
	}
	return nil
}
