package motion

import (
	"math"
	"math/rand"

	"github.com/xkilldash9x/autoorbit/internal/noise"
)

// Seed masks decorrelate the per-quantity noise channels derived from the
// single session seed. Changing any mask changes the session's character.
const (
	seedMaskRadius     = 0x13579BDF
	seedMaskTilt       = 0x2468ACE0
	seedMaskPrecession = 0x55AA55AA
	seedMaskCenterX    = 0x92E1103A
	seedMaskCenterY    = 0x7F4A1BC2
	seedMaskSpin       = 0x6C3D2E1F
	seedMaskWobble     = 0x0A0B0C0D
)

// noiseBank holds the seven independent noise channels the kinematics and
// secondary layers sample each tick.
type noiseBank struct {
	radius     *noise.Field
	tilt       *noise.Field
	precession *noise.Field
	centerX    *noise.Field
	centerY    *noise.Field
	spin       *noise.Field
	wobble     *noise.Field
}

func newNoiseBank(seed int64) *noiseBank {
	return &noiseBank{
		radius:     noise.New(seed ^ seedMaskRadius),
		tilt:       noise.New(seed ^ seedMaskTilt),
		precession: noise.New(seed ^ seedMaskPrecession),
		centerX:    noise.New(seed ^ seedMaskCenterX),
		centerY:    noise.New(seed ^ seedMaskCenterY),
		spin:       noise.New(seed ^ seedMaskSpin),
		wobble:     noise.New(seed ^ seedMaskWobble),
	}
}

// blendRate is the per-second advance of the revolution blend parameter.
const blendRate = 0.35

// easeRaisedCosine maps blend progress in [0, 1] onto a smooth S-curve with
// zero slope at both ends. Monotone and bounded to [0, 1] on its domain.
func easeRaisedCosine(p float64) float64 {
	return 0.5 - 0.5*math.Cos(math.Pi*p)
}

func lerp(from, to, s float64) float64 {
	return from + (to-from)*s
}

// orbitState carries the primary orbital kinematics: the sweep angle, the
// per-revolution shape parameters and their blend targets. Owned exclusively
// by the loop goroutine.
type orbitState struct {
	theta float64
	phase float64
	bias  float64

	// blend runs 0 -> 1 after each revolution boundary, easing the shape
	// parameters from their adopted values toward the freshly drawn targets.
	blend float64

	gain       float64
	targetGain float64

	tilt       float64
	targetTilt float64

	centerX       float64
	targetCenterX float64
	centerY       float64
	targetCenterY float64
}

// newOrbitState draws the initial pose. Blend starts complete so a session
// opens directly in its first drawn shape instead of easing in from nothing.
func newOrbitState(rng *rand.Rand) *orbitState {
	return &orbitState{
		theta:      rng.Float64() * 2 * math.Pi,
		phase:      rng.Float64() * 2 * math.Pi,
		bias:       0.05 + rng.Float64()*0.13,
		blend:      1.0,
		gain:       1.0,
		targetGain: 1.0 + (rng.Float64()*0.10 - 0.05),
		targetTilt: rng.Float64()*0.6 - 0.3,
	}
}

// advanceBlend moves the revolution blend forward by dt seconds, saturating
// at 1.
func (o *orbitState) advanceBlend(dt float64) {
	if o.blend < 1.0 {
		o.blend = math.Min(1.0, o.blend+dt*blendRate)
	}
}

// offset computes the orbital displacement from screen center at session
// time t, including the blended per-revolution center offset. It does not
// advance any state; spin does that after the tick's move is dispatched.
func (o *orbitState) offset(p Params, nb *noiseBank, t float64) Vec {
	s := easeRaisedCosine(o.blend)
	gain := lerp(o.gain, o.targetGain, s)
	tilt := lerp(o.tilt, o.targetTilt, s)
	centerX := lerp(o.centerX, o.targetCenterX, s)
	centerY := lerp(o.centerY, o.targetCenterY, s)

	dynamicRadius := p.BaseRadius * (0.78 + 0.22*math.Sin(o.theta*2.7+o.phase))
	radiusOffset := 0.12 * p.BaseRadius * nb.radius.Sample(t*0.12)
	verticalScale := 0.65 + 0.35*math.Cos(o.theta*1.4+o.phase*0.5+tilt+0.4*nb.tilt.Sample(t*0.08))

	x := (dynamicRadius + radiusOffset) * math.Cos(o.theta) * gain
	y := (dynamicRadius * verticalScale) * math.Sin(o.theta) * gain

	// Precession slowly rotates the whole ellipse so the track never traces
	// the same loop twice.
	precession := 0.9 * nb.precession.Sample(t*0.05)
	sin, cos := math.Sincos(precession)

	return Vec{
		X: cos*x - sin*y + centerX,
		Y: sin*x + cos*y + centerY,
	}
}

// spin advances the sweep angle by dt seconds of modulated angular velocity
// and handles the revolution boundary.
func (o *orbitState) spin(p Params, nb *noiseBank, rng *rand.Rand, t, dt float64) {
	variation := 1.0 + o.bias*math.Sin(o.theta*0.9+o.phase)
	variation += p.SpinNoiseScale * nb.spin.Sample(t*0.11)
	o.theta += p.AngularVelocity * dt * variation
	if o.theta > 2*math.Pi {
		o.theta -= 2 * math.Pi
		o.retarget(p, rng)
	}
}

// retarget adopts the current targets as the new base pose, draws the next
// revolution's targets and restarts the blend.
func (o *orbitState) retarget(p Params, rng *rand.Rand) {
	o.gain = o.targetGain
	o.tilt = o.targetTilt
	o.centerX = o.targetCenterX
	o.centerY = o.targetCenterY

	o.targetGain = 1.0 + (rng.Float64()*0.10 - 0.05)
	o.targetTilt = rng.Float64()*0.6 - 0.3
	o.targetCenterX = (rng.Float64()*2 - 1) * 0.1 * p.BaseRadius
	o.targetCenterY = (rng.Float64()*2 - 1) * 0.1 * p.BaseRadius
	o.phase += rng.Float64()*0.5 - 0.25
	o.bias = 0.04 + rng.Float64()*0.15
	o.blend = 0.0
}
