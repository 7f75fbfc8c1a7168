// Package motion implements the idle-motion choreography engine: a fixed-tick
// loop that steers the cursor along a continuously re-shaped orbit, layers in
// drift, wobble, jitter and saccades, and schedules occasional key taps. The
// package is platform-agnostic; everything it emits goes through the Sink
// interface.
package motion

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// countdownPeriod spaces the countdown status events.
const countdownPeriod = 100 * time.Millisecond

// Loop runs one motion session. Construct with NewLoop, run with Run. A Loop
// is single-use; its state is consumed by the session.
type Loop struct {
	params Params
	sink   Sink
	log    *zap.Logger
	status chan<- Status

	rng     *rand.Rand
	bank    *noiseBank
	orbit   *orbitState
	layers  *secondaryLayers
	steps   *stepScheduler
	utility *utilityScheduler

	width  int
	height int

	// prev is the previous tick's planar target. It starts at the origin so
	// the first dispatched delta is the full initial orbital offset.
	prev    Vec
	elapsed float64
}

// NewLoop assembles a session from normalized parameters. The status channel
// is optional; pass nil when no listener cares. A zero Seed is replaced with
// a wall-clock seed so default sessions never repeat.
func NewLoop(p Params, sink Sink, screen ScreenGeometry, log *zap.Logger, status chan<- Status) (*Loop, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid motion params: %w", err)
	}
	if p.Seed == 0 {
		p.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(p.Seed))
	w, h := screen.Bounds()

	return &Loop{
		params:  p,
		sink:    sink,
		log:     log,
		status:  status,
		rng:     rng,
		bank:    newNoiseBank(p.Seed),
		orbit:   newOrbitState(rng),
		layers:  newSecondaryLayers(p, rng),
		steps:   newStepScheduler(p, rng),
		utility: newUtilityScheduler(p),
		width:   w,
		height:  h,
	}, nil
}

// Run blocks through the countdown and the motion loop until the context is
// canceled or the session fails. Held keys are force-released and the Stopped
// status is emitted under every exit path. The returned error is non-nil only
// for OutcomeFailed.
func (l *Loop) Run(ctx context.Context) (outcome Outcome, err error) {
	defer func() {
		l.steps.shutdown(l.sink, l.log)
		l.utility.shutdown(l.sink, l.log)
		l.emit(Status{Kind: StatusStopped, Outcome: outcome})
	}()

	if cerr := l.countdown(ctx); cerr != nil {
		l.log.Info("Session canceled during countdown.")
		return OutcomeCanceled, nil
	}

	l.log.Info("Choreography live.",
		zap.Float64("base_radius", l.params.BaseRadius),
		zap.Float64("angular_velocity", l.params.AngularVelocity),
		zap.Int64("seed", l.params.Seed),
	)
	l.emit(Status{Kind: StatusRunning})

	// One token per tick keeps the schedule anchored to the ideal timeline;
	// a late tick shortens the next wait instead of accumulating drift.
	limiter := rate.NewLimiter(rate.Every(l.params.TickInterval), 1)
	for {
		if werr := limiter.Wait(ctx); werr != nil {
			l.log.Info("Session stopped.", zap.Float64("elapsed_s", l.elapsed))
			return OutcomeCanceled, nil
		}
		if terr := l.tick(); terr != nil {
			l.log.Error("Session aborted.", zap.Error(terr))
			return OutcomeFailed, terr
		}
	}
}

// countdown waits out the startup delay, emitting progress at a steady
// cadence. Returns the context error when canceled mid-wait.
func (l *Loop) countdown(ctx context.Context) error {
	total := l.params.StartupDelay
	if total <= 0 {
		return nil
	}
	deadline := time.Now().Add(total)
	ticker := time.NewTicker(countdownPeriod)
	defer ticker.Stop()
	for {
		remaining := time.Until(deadline)
		if remaining < 0 {
			remaining = 0
		}
		l.emit(Status{Kind: StatusCountdown, Remaining: remaining, Total: total})
		if remaining == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// tick advances the session by exactly one interval: schedulers first, then
// kinematics, then the cursor move. Only a cursor-position query failure is
// fatal; a rejected move skips the displacement and the loop carries on.
func (l *Loop) tick() error {
	dt := l.params.TickInterval.Seconds()
	l.elapsed += dt
	t := l.elapsed

	l.steps.tick(l.params, l.sink, l.rng, l.log, dt)
	l.utility.tick(l.params, l.sink, l.log, dt)

	l.orbit.advanceBlend(dt)
	pos := l.orbit.offset(l.params, l.bank, t)
	pos = l.layers.apply(l.params, l.bank, l.rng, pos, t, dt)

	delta := pos.Sub(l.prev)
	l.prev = pos

	cx, cy, err := l.sink.CursorPos()
	if err != nil {
		return fmt.Errorf("query cursor position: %w", err)
	}

	tx, ty := l.clamp(float64(cx)+delta.X, float64(cy)+delta.Y)
	dx := int(math.Round(tx - float64(cx)))
	dy := int(math.Round(ty - float64(cy)))
	if dx != 0 || dy != 0 {
		if merr := l.sink.MoveRelative(dx, dy); merr != nil {
			l.log.Debug("Relative move rejected; skipping tick.", zap.Error(merr))
		}
	}

	l.orbit.spin(l.params, l.bank, l.rng, t, dt)
	return nil
}

// clamp confines a destination to the margin-inset screen rectangle. On a
// display narrower than twice the margin the usable band collapses to a
// single line at the margin.
func (l *Loop) clamp(x, y float64) (float64, float64) {
	m := l.params.ScreenMargin
	maxX := math.Max(m, float64(l.width)-m)
	maxY := math.Max(m, float64(l.height)-m)
	x = math.Min(math.Max(m, x), maxX)
	y = math.Min(math.Max(m, y), maxY)
	return x, y
}

// emit sends a status event without ever blocking the loop. A missing or
// slow listener drops events rather than stalling motion.
func (l *Loop) emit(s Status) {
	if l.status == nil {
		return
	}
	select {
	case l.status <- s:
	default:
	}
}
