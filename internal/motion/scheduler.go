package motion

import (
	"math"
	"math/rand"

	"go.uber.org/zap"
)

// Fixed cadence of the utility hold, in seconds.
const (
	utilityInterval = 180.0
	utilityHold     = 4.0
)

// stepScheduler taps one of the step keys at random intervals, holding it
// briefly. At most one step key is ever down. Owned by the loop goroutine.
type stepScheduler struct {
	keys          []Key
	active        Key
	holding       bool
	holdRemaining float64
	// untilPress counts down in seconds; +Inf while steps are disabled.
	untilPress float64
}

func newStepScheduler(p Params, rng *rand.Rand) *stepScheduler {
	s := &stepScheduler{
		keys:       []Key{KeyW, KeyA, KeyS, KeyD},
		untilPress: math.Inf(1),
	}
	if p.EnableKeyboardSteps {
		s.untilPress = p.StepInterval.drawSeconds(rng)
	}
	return s
}

// tick advances the machine by dt seconds. The countdown is redrawn at press
// time whether or not the press lands, so a rejected press costs a full
// interval rather than retrying every tick. A press that fires while a key
// is still held waits for the release.
func (s *stepScheduler) tick(p Params, sink Sink, rng *rand.Rand, log *zap.Logger, dt float64) {
	if !p.EnableKeyboardSteps {
		if s.holding {
			s.release(sink, log)
		}
		return
	}
	s.untilPress -= dt
	if !s.holding && s.untilPress <= 0 {
		candidate := s.keys[rng.Intn(len(s.keys))]
		if err := sink.PressKey(candidate); err != nil {
			log.Warn("Step key press rejected.", zap.Stringer("key", candidate), zap.Error(err))
			s.untilPress = p.StepInterval.drawSeconds(rng)
			return
		}
		s.active = candidate
		s.holding = true
		s.holdRemaining = p.StepHold.drawSeconds(rng)
		s.untilPress = p.StepInterval.drawSeconds(rng)
		return
	}
	if s.holding {
		s.holdRemaining -= dt
		if s.holdRemaining <= 0 {
			s.release(sink, log)
		}
	}
}

// release sends the key-up for the held key. A failed release is logged but
// the key is considered released; retrying a dead input channel would wedge
// the loop.
func (s *stepScheduler) release(sink Sink, log *zap.Logger) {
	if err := sink.ReleaseKey(s.active); err != nil {
		log.Warn("Step key release failed.", zap.Stringer("key", s.active), zap.Error(err))
	}
	s.holding = false
}

// shutdown force-releases a held key. Safe to call when nothing is held.
func (s *stepScheduler) shutdown(sink Sink, log *zap.Logger) {
	if s.holding {
		s.release(sink, log)
	}
}

// utilityScheduler holds the utility key on a fixed cadence. Unlike the step
// machine its timer parks at +Inf when the feature is disabled mid-hold and
// only re-arms when re-enabled.
type utilityScheduler struct {
	holding       bool
	holdRemaining float64
	untilPress    float64
}

func newUtilityScheduler(p Params) *utilityScheduler {
	u := &utilityScheduler{untilPress: math.Inf(1)}
	if p.EnableUtilityHold {
		u.untilPress = utilityInterval
	}
	return u
}

func (u *utilityScheduler) tick(p Params, sink Sink, log *zap.Logger, dt float64) {
	if !p.EnableUtilityHold {
		if u.holding {
			u.release(sink, log)
		}
		u.untilPress = math.Inf(1)
		return
	}
	if math.IsInf(u.untilPress, 1) {
		// Re-armed after being parked by a mid-session disable.
		u.untilPress = utilityInterval
	}
	u.untilPress -= dt
	if !u.holding && u.untilPress <= 0 {
		if err := sink.PressKey(KeyB); err != nil {
			log.Warn("Utility key press rejected.", zap.Stringer("key", KeyB), zap.Error(err))
			u.untilPress = utilityInterval
			return
		}
		u.holding = true
		u.holdRemaining = utilityHold
		return
	}
	if u.holding {
		u.holdRemaining -= dt
		if u.holdRemaining <= 0 {
			u.release(sink, log)
			u.untilPress = utilityInterval
		}
	}
}

func (u *utilityScheduler) release(sink Sink, log *zap.Logger) {
	if err := sink.ReleaseKey(KeyB); err != nil {
		log.Warn("Utility key release failed.", zap.Stringer("key", KeyB), zap.Error(err))
	}
	u.holding = false
}

// shutdown force-releases the utility key. Safe to call when nothing is held.
func (u *utilityScheduler) shutdown(sink Sink, log *zap.Logger) {
	if u.holding {
		u.release(sink, log)
	}
}
