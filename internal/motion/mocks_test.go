package motion

import (
	"sync"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// =============================================================================
// Test Infrastructure: Mocks and Helpers
// =============================================================================

// fakeSink implements Sink for testing. It maintains an absolute cursor
// position so tests can assert on where the loop actually puts the cursor,
// and records every dispatched event.
type fakeSink struct {
	mu sync.Mutex

	x, y  int
	moves [][2]int

	presses       []Key
	releases      []Key
	pressAttempts int

	held    map[Key]bool
	maxHeld int

	// Scenario control.
	moveErr    error
	pressErr   error
	releaseErr error
	posErr     error
	posFailOn  int // CursorPos call number to start failing on; 0 disables.
	posCalls   int
}

func newFakeSink(x, y int) *fakeSink {
	return &fakeSink{x: x, y: y, held: make(map[Key]bool)}
}

func (f *fakeSink) MoveRelative(dx, dy int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.moveErr != nil {
		return f.moveErr
	}
	f.x += dx
	f.y += dy
	f.moves = append(f.moves, [2]int{dx, dy})
	return nil
}

func (f *fakeSink) CursorPos() (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posCalls++
	if f.posFailOn > 0 && f.posCalls >= f.posFailOn {
		return 0, 0, f.posErr
	}
	return f.x, f.y, nil
}

func (f *fakeSink) PressKey(k Key) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pressAttempts++
	if f.pressErr != nil {
		return f.pressErr
	}
	f.presses = append(f.presses, k)
	f.held[k] = true
	if len(f.held) > f.maxHeld {
		f.maxHeld = len(f.held)
	}
	return nil
}

func (f *fakeSink) ReleaseKey(k Key) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.releaseErr != nil {
		return f.releaseErr
	}
	f.releases = append(f.releases, k)
	delete(f.held, k)
	return nil
}

func (f *fakeSink) heldCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.held)
}

func (f *fakeSink) moveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.moves)
}

func (f *fakeSink) position() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.x, f.y
}

// testParams returns deterministic parameters with no startup delay, suitable
// for driving ticks directly.
func testParams() Params {
	p := DefaultParams()
	p.StartupDelay = 0
	p.Seed = 12345
	return p
}
