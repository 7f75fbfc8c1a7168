package motion

// Sink receives the loop's output events. Production sinks inject real OS
// input; tests substitute recording fakes.
//
// All methods may be called from the loop goroutine only. Errors from
// MoveRelative, PressKey and ReleaseKey are treated as transient; an error
// from CursorPos is fatal to the session.
type Sink interface {
	// MoveRelative displaces the cursor by whole pixels.
	MoveRelative(dx, dy int) error
	// CursorPos reports the current absolute cursor position.
	CursorPos() (x, y int, err error)
	// PressKey sends a key-down for the virtual key.
	PressKey(k Key) error
	// ReleaseKey sends a key-up for the virtual key.
	ReleaseKey(k Key) error
}

// ScreenGeometry reports the dimensions of the target display. Queried once
// at loop construction; hot-plugged display changes are out of scope.
type ScreenGeometry interface {
	Bounds() (width, height int)
}

// StaticScreen is a fixed-size ScreenGeometry, used in tests and as a
// fallback when the platform cannot be queried.
type StaticScreen struct {
	Width, Height int
}

func (s StaticScreen) Bounds() (int, int) { return s.Width, s.Height }
