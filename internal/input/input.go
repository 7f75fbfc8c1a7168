// Package input provides the OS-level injection sink behind the motion
// engine. On Windows events go out through SendInput; other platforms get a
// constructor error so the engine itself stays testable everywhere.
package input

import (
	"errors"

	"github.com/xkilldash9x/autoorbit/internal/motion"
)

// ErrUnsupported is returned by NewSendInputSink on platforms without a
// SendInput implementation.
var ErrUnsupported = errors.New("input injection is only supported on windows")

var (
	_ motion.Sink           = (*SendInputSink)(nil)
	_ motion.ScreenGeometry = (*SendInputSink)(nil)
)
