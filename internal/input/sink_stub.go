//go:build !windows

package input

import "github.com/xkilldash9x/autoorbit/internal/motion"

// SendInputSink is a placeholder on non-Windows platforms; every method
// reports ErrUnsupported. The type exists so cross-platform builds compile
// and the interface assertions hold.
type SendInputSink struct{}

// NewSendInputSink always fails off Windows.
func NewSendInputSink() (*SendInputSink, error) {
	return nil, ErrUnsupported
}

func (s *SendInputSink) MoveRelative(dx, dy int) error { return ErrUnsupported }
func (s *SendInputSink) CursorPos() (int, int, error)  { return 0, 0, ErrUnsupported }
func (s *SendInputSink) PressKey(k motion.Key) error   { return ErrUnsupported }
func (s *SendInputSink) ReleaseKey(k motion.Key) error { return ErrUnsupported }
func (s *SendInputSink) Bounds() (int, int)            { return 0, 0 }
