//go:build windows

package input

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/lxn/win"

	"github.com/xkilldash9x/autoorbit/internal/motion"
)

// SendInputSink injects cursor and keyboard events through the Win32
// SendInput API and reads screen state through the same user32 surface.
type SendInputSink struct{}

// NewSendInputSink prepares the process for injection. DPI awareness is set
// so GetSystemMetrics and GetCursorPos report physical pixels; without it a
// scaled desktop would shrink the usable orbit area.
func NewSendInputSink() (*SendInputSink, error) {
	win.SetProcessDPIAware()
	return &SendInputSink{}, nil
}

// MoveRelative displaces the cursor by whole pixels via a single relative
// mouse input packet.
func (s *SendInputSink) MoveRelative(dx, dy int) error {
	input := win.MOUSE_INPUT{
		Type: win.INPUT_MOUSE,
		Mi: win.MOUSEINPUT{
			Dx:      int32(dx),
			Dy:      int32(dy),
			DwFlags: win.MOUSEEVENTF_MOVE,
		},
	}
	if win.SendInput(1, unsafe.Pointer(&input), int32(unsafe.Sizeof(input))) != 1 {
		return fmt.Errorf("SendInput rejected relative move (%d, %d)", dx, dy)
	}
	return nil
}

// CursorPos reports the absolute cursor position in physical pixels.
func (s *SendInputSink) CursorPos() (int, int, error) {
	var pt win.POINT
	if !win.GetCursorPos(&pt) {
		return 0, 0, errors.New("GetCursorPos failed")
	}
	return int(pt.X), int(pt.Y), nil
}

// PressKey sends a key-down for the virtual key.
func (s *SendInputSink) PressKey(k motion.Key) error {
	return s.sendKey(k, 0)
}

// ReleaseKey sends a key-up for the virtual key.
func (s *SendInputSink) ReleaseKey(k motion.Key) error {
	return s.sendKey(k, win.KEYEVENTF_KEYUP)
}

func (s *SendInputSink) sendKey(k motion.Key, flags uint32) error {
	input := win.KEYBD_INPUT{
		Type: win.INPUT_KEYBOARD,
		Ki: win.KEYBDINPUT{
			WVk:     uint16(k),
			DwFlags: flags,
		},
	}
	if win.SendInput(1, unsafe.Pointer(&input), int32(unsafe.Sizeof(input))) != 1 {
		return fmt.Errorf("SendInput rejected key event for %s", k)
	}
	return nil
}

// Bounds reports the primary display dimensions in physical pixels.
func (s *SendInputSink) Bounds() (int, int) {
	return int(win.GetSystemMetrics(win.SM_CXSCREEN)), int(win.GetSystemMetrics(win.SM_CYSCREEN))
}
