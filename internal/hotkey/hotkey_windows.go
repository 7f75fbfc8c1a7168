//go:build windows

package hotkey

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

var (
	user32                 = windows.NewLazySystemDLL("user32.dll")
	procRegisterHotKey     = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey   = user32.NewProc("UnregisterHotKey")
	procGetMessageW        = user32.NewProc("GetMessageW")
	procPostThreadMessageW = user32.NewProc("PostThreadMessageW")
)

const (
	modAlt     = 0x0001
	modControl = 0x0002
	wmHotkey   = 0x0312
	wmQuit     = 0x0012
	vkQ        = 0x51
	hotkeyID   = 1
)

// msg mirrors the Win32 MSG structure for GetMessageW.
type msg struct {
	HWnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// Wait blocks until Ctrl+Alt+Q is pressed or the context is canceled. The
// message pump runs on a locked OS thread because RegisterHotKey binds the
// registration to the calling thread's queue; cancellation is delivered by
// posting WM_QUIT at that thread.
func Wait(ctx context.Context, log *zap.Logger) error {
	result := make(chan error, 1)
	threadID := make(chan uint32, 1)

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		threadID <- windows.GetCurrentThreadId()

		ok, _, callErr := procRegisterHotKey.Call(0, hotkeyID, modControl|modAlt, vkQ)
		if ok == 0 {
			result <- fmt.Errorf("register hotkey: %w", callErr)
			return
		}
		defer procUnregisterHotKey.Call(0, hotkeyID)
		log.Debug("Global stop hotkey registered.", zap.String("combo", "Ctrl+Alt+Q"))

		var m msg
		for {
			r, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
			switch int32(r) {
			case 0: // WM_QUIT
				result <- nil
				return
			case -1:
				result <- errors.New("GetMessageW failed")
				return
			}
			if m.Message == wmHotkey && m.WParam == hotkeyID {
				log.Info("Stop hotkey pressed.")
				result <- nil
				return
			}
		}
	}()

	tid := <-threadID
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		procPostThreadMessageW.Call(uintptr(tid), wmQuit, 0, 0)
		<-result
		return ctx.Err()
	}
}
