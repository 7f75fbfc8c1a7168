//go:build !windows

package hotkey

import (
	"context"

	"go.uber.org/zap"
)

// Wait blocks until the context is canceled. Global hotkeys need a window
// system; off Windows the console signal path is the only stop control.
func Wait(ctx context.Context, log *zap.Logger) error {
	log.Debug("Global stop hotkey unavailable on this platform; use Ctrl+C.")
	<-ctx.Done()
	return ctx.Err()
}
