// Package hotkey provides the global stop combination. On Windows a
// RegisterHotKey message pump listens for Ctrl+Alt+Q; elsewhere Wait simply
// blocks until the context is canceled so callers need no platform branches.
package hotkey
