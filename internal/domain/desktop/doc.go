// Package desktop composes the window manager and terminal interpreters into
// one visitor desktop, and keeps the registry of live desktops.
//
// A Shell routes open requests from the dock, desktop icons and terminal
// commands into its window manager, owns one interpreter per terminal window
// and publishes a Snapshot after every change.
//
// The Registry creates shells on demand, enforces a session cap and evicts
// shells that stay idle longer than the configured TTL. Eviction cancels any
// in-flight terminal tasks of the evicted shell.
package desktop
