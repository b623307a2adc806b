// Package main is the entry point for the DevOS portfolio backend.
//
// The server hosts visitor desktops: each visitor gets a window manager
// and a terminal interpreter, driven over REST or a WebSocket stream.
//
// Configuration:
//   - Environment variables (12-factor), optionally from a .env file
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Serve (default command)
//	./server --port 8000
//
//	# Development mode (colored logs, debug level)
//	./server serve --dev
//
//	# Validate a content directory
//	./server content check --dir ./content
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
