// Package ws streams live desktop state over WebSocket.
//
// Each connection is bound to one desktop. The server pushes a snapshot
// on connect and after every change; changes coalesce, so a client sees
// the latest state rather than every intermediate one.
//
// Message Types (Client → Server):
//   - open: open or focus an app ({kind, project_id})
//   - focus, minimize, close: window operations ({window_id})
//   - close_all: destroy every window
//   - drag_start, drag_move, drag_end: pointer drag ({window_id, x, y})
//   - submit: send a terminal line ({window_id, line})
//   - ping: keep-alive
//
// Message Types (Server → Client):
//   - snapshot: full desktop projection
//   - accepted: a submitted line was queued
//   - pong: keep-alive reply
//   - error: a client event was rejected
//   - closed: the desktop was deleted or evicted
//
// Example Usage:
//
//	handler := ws.NewHandler(registry, metrics, logger)
//	router.GET("/desktops/:sid/stream", handler.HandleConnection)
package ws
