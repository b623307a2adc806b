// Package server wires configuration, content, reasoning, desktops and the
// HTTP/WebSocket surface into one runnable process.
//
// Middleware order: recovery, request ID, access log, metrics, CORS,
// rate limit, gzip.
//
// Example Usage:
//
//	srv, err := server.NewServer(cfg, logger)
//	if err != nil {
//		return err
//	}
//	return srv.Run(ctx)
package server
