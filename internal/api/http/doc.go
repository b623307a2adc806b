// Package http provides HTTP handlers for the DevOS REST API.
//
// Endpoints:
//   - Health: /, /health and /metrics
//   - Content: /content/profile, /content/projects, /content/projects/:id,
//     /content/experience, /content/education, /content/skills
//   - Desktops: /desktops, /desktops/:sid, /desktops/:sid/apps, /desktops/:sid/windows
//   - Windows: /desktops/:sid/windows/:wid/{focus,minimize,position,commands,transcript}
//
// Domain errors map to status codes: unknown desktops and windows are 404,
// bad app requests 400, a busy terminal 409 and the desktop cap 429.
// Error bodies are {"error": "..."}.
//
// Example Usage:
//
//	handlers := http.NewHandlers(repo, registry, metrics).WithLogger(logger)
//	handlers.Register(router)
package http
