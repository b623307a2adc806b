// Package types provides shared data structures for the DevOS backend.
//
// This package defines the value types exchanged between the window manager,
// the terminal interpreter, the content repository and the transport layer.
//
// Core Types:
//   - App: Tagged window variant (TerminalApp, ProjectApp, AboutApp, ...)
//   - Window: Open window instance with stack order and position
//   - TerminalLine: One transcript entry of a terminal window
//   - Project, Profile, Experience, Education, Skills: Portfolio content
//
// Request Types:
//   - OpenRequest, PositionRequest, CommandRequest: REST payloads
//   - WSMessage: WebSocket communication
//
// Example Usage:
//
//	project, _ := repo.FindProject("xshop")
//	win := manager.Open(types.ProjectApp{Project: project})
package types
