// Package reasoning provides command translation backends for the terminal.
//
// Two implementations satisfy the interpreter's Translator contract:
//
//   - Client: HTTP client for a remote reasoning service (resty over a
//     retryablehttp transport, guarded by a circuit breaker)
//   - Heuristic: offline translator built on a synonym corpus, regex
//     patterns and fuzzy command matching
//
// Both normalize results the same way: Translate returns "" when nothing
// matches, Suggest always yields a command name, and DeepDive answers
// unknown projects with a descriptive string instead of an error.
//
// Remote Protocol:
//
//	POST /translate  {"text", "commands", "projects"} -> {"command"}
//	POST /suggest    {"text", "commands"}             -> {"command"}
//	POST /deep-dive  {"project"}                      -> {"analysis"}
package reasoning
