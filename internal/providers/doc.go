// Package providers holds the data and intelligence sources behind the desktop.
//
// Available Providers:
//   - content: portfolio documents (embedded or from a directory of YAML, TOML or JSON)
//   - reasoning: natural-language translation, suggestions and project deep dives,
//     either from a remote reasoning service or an offline heuristic
//
// Both satisfy the interfaces declared by the terminal domain package, so the
// interpreter never imports a provider directly.
package providers
