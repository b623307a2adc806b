// Package content provides the read-only portfolio repository.
//
// Portfolio documents are YAML, TOML or JSON files discovered with a
// doublestar glob. Every file contributes sections to one merged portfolio,
// which is validated before it is served. Display text must be plain text:
// fields that contain markup are rejected rather than rewritten.
// Without a content directory the embedded portfolio is used.
//
// Features:
//   - Multi-format decoding (goccy/go-yaml, go-toml/v2, sonic)
//   - MIME sniffing to reject binary files
//   - Markup rejection with a bluemonday strict policy
//   - Struct validation with validator/v10
//
// Example Usage:
//
//	repo, err := content.Open(cfg.Content.Dir, cfg.Content.Pattern, logger)
//	project, ok := repo.FindProject("xshop")
package content
