// Package config provides 12-factor configuration management for the DevOS backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// A .env file is applied first when present; real environment variables win.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Desktop: Screen geometry, cascade placement and visitor session limits
//   - Content: Portfolio content directory and glob pattern
//   - Reasoning: Remote reasoning service endpoint
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - SCREEN_WIDTH, SCREEN_HEIGHT, WINDOW_WIDTH, WINDOW_HEIGHT, TOP_BOUNDARY
//   - CASCADE_STEP, CASCADE_WRAP, SESSION_IDLE_TTL, MAX_SESSIONS
//   - CONTENT_DIR, CONTENT_PATTERN
//   - REASONING_URL, REASONING_API_KEY, REASONING_TIMEOUT, REASONING_RETRIES
package config
