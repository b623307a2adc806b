// Package middleware provides the gin middleware chain for the DevOS API:
// CORS, per-client and global rate limiting, gzip compression, and
// request correlation IDs with access logging.
package middleware
