// Package id provides centralized ID generation for the backend.
//
// IDs are prefixed ULIDs. The generator draws from monotonic entropy, so IDs
// produced by one generator are strictly increasing even within the same
// millisecond, which keeps window identity independent of call timing.
//
// Prefixes:
//   - win_  window instances
//   - desk_ visitor desktops
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ============================================================================
// Type-Safe ID Wrappers
// ============================================================================

// WindowID identifies a window instance
type WindowID string

// DesktopID identifies a visitor desktop
type DesktopID string

const (
	WindowPrefix  = "win"
	DesktopPrefix = "desk"
)

// ============================================================================
// ULID Generator
// ============================================================================

// Generator generates monotonic ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // Protects entropy reader
	now       func() time.Time
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(rand.Reader)
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
// Useful for testing with deterministic entropy.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{
		entropy: ulid.Monotonic(entropy, 0),
		now:     time.Now,
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// NewWindowID generates a window ID from g
func (g *Generator) NewWindowID() WindowID {
	return WindowID(g.GenerateWithPrefix(WindowPrefix))
}

// ============================================================================
// Typed ID Generators (default generator)
// ============================================================================

// NewWindowID generates a new window ID
func NewWindowID() WindowID {
	return Default().NewWindowID()
}

// NewDesktopID generates a new desktop ID
func NewDesktopID() DesktopID {
	return DesktopID(Default().GenerateWithPrefix(DesktopPrefix))
}

func (id WindowID) String() string  { return string(id) }
func (id DesktopID) String() string { return string(id) }

// IsValid checks if an ID string is a valid ULID
func IsValid(id string) bool {
	_, err := ulid.Parse(id)
	return err == nil
}

// Timestamp extracts the timestamp from a ULID
func Timestamp(id string) (time.Time, error) {
	parsed, err := ulid.Parse(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
