// Package cache stores rendered images between runs.
//
// Rasterising a DOT source is the slowest step of a rendering, and the
// source is a pure function of the registry and profile. Keying the PNG by
// a hash of its source lets repeated runs over an unchanged profile skip
// Graphviz entirely.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store keyed by string.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// RenderKey returns the key of the image rendered from a DOT source.
	RenderKey(dot string, opts RenderKeyOpts) string
}

// RenderKeyOpts lists everything besides the source that changes the
// rendered bytes.
type RenderKeyOpts struct {
	Engine string `json:"engine"`
	Format string `json:"format"`
}

// DefaultKeyer hashes the source and options into a fixed-length key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RenderKey returns "render:<sha256>".
func (DefaultKeyer) RenderKey(dot string, opts RenderKeyOpts) string {
	return hashKey("render", Hash([]byte(dot)), opts)
}
