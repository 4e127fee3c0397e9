// Package cache stores sizing results keyed by document content and options.
//
// Three backends implement [Cache]:
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON envelope per key under an XDG cache directory
//   - [RedisCache]: a shared Redis instance, for the HTTP service
//
// Keys are produced by a [Keyer] so that callers never assemble cache keys
// by hand. [ScopedKeyer] prefixes every key for tenant isolation.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// =============================================================================
// Keys
// =============================================================================

// SizeKeyOpts are the options that change the result of a sizing pass.
type SizeKeyOpts struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Mode   string `json:"mode"`
}

// RenderKeyOpts are the options that change a rendered artifact.
type RenderKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed"`
}

// Keyer generates cache keys.
type Keyer interface {
	// SizeKey identifies the report of one document under one set of options.
	SizeKey(docHash string, opts SizeKeyOpts) string

	// RenderKey identifies an artifact rendered from a report.
	RenderKey(reportHash string, opts RenderKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SizeKey returns "size:<hash of document and options>".
func (DefaultKeyer) SizeKey(docHash string, opts SizeKeyOpts) string {
	return hashKey("size", docHash, opts)
}

// RenderKey returns "render:<format>:<hash of report and options>".
func (DefaultKeyer) RenderKey(reportHash string, opts RenderKeyOpts) string {
	return hashKey(fmt.Sprintf("render:%s", opts.Format), reportHash, opts)
}

var _ Keyer = DefaultKeyer{}
