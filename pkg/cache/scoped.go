package cache

// ScopedKeyer wraps a Keyer with a prefix, so that several deployments or
// tenants can share one Redis instance without seeing each other's entries.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "boxsize:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SizeKey generates a prefixed key for report caching.
func (k *ScopedKeyer) SizeKey(docHash string, opts SizeKeyOpts) string {
	return k.prefix + k.inner.SizeKey(docHash, opts)
}

// RenderKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) RenderKey(reportHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(reportHash, opts)
}
