package cache

// ScopedKeyer prefixes every key of an inner Keyer. The CLI scopes keys by
// build version so that an upgrade, which may change how sources are
// rasterised, never serves images produced by an older binary.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// RenderKey returns the inner key with the prefix prepended.
func (k *ScopedKeyer) RenderKey(dot string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(dot, opts)
}
