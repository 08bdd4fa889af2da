package raster

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/masterymap/pkg/cache"
	"github.com/matzehuels/masterymap/pkg/errors"
	"github.com/matzehuels/masterymap/pkg/observability"
)

const cacheKeyType = "render"

// Cached serves renders from a cache and stores fresh ones into it. Cache
// failures are logged and never fail a render.
type Cached struct {
	Inner  Renderer
	Cache  cache.Cache
	Keyer  cache.Keyer
	Engine string
	Logger *log.Logger
}

// NewCached wraps inner. A nil keyer uses the default one.
func NewCached(inner Renderer, c cache.Cache, k cache.Keyer, engine string, logger *log.Logger) *Cached {
	if k == nil {
		k = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Cached{Inner: inner, Cache: c, Keyer: k, Engine: engine, Logger: logger}
}

// Render copies a cached image to path, or renders and caches it.
func (c *Cached) Render(ctx context.Context, src, path string) error {
	key := c.Keyer.RenderKey(src, cache.RenderKeyOpts{Engine: c.Engine, Format: "png"})

	data, hit, err := c.Cache.Get(ctx, key)
	if err != nil {
		c.Logger.Warn("cache read failed", "error", err)
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, cacheKeyType)
		if err := writeFile(path, data); err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "write %s", path)
		}
		c.Logger.Debug("render cache hit", "path", path)
		return nil
	}
	observability.Cache().OnCacheMiss(ctx, cacheKeyType)

	if err := c.Inner.Render(ctx, src, path); err != nil {
		return err
	}

	data, err = os.ReadFile(path)
	if err != nil {
		c.Logger.Warn("cache store skipped", "path", path, "error", err)
		return nil
	}
	if err := c.Cache.Set(ctx, key, data, 0); err != nil {
		c.Logger.Warn("cache write failed", "error", err)
		return nil
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
	return nil
}

var _ Renderer = (*Cached)(nil)
