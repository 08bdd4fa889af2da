package cli

import (
	"context"
	"sync/atomic"

	"github.com/matzehuels/masterymap/pkg/observability"
)

// stageHooks mirrors pipeline progress into the spinner.
type stageHooks struct {
	observability.NoopPipelineHooks
	spinner *Spinner
}

func (h *stageHooks) OnStageStart(_ context.Context, stage string) {
	h.spinner.Update("Rendering " + stage + "...")
}

// cacheCounter counts render cache hits for the summary line.
type cacheCounter struct {
	observability.NoopCacheHooks
	hits atomic.Int64
}

func (c *cacheCounter) OnCacheHit(context.Context, string) {
	c.hits.Add(1)
}

// installHooks registers the CLI's hooks and returns a function that
// restores the defaults.
func installHooks(s *Spinner, cc *cacheCounter) func() {
	observability.SetPipelineHooks(&stageHooks{spinner: s})
	observability.SetCacheHooks(cc)
	return observability.Reset
}
