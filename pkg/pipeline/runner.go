package pipeline

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/masterymap/pkg/composite"
	"github.com/matzehuels/masterymap/pkg/errors"
	"github.com/matzehuels/masterymap/pkg/knowledge"
	"github.com/matzehuels/masterymap/pkg/observability"
	"github.com/matzehuels/masterymap/pkg/profile"
	"github.com/matzehuels/masterymap/pkg/render/dot"
	"github.com/matzehuels/masterymap/pkg/render/raster"
)

// Runner executes the pipeline with a renderer.
//
// A Runner holds no per-run state; one Runner may serve several runs as
// long as they write to different output directories.
type Runner struct {
	Renderer raster.Renderer
	Logger   *log.Logger
}

// NewRunner creates a runner. A nil renderer uses the in-process engine.
func NewRunner(r raster.Renderer, logger *log.Logger) *Runner {
	if r == nil {
		r = &raster.Engine{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Renderer: r, Logger: logger}
}

// Execute renders reg with the profile p. It returns an error only when the
// options are invalid; stage failures are recorded in the result.
func (r *Runner) Execute(ctx context.Context, p *profile.Profile, reg *knowledge.Registry, opts Options) (*Result, error) {
	opts.SetDefaults(p.Output)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", opts.OutputDir)
	}

	start := time.Now()
	res := &Result{
		RunID:    uuid.NewString(),
		Profile:  p.Name,
		Warnings: reg.Lint(),
		Stats: Stats{
			Topics:    reg.Len(),
			Edges:     len(reg.Edges()),
			Divisions: len(reg.Divisions()),
			Levels:    reg.CountByLevel(),
		},
	}
	logger := r.Logger.With("run", res.RunID[:8])
	for _, w := range res.Warnings {
		logger.Warn("edge list", "issue", w.Kind, "edge", w.Edge.String())
	}

	final := opts.OutputPath()

	if !p.Legend {
		diagram := r.renderStage(ctx, logger, StageDiagram, dot.Diagram(reg, p), final)
		res.Stages = append(res.Stages,
			diagram,
			r.skip(ctx, logger, StageLegend, "profile has no legend"),
			r.skip(ctx, logger, StageComposite, "profile has no legend"))
		res.Output = diagram.Artifact
		res.Stats.Duration = time.Since(start)
		return res, nil
	}

	diagram := r.renderStage(ctx, logger, StageDiagram, dot.Diagram(reg, p), filepath.Join(opts.OutputDir, DiagramFile))
	legend := r.renderStage(ctx, logger, StageLegend, dot.Legend(p), filepath.Join(opts.OutputDir, LegendFile))
	res.Stages = append(res.Stages, diagram, legend)

	pair, ok := pairOf(diagram, legend)
	if !ok {
		res.Stages = append(res.Stages, r.skip(ctx, logger, StageComposite, "diagram or legend missing"))
		res.Stats.Duration = time.Since(start)
		return res, nil
	}

	stitched, cleanup := r.compositeStage(ctx, logger, pair, final, opts)
	res.Stages = append(res.Stages, stitched)
	res.Output = stitched.Artifact
	res.Cleanup = cleanup
	res.Stats.Duration = time.Since(start)
	return res, nil
}

// renderPair holds the two images a composite needs. It can only be built
// by pairOf, so a composite never starts with an image missing.
type renderPair struct {
	diagram Artifact
	legend  Artifact
}

func pairOf(diagram, legend StageResult) (renderPair, bool) {
	if !diagram.OK() || !legend.OK() {
		return renderPair{}, false
	}
	return renderPair{diagram: *diagram.Artifact, legend: *legend.Artifact}, true
}

func (r *Runner) renderStage(ctx context.Context, logger *log.Logger, stage Stage, src, path string) StageResult {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, string(stage))
	start := time.Now()

	art, err := r.render(ctx, src, path)
	sr := StageResult{Stage: stage, Artifact: art, Duration: time.Since(start)}
	if err != nil {
		sr.Err = fmt.Errorf("%s: %w", stage, err)
		logger.Error("stage failed", "stage", stage, "error", err)
	} else {
		logger.Info("rendered "+string(stage), "path", art.Path, "size", fmt.Sprintf("%dx%d", art.Width, art.Height), "duration", sr.Duration.Round(time.Millisecond))
	}
	hooks.OnStageComplete(ctx, string(stage), sr.Duration, sr.Err)
	return sr
}

// render writes the image for src to a temporary file next to path and
// renames it over path only once it is a readable PNG. A failed render
// leaves any existing file at path untouched.
func (r *Runner) render(ctx context.Context, src, path string) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tmp, err := tempSibling(path)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp)

	if err := r.Renderer.Render(ctx, src, tmp); err != nil {
		return nil, err
	}
	art, err := inspect(tmp)
	if err != nil {
		return nil, err
	}
	if err := os.Rename(tmp, path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "move image to %s", path)
	}
	art.Path = path
	return art, nil
}

// tempSibling reserves an empty file in path's directory with the same
// extension.
func tempSibling(path string) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*"+filepath.Ext(path))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "create temporary file for %s", path)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}

func (r *Runner) compositeStage(ctx context.Context, logger *log.Logger, pair renderPair, path string, opts Options) (StageResult, error) {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, string(StageComposite))
	start := time.Now()

	sr := StageResult{Stage: StageComposite}
	var cleanup error

	out, err := composite.Compose(ctx, pair.diagram.Path, pair.legend.Path, path, opts.compositeOptions())
	sr.Duration = time.Since(start)
	if err != nil {
		sr.Err = fmt.Errorf("%s: %w", StageComposite, err)
		logger.Error("stage failed", "stage", StageComposite, "error", err,
			"kept", []string{pair.diagram.Path, pair.legend.Path})
	} else {
		sr.Artifact = &Artifact{Path: out.Path, Width: out.Width, Height: out.Height}
		cleanup = out.Cleanup
		if cleanup != nil {
			logger.Warn("could not delete intermediates", "error", cleanup)
		}
		logger.Info("stitched map", "path", out.Path, "size", fmt.Sprintf("%dx%d", out.Width, out.Height), "duration", sr.Duration.Round(time.Millisecond))
	}
	hooks.OnStageComplete(ctx, string(StageComposite), sr.Duration, sr.Err)
	return sr, cleanup
}

func (r *Runner) skip(ctx context.Context, logger *log.Logger, stage Stage, reason string) StageResult {
	logger.Debug("stage skipped", "stage", stage, "reason", reason)
	observability.Pipeline().OnStageSkipped(ctx, string(stage), reason)
	return StageResult{Stage: stage, Skipped: reason}
}

// inspect reads the dimensions of the PNG at path.
func inspect(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMissingArtifact, err, "open %s", path)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "%s is not a PNG", path)
	}
	return &Artifact{Path: path, Width: cfg.Width, Height: cfg.Height}, nil
}
