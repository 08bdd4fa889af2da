// Package pipeline renders a knowledge map from a profile.
//
// A run has three stages:
//
//  1. Diagram: build the clustered prerequisite graph and rasterise it.
//  2. Legend: build the legend footer and rasterise it.
//  3. Composite: stack the diagram over the legend into the final image
//     and delete both intermediates.
//
// Diagram and legend are independent; a failure in one does not stop the
// other. The composite runs only when both produced an image. Profiles
// without a legend render the diagram straight to the final path and skip
// the other two stages.
//
// Stage failures are reported in [Result] rather than returned, so callers
// decide whether a partial run is an error:
//
//	runner := pipeline.NewRunner(renderer, logger)
//	res, err := runner.Execute(ctx, prof, reg, pipeline.Options{})
//	if err != nil {
//	    return err // invalid options
//	}
//	if err := res.Err(); err != nil {
//	    logger.Warn("incomplete", "error", err)
//	}
package pipeline

import (
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-multierror"

	"github.com/matzehuels/masterymap/pkg/composite"
	"github.com/matzehuels/masterymap/pkg/errors"
	"github.com/matzehuels/masterymap/pkg/knowledge"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultOutput is the final image name when neither the options nor
	// the profile name one.
	DefaultOutput = "student_knowledge_map.png"

	// DiagramFile and LegendFile are the intermediate image names, written
	// next to the final image.
	DiagramFile = "knowledge_graph_part.png"
	LegendFile  = "footer_part_aligned.png"
)

// Stage names a pipeline step.
type Stage string

const (
	StageDiagram   Stage = "diagram"
	StageLegend    Stage = "legend"
	StageComposite Stage = "composite"
)

// =============================================================================
// Options
// =============================================================================

// Options configures one run. Zero values take the defaults noted.
type Options struct {
	// OutputDir holds the final and intermediate images. Default ".".
	OutputDir string
	// Output is the final image name or path, relative to OutputDir.
	// Default: the profile's output, then DefaultOutput.
	Output string

	// Gap between diagram and legend. Default composite.DefaultGap.
	Gap      int
	Padding  int
	MaxWidth int

	// KeepIntermediates leaves the diagram and legend images on disk after
	// a successful composite.
	KeepIntermediates bool

	Logger *log.Logger
}

// SetDefaults fills unset fields. profileOutput is the output named by the
// active profile, if any.
func (o *Options) SetDefaults(profileOutput string) {
	if o.OutputDir == "" {
		o.OutputDir = "."
	}
	if o.Output == "" {
		o.Output = profileOutput
	}
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if o.Gap == 0 {
		o.Gap = composite.DefaultGap
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the output name and compositing sizes.
func (o *Options) Validate() error {
	if err := errors.ValidateOutputPath(o.Output); err != nil {
		return err
	}
	final := filepath.Base(o.Output)
	if final == DiagramFile || final == LegendFile {
		return errors.New(errors.ErrCodeInvalidPath, "output %q collides with an intermediate image", o.Output)
	}
	return o.compositeOptions().Validate()
}

func (o *Options) compositeOptions() composite.Options {
	return composite.Options{
		Gap:        o.Gap,
		Padding:    o.Padding,
		MaxWidth:   o.MaxWidth,
		KeepInputs: o.KeepIntermediates,
	}
}

// OutputPath returns the final image path.
func (o *Options) OutputPath() string {
	if filepath.IsAbs(o.Output) {
		return o.Output
	}
	return filepath.Join(o.OutputDir, o.Output)
}

// =============================================================================
// Results
// =============================================================================

// Artifact is an image written by a stage.
type Artifact struct {
	Path   string
	Width  int
	Height int
}

// StageResult is the outcome of one stage. Exactly one of Artifact, Err
// and Skipped is set.
type StageResult struct {
	Stage    Stage
	Artifact *Artifact
	Err      error
	// Skipped is the reason the stage did not run.
	Skipped  string
	Duration time.Duration
}

// OK reports whether the stage produced its artifact.
func (s StageResult) OK() bool { return s.Artifact != nil }

// Failed reports whether the stage ran and failed.
func (s StageResult) Failed() bool { return s.Err != nil }

// Result contains the outcome of a run.
type Result struct {
	// RunID identifies the run in logs.
	RunID   string
	Profile string

	// Output is the final image, or nil when the run did not produce one.
	Output *Artifact

	// Stages lists every stage in execution order, including skipped ones.
	Stages []StageResult

	// Warnings are non-fatal findings about the edge list.
	Warnings []knowledge.Warning

	// Cleanup holds a failure to delete intermediates after a successful
	// composite.
	Cleanup error

	Stats Stats
}

// Stats contains sizes and timings of a run.
type Stats struct {
	Topics    int
	Edges     int
	Divisions int
	Levels    map[knowledge.Level]int
	Duration  time.Duration
}

// Stage returns the result of the named stage.
func (r *Result) Stage(s Stage) (StageResult, bool) {
	for _, sr := range r.Stages {
		if sr.Stage == s {
			return sr, true
		}
	}
	return StageResult{}, false
}

// Err returns the failures of all failed stages combined, or nil when no
// stage failed.
func (r *Result) Err() error {
	var result *multierror.Error
	for _, sr := range r.Stages {
		if sr.Err != nil {
			result = multierror.Append(result, sr.Err)
		}
	}
	return result.ErrorOrNil()
}
