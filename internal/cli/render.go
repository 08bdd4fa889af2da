package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masterymap/pkg/composite"
	"github.com/matzehuels/masterymap/pkg/errors"
	"github.com/matzehuels/masterymap/pkg/pipeline"
	"github.com/matzehuels/masterymap/pkg/render/raster"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	profile   profileFlags
	output    string // final image name, relative to outDir
	outDir    string // directory for final and intermediate images
	engine    string // "wasm" or "exec"
	gap       int    // vertical gap between diagram and legend
	pad       int    // white border around the final image
	maxWidth  int    // downscale the final image to this width
	keepParts bool   // keep intermediate images after stitching
	noCache   bool   // bypass the rendered-image cache
	strict    bool   // exit non-zero when a stage fails
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{gap: composite.DefaultGap}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a knowledge map PNG",
		Long: `Render the knowledge map of a profile.

The diagram and legend are rendered to knowledge_graph_part.png and
footer_part_aligned.png, stitched into the final image, and deleted. When a
stage fails the other stages still run and whatever was produced is kept.`,
		Example: `  masterymap render
  masterymap render -p classic -o alex.png
  masterymap render -f sam.toml --mapping topics.csv --engine exec`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), &opts)
		},
	}

	opts.profile.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "final image name (default: the profile's output)")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", ".", "directory for the final and intermediate images")
	cmd.Flags().StringVar(&opts.engine, "engine", raster.EngineWASM, "graphviz engine: wasm (bundled) or exec (system dot)")
	cmd.Flags().IntVar(&opts.gap, "gap", opts.gap, "vertical gap between diagram and legend, in pixels (at least 1)")
	cmd.Flags().IntVar(&opts.pad, "pad", 0, "white border around the final image, in pixels")
	cmd.Flags().IntVar(&opts.maxWidth, "max-width", 0, "downscale the final image to at most this width (0 = off)")
	cmd.Flags().BoolVar(&opts.keepParts, "keep-parts", false, "keep the diagram and legend images")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the rendered-image cache")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit with an error when any stage fails")
	_ = cmd.RegisterFlagCompletionFunc("engine", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{raster.EngineWASM, raster.EngineExec}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts *renderOpts) error {
	// pipeline.Options treats a zero gap as unset.
	if opts.gap < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "--gap must be at least 1 pixel, got %d", opts.gap)
	}

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	prof, err := opts.profile.load()
	if err != nil {
		return err
	}
	reg, err := pipeline.Prepare(prof, opts.profile.mapping)
	if err != nil {
		return err
	}
	renderer, err := c.newRenderer(opts.engine, opts.noCache)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Rendering "+prof.Name+"...")
	counter := &cacheCounter{}
	restore := installHooks(spinner, counter)
	spinner.Start()

	res, err := pipeline.NewRunner(renderer, logger).Execute(ctx, prof, reg, pipeline.Options{
		OutputDir:         opts.outDir,
		Output:            opts.output,
		Gap:               opts.gap,
		Padding:           opts.pad,
		MaxWidth:          opts.maxWidth,
		KeepIntermediates: opts.keepParts,
		Logger:            logger,
	})
	spinner.Stop()
	restore()

	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	printResult(res, int(counter.hits.Load()))
	prog.done(fmt.Sprintf("Rendered %s", prof.Name))

	if stageErr := res.Err(); stageErr != nil {
		if opts.strict {
			return errors.Wrap(errors.ErrCodeRenderFailed, stageErr, "rendering incomplete")
		}
		printDetail("Re-run with --strict to fail on incomplete renders")
	}
	return nil
}

// printResult prints one line per stage, the edge-list warnings and a
// summary.
func printResult(res *pipeline.Result, cacheHits int) {
	for _, sr := range res.Stages {
		switch {
		case sr.OK():
			printSuccess("%s %s", sr.Stage, StyleDim.Render(fmt.Sprintf("%dx%d", sr.Artifact.Width, sr.Artifact.Height)))
		case sr.Failed():
			printError("%s failed", sr.Stage)
			printDetail("%v", sr.Err)
		default:
			printSkipped("%s skipped: %s", sr.Stage, sr.Skipped)
		}
	}
	for _, w := range res.Warnings {
		printWarning("%s", w)
	}
	printStats(res.Stats.Topics, res.Stats.Divisions, res.Stats.Edges, cacheHits)

	if res.Output != nil {
		printFile(res.Output.Path)
	}
	if res.Cleanup != nil {
		printWarning("could not delete intermediate images: %v", res.Cleanup)
	}
}
