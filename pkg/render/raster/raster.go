// Package raster turns DOT sources into PNG files.
//
// [Renderer] is the narrow seam between building a diagram and drawing it.
// [Engine] runs Graphviz in-process through go-graphviz, [Exec] shells out
// to a system dot binary, and [Cached] skips either when the same source
// was rendered before. Tests substitute a [Func].
package raster

import (
	"context"
	"os"

	"github.com/matzehuels/masterymap/pkg/errors"
)

// Renderer rasterises a DOT source into a PNG file at path. On error no
// file is left at path.
type Renderer interface {
	Render(ctx context.Context, src, path string) error
}

// Func adapts a function to a Renderer.
type Func func(ctx context.Context, src, path string) error

// Render calls f.
func (f Func) Render(ctx context.Context, src, path string) error { return f(ctx, src, path) }

// Engine names accepted by [New].
const (
	EngineWASM = "wasm"
	EngineExec = "exec"
)

// New returns the renderer for an engine name.
func New(engine string) (Renderer, error) {
	switch engine {
	case "", EngineWASM:
		return &Engine{}, nil
	case EngineExec:
		return &Exec{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown render engine %q (must be %s or %s)", engine, EngineWASM, EngineExec)
}

// writeFile writes data to path, removing any partial file on failure.
func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}
