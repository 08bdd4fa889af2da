package raster

import (
	"bytes"
	"context"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/masterymap/pkg/errors"
)

// Engine renders with the WebAssembly build of Graphviz bundled by
// go-graphviz. It needs no system packages.
type Engine struct{}

// Render parses src and writes the PNG to path.
func (e *Engine) Render(ctx context.Context, src, path string) error {
	data, err := e.PNG(ctx, src)
	if err != nil {
		return err
	}
	if err := writeFile(path, data); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "write %s", path)
	}
	return nil
}

// PNG returns the encoded image for src.
func (e *Engine) PNG(ctx context.Context, src string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(src))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render")
	}
	if buf.Len() == 0 {
		return nil, errors.New(errors.ErrCodeRenderFailed, "render: graphviz produced no output")
	}
	return buf.Bytes(), nil
}

var _ Renderer = (*Engine)(nil)
