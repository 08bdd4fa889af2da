package raster

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/matzehuels/masterymap/pkg/errors"
)

// Exec renders by running the Graphviz dot binary. Use it when the system
// Graphviz has fonts or plugins the bundled build lacks.
type Exec struct {
	// Binary is the program to run. Empty means "dot" on PATH.
	Binary string
}

func (e *Exec) binary() string {
	if e.Binary == "" {
		return "dot"
	}
	return e.Binary
}

// Render pipes src to dot -Tpng and writes the result to path.
func (e *Exec) Render(ctx context.Context, src, path string) error {
	bin, err := exec.LookPath(e.binary())
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err,
			"%s not found; install Graphviz:\n  macOS:  brew install graphviz\n  Linux:  apt install graphviz", e.binary())
	}

	cmd := exec.CommandContext(ctx, bin, "-Tpng", "-o", path)
	cmd.Stdin = strings.NewReader(src)

	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		_ = os.Remove(path)
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "%s: %s", e.binary(), strings.TrimSpace(errBuf.String()))
	}
	return nil
}

var _ Renderer = (*Exec)(nil)
