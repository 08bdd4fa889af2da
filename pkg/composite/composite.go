// Package composite stitches the diagram and legend images into the final
// knowledge map.
//
// The diagram sits on top, the legend underneath, separated by a vertical
// gap. Each is centred horizontally on a white canvas as wide as the wider
// of the two. Transparent pixels are flattened onto the white background.
package composite

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/image/draw"

	"github.com/matzehuels/masterymap/pkg/errors"
)

// DefaultGap is the vertical space between diagram and legend, in pixels.
const DefaultGap = 40

// Options controls the stitched canvas.
type Options struct {
	// Gap is the vertical space between the two images.
	Gap int
	// Padding is a uniform white border around the canvas.
	Padding int
	// MaxWidth downscales the final canvas, keeping its aspect ratio, when
	// it is wider. Zero disables scaling.
	MaxWidth int
	// KeepInputs leaves both input files in place after a successful save.
	KeepInputs bool
}

// Validate rejects negative sizes.
func (o Options) Validate() error {
	if o.Gap < 0 || o.Padding < 0 || o.MaxWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "gap, padding and max width must not be negative")
	}
	return nil
}

// Placement is the computed geometry of a stitch, in top-left image
// coordinates.
type Placement struct {
	Size   image.Point
	Top    image.Point
	Bottom image.Point
}

// Layout places a top image of size top over a bottom image of size bottom.
//
// The canvas is max(top.X, bottom.X) wide and top.Y + gap + bottom.Y high,
// plus pad on every side. The bottom image touches the bottom edge of the
// padded area; each image is centred horizontally, rounding down.
func Layout(top, bottom image.Point, gap, pad int) Placement {
	w := max(top.X, bottom.X)
	h := top.Y + gap + bottom.Y
	return Placement{
		Size:   image.Pt(w+2*pad, h+2*pad),
		Top:    image.Pt(pad+(w-top.X)/2, pad),
		Bottom: image.Pt(pad+(w-bottom.X)/2, pad+top.Y+gap),
	}
}

// Stack draws top over bottom on a white canvas.
func Stack(top, bottom image.Image, opts Options) *image.NRGBA {
	pl := Layout(top.Bounds().Size(), bottom.Bounds().Size(), opts.Gap, opts.Padding)
	canvas := imaging.New(pl.Size.X, pl.Size.Y, color.White)
	canvas = imaging.Overlay(canvas, top, pl.Top, 1.0)
	canvas = imaging.Overlay(canvas, bottom, pl.Bottom, 1.0)
	return Fit(canvas, opts.MaxWidth)
}

// Fit scales img down to maxWidth, preserving aspect ratio. It returns img
// unchanged when maxWidth is zero or img already fits.
func Fit(img *image.NRGBA, maxWidth int) *image.NRGBA {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	h := max(1, b.Dy()*maxWidth/b.Dx())
	dst := image.NewNRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Result describes a finished composite.
type Result struct {
	Path   string
	Width  int
	Height int
	// Cleanup holds any failure to delete the input files. The composite
	// itself succeeded.
	Cleanup error
}

// save encodes img to a temporary file beside path, then renames it over
// path, so a failed save never clobbers an existing image.
func save(img image.Image, path string) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*"+filepath.Ext(path))
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)
	if err := f.Close(); err != nil {
		return err
	}
	if err := imaging.Save(img, tmp); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Compose stitches the PNG at topPath over the PNG at bottomPath, writes
// the result to outPath, then deletes both inputs. On any failure before
// the output is written the inputs are left in place and any earlier file
// at outPath is kept.
func Compose(ctx context.Context, topPath, bottomPath, outPath string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	top, err := imaging.Open(topPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCompositeFailed, err, "open %s", topPath)
	}
	bottom, err := imaging.Open(bottomPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCompositeFailed, err, "open %s", bottomPath)
	}

	out := Stack(top, bottom, opts)
	if err := save(out, outPath); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCompositeFailed, err, "save %s", outPath)
	}

	res := &Result{Path: outPath, Width: out.Bounds().Dx(), Height: out.Bounds().Dy()}
	if opts.KeepInputs {
		return res, nil
	}
	var cleanup *multierror.Error
	for _, p := range []string{topPath, bottomPath} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			cleanup = multierror.Append(cleanup, err)
		}
	}
	res.Cleanup = cleanup.ErrorOrNil()
	return res, nil
}
