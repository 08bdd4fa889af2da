package composite

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/masterymap/pkg/errors"
)

func TestLayout(t *testing.T) {
	tests := []struct {
		name        string
		top, bottom image.Point
		gap, pad    int
		want        Placement
	}{
		{
			name: "equal widths",
			top:  image.Pt(800, 600), bottom: image.Pt(800, 200), gap: 40,
			want: Placement{Size: image.Pt(800, 840), Top: image.Pt(0, 0), Bottom: image.Pt(0, 640)},
		},
		{
			name: "wider legend",
			top:  image.Pt(600, 400), bottom: image.Pt(800, 100), gap: 40,
			want: Placement{Size: image.Pt(800, 540), Top: image.Pt(100, 0), Bottom: image.Pt(0, 440)},
		},
		{
			name: "wider diagram, odd difference",
			top:  image.Pt(801, 10), bottom: image.Pt(200, 10), gap: 0,
			want: Placement{Size: image.Pt(801, 20), Top: image.Pt(0, 0), Bottom: image.Pt(300, 10)},
		},
		{
			name: "padding",
			top:  image.Pt(100, 100), bottom: image.Pt(50, 20), gap: 10, pad: 5,
			want: Placement{Size: image.Pt(110, 140), Top: image.Pt(5, 5), Bottom: image.Pt(30, 115)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Layout(tt.top, tt.bottom, tt.gap, tt.pad)
			if got != tt.want {
				t.Errorf("Layout() = %+v, want %+v", got, tt.want)
			}
			// The bottom image always ends at the padded bottom edge.
			if end := got.Bottom.Y + tt.bottom.Y + tt.pad; end != got.Size.Y {
				t.Errorf("bottom image ends at %d, canvas height %d", end, got.Size.Y)
			}
		})
	}
}

func solid(w, h int, c color.Color) *image.NRGBA {
	return imaging.New(w, h, c)
}

func TestStack(t *testing.T) {
	red := color.NRGBA{255, 0, 0, 255}
	blue := color.NRGBA{0, 0, 255, 255}
	out := Stack(solid(60, 40, red), solid(100, 20, blue), Options{Gap: DefaultGap})

	if b := out.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Fatalf("canvas = %dx%d, want 100x100", b.Dx(), b.Dy())
	}
	checks := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, color.NRGBA{255, 255, 255, 255}},  // left of the centred diagram
		{20, 0, red},                             // diagram starts at x=20
		{79, 39, red},                            // diagram bottom-right
		{80, 10, color.NRGBA{255, 255, 255, 255}}, // right of the diagram
		{50, 60, color.NRGBA{255, 255, 255, 255}}, // inside the gap
		{0, 80, blue},                            // legend spans the width
		{99, 99, blue},
	}
	for _, c := range checks {
		if got := out.NRGBAAt(c.x, c.y); got != c.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestStack_FlattensTransparency(t *testing.T) {
	transparent := solid(10, 10, color.NRGBA{0, 0, 0, 0})
	out := Stack(transparent, transparent, Options{})
	if got := out.NRGBAAt(5, 5); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("transparent pixel = %v, want white", got)
	}
}

func TestFit(t *testing.T) {
	img := solid(400, 200, color.White)
	if got := Fit(img, 0); got != img {
		t.Error("Fit(0) should return the input")
	}
	if got := Fit(img, 500); got != img {
		t.Error("Fit() should not upscale")
	}
	got := Fit(img, 100)
	if b := got.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("Fit(100) = %dx%d, want 100x50", b.Dx(), b.Dy())
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := imaging.Save(solid(w, h, color.Black), path); err != nil {
		t.Fatal(err)
	}
}

func TestCompose(t *testing.T) {
	dir := t.TempDir()
	top := filepath.Join(dir, "knowledge_graph_part.png")
	bottom := filepath.Join(dir, "footer_part_aligned.png")
	out := filepath.Join(dir, "map.png")
	writePNG(t, top, 800, 600)
	writePNG(t, bottom, 800, 200)

	res, err := Compose(context.Background(), top, bottom, out, Options{Gap: DefaultGap})
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if res.Width != 800 || res.Height != 840 {
		t.Errorf("result = %dx%d, want 800x840", res.Width, res.Height)
	}
	if res.Cleanup != nil {
		t.Errorf("Cleanup = %v", res.Cleanup)
	}

	img, err := imaging.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	if s := img.Bounds().Size(); s != image.Pt(800, 840) {
		t.Errorf("saved size = %v", s)
	}
	for _, p := range []string{top, bottom} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("%s not deleted after success", filepath.Base(p))
		}
	}
}

func TestCompose_ReplacesExistingOutput(t *testing.T) {
	dir := t.TempDir()
	top := filepath.Join(dir, "top.png")
	bottom := filepath.Join(dir, "bottom.png")
	out := filepath.Join(dir, "map.png")
	writePNG(t, top, 20, 10)
	writePNG(t, bottom, 20, 10)
	if err := os.WriteFile(out, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Compose(context.Background(), top, bottom, out, Options{Gap: 5}); err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	img, err := imaging.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	if s := img.Bounds().Size(); s != image.Pt(20, 25) {
		t.Errorf("saved size = %v, want 20x25", s)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory holds %v, want only map.png", names)
	}
}

func TestCompose_CorruptKeepsExistingOutput(t *testing.T) {
	dir := t.TempDir()
	top := filepath.Join(dir, "top.png")
	bottom := filepath.Join(dir, "bottom.png")
	out := filepath.Join(dir, "map.png")
	writePNG(t, top, 10, 10)
	if err := os.WriteFile(bottom, []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(out, []byte("previous"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Compose(context.Background(), top, bottom, out, Options{}); err == nil {
		t.Fatal("Compose() should fail")
	}
	if got, _ := os.ReadFile(out); string(got) != "previous" {
		t.Errorf("existing output changed to %q", got)
	}
}

func TestCompose_MissingInput(t *testing.T) {
	dir := t.TempDir()
	top := filepath.Join(dir, "top.png")
	out := filepath.Join(dir, "map.png")
	writePNG(t, top, 10, 10)

	_, err := Compose(context.Background(), top, filepath.Join(dir, "absent.png"), out, Options{})
	if !errors.Is(err, errors.ErrCodeCompositeFailed) {
		t.Fatalf("Compose() error = %v, want %s", err, errors.ErrCodeCompositeFailed)
	}
	if _, err := os.Stat(top); err != nil {
		t.Error("input deleted after failure")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output written after failure")
	}
}

func TestCompose_Corrupt(t *testing.T) {
	dir := t.TempDir()
	top := filepath.Join(dir, "top.png")
	bottom := filepath.Join(dir, "bottom.png")
	writePNG(t, top, 10, 10)
	if err := os.WriteFile(bottom, []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Compose(context.Background(), top, bottom, filepath.Join(dir, "map.png"), Options{}); err == nil {
		t.Fatal("Compose() should fail on a corrupt input")
	}
	for _, p := range []string{top, bottom} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s deleted after failure", filepath.Base(p))
		}
	}
}

func TestCompose_Options(t *testing.T) {
	dir := t.TempDir()
	if _, err := Compose(context.Background(), "a", "b", filepath.Join(dir, "c.png"), Options{Gap: -1}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative gap error = %v", err)
	}

	top := filepath.Join(dir, "top.png")
	bottom := filepath.Join(dir, "bottom.png")
	writePNG(t, top, 300, 100)
	writePNG(t, bottom, 200, 50)
	res, err := Compose(context.Background(), top, bottom, filepath.Join(dir, "map.png"),
		Options{Gap: 50, Padding: 25, MaxWidth: 175})
	if err != nil {
		t.Fatal(err)
	}
	// 350x250 padded canvas halved to fit 175.
	if res.Width != 175 || res.Height != 125 {
		t.Errorf("result = %dx%d, want 175x125", res.Width, res.Height)
	}
}

func TestCompose_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Compose(ctx, "a", "b", "c.png", Options{}); err != context.Canceled {
		t.Errorf("Compose() error = %v, want context.Canceled", err)
	}
}

func TestCompose_KeepInputs(t *testing.T) {
	dir := t.TempDir()
	top := filepath.Join(dir, "top.png")
	bottom := filepath.Join(dir, "bottom.png")
	writePNG(t, top, 10, 10)
	writePNG(t, bottom, 10, 10)
	if _, err := Compose(context.Background(), top, bottom, filepath.Join(dir, "map.png"), Options{KeepInputs: true}); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{top, bottom} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s deleted despite KeepInputs", filepath.Base(p))
		}
	}
}
