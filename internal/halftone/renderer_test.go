package halftone

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/dotcam/dotcam/internal/capture"
)

func uniformFrame(w, h int, c color.RGBA) *capture.Frame {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return &capture.Frame{Image: img, Timestamp: time.Now()}
}

func render(t *testing.T, frame *capture.Frame, p Params) *image.RGBA {
	t.Helper()
	r := NewRenderer(NewParamStore(p))
	r.Render(frame)
	out := r.Output()
	if out == nil {
		t.Fatal("no output after render")
	}
	return out
}

func wantWhite(t *testing.T, img *image.RGBA, x, y int) {
	t.Helper()
	if c := img.RGBAAt(x, y); c.R < 200 || c.G < 200 || c.B < 200 {
		t.Errorf("pixel (%d,%d) = %v, want white", x, y, c)
	}
}

func wantBlack(t *testing.T, img *image.RGBA, x, y int) {
	t.Helper()
	if c := img.RGBAAt(x, y); c.R > 30 || c.G > 30 || c.B > 30 {
		t.Errorf("pixel (%d,%d) = %v, want black", x, y, c)
	}
}

func TestDiskRadius(t *testing.T) {
	cases := []struct {
		brightness, circleSize, want float64
	}{
		{0, 10, 0},
		{255, 30, 15},
		{255, 10, 5},
		{128, 10, 128.0 / 255 * 5},
		{100, 0, 0},
	}
	for _, c := range cases {
		if got := diskRadius(c.brightness, c.circleSize); got != c.want {
			t.Errorf("diskRadius(%v, %v) = %v, want %v", c.brightness, c.circleSize, got, c.want)
		}
	}
}

func TestGridCount(t *testing.T) {
	cases := []struct {
		dim, spacing, want int
	}{
		{640, 10, 64},
		{480, 10, 48},
		{7, 3, 3},
		{10, 10, 1},
		{5, 10, 1},  // spacing beyond the dimension still samples x=0
		{100, 1, 100},
		{100, 0, 100}, // non-positive spacing is clamped to 1
	}
	for _, c := range cases {
		if got := gridCount(c.dim, c.spacing); got != c.want {
			t.Errorf("gridCount(%d, %d) = %d, want %d", c.dim, c.spacing, got, c.want)
		}
	}
}

func TestUniformBrightnessDisks(t *testing.T) {
	// Mid-gray: every disk gets radius (128/255)*(10/2) ~ 2.5.
	frame := uniformFrame(100, 100, color.RGBA{128, 128, 128, 255})
	out := render(t, frame, Params{CircleSize: 10, Spacing: 20})

	for _, pt := range []image.Point{{20, 20}, {40, 40}, {80, 60}} {
		wantWhite(t, out, pt.X, pt.Y)
	}
	// Between grid points the background shows through.
	wantBlack(t, out, 30, 30)
	wantBlack(t, out, 46, 46)
}

func TestFullBrightnessRadius(t *testing.T) {
	// Brightness 255 at circle size 30 gives radius exactly 15.
	frame := uniformFrame(120, 120, color.RGBA{255, 255, 255, 255})
	out := render(t, frame, Params{CircleSize: 30, Spacing: 40})

	wantWhite(t, out, 40, 40)
	wantWhite(t, out, 40, 52) // still inside the disk
	wantBlack(t, out, 60, 40) // 20px from the nearest centers
}

func TestZeroBrightnessIsBlankBlack(t *testing.T) {
	frame := uniformFrame(64, 64, color.RGBA{0, 0, 0, 255})
	out := render(t, frame, Params{CircleSize: 30, Spacing: 8})

	for _, pt := range []image.Point{{0, 0}, {8, 8}, {32, 32}, {63, 63}} {
		wantBlack(t, out, pt.X, pt.Y)
	}
}

func TestZeroCircleSizeIsBlankBlack(t *testing.T) {
	frame := uniformFrame(64, 64, color.RGBA{255, 255, 255, 255})
	out := render(t, frame, Params{CircleSize: 0, Spacing: 8})

	for _, pt := range []image.Point{{8, 8}, {16, 24}, {40, 40}} {
		wantBlack(t, out, pt.X, pt.Y)
	}
}

func TestCanvasTracksFrameDimensions(t *testing.T) {
	r := NewRenderer(NewParamStore(Params{CircleSize: 10, Spacing: 10}))

	r.Render(uniformFrame(64, 48, color.RGBA{128, 128, 128, 255}))
	if got := r.Output().Bounds(); got.Dx() != 64 || got.Dy() != 48 {
		t.Fatalf("output bounds = %v, want 64x48", got)
	}

	// The source renegotiates; the canvas follows before the next draw.
	r.Render(uniformFrame(32, 24, color.RGBA{128, 128, 128, 255}))
	if got := r.Output().Bounds(); got.Dx() != 32 || got.Dy() != 24 {
		t.Fatalf("output bounds = %v, want 32x24", got)
	}
}

func TestParamsTakeEffectNextPass(t *testing.T) {
	store := NewParamStore(Params{CircleSize: 30, Spacing: 10})
	r := NewRenderer(store)
	frame := uniformFrame(40, 40, color.RGBA{255, 255, 255, 255})

	r.Render(frame)
	wantWhite(t, r.Output(), 15, 10) // radius 15 disks cover everything

	store.Set(Params{CircleSize: 4, Spacing: 20})
	r.Render(frame)
	wantWhite(t, r.Output(), 20, 20)
	wantBlack(t, r.Output(), 30, 30) // radius 2 disks leave gaps
}

func TestMidGraySceneIsRegularGrid(t *testing.T) {
	// 640x480 at spacing 10 samples a 64x48 grid.
	if gridCount(640, 10) != 64 || gridCount(480, 10) != 48 {
		t.Fatal("unexpected grid dimensions")
	}

	frame := uniformFrame(640, 480, color.RGBA{128, 128, 128, 255})
	out := render(t, frame, Params{CircleSize: 10, Spacing: 10})

	// Disk centers are white, midpoints between them black, across
	// the whole surface.
	for _, pt := range []image.Point{{10, 10}, {320, 240}, {630, 470}, {100, 400}} {
		wantWhite(t, out, pt.X, pt.Y)
	}
	for _, pt := range []image.Point{{15, 15}, {325, 245}, {105, 405}} {
		wantBlack(t, out, pt.X, pt.Y)
	}
}
