package halftone

import (
	"image"
	"sync"

	"github.com/gogpu/gg"

	"github.com/dotcam/dotcam/internal/capture"
	"github.com/dotcam/dotcam/internal/codec"
)

// Renderer rasterizes frames into the halftone pattern on an owned
// canvas. One Render call is one full pass: black fill, then one
// filled white disk per grid point. The canvas is resized to the
// frame's dimensions before any drawing, so the surface always
// matches the most recently observed frame.
//
// Renderer is not safe for concurrent Render calls; the render loop
// guarantees only one tick is in flight. Output may be read from any
// goroutine.
type Renderer struct {
	dc     *gg.Context
	params *ParamStore

	mu  sync.Mutex
	out *image.RGBA
}

func NewRenderer(params *ParamStore) *Renderer {
	return &Renderer{
		dc:     gg.NewContext(1, 1),
		params: params,
	}
}

// Render runs one halftone pass over frame and publishes the result.
func (r *Renderer) Render(frame *capture.Frame) {
	p := r.params.Get()
	src := frame.Image
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	if w < 1 || h < 1 {
		return
	}

	if r.dc.Width() != w || r.dc.Height() != h {
		if err := r.dc.Resize(w, h); err != nil {
			return
		}
	}

	spacing := p.Spacing
	if spacing < 1 {
		spacing = 1
	}

	r.dc.ClearWithColor(gg.Black)
	r.dc.SetRGB(1, 1, 1)

	for y := 0; y < h; y += spacing {
		for x := 0; x < w; x += spacing {
			radius := diskRadius(brightnessAt(src, x, y), p.CircleSize)
			if radius <= 0 {
				// A zero-radius disk draws nothing.
				continue
			}
			r.dc.DrawCircle(float64(x), float64(y), radius)
			_ = r.dc.Fill()
		}
	}

	// Image() copies the pixmap, so the published frame is immutable.
	out := codec.ToRGBA(r.dc.Image())

	r.mu.Lock()
	r.out = out
	r.mu.Unlock()
}

// Output returns the most recently rendered frame, or nil before the
// first pass. The returned image is immutable; each pass publishes a
// fresh buffer, so taps (recorder, preview) can read it concurrently
// with rendering.
func (r *Renderer) Output() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.out
}

// brightnessAt samples the source pixel under a grid point with
// nearest-neighbor semantics and averages its color channels.
func brightnessAt(img *image.RGBA, x, y int) float64 {
	c := img.RGBAAt(img.Bounds().Min.X+x, img.Bounds().Min.Y+y)
	return (float64(c.R) + float64(c.G) + float64(c.B)) / 3
}

// diskRadius maps a brightness in [0,255] to a disk radius. Full
// brightness yields half the configured circle size.
func diskRadius(brightness, circleSize float64) float64 {
	return brightness / 255 * (circleSize / 2)
}

// gridCount is the number of sample points along one dimension.
func gridCount(dim, spacing int) int {
	if spacing < 1 {
		spacing = 1
	}
	return (dim + spacing - 1) / spacing
}
