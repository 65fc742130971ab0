// Package display is the ebiten shell. Ebiten's Draw callback runs at
// the display's refresh cadence, which is exactly the tick contract
// the render loop wants: one repaint, one tick, never overlapping.
package display

import "math"

// Parameter limits enforced by the UI, not by the renderer.
const (
	ParamMin = 5
	ParamMax = 30
)

// aspectFitTransform returns scale and offsets to letterbox a frame
// into a view.
func aspectFitTransform(viewW, viewH, frameW, frameH float64) (scale, offsetX, offsetY float64) {
	scale = math.Min(viewW/frameW, viewH/frameH)
	offsetX = (viewW - frameW*scale) / 2
	offsetY = (viewH - frameH*scale) / 2
	return
}

func clampParam(v float64) float64 {
	if v < ParamMin {
		return ParamMin
	}
	if v > ParamMax {
		return ParamMax
	}
	return v
}
