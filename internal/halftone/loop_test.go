package halftone

import (
	"image/color"
	"testing"

	"github.com/dotcam/dotcam/internal/capture"
)

type scriptedSource struct {
	ready bool
	frame *capture.Frame
}

func (s *scriptedSource) Ready() bool              { return s.ready }
func (s *scriptedSource) Snapshot() *capture.Frame { return s.frame }
func (s *scriptedSource) Close()                   {}

func TestTickNoopsUntilSourceReady(t *testing.T) {
	src := &scriptedSource{}
	r := NewRenderer(NewParamStore(Params{CircleSize: 10, Spacing: 10}))
	loop := NewLoop(r, func() capture.Source { return src })

	loop.Tick()
	if r.Output() != nil {
		t.Fatal("tick rendered with no frame ready")
	}

	src.ready = true
	src.frame = uniformFrame(16, 16, color.RGBA{128, 128, 128, 255})
	loop.Tick()
	if r.Output() == nil {
		t.Fatal("tick did not render once the source was ready")
	}
}

func TestTickSurvivesMissingSource(t *testing.T) {
	// Mid-toggle there is no source at all; the tick must skip, not
	// crash, and pick up the replacement next time.
	var src capture.Source
	r := NewRenderer(NewParamStore(Params{CircleSize: 10, Spacing: 10}))
	loop := NewLoop(r, func() capture.Source { return src })

	loop.Tick()
	if r.Output() != nil {
		t.Fatal("tick rendered without a source")
	}

	src = &scriptedSource{
		ready: true,
		frame: uniformFrame(16, 16, color.RGBA{200, 200, 200, 255}),
	}
	loop.Tick()
	if r.Output() == nil {
		t.Fatal("tick did not recover after the source appeared")
	}
}

func TestCancelStopsRendering(t *testing.T) {
	src := &scriptedSource{
		ready: true,
		frame: uniformFrame(16, 16, color.RGBA{128, 128, 128, 255}),
	}
	r := NewRenderer(NewParamStore(Params{CircleSize: 10, Spacing: 10}))
	loop := NewLoop(r, func() capture.Source { return src })

	loop.Tick()
	first := r.Output()
	if first == nil {
		t.Fatal("no output before cancel")
	}

	loop.Cancel()
	loop.Tick()
	if r.Output() != first {
		t.Fatal("canceled loop still rendered")
	}
}
