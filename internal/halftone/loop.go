package halftone

import (
	"sync/atomic"

	"github.com/dotcam/dotcam/internal/capture"
)

// Loop is the cooperative render tick. The display invokes Tick from
// its repaint callback, so ticks arrive at the display's refresh
// cadence and never overlap. Cancel stops all further work; a
// canceled loop never renders again.
type Loop struct {
	renderer *Renderer
	source   func() capture.Source
	canceled atomic.Bool
}

// NewLoop creates a render loop reading from whatever source the
// callback currently returns. Indirection matters: a device toggle
// swaps the source between ticks, and a tick must use one source for
// its whole pass.
func NewLoop(renderer *Renderer, source func() capture.Source) *Loop {
	return &Loop{renderer: renderer, source: source}
}

// Tick performs one snapshot and one full grid pass. It is a no-op
// when the loop is canceled or the source has no frame ready yet;
// the next tick simply tries again.
func (l *Loop) Tick() {
	if l.canceled.Load() {
		return
	}
	src := l.source()
	if src == nil || !src.Ready() {
		return
	}
	frame := src.Snapshot()
	if frame == nil {
		return
	}
	l.renderer.Render(frame)
}

// Cancel prevents any future tick from doing work.
func (l *Loop) Cancel() {
	l.canceled.Store(true)
}
