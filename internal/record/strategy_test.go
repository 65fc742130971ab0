package record

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"
)

func solidSurface(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 30, G: 30, B: 30, A: 255})
		}
	}
	return img
}

func TestStreamCaptureGatesOnSurface(t *testing.T) {
	s, err := NewStreamCapture(func() *image.RGBA { return nil }, 24, 80)
	if err != nil {
		t.Fatalf("NewStreamCapture: %v", err)
	}
	if err := s.Start(); !errors.Is(err, ErrSurfaceUnavailable) {
		t.Fatalf("Start err = %v, want ErrSurfaceUnavailable", err)
	}
}

func TestStreamCaptureChunksInOrder(t *testing.T) {
	surface := solidSurface(32, 24)
	s, err := NewStreamCapture(func() *image.RGBA { return surface }, 1, 80)
	if err != nil {
		t.Fatalf("NewStreamCapture: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Drive taps directly; the 1fps ticker won't fire during the test.
	s.captureOnce()
	s.captureOnce()
	s.captureOnce()

	artifact, err := s.Stop()
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if artifact.MIME != "video/x-msvideo" || !strings.HasSuffix(artifact.Name, ".avi") {
		t.Fatalf("artifact = %s (%s), want an .avi", artifact.Name, artifact.MIME)
	}
	if string(artifact.Data[0:4]) != "RIFF" {
		t.Fatal("artifact is not a RIFF container")
	}
	if got := aviU32(t, artifact.Data, 48); got != 3 {
		t.Fatalf("frame count = %d, want 3", got)
	}
	// The header carries the surface dimensions fixed at start.
	if w := aviU32(t, artifact.Data, 64); w != 32 {
		t.Fatalf("header width = %d, want 32", w)
	}
}

func TestStreamCaptureRestartsClean(t *testing.T) {
	surface := solidSurface(16, 16)
	s, err := NewStreamCapture(func() *image.RGBA { return surface }, 1, 80)
	if err != nil {
		t.Fatalf("NewStreamCapture: %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.captureOnce()
	if _, err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	s.captureOnce()
	s.captureOnce()
	artifact, err := s.Stop()
	if err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	if got := aviU32(t, artifact.Data, 48); got != 2 {
		t.Fatalf("second session frame count = %d, want 2", got)
	}
}

func TestStillsCaptureProducesTextArtifact(t *testing.T) {
	surface := solidSurface(64, 48)
	s, err := NewStillsCapture(func() *image.RGBA { return surface }, time.Hour, 4, 70)
	if err != nil {
		t.Fatalf("NewStillsCapture: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.captureOnce()
	s.captureOnce()

	artifact, err := s.Stop()
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if artifact.MIME != "text/plain" || !strings.HasSuffix(artifact.Name, ".txt") {
		t.Fatalf("artifact = %s (%s), want a .txt", artifact.Name, artifact.MIME)
	}

	lines := bytes.Split(bytes.TrimRight(artifact.Data, "\n"), []byte{'\n'})
	if len(lines) != 2 {
		t.Fatalf("got %d stills, want 2", len(lines))
	}
	for i, line := range lines {
		if !bytes.HasPrefix(line, []byte("data:image/jpeg;base64,")) {
			t.Fatalf("still %d is not a JPEG data line: %.40s", i, line)
		}
	}
}

func TestStillsCaptureGatesOnSurface(t *testing.T) {
	s, err := NewStillsCapture(func() *image.RGBA { return nil }, time.Second, 4, 70)
	if err != nil {
		t.Fatalf("NewStillsCapture: %v", err)
	}
	if err := s.Start(); !errors.Is(err, ErrSurfaceUnavailable) {
		t.Fatalf("Start err = %v, want ErrSurfaceUnavailable", err)
	}
}

func TestSelectStrategy(t *testing.T) {
	tap := func() *image.RGBA { return nil }

	s, err := SelectStrategy(tap, DefaultOptions())
	if err != nil {
		t.Fatalf("SelectStrategy: %v", err)
	}
	if _, ok := s.(*StreamCapture); !ok {
		t.Fatalf("default strategy = %T, want *StreamCapture", s)
	}

	opts := DefaultOptions()
	opts.ForceStills = true
	s, err = SelectStrategy(tap, opts)
	if err != nil {
		t.Fatalf("SelectStrategy(stills): %v", err)
	}
	if _, ok := s.(*StillsCapture); !ok {
		t.Fatalf("forced strategy = %T, want *StillsCapture", s)
	}

	// A broken stream configuration falls back to stills.
	opts = DefaultOptions()
	opts.FPS = 0
	s, err = SelectStrategy(tap, opts)
	if err != nil {
		t.Fatalf("SelectStrategy(fallback): %v", err)
	}
	if _, ok := s.(*StillsCapture); !ok {
		t.Fatalf("fallback strategy = %T, want *StillsCapture", s)
	}

	// Nothing constructible at all.
	opts.StillsInterval = 0
	if _, err := SelectStrategy(tap, opts); !errors.Is(err, ErrEncodingUnavailable) {
		t.Fatalf("err = %v, want ErrEncodingUnavailable", err)
	}
}
