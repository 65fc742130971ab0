package record

import (
	"fmt"
	"sync"
	"time"

	"github.com/dotcam/dotcam/internal/codec"
)

// StreamCapture taps the render surface at a fixed frame rate and
// encodes every tap as one chunk, appended strictly in arrival order.
// Stop assembles the chunks into an MJPEG AVI. Each tap reflects the
// surface state at encode time, not draw time; the tap cadence is
// independent of the render tick.
type StreamCapture struct {
	tap SurfaceTap
	enc *codec.Encoder
	fps int

	mu     sync.Mutex
	chunks [][]byte
	width  int
	height int

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewStreamCapture builds the stream strategy. The fps and quality
// defaults in Options are tunable policy.
func NewStreamCapture(tap SurfaceTap, fps, quality int) (*StreamCapture, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("%w: frame rate %d", ErrEncodingUnavailable, fps)
	}
	return &StreamCapture{
		tap: tap,
		enc: codec.NewEncoder(quality),
		fps: fps,
	}, nil
}

// Start begins tapping. Fails with ErrSurfaceUnavailable when the
// surface has produced no output yet.
func (s *StreamCapture) Start() error {
	first := s.tap()
	if first == nil {
		return ErrSurfaceUnavailable
	}

	s.mu.Lock()
	s.chunks = nil
	// The artifact dimensions are fixed at session start. A source
	// renegotiation mid-session keeps encoding at whatever size the
	// surface delivers; players follow the header.
	s.width = first.Bounds().Dx()
	s.height = first.Bounds().Dy()
	s.mu.Unlock()

	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.loop()
	return nil
}

// Stop halts the tap, waits for the in-flight chunk to land, and
// assembles the artifact.
func (s *StreamCapture) Stop() (*Artifact, error) {
	close(s.stopCh)
	<-s.doneCh

	s.mu.Lock()
	chunks := s.chunks
	width, height := s.width, s.height
	s.chunks = nil
	s.mu.Unlock()

	data, err := assembleAVI(chunks, width, height, s.fps)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssembly, err)
	}
	return &Artifact{
		Name: fmt.Sprintf("halftone-%s.avi", time.Now().Format("20060102-150405")),
		MIME: "video/x-msvideo",
		Data: data,
	}, nil
}

func (s *StreamCapture) loop() {
	defer close(s.doneCh)
	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()
	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.captureOnce()
		}
	}
}

func (s *StreamCapture) captureOnce() {
	img := s.tap()
	if img == nil {
		return
	}
	data, err := s.enc.Encode(img)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.chunks = append(s.chunks, data)
	s.mu.Unlock()
}
