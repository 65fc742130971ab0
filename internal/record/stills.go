package record

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/dotcam/dotcam/internal/codec"
)

// StillsCapture is the fallback strategy for when stream capture is
// unavailable: it snapshots the surface at a fixed interval into a
// downscaled still and, on stop, serializes the run as one text
// artifact of base64 JPEG lines. A degraded substitute for real
// video, but it satisfies the same start/stop contract.
type StillsCapture struct {
	tap      SurfaceTap
	enc      *codec.Encoder
	interval time.Duration
	scale    int

	mu     sync.Mutex
	stills [][]byte

	stopCh chan struct{}
	doneCh chan struct{}
}

func NewStillsCapture(tap SurfaceTap, interval time.Duration, scale, quality int) (*StillsCapture, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: snapshot interval %v", ErrEncodingUnavailable, interval)
	}
	return &StillsCapture{
		tap:      tap,
		enc:      codec.NewEncoder(quality),
		interval: interval,
		scale:    scale,
	}, nil
}

func (s *StillsCapture) Start() error {
	if s.tap() == nil {
		return ErrSurfaceUnavailable
	}
	s.mu.Lock()
	s.stills = nil
	s.mu.Unlock()

	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.loop()
	return nil
}

func (s *StillsCapture) Stop() (*Artifact, error) {
	close(s.stopCh)
	<-s.doneCh

	s.mu.Lock()
	stills := s.stills
	s.stills = nil
	s.mu.Unlock()

	var buf bytes.Buffer
	for _, still := range stills {
		buf.WriteString("data:image/jpeg;base64,")
		buf.WriteString(base64.StdEncoding.EncodeToString(still))
		buf.WriteByte('\n')
	}
	return &Artifact{
		Name: fmt.Sprintf("halftone-%s.txt", time.Now().Format("20060102-150405")),
		MIME: "text/plain",
		Data: buf.Bytes(),
	}, nil
}

func (s *StillsCapture) loop() {
	defer close(s.doneCh)
	ticker := time.NewTicker(s.interval)
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

func (s *StillsCapture) captureOnce() {
	img := s.tap()
	if img == nil {
		return
	}
	data, err := s.enc.EncodeScaled(img, s.scale)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.stills = append(s.stills, data)
	s.mu.Unlock()
}
