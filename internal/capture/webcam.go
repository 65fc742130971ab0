package capture

import (
	"fmt"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/dotcam/dotcam/internal/codec"
)

// Webcam reads frames from a local camera device through OpenCV. A
// background loop keeps decoding; only the most recent frame is
// retained.
type Webcam struct {
	cap    *gocv.VideoCapture
	facing Facing

	mu     sync.Mutex
	latest *Frame
	closed bool

	stopCh chan struct{}
	doneCh chan struct{}
}

// OpenWebcam acquires the camera for the given facing mode. Width and
// height are a preferred resolution; the driver may negotiate a
// different one, and frames are used at whatever size they arrive.
func OpenWebcam(facing Facing, width, height int) (*Webcam, error) {
	vc, err := gocv.VideoCaptureDevice(facing.DeviceID())
	if err != nil {
		return nil, fmt.Errorf("%w: device %d (%s): %v", ErrAcquisition, facing.DeviceID(), facing, err)
	}

	vc.Set(gocv.VideoCaptureFrameWidth, float64(width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(height))

	w := &Webcam{
		cap:    vc,
		facing: facing,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Facing returns the facing mode this source was opened with.
func (w *Webcam) Facing() Facing {
	return w.facing
}

func (w *Webcam) Ready() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.latest != nil
}

// Snapshot returns the most recent decoded frame, or nil before the
// first frame arrives. The returned frame is immutable; the decode
// loop always publishes a fresh buffer.
func (w *Webcam) Snapshot() *Frame {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.latest
}

// Close stops the decode loop and releases the device.
func (w *Webcam) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
}

func (w *Webcam) loop() {
	defer close(w.doneCh)
	defer w.cap.Close()

	mat := gocv.NewMat()
	defer mat.Close()

	for {
		select {
		case <-w.stopCh:
			return
		default:
		}

		if ok := w.cap.Read(&mat); !ok {
			// Device stalled or was unplugged. Back off and retry
			// until the source is closed.
			time.Sleep(50 * time.Millisecond)
			continue
		}
		if mat.Empty() {
			continue
		}

		img, err := mat.ToImage()
		if err != nil {
			continue
		}

		frame := &Frame{Image: codec.ToRGBA(img), Timestamp: time.Now()}
		w.mu.Lock()
		w.latest = frame
		w.mu.Unlock()
	}
}
