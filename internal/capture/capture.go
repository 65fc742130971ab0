package capture

import (
	"errors"
	"image"
	"time"
)

// ErrAcquisition reports that a camera could not be acquired: missing
// device, permission denied, or device busy. Retry policy is the
// caller's; nothing here retries.
var ErrAcquisition = errors.New("camera acquisition failed")

// Facing identifies which physical camera a source is bound to.
type Facing int

const (
	FacingFront Facing = iota
	FacingBack
)

func (f Facing) String() string {
	if f == FacingBack {
		return "back"
	}
	return "front"
}

// DeviceID maps a facing mode to the platform device index.
func (f Facing) DeviceID() int {
	return int(f)
}

// Other returns the opposite facing mode.
func (f Facing) Other() Facing {
	if f == FacingFront {
		return FacingBack
	}
	return FacingFront
}

// ParseFacing reads a facing mode from its flag value.
func ParseFacing(s string) (Facing, error) {
	switch s {
	case "front":
		return FacingFront, nil
	case "back":
		return FacingBack, nil
	}
	return FacingFront, errors.New(`facing must be "front" or "back"`)
}

// Frame is one decoded video frame. The pixel buffer is never written
// after publication.
type Frame struct {
	Image     *image.RGBA
	Timestamp time.Time
}

// Source presents a live video feed. It does not push frames; callers
// snapshot whatever the most recent decoded frame is.
type Source interface {
	// Ready reports whether at least one frame has been decoded.
	Ready() bool
	// Snapshot returns the most recent decoded frame, or nil when the
	// source is not ready yet.
	Snapshot() *Frame
	// Close releases the device. The source is unusable afterwards.
	Close()
}
