// Package record captures the rendered surface into a downloadable
// artifact. A Recorder owns the Idle -> Recording -> Idle session
// lifecycle; a CaptureStrategy does the actual tapping.
package record

import (
	"errors"
	"image"
	"sync"
)

var (
	// ErrEncodingUnavailable reports that no capture strategy could
	// be constructed. Rendering is unaffected.
	ErrEncodingUnavailable = errors.New("recording encoder unavailable")

	// ErrAssembly reports that chunk concatenation into the final
	// artifact failed. The recorder still returns to idle.
	ErrAssembly = errors.New("artifact assembly failed")

	// ErrSurfaceUnavailable reports a start before the render surface
	// produced its first frame.
	ErrSurfaceUnavailable = errors.New("render surface not available")
)

// SurfaceTap reads the most recent rendered frame. It returns nil
// until the surface has produced output. The tap samples the surface
// on the strategy's own cadence, independent of the render tick.
type SurfaceTap func() *image.RGBA

// State of a recorder.
type State int

const (
	StateIdle State = iota
	StateRecording
)

func (s State) String() string {
	if s == StateRecording {
		return "recording"
	}
	return "idle"
}

// Artifact is a finalized recording offered to the user as a named
// downloadable file.
type Artifact struct {
	Name string
	MIME string
	Data []byte
}

// CaptureStrategy taps the render surface while a session is active.
// Start begins the tap; Stop flushes in-flight chunks, assembles the
// final artifact, and leaves the strategy ready for another session.
type CaptureStrategy interface {
	Start() error
	Stop() (*Artifact, error)
}

// Recorder drives recording sessions. At most one session is active
// at a time; Start while recording and Stop while idle are no-ops.
type Recorder struct {
	mu       sync.Mutex
	state    State
	strategy CaptureStrategy
	artifact *Artifact
}

// New builds a recorder over the preferred strategy for opts: stream
// capture when it can be constructed, the stills fallback otherwise.
func New(tap SurfaceTap, opts Options) (*Recorder, error) {
	strategy, err := SelectStrategy(tap, opts)
	if err != nil {
		return nil, err
	}
	return NewWithStrategy(strategy), nil
}

// NewWithStrategy builds a recorder over an explicit strategy.
func NewWithStrategy(strategy CaptureStrategy) *Recorder {
	return &Recorder{strategy: strategy}
}

// Start opens a new recording session. Calling Start while already
// recording leaves the existing session untouched and reports no
// error. Any previously exposed artifact is released once the new
// session begins; a failed start keeps it.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateRecording {
		return nil
	}
	if err := r.strategy.Start(); err != nil {
		return err
	}
	r.artifact = nil
	r.state = StateRecording
	return nil
}

// Stop finalizes the active session and exposes the assembled
// artifact. Stop while idle is a no-op returning (nil, nil). The
// recorder returns to idle even when assembly fails, so a failed
// finalize never wedges the state machine.
func (r *Recorder) Stop() (*Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateRecording {
		return nil, nil
	}
	r.state = StateIdle
	artifact, err := r.strategy.Stop()
	if err != nil {
		return nil, err
	}
	r.artifact = artifact
	return artifact, nil
}

// State returns the current session state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Artifact returns the most recent finalized artifact, or nil.
func (r *Recorder) Artifact() *Artifact {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.artifact
}

// Release drops the exposed artifact so its memory can be reclaimed.
// Called on teardown; Start does the same implicitly.
func (r *Recorder) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.artifact = nil
}
