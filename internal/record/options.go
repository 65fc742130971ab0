package record

import "time"

// Options are recording policy knobs. Rates and quality are policy,
// not contract; the defaults are what shipped, not a requirement.
type Options struct {
	// FPS is the stream-capture tap rate.
	FPS int
	// Quality is the JPEG quality for encoded chunks.
	Quality int
	// StillsInterval is the snapshot period of the fallback strategy.
	StillsInterval time.Duration
	// StillsScale is the integer downscale factor for fallback stills.
	StillsScale int
	// ForceStills selects the fallback strategy even when stream
	// capture is available.
	ForceStills bool
}

func DefaultOptions() Options {
	return Options{
		FPS:            24,
		Quality:        80,
		StillsInterval: 200 * time.Millisecond,
		StillsScale:    4,
	}
}

// SelectStrategy picks stream capture when it can be constructed and
// falls back to periodic stills otherwise. Both satisfy the same
// start/stop contract.
func SelectStrategy(tap SurfaceTap, opts Options) (CaptureStrategy, error) {
	if !opts.ForceStills {
		if s, err := NewStreamCapture(tap, opts.FPS, opts.Quality); err == nil {
			return s, nil
		}
	}
	s, err := NewStillsCapture(tap, opts.StillsInterval, opts.StillsScale, opts.Quality)
	if err != nil {
		return nil, ErrEncodingUnavailable
	}
	return s, nil
}
