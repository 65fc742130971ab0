package control

import (
	"log"

	"github.com/dotcam/dotcam/internal/capture"
	"github.com/dotcam/dotcam/internal/halftone"
	"github.com/dotcam/dotcam/internal/record"
)

// Surface wires the three commands and the parameter cell to the
// pipeline. It is the owned object behind the Handle interface.
type Surface struct {
	recorder *record.Recorder
	switcher *capture.Switcher
	params   *halftone.ParamStore

	// OnArtifact receives each finalized recording; the shell decides
	// how to offer it for download. Optional.
	OnArtifact func(*record.Artifact)
}

func NewSurface(recorder *record.Recorder, switcher *capture.Switcher, params *halftone.ParamStore) *Surface {
	return &Surface{
		recorder: recorder,
		switcher: switcher,
		params:   params,
	}
}

func (s *Surface) StartRecording() error {
	if err := s.recorder.Start(); err != nil {
		return err
	}
	log.Printf("recording started")
	return nil
}

func (s *Surface) StopRecording() error {
	artifact, err := s.recorder.Stop()
	if err != nil {
		return err
	}
	if artifact == nil {
		// Stop while idle: nothing to offer, nothing wrong.
		return nil
	}
	log.Printf("recording stopped: %s (%d bytes)", artifact.Name, len(artifact.Data))
	if s.OnArtifact != nil {
		s.OnArtifact(artifact)
	}
	return nil
}

func (s *Surface) ToggleCamera() error {
	if err := s.switcher.Toggle(); err != nil {
		return err
	}
	log.Printf("switched to %s camera", s.switcher.Facing())
	return nil
}

func (s *Surface) SetParams(circleSize float64, spacing int) {
	s.params.Set(halftone.Params{CircleSize: circleSize, Spacing: spacing})
}

// Recording reports whether a session is active, for status display.
func (s *Surface) Recording() bool {
	return s.recorder.State() == record.StateRecording
}
