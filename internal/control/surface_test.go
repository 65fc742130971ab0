package control

import (
	"testing"

	"github.com/dotcam/dotcam/internal/capture"
	"github.com/dotcam/dotcam/internal/halftone"
	"github.com/dotcam/dotcam/internal/record"
)

type nullSource struct{}

func (nullSource) Ready() bool              { return false }
func (nullSource) Snapshot() *capture.Frame { return nil }
func (nullSource) Close()                   {}

type nullStrategy struct{}

func (nullStrategy) Start() error { return nil }
func (nullStrategy) Stop() (*record.Artifact, error) {
	return &record.Artifact{Name: "out.avi", Data: []byte("x")}, nil
}

func newTestSurface() (*Surface, *halftone.ParamStore) {
	switcher := capture.NewSwitcher(func(capture.Facing) (capture.Source, error) {
		return nullSource{}, nil
	}, capture.FacingFront)
	recorder := record.NewWithStrategy(nullStrategy{})
	params := halftone.NewParamStore(halftone.Params{CircleSize: 10, Spacing: 10})
	return NewSurface(recorder, switcher, params), params
}

func TestSurfaceRecordingFlow(t *testing.T) {
	s, _ := newTestSurface()
	var offered *record.Artifact
	s.OnArtifact = func(a *record.Artifact) { offered = a }

	if s.Recording() {
		t.Fatal("recording before start")
	}
	if err := s.StartRecording(); err != nil {
		t.Fatalf("StartRecording: %v", err)
	}
	if !s.Recording() {
		t.Fatal("not recording after start")
	}
	if err := s.StopRecording(); err != nil {
		t.Fatalf("StopRecording: %v", err)
	}
	if offered == nil || offered.Name != "out.avi" {
		t.Fatalf("offered artifact = %v", offered)
	}

	// Stop with no session offers nothing and reports nothing.
	offered = nil
	if err := s.StopRecording(); err != nil {
		t.Fatalf("idle StopRecording: %v", err)
	}
	if offered != nil {
		t.Fatal("idle stop offered an artifact")
	}
}

func TestSurfaceToggleAndParams(t *testing.T) {
	s, params := newTestSurface()
	if err := s.ToggleCamera(); err != nil {
		t.Fatalf("ToggleCamera: %v", err)
	}

	s.SetParams(18, 6)
	if got := params.Get(); got.CircleSize != 18 || got.Spacing != 6 {
		t.Fatalf("params = %+v, want {18 6}", got)
	}
}
