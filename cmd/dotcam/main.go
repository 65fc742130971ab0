package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/dotcam/dotcam/internal/capture"
	"github.com/dotcam/dotcam/internal/codec"
	"github.com/dotcam/dotcam/internal/config"
	"github.com/dotcam/dotcam/internal/control"
	"github.com/dotcam/dotcam/internal/display"
	"github.com/dotcam/dotcam/internal/halftone"
	"github.com/dotcam/dotcam/internal/peer"
	"github.com/dotcam/dotcam/internal/record"
	"github.com/dotcam/dotcam/internal/signaling"
)

func main() {
	cfg := config.ParseFlags()

	log.Printf("dotcam starting")
	log.Printf("  Facing:   %s", cfg.Facing)
	log.Printf("  Capture:  %dx%d", cfg.Width, cfg.Height)
	log.Printf("  Size:     %.0f", cfg.CircleSize)
	log.Printf("  Spacing:  %d", cfg.Spacing)

	facing, err := capture.ParseFacing(cfg.Facing)
	if err != nil {
		log.Fatalf("facing: %v", err)
	}

	// Camera.
	switcher := capture.NewSwitcher(func(f capture.Facing) (capture.Source, error) {
		return capture.OpenWebcam(f, cfg.Width, cfg.Height)
	}, facing)
	if err := switcher.Acquire(); err != nil {
		log.Fatalf("camera unavailable: %v", err)
	}
	defer switcher.Close()

	// Halftone pipeline.
	params := halftone.NewParamStore(halftone.Params{
		CircleSize: cfg.CircleSize,
		Spacing:    cfg.Spacing,
	})
	renderer := halftone.NewRenderer(params)
	loop := halftone.NewLoop(renderer, switcher.Source)
	defer loop.Cancel()

	// Recorder.
	opts := record.Options{
		FPS:            cfg.RecordFPS,
		Quality:        cfg.RecordQuality,
		StillsInterval: cfg.StillsInterval,
		StillsScale:    record.DefaultOptions().StillsScale,
		ForceStills:    cfg.StillsRecorder,
	}
	recorder, err := record.New(renderer.Output, opts)
	if err != nil {
		log.Fatalf("recorder init: %v", err)
	}
	defer recorder.Release()

	// Control surface.
	surface := control.NewSurface(recorder, switcher, params)
	surface.OnArtifact = func(a *record.Artifact) {
		path := filepath.Join(cfg.OutDir, a.Name)
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			log.Printf("save recording: %v", err)
			return
		}
		log.Printf("saved %s (%d bytes, %s)", path, len(a.Data), a.MIME)
	}

	app := display.NewApp(loop, renderer, params, surface)

	// Remote preview (optional).
	if cfg.SignalingURL != "" {
		var pub *peer.Publisher
		var previewStop chan struct{}
		var sig *signaling.Client

		sig = signaling.NewClient(cfg.SignalingURL, cfg.PublisherID, signaling.RolePublisher, signaling.Handler{
			OnRegistered: func() {
				log.Printf("Registered. Viewers connect with: -cam %s", cfg.PublisherID)
			},
			OnOffer: func(from string, payload json.RawMessage) {
				log.Printf("Received offer from %s", from)
				stopPreviewSession(pub, previewStop)
				pub, previewStop = nil, nil

				p, err := peer.NewPublisher(sig)
				if err != nil {
					log.Printf("create publisher peer: %v", err)
					return
				}
				pub = p

				pub.Transport().OnCommand(app.EnqueueCommand)

				if err := pub.HandleOffer(from, payload); err != nil {
					log.Printf("handle offer: %v", err)
					return
				}

				previewStop = make(chan struct{})
				go streamPreview(renderer, codec.NewEncoder(cfg.PreviewQual), pub, cfg.PreviewFPS, previewStop)
			},
			OnICECandidate: func(from string, payload json.RawMessage) {
				if pub != nil {
					if err := pub.HandleICECandidate(payload); err != nil {
						log.Printf("handle ICE candidate: %v", err)
					}
				}
			},
			OnError: func(msg string) {
				log.Printf("signaling error: %s", msg)
			},
		})
		if err := sig.Connect(); err != nil {
			log.Fatalf("signaling connect: %v", err)
		}
		defer sig.Close()
		defer func() {
			stopPreviewSession(pub, previewStop)
		}()
	}

	// Ebitengine RunGame must be on the main goroutine.
	if err := app.Run(); err != nil {
		log.Fatalf("display: %v", err)
	}
}

// stopPreviewSession tears down a viewer session. Either part may be
// nil: a failed HandleOffer leaves a peer with no stream goroutine,
// and the first offer has neither.
func stopPreviewSession(pub *peer.Publisher, stop chan struct{}) {
	if pub != nil {
		pub.Close()
	}
	if stop != nil {
		close(stop)
	}
}

// streamPreview taps the rendered output at a fixed rate and ships
// JPEG frames to the connected viewer until stop closes.
func streamPreview(renderer *halftone.Renderer, enc *codec.Encoder, pub *peer.Publisher, fps int, stop <-chan struct{}) {
	if fps <= 0 {
		fps = 15
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			img := renderer.Output()
			if img == nil {
				continue
			}
			data, err := enc.Encode(img)
			if err != nil {
				log.Printf("encode preview frame: %v", err)
				continue
			}
			if err := pub.Transport().SendFrame(data); err != nil {
				continue
			}
		}
	}
}
