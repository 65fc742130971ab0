package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/dotcam/dotcam/internal/codec"
	"github.com/dotcam/dotcam/internal/config"
	"github.com/dotcam/dotcam/internal/display"
	"github.com/dotcam/dotcam/internal/peer"
	"github.com/dotcam/dotcam/internal/signaling"
)

func main() {
	cfg := config.ParseViewerFlags()

	if cfg.PublisherID == "" {
		log.Fatal("Usage: dotcam-viewer -signaling <url> -cam <publisher-id>")
	}

	log.Printf("dotcam viewer starting")
	log.Printf("  Viewer ID: %s", cfg.ViewerID)
	log.Printf("  Signaling: %s", cfg.SignalingURL)
	log.Printf("  Watching:  %s", cfg.PublisherID)

	dec := codec.NewDecoder()

	var viewer *peer.Viewer

	// View sends key presses back to the camera as commands.
	view := display.NewRemoteView(func(data []byte) {
		if viewer != nil {
			if err := viewer.Transport().SendCommand(data); err != nil {
				log.Printf("send command: %v", err)
			}
		}
	})

	var sig *signaling.Client
	sig = signaling.NewClient(cfg.SignalingURL, cfg.ViewerID, signaling.RoleViewer, signaling.Handler{
		OnRegistered: func() {
			log.Println("Registered with signaling server")

			var err error
			viewer, err = peer.NewViewer(sig, cfg.PublisherID)
			if err != nil {
				log.Printf("create viewer peer: %v", err)
				os.Exit(1)
			}

			viewer.Transport().OnFrame(func(data []byte) {
				img, err := dec.Decode(data)
				if err != nil {
					return
				}
				view.SetFrame(img)
			})

			if err := viewer.Connect(); err != nil {
				log.Printf("viewer connect: %v", err)
			}
		},
		OnAnswer: func(from string, payload json.RawMessage) {
			if viewer != nil {
				if err := viewer.HandleAnswer(payload); err != nil {
					log.Printf("handle answer: %v", err)
				}
			}
		},
		OnICECandidate: func(from string, payload json.RawMessage) {
			if viewer != nil {
				if err := viewer.HandleICECandidate(payload); err != nil {
					log.Printf("handle ICE candidate: %v", err)
				}
			}
		},
		OnPublisherGone: func(publisherID string) {
			log.Printf("camera %s went away", publisherID)
		},
		OnError: func(msg string) {
			log.Printf("signaling error: %s", msg)
		},
	})

	if err := sig.Connect(); err != nil {
		log.Fatalf("signaling connect: %v", err)
	}
	defer sig.Close()

	// Ebitengine RunGame must be on the main goroutine.
	if err := view.Run(); err != nil {
		log.Fatalf("display: %v", err)
	}

	if viewer != nil {
		viewer.Close()
	}
}
