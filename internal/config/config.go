package config

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"time"
)

// Config holds runtime configuration for the dotcam binary.
type Config struct {
	Facing string
	Width  int
	Height int

	CircleSize float64
	Spacing    int

	RecordFPS      int
	RecordQuality  int
	StillsRecorder bool
	StillsInterval time.Duration
	OutDir         string

	SignalingURL string
	PublisherID  string
	PreviewFPS   int
	PreviewQual  int
}

// ParseFlags parses flags for the dotcam binary.
func ParseFlags() *Config {
	cfg := &Config{}
	flag.StringVar(&cfg.Facing, "facing", "front", "Camera facing mode: front or back")
	flag.IntVar(&cfg.Width, "width", 1280, "Preferred capture width (the device may negotiate)")
	flag.IntVar(&cfg.Height, "height", 720, "Preferred capture height (the device may negotiate)")
	flag.Float64Var(&cfg.CircleSize, "size", 10, "Disk size at full brightness, 5-30")
	flag.IntVar(&cfg.Spacing, "spacing", 10, "Grid spacing between disks, 5-30")
	flag.IntVar(&cfg.RecordFPS, "record-fps", 24, "Recording capture rate")
	flag.IntVar(&cfg.RecordQuality, "record-quality", 80, "Recording JPEG quality (1-100)")
	flag.BoolVar(&cfg.StillsRecorder, "stills", false, "Record periodic stills instead of video")
	flag.DurationVar(&cfg.StillsInterval, "stills-interval", 200*time.Millisecond, "Snapshot period for the stills recorder")
	flag.StringVar(&cfg.OutDir, "out", ".", "Directory recordings are saved to")
	flag.StringVar(&cfg.SignalingURL, "signaling", "", "Signaling server WebSocket URL (empty disables remote preview)")
	flag.StringVar(&cfg.PublisherID, "id", "", "Publisher ID (auto-generated if empty)")
	flag.IntVar(&cfg.PreviewFPS, "preview-fps", 15, "Remote preview frame rate")
	flag.IntVar(&cfg.PreviewQual, "preview-quality", 70, "Remote preview JPEG quality (1-100)")
	flag.Parse()

	if cfg.PublisherID == "" {
		cfg.PublisherID = fmt.Sprintf("cam-%s", randomID())
	}
	return cfg
}

// ViewerConfig holds configuration for the viewer binary.
type ViewerConfig struct {
	SignalingURL string
	ViewerID     string
	PublisherID  string
}

// ParseViewerFlags parses flags for the viewer binary.
func ParseViewerFlags() *ViewerConfig {
	cfg := &ViewerConfig{}
	flag.StringVar(&cfg.SignalingURL, "signaling", "ws://localhost:8080", "Signaling server WebSocket URL")
	flag.StringVar(&cfg.ViewerID, "id", "", "Viewer ID (auto-generated if empty)")
	flag.StringVar(&cfg.PublisherID, "cam", "", "Publisher ID to watch (required)")
	flag.Parse()

	if cfg.ViewerID == "" {
		cfg.ViewerID = fmt.Sprintf("viewer-%s", randomID())
	}
	return cfg
}

func randomID() string {
	b := make([]byte, 4)
	rand.Read(b)
	return hex.EncodeToString(b)
}
