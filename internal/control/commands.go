// Package control is the imperative surface UI collaborators drive:
// three commands plus the two live render parameters. Local key
// bindings and remote viewers both speak this envelope.
package control

import (
	"encoding/json"
	"fmt"
)

// Command names accepted from collaborators.
const (
	CmdRecordStart  = "record-start"
	CmdRecordStop   = "record-stop"
	CmdToggleCamera = "toggle-camera"
	CmdSetParams    = "set-params"
)

// Command is the serialized envelope.
type Command struct {
	Name       string  `json:"name"`
	CircleSize float64 `json:"circleSize,omitempty"`
	Spacing    int     `json:"spacing,omitempty"`
}

// Handle is what the core exposes to collaborators. Methods are plain
// calls on an owned object; there is no queuing and no lookup.
type Handle interface {
	StartRecording() error
	StopRecording() error
	ToggleCamera() error
	SetParams(circleSize float64, spacing int)
}

// Dispatch decodes a serialized command and applies it to h.
func Dispatch(h Handle, data []byte) error {
	var c Command
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("decode command: %w", err)
	}
	return Apply(h, c)
}

// Apply routes one command to the handle.
func Apply(h Handle, c Command) error {
	switch c.Name {
	case CmdRecordStart:
		return h.StartRecording()
	case CmdRecordStop:
		return h.StopRecording()
	case CmdToggleCamera:
		return h.ToggleCamera()
	case CmdSetParams:
		h.SetParams(c.CircleSize, c.Spacing)
		return nil
	}
	return fmt.Errorf("unknown command %q", c.Name)
}
