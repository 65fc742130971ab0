// Package transport moves preview frames one way and control commands
// the other way over WebRTC DataChannels.
package transport

import (
	"fmt"

	"github.com/pion/webrtc/v4"
)

// FrameSender sends encoded preview frames.
type FrameSender interface {
	SendFrame(data []byte) error
}

// CommandSender sends serialized control commands.
type CommandSender interface {
	SendCommand(data []byte) error
}

// DataChannelTransport pairs a lossy frames channel with a reliable
// commands channel.
type DataChannelTransport struct {
	framesDC   *webrtc.DataChannel
	commandsDC *webrtc.DataChannel

	onFrame   func(data []byte)
	onCommand func(data []byte)
}

// NewDataChannelTransport wraps the two channels. Either may be nil
// and attached later via the Set methods (the answering side receives
// its channels from the peer).
func NewDataChannelTransport(framesDC, commandsDC *webrtc.DataChannel) *DataChannelTransport {
	t := &DataChannelTransport{}
	if framesDC != nil {
		t.SetFramesChannel(framesDC)
	}
	if commandsDC != nil {
		t.SetCommandsChannel(commandsDC)
	}
	return t
}

func (t *DataChannelTransport) SendFrame(data []byte) error {
	if t.framesDC == nil {
		return fmt.Errorf("frames channel not set")
	}
	return t.framesDC.Send(data)
}

func (t *DataChannelTransport) SendCommand(data []byte) error {
	if t.commandsDC == nil {
		return fmt.Errorf("commands channel not set")
	}
	return t.commandsDC.Send(data)
}

func (t *DataChannelTransport) OnFrame(cb func(data []byte)) {
	t.onFrame = cb
}

func (t *DataChannelTransport) OnCommand(cb func(data []byte)) {
	t.onCommand = cb
}

// SetFramesChannel sets or replaces the frames channel.
func (t *DataChannelTransport) SetFramesChannel(dc *webrtc.DataChannel) {
	t.framesDC = dc
	dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		if t.onFrame != nil {
			t.onFrame(msg.Data)
		}
	})
}

// SetCommandsChannel sets or replaces the commands channel.
func (t *DataChannelTransport) SetCommandsChannel(dc *webrtc.DataChannel) {
	t.commandsDC = dc
	dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		if t.onCommand != nil {
			t.onCommand(msg.Data)
		}
	})
}
