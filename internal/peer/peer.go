// Package peer manages the WebRTC connections behind the remote
// preview: a Publisher answers offers and streams frames, a Viewer
// offers and receives them.
package peer

import (
	"log"

	"github.com/pion/webrtc/v4"
)

// ICEServers is the default ICE server configuration.
var ICEServers = []webrtc.ICEServer{
	{URLs: []string{"stun:stun.l.google.com:19302", "stun:stun1.l.google.com:19302"}},
}

func newPeerConnection() (*webrtc.PeerConnection, error) {
	pc, err := webrtc.NewPeerConnection(webrtc.Configuration{ICEServers: ICEServers})
	if err != nil {
		return nil, err
	}
	pc.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		log.Printf("peer connection state: %s", state.String())
	})
	return pc, nil
}
