package peer

import (
	"encoding/json"
	"log"

	"github.com/pion/webrtc/v4"

	"github.com/dotcam/dotcam/internal/signaling"
	"github.com/dotcam/dotcam/internal/transport"
)

// Viewer is the receiving side of the preview connection.
type Viewer struct {
	pc          *webrtc.PeerConnection
	sig         *signaling.Client
	transport   *transport.DataChannelTransport
	publisherID string
}

func NewViewer(sig *signaling.Client, publisherID string) (*Viewer, error) {
	pc, err := newPeerConnection()
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		pc:          pc,
		sig:         sig,
		transport:   transport.NewDataChannelTransport(nil, nil),
		publisherID: publisherID,
	}

	// The publisher creates both channels; adopt them as they arrive.
	pc.OnDataChannel(func(dc *webrtc.DataChannel) {
		log.Printf("data channel received: %s", dc.Label())
		switch dc.Label() {
		case "frames":
			v.transport.SetFramesChannel(dc)
		case "commands":
			v.transport.SetCommandsChannel(dc)
		}
	})

	pc.OnICECandidate(func(c *webrtc.ICECandidate) {
		if c == nil {
			return
		}
		data, err := json.Marshal(c.ToJSON())
		if err != nil {
			log.Printf("marshal ICE candidate: %v", err)
			return
		}
		_ = sig.SendICECandidate(publisherID, data)
	})

	return v, nil
}

// Transport returns the transport for receiving frames and sending
// commands.
func (v *Viewer) Transport() *transport.DataChannelTransport {
	return v.transport
}

// Connect creates an offer and sends it to the publisher.
func (v *Viewer) Connect() error {
	offer, err := v.pc.CreateOffer(nil)
	if err != nil {
		return err
	}
	if err := v.pc.SetLocalDescription(offer); err != nil {
		return err
	}

	offerJSON, err := json.Marshal(offer)
	if err != nil {
		return err
	}
	return v.sig.SendOffer(v.publisherID, offerJSON)
}

// HandleAnswer processes the publisher's SDP answer.
func (v *Viewer) HandleAnswer(payload json.RawMessage) error {
	var answer webrtc.SessionDescription
	if err := json.Unmarshal(payload, &answer); err != nil {
		return err
	}
	return v.pc.SetRemoteDescription(answer)
}

// HandleICECandidate adds a remote ICE candidate.
func (v *Viewer) HandleICECandidate(payload json.RawMessage) error {
	var candidate webrtc.ICECandidateInit
	if err := json.Unmarshal(payload, &candidate); err != nil {
		return err
	}
	return v.pc.AddICECandidate(candidate)
}

// Close shuts down the peer connection.
func (v *Viewer) Close() {
	if v.pc != nil {
		v.pc.Close()
	}
}
