package peer

import (
	"encoding/json"
	"log"

	"github.com/pion/webrtc/v4"

	"github.com/dotcam/dotcam/internal/signaling"
	"github.com/dotcam/dotcam/internal/transport"
)

// Publisher is the camera side of the preview connection. It creates
// the data channels, answers a viewer's offer, and streams encoded
// frames out while accepting commands in.
type Publisher struct {
	pc        *webrtc.PeerConnection
	sig       *signaling.Client
	transport *transport.DataChannelTransport
	viewerID  string
}

func NewPublisher(sig *signaling.Client) (*Publisher, error) {
	pc, err := newPeerConnection()
	if err != nil {
		return nil, err
	}

	p := &Publisher{pc: pc, sig: sig}

	// Frames tolerate loss; a dropped preview frame is just replaced
	// by the next one. Commands must arrive, in order.
	framesOrdered := false
	framesMaxRetransmits := uint16(0)
	framesDC, err := pc.CreateDataChannel("frames", &webrtc.DataChannelInit{
		Ordered:        &framesOrdered,
		MaxRetransmits: &framesMaxRetransmits,
	})
	if err != nil {
		pc.Close()
		return nil, err
	}

	commandsOrdered := true
	commandsDC, err := pc.CreateDataChannel("commands", &webrtc.DataChannelInit{
		Ordered: &commandsOrdered,
	})
	if err != nil {
		pc.Close()
		return nil, err
	}

	p.transport = transport.NewDataChannelTransport(framesDC, commandsDC)

	pc.OnICECandidate(func(c *webrtc.ICECandidate) {
		if c == nil || p.viewerID == "" {
			return
		}
		data, err := json.Marshal(c.ToJSON())
		if err != nil {
			log.Printf("marshal ICE candidate: %v", err)
			return
		}
		_ = sig.SendICECandidate(p.viewerID, data)
	})

	return p, nil
}

// Transport returns the transport for sending frames and receiving
// commands.
func (p *Publisher) Transport() *transport.DataChannelTransport {
	return p.transport
}

// HandleOffer processes an incoming offer from a viewer and answers
// it through signaling.
func (p *Publisher) HandleOffer(from string, payload json.RawMessage) error {
	p.viewerID = from

	var offer webrtc.SessionDescription
	if err := json.Unmarshal(payload, &offer); err != nil {
		return err
	}
	if err := p.pc.SetRemoteDescription(offer); err != nil {
		return err
	}

	answer, err := p.pc.CreateAnswer(nil)
	if err != nil {
		return err
	}
	if err := p.pc.SetLocalDescription(answer); err != nil {
		return err
	}

	answerJSON, err := json.Marshal(answer)
	if err != nil {
		return err
	}
	return p.sig.SendAnswer(from, answerJSON)
}

// HandleICECandidate adds a remote ICE candidate.
func (p *Publisher) HandleICECandidate(payload json.RawMessage) error {
	var candidate webrtc.ICECandidateInit
	if err := json.Unmarshal(payload, &candidate); err != nil {
		return err
	}
	return p.pc.AddICECandidate(candidate)
}

// Close shuts down the peer connection.
func (p *Publisher) Close() {
	if p.pc != nil {
		p.pc.Close()
	}
}
