package mandel

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

// ErrBadFrame is returned when a binary frame message cannot be decoded.
var ErrBadFrame = errors.New("bad frame")

// frameHeaderLen is the size of the width/height header of a binary frame.
const frameHeaderLen = 8

// Message types sent by the server.
const (
	MsgHello  = "hello"
	MsgStatus = "status"
)

// ServerMessage is a text message from the server. Hello carries the canvas
// geometry, status follows every render and precedes its binary frame.
type ServerMessage struct {
	Type   string  `json:"type"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Region *Region `json:"region,omitempty"`
	Depth  int     `json:"depth,omitempty"`
	Status string  `json:"status,omitempty"`
}

// ClientMessage is a text message from a client carrying one event name.
type ClientMessage struct {
	Event string `json:"event"`
}

func MarshalServerMessage(m ServerMessage) ([]byte, error) {
	return sonic.Marshal(&m)
}

func UnmarshalServerMessage(b []byte) (ServerMessage, error) {
	var m ServerMessage
	if err := sonic.Unmarshal(b, &m); err != nil {
		return ServerMessage{}, fmt.Errorf("unmarshal server message: %w", err)
	}
	return m, nil
}

func MarshalEvent(e Event) ([]byte, error) {
	return sonic.Marshal(&ClientMessage{Event: e.String()})
}

// UnmarshalEvent decodes a client message into an Event.
func UnmarshalEvent(b []byte) (Event, error) {
	var m ClientMessage
	if err := sonic.Unmarshal(b, &m); err != nil {
		return EventNone, fmt.Errorf("unmarshal client message: %w", err)
	}
	return ParseEvent(m.Event)
}

// EncodeFrame encodes fb as little-endian width, height and packed pixels.
func EncodeFrame(fb *FrameBuffer) []byte {
	b := make([]byte, frameHeaderLen+4*len(fb.Pix))
	binary.LittleEndian.PutUint32(b[0:], uint32(fb.Width))
	binary.LittleEndian.PutUint32(b[4:], uint32(fb.Height))
	for i, c := range fb.Pix {
		binary.LittleEndian.PutUint32(b[frameHeaderLen+4*i:], c)
	}
	return b
}

// DecodeFrame decodes a frame produced by EncodeFrame.
func DecodeFrame(b []byte) (*FrameBuffer, error) {
	if len(b) < frameHeaderLen {
		return nil, fmt.Errorf("%w: %d byte message", ErrBadFrame, len(b))
	}
	w := int(binary.LittleEndian.Uint32(b[0:]))
	h := int(binary.LittleEndian.Uint32(b[4:]))
	body := len(b) - frameHeaderLen
	n := body / 4
	if w <= 0 || h <= 0 || body%4 != 0 || n%w != 0 || n/w != h {
		return nil, fmt.Errorf("%w: %dx%d with %d pixel bytes", ErrBadFrame, w, h, body)
	}

	fb := NewFrameBuffer(w, h)
	for i := range fb.Pix {
		fb.Pix[i] = binary.LittleEndian.Uint32(b[frameHeaderLen+4*i:])
	}
	return fb, nil
}
