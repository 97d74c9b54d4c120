package mandel

import (
	"encoding/binary"
	"errors"
	"slices"
	"testing"
)

func TestEncodeFrame(t *testing.T) {
	fb := NewFrameBuffer(3, 2)
	for i := range fb.Pix {
		fb.Pix[i] = Pack(uint8(i), uint8(i*2), uint8(i*3))
	}

	b := EncodeFrame(fb)
	if len(b) != 8+4*6 {
		t.Fatalf("len = %d, want %d", len(b), 8+4*6)
	}
	if w, h := binary.LittleEndian.Uint32(b), binary.LittleEndian.Uint32(b[4:]); w != 3 || h != 2 {
		t.Errorf("header = %dx%d, want 3x2", w, h)
	}

	got, err := DecodeFrame(b)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if got.Width != 3 || got.Height != 2 || !slices.Equal(got.Pix, fb.Pix) {
		t.Errorf("DecodeFrame = %+v, want %+v", got, fb)
	}
}

func TestDecodeFrame_Bad(t *testing.T) {
	header := func(w, h uint32, extra int) []byte {
		b := make([]byte, 8+extra)
		binary.LittleEndian.PutUint32(b, w)
		binary.LittleEndian.PutUint32(b[4:], h)
		return b
	}

	tests := []struct {
		name string
		b    []byte
	}{
		{"empty", nil},
		{"short header", []byte{1, 0, 0}},
		{"zero width", header(0, 2, 0)},
		{"missing pixels", header(2, 2, 12)},
		{"extra pixels", header(2, 2, 20)},
		{"ragged", header(1, 1, 5)},
		{"huge", header(1<<31, 1<<31, 16)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeFrame(tt.b); !errors.Is(err, ErrBadFrame) {
				t.Errorf("DecodeFrame() error = %v, want ErrBadFrame", err)
			}
		})
	}
}

func TestEventMessages(t *testing.T) {
	b, err := MarshalEvent(EventDecreaseDepth)
	if err != nil {
		t.Fatalf("MarshalEvent: %v", err)
	}
	if string(b) != `{"event":"decrease-depth"}` {
		t.Errorf("MarshalEvent = %s", b)
	}

	ev, err := UnmarshalEvent([]byte(`{"event":"increase-depth"}`))
	if err != nil || ev != EventIncreaseDepth {
		t.Errorf("UnmarshalEvent = %v, %v", ev, err)
	}
	if _, err := UnmarshalEvent([]byte(`{"event":"pan-left"}`)); err == nil {
		t.Error("UnmarshalEvent accepted an unknown event")
	}
	if _, err := UnmarshalEvent([]byte(`not json`)); err == nil {
		t.Error("UnmarshalEvent accepted garbage")
	}
}

func TestServerMessages(t *testing.T) {
	b, err := MarshalServerMessage(ServerMessage{
		Type:   MsgHello,
		Width:  8,
		Height: 6,
		Region: &Region{Xmin: -2, Xmax: 2, Ymin: -2, Ymax: 2},
	})
	if err != nil {
		t.Fatalf("MarshalServerMessage: %v", err)
	}

	m, err := UnmarshalServerMessage(b)
	if err != nil {
		t.Fatalf("UnmarshalServerMessage: %v", err)
	}
	if m.Type != MsgHello || m.Width != 8 || m.Height != 6 || m.Region == nil || m.Region.Xmax != 2 {
		t.Errorf("hello = %+v", m)
	}
	if m.Status != "" || m.Depth != 0 {
		t.Errorf("hello carries status fields: %+v", m)
	}
}
