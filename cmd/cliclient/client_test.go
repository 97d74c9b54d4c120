package main

import (
	"context"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	mandel "github.com/marben/mandelview"
)

// fakeServer speaks the session protocol, rendering tiny frames whose
// pixels all hold the current depth.
func fakeServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			t.Errorf("Accept: %v", err)
			return
		}
		defer c.CloseNow()
		ctx := r.Context()

		send := func(typ websocket.MessageType, b []byte) bool {
			return c.Write(ctx, typ, b) == nil
		}
		hello, _ := mandel.MarshalServerMessage(mandel.ServerMessage{Type: mandel.MsgHello, Width: 4, Height: 2})
		if !send(websocket.MessageText, hello) {
			return
		}

		depth := 1
		for {
			st, _ := mandel.MarshalServerMessage(mandel.ServerMessage{Type: mandel.MsgStatus, Depth: depth})
			fb := mandel.NewFrameBuffer(4, 2)
			for i := range fb.Pix {
				fb.Pix[i] = uint32(depth)
			}
			if !send(websocket.MessageText, st) || !send(websocket.MessageBinary, mandel.EncodeFrame(fb)) {
				return
			}

			_, b, err := c.Read(ctx)
			if err != nil {
				return
			}
			if ev, err := mandel.UnmarshalEvent(b); err == nil && ev == mandel.EventIncreaseDepth {
				depth += 2
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestFetchFrame(t *testing.T) {
	url := fakeServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tests := []struct {
		depth int
		want  uint32
	}{
		{1, 1},
		{5, 5},
		{6, 7},
	}
	for _, tt := range tests {
		fb, err := fetchFrame(ctx, url, tt.depth)
		if err != nil {
			t.Fatalf("fetchFrame(%d): %v", tt.depth, err)
		}
		if fb.Width != 4 || fb.Height != 2 || fb.Pix[0] != tt.want {
			t.Errorf("fetchFrame(%d) = %dx%d pix %d, want depth %d", tt.depth, fb.Width, fb.Height, fb.Pix[0], tt.want)
		}
	}
}

func TestRenderLocalAndSave(t *testing.T) {
	cfg := mandel.Config{Width: 16, Height: 12, Supersample: 1, InitialDepth: 10, DepthStep: 1}
	fb, err := renderLocal(cfg)
	if err != nil {
		t.Fatalf("renderLocal: %v", err)
	}

	name := filepath.Join(t.TempDir(), "out.png")
	if err := savePNG(name, fb); err != nil {
		t.Fatalf("savePNG: %v", err)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 12 {
		t.Errorf("bounds = %v", b)
	}

	if _, err := renderLocal(mandel.Config{}); err == nil {
		t.Error("renderLocal accepted an empty config")
	}
}
