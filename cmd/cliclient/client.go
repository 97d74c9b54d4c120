package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/coder/websocket"
	mandel "github.com/marben/mandelview"
)

// maxFrameBytes bounds a single binary frame message.
const maxFrameBytes = 64 << 20

// fetchFrame connects to the server at url and raises the session depth until
// it reaches at least depth, returning the frame rendered for it.
func fetchFrame(ctx context.Context, url string, depth int) (*mandel.FrameBuffer, error) {
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}
	defer c.CloseNow()
	c.SetReadLimit(maxFrameBytes)

	hello, err := readText(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("read hello: %w", err)
	}
	if hello.Type != mandel.MsgHello {
		return nil, fmt.Errorf("expected hello, got %q", hello.Type)
	}
	log.Printf("Server canvas is %dx%d", hello.Width, hello.Height)

	for {
		status, err := readText(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("read status: %w", err)
		}
		fb, err := readFrame(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("read frame: %w", err)
		}
		log.Printf("Server rendered %s", status.Status)

		if status.Depth >= depth {
			c.Close(websocket.StatusNormalClosure, "")
			return fb, nil
		}

		b, err := mandel.MarshalEvent(mandel.EventIncreaseDepth)
		if err != nil {
			return nil, err
		}
		if err := c.Write(ctx, websocket.MessageText, b); err != nil {
			return nil, fmt.Errorf("send event: %w", err)
		}
	}
}

func readText(ctx context.Context, c *websocket.Conn) (mandel.ServerMessage, error) {
	typ, b, err := c.Read(ctx)
	if err != nil {
		return mandel.ServerMessage{}, err
	}
	if typ != websocket.MessageText {
		return mandel.ServerMessage{}, errors.New("unexpected binary message")
	}
	return mandel.UnmarshalServerMessage(b)
}

func readFrame(ctx context.Context, c *websocket.Conn) (*mandel.FrameBuffer, error) {
	typ, b, err := c.Read(ctx)
	if err != nil {
		return nil, err
	}
	if typ != websocket.MessageBinary {
		return nil, errors.New("unexpected text message")
	}
	return mandel.DecodeFrame(b)
}
