package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/coder/websocket"
	mandel "github.com/marben/mandelview"
)

const writeTimeout = 10 * time.Second

// serveSession renders frames for one client. Events are read on a separate
// goroutine and applied one at a time by the controller.
func serveSession(ctx context.Context, c *websocket.Conn, cfg mandel.Config) error {
	ctrl, err := mandel.NewController(cfg)
	if err != nil {
		return fmt.Errorf("new controller: %w", err)
	}

	region := ctrl.Rasterizer().Region()
	hello, err := mandel.MarshalServerMessage(mandel.ServerMessage{
		Type:   mandel.MsgHello,
		Width:  cfg.Width,
		Height: cfg.Height,
		Region: &region,
	})
	if err != nil {
		return fmt.Errorf("marshal hello: %w", err)
	}
	if err := write(ctx, c, websocket.MessageText, hello); err != nil {
		return fmt.Errorf("write hello: %w", err)
	}

	runCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	events := make(chan mandel.Event)
	go readEvents(ctx, runCtx, c, events, cancel)

	return ctrl.Run(runCtx, events, &wsSurface{ctx: runCtx, conn: c, ctrl: ctrl})
}

// readEvents forwards client events until the connection fails or the
// session ends. Reads use connCtx so that ending the session does not tear
// down the connection before it is closed properly.
func readEvents(connCtx, runCtx context.Context, c *websocket.Conn, events chan<- mandel.Event, cancel context.CancelCauseFunc) {
	for {
		typ, b, err := c.Read(connCtx)
		if err != nil {
			cancel(err)
			return
		}
		if typ != websocket.MessageText {
			continue
		}

		ev, err := mandel.UnmarshalEvent(b)
		if err != nil {
			log.Printf("ignoring client message: %v", err)
			continue
		}

		select {
		case events <- ev:
		case <-runCtx.Done():
			return
		}
	}
}

// wsSurface sends a status message followed by the binary frame.
type wsSurface struct {
	ctx  context.Context
	conn *websocket.Conn
	ctrl *mandel.Controller
}

func (s *wsSurface) Present(fb *mandel.FrameBuffer, status string) error {
	msg, err := mandel.MarshalServerMessage(mandel.ServerMessage{
		Type:   mandel.MsgStatus,
		Depth:  s.ctrl.Depth(),
		Status: status,
	})
	if err != nil {
		return fmt.Errorf("marshal status: %w", err)
	}
	if err := write(s.ctx, s.conn, websocket.MessageText, msg); err != nil {
		return fmt.Errorf("write status: %w", err)
	}
	if err := write(s.ctx, s.conn, websocket.MessageBinary, mandel.EncodeFrame(fb)); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func write(ctx context.Context, c *websocket.Conn, typ websocket.MessageType, b []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.Write(ctx, typ, b)
}
