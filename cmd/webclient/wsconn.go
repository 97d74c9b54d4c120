//go:build js && wasm

package main

import (
	"io"
	"sync"
	"syscall/js"
)

// wsMessage is one websocket message as received by the browser
type wsMessage struct {
	text bool
	data []byte
}

// WSConn is a message oriented wrapper around a browser WebSocket.
// JS callbacks never block: incoming messages are queued in arrival order.
type WSConn struct {
	ws js.Value

	mu     sync.Mutex // needed because js onClose event can preempt Write() call
	closed bool
	queue  []wsMessage
	notify chan struct{} // signalled when queue or closed changes

	openCh chan struct{} // closed when connected
	err    error
}

func NewWSConn(ws js.Value) *WSConn {
	c := &WSConn{
		ws:     ws,
		notify: make(chan struct{}, 1),
		openCh: make(chan struct{}),
	}

	ws.Set("binaryType", "arraybuffer")

	ws.Set("onopen", js.FuncOf(func(js.Value, []js.Value) any {
		close(c.openCh)
		return nil
	}))

	ws.Set("onerror", js.FuncOf(func(js.Value, []js.Value) any {
		c.mu.Lock()
		c.err = io.ErrUnexpectedEOF
		c.closeOpenLocked()
		c.mu.Unlock()
		return nil
	}))

	ws.Set("onmessage", js.FuncOf(func(this js.Value, args []js.Value) any {
		data := args[0].Get("data")
		if data.Type() == js.TypeString {
			c.push(wsMessage{text: true, data: []byte(data.String())})
			return nil
		}

		// binaryType is arraybuffer
		u8 := js.Global().Get("Uint8Array").New(data)
		b := make([]byte, u8.Get("byteLength").Int())
		js.CopyBytesToGo(b, u8)
		c.push(wsMessage{data: b})
		return nil
	}))

	ws.Set("onclose", js.FuncOf(func(js.Value, []js.Value) any {
		logScreenf("ws onClose received")
		c.mu.Lock()
		c.closed = true
		c.closeOpenLocked()
		c.mu.Unlock()
		c.signal()
		return nil
	}))

	return c
}

func (c *WSConn) push(m wsMessage) {
	c.mu.Lock()
	if !c.closed {
		c.queue = append(c.queue, m)
	}
	c.mu.Unlock()
	c.signal()
}

func (c *WSConn) signal() {
	select {
	case c.notify <- struct{}{}:
	default:
	}
}

// closeOpenLocked releases writers waiting for the connection to open.
func (c *WSConn) closeOpenLocked() {
	select {
	case <-c.openCh:
	default:
		close(c.openCh)
	}
}

// ReadMessage blocks until the next message arrives. Messages queued
// before the socket closed are still returned.
func (c *WSConn) ReadMessage() (wsMessage, error) {
	for {
		c.mu.Lock()
		if len(c.queue) > 0 {
			m := c.queue[0]
			c.queue = c.queue[1:]
			c.mu.Unlock()
			return m, nil
		}
		closed := c.closed
		c.mu.Unlock()

		if closed {
			return wsMessage{}, io.EOF
		}
		<-c.notify
	}
}

// WriteText sends p as a text message.
func (c *WSConn) WriteText(p []byte) error {
	if err := c.waitOpen(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return io.ErrClosedPipe
	}

	c.ws.Call("send", string(p))
	return nil
}

func (c *WSConn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.closeOpenLocked()
	c.mu.Unlock()
	c.signal()

	c.ws.Call("close")
	return nil
}

func (c *WSConn) waitOpen() error {
	<-c.openCh

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err != nil {
		return c.err
	}
	if c.closed {
		return io.ErrClosedPipe
	}
	return nil
}
