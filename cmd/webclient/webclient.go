//go:build js && wasm

// webclient.go is a WASM web client for the Mandelbrot depth server.
// It connects to the server, forwards key presses as depth events and draws every received frame.

package main

import (
	"fmt"
	"log"
	"syscall/js"

	mandel "github.com/marben/mandelview"
)

// main is the entry point for the WASM web client.
// Note: All rendering is performed by the server; the browser only displays frames.
func main() {
	logScreenf("Starting WASM web client...")

	// Step 1: Determine server address for WebSocket connection
	loc := js.Global().Get("window").Get("location")
	host := loc.Get("host").String()
	proto := "ws"
	if loc.Get("protocol").String() == "https:" {
		proto = "wss"
	}
	websocketUrl := proto + "://" + host + "/ws"

	// Step 2: Connect to server via WebSocket
	logScreenf("Connecting to Mandelbrot server at %s...", websocketUrl)
	conn := NewWSConn(js.Global().Get("WebSocket").New(websocketUrl))

	// Step 3: Wait for the hello message carrying canvas dimensions
	hello, err := readHello(conn)
	if err != nil {
		logFatalf("Failed to read hello: %v", err)
	}
	logScreenf("Dimensions: %dx%d", hello.Width, hello.Height)
	if r := hello.Region; r != nil {
		logScreenf("Region: re [%g, %g) im [%g, %g)", r.Xmin, r.Xmax, r.Ymin, r.Ymax)
	}
	initCanvas(hello.Width, hello.Height, "#3a3a6e")

	// Step 4: Forward key presses to the server
	listenKeys(conn)

	// Step 5: Draw frames until the server closes the connection
	if err := framesLoop(conn); err != nil {
		logFatalf("framesLoop: %v", err)
	}
	logScreenf("Session ended.")

	// Block main goroutine to keep WASM running
	select {}
}

func readHello(conn *WSConn) (mandel.ServerMessage, error) {
	msg, err := conn.ReadMessage()
	if err != nil {
		return mandel.ServerMessage{}, err
	}
	if !msg.text {
		return mandel.ServerMessage{}, fmt.Errorf("expected hello, got %d byte binary message", len(msg.data))
	}
	hello, err := mandel.UnmarshalServerMessage(msg.data)
	if err != nil {
		return mandel.ServerMessage{}, err
	}
	if hello.Type != mandel.MsgHello {
		return mandel.ServerMessage{}, fmt.Errorf("expected hello, got %q", hello.Type)
	}
	return hello, nil
}

// keyEvents maps keyboard keys to controller events
var keyEvents = map[string]mandel.Event{
	"ArrowUp":   mandel.EventIncreaseDepth,
	"ArrowDown": mandel.EventDecreaseDepth,
	"Escape":    mandel.EventQuit,
}

// listenKeys sends one event per key press. Auto-repeat is ignored.
func listenKeys(conn *WSConn) {
	handler := js.FuncOf(func(this js.Value, args []js.Value) any {
		e := args[0]
		if e.Get("repeat").Bool() {
			return nil
		}
		ev, ok := keyEvents[e.Get("key").String()]
		if !ok {
			return nil
		}
		e.Call("preventDefault")

		b, err := mandel.MarshalEvent(ev)
		if err != nil {
			logScreenf("marshal %v: %v", ev, err)
			return nil
		}
		// WriteText may wait for the socket to open
		go func() {
			if err := conn.WriteText(b); err != nil {
				logScreenf("send %v: %v", ev, err)
			}
		}()
		return nil
	})
	js.Global().Get("document").Call("addEventListener", "keydown", handler)
}

// framesLoop reads status messages and frames and puts them on screen.
// It returns nil once the server closes the connection.
func framesLoop(conn *WSConn) error {
	for {
		msg, err := conn.ReadMessage()
		if err != nil {
			return nil
		}

		if msg.text {
			m, err := mandel.UnmarshalServerMessage(msg.data)
			if err != nil {
				return fmt.Errorf("status: %w", err)
			}
			hudSetDepth(m.Depth)
			hudSetStatus(m.Status)
			continue
		}

		fb, err := mandel.DecodeFrame(msg.data)
		if err != nil {
			return err
		}
		drawFrame(fb)
	}
}

// logScreenf appends a formatted message to the log element in the DOM,
func logScreenf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)

	doc := js.Global().Get("document")
	logElem := doc.Call("getElementById", "log")
	logElem.Set("textContent", logElem.Get("textContent").String()+msg+"\n")
}

// logFatalf logs a fatal error to the log window and terminates the program.
func logFatalf(format string, a ...any) {
	logScreenf("FATAL: "+format, a...)
	log.Fatalf(format, a...)
}

// hudSetDepth updates the HUD to show the current iteration depth.
func hudSetDepth(depth int) {
	js.Global().Get("document").Call("getElementById", "depth").Set("textContent", depth)
}

// hudSetStatus shows the status line of the last render.
func hudSetStatus(status string) {
	js.Global().Get("document").Call("getElementById", "status").Set("textContent", status)
}
