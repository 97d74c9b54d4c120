//go:build js && wasm

package main

import (
	"syscall/js"

	mandel "github.com/marben/mandelview"
)

// canvasPix is reused between frames of the same size
var canvasPix []byte

func initCanvas(width, height int, color string) {
	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", "myCanvas")

	canvas.Set("width", width)
	canvas.Set("height", height)

	ctx := canvas.Call("getContext", "2d")

	ctx.Set("fillStyle", color)
	ctx.Call("fillRect", 0, 0, width, height)
}

// drawFrame puts a complete frame on the canvas
func drawFrame(fb *mandel.FrameBuffer) {
	// 1. Get the browser context
	document := js.Global().Get("document")
	canvas := document.Call("getElementById", "myCanvas")
	ctx := canvas.Call("getContext", "2d")

	// 2. Convert packed words to RGBA bytes
	n := 4 * fb.Width * fb.Height
	if len(canvasPix) != n {
		canvasPix = make([]byte, n)
	}
	fb.WriteRGBA(canvasPix)

	// 3. Copy into a JS Uint8ClampedArray and wrap it as ImageData
	jsData := js.Global().Get("Uint8ClampedArray").New(n)
	js.CopyBytesToJS(jsData, canvasPix)
	imageData := js.Global().Get("ImageData").New(jsData, fb.Width, fb.Height)

	// 4. The frame always covers the whole canvas
	ctx.Call("putImageData", imageData, 0, 0)
}
