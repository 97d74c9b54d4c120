package mandel

import (
	"image"
)

// Packed colors used by the binary mode.
const (
	Black uint32 = 0x000000
	White uint32 = 0xFFFFFF
)

// Pack packs 8-bit channels into a 0x00RRGGBB word.
func Pack(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Unpack splits a packed word back into its channels.
func Unpack(c uint32) (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// FrameBuffer is a row-major array of packed colors, one per pixel.
// Pixels are addressed relative to the canvas center.
type FrameBuffer struct {
	Width, Height int
	Pix           []uint32
}

func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Pix:    make([]uint32, w*h),
	}
}

// InBounds reports whether (x, y) may be written. Coordinates with
// |x| >= Width/2 or |y| >= Height/2 are clipped.
func (fb *FrameBuffer) InBounds(x, y int) bool {
	return abs(x) < fb.Width/2 && abs(y) < fb.Height/2
}

// Index returns the slot of (x, y) in Pix. It does not check bounds.
func (fb *FrameBuffer) Index(x, y int) int {
	return (fb.Height/2+y)*fb.Width + (fb.Width/2 + x)
}

// Set writes c at (x, y) and reports whether the pixel was in bounds.
// Out of bounds writes are dropped.
func (fb *FrameBuffer) Set(x, y int, c uint32) bool {
	if !fb.InBounds(x, y) {
		return false
	}
	fb.Pix[fb.Index(x, y)] = c
	return true
}

// At returns the color at (x, y), or 0 when (x, y) is clipped.
func (fb *FrameBuffer) At(x, y int) uint32 {
	if !fb.InBounds(x, y) {
		return 0
	}
	return fb.Pix[fb.Index(x, y)]
}

// CopyFrom overwrites fb with the contents of src. Both buffers must have the
// same dimensions.
func (fb *FrameBuffer) CopyFrom(src *FrameBuffer) {
	if fb.Width != src.Width || fb.Height != src.Height {
		panic("mandel: CopyFrom with mismatched dimensions")
	}
	copy(fb.Pix, src.Pix)
}

// RGBA converts the buffer to an opaque image with (0,0) at the top-left.
func (fb *FrameBuffer) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	fb.WriteRGBA(img.Pix)
	return img
}

// WriteRGBA writes the buffer as RGBA bytes into dst, which must hold at
// least 4*Width*Height bytes.
func (fb *FrameBuffer) WriteRGBA(dst []byte) {
	for i, c := range fb.Pix {
		r, g, b := Unpack(c)
		p := dst[i*4 : i*4+4 : i*4+4]
		p[0], p[1], p[2], p[3] = r, g, b, 0xff
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
