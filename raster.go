package mandel

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// bandsPerWorker controls how finely rows are split; more bands than workers
// keeps the pool busy when some rows take longer than others.
const bandsPerWorker = 4

// Rasterizer renders the Mandelbrot set into frame buffers of a fixed size.
// The visible window is [-2, 2) on both axes, centered on the origin.
//
// A Rasterizer holds no mutable state and may be shared between goroutines.
type Rasterizer struct {
	cfg    Config
	scaleX float64 // pixels per unit on the real axis (W/4)
	scaleY float64 // pixels per unit on the imaginary axis (H/4)
}

func NewRasterizer(cfg Config) (*Rasterizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Rasterizer{
		cfg:    cfg,
		scaleX: float64(cfg.Width) / 4,
		scaleY: float64(cfg.Height) / 4,
	}, nil
}

// Config returns the configuration the rasterizer was built with.
func (r *Rasterizer) Config() Config {
	return r.cfg
}

// Region returns the part of the plane covered by the canvas.
func (r *Rasterizer) Region() Region {
	lo := r.Project(Pixel{X: -r.cfg.Width / 2, Y: -r.cfg.Height / 2})
	hi := r.Project(Pixel{X: r.cfg.Width / 2, Y: r.cfg.Height / 2})
	return Region{Xmin: lo.Re, Xmax: hi.Re, Ymin: lo.Im, Ymax: hi.Im}
}

// Project maps a centered pixel coordinate to its point in the plane.
func (r *Rasterizer) Project(p Pixel) Point {
	return Point{
		Re: float64(p.X) / r.scaleX,
		Im: float64(p.Y) / r.scaleY,
	}
}

// Sample averages the normalized escape time over an S×S grid of sub-pixel
// offsets around base. With S = 1 only base itself is evaluated.
func (r *Rasterizer) Sample(base Point, depth int) float64 {
	s := r.cfg.Supersample
	if s <= 1 {
		return Escape(base, depth)
	}

	var sum float64
	for i := 0; i < s; i++ {
		dx := (float64(i)/float64(s) - 0.5) / r.scaleX
		for j := 0; j < s; j++ {
			dy := (float64(j)/float64(s) - 0.5) / r.scaleY
			sum += Escape(base.Add(dx, dy), depth)
		}
	}
	return sum / float64(s*s)
}

// Gray maps an intensity in [0, 1] to a packed gray color.
func Gray(v float64) uint32 {
	g := math.Round(v * 255)
	g = math.Max(0, math.Min(255, g))
	return Pack(uint8(g), uint8(g), uint8(g))
}

// Color returns the packed color of pixel p at the given depth.
func (r *Rasterizer) Color(p Pixel, depth int) uint32 {
	c := r.Project(p)
	if r.cfg.Mode == ModeBinary {
		if Escaped(c, depth) {
			return Black
		}
		return White
	}
	return Gray(r.Sample(c, depth))
}

// NewFrame allocates a frame buffer matching the rasterizer's canvas.
func (r *Rasterizer) NewFrame() *FrameBuffer {
	return NewFrameBuffer(r.cfg.Width, r.cfg.Height)
}

// Render overwrites fb with the image at the given depth. Row bands are
// rendered in parallel; Render returns once every band is done.
func (r *Rasterizer) Render(fb *FrameBuffer, depth int) {
	if fb.Width != r.cfg.Width || fb.Height != r.cfg.Height {
		panic("mandel: frame buffer does not match canvas")
	}

	workers := r.cfg.workers()
	bandRows := max(1, r.cfg.Height/(workers*bandsPerWorker))

	var g errgroup.Group
	g.SetLimit(workers)
	for _, b := range splitRows(r.cfg.Height, bandRows) {
		b := b // per-iteration copy (go 1.21 loop semantics)
		g.Go(func() error {
			r.renderBand(fb, b, depth)
			return nil
		})
	}
	// bands never fail
	_ = g.Wait()
}

// RenderFrame renders into a freshly allocated buffer.
func (r *Rasterizer) RenderFrame(depth int) *FrameBuffer {
	fb := r.NewFrame()
	r.Render(fb, depth)
	return fb
}

// renderBand writes every pixel of the rows in b. Only rows inside b are
// touched, so bands can run concurrently on the same buffer.
func (r *Rasterizer) renderBand(fb *FrameBuffer, b Band, depth int) {
	w, h := r.cfg.Width, r.cfg.Height
	for row := b.Y0; row < b.Y1; row++ {
		y := row - h/2
		for x := -w / 2; x < w/2; x++ {
			fb.Set(x, y, r.Color(Pixel{X: x, Y: y}, depth))
		}
	}
}

// splitRows splits h rows into bands of bandRows rows.
// The last band is smaller if h is not divisible.
func splitRows(h, bandRows int) []Band {
	if bandRows <= 0 {
		panic("band rows must be positive")
	}

	bands := make([]Band, 0, (h+bandRows-1)/bandRows)
	for y := 0; y < h; y += bandRows {
		bands = append(bands, Band{Y0: y, Y1: min(y+bandRows, h)})
	}
	return bands
}
