package mandel

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// State is the render state of a Controller.
type State int32

const (
	StateIdle State = iota
	StateRendering
)

func (s State) String() string {
	if s == StateRendering {
		return "rendering"
	}
	return "idle"
}

// Controller owns the iteration depth and the frame buffers of one viewer.
// Every depth change re-renders the whole frame before returning.
//
// A Controller is driven by a single goroutine; only State may be read
// concurrently.
type Controller struct {
	r     *Rasterizer
	depth int
	state atomic.Int32

	// front is the last complete frame, back is the render target.
	front, back *FrameBuffer

	elapsed time.Duration
	status  string
}

// NewController validates cfg and renders the first frame at
// cfg.InitialDepth.
func NewController(cfg Config) (*Controller, error) {
	r, err := NewRasterizer(cfg)
	if err != nil {
		return nil, fmt.Errorf("new rasterizer: %w", err)
	}

	c := &Controller{
		r:     r,
		depth: cfg.InitialDepth,
		front: r.NewFrame(),
		back:  r.NewFrame(),
	}
	Logger().Info("controller started",
		"width", cfg.Width, "height", cfg.Height,
		"supersample", cfg.Supersample, "mode", cfg.Mode,
		"depth", cfg.InitialDepth, "step", cfg.DepthStep,
		"workers", cfg.workers())

	c.render()
	return c, nil
}

// Depth returns the current iteration depth.
func (c *Controller) Depth() int {
	return c.depth
}

func (c *Controller) State() State {
	return State(c.state.Load())
}

// Frame returns the last complete frame. It is overwritten by the render
// after next, so callers must not keep it across calls to Handle.
func (c *Controller) Frame() *FrameBuffer {
	return c.front
}

// Status returns a one-line description of the last render.
func (c *Controller) Status() string {
	return c.status
}

// Elapsed returns the wall time of the last render.
func (c *Controller) Elapsed() time.Duration {
	return c.elapsed
}

// Rasterizer returns the rasterizer used by the controller.
func (c *Controller) Rasterizer() *Rasterizer {
	return c.r
}

// Handle applies ev and reports whether a new frame was rendered.
// Quit and unknown events are ignored here; Run handles Quit.
func (c *Controller) Handle(ev Event) bool {
	step := c.r.cfg.DepthStep
	switch ev {
	case EventIncreaseDepth:
		c.depth += step
	case EventDecreaseDepth:
		d := max(1, c.depth-step)
		if d == c.depth {
			return false
		}
		c.depth = d
	default:
		return false
	}

	c.render()
	return true
}

// Run presents the current frame, then applies events until Quit arrives,
// events is closed or ctx is done. Each depth change is rendered and
// presented before the next event is read. A render in progress is never
// interrupted.
func (c *Controller) Run(ctx context.Context, events <-chan Event, s Surface) error {
	if err := s.Present(c.front, c.status); err != nil {
		return fmt.Errorf("present: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case ev, ok := <-events:
			if !ok || ev == EventQuit {
				return nil
			}
			if !c.Handle(ev) {
				continue
			}
			if err := s.Present(c.front, c.status); err != nil {
				return fmt.Errorf("present depth %d: %w", c.depth, err)
			}
		}
	}
}

// render draws the current depth into the back buffer and swaps it to the
// front once complete.
func (c *Controller) render() {
	c.state.Store(int32(StateRendering))
	defer c.state.Store(int32(StateIdle))

	depth := c.depth
	start := time.Now()
	c.r.Render(c.back, depth)
	c.front, c.back = c.back, c.front
	c.elapsed = time.Since(start)

	cfg := c.r.cfg
	c.status = fmt.Sprintf("depth %d | %s | %s S=%d", depth, c.elapsed.Round(time.Microsecond), cfg.Mode, cfg.Supersample)
	Logger().Debug("frame rendered", "depth", depth, "elapsed", c.elapsed)
}
