package mandel

import "fmt"

// Surface presents finished frames: a window, a browser tab or a file.
// The frame is only valid for the duration of the call; surfaces that keep
// pixels around must copy them.
type Surface interface {
	Present(fb *FrameBuffer, status string) error
}

// SurfaceFunc adapts a function to the Surface interface.
type SurfaceFunc func(fb *FrameBuffer, status string) error

func (f SurfaceFunc) Present(fb *FrameBuffer, status string) error {
	return f(fb, status)
}

// Event is a discrete control input delivered to a Controller.
type Event int

const (
	EventNone Event = iota
	EventIncreaseDepth
	EventDecreaseDepth
	EventQuit
)

var eventNames = map[Event]string{
	EventIncreaseDepth: "increase-depth",
	EventDecreaseDepth: "decrease-depth",
	EventQuit:          "quit",
}

func (e Event) String() string {
	if n, ok := eventNames[e]; ok {
		return n
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// ParseEvent parses the wire name of an event ("increase-depth",
// "decrease-depth" or "quit").
func ParseEvent(s string) (Event, error) {
	for e, n := range eventNames {
		if n == s {
			return e, nil
		}
	}
	return EventNone, fmt.Errorf("unknown event %q", s)
}
