package mandel

// Point is a point in the complex plane.
type Point struct {
	Re, Im float64
}

// Add returns p shifted by (dre, dim).
func (p Point) Add(dre, dim float64) Point {
	return Point{Re: p.Re + dre, Im: p.Im + dim}
}

// Pixel is a pixel coordinate relative to the canvas center.
// Valid coordinates satisfy |X| < width/2 and |Y| < height/2.
type Pixel struct {
	X, Y int
}

// Region within the Mandelbrot set
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Band is a half-open range of buffer rows [Y0, Y1) rendered by one worker.
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// Mode selects how escape results are turned into pixel colors.
type Mode int

const (
	// ModeContinuous averages normalized escape steps into a gray level.
	ModeContinuous Mode = iota
	// ModeBinary paints escaped points black and interior points white.
	ModeBinary
)

func (m Mode) String() string {
	switch m {
	case ModeContinuous:
		return "continuous"
	case ModeBinary:
		return "binary"
	default:
		return "unknown"
	}
}
