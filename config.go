package mandel

import (
	"errors"
	"flag"
	"fmt"
	"runtime"
)

// ErrInvalidConfig is returned for configurations the renderer cannot use.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the startup constants of a renderer. It is not changed after
// a Controller has been created.
type Config struct {
	Width, Height int
	// Supersample is the number of sub-samples per pixel axis (S in an S×S grid).
	Supersample  int
	InitialDepth int
	DepthStep    int
	// Workers limits how many row bands render at once. 0 means GOMAXPROCS.
	Workers int
	Mode    Mode
}

// DefaultConfig returns the settings of the original viewer: a 1280×720
// canvas starting at depth 1 and moving by 2 per key press.
func DefaultConfig() Config {
	return Config{
		Width:        1280,
		Height:       720,
		Supersample:  2,
		InitialDepth: 1,
		DepthStep:    2,
		Mode:         ModeContinuous,
	}
}

// Validate checks cfg and returns an error wrapping ErrInvalidConfig.
func (cfg Config) Validate() error {
	switch {
	case cfg.Width <= 0 || cfg.Height <= 0:
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalidConfig, cfg.Width, cfg.Height)
	case cfg.Supersample < 1:
		return fmt.Errorf("%w: supersample %d", ErrInvalidConfig, cfg.Supersample)
	case cfg.InitialDepth < 1:
		return fmt.Errorf("%w: initial depth %d", ErrInvalidConfig, cfg.InitialDepth)
	case cfg.DepthStep < 1:
		return fmt.Errorf("%w: depth step %d", ErrInvalidConfig, cfg.DepthStep)
	case cfg.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, cfg.Workers)
	case cfg.Mode != ModeContinuous && cfg.Mode != ModeBinary:
		return fmt.Errorf("%w: mode %d", ErrInvalidConfig, cfg.Mode)
	}
	return nil
}

func (cfg Config) workers() int {
	if cfg.Workers > 0 {
		return cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// ParseMode parses a Mode name as printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "continuous":
		return ModeContinuous, nil
	case "binary":
		return ModeBinary, nil
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
}

// Set implements flag.Value.
func (m *Mode) Set(s string) error {
	v, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// RegisterFlags binds the fields of cfg to command line flags on fs, using the
// current values as defaults.
func (cfg *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&cfg.Width, "width", cfg.Width, "canvas width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "canvas height in pixels")
	fs.IntVar(&cfg.Supersample, "supersample", cfg.Supersample, "sub-samples per pixel axis")
	fs.IntVar(&cfg.InitialDepth, "depth", cfg.InitialDepth, "initial iteration depth")
	fs.IntVar(&cfg.DepthStep, "step", cfg.DepthStep, "depth change per key press")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "parallel render workers (0 = GOMAXPROCS)")
	fs.Var(&cfg.Mode, "mode", "coloring: continuous or binary")
}
