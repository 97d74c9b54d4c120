// viewer shows the Mandelbrot set in a desktop window.
// Up/Down change the iteration depth by one step per key press, Escape quits.

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	mandel "github.com/marben/mandelview"
)

const targetTPS = 60

// keyEvents maps keys to controller events, checked in this order every tick
var keyEvents = []struct {
	key ebiten.Key
	ev  mandel.Event
}{
	{ebiten.KeyArrowUp, mandel.EventIncreaseDepth},
	{ebiten.KeyArrowDown, mandel.EventDecreaseDepth},
}

// Game implements ebiten.Game on top of a Controller.
type Game struct {
	ctrl *mandel.Controller

	offscreen *ebiten.Image
	pix       []byte
	dirty     bool // frame changed since it was last uploaded
}

func NewGame(ctrl *mandel.Controller) *Game {
	fb := ctrl.Frame()
	return &Game{
		ctrl:  ctrl,
		pix:   make([]byte, 4*fb.Width*fb.Height),
		dirty: true,
	}
}

// Update reacts to key presses, not to held keys: a held key changes the
// depth once.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	for _, k := range keyEvents {
		if !inpututil.IsKeyJustPressed(k.key) {
			continue
		}
		if g.ctrl.Handle(k.ev) {
			g.dirty = true
			setTitle(g.ctrl.Status())
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.offscreen == nil {
		fb := g.ctrl.Frame()
		g.offscreen = ebiten.NewImage(fb.Width, fb.Height)
	}
	if g.dirty {
		g.ctrl.Frame().WriteRGBA(g.pix)
		g.offscreen.WritePixels(g.pix)
		g.dirty = false
	}
	screen.DrawImage(g.offscreen, nil)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	fb := g.ctrl.Frame()
	return fb.Width, fb.Height
}

func setTitle(status string) {
	ebiten.SetWindowTitle(fmt.Sprintf("Mandelbrot - %s - Up/Down depth, ESC to exit", status))
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	cfg := mandel.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	verbose := flag.Bool("v", false, "log every rendered frame")
	flag.Parse()

	if *verbose {
		mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctrl, err := mandel.NewController(cfg)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(targetTPS)
	setTitle(ctrl.Status())

	if err := ebiten.RunGame(NewGame(ctrl)); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
