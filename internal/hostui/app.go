package hostui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/pxlforge/dmgcore/internal/bus"
	"github.com/pxlforge/dmgcore/internal/core"
)

// Config holds windowing options for App.
type Config struct {
	Title string
	Scale int
}

func (c *Config) defaults() {
	if c.Scale <= 0 {
		c.Scale = 3
	}
	if c.Title == "" {
		c.Title = "dmgcore"
	}
}

// App is an ebiten.Game that drives a core.Machine one frame per Update
// call, polling the keyboard for joypad input and blitting the last
// completed frame on Draw.
type App struct {
	cfg     Config
	m       *core.Machine
	r       *FramebufferRenderer
	tex     *ebiten.Image
	paused  bool
	toast   string
	toastAt int
}

// NewApp wires a window around an already-constructed machine. r must be
// the same renderer the machine was built with, so App can read its
// framebuffer after each StepFrame.
func NewApp(cfg Config, m *core.Machine, r *FramebufferRenderer) *App {
	cfg.defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(screenW*cfg.Scale, screenH*cfg.Scale)
	return &App{cfg: cfg, m: m, r: r, tex: ebiten.NewImage(screenW, screenH)}
}

// Run blocks until the window is closed.
func (a *App) Run() error { return ebiten.RunGame(a) }

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.m.Reset()
		a.setToast("reset")
	}
	if a.paused {
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			a.m.StepFrame()
		}
		return nil
	}

	a.m.Bus.SetJoypadState(a.pollButtons())
	a.m.StepFrame()
	if a.toastAt > 0 {
		a.toastAt--
	}
	return nil
}

func (a *App) pollButtons() byte {
	var mask byte
	press := func(k ebiten.Key, bit byte) {
		if ebiten.IsKeyPressed(k) {
			mask |= bit
		}
	}
	press(ebiten.KeyRight, bus.Right)
	press(ebiten.KeyLeft, bus.Left)
	press(ebiten.KeyUp, bus.Up)
	press(ebiten.KeyDown, bus.Down)
	press(ebiten.KeyZ, bus.A)
	press(ebiten.KeyX, bus.B)
	press(ebiten.KeyEnter, bus.Start)
	press(ebiten.KeyShiftRight, bus.SelectBtn)
	return mask
}

func (a *App) setToast(msg string) {
	a.toast = msg
	a.toastAt = 90
}

func (a *App) Draw(screen *ebiten.Image) {
	a.tex.WritePixels(a.r.Pixels())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(a.cfg.Scale), float64(a.cfg.Scale))
	screen.DrawImage(a.tex, op)
	if a.toastAt > 0 {
		ebiten.SetWindowTitle(fmt.Sprintf("%s - %s", a.cfg.Title, a.toast))
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW * a.cfg.Scale, screenH * a.cfg.Scale
}
