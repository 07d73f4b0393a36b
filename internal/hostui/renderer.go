// Package hostui adapts the core machine to an ebiten window: a
// render.Renderer that accumulates scanlines into an RGBA framebuffer, and
// an ebiten.Game driving the machine forward and polling keyboard input.
package hostui

import "github.com/pxlforge/dmgcore/internal/render"

const (
	screenW = 160
	screenH = 144
)

// dmgShades is the classic four-shade green palette, index 0 = lightest.
var dmgShades = [4][3]byte{
	{0x9B, 0xBC, 0x0F},
	{0x8B, 0xAC, 0x0F},
	{0x30, 0x62, 0x30},
	{0x0F, 0x38, 0x0F},
}

// FramebufferRenderer implements render.Renderer by resolving each pixel's
// palette-relative color index to one of the four DMG shades and writing it
// into a plain RGBA byte slice, the same shape ebiten.Image.WritePixels and
// image/png expect.
type FramebufferRenderer struct {
	pix    []byte // RGBA, screenW*screenH*4
	frames uint64
}

// NewFramebufferRenderer returns a renderer with a zeroed 160x144 RGBA buffer.
func NewFramebufferRenderer() *FramebufferRenderer {
	return &FramebufferRenderer{pix: make([]byte, screenW*screenH*4)}
}

// DrawPixels implements render.Renderer.
func (f *FramebufferRenderer) DrawPixels(x, y int, pixels []render.PixelInfo) {
	if y < 0 || y >= screenH {
		return
	}
	base := y * screenW * 4
	for i, p := range pixels {
		px := x + i
		if px < 0 || px >= screenW {
			continue
		}
		shade := dmgShades[p.DefaultColor&0x03]
		o := base + px*4
		f.pix[o+0] = shade[0]
		f.pix[o+1] = shade[1]
		f.pix[o+2] = shade[2]
		f.pix[o+3] = 0xFF
	}
}

// FinishFrame implements render.Renderer.
func (f *FramebufferRenderer) FinishFrame() { f.frames++ }

// Pixels returns the current RGBA framebuffer. Callers must not retain it
// across the next DrawPixels call; copy if a stable snapshot is needed.
func (f *FramebufferRenderer) Pixels() []byte { return f.pix }

// Frames returns the number of frames completed since construction.
func (f *FramebufferRenderer) Frames() uint64 { return f.frames }
