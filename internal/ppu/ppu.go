// Package ppu implements the DMG picture processing unit of §4.5: OAM scan,
// background/window/object compositing, and the mode/STAT/LY state machine
// that drives LCD and VBlank interrupts.
package ppu

import (
	"github.com/pxlforge/dmgcore/internal/irq"
	"github.com/pxlforge/dmgcore/internal/render"
)

const (
	modeHBlank = 0
	modeVBlank = 1
	modeOAM    = 2
	modeRender = 3

	oamScanDots    = 80
	renderDots     = 172
	dotsPerLine    = 456
	visibleLines   = 144
	totalLines     = 154
)

// PPU owns VRAM, OAM, and the LCD control/status registers, and drives the
// Renderer once per scanline.
type PPU struct {
	vram [0x2000]byte
	oam  [0xA0]byte

	lcdc, stat, scy, scx, ly, lyc, bgp, obp0, obp1, wy, wx byte

	dot int

	windowLine byte
	frameCount uint64

	selected []Sprite

	Controller *irq.Controller
	Renderer   render.Renderer

	line [160]render.PixelInfo
}

// New returns a PPU wired to the interrupt controller and renderer it drives.
func New(c *irq.Controller, r render.Renderer) *PPU {
	return &PPU{Controller: c, Renderer: r}
}

func (p *PPU) Read(addr uint16) byte {
	switch {
	case addr >= 0x8000 && addr <= 0x9FFF:
		if p.mode() == modeRender {
			return 0xFF
		}
		return p.vram[addr-0x8000]
	case addr >= 0xFE00 && addr <= 0xFE9F:
		if m := p.mode(); m == modeOAM || m == modeRender {
			return 0xFF
		}
		return p.oam[addr-0xFE00]
	case addr == 0xFF40:
		return p.lcdc
	case addr == 0xFF41:
		return 0x80 | (p.stat & 0x7F)
	case addr == 0xFF42:
		return p.scy
	case addr == 0xFF43:
		return p.scx
	case addr == 0xFF44:
		return p.ly
	case addr == 0xFF45:
		return p.lyc
	case addr == 0xFF47:
		return p.bgp
	case addr == 0xFF48:
		return p.obp0
	case addr == 0xFF49:
		return p.obp1
	case addr == 0xFF4A:
		return p.wy
	case addr == 0xFF4B:
		return p.wx
	default:
		return 0xFF
	}
}

func (p *PPU) Write(addr uint16, v byte) {
	switch {
	case addr >= 0x8000 && addr <= 0x9FFF:
		if p.mode() != modeRender {
			p.vram[addr-0x8000] = v
		}
	case addr >= 0xFE00 && addr <= 0xFE9F:
		if m := p.mode(); m != modeOAM && m != modeRender {
			p.oam[addr-0xFE00] = v
		}
	case addr == 0xFF40:
		prev := p.lcdc
		p.lcdc = v
		if prev&0x80 != 0 && v&0x80 == 0 {
			p.ly = 0
			p.dot = 0
			p.setMode(modeHBlank)
			p.updateLYC()
		} else if prev&0x80 == 0 && v&0x80 != 0 {
			p.ly = 0
			p.dot = 0
			p.windowLine = 0
			p.setMode(modeOAM)
			p.updateLYC()
		}
	case addr == 0xFF41:
		p.stat = (p.stat & 0x07) | (v & 0x78)
	case addr == 0xFF42:
		p.scy = v
	case addr == 0xFF43:
		p.scx = v
	case addr == 0xFF44:
		// LY is read-only; writes reset the counter on real hardware.
	case addr == 0xFF45:
		p.lyc = v
		p.updateLYC()
	case addr == 0xFF47:
		p.bgp = v
	case addr == 0xFF48:
		p.obp0 = v
	case addr == 0xFF49:
		p.obp1 = v
	case addr == 0xFF4A:
		p.wy = v
	case addr == 0xFF4B:
		p.wx = v
	}
}

// WriteOAMByte is used by the bus during an OAM DMA transfer, which bypasses
// the mode-gated Write above.
func (p *PPU) WriteOAMByte(offset int, v byte) { p.oam[offset] = v }

// readRaw is the PPU's own view of VRAM/OAM, ungated by the mode-based CPU
// access restrictions Read applies: the fetcher and sprite compositor run
// during mode 3 and must see real data, not the 0xFF a CPU peek would get.
func (p *PPU) readRaw(addr uint16) byte {
	switch {
	case addr >= 0x8000 && addr <= 0x9FFF:
		return p.vram[addr-0x8000]
	case addr >= 0xFE00 && addr <= 0xFE9F:
		return p.oam[addr-0xFE00]
	default:
		return 0xFF
	}
}

// internalReader adapts readRaw to the VRAMReader interface the fetcher and
// sprite compositor consume.
type internalReader struct{ p *PPU }

func (r internalReader) Read(addr uint16) byte { return r.p.readRaw(addr) }

func (p *PPU) mode() byte { return p.stat & 0x03 }

// LY exposes the current scanline for tooling and tests.
func (p *PPU) LY() byte { return p.ly }

// Tick advances the PPU by one T-cycle.
func (p *PPU) Tick() {
	if p.lcdc&0x80 == 0 {
		return
	}

	p.dot++

	var mode byte
	switch {
	case p.ly >= visibleLines:
		mode = modeVBlank
	case p.dot == 1 && p.mode() != modeOAM:
		mode = modeOAM
	case p.dot < oamScanDots:
		mode = modeOAM
	case p.dot < oamScanDots+renderDots:
		mode = modeRender
	default:
		mode = modeHBlank
	}

	if mode == modeOAM && p.mode() != modeOAM {
		p.selected = scanOAM(p.oam[:], p.ly, p.lcdc&0x04 != 0)
	}
	if mode == modeHBlank && p.mode() == modeRender {
		p.renderScanline()
	}
	p.setMode(mode)

	if p.dot >= dotsPerLine {
		p.dot = 0
		p.ly++
		if p.ly == visibleLines {
			p.Controller.Request(irq.VBlank)
			if p.stat&(1<<4) != 0 {
				p.Controller.Request(irq.LCDStat)
			}
			p.Renderer.FinishFrame()
			p.frameCount++
		} else if p.ly > totalLines-1 {
			p.ly = 0
			p.windowLine = 0
		}
		p.updateLYC()
		if p.ly >= visibleLines {
			p.setMode(modeVBlank)
		} else {
			p.setMode(modeOAM)
			p.selected = scanOAM(p.oam[:], p.ly, p.lcdc&0x04 != 0)
		}
	}
}

func (p *PPU) setMode(mode byte) {
	prev := p.mode()
	if prev == mode {
		return
	}
	p.stat = (p.stat &^ 0x03) | mode
	switch mode {
	case modeHBlank:
		if p.stat&(1<<3) != 0 {
			p.Controller.Request(irq.LCDStat)
		}
	case modeOAM:
		if p.stat&(1<<5) != 0 {
			p.Controller.Request(irq.LCDStat)
		}
	}
}

func (p *PPU) updateLYC() {
	if p.ly == p.lyc {
		p.stat |= 1 << 2
		if p.stat&(1<<6) != 0 {
			p.Controller.Request(irq.LCDStat)
		}
	} else {
		p.stat &^= 1 << 2
	}
}

// renderScanline composites background, window and objects for the current
// LY and hands the result to the Renderer in a single call.
func (p *PPU) renderScanline() {
	mem := internalReader{p}
	bgEnabled := p.lcdc&0x01 != 0
	unsigned := p.lcdc&0x10 != 0

	var bgci [160]byte
	if bgEnabled {
		mapBase := uint16(0x9800)
		if p.lcdc&0x08 != 0 {
			mapBase = 0x9C00
		}
		bgci = renderBGScanline(mem, mapBase, unsigned, p.scx, p.scy, p.ly)
	}

	windowEnabled := p.lcdc&0x20 != 0 && p.ly >= p.wy && int(p.wx) <= 166
	if windowEnabled {
		mapBase := uint16(0x9800)
		if p.lcdc&0x40 != 0 {
			mapBase = 0x9C00
		}
		wxStart := int(p.wx) - 7
		winCi := renderWindowScanline(mem, mapBase, unsigned, wxStart, p.windowLine)
		for x := wxStart; x < 160; x++ {
			if x < 0 {
				continue
			}
			bgci[x] = winCi[x]
		}
	}

	spritesEnabled := p.lcdc&0x02 != 0
	var spriteColors [160]byte
	var useOBP1 [160]bool
	if spritesEnabled {
		spriteColors, useOBP1 = composeSpriteLineTall(mem, p.selected, p.ly, bgci, !bgEnabled, p.lcdc&0x04 != 0)
	}

	for x := 0; x < 160; x++ {
		var pi render.PixelInfo
		if spriteColors[x] != 0 {
			pal := render.OBP0
			palReg := p.obp0
			if useOBP1[x] {
				pal = render.OBP1
				palReg = p.obp1
			}
			pi = render.PixelInfo{
				ColorIndex:   spriteColors[x],
				Palette:      pal,
				DefaultColor: (palReg >> (spriteColors[x] * 2)) & 0x03,
			}
		} else {
			ci := bgci[x]
			pi = render.PixelInfo{
				ColorIndex:   ci,
				Palette:      render.BG,
				DefaultColor: (p.bgp >> (ci * 2)) & 0x03,
			}
		}
		p.line[x] = pi
	}
	p.Renderer.DrawPixels(0, int(p.ly), p.line[:])

	if windowEnabled {
		p.windowLine++
	}
}

// BGP, OBP0, OBP1, LCDC, SCY, SCX, WY, WX expose raw register values for
// tooling and tests.
func (p *PPU) BGP() byte  { return p.bgp }
func (p *PPU) OBP0() byte { return p.obp0 }
func (p *PPU) OBP1() byte { return p.obp1 }
func (p *PPU) LCDC() byte { return p.lcdc }
func (p *PPU) SCY() byte  { return p.scy }
func (p *PPU) SCX() byte  { return p.scx }
func (p *PPU) WY() byte   { return p.wy }
func (p *PPU) WX() byte   { return p.wx }

// FrameCount returns the number of frames completed since the last Reset,
// letting callers detect frame boundaries without polling LY.
func (p *PPU) FrameCount() uint64 { return p.frameCount }

// Reset restores the post-boot-ROM state documented in §3.
func (p *PPU) Reset() {
	p.lcdc = 0x91
	p.stat = 0x06 // mode 2 (OAM scan), LY==LYC since both start at 0
	p.scy, p.scx = 0, 0
	p.ly, p.lyc = 0, 0
	p.bgp = 0xFC
	p.obp0, p.obp1 = 0xFF, 0xFF
	p.wy, p.wx = 0, 0
	p.dot = 0
	p.windowLine = 0
	p.frameCount = 0
	p.selected = nil
}
