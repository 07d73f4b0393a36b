package ppu

import "testing"

type mockVRAM map[uint16]byte

func (m mockVRAM) Read(addr uint16) byte { return m[addr] }

func TestComposeSpriteLinePriorityAndTransparency(t *testing.T) {
	mem := mockVRAM{}
	base := uint16(0x8000)
	mem[base+0] = 0x80
	mem[base+1] = 0x00
	sprites := []Sprite{{X: 10, Y: 5, Tile: 0, Attr: 0, OAMIndex: 0}}
	var bgci [160]byte
	out := ComposeSpriteLine(mem, sprites, 5, bgci, false)
	if out[10] == 0 {
		t.Fatalf("expected sprite pixel at x=10")
	}

	sprites[0].Attr = attrBGPriority
	bgci[10] = 1
	out = ComposeSpriteLine(mem, sprites, 5, bgci, false)
	if out[10] != 0 {
		t.Fatalf("expected sprite pixel to be hidden behind BG")
	}
}

func TestComposeSpriteLine_OverlappingSpritesDrawn(t *testing.T) {
	mem := mockVRAM{}
	base := uint16(0x8000)
	mem[base+0] = 0xFF
	mem[base+1] = 0x00
	s0 := Sprite{X: 19, Y: 0, Tile: 0, Attr: 0, OAMIndex: 5}
	s1 := Sprite{X: 20, Y: 0, Tile: 0, Attr: 0, OAMIndex: 3}
	var bgci [160]byte
	out := ComposeSpriteLine(mem, []Sprite{s0, s1}, 0, bgci, false)
	if out[20] == 0 {
		t.Fatalf("expected a sprite at x=20")
	}
}

func TestComposeSpriteLine_XFlip(t *testing.T) {
	mem := mockVRAM{}
	base := uint16(0x8000)
	mem[base+0] = 0x80 // leftmost pixel set, rest clear
	mem[base+1] = 0x00
	sprites := []Sprite{{X: 0, Y: 0, Tile: 0, Attr: attrXFlip, OAMIndex: 0}}
	var bgci [160]byte
	out := ComposeSpriteLine(mem, sprites, 0, bgci, false)
	if out[0] != 0 {
		t.Fatalf("X-flip should move the set pixel to the rightmost column")
	}
	if out[7] == 0 {
		t.Fatalf("expected flipped pixel at x=7")
	}
}

func TestComposeSpriteLine_BGDisabledIgnoresPriority(t *testing.T) {
	mem := mockVRAM{}
	base := uint16(0x8000)
	mem[base+0] = 0x80
	mem[base+1] = 0x00
	sprites := []Sprite{{X: 0, Y: 0, Tile: 0, Attr: attrBGPriority, OAMIndex: 0}}
	var bgci [160]byte
	bgci[0] = 1
	out := ComposeSpriteLine(mem, sprites, 0, bgci, true)
	if out[0] == 0 {
		t.Fatalf("with BG disabled, object priority bit should be ignored")
	}
}
