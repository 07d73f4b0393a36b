package ppu

// ComposeSpriteLine matches the exported contract used by PPU tests: it
// returns only the resolved color index per pixel.
func ComposeSpriteLine(mem VRAMReader, sprites []Sprite, ly byte, bgci [160]byte, bgDisabled bool) [160]byte {
	colors, _ := composeSpriteLineTall(mem, sprites, ly, bgci, bgDisabled, false)
	return colors
}

// composeSpriteLineTall is the real implementation; tall selects 8x16 mode,
// which determines which half of a two-tile object a given row belongs to.
func composeSpriteLineTall(mem VRAMReader, sprites []Sprite, ly byte, bgci [160]byte, bgDisabled, tall bool) (colors [160]byte, useOBP1 [160]bool) {
	written := [160]bool{}

	for _, s := range sprites {
		row := int(ly) - s.Y
		height := 8
		if tall {
			height = 16
		}
		if row < 0 || row >= height {
			continue
		}
		if s.Attr&attrYFlip != 0 {
			row = height - 1 - row
		}

		tile := s.Tile
		if tall {
			tile &^= 1
			if row >= 8 {
				tile |= 1
				row -= 8
			}
		}

		base := 0x8000 + uint16(tile)*16 + uint16(row)*2
		lo := mem.Read(base)
		hi := mem.Read(base + 1)

		for px := 0; px < 8; px++ {
			x := s.X + px
			if x < 0 || x >= 160 {
				continue
			}
			if written[x] {
				continue
			}

			col := px
			if s.Attr&attrXFlip != 0 {
				col = 7 - px
			}
			bit := 7 - byte(col)
			ci := ((hi>>bit)&1)<<1 | ((lo >> bit) & 1)
			if ci == 0 {
				continue
			}
			if !bgDisabled && s.Attr&attrBGPriority != 0 && bgci[x] != 0 {
				written[x] = true
				continue
			}

			colors[x] = ci
			useOBP1[x] = s.Attr&attrPalette != 0
			written[x] = true
		}
	}
	return
}
