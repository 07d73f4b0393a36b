package ppu

import "sort"

// Sprite is a selected OAM entry for one scanline, already resolved to
// screen-space coordinates: X and Y are the object's raw OAM x/y minus
// 8/16 respectively, so a sprite whose top-left pixel is on screen has X in
// 0..159 and Y in 0..143.
type Sprite struct {
	X, Y     int
	Tile     byte
	Attr     byte
	OAMIndex int
}

const (
	attrBGPriority = 1 << 7
	attrYFlip      = 1 << 6
	attrXFlip      = 1 << 5
	attrPalette    = 1 << 4
)

// scanOAM implements the §4.5 OAM-scan selection: up to 10 objects
// overlapping ly, ordered by ascending screen X with OAM index breaking ties.
func scanOAM(oam []byte, ly byte, tall bool) []Sprite {
	height := 8
	if tall {
		height = 16
	}

	var selected []Sprite
	for i := 0; i < 40 && len(selected) < 10; i++ {
		base := i * 4
		rawY := oam[base]
		rawX := oam[base+1]
		if rawX == 0 {
			continue
		}
		top := int(rawY) - 16
		if int(ly)+16 < int(rawY) || int(ly)+16 >= int(rawY)+height {
			continue
		}
		selected = append(selected, Sprite{
			X:        int(rawX) - 8,
			Y:        top,
			Tile:     oam[base+2],
			Attr:     oam[base+3],
			OAMIndex: i,
		})
	}

	sort.SliceStable(selected, func(a, b int) bool {
		if selected[a].X != selected[b].X {
			return selected[a].X < selected[b].X
		}
		return selected[a].OAMIndex < selected[b].OAMIndex
	})
	return selected
}
