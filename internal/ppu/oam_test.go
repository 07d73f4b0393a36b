package ppu

import "testing"

func makeOAMEntry(oam []byte, index int, y, x, tile, attr byte) {
	base := index * 4
	oam[base] = y
	oam[base+1] = x
	oam[base+2] = tile
	oam[base+3] = attr
}

func TestScanOAM_SelectsAtMostTen(t *testing.T) {
	var oam [0xA0]byte
	for i := 0; i < 40; i++ {
		makeOAMEntry(oam[:], i, 16, byte(i+1), 0, 0) // all overlap LY=0
	}
	selected := scanOAM(oam[:], 0, false)
	if len(selected) != 10 {
		t.Fatalf("len(selected) = %d, want 10", len(selected))
	}
}

func TestScanOAM_OrdersByXThenIndex(t *testing.T) {
	var oam [0xA0]byte
	makeOAMEntry(oam[:], 0, 16, 50, 0, 0)
	makeOAMEntry(oam[:], 1, 16, 20, 0, 0)
	makeOAMEntry(oam[:], 2, 16, 20, 0, 0)
	selected := scanOAM(oam[:], 0, false)
	if len(selected) != 3 {
		t.Fatalf("len(selected) = %d, want 3", len(selected))
	}
	if selected[0].OAMIndex != 1 || selected[1].OAMIndex != 2 || selected[2].OAMIndex != 0 {
		t.Fatalf("order = %+v, want index 1,2,0 (X then OAM index)", selected)
	}
}

func TestScanOAM_DiscardsInvisible(t *testing.T) {
	var oam [0xA0]byte
	makeOAMEntry(oam[:], 0, 16, 0, 0, 0) // x=0: invisible
	selected := scanOAM(oam[:], 0, false)
	if len(selected) != 0 {
		t.Fatalf("x=0 object should be discarded, got %+v", selected)
	}
}

func TestScanOAM_HeightGating(t *testing.T) {
	var oam [0xA0]byte
	makeOAMEntry(oam[:], 0, 16, 10, 0, 0) // top row at screen Y=0, covers rows 0..7 in 8px mode
	if s := scanOAM(oam[:], 8, false); len(s) != 0 {
		t.Fatalf("8px-tall object should not cover LY=8, got %+v", s)
	}
	if s := scanOAM(oam[:], 8, true); len(s) != 1 {
		t.Fatalf("16px-tall object should cover LY=8, got %+v", s)
	}
}
