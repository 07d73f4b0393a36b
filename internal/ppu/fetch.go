package ppu

// VRAMReader abstracts the byte source a tile fetch reads from, so scanline
// rendering can be tested against a bare byte array instead of a live PPU.
type VRAMReader interface {
	Read(addr uint16) byte
}

// fifo is a small ring buffer of 2-bit color indices, sized to hold four
// tiles' worth of pixels.
type fifo struct {
	buf  [32]byte
	head int
	tail int
	size int
}

func (q *fifo) Clear()   { q.head, q.tail, q.size = 0, 0, 0 }
func (q *fifo) Len() int { return q.size }

func (q *fifo) Push(ci byte) bool {
	if q.size == len(q.buf) {
		return false
	}
	q.buf[q.tail] = ci & 0x03
	q.tail = (q.tail + 1) % len(q.buf)
	q.size++
	return true
}

func (q *fifo) Pop() (byte, bool) {
	if q.size == 0 {
		return 0, false
	}
	v := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return v, true
}

// tileFetcher pulls one 8-pixel tile row into a fifo, resolving the tile ID
// through either the 0x8000 unsigned or 0x8800 signed addressing mode.
type tileFetcher struct {
	mem           VRAMReader
	fifo          *fifo
	mapBase       uint16
	unsigned      bool
	tileIndexAddr uint16
	fineY         byte
}

func newTileFetcher(mem VRAMReader, f *fifo) *tileFetcher {
	return &tileFetcher{mem: mem, fifo: f}
}

func (f *tileFetcher) Configure(mapBase uint16, unsigned bool, tileIndexAddr uint16, fineY byte) {
	f.mapBase = mapBase
	f.unsigned = unsigned
	f.tileIndexAddr = tileIndexAddr
	f.fineY = fineY & 7
}

func (f *tileFetcher) Fetch() {
	tileNum := f.mem.Read(f.tileIndexAddr)
	var base uint16
	if f.unsigned {
		base = 0x8000 + uint16(tileNum)*16 + uint16(f.fineY)*2
	} else {
		base = 0x9000 + uint16(int8(tileNum))*16 + uint16(f.fineY)*2
	}
	lo := f.mem.Read(base)
	hi := f.mem.Read(base + 1)
	for px := 0; px < 8; px++ {
		bit := 7 - byte(px)
		ci := ((hi>>bit)&1)<<1 | ((lo >> bit) & 1)
		f.fifo.Push(ci)
	}
}

// renderBGScanline fills 160 background color indices for ly using the
// tilemap at mapBase with the given addressing mode and scroll position.
func renderBGScanline(mem VRAMReader, mapBase uint16, unsigned bool, scx, scy, ly byte) [160]byte {
	var out [160]byte

	bgY := uint16(ly) + uint16(scy)
	fineY := byte(bgY & 7)
	mapY := (bgY >> 3) & 31

	startX := uint16(scx)
	tileX := (startX >> 3) & 31
	fineX := int(startX & 7)

	tileIndexAddr := mapBase + mapY*32 + tileX

	var q fifo
	f := newTileFetcher(mem, &q)
	f.Configure(mapBase, unsigned, tileIndexAddr, fineY)
	f.Fetch()
	for i := 0; i < fineX; i++ {
		q.Pop()
	}

	for x := 0; x < 160; x++ {
		if q.Len() == 0 {
			tileX = (tileX + 1) & 31
			tileIndexAddr = mapBase + mapY*32 + tileX
			f.Configure(mapBase, unsigned, tileIndexAddr, fineY)
			f.Fetch()
		}
		px, _ := q.Pop()
		out[x] = px
	}
	return out
}

// renderWindowScanline fills background color indices for the window layer
// starting at wxStart (WX-7), using winLine as the window's own internal
// line counter (distinct from LY: it only advances on lines the window was
// actually drawn on).
func renderWindowScanline(mem VRAMReader, mapBase uint16, unsigned bool, wxStart int, winLine byte) [160]byte {
	var out [160]byte
	if wxStart >= 160 {
		return out
	}
	if wxStart < 0 {
		wxStart = 0
	}

	mapY := (uint16(winLine) >> 3) & 31
	fineY := winLine & 7
	tileX := uint16(0)
	tileIndexAddr := mapBase + mapY*32 + tileX

	var q fifo
	f := newTileFetcher(mem, &q)
	f.Configure(mapBase, unsigned, tileIndexAddr, fineY)
	f.Fetch()
	for x := wxStart; x < 160; x++ {
		if q.Len() == 0 {
			tileX = (tileX + 1) & 31
			tileIndexAddr = mapBase + mapY*32 + tileX
			f.Configure(mapBase, unsigned, tileIndexAddr, fineY)
			f.Fetch()
		}
		px, _ := q.Pop()
		out[x] = px
	}
	return out
}
