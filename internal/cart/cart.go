package cart

// Cartridge is the immutable ROM backing store plus optional RAM backing
// store and pluggable Mapper described in §3. NewCartridge is the only
// fallible entry point: a rejected header mutates nothing (§7).
type Cartridge struct {
	rom    []byte
	ram    []byte
	mapper Mapper
	header Header
}

// NewCartridge validates rom against the header checks in ParseHeader and,
// on success, allocates RAM per the header and selects a mapper by
// header[0x147]. On failure it returns ErrInvalidROM and no Cartridge.
func NewCartridge(rom []byte) (*Cartridge, error) {
	h, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}
	if len(rom) != h.ROMSizeBytes {
		return nil, ErrInvalidROM
	}

	c := &Cartridge{
		rom:    rom,
		header: *h,
	}
	if h.RAMSizeBytes > 0 {
		c.ram = make([]byte, h.RAMSizeBytes)
	}

	kind, _ := mapperKindOf(h.MapperID)
	switch kind {
	case kindNone:
		c.mapper = noneMapper{}
	case kindMBC1:
		c.mapper = NewMBC1(h.ROMSizeBytes, h.RAMSizeBytes)
	}
	return c, nil
}

// Header returns the parsed header for diagnostics (e.g. a startup log line).
func (c *Cartridge) Header() Header { return c.header }

// Read implements the ROM/RAM halves of the cartridge's region of the bus
// map (§4.4): 0x0000-0x7FFF via TranslateROM, 0xA000-0xBFFF via
// TranslateRAM, returning 0xFF when RAM is absent or disabled.
func (c *Cartridge) Read(addr uint16) byte {
	if addr < 0x8000 {
		off := c.mapper.TranslateROM(addr)
		if off >= 0 && off < len(c.rom) {
			return c.rom[off]
		}
		return 0xFF
	}
	off, ok := c.mapper.TranslateRAM(addr)
	if !ok || off < 0 || off >= len(c.ram) {
		return 0xFF
	}
	return c.ram[off]
}

// Write routes a 0x0000-0x7FFF write to the mapper's control registers, and
// a 0xA000-0xBFFF write to RAM when the mapper reports it enabled.
func (c *Cartridge) Write(addr uint16, value byte) {
	if addr < 0x8000 {
		c.mapper.Write(addr, value)
		return
	}
	off, ok := c.mapper.TranslateRAM(addr)
	if !ok || off < 0 || off >= len(c.ram) {
		return
	}
	c.ram[off] = value
}
