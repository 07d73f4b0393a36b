package cart

// Mapper is the minimal polymorphic surface a cartridge chip exposes to the
// Cartridge it is plugged into: translate a CPU address into an offset into
// the ROM or RAM backing slab, and accept control writes. This is the only
// axis of variation between the mapper kinds this core supports that
// materially affects correctness, so the rest of the cartridge logic (the
// range check against the slab, unmapped RAM returning 0xFF) lives once in
// Cartridge rather than per mapper.
type Mapper interface {
	// TranslateROM returns a byte offset into the ROM slab for a CPU address
	// in 0x0000..0x7FFF. MBC1 masks the offset by ROM size; Cartridge reads
	// 0xFF for any offset that still falls outside the slab.
	TranslateROM(addr uint16) int

	// TranslateRAM returns a byte offset into the RAM slab for a CPU address
	// in 0xA000..0xBFFF, and whether RAM is currently enabled. When ok is
	// false the caller must treat the access as absent (read 0xFF, drop
	// write) regardless of the offset value.
	TranslateRAM(addr uint16) (offset int, ok bool)

	// Write handles a CPU write in 0x0000..0x7FFF, which on real hardware is
	// never ROM data but always a control register belonging to the mapper.
	Write(addr uint16, value byte)
}

// maskOffset wraps off into a slab of the given size, which is always a
// power of two per §4.3's "sizes are always powers of two" invariant.
func maskOffset(off, size int) int {
	if size == 0 {
		return 0
	}
	return off & (size - 1)
}
