package cart

// noneMapper is the mapper for cartridge type 0x00: no banking, no external
// RAM. The ROM address passes through unchanged; RAM is always disabled.
type noneMapper struct{}

func (noneMapper) TranslateROM(addr uint16) int    { return int(addr) }
func (noneMapper) TranslateRAM(uint16) (int, bool) { return 0, false }
func (noneMapper) Write(uint16, byte)              {}
