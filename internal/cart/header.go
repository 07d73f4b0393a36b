package cart

import (
	"errors"
	"strings"
)

const headerEnd = 0x014F

var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// ErrInvalidROM is returned when a ROM image fails the header checks this
// core performs: too small to contain a header, an unrecognized ROM/RAM
// size code, or a mapper id this core does not implement.
var ErrInvalidROM = errors.New("cart: invalid ROM image")

// Header holds the cartridge header fields this core inspects: 0x147
// (mapper id), 0x148 (ROM size code) and 0x149 (RAM size code), per §6.
type Header struct {
	Title       string
	CGBFlag     byte
	MapperID    byte
	ROMSizeCode byte
	RAMSizeCode byte

	ROMSizeBytes int
	RAMSizeBytes int
}

// ParseHeader validates and decodes the fields ParseHeader needs from a raw
// ROM image. It never mutates rom, and returns ErrInvalidROM without
// allocating a cartridge on any check failure, matching §7's "Invalid ROM
// image" taxonomy entry: the load operation fails and no state is mutated.
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < headerEnd+1 {
		return nil, ErrInvalidROM
	}

	title := strings.TrimRight(string(rom[0x0134:0x0144]), "\x00")

	h := &Header{
		Title:       title,
		CGBFlag:     rom[0x0143],
		MapperID:    rom[0x0147],
		ROMSizeCode: rom[0x0148],
		RAMSizeCode: rom[0x0149],
	}

	romSize, ok := decodeROMSize(h.ROMSizeCode)
	if !ok {
		return nil, ErrInvalidROM
	}
	h.ROMSizeBytes = romSize

	ramSize, ok := decodeRAMSize(h.RAMSizeCode)
	if !ok {
		return nil, ErrInvalidROM
	}
	h.RAMSizeBytes = ramSize

	if _, ok := mapperKindOf(h.MapperID); !ok {
		return nil, ErrInvalidROM
	}

	return h, nil
}

// HeaderChecksumOK reports whether the 8-bit header checksum at 0x014D
// matches bytes 0x0134..0x014C. Diagnostic only; never required to load.
func HeaderChecksumOK(rom []byte) bool {
	if len(rom) < 0x014E {
		return false
	}
	var sum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	return sum == rom[0x014D]
}

// HasNintendoLogo reports whether the boot logo bytes match; diagnostic only.
func HasNintendoLogo(rom []byte) bool {
	if len(rom) < 0x0104+48 {
		return false
	}
	for i := 0; i < 48; i++ {
		if rom[0x0104+i] != nintendoLogo[i] {
			return false
		}
	}
	return true
}

// decodeROMSize returns 32 KiB * 2^code, per §1's size formula.
func decodeROMSize(code byte) (int, bool) {
	if code > 0x08 {
		return 0, false
	}
	return 32 * 1024 << code, true
}

// decodeRAMSize implements the {0,2,3,4,5} RAM-size table from §4.3.
func decodeRAMSize(code byte) (int, bool) {
	switch code {
	case 0x00:
		return 0, true
	case 0x02:
		return 8 * 1024, true
	case 0x03:
		return 32 * 1024, true
	case 0x04:
		return 128 * 1024, true
	case 0x05:
		return 64 * 1024, true
	default:
		return 0, false
	}
}

type mapperKind int

const (
	kindNone mapperKind = iota
	kindMBC1
)

// mapperKindOf dispatches header[0x147] to a mapper family per §4.3: 0x00
// none, 0x01-0x03 MBC1. Every other value is rejected for this core.
func mapperKindOf(id byte) (mapperKind, bool) {
	switch id {
	case 0x00:
		return kindNone, true
	case 0x01, 0x02, 0x03:
		return kindMBC1, true
	default:
		return 0, false
	}
}

// String renders a short diagnostic line, e.g. for a startup log message.
func (h Header) String() string {
	return h.Title + " [" + cartTypeString(h.MapperID) + "]"
}

func cartTypeString(id byte) string {
	switch k, _ := mapperKindOf(id); k {
	case kindNone:
		return "ROM ONLY"
	case kindMBC1:
		return "MBC1"
	default:
		return "unknown"
	}
}
