package cart

import "testing"

// buildROM returns a minimal ROM image of the given size with a header
// encoding mapperID/romSizeCode/ramSizeCode at their documented offsets.
func buildROM(size int, mapperID, romSizeCode, ramSizeCode byte) []byte {
	rom := make([]byte, size)
	copy(rom[0x0134:0x0144], "TESTROM")
	rom[0x0147] = mapperID
	rom[0x0148] = romSizeCode
	rom[0x0149] = ramSizeCode
	return rom
}

func TestNewCartridge_ROMOnly(t *testing.T) {
	rom := buildROM(32*1024, 0x00, 0x00, 0x00)
	rom[0x0100] = 0xAB
	c, err := NewCartridge(rom)
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	if got := c.Read(0x0100); got != 0xAB {
		t.Fatalf("read = %#x, want 0xAB", got)
	}
	if got := c.Read(0xA000); got != 0xFF {
		t.Fatalf("unbacked RAM read = %#x, want 0xFF", got)
	}
	c.Write(0xA000, 0x42) // dropped: no RAM
	if got := c.Read(0xA000); got != 0xFF {
		t.Fatalf("write to absent RAM should be dropped")
	}
}

func TestNewCartridge_SizeMismatchRejected(t *testing.T) {
	rom := buildROM(16*1024, 0x00, 0x00, 0x00) // declares 32 KiB, only has 16
	if _, err := NewCartridge(rom); err != ErrInvalidROM {
		t.Fatalf("err = %v, want ErrInvalidROM", err)
	}
}

func TestNewCartridge_UnsupportedMapperRejected(t *testing.T) {
	rom := buildROM(32*1024, 0x20, 0x00, 0x00)
	if _, err := NewCartridge(rom); err != ErrInvalidROM {
		t.Fatalf("err = %v, want ErrInvalidROM", err)
	}
}

func TestNewCartridge_MBC3MapperIDRejected(t *testing.T) {
	rom := buildROM(32*1024, 0x0F, 0x00, 0x00) // MBC3+TIMER+BATTERY: not implemented
	if _, err := NewCartridge(rom); err != ErrInvalidROM {
		t.Fatalf("err = %v, want ErrInvalidROM", err)
	}
}

func TestNewCartridge_MBC1RAM(t *testing.T) {
	rom := buildROM(64*1024, 0x03, 0x01, 0x02) // MBC1+RAM+BAT, 64KiB ROM, 8KiB RAM
	c, err := NewCartridge(rom)
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	c.Write(0x0000, 0x0A) // enable RAM
	c.Write(0xA000, 0x99)
	if got := c.Read(0xA000); got != 0x99 {
		t.Fatalf("RAM round-trip = %#x, want 0x99", got)
	}
}
