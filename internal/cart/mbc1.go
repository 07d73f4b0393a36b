package cart

// MBC1 implements the banking scheme of §4.3: a 5-bit ROM bank register
// (0 forced to 1), a 2-bit secondary register that is either the RAM bank
// or the high bits of the ROM bank depending on mode, and a mode bit that
// picks which interpretation applies.
type MBC1 struct {
	romBankLow5 byte // 0x2000-0x3FFF write, 0 forced to 1
	secondary   byte // 0x4000-0x5FFF write, 2 bits
	mode        byte // 0x6000-0x7FFF write, 0 or 1
	ramEnabled  bool

	romSize int
	ramSize int
}

func NewMBC1(romSize, ramSize int) *MBC1 {
	return &MBC1{romBankLow5: 1, romSize: romSize, ramSize: ramSize}
}

func (m *MBC1) TranslateROM(addr uint16) int {
	if addr < 0x4000 {
		if m.mode == 0 {
			return maskOffset(int(addr), m.romSize)
		}
		// mode 1: the secondary register supplies ROM bank bits 19..20 even
		// over the otherwise-fixed low window.
		bank := int(m.secondary&0x03) << 5
		return maskOffset(bank*0x4000+int(addr), m.romSize)
	}
	romBank := int(m.romBankLow5) | int(m.secondary&0x03)<<5
	return maskOffset(romBank*0x4000+int(addr-0x4000), m.romSize)
}

func (m *MBC1) TranslateRAM(addr uint16) (int, bool) {
	if !m.ramEnabled || m.ramSize == 0 {
		return 0, false
	}
	if m.mode == 1 {
		ramBank := int(m.secondary & 0x03)
		return maskOffset(ramBank*0x2000+int(addr-0xA000), m.ramSize), true
	}
	return maskOffset(int(addr-0xA000), m.ramSize), true
}

func (m *MBC1) Write(addr uint16, value byte) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case addr < 0x4000:
		bank := value & 0x1F
		if bank == 0 {
			bank = 1
		}
		m.romBankLow5 = bank
	case addr < 0x6000:
		m.secondary = value & 0x03
	default: // < 0x8000
		m.mode = value & 0x01
	}
}
