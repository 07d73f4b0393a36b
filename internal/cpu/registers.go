package cpu

// Flag bit positions within F, per the documented register layout.
const (
	flagZ = 1 << 7
	flagN = 1 << 6
	flagH = 1 << 5
	flagC = 1 << 4
)

// Registers stores the eight 8-bit registers as a fixed byte layout and
// exposes the AF/BC/DE/HL pairs by packing/unpacking explicitly, so the
// behavior is identical regardless of host endianness.
type Registers struct {
	A, F byte
	B, C byte
	D, E byte
	H, L byte
	SP   uint16
	PC   uint16
}

func (r *Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F&0xF0) }
func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }
func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }
func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

func (r *Registers) SetAF(v uint16) { r.A = byte(v >> 8); r.F = byte(v) & 0xF0 }
func (r *Registers) SetBC(v uint16) { r.B = byte(v >> 8); r.C = byte(v) }
func (r *Registers) SetDE(v uint16) { r.D = byte(v >> 8); r.E = byte(v) }
func (r *Registers) SetHL(v uint16) { r.H = byte(v >> 8); r.L = byte(v) }

func (r *Registers) flag(mask byte) bool  { return r.F&mask != 0 }
func (r *Registers) setFlag(mask byte, v bool) {
	if v {
		r.F |= mask
	} else {
		r.F &^= mask
	}
}

func (r *Registers) Z() bool { return r.flag(flagZ) }
func (r *Registers) N() bool { return r.flag(flagN) }
func (r *Registers) H() bool { return r.flag(flagH) }
func (r *Registers) C() bool { return r.flag(flagC) }

func (r *Registers) SetZ(v bool) { r.setFlag(flagZ, v) }
func (r *Registers) SetN(v bool) { r.setFlag(flagN, v) }
func (r *Registers) SetH(v bool) { r.setFlag(flagH, v) }
func (r *Registers) SetC(v bool) { r.setFlag(flagC, v) }

// Reset restores the documented post-boot-ROM register values.
func (r *Registers) Reset() {
	r.SetAF(0x01B0)
	r.SetBC(0x0013)
	r.SetDE(0x00D8)
	r.SetHL(0x014D)
	r.SP = 0xFFFE
	r.PC = 0x0100
}
