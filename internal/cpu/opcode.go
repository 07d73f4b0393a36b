package cpu

// RegID names an 8-bit operand slot, including the (HL) indirect slot that
// shares the encoding space with the seven real registers.
type RegID int

const (
	RegB RegID = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegHLInd
	RegA
)

// RegPairID names a 16-bit register pair. Which register occupies slot 3
// (SP vs AF) depends on the instruction class, hence the two tables below.
type RegPairID int

const (
	PairBC RegPairID = iota
	PairDE
	PairHL
	PairSP
	PairAF
)

// CondID names a branch condition.
type CondID int

const (
	CondNZ CondID = iota
	CondZ
	CondNC
	CondC
)

// rpTable maps the 2-bit p field to a pair when slot 3 is SP (LD/INC/DEC/ADD HL).
var rpTable = [4]RegPairID{PairBC, PairDE, PairHL, PairSP}

// rp2Table maps p to a pair when slot 3 is AF (PUSH/POP).
var rp2Table = [4]RegPairID{PairBC, PairDE, PairHL, PairAF}

var condTable = [4]CondID{CondNZ, CondZ, CondNC, CondC}

// decodeFields splits an opcode byte into the x/y/z/p/q bitfields the SM83
// table is organized around: x = op[7:6], y = op[5:3], z = op[2:0],
// p = y[2:1], q = y[0].
func decodeFields(op byte) (x, y, z, p, q byte) {
	x = op >> 6
	y = (op >> 3) & 7
	z = op & 7
	p = y >> 1
	q = y & 1
	return
}
