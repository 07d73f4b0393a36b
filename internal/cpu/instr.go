package cpu

// Kind tags the family an opcode belongs to. Operand details (which
// register, which condition, which bit) are carried alongside in an
// Instruction rather than expanded into one Kind per opcode.
type Kind int

const (
	KindNOP Kind = iota
	KindIllegal
	KindLDRR   // LD r, r'  (r or r' may be (HL))
	KindLDRN   // LD r, n
	KindLDRPNN // LD rp, nn
	KindLDNNSP // LD (nn), SP
	KindSTOP
	KindJR
	KindJRCC
	KindADDHLRP
	KindLDIndA // LD (BC|DE|HL+|HL-), A
	KindLDAInd // LD A, (BC|DE|HL+|HL-)
	KindINCRP
	KindDECRP
	KindINCR
	KindDECR
	KindRLCA
	KindRRCA
	KindRLA
	KindRRA
	KindDAA
	KindCPL
	KindSCF
	KindCCF
	KindHALT
	KindALU  // alu[op] A, r
	KindALUN // alu[op] A, n
	KindRETCC
	KindLDHWriteN // LD (0xFF00+n), A
	KindADDSPD
	KindLDHReadN // LD A, (0xFF00+n)
	KindLDHLSPD
	KindPOP
	KindRET
	KindRETI
	KindJPHL
	KindLDSPHL
	KindJPCC
	KindLDCWriteA // LD (0xFF00+C), A
	KindLDNNA     // LD (nn), A
	KindLDCReadA  // LD A, (0xFF00+C)
	KindLDANN     // LD A, (nn)
	KindJP
	KindDI
	KindEI
	KindCALLCC
	KindPUSH
	KindCALL
	KindRST
	KindCBRot    // rot[op] r   (RLC/RRC/RL/RR/SLA/SRA/SWAP/SRL)
	KindBIT
	KindRES
	KindSET
	KindCBPrefix // 0xCB itself; the CPU engine intercepts this before decode
)

// indKind enumerates the four (BC)/(DE)/(HL+)/(HL-) addressing forms shared
// by the x=0,z=2 opcode row.
type indKind int

const (
	indBC indKind = iota
	indDE
	indHLI
	indHLD
)

// Instruction is a decoded opcode: a Kind plus whatever operand fields that
// Kind needs. Unused fields are left zero.
type Instruction struct {
	Kind    Kind
	Reg     RegID
	Reg2    RegID
	Pair    RegPairID
	Cond    CondID
	AluOp   byte
	RotOp   byte
	Bit     byte
	Ind     indKind
	Opcode  byte
	Illegal bool
}

var isIllegal = map[byte]bool{
	0xD3: true, 0xDB: true, 0xDD: true, 0xE3: true, 0xE4: true,
	0xEB: true, 0xEC: true, 0xED: true, 0xF4: true, 0xFC: true, 0xFD: true,
}

// decode classifies an unprefixed opcode byte. It always returns a non-NONE
// Kind: undefined opcodes decode as KindIllegal rather than panicking.
func decode(op byte) Instruction {
	if isIllegal[op] {
		return Instruction{Kind: KindIllegal, Opcode: op, Illegal: true}
	}
	x, y, z, p, q := decodeFields(op)

	switch x {
	case 0:
		switch z {
		case 0:
			switch {
			case y == 0:
				return Instruction{Kind: KindNOP, Opcode: op}
			case y == 1:
				return Instruction{Kind: KindLDNNSP, Opcode: op}
			case y == 2:
				return Instruction{Kind: KindSTOP, Opcode: op}
			case y == 3:
				return Instruction{Kind: KindJR, Opcode: op}
			default:
				return Instruction{Kind: KindJRCC, Cond: condTable[y-4], Opcode: op}
			}
		case 1:
			if q == 0 {
				return Instruction{Kind: KindLDRPNN, Pair: rpTable[p], Opcode: op}
			}
			return Instruction{Kind: KindADDHLRP, Pair: rpTable[p], Opcode: op}
		case 2:
			kind := KindLDIndA
			if q == 1 {
				kind = KindLDAInd
			}
			return Instruction{Kind: kind, Ind: indKind(p), Opcode: op}
		case 3:
			if q == 0 {
				return Instruction{Kind: KindINCRP, Pair: rpTable[p], Opcode: op}
			}
			return Instruction{Kind: KindDECRP, Pair: rpTable[p], Opcode: op}
		case 4:
			return Instruction{Kind: KindINCR, Reg: RegID(y), Opcode: op}
		case 5:
			return Instruction{Kind: KindDECR, Reg: RegID(y), Opcode: op}
		case 6:
			return Instruction{Kind: KindLDRN, Reg: RegID(y), Opcode: op}
		case 7:
			kinds := [8]Kind{KindRLCA, KindRRCA, KindRLA, KindRRA, KindDAA, KindCPL, KindSCF, KindCCF}
			return Instruction{Kind: kinds[y], Opcode: op}
		}
	case 1:
		if y == 6 && z == 6 {
			return Instruction{Kind: KindHALT, Opcode: op}
		}
		return Instruction{Kind: KindLDRR, Reg: RegID(y), Reg2: RegID(z), Opcode: op}
	case 2:
		return Instruction{Kind: KindALU, AluOp: y, Reg: RegID(z), Opcode: op}
	case 3:
		switch z {
		case 0:
			switch {
			case y <= 3:
				return Instruction{Kind: KindRETCC, Cond: condTable[y], Opcode: op}
			case y == 4:
				return Instruction{Kind: KindLDHWriteN, Opcode: op}
			case y == 5:
				return Instruction{Kind: KindADDSPD, Opcode: op}
			case y == 6:
				return Instruction{Kind: KindLDHReadN, Opcode: op}
			default:
				return Instruction{Kind: KindLDHLSPD, Opcode: op}
			}
		case 1:
			if q == 0 {
				return Instruction{Kind: KindPOP, Pair: rp2Table[p], Opcode: op}
			}
			switch p {
			case 0:
				return Instruction{Kind: KindRET, Opcode: op}
			case 1:
				return Instruction{Kind: KindRETI, Opcode: op}
			case 2:
				return Instruction{Kind: KindJPHL, Opcode: op}
			default:
				return Instruction{Kind: KindLDSPHL, Opcode: op}
			}
		case 2:
			switch {
			case y <= 3:
				return Instruction{Kind: KindJPCC, Cond: condTable[y], Opcode: op}
			case y == 4:
				return Instruction{Kind: KindLDCWriteA, Opcode: op}
			case y == 5:
				return Instruction{Kind: KindLDNNA, Opcode: op}
			case y == 6:
				return Instruction{Kind: KindLDCReadA, Opcode: op}
			default:
				return Instruction{Kind: KindLDANN, Opcode: op}
			}
		case 3:
			switch y {
			case 0:
				return Instruction{Kind: KindJP, Opcode: op}
			case 1:
				return Instruction{Kind: KindCBPrefix, Opcode: op}
			case 6:
				return Instruction{Kind: KindDI, Opcode: op}
			case 7:
				return Instruction{Kind: KindEI, Opcode: op}
			}
		case 4:
			if y <= 3 {
				return Instruction{Kind: KindCALLCC, Cond: condTable[y], Opcode: op}
			}
		case 5:
			if q == 0 {
				return Instruction{Kind: KindPUSH, Pair: rp2Table[p], Opcode: op}
			}
			if p == 0 {
				return Instruction{Kind: KindCALL, Opcode: op}
			}
		case 6:
			return Instruction{Kind: KindALUN, AluOp: y, Opcode: op}
		case 7:
			return Instruction{Kind: KindRST, Bit: y * 8, Opcode: op}
		}
	}
	return Instruction{Kind: KindIllegal, Opcode: op, Illegal: true}
}

// decodeCB classifies a CB-prefixed opcode byte, which always operates on
// a register (or (HL)) named by z, with y selecting the rotate family, bit
// index, or RES/SET index depending on x.
func decodeCB(op byte) Instruction {
	x, y, z, _, _ := decodeFields(op)
	switch x {
	case 0:
		return Instruction{Kind: KindCBRot, RotOp: y, Reg: RegID(z), Opcode: op}
	case 1:
		return Instruction{Kind: KindBIT, Bit: y, Reg: RegID(z), Opcode: op}
	case 2:
		return Instruction{Kind: KindRES, Bit: y, Reg: RegID(z), Opcode: op}
	default:
		return Instruction{Kind: KindSET, Bit: y, Reg: RegID(z), Opcode: op}
	}
}
