package cpu

// execute runs a fully decoded unprefixed instruction and returns whether a
// conditional branch/call/return was taken (irrelevant, and false, for
// unconditional kinds) so the caller can look up the correct cycle cost.
func (c *CPU) execute(ins Instruction) bool {
	switch ins.Kind {
	case KindNOP:
		// nothing

	case KindIllegal:
		// Hard stop until Reset: stopped keeps Tick from fetching again even
		// when an interrupt becomes pending; halted lets Halted() report it.
		c.halted = true
		c.stopped = true

	case KindLDRR:
		c.write8(ins.Reg, c.read8(ins.Reg2))

	case KindLDRN:
		c.write8(ins.Reg, c.fetchImm8())

	case KindLDRPNN:
		c.write16(ins.Pair, c.fetchImm16())

	case KindLDNNSP:
		addr := c.fetchImm16()
		c.Mem.Write(addr, byte(c.SP))
		c.Mem.Write(addr+1, byte(c.SP>>8))

	case KindSTOP:
		c.fetchImm8() // STOP's second byte, conventionally 0x00
		c.stopped = true

	case KindJR:
		d := int8(c.fetchImm8())
		c.PC = uint16(int32(c.PC) + int32(d))

	case KindJRCC:
		d := int8(c.fetchImm8())
		if c.condTrue(ins.Cond) {
			c.PC = uint16(int32(c.PC) + int32(d))
			return true
		}
		return false

	case KindADDHLRP:
		c.SetHL(c.addHL16(c.HL(), c.read16(ins.Pair)))

	case KindLDIndA:
		c.Mem.Write(c.indAddr(ins.Ind), c.A)

	case KindLDAInd:
		c.A = c.Mem.Read(c.indAddr(ins.Ind))

	case KindINCRP:
		c.write16(ins.Pair, c.read16(ins.Pair)+1)

	case KindDECRP:
		c.write16(ins.Pair, c.read16(ins.Pair)-1)

	case KindINCR:
		c.write8(ins.Reg, c.inc8(c.read8(ins.Reg)))

	case KindDECR:
		c.write8(ins.Reg, c.dec8(c.read8(ins.Reg)))

	case KindRLCA:
		c.A = c.rlc(c.A)
		c.SetZ(false)

	case KindRRCA:
		c.A = c.rrc(c.A)
		c.SetZ(false)

	case KindRLA:
		c.A = c.rl(c.A)
		c.SetZ(false)

	case KindRRA:
		c.A = c.rr(c.A)
		c.SetZ(false)

	case KindDAA:
		c.daa()

	case KindCPL:
		c.A = ^c.A
		c.SetN(true)
		c.SetH(true)

	case KindSCF:
		c.SetN(false)
		c.SetH(false)
		c.SetC(true)

	case KindCCF:
		c.SetN(false)
		c.SetH(false)
		c.SetC(!c.C())

	case KindHALT:
		if !c.IME && c.Controller.Pending() != 0 {
			// HALT bug: CPU does not actually halt; the next opcode fetch
			// re-reads the same byte instead of advancing past it.
			c.haltBugSkipIncrement = true
		} else {
			c.halted = true
		}

	case KindALU:
		c.applyALU(ins.AluOp, c.read8(ins.Reg))

	case KindALUN:
		c.applyALU(ins.AluOp, c.fetchImm8())

	case KindRETCC:
		if c.condTrue(ins.Cond) {
			c.PC = c.pop16()
			return true
		}
		return false

	case KindLDHWriteN:
		n := c.fetchImm8()
		c.Mem.Write(0xFF00+uint16(n), c.A)

	case KindADDSPD:
		d := int8(c.fetchImm8())
		c.SP = c.addSPSigned(c.SP, d)

	case KindLDHReadN:
		n := c.fetchImm8()
		c.A = c.Mem.Read(0xFF00 + uint16(n))

	case KindLDHLSPD:
		d := int8(c.fetchImm8())
		c.SetHL(c.addSPSigned(c.SP, d))

	case KindPOP:
		c.write16(ins.Pair, c.pop16())

	case KindRET:
		c.PC = c.pop16()

	case KindRETI:
		c.PC = c.pop16()
		c.IME = true

	case KindJPHL:
		c.PC = c.HL()

	case KindLDSPHL:
		c.SP = c.HL()

	case KindJPCC:
		addr := c.fetchImm16()
		if c.condTrue(ins.Cond) {
			c.PC = addr
			return true
		}
		return false

	case KindLDCWriteA:
		c.Mem.Write(0xFF00+uint16(c.C), c.A)

	case KindLDNNA:
		c.Mem.Write(c.fetchImm16(), c.A)

	case KindLDCReadA:
		c.A = c.Mem.Read(0xFF00 + uint16(c.C))

	case KindLDANN:
		c.A = c.Mem.Read(c.fetchImm16())

	case KindJP:
		c.PC = c.fetchImm16()

	case KindDI:
		c.IME = false
		c.imeDelay = 0

	case KindEI:
		c.imeDelay = 2

	case KindCALLCC:
		addr := c.fetchImm16()
		if c.condTrue(ins.Cond) {
			c.push16(c.PC)
			c.PC = addr
			return true
		}
		return false

	case KindPUSH:
		c.push16(c.read16(ins.Pair))

	case KindCALL:
		addr := c.fetchImm16()
		c.push16(c.PC)
		c.PC = addr

	case KindRST:
		c.push16(c.PC)
		c.PC = uint16(ins.Bit)
	}
	return false
}

// executeCB runs a fully decoded CB-prefixed instruction.
func (c *CPU) executeCB(ins Instruction) {
	switch ins.Kind {
	case KindCBRot:
		v := c.read8(ins.Reg)
		var r byte
		switch ins.RotOp {
		case 0:
			r = c.rlc(v)
		case 1:
			r = c.rrc(v)
		case 2:
			r = c.rl(v)
		case 3:
			r = c.rr(v)
		case 4:
			r = c.sla(v)
		case 5:
			r = c.sra(v)
		case 6:
			r = c.swap(v)
		default:
			r = c.srl(v)
		}
		c.write8(ins.Reg, r)

	case KindBIT:
		c.bit(c.read8(ins.Reg), ins.Bit)

	case KindRES:
		c.write8(ins.Reg, c.read8(ins.Reg)&^(1<<ins.Bit))

	case KindSET:
		c.write8(ins.Reg, c.read8(ins.Reg)|(1<<ins.Bit))
	}
}

func (c *CPU) indAddr(k indKind) uint16 {
	switch k {
	case indBC:
		return c.BC()
	case indDE:
		return c.DE()
	case indHLI:
		hl := c.HL()
		c.SetHL(hl + 1)
		return hl
	default:
		hl := c.HL()
		c.SetHL(hl - 1)
		return hl
	}
}

// applyALU implements the alu[y] A,operand family shared by KindALU/KindALUN:
// ADD, ADC, SUB, SBC, AND, XOR, OR, CP (y selects which, per the standard
// table).
func (c *CPU) applyALU(op byte, operand byte) {
	switch op {
	case 0:
		c.A = c.add8(c.A, operand, false)
	case 1:
		c.A = c.add8(c.A, operand, c.C())
	case 2:
		c.A = c.sub8(c.A, operand, false)
	case 3:
		c.A = c.sub8(c.A, operand, c.C())
	case 4:
		c.A = c.and8(c.A, operand)
	case 5:
		c.A = c.xor8(c.A, operand)
	case 6:
		c.A = c.or8(c.A, operand)
	default: // CP: like SUB but discards the result
		c.sub8(c.A, operand, false)
	}
}
