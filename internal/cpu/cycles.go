package cpu

// cycles returns the M-cycle cost of a fully executed unprefixed
// instruction. taken applies only to the conditional branch/call/return
// kinds, which cost more when the branch is actually taken.
func cycles(ins Instruction, taken bool) int {
	switch ins.Kind {
	case KindNOP, KindSTOP, KindDAA, KindCPL, KindSCF, KindCCF,
		KindRLCA, KindRRCA, KindRLA, KindRRA, KindDI, KindEI:
		return 1
	case KindIllegal:
		return 1
	case KindLDRR:
		if ins.Reg == RegHLInd || ins.Reg2 == RegHLInd {
			return 2
		}
		return 1
	case KindLDRN:
		if ins.Reg == RegHLInd {
			return 3
		}
		return 2
	case KindLDRPNN:
		return 3
	case KindLDNNSP:
		return 5
	case KindJR:
		return 3
	case KindJRCC:
		if taken {
			return 3
		}
		return 2
	case KindADDHLRP:
		return 2
	case KindLDIndA, KindLDAInd:
		return 2
	case KindINCRP, KindDECRP:
		return 2
	case KindINCR, KindDECR:
		if ins.Reg == RegHLInd {
			return 3
		}
		return 1
	case KindHALT:
		return 1
	case KindALU:
		if ins.Reg == RegHLInd {
			return 2
		}
		return 1
	case KindALUN:
		return 2
	case KindRETCC:
		if taken {
			return 5
		}
		return 2
	case KindLDHWriteN, KindLDHReadN:
		return 3
	case KindADDSPD:
		return 4
	case KindLDHLSPD:
		return 3
	case KindPOP:
		return 3
	case KindRET:
		return 4
	case KindRETI:
		return 4
	case KindJPHL:
		return 1
	case KindLDSPHL:
		return 2
	case KindJPCC:
		if taken {
			return 4
		}
		return 3
	case KindLDCWriteA, KindLDCReadA:
		return 2
	case KindLDNNA, KindLDANN:
		return 4
	case KindJP:
		return 4
	case KindCALLCC:
		if taken {
			return 6
		}
		return 3
	case KindPUSH:
		return 4
	case KindCALL:
		return 6
	case KindRST:
		return 4
	}
	return 1
}

// cbCycles returns the M-cycle cost of a fully executed CB-prefixed
// instruction, including the M-cycle spent fetching the CB prefix byte.
func cbCycles(ins Instruction) int {
	switch ins.Kind {
	case KindBIT:
		if ins.Reg == RegHLInd {
			return 3
		}
		return 2
	case KindCBRot, KindRES, KindSET:
		if ins.Reg == RegHLInd {
			return 4
		}
		return 2
	}
	return 2
}
