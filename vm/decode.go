package vm

// Decode maps an Instruction's format-dependent discriminants to an Op. The
// second return value is false when the word does not correspond to a
// defined RV32I operation, matching the Rust reference decoder's
// Option<Op>-returning shape.
func Decode(instr Instruction) (Op, bool) {
	switch instr.Format() {
	case FormatR:
		return decodeR(instr)
	case FormatI:
		return decodeI(instr)
	case FormatS:
		return decodeS(instr)
	case FormatB:
		return decodeB(instr)
	case FormatJ:
		return Jal, true
	case FormatU:
		return decodeU(instr)
	default:
		return 0, false
	}
}

func decodeR(instr Instruction) (Op, bool) {
	funct3, _ := instr.Funct3()
	funct7, _ := instr.Funct7()

	switch funct3 {
	case 0x00:
		switch funct7 {
		case 0x00:
			return Add, true
		case 0x20:
			return Sub, true
		}
	case 0x01:
		return Sll, true
	case 0x02:
		return Slt, true
	case 0x03:
		return SltU, true
	case 0x04:
		return Xor, true
	case 0x05:
		switch funct7 {
		case 0x00:
			return Srl, true
		case 0x20:
			return Sra, true
		}
	case 0x06:
		return Or, true
	case 0x07:
		return And, true
	}
	return 0, false
}

func decodeI(instr Instruction) (Op, bool) {
	switch instr.Opcode() {
	case 0x13:
		return decodeIArith(instr)
	case 0x03:
		return decodeILoad(instr)
	case 0x0f:
		return decodeIMiscMem(instr)
	case 0x67:
		funct3, _ := instr.Funct3()
		if funct3 == 0x00 {
			return Jalr, true
		}
		return 0, false
	default:
		// 0x73 (system/CSR) and 0x17 (auipc) carry no entry here.
		return 0, false
	}
}

func decodeIArith(instr Instruction) (Op, bool) {
	funct3, _ := instr.Funct3()
	switch funct3 {
	case 0x00:
		return AddI, true
	case 0x01:
		return SllI, true
	case 0x02:
		return SltI, true
	case 0x03:
		return SltIU, true
	case 0x04:
		return XorI, true
	case 0x05:
		switch shiftImmFunct7(instr) {
		case 0x00:
			return SrlI, true
		case 0x20:
			return SraI, true
		}
		return 0, false
	case 0x06:
		return OrI, true
	case 0x07:
		return AndI, true
	}
	return 0, false
}

// shiftImmFunct7 recovers the high 7 bits of the I-type immediate, which
// disambiguate srli from srai the same way funct7 disambiguates srl/sra.
func shiftImmFunct7(instr Instruction) uint32 {
	return (instr.Word() >> 25) & 0x7f
}

func decodeILoad(instr Instruction) (Op, bool) {
	funct3, _ := instr.Funct3()
	switch funct3 {
	case 0x00:
		return Lb, true
	case 0x01:
		return Lh, true
	case 0x02:
		return Lw, true
	case 0x04:
		return Lbu, true
	case 0x05:
		return Lhu, true
	}
	return 0, false
}

func decodeIMiscMem(instr Instruction) (Op, bool) {
	funct3, _ := instr.Funct3()
	switch funct3 {
	case 0x00:
		return Fence, true
	case 0x01:
		return FenceI, true
	}
	return 0, false
}

func decodeS(instr Instruction) (Op, bool) {
	funct3, _ := instr.Funct3()
	switch funct3 {
	case 0x00:
		return Sb, true
	case 0x01:
		return Sh, true
	case 0x02:
		return Sw, true
	}
	return 0, false
}

func decodeB(instr Instruction) (Op, bool) {
	funct3, _ := instr.Funct3()
	switch funct3 {
	case 0x00:
		return Beq, true
	case 0x01:
		return Bne, true
	case 0x04:
		return Blt, true
	case 0x05:
		return Bge, true
	case 0x06:
		return BltU, true
	case 0x07:
		return BgeU, true
	}
	return 0, false
}

func decodeU(instr Instruction) (Op, bool) {
	// Only opcode 0x37 (lui) reaches format U; 0x17 (auipc) is classified as
	// format I and has no entry in decodeI. See SPEC_FULL.md §4.5/§6.
	return Lui, true
}
