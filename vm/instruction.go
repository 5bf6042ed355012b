package vm

import "fmt"

// Instruction wraps a raw 32-bit RV32I instruction word and exposes its
// format-dependent fields. It performs no decoding of the field values into
// an operation; that is the Decoder's job.
type Instruction struct {
	word uint32
}

// NewInstruction wraps a raw instruction word.
func NewInstruction(word uint32) Instruction {
	return Instruction{word: word}
}

// Word returns the raw 32-bit encoding.
func (i Instruction) Word() uint32 {
	return i.word
}

// Opcode returns the low 7 bits of the word, present in every format.
func (i Instruction) Opcode() uint32 {
	return i.word & 0x7f
}

// Format classifies the instruction by its opcode. FormatInvalid is
// returned for any opcode outside the RV32I format map.
func (i Instruction) Format() Format {
	switch i.Opcode() {
	case 0x03, 0x0f, 0x13, 0x17, 0x67, 0x73:
		return FormatI
	case 0x23:
		return FormatS
	case 0x33:
		return FormatR
	case 0x37:
		return FormatU
	case 0x63:
		return FormatB
	case 0x6f:
		return FormatJ
	default:
		return FormatInvalid
	}
}

// Rd returns the destination register index. Present in I, J, R, U formats.
func (i Instruction) Rd() (uint32, bool) {
	switch i.Format() {
	case FormatI, FormatJ, FormatR, FormatU:
		return (i.word >> 7) & 0x1f, true
	default:
		return 0, false
	}
}

// Rs1 returns the first source register index. Present in B, I, R, S formats.
func (i Instruction) Rs1() (uint32, bool) {
	switch i.Format() {
	case FormatB, FormatI, FormatR, FormatS:
		return (i.word >> 15) & 0x1f, true
	default:
		return 0, false
	}
}

// Rs2 returns the second source register index. Present in B, R, S formats.
func (i Instruction) Rs2() (uint32, bool) {
	switch i.Format() {
	case FormatB, FormatR, FormatS:
		return (i.word >> 20) & 0x1f, true
	default:
		return 0, false
	}
}

// Funct3 returns the 3-bit function field. Present in B, I, R, S formats.
func (i Instruction) Funct3() (uint32, bool) {
	switch i.Format() {
	case FormatB, FormatI, FormatR, FormatS:
		return (i.word >> 12) & 0x7, true
	default:
		return 0, false
	}
}

// Funct7 returns the 7-bit function field. Present only in R format.
func (i Instruction) Funct7() (uint32, bool) {
	if i.Format() != FormatR {
		return 0, false
	}
	return (i.word >> 25) & 0x7f, true
}

// Imm returns the sign-extended immediate for the instruction's format.
// R-format instructions carry no immediate.
func (i Instruction) Imm() (int32, bool) {
	switch i.Format() {
	case FormatB:
		return i.immB(), true
	case FormatI:
		return i.immI(), true
	case FormatJ:
		return i.immJ(), true
	case FormatS:
		return i.immS(), true
	case FormatU:
		return i.immU(), true
	default:
		return 0, false
	}
}

// signExtend places value's low `width` bits at the bottom of a word, then
// shifts left and arithmetic-shifts right to sign-extend from bit width-1.
func signExtend(value uint32, width uint) int32 {
	shift := 32 - width
	return int32(value<<shift) >> shift
}

func (i Instruction) immB() int32 {
	w := i.word
	imm := ((w >> 31) & 0x1 << 12) |
		((w >> 7) & 0x1 << 11) |
		((w >> 25) & 0x3f << 5) |
		((w >> 8) & 0xf << 1)
	return signExtend(imm, 13)
}

func (i Instruction) immI() int32 {
	imm := (i.word >> 20) & 0xfff
	return signExtend(imm, 12)
}

func (i Instruction) immJ() int32 {
	w := i.word
	imm := ((w >> 31) & 0x1 << 20) |
		((w >> 12) & 0xff << 12) |
		((w >> 20) & 0x1 << 11) |
		((w >> 21) & 0x3ff << 1)
	return signExtend(imm, 21)
}

func (i Instruction) immS() int32 {
	w := i.word
	imm := ((w >> 25) & 0x7f << 5) | ((w >> 7) & 0x1f)
	return signExtend(imm, 12)
}

func (i Instruction) immU() int32 {
	imm := (i.word >> 12) & 0xfffff
	return signExtend(imm, 20)
}

// String renders the instruction as "<mnemonic> <operands>", matching the
// disassembly shape tools.Disassemble exposes. Instructions that fail to
// decode render as a raw hex dump.
func (i Instruction) String() string {
	op, ok := Decode(i)
	if !ok {
		return fmt.Sprintf("<illegal 0x%08x>", i.word)
	}
	return formatOperands(i, op)
}

func formatOperands(i Instruction, op Op) string {
	mnemonic := op.String()
	rd, hasRd := i.Rd()
	rs1, hasRs1 := i.Rs1()
	rs2, hasRs2 := i.Rs2()
	imm, hasImm := i.Imm()

	switch i.Format() {
	case FormatR:
		return fmt.Sprintf("%s x%d, x%d, x%d", mnemonic, rd, rs1, rs2)
	case FormatI:
		if op == Jalr || isLoad(op) {
			return fmt.Sprintf("%s x%d, %d(x%d)", mnemonic, rd, imm, rs1)
		}
		return fmt.Sprintf("%s x%d, x%d, %d", mnemonic, rd, rs1, imm)
	case FormatS:
		return fmt.Sprintf("%s x%d, %d(x%d)", mnemonic, rs2, imm, rs1)
	case FormatB:
		return fmt.Sprintf("%s x%d, x%d, %d", mnemonic, rs1, rs2, imm)
	case FormatU:
		return fmt.Sprintf("%s x%d, 0x%x", mnemonic, rd, uint32(imm)&0xfffff)
	case FormatJ:
		return fmt.Sprintf("%s x%d, %d", mnemonic, rd, imm)
	default:
		_ = hasRd
		_ = hasRs1
		_ = hasRs2
		_ = hasImm
		return mnemonic
	}
}

func isLoad(op Op) bool {
	switch op {
	case Lb, Lbu, Lh, Lhu, Lw:
		return true
	default:
		return false
	}
}
