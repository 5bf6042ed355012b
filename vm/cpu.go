package vm

// Processor holds one RV32I hart's architectural state: its register file
// and program counter. Execute performs a single instruction's state
// transition and never loops — sequencing across instructions belongs to
// Emulator.Stream.
type Processor struct {
	Registers *RegisterFile
	PC        uint32
	alu       ALU

	// Cycles counts completed Execute calls. InstructionLog records the PC
	// of each executed instruction, bounded to the most recent entries, for
	// the debugger and trace tooling; neither affects core semantics.
	Cycles         uint64
	InstructionLog []uint32
}

// maxInstructionLog bounds the in-memory instruction trace kept per processor.
const maxInstructionLog = 4096

// NewProcessor returns a processor with PC 0 and a fresh zeroed register file.
func NewProcessor() *Processor {
	return &Processor{
		Registers: NewRegisterFile(),
	}
}

// Reset zeroes the register file, resets PC to 0, and clears the trace log.
func (p *Processor) Reset() {
	p.Registers.Reset()
	p.PC = 0
	p.Cycles = 0
	p.InstructionLog = nil
}

// Execute decodes and runs one instruction word. It returns
// *IllegalInstructionError if the word does not decode, or decodes to an
// operation this core does not implement (loads, stores, fences). On
// success it has applied exactly this instruction's register and PC
// effects; redirected reports whether it already repointed PC (a taken
// branch, JAL, or JALR) so the caller knows whether a sequential advance
// is still needed — comparing PC before/after is not a safe proxy, since a
// zero-offset branch or jump (e.g. "beq x0,x0,0", this core's only way to
// spin in place given ECALL/EBREAK are out of scope) redirects to its own
// address. That sequential advance is Emulator.StepOne's responsibility
// (see SPEC_FULL.md §4.5).
func (p *Processor) Execute(word uint32) (redirected bool, err error) {
	instr := NewInstruction(word)
	op, ok := Decode(instr)
	if !ok {
		return false, &IllegalInstructionError{PC: p.PC, Word: word}
	}

	p.traceFetch()

	switch {
	case isArithR(op):
		return false, p.execArithR(instr, op)
	case isArithI(op):
		return false, p.execArithI(instr, op)
	case op.IsBranch():
		return p.execBranch(instr, op), nil
	case op == Jal:
		p.execJal(instr)
		return true, nil
	case op == Jalr:
		p.execJalr(instr)
		return true, nil
	case op == Lui:
		return false, p.execLui(instr)
	default:
		// Loads, stores, and fences decode successfully but are not
		// executed by this core.
		return false, &IllegalInstructionError{PC: p.PC, Word: word}
	}
}

func (p *Processor) traceFetch() {
	p.InstructionLog = append(p.InstructionLog, p.PC)
	if len(p.InstructionLog) > maxInstructionLog {
		p.InstructionLog = p.InstructionLog[len(p.InstructionLog)-maxInstructionLog:]
	}
	p.Cycles++
}

func isArithR(op Op) bool {
	switch op {
	case Add, Sub, Sll, Slt, SltU, Xor, Srl, Sra, Or, And:
		return true
	default:
		return false
	}
}

func isArithI(op Op) bool {
	switch op {
	case AddI, SllI, SltI, SltIU, XorI, SrlI, SraI, OrI, AndI:
		return true
	default:
		return false
	}
}

func (p *Processor) execArithR(instr Instruction, op Op) error {
	rd, _ := instr.Rd()
	rs1, _ := instr.Rs1()
	rs2, _ := instr.Rs2()
	x := int32(p.Registers.Read(rs1))
	y := int32(p.Registers.Read(rs2))
	p.Registers.Write(rd, uint32(p.alu.Run(op, x, y)))
	return nil
}

func (p *Processor) execArithI(instr Instruction, op Op) error {
	rd, _ := instr.Rd()
	rs1, _ := instr.Rs1()
	imm, _ := instr.Imm()
	x := int32(p.Registers.Read(rs1))
	p.Registers.Write(rd, uint32(p.alu.Run(op, x, imm)))
	return nil
}

// execBranch applies the branch's register and (if taken) PC effects,
// reporting whether it was taken.
func (p *Processor) execBranch(instr Instruction, op Op) bool {
	rs1, _ := instr.Rs1()
	rs2, _ := instr.Rs2()
	imm, _ := instr.Imm()
	x := int32(p.Registers.Read(rs1))
	y := int32(p.Registers.Read(rs2))
	if p.alu.Compare(op, x, y) {
		p.PC = uint32(int32(p.PC) + imm)
		return true
	}
	return false
}

func (p *Processor) execJal(instr Instruction) {
	rd, _ := instr.Rd()
	imm, _ := instr.Imm()
	p.Registers.Write(rd, p.PC+4)
	p.PC = uint32(int32(p.PC) + imm)
}

func (p *Processor) execJalr(instr Instruction) {
	rd, _ := instr.Rd()
	rs1, _ := instr.Rs1()
	imm, _ := instr.Imm()
	target := uint32(int32(p.Registers.Read(rs1))+imm) &^ 1
	p.Registers.Write(rd, p.PC+4)
	p.PC = target
}

func (p *Processor) execLui(instr Instruction) error {
	rd, _ := instr.Rd()
	imm, _ := instr.Imm()
	p.Registers.Write(rd, uint32(imm)<<12)
	return nil
}
