package vm

import "fmt"

// ExecutionState reports why an Emulator.Stream run stopped.
type ExecutionState int

const (
	// StateHalted means the program's instruction words were exhausted.
	StateHalted ExecutionState = iota
	// StateIllegalInstruction means Processor.Execute returned an
	// IllegalInstructionError.
	StateIllegalInstruction
	// StateCycleLimit means the configured MaxCycles was reached.
	StateCycleLimit
)

// Emulator composes one Memory with an ordered set of Processors. The step
// API operates on one processor at a time; no inter-processor communication
// is modelled.
type Emulator struct {
	Memory     *Memory
	Processors []*Processor

	// MaxCycles bounds Stream's instruction count; zero means unbounded.
	MaxCycles uint64
}

// NewEmulator allocates memory of the given size and procCount processors,
// each starting at PC 0.
func NewEmulator(memSize int, procCount int) *Emulator {
	if procCount <= 0 {
		panic("vm: emulator requires at least one processor")
	}
	procs := make([]*Processor, procCount)
	for i := range procs {
		procs[i] = NewProcessor()
	}
	return &Emulator{
		Memory:     NewMemory(memSize),
		Processors: procs,
	}
}

// processorAt validates proc and returns the processor at that index.
func (e *Emulator) processorAt(proc int) (*Processor, error) {
	if proc < 0 || proc >= len(e.Processors) {
		return nil, fmt.Errorf("vm: processor index %d out of range", proc)
	}
	return e.Processors[proc], nil
}

// LoadProgram installs program into memory at processor proc's current PC
// without executing anything, returning the address one past the end of
// the loaded image.
func (e *Emulator) LoadProgram(proc int, program []byte) (uint32, error) {
	p, err := e.processorAt(proc)
	if err != nil {
		return 0, err
	}
	start := p.PC
	e.Memory.LoadBytes(start, program)
	return start + uint32(len(program)/4*4), nil
}

// StepOne fetches, executes, and sequences PC past exactly one instruction
// for processor proc. PC advancement is owned here, not by
// Processor.Execute: after a step that did not itself redirect control
// flow, StepOne advances PC by 4. A taken branch, JAL, or JALR leaves PC
// already pointing at its target, and the next StepOne simply continues
// fetching from there. Whether a redirect happened is reported directly by
// Execute rather than inferred by comparing PC before and after — a
// zero-offset branch or jump redirects to its own address, which would
// otherwise look identical to a non-redirecting instruction. This is the
// primitive the interactive debugger's step command drives directly;
// Stream drives it in a loop.
func (e *Emulator) StepOne(proc int) error {
	p, err := e.processorAt(proc)
	if err != nil {
		return err
	}

	word := e.Memory.ReadWord(p.PC)

	redirected, err := p.Execute(word)
	if err != nil {
		return err
	}

	if !redirected {
		p.PC += 4
	}
	return nil
}

// Stream loads program into memory at processor proc's current PC as a
// sequence of 32-bit little-endian words, then single-steps that processor
// until the program is exhausted, an illegal instruction is raised, or
// MaxCycles is reached.
func (e *Emulator) Stream(proc int, program []byte) (ExecutionState, error) {
	end, err := e.LoadProgram(proc, program)
	if err != nil {
		return StateIllegalInstruction, err
	}
	p, err := e.processorAt(proc)
	if err != nil {
		return StateIllegalInstruction, err
	}

	for p.PC < end {
		if e.MaxCycles != 0 && p.Cycles >= e.MaxCycles {
			return StateCycleLimit, nil
		}
		if err := e.StepOne(proc); err != nil {
			return StateIllegalInstruction, err
		}
	}

	return StateHalted, nil
}
