package tools

import (
	"encoding/binary"
	"fmt"

	"github.com/jchan-dev/rv32i-emu/vm"
)

// FindingSeverity classifies how serious a lint Finding is.
type FindingSeverity int

const (
	// SeverityError marks a word that will halt execution with an illegal
	// instruction if the processor ever reaches it.
	SeverityError FindingSeverity = iota
	// SeverityWarning marks a word that decodes but exercises an operation
	// this core does not execute (loads, stores, fences).
	SeverityWarning
)

func (s FindingSeverity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Finding is one static lint result against a program image.
type Finding struct {
	Offset   uint32
	Word     uint32
	Severity FindingSeverity
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%08x: %s: %s", f.Offset, f.Severity, f.Message)
}

// Lint statically scans program for words that would raise an illegal
// instruction error if executed, without ever running them. It flags
// undecodable words as errors and decodable-but-unimplemented words
// (loads/stores/fences) as warnings, the way the ARM teacher's lint tool
// flagged assembly issues ahead of execution.
func Lint(program []byte) []Finding {
	var findings []Finding
	words := len(program) / 4

	for i := 0; i < words; i++ {
		word := binary.LittleEndian.Uint32(program[i*4:])
		offset := uint32(i * 4)
		instr := vm.NewInstruction(word)

		op, ok := vm.Decode(instr)
		if !ok {
			findings = append(findings, Finding{
				Offset:   offset,
				Word:     word,
				Severity: SeverityError,
				Message:  "does not decode to a defined RV32I operation",
			})
			continue
		}

		if op.IsLoad() || op.IsStore() || op == vm.Fence || op == vm.FenceI {
			findings = append(findings, Finding{
				Offset:   offset,
				Word:     word,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("%s decodes but is not executed by this core", op),
			})
		}
	}

	return findings
}

// HasErrors reports whether any finding is SeverityError.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}
