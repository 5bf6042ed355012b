// Package tools provides disassembly and static-lint utilities over raw
// RV32I program images, mirroring the role the ARM teacher codebase's
// tools.format/tools.lint packages played for assembly source.
package tools

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/jchan-dev/rv32i-emu/vm"
)

// Disassemble renders a single instruction word as "<mnemonic> <operands>".
func Disassemble(word uint32) string {
	return vm.NewInstruction(word).String()
}

// DisassembleProgram renders every 32-bit word in program as one line per
// instruction, prefixed with its address (base plus its byte offset).
func DisassembleProgram(program []byte, base uint32) string {
	var b strings.Builder
	words := len(program) / 4
	for i := 0; i < words; i++ {
		word := binary.LittleEndian.Uint32(program[i*4:])
		addr := base + uint32(i*4)
		fmt.Fprintf(&b, "%08x:\t%s\n", addr, Disassemble(word))
	}
	return b.String()
}
