package tools_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jchan-dev/rv32i-emu/tools"
)

func TestDisassembleRTypeInstruction(t *testing.T) {
	got := tools.Disassemble(0x403382b3) // sub x5, x7, x3
	assert.Equal(t, "sub x5, x7, x3", got)
}

func TestDisassembleProgramListsOffsets(t *testing.T) {
	program := []byte{0xb3, 0x82, 0x33, 0x40} // sub x5, x7, x3, little-endian
	got := tools.DisassembleProgram(program, 0x1000)
	assert.Contains(t, got, "00001000:")
	assert.Contains(t, got, "sub x5, x7, x3")
}
