package vm_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jchan-dev/rv32i-emu/vm"
)

func TestALUAddWraparound(t *testing.T) {
	var alu vm.ALU
	got := alu.Run(vm.Add, math.MaxInt32, 1)
	assert.Equal(t, int32(math.MinInt32), got)
}

func TestALUSraSignFill(t *testing.T) {
	var alu vm.ALU
	got := alu.Run(vm.Sra, -8, 1)
	assert.Equal(t, int32(-4), got)
}

func TestALUSllMasksShiftAmount(t *testing.T) {
	var alu vm.ALU
	// shift amount 33 masks to 1, not 0: shifting by 33 must equal shifting by 1.
	got := alu.Run(vm.Sll, 1, 33)
	assert.Equal(t, int32(2), got)
}

func TestALUSltUTreatsOperandsAsUnsigned(t *testing.T) {
	var alu vm.ALU
	got := alu.Run(vm.SltU, -1, 1) // -1 as u32 is huge, so -1 < 1 is false
	assert.Equal(t, int32(0), got)
}

func TestALURunPanicsOnNonArithmeticOp(t *testing.T) {
	var alu vm.ALU
	assert.Panics(t, func() { alu.Run(vm.Beq, 1, 1) })
}

func TestALUCompare(t *testing.T) {
	var alu vm.ALU
	assert.True(t, alu.Compare(vm.Beq, 5, 5))
	assert.True(t, alu.Compare(vm.BltU, 1, -1)) // -1 as u32 is huge
	assert.False(t, alu.Compare(vm.Blt, 1, -1))
}
