package vm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jchan-dev/rv32i-emu/vm"
)

func TestZeroRegisterIsAlwaysZero(t *testing.T) {
	rf := vm.NewRegisterFile()
	assert.EqualValues(t, 0, rf.Read(0))
}

func TestZeroRegisterDiscardsWrites(t *testing.T) {
	rf := vm.NewRegisterFile()
	rf.Write(0, 42)
	assert.EqualValues(t, 0, rf.Read(0))
	assert.True(t, rf.IsReadOnly(0))
}

func TestNonZeroRegisterIsReadWrite(t *testing.T) {
	rf := vm.NewRegisterFile()
	rf.Write(5, 123)
	assert.EqualValues(t, 123, rf.Read(5))
	assert.False(t, rf.IsReadOnly(5))
}

func TestResetZeroesValuesNotAccessLevels(t *testing.T) {
	rf := vm.NewRegisterFile()
	rf.Write(3, 99)
	rf.SetAccessLevel(4, vm.Read)
	rf.Reset()
	assert.EqualValues(t, 0, rf.Read(3))
	assert.True(t, rf.IsReadOnly(4))
}

func TestOutOfRangeReadPanics(t *testing.T) {
	rf := vm.NewRegisterFile()
	assert.Panics(t, func() { rf.Read(32) })
}

func TestOutOfRangeWritePanics(t *testing.T) {
	rf := vm.NewRegisterFile()
	assert.Panics(t, func() { rf.Write(32, 1) })
}

func TestLenIsThirtyTwo(t *testing.T) {
	rf := vm.NewRegisterFile()
	assert.Equal(t, 32, rf.Len())
}
