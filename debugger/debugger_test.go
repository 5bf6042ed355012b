package debugger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchan-dev/rv32i-emu/debugger"
	"github.com/jchan-dev/rv32i-emu/vm"
)

func program(words ...uint32) []byte {
	buf := make([]byte, 4*len(words))
	for i, w := range words {
		buf[i*4+0] = byte(w)
		buf[i*4+1] = byte(w >> 8)
		buf[i*4+2] = byte(w >> 16)
		buf[i*4+3] = byte(w >> 24)
	}
	return buf
}

func addi(rd, rs1 uint32, imm int32) uint32 {
	return uint32(imm)<<20&0xfff00000 | rs1<<15 | rd<<7 | 0x13
}

func TestDebuggerStepAdvancesPC(t *testing.T) {
	e := vm.NewEmulator(64, 1)
	_, err := e.LoadProgram(0, program(addi(1, 0, 5), addi(1, 1, 5)))
	require.NoError(t, err)

	dbg := debugger.NewDebugger(e, 0)
	require.NoError(t, dbg.ExecuteCommand("step"))
	assert.EqualValues(t, 4, e.Processors[0].PC)
}

func TestDebuggerBreakpointStopsContinue(t *testing.T) {
	e := vm.NewEmulator(64, 1)
	_, err := e.LoadProgram(0, program(addi(1, 0, 1), addi(1, 1, 1), addi(1, 1, 1)))
	require.NoError(t, err)

	dbg := debugger.NewDebugger(e, 0)
	require.NoError(t, dbg.ExecuteCommand("break 0x4"))
	require.NoError(t, dbg.ExecuteCommand("continue"))

	assert.EqualValues(t, 4, e.Processors[0].PC)
	assert.Contains(t, dbg.GetOutput(), "breakpoint 1")
}

func TestDebuggerPrintRegister(t *testing.T) {
	e := vm.NewEmulator(64, 1)
	e.Processors[0].Registers.Write(3, 0xdeadbeef)
	dbg := debugger.NewDebugger(e, 0)

	require.NoError(t, dbg.ExecuteCommand("print x3"))
	assert.Contains(t, dbg.GetOutput(), "0xdeadbeef")
}

func TestDebuggerWatchpointFires(t *testing.T) {
	e := vm.NewEmulator(64, 1)
	_, err := e.LoadProgram(0, program(addi(1, 0, 1)))
	require.NoError(t, err)

	dbg := debugger.NewDebugger(e, 0)
	require.NoError(t, dbg.ExecuteCommand("watch x1"))
	require.NoError(t, dbg.ExecuteCommand("step"))

	stop, reason := dbg.ShouldBreak()
	assert.True(t, stop)
	assert.Contains(t, reason, "watchpoint")
}

func TestDebuggerUnknownCommandErrors(t *testing.T) {
	e := vm.NewEmulator(64, 1)
	dbg := debugger.NewDebugger(e, 0)
	err := dbg.ExecuteCommand("bogus")
	assert.Error(t, err)
}
