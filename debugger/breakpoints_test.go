package debugger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jchan-dev/rv32i-emu/debugger"
)

func TestBreakpointManagerAddAndGet(t *testing.T) {
	m := debugger.NewBreakpointManager()
	bp := m.AddBreakpoint(0x100, false, "")
	assert.Equal(t, 1, bp.ID)
	assert.Same(t, bp, m.GetBreakpoint(0x100))
}

func TestBreakpointManagerDeleteByID(t *testing.T) {
	m := debugger.NewBreakpointManager()
	bp := m.AddBreakpoint(0x100, false, "")
	assert.True(t, m.DeleteBreakpoint(bp.ID))
	assert.Nil(t, m.GetBreakpoint(0x100))
}

func TestBreakpointManagerHasBreakpointRespectsEnabled(t *testing.T) {
	m := debugger.NewBreakpointManager()
	bp := m.AddBreakpoint(0x100, false, "")
	assert.True(t, m.HasBreakpoint(0x100))
	m.SetEnabled(bp.ID, false)
	assert.False(t, m.HasBreakpoint(0x100))
}

func TestBreakpointManagerCount(t *testing.T) {
	m := debugger.NewBreakpointManager()
	m.AddBreakpoint(0x100, false, "")
	m.AddBreakpoint(0x200, false, "")
	assert.Equal(t, 2, m.Count())
	m.Clear()
	assert.Equal(t, 0, m.Count())
}
