package debugger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jchan-dev/rv32i-emu/debugger"
)

func TestCommandHistoryAddAndAll(t *testing.T) {
	h := debugger.NewCommandHistory()
	h.Add("step")
	h.Add("continue")
	assert.Equal(t, []string{"step", "continue"}, h.All())
}

func TestCommandHistoryPreviousAndNext(t *testing.T) {
	h := debugger.NewCommandHistory()
	h.Add("step")
	h.Add("continue")

	assert.Equal(t, "continue", h.Previous())
	assert.Equal(t, "step", h.Previous())
	assert.Equal(t, "", h.Previous())

	assert.Equal(t, "continue", h.Next())
}
