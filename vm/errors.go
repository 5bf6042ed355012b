package vm

import "fmt"

// IllegalInstructionError reports a word that did not decode to a defined
// RV32I operation, or that decoded to an operation this core does not
// execute (loads, stores, and fences are recognised by the decoder for
// disassembly purposes but are not implemented here).
type IllegalInstructionError struct {
	PC   uint32
	Word uint32
}

func (e *IllegalInstructionError) Error() string {
	return fmt.Sprintf("illegal instruction 0x%08x at pc=0x%08x", e.Word, e.PC)
}
