// Package loader reads a raw RV32I program image from disk and installs it
// into an emulator's memory. Unlike the ARM teacher codebase, there is no
// assembly source or ELF container to parse: a program is simply a sequence
// of 32-bit little-endian instruction words, matching the reference RISC-V
// implementation this project is based on.
package loader

import (
	"fmt"
	"os"

	"github.com/jchan-dev/rv32i-emu/vm"
)

// ReadProgramFile reads path and returns its contents with any trailing
// bytes that do not complete a 32-bit word discarded.
func ReadProgramFile(path string) ([]byte, error) {
	// #nosec G304 -- path is a user-supplied program argument, user-controlled by design
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: reading %s: %w", path, err)
	}
	return trimToWordBoundary(data), nil
}

func trimToWordBoundary(data []byte) []byte {
	n := len(data) - len(data)%4
	return data[:n]
}

// LoadProgramIntoEmulator reads path and loads it into the emulator's
// memory at processor proc's current PC, leaving PC untouched so the
// caller decides when to Stream it.
func LoadProgramIntoEmulator(e *vm.Emulator, proc int, path string) error {
	if proc < 0 || proc >= len(e.Processors) {
		return fmt.Errorf("loader: processor index %d out of range", proc)
	}
	program, err := ReadProgramFile(path)
	if err != nil {
		return err
	}
	e.Memory.LoadBytes(e.Processors[proc].PC, program)
	return nil
}

// WordCount returns how many complete 32-bit instruction words data holds.
func WordCount(data []byte) int {
	return len(data) / 4
}
