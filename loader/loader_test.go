package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchan-dev/rv32i-emu/loader"
	"github.com/jchan-dev/rv32i-emu/vm"
)

func TestReadProgramFileDiscardsTrailingPartialWord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3, 4, 5, 6}, 0o644))

	data, err := loader.ReadProgramFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, data)
	assert.Equal(t, 1, loader.WordCount(data))
}

func TestReadProgramFileMissingFileErrors(t *testing.T) {
	_, err := loader.ReadProgramFile(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}

func TestLoadProgramIntoEmulatorWritesAtCurrentPC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xef, 0xbe, 0xad, 0xde}, 0o644))

	e := vm.NewEmulator(64, 1)
	e.Processors[0].PC = 8

	require.NoError(t, loader.LoadProgramIntoEmulator(e, 0, path))
	assert.EqualValues(t, 0xdeadbeef, e.Memory.ReadWord(8))
}

func TestLoadProgramIntoEmulatorRejectsBadProcessorIndex(t *testing.T) {
	e := vm.NewEmulator(64, 1)
	err := loader.LoadProgramIntoEmulator(e, 5, "irrelevant.bin")
	assert.Error(t, err)
}
