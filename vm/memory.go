package vm

import "encoding/binary"

// Memory is a fixed-size, wrap-around byte-addressable store. Any access at
// logical address a touches the physical byte a % Len() — a read or write
// span may cross the end of the backing array and wrap around arbitrarily
// many times. This mirrors original_source's Memory model rather than the
// segmented, permission-checked model the ARM teacher codebase used.
type Memory struct {
	data []byte

	AccessCount uint64
	ReadCount   uint64
	WriteCount  uint64
}

// NewMemory allocates a zeroed memory of the given size in bytes. size must
// be greater than zero.
func NewMemory(size int) *Memory {
	if size <= 0 {
		panic("vm: memory size must be positive")
	}
	return &Memory{data: make([]byte, size)}
}

// Len returns the number of physical bytes backing the memory.
func (m *Memory) Len() int {
	return len(m.data)
}

func (m *Memory) wrap(addr uint32) int {
	return int(addr) % len(m.data)
}

// Read returns n bytes starting at the wrapped address base, wrapping as
// many times as needed.
func (m *Memory) Read(base uint32, n int) []byte {
	out := make([]byte, n)
	start := m.wrap(base)
	for i := 0; i < n; i++ {
		out[i] = m.data[(start+i)%len(m.data)]
	}
	m.AccessCount++
	m.ReadCount++
	return out
}

// Write stores data starting at the wrapped address base, wrapping as many
// times as needed.
func (m *Memory) Write(base uint32, data []byte) {
	start := m.wrap(base)
	for i, b := range data {
		m.data[(start+i)%len(m.data)] = b
	}
	m.AccessCount++
	m.WriteCount++
}

// ReadByte reads a single byte at addr.
func (m *Memory) ReadByte(addr uint32) byte {
	return m.Read(addr, 1)[0]
}

// WriteByte writes a single byte at addr.
func (m *Memory) WriteByte(addr uint32, v byte) {
	m.Write(addr, []byte{v})
}

// ReadHalfword reads a little-endian 16-bit value at addr.
func (m *Memory) ReadHalfword(addr uint32) uint16 {
	return binary.LittleEndian.Uint16(m.Read(addr, 2))
}

// WriteHalfword writes a little-endian 16-bit value at addr.
func (m *Memory) WriteHalfword(addr uint32, v uint16) {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, v)
	m.Write(addr, buf)
}

// ReadWord reads a little-endian 32-bit value at addr.
func (m *Memory) ReadWord(addr uint32) uint32 {
	return binary.LittleEndian.Uint32(m.Read(addr, 4))
}

// WriteWord writes a little-endian 32-bit value at addr.
func (m *Memory) WriteWord(addr uint32, v uint32) {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	m.Write(addr, buf)
}

// LoadBytes copies program into memory starting at addr, wrapping as
// needed. Used by the loader to install a program image before execution.
func (m *Memory) LoadBytes(addr uint32, program []byte) {
	m.Write(addr, program)
}

// Reset zeroes every byte and clears the access counters.
func (m *Memory) Reset() {
	for i := range m.data {
		m.data[i] = 0
	}
	m.AccessCount, m.ReadCount, m.WriteCount = 0, 0, 0
}
