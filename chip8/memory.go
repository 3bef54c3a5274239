package chip8

import (
	"errors"
	"fmt"
)

const (
	MemSize        = 0x1000
	ProgramStart   = 0x200
	MaxProgramSize = MemSize - ProgramStart // 3584 bytes

	FontAddr  = 0x000
	GlyphSize = 5
)

// font holds the hexadecimal digit glyphs 0-F, 5 bytes each.
var font = [16 * GlyphSize]byte{
	0xf0, 0x90, 0x90, 0x90, 0xf0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xf0, 0x10, 0xf0, 0x80, 0xf0, // 2
	0xf0, 0x10, 0xf0, 0x10, 0xf0, // 3
	0x90, 0x90, 0xf0, 0x10, 0x10, // 4
	0xf0, 0x80, 0xf0, 0x10, 0xf0, // 5
	0xf0, 0x80, 0xf0, 0x90, 0xf0, // 6
	0xf0, 0x10, 0x20, 0x40, 0x40, // 7
	0xf0, 0x90, 0xf0, 0x90, 0xf0, // 8
	0xf0, 0x90, 0xf0, 0x10, 0xf0, // 9
	0xf0, 0x90, 0xf0, 0x90, 0x90, // A
	0xe0, 0x90, 0xe0, 0x90, 0xe0, // B
	0xf0, 0x80, 0x80, 0x80, 0xf0, // C
	0xe0, 0x90, 0x90, 0x90, 0xe0, // D
	0xf0, 0x80, 0xf0, 0x80, 0xf0, // E
	0xf0, 0x80, 0xf0, 0x80, 0x80, // F
}

var (
	ErrOutOfBounds = errors.New("memory access out of bounds")
	ErrOutOfMemory = errors.New("memory write past end")
)

// MemoryError describes a rejected memory access. Err is either
// ErrOutOfBounds or ErrOutOfMemory.
type MemoryError struct {
	Err  error
	Addr uint16
	Len  int
}

func (e MemoryError) Error() string {
	end := int(e.Addr) + e.Len
	if e.Err == ErrOutOfMemory {
		return fmt.Sprintf("%v: %d bytes at %.3x (%d bytes excess)", e.Err, e.Len, e.Addr, end-MemSize)
	}
	return fmt.Sprintf("%v: [%.3x, %.3x)", e.Err, e.Addr, end)
}

func (e MemoryError) Unwrap() error { return e.Err }

// Memory is the 4KB CHIP-8 address space. The font table occupies the
// start of memory and is never cleared.
type Memory struct {
	buf [MemSize]byte
}

// NewMemory returns zeroed memory with the font table installed.
func NewMemory() *Memory {
	m := &Memory{}
	copy(m.buf[FontAddr:], font[:])
	return m
}

// Clear zeroes the program area and reinstalls the font table.
func (m *Memory) Clear() {
	prog := m.buf[ProgramStart:]
	for i := range prog {
		prog[i] = 0
	}
	copy(m.buf[FontAddr:], font[:])
}

// Range returns a copy of the n bytes starting at addr.
func (m *Memory) Range(addr uint16, n int) ([]byte, error) {
	if n < 0 || int(addr)+n > len(m.buf) {
		return nil, MemoryError{Err: ErrOutOfBounds, Addr: addr, Len: n}
	}
	b := make([]byte, n)
	copy(b, m.buf[addr:])
	return b, nil
}

// SetRange writes data starting at addr. Nothing is written if any byte
// would fall outside memory.
func (m *Memory) SetRange(addr uint16, data []byte) error {
	if int(addr)+len(data) > len(m.buf) {
		return MemoryError{Err: ErrOutOfMemory, Addr: addr, Len: len(data)}
	}
	copy(m.buf[addr:], data)
	return nil
}

func (m *Memory) SetByte(addr uint16, v byte) error {
	if int(addr) >= len(m.buf) {
		return MemoryError{Err: ErrOutOfBounds, Addr: addr, Len: 1}
	}
	m.buf[addr] = v
	return nil
}
