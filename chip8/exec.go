// Package chip8 provides an implementation of the CHIP-8 virtual machine,
// called Machine, that can be used to execute CHIP-8 bytecode.
package chip8

import (
	"fmt"
	"math/rand"
)

// Machine is an implementation of the CHIP-8 virtual machine.
//
// The execution methods must be called from a single goroutine. The timers
// count down concurrently and may be read at any time.
type Machine struct {
	Mem     *Memory
	Display *Display
	V       Registers
	Stack   Stack
	PC      uint16
	I       uint16
	Delay   Timer
	Sound   Timer

	// Rand supplies random bytes for RND.
	Rand func() byte
}

// NewMachine returns a reset Machine with a 64x32 display.
func NewMachine() *Machine {
	m := &Machine{
		Mem:     NewMemory(),
		Display: NewDisplay(DisplayWidth, DisplayHeight),
		Rand:    func() byte { return byte(rand.Intn(0x100)) },
	}
	m.Reset()
	return m
}

// Reset returns the machine to its power-on state. The font table is
// restored; the program area and display are cleared.
func (m *Machine) Reset() {
	m.Display.Clear()
	m.PC = ProgramStart
	m.I = 0
	m.Stack = Stack{}
	m.V = Registers{}
	m.Delay.Set(0)
	m.Sound.Set(0)
	m.Mem.Clear()
}

// ProgramError is returned by LoadProgram for programs that do not fit in
// the program area.
type ProgramError struct {
	Size int
}

func (e ProgramError) Error() string {
	return fmt.Sprintf("program too large: %d bytes (max %d)", e.Size, MaxProgramSize)
}

// LoadProgram resets the machine and copies program to ProgramStart.
// An oversized program is rejected before the machine is touched.
func (m *Machine) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return ProgramError{Size: len(program)}
	}
	m.Reset()
	return m.Mem.SetRange(ProgramStart, program)
}

// UnimplementedError is returned when executing an instruction this
// machine does not support, such as those that wait for key input.
type UnimplementedError struct {
	Instruction
}

func (e UnimplementedError) Error() string {
	return fmt.Sprintf("%v: not implemented", e.Instruction)
}

// HaltError is returned by Step when an instruction cannot be fetched,
// decoded, or executed. Err is the underlying error.
type HaltError struct {
	Err  error
	Word uint16
	Addr uint16
}

func (e HaltError) Error() string {
	return fmt.Sprintf("%v executing %.4x at %.3x", e.Err, e.Word, e.Addr)
}

func (e HaltError) Unwrap() error { return e.Err }

// Next decodes the instruction at PC without executing it.
func (m *Machine) Next() (Instruction, error) {
	b, err := m.Mem.Range(m.PC, 2)
	if err != nil {
		return Instruction{}, err
	}
	return DecodeBytes(b)
}

// Step fetches the instruction at PC, advances PC past it, and executes it.
func (m *Machine) Step() error {
	addr := m.PC
	b, err := m.Mem.Range(addr, 2)
	if err != nil {
		return HaltError{Err: err, Addr: addr}
	}
	word := uint16(b[0])<<8 | uint16(b[1])
	m.PC += 2
	in, err := Decode(word)
	if err == nil {
		err = m.Execute(in)
	}
	if err != nil {
		return HaltError{Err: err, Word: word, Addr: addr}
	}
	return nil
}

// fault carries a component error out of Execute's helpers.
type fault struct{ err error }

func check(err error) {
	if err != nil {
		panic(fault{err})
	}
}

func (m *Machine) get(x byte) byte {
	v, err := m.V.Get(x)
	check(err)
	return v
}

func (m *Machine) pair(x, y byte) (byte, byte) {
	vx, vy, err := m.V.GetPair(x, y)
	check(err)
	return vx, vy
}

func (m *Machine) set(x, v byte) { check(m.V.Set(x, v)) }

func (m *Machine) skipIf(cond bool) {
	if cond {
		m.PC += 2
	}
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// Execute applies in to the machine state. It does not advance PC past the
// instruction; that is the caller's job (see Step). Errors from registers,
// memory, and the stack are returned as is.
func (m *Machine) Execute(in Instruction) (err error) {
	defer func() {
		if e := recover(); e != nil {
			if f, ok := e.(fault); ok {
				err = f.err
			} else {
				panic(e)
			}
		}
	}()

	switch in.Op {
	case CLS:
		m.Display.Clear()
	case RET:
		pc, e := m.Stack.Pop()
		check(e)
		m.PC = pc
	case JP:
		m.PC = in.Addr
	case CALL:
		check(m.Stack.Push(m.PC))
		m.PC = in.Addr
	case SE:
		m.skipIf(m.get(in.X) == in.KK)
	case SNE:
		m.skipIf(m.get(in.X) != in.KK)
	case SEV:
		x, y := m.pair(in.X, in.Y)
		m.skipIf(x == y)
	case SNEV:
		x, y := m.pair(in.X, in.Y)
		m.skipIf(x != y)
	case LD:
		m.set(in.X, in.KK)
	case ADD:
		m.set(in.X, m.get(in.X)+in.KK)
	case LDV:
		m.set(in.X, m.get(in.Y))
	case OR:
		x, y := m.pair(in.X, in.Y)
		m.set(in.X, x|y)
	case AND:
		x, y := m.pair(in.X, in.Y)
		m.set(in.X, x&y)
	case XOR:
		x, y := m.pair(in.X, in.Y)
		m.set(in.X, x^y)
	case ADDV:
		x, y := m.pair(in.X, in.Y)
		m.set(in.X, x+y)
	case SUB:
		x, y := m.pair(in.X, in.Y)
		m.set(in.X, x-y)
		m.set(FlagRegister, flag(x > y))
	case SUBN:
		x, y := m.pair(in.X, in.Y)
		m.set(in.X, y-x)
		m.set(FlagRegister, flag(y > x))
	case SHR:
		m.set(in.X, m.get(in.X)>>1)
	case SHL:
		m.set(in.X, m.get(in.X)<<1)
	case LDI:
		m.I = in.Addr
	case JPV:
		m.PC = in.Addr + uint16(m.get(0))
	case RND:
		m.set(in.X, m.Rand()&in.KK)
	case DRW:
		x, y := m.pair(in.X, in.Y)
		sprite, e := m.Mem.Range(m.I, int(in.N))
		check(e)
		c := m.Display.DrawBytesAt(int(x), int(y), sprite)
		m.set(FlagRegister, flag(c))
	case LDD:
		m.set(in.X, m.Delay.Get())
	case LDDV:
		m.Delay.Set(m.get(in.X))
	case LDS:
		m.Sound.Set(m.get(in.X))
	case ADDI:
		// I may move past the end of memory; accesses through it fail then.
		m.I += uint16(m.get(in.X))
	case LDF:
		m.I = FontAddr + uint16(m.get(in.X)&0xf)*GlyphSize
	case LDB:
		x := m.get(in.X)
		check(m.Mem.SetRange(m.I, []byte{x / 100, x / 10 % 10, x % 10}))
	case LDIV:
		check(m.Mem.SetRange(m.I, m.V.Bytes()))
	case LDVI:
		b, e := m.Mem.Range(m.I, NumRegisters)
		check(e)
		check(m.V.SetBytes(b))
	case SKP, SKNP, LDK:
		// No keypad.
		return UnimplementedError{in}
	default:
		return UnimplementedError{in}
	}
	return nil
}
