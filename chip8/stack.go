package chip8

import (
	"errors"
	"fmt"
	"strings"
)

const StackSize = 16

var (
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
)

// Stack is the subroutine return address stack.
type Stack struct {
	Addrs [StackSize]uint16
	Ptr   byte
}

// Push stores addr on top of the stack. It returns ErrStackOverflow if the
// stack already holds StackSize addresses.
func (s *Stack) Push(addr uint16) error {
	if int(s.Ptr) >= len(s.Addrs) {
		return ErrStackOverflow
	}
	s.Addrs[s.Ptr] = addr
	s.Ptr++
	return nil
}

// Pop removes and returns the address on top of the stack. It returns
// ErrStackUnderflow if the stack is empty.
func (s *Stack) Pop() (uint16, error) {
	if s.Ptr == 0 {
		return 0, ErrStackUnderflow
	}
	s.Ptr--
	return s.Addrs[s.Ptr], nil
}

func (s Stack) String() string {
	var b strings.Builder
	b.WriteByte('(')
	n := int(s.Ptr)
	if n > len(s.Addrs) {
		n = len(s.Addrs)
	}
	for _, v := range s.Addrs[:n] {
		b.WriteByte(' ')
		fmt.Fprintf(&b, "%.3x", v)
	}
	b.WriteByte(' ')
	b.WriteByte(')')
	return b.String()
}
