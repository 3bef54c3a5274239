package chip8

import "testing"

func TestStack(t *testing.T) {
	var s Stack
	if _, err := s.Pop(); err != ErrStackUnderflow {
		t.Errorf("Pop on empty stack returned %v", err)
	}
	for i := 0; i < StackSize; i++ {
		if err := s.Push(uint16(0x200 + i*2)); err != nil {
			t.Fatalf("Push %d: %v", i, err)
		}
	}
	if err := s.Push(0xfff); err != ErrStackOverflow {
		t.Errorf("Push on full stack returned %v", err)
	}
	if s.Ptr != StackSize || s.Addrs[StackSize-1] != 0x21e {
		t.Errorf("overflowing Push modified stack: %v", s)
	}
	for i := StackSize - 1; i >= 0; i-- {
		a, err := s.Pop()
		if err != nil || a != uint16(0x200+i*2) {
			t.Fatalf("Pop = %.3x, %v, want %.3x", a, err, 0x200+i*2)
		}
	}
}

func TestStackString(t *testing.T) {
	var s Stack
	if got := s.String(); got != "( )" {
		t.Errorf("empty stack String() = %q", got)
	}
	s.Push(0x202)
	s.Push(0x3a4)
	if got, want := s.String(), "( 202 3a4 )"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestStackStringBadPtr(t *testing.T) {
	s := Stack{Ptr: StackSize + 4}
	s.Addrs[StackSize-1] = 0x2fe
	if got := s.String(); got != "( 000 000 000 000 000 000 000 000 000 000 000 000 000 000 000 2fe )" {
		t.Errorf("String() = %q", got)
	}
}
