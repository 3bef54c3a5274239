package chip8

import "fmt"

const (
	NumRegisters = 16
	FlagRegister = 0xf // VF, carry/borrow/collision
)

// Registers holds the general purpose registers V0-VF.
type Registers struct {
	v [NumRegisters]byte
}

// RegisterError reports an access to a register index outside V0-VF.
type RegisterError struct {
	Index int
}

func (e RegisterError) Error() string {
	return fmt.Sprintf("invalid register access: V%X", e.Index)
}

func (r *Registers) Get(x byte) (byte, error) {
	if int(x) >= len(r.v) {
		return 0, RegisterError{Index: int(x)}
	}
	return r.v[x], nil
}

// GetPair returns the values of Vx and Vy.
func (r *Registers) GetPair(x, y byte) (vx, vy byte, err error) {
	if vx, err = r.Get(x); err != nil {
		return 0, 0, err
	}
	if vy, err = r.Get(y); err != nil {
		return 0, 0, err
	}
	return vx, vy, nil
}

func (r *Registers) Set(x, v byte) error {
	if int(x) >= len(r.v) {
		return RegisterError{Index: int(x)}
	}
	r.v[x] = v
	return nil
}

// Bytes returns a copy of all registers, V0 first.
func (r *Registers) Bytes() []byte {
	b := r.v
	return b[:]
}

// SetBytes loads b into the registers starting at V0.
func (r *Registers) SetBytes(b []byte) error {
	if len(b) > len(r.v) {
		return RegisterError{Index: len(b) - 1}
	}
	copy(r.v[:], b)
	return nil
}

func (r Registers) String() string {
	return fmt.Sprintf("% x", r.v[:])
}
