package chip8

import (
	"errors"
	"testing"
)

func TestDecode(t *testing.T) {
	for _, c := range []struct {
		word uint16
		want Instruction
	}{
		{0x00e0, Instruction{Op: CLS}},
		{0x00ee, Instruction{Op: RET}},
		{0x1abc, Instruction{Op: JP, Addr: 0xabc}},
		{0x2abc, Instruction{Op: CALL, Addr: 0xabc}},
		{0x3a42, Instruction{Op: SE, X: 0xa, KK: 0x42}},
		{0x4a42, Instruction{Op: SNE, X: 0xa, KK: 0x42}},
		{0x5ab0, Instruction{Op: SEV, X: 0xa, Y: 0xb}},
		{0x6a42, Instruction{Op: LD, X: 0xa, KK: 0x42}},
		{0x7a42, Instruction{Op: ADD, X: 0xa, KK: 0x42}},
		{0x8ab0, Instruction{Op: LDV, X: 0xa, Y: 0xb}},
		{0x8ab1, Instruction{Op: OR, X: 0xa, Y: 0xb}},
		{0x8ab2, Instruction{Op: AND, X: 0xa, Y: 0xb}},
		{0x8ab3, Instruction{Op: XOR, X: 0xa, Y: 0xb}},
		{0x8ab4, Instruction{Op: ADDV, X: 0xa, Y: 0xb}},
		{0x8ab5, Instruction{Op: SUB, X: 0xa, Y: 0xb}},
		{0x8ab6, Instruction{Op: SHR, X: 0xa}},
		{0x8ab7, Instruction{Op: SUBN, X: 0xa, Y: 0xb}},
		{0x8abe, Instruction{Op: SHL, X: 0xa}},
		{0x9ab0, Instruction{Op: SNEV, X: 0xa, Y: 0xb}},
		{0xa2f0, Instruction{Op: LDI, Addr: 0x2f0}},
		{0xb2f0, Instruction{Op: JPV, Addr: 0x2f0}},
		{0xca42, Instruction{Op: RND, X: 0xa, KK: 0x42}},
		{0xd005, Instruction{Op: DRW, X: 0, Y: 0, N: 5}},
		{0xdabf, Instruction{Op: DRW, X: 0xa, Y: 0xb, N: 0xf}},
		{0xea9e, Instruction{Op: SKP, X: 0xa}},
		{0xeaa1, Instruction{Op: SKNP, X: 0xa}},
		{0xfa07, Instruction{Op: LDD, X: 0xa}},
		{0xfa0a, Instruction{Op: LDK, X: 0xa}},
		{0xfa15, Instruction{Op: LDDV, X: 0xa}},
		{0xfa18, Instruction{Op: LDS, X: 0xa}},
		{0xfa1e, Instruction{Op: ADDI, X: 0xa}},
		{0xfa29, Instruction{Op: LDF, X: 0xa}},
		{0xfa33, Instruction{Op: LDB, X: 0xa}},
		{0xfa55, Instruction{Op: LDIV}},
		{0xfa65, Instruction{Op: LDVI}},
	} {
		got, err := Decode(c.word)
		if err != nil {
			t.Errorf("Decode(%.4x) returned error %v", c.word, err)
			continue
		}
		if got != c.want {
			t.Errorf("Decode(%.4x) = %+v, want %+v", c.word, got, c.want)
		}
	}
}

func TestDecodeBadCode(t *testing.T) {
	for _, w := range []uint16{
		0x0000, 0x0123, 0x00e1, 0x00ef, 0x0fff,
		0x5ab1, 0x5abf, 0x8ab8, 0x8abd, 0x8abf, 0x9ab1,
		0xea9f, 0xeaa0, 0xe000, 0xfa00, 0xfa08, 0xfa56, 0xfa66, 0xffff,
	} {
		in, err := Decode(w)
		if want := (DecodeError{Word: w}); err != want {
			t.Errorf("Decode(%.4x) returned error %v, want %v", w, err, want)
		}
		if in != (Instruction{}) {
			t.Errorf("Decode(%.4x) returned instruction %v with error", w, in)
		}
	}
}

// Check that every word decodes to exactly one operation or an error,
// and that the operands match the nibbles of the word.
func TestDecodeTotal(t *testing.T) {
	seen := map[Op]bool{}
	for i := 0; i <= 0xffff; i++ {
		w := uint16(i)
		in, err := Decode(w)
		if err != nil {
			var d DecodeError
			if !errors.As(err, &d) || d.Word != w {
				t.Fatalf("Decode(%.4x) returned error %v", w, err)
			}
			continue
		}
		if in.Op == 0 || in.Op >= numOps {
			t.Fatalf("Decode(%.4x) returned invalid op %d", w, in.Op)
		}
		seen[in.Op] = true

		x, y, n := byte(w>>8)&0xf, byte(w>>4)&0xf, byte(w)&0xf
		want := Instruction{Op: in.Op}
		switch in.Op {
		case JP, CALL, LDI, JPV:
			want.Addr = w & 0xfff
		case SE, SNE, LD, ADD, RND:
			want.X, want.KK = x, byte(w)
		case SEV, SNEV, LDV, OR, AND, XOR, ADDV, SUB, SUBN:
			want.X, want.Y = x, y
		case DRW:
			want.X, want.Y, want.N = x, y, n
		case SHR, SHL, SKP, SKNP, LDD, LDK, LDDV, LDS, ADDI, LDF, LDB:
			want.X = x
		}
		if in != want {
			t.Fatalf("Decode(%.4x) = %+v, want %+v", w, in, want)
		}
		again, err := Decode(w)
		if err != nil || again != in {
			t.Fatalf("Decode(%.4x) is not deterministic", w)
		}
	}
	if len(seen) != numOps-1 {
		t.Errorf("decoded %d distinct ops, want %d", len(seen), numOps-1)
	}
}

func TestDecodeBytes(t *testing.T) {
	in, err := DecodeBytes([]byte{0xa2, 0xf0, 0xff})
	if err != nil {
		t.Fatal(err)
	}
	if want := (Instruction{Op: LDI, Addr: 0x2f0}); in != want {
		t.Errorf("got %v, want %v", in, want)
	}
	if _, err := DecodeBytes([]byte{0xa2}); err == nil {
		t.Errorf("DecodeBytes of one byte returned nil error")
	}
}

func TestInstructionString(t *testing.T) {
	for w, want := range map[uint16]string{
		0x00e0: "CLS",
		0x2abc: "CALL ABC",
		0x3a42: "SE VA, 42",
		0x5ab0: "SE VA, VB",
		0x8ab0: "LD VA, VB",
		0x8ab4: "ADD VA, VB",
		0x8ab7: "SUBN VA, VB",
		0x8abe: "SHL VA",
		0xa2f0: "LD I, 2F0",
		0xb2f0: "JP V0, 2F0",
		0xd125: "DRW V1, V2, 5",
		0xf307: "LD V3, DT",
		0xf315: "LD DT, V3",
		0xf333: "LD B, V3",
		0xf355: "LD [I], V0-VF",
	} {
		in, err := Decode(w)
		if err != nil {
			t.Fatal(err)
		}
		if got := in.String(); got != want {
			t.Errorf("Decode(%.4x).String() = %q, want %q", w, got, want)
		}
	}
}

// Check that there are names for every opcode.
func TestOpString(t *testing.T) {
	names := map[string]bool{}
	for op := CLS; op < numOps; op++ {
		s := op.String()
		if s == "" || s == "???" || names[s] {
			t.Errorf("Op(%d).String() = %q", op, s)
		}
		names[s] = true
	}
}

// Only 00E0 and 00EE are valid in the 0nnn family.
func TestDecodeZeroFamily(t *testing.T) {
	var valid []uint16
	for w := uint16(0); w < 0x1000; w++ {
		if _, err := Decode(w); err == nil {
			valid = append(valid, w)
		}
	}
	if len(valid) != 2 || valid[0] != 0x00e0 || valid[1] != 0x00ee {
		t.Errorf("valid 0nnn words: %.4x", valid)
	}

	m := NewMachine()
	if err := m.LoadProgram([]byte{0x00, 0x00}); err != nil {
		t.Fatal(err)
	}
	err := m.Step()
	var d DecodeError
	if !errors.As(err, &d) || d.Word != 0 {
		t.Errorf("Step on 0000 returned %v, want DecodeError", err)
	}
}
