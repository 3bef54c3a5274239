package chip8

import "fmt"

// Op identifies a CHIP-8 operation.
type Op byte

const (
	CLS  Op = iota + 1 // 00E0
	RET                // 00EE
	JP                 // 1nnn
	CALL               // 2nnn
	SE                 // 3xkk
	SNE                // 4xkk
	SEV                // 5xy0
	LD                 // 6xkk
	ADD                // 7xkk
	LDV                // 8xy0
	OR                 // 8xy1
	AND                // 8xy2
	XOR                // 8xy3
	ADDV               // 8xy4
	SUB                // 8xy5
	SHR                // 8xy6
	SUBN               // 8xy7
	SHL                // 8xyE
	SNEV               // 9xy0
	LDI                // Annn
	JPV                // Bnnn
	RND                // Cxkk
	DRW                // Dxyn
	SKP                // Ex9E
	SKNP               // ExA1
	LDD                // Fx07
	LDK                // Fx0A
	LDDV               // Fx15
	LDS                // Fx18
	ADDI               // Fx1E
	LDF                // Fx29
	LDB                // Fx33
	LDIV               // Fx55
	LDVI               // Fx65

	numOps = iota + 1
)

var opNames = [numOps]string{
	"???", "CLS", "RET", "JP", "CALL", "SE", "SNE", "SEV", "LD", "ADD",
	"LDV", "OR", "AND", "XOR", "ADDV", "SUB", "SHR", "SUBN", "SHL", "SNEV",
	"LDI", "JPV", "RND", "DRW", "SKP", "SKNP", "LDD", "LDK", "LDDV", "LDS",
	"ADDI", "LDF", "LDB", "LDIV", "LDVI",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", byte(op))
}

// Instruction is a decoded instruction word. Only the operands used by Op
// are set; the rest are zero.
type Instruction struct {
	Op   Op
	X, Y byte   // register operands
	N    byte   // nibble operand (DRW)
	KK   byte   // byte operand
	Addr uint16 // 12-bit address operand
}

// DecodeError is returned by Decode for words that do not encode any
// instruction.
type DecodeError struct {
	Word uint16
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("bad code %.4x", e.Word)
}

// Decode maps an instruction word to the Instruction it encodes.
func Decode(word uint16) (Instruction, error) {
	var (
		x    = byte(word>>8) & 0xf
		y    = byte(word>>4) & 0xf
		n    = byte(word) & 0xf
		kk   = byte(word)
		addr = word & 0xfff
	)
	a := func(op Op) (Instruction, error) { return Instruction{Op: op, Addr: addr}, nil }
	xkk := func(op Op) (Instruction, error) { return Instruction{Op: op, X: x, KK: kk}, nil }
	xy := func(op Op) (Instruction, error) { return Instruction{Op: op, X: x, Y: y}, nil }
	vx := func(op Op) (Instruction, error) { return Instruction{Op: op, X: x}, nil }

	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00e0:
			return Instruction{Op: CLS}, nil
		case 0x00ee:
			return Instruction{Op: RET}, nil
		}
	case 0x1:
		return a(JP)
	case 0x2:
		return a(CALL)
	case 0x3:
		return xkk(SE)
	case 0x4:
		return xkk(SNE)
	case 0x5:
		if n == 0 {
			return xy(SEV)
		}
	case 0x6:
		return xkk(LD)
	case 0x7:
		return xkk(ADD)
	case 0x8:
		switch n {
		case 0x0:
			return xy(LDV)
		case 0x1:
			return xy(OR)
		case 0x2:
			return xy(AND)
		case 0x3:
			return xy(XOR)
		case 0x4:
			return xy(ADDV)
		case 0x5:
			return xy(SUB)
		case 0x6:
			return vx(SHR)
		case 0x7:
			return xy(SUBN)
		case 0xe:
			return vx(SHL)
		}
	case 0x9:
		if n == 0 {
			return xy(SNEV)
		}
	case 0xa:
		return a(LDI)
	case 0xb:
		return a(JPV)
	case 0xc:
		return xkk(RND)
	case 0xd:
		return Instruction{Op: DRW, X: x, Y: y, N: n}, nil
	case 0xe:
		switch kk {
		case 0x9e:
			return vx(SKP)
		case 0xa1:
			return vx(SKNP)
		}
	case 0xf:
		switch kk {
		case 0x07:
			return vx(LDD)
		case 0x0a:
			return vx(LDK)
		case 0x15:
			return vx(LDDV)
		case 0x18:
			return vx(LDS)
		case 0x1e:
			return vx(ADDI)
		case 0x29:
			return vx(LDF)
		case 0x33:
			return vx(LDB)
		case 0x55:
			return Instruction{Op: LDIV}, nil
		case 0x65:
			return Instruction{Op: LDVI}, nil
		}
	}
	return Instruction{}, DecodeError{Word: word}
}

// DecodeBytes decodes the big-endian instruction word held in the first two
// bytes of b.
func DecodeBytes(b []byte) (Instruction, error) {
	if len(b) < 2 {
		return Instruction{}, fmt.Errorf("short instruction: %d bytes", len(b))
	}
	return Decode(uint16(b[0])<<8 | uint16(b[1]))
}

// String returns the instruction in conventional assembler syntax.
func (in Instruction) String() string {
	switch in.Op {
	case CLS, RET:
		return in.Op.String()
	case JP, CALL:
		return fmt.Sprintf("%s %.3X", in.Op, in.Addr)
	case SE, SNE, LD, ADD, RND:
		return fmt.Sprintf("%s V%X, %.2X", in.Op, in.X, in.KK)
	case SEV:
		return fmt.Sprintf("SE V%X, V%X", in.X, in.Y)
	case SNEV:
		return fmt.Sprintf("SNE V%X, V%X", in.X, in.Y)
	case LDV:
		return fmt.Sprintf("LD V%X, V%X", in.X, in.Y)
	case ADDV:
		return fmt.Sprintf("ADD V%X, V%X", in.X, in.Y)
	case OR, AND, XOR, SUB, SUBN:
		return fmt.Sprintf("%s V%X, V%X", in.Op, in.X, in.Y)
	case SHR, SHL, SKP, SKNP:
		return fmt.Sprintf("%s V%X", in.Op, in.X)
	case LDI:
		return fmt.Sprintf("LD I, %.3X", in.Addr)
	case JPV:
		return fmt.Sprintf("JP V0, %.3X", in.Addr)
	case DRW:
		return fmt.Sprintf("DRW V%X, V%X, %X", in.X, in.Y, in.N)
	case LDD:
		return fmt.Sprintf("LD V%X, DT", in.X)
	case LDK:
		return fmt.Sprintf("LD V%X, K", in.X)
	case LDDV:
		return fmt.Sprintf("LD DT, V%X", in.X)
	case LDS:
		return fmt.Sprintf("LD ST, V%X", in.X)
	case ADDI:
		return fmt.Sprintf("ADD I, V%X", in.X)
	case LDF:
		return fmt.Sprintf("LD F, V%X", in.X)
	case LDB:
		return fmt.Sprintf("LD B, V%X", in.X)
	case LDIV:
		return "LD [I], V0-VF"
	case LDVI:
		return "LD V0-VF, [I]"
	}
	return in.Op.String()
}
