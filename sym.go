package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/nf/eight/chip8"
)

// symbols is a list of labels sorted by address.
type symbols []symbol

func (s symbols) forAddr(addr uint16) (ss []symbol) {
	i := sort.Search(len(s), func(i int) bool { return s[i].addr >= addr })
	for ; i < len(s) && s[i].addr == addr; i++ {
		ss = append(ss, s[i])
	}
	return ss
}

func (s symbols) withLabelPrefix(prefix string) (ss []symbol) {
	for _, s := range s {
		if strings.HasPrefix(s.label, prefix) {
			ss = append(ss, s)
		}
	}
	return ss
}

// resolve returns the symbol with the given label, or a symbol for arg
// interpreted as a hexadecimal address.
func (s symbols) resolve(arg string) (symbol, bool) {
	for _, s := range s {
		if s.label == arg {
			return s, true
		}
	}
	a, err := strconv.ParseUint(arg, 16, 16)
	if err != nil || a >= chip8.MemSize {
		return symbol{}, false
	}
	return symbol{addr: uint16(a), label: fmt.Sprintf("%.3x", a)}, true
}

type symbol struct {
	addr  uint16
	label string
}

func (s symbol) String() string { return fmt.Sprintf("%s (%.3x)", s.label, s.addr) }

// parseSymbols reads a label file. Each line holds a hexadecimal address
// and a label separated by white space. Blank lines and lines starting
// with # are ignored.
func parseSymbols(symFile string) (symbols, error) {
	f, err := os.Open(symFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		ss   symbols
		sc   = bufio.NewScanner(f)
		line = 0
	)
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s:%d: want address and label, got %q", symFile, line, sc.Text())
		}
		a, err := strconv.ParseUint(fields[0], 16, 16)
		if err != nil || a >= chip8.MemSize {
			return nil, fmt.Errorf("%s:%d: invalid address %q", symFile, line, fields[0])
		}
		ss = append(ss, symbol{addr: uint16(a), label: fields[1]})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(ss, func(i, j int) bool {
		return ss[i].addr < ss[j].addr
	})
	return ss, nil
}

// opAddr returns the memory address an instruction refers to, if any.
func opAddr(m *chip8.Machine, in chip8.Instruction) (uint16, bool) {
	switch in.Op {
	case chip8.JP, chip8.CALL, chip8.LDI:
		return in.Addr, true
	case chip8.JPV:
		v0, _ := m.V.Get(0)
		return in.Addr + uint16(v0), true
	case chip8.RET:
		if p := m.Stack.Ptr; p > 0 {
			return m.Stack.Addrs[p-1], true
		}
	case chip8.DRW, chip8.LDB, chip8.LDIV, chip8.LDVI:
		return m.I, true
	}
	return 0, false
}
