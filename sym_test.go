package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nf/eight/chip8"
)

func writeSymbols(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "test.ch8.sym")
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestParseSymbols(t *testing.T) {
	syms, err := parseSymbols(writeSymbols(t, `
# labels
2f0 sprite
200 main
20a loop
20a  loop_alias

3a4	draw
`))
	if err != nil {
		t.Fatal(err)
	}
	want := symbols{
		{0x200, "main"},
		{0x20a, "loop"},
		{0x20a, "loop_alias"},
		{0x2f0, "sprite"},
		{0x3a4, "draw"},
	}
	if len(syms) != len(want) {
		t.Fatalf("got %v, want %v", syms, want)
	}
	for i := range want {
		if syms[i] != want[i] {
			t.Errorf("symbol %d = %v, want %v", i, syms[i], want[i])
		}
	}

	if s := syms.forAddr(0x20a); len(s) != 2 || s[0].label != "loop" || s[1].label != "loop_alias" {
		t.Errorf("forAddr(20a) = %v", s)
	}
	if s := syms.forAddr(0x20c); len(s) != 0 {
		t.Errorf("forAddr(20c) = %v", s)
	}
	if s := syms.withLabelPrefix("lo"); len(s) != 2 {
		t.Errorf("withLabelPrefix(lo) = %v", s)
	}
}

func TestParseSymbolsErrors(t *testing.T) {
	for _, content := range []string{
		"200\n",
		"200 main extra\n",
		"xyz main\n",
		"1000 past_end\n",
	} {
		if _, err := parseSymbols(writeSymbols(t, content)); err == nil {
			t.Errorf("parseSymbols(%q) returned nil error", content)
		}
	}
	if _, err := parseSymbols(filepath.Join(t.TempDir(), "missing.sym")); !os.IsNotExist(err) {
		t.Errorf("missing file returned %v", err)
	}
}

func TestResolve(t *testing.T) {
	syms := symbols{{0x200, "main"}, {0x2f0, "abc"}}
	for _, c := range []struct {
		arg  string
		addr uint16
		ok   bool
	}{
		{"main", 0x200, true},
		{"abc", 0x2f0, true}, // label wins over hex
		{"2a4", 0x2a4, true},
		{"fff", 0xfff, true},
		{"1000", 0, false},
		{"nope", 0, false},
	} {
		s, ok := syms.resolve(c.arg)
		if ok != c.ok || s.addr != c.addr {
			t.Errorf("resolve(%q) = %v, %v, want %.3x, %v", c.arg, s, ok, c.addr, c.ok)
		}
	}
}

func TestOpAddr(t *testing.T) {
	m := chip8.NewMachine()
	m.I = 0x2f0
	m.V.Set(0, 4)
	m.Stack.Push(0x20c)
	for w, want := range map[uint16]int{
		0x1234: 0x234,
		0x2456: 0x456,
		0xa300: 0x300,
		0xb300: 0x304,
		0x00ee: 0x20c,
		0xd125: 0x2f0,
		0xf055: 0x2f0,
		0x6001: -1,
		0x00e0: -1,
	} {
		in, err := chip8.Decode(w)
		if err != nil {
			t.Fatal(err)
		}
		a, ok := opAddr(m, in)
		if want < 0 {
			if ok {
				t.Errorf("opAddr(%v) = %.3x, want none", in, a)
			}
			continue
		}
		if !ok || int(a) != want {
			t.Errorf("opAddr(%v) = %.3x, %v, want %.3x", in, a, ok, want)
		}
	}
}
