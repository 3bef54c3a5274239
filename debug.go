package main

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/nf/eight/chip8"
	"github.com/nf/eight/vip"
)

type debugger struct {
	run *vip.Runner

	log   *tview.TextView
	watch *tview.TextView
	state *tview.TextView
	input *tview.InputField
	cols  *tview.Flex
	rows  *tview.Flex
	app   *tview.Application

	mu       sync.Mutex
	dbg, brk *symbol
	syms     symbols
	watches  []watch
}

type watch struct {
	symbol
	word bool
}

func (d *debugger) symbols() symbols {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.syms
}

func (d *debugger) setSymbols(s symbols) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.syms = s
}

func newDebugger() *debugger {
	d := &debugger{
		log: tview.NewTextView().
			SetMaxLines(1000),
		watch: tview.NewTextView().
			SetWrap(false).
			SetTextAlign(tview.AlignRight),
		state: tview.NewTextView().
			SetWrap(false),
		input: tview.NewInputField(),
		cols:  tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
	}
	d.log.SetChangedFunc(func() { d.app.Draw() })
	d.watch.SetBackgroundColor(tcell.ColorDarkBlue)
	d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	d.cols.
		AddItem(d.watch, 0, 1, false).
		AddItem(d.log, 0, 2, false)
	d.rows.
		AddItem(d.cols, 0, 1, false).
		AddItem(d.state, 4, 0, false).
		AddItem(d.input, 1, 0, true)
	d.app.SetRoot(d.rows, true)

	d.input.SetAutocompleteFunc(func(t string) (entries []string) {
		if cmd, arg, ok := strings.Cut(t, " "); ok {
			switch cmd {
			case "b", "break", "d", "debug", "w", "w2", "watch", "watch2":
				for _, s := range d.symbols().withLabelPrefix(arg) {
					entries = append(entries, cmd+" "+s.label)
				}
			}
		}
		return
	})
	d.input.SetAutocompletedFunc(func(t string, index, src int) bool {
		if src != tview.AutocompletedNavigate {
			d.input.SetText(t)
		}
		return src == tview.AutocompletedEnter || src == tview.AutocompletedClick
	})
	d.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		cmd := d.input.GetText()
		if cmd == "" {
			return
		}
		d.input.SetText("")
		d.command(cmd)
	})
	return d
}

func (d *debugger) command(cmd string) {
	if cmd == "exit" {
		d.app.Stop()
		return
	}
	if cmd, arg, ok := strings.Cut(cmd, " "); ok {
		switch cmd {
		case "b", "break", "d", "debug":
			s, ok := d.symbols().resolve(arg)
			if !ok {
				log.Printf("invalid addr %q", arg)
				return
			}
			d.run.Debug(cmd, s.addr)
			d.mu.Lock()
			switch cmd[0] {
			case 'b':
				d.brk = &s
				log.Printf("set break %.3x", s.addr)
			case 'd':
				d.dbg = &s
				log.Printf("set debug %.3x", s.addr)
			}
			d.mu.Unlock()
			return
		case "w", "w2", "watch", "watch2":
			s, ok := d.symbols().resolve(arg)
			if !ok {
				log.Printf("invalid address %q", arg)
				return
			}
			d.mu.Lock()
			d.watches = append(d.watches,
				watch{symbol: s, word: strings.HasSuffix(cmd, "2")})
			d.mu.Unlock()
			log.Printf("watching %.3x", s.addr)
			return
		}
	}
	d.run.Debug(cmd, 0)
	d.mu.Lock()
	defer d.mu.Unlock()
	switch cmd[0] {
	case 'b':
		d.brk = nil
		log.Print("cleared break")
	case 'd':
		d.dbg = nil
		log.Print("cleared debug")
	}
}

func (d *debugger) Run() error { return d.app.Run() }

func (d *debugger) StateFunc(m *chip8.Machine, k vip.StateKind) {
	var (
		watch = d.watchContent(m)
		state string
	)
	if k != vip.ClearState && k != vip.QuietState {
		state = stateMsg(d.symbols(), m, k)
	}
	d.app.QueueUpdateDraw(func() {
		switch k {
		case vip.DebugState, vip.ClearState:
			d.state.SetTextColor(tcell.ColorBlack)
			d.state.SetBackgroundColor(tcell.ColorDarkGrey)
		case vip.BreakState:
			d.state.SetTextColor(tcell.ColorYellow)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case vip.PauseState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case vip.HaltState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkRed)
		}
		d.watch.SetText(watch)
		if k != vip.QuietState {
			d.state.SetText(state)
		}
	})
}

func stateMsg(syms symbols, m *chip8.Machine, k vip.StateKind) string {
	var (
		op    = "???"
		pcSym string
		sym   string
	)
	if s := syms.forAddr(m.PC); len(s) > 0 {
		pcSym = s[0].String() + " -> "
	}
	if in, err := m.Next(); err == nil {
		op = in.String()
		if addr, ok := opAddr(m, in); ok {
			for i, s := range syms.forAddr(addr) {
				if i != 0 {
					sym += " "
				}
				sym += s.String()
			}
		}
	}
	kind := "       "
	switch k {
	case vip.BreakState:
		kind = "[break]"
	case vip.DebugState:
		kind = "[debug]"
	case vip.PauseState:
		kind = "[pause]"
	case vip.HaltState:
		kind = "[HALT!]"
	}
	return fmt.Sprintf("%.3x %-16s %s %s%s\nv:  %v\ni:  %.3x  dt: %.2x  st: %.2x\nstack: %v\n",
		m.PC, op, kind, pcSym, sym, m.V, m.I, m.Delay.Get(), m.Sound.Get(), m.Stack)
}

func (d *debugger) watchContent(m *chip8.Machine) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var b strings.Builder
	if s := d.brk; s != nil {
		fmt.Fprintf(&b, "%s [%.3x] brk!\n", s.label, s.addr)
	}
	if s := d.dbg; s != nil {
		fmt.Fprintf(&b, "%s [%.3x] dbg?\n", s.label, s.addr)
	}
	for _, w := range d.watches {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s [%.3x] ", w.label, w.addr)
		n := 1
		if w.word {
			n = 2
		}
		v, err := m.Mem.Range(w.addr, n)
		switch {
		case err != nil:
			b.WriteString("  --")
		case w.word:
			fmt.Fprintf(&b, "%.2x%.2x", v[0], v[1])
		default:
			fmt.Fprintf(&b, "  %.2x", v[0])
		}
	}
	return b.String()
}
