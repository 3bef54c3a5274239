// Package vip hosts a CHIP-8 machine the way a COSMAC VIP would: it clocks
// the interpreter, presents the display at 60Hz and lets a debugger pause,
// step and inspect the machine.
package vip

import (
	"errors"
	"log"
	"time"

	"github.com/nf/eight/chip8"
)

// DefaultRate is the default number of instructions executed per second.
const DefaultRate = 700

// Display selects the front-end that presents frames.
type Display int

const (
	Headless Display = iota
	GUI
	Terminal
)

type Config struct {
	Display Display
	Rate    int // instructions per second
	Scale   int // GUI pixel scale
	Dev     bool
}

// Frontend presents frames produced by the runner. Run returns when exit is
// closed or the user closes the front-end.
type Frontend interface {
	Run(frames <-chan Frame, exit <-chan bool) error
}

// StateKind describes why a StateFunc was called.
type StateKind int

const (
	ClearState StateKind = iota // resumed or reset
	QuietState                  // periodic update while running
	BreakState                  // stopped at a breakpoint
	DebugState                  // passed a debug point
	PauseState                  // paused or single-stepped
	HaltState                   // stopped by an error
)

// StateFunc is called from the execution goroutine whenever the machine
// changes state. It must not retain m.
type StateFunc func(m *chip8.Machine, k StateKind)

var ErrNotDev = errors.New("swap requires dev mode")

type Runner struct {
	cfg   Config
	state StateFunc
	front Frontend

	swap     chan []byte
	swapDone chan error
	debug    chan debugOp
	done     chan struct{}

	log backlog
}

type debugOp struct {
	cmd  string
	addr uint16
}

// NewRunner returns a Runner configured by cfg. The state func may be nil.
func NewRunner(cfg Config, state StateFunc) *Runner {
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRate
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 10
	}
	r := &Runner{
		cfg:      cfg,
		state:    state,
		swap:     make(chan []byte),
		swapDone: make(chan error),
		debug:    make(chan debugOp),
		done:     make(chan struct{}),
	}
	switch cfg.Display {
	case GUI:
		r.front = newGUI(cfg.Scale)
	case Terminal:
		r.front = newTerm(nil)
	default:
		r.front = headless{}
	}
	return r
}

// Swap replaces the running program with rom, resetting the machine.
// It may only be used in dev mode, while Run is executing.
func (r *Runner) Swap(rom []byte) error {
	if !r.cfg.Dev {
		return ErrNotDev
	}
	select {
	case r.swap <- rom:
		return <-r.swapDone
	case <-r.done:
		return errors.New("runner stopped")
	}
}

// Debug sends a debugger command to the running machine:
//
//	b, break  set the breakpoint to addr (clear it if addr is 0)
//	d, debug  set the debug point to addr (clear it if addr is 0)
//	p, pause  stop executing instructions
//	c, cont   resume execution
//	s, step   execute one instruction while paused
//	exit      stop the runner
func (r *Runner) Debug(cmd string, addr uint16) {
	select {
	case r.debug <- debugOp{cmd, addr}:
	case <-r.done:
	}
}

// Run loads rom into a new machine and executes it until the program
// halts, the front-end exits, or the exit debug command is given.
// In dev mode a halted program waits to be swapped out rather than
// stopping the runner.
func (r *Runner) Run(rom []byte) error {
	m := chip8.NewMachine()
	if err := m.LoadProgram(rom); err != nil {
		return err
	}
	var (
		frames  = make(chan Frame, 1)
		exit    = make(chan bool)
		quit    = make(chan struct{})
		execErr = make(chan error, 1)
	)
	go func() {
		defer close(exit)
		defer close(r.done)
		execErr <- r.exec(m, frames, quit)
	}()
	frontErr := r.front.Run(frames, exit)
	close(quit)
	err := <-execErr
	if frontErr != nil {
		return frontErr
	}
	return err
}

func (r *Runner) setState(m *chip8.Machine, k StateKind) {
	if r.state != nil {
		r.state(m, k)
	}
}

func (r *Runner) exec(m *chip8.Machine, frames chan<- Frame, quit <-chan struct{}) error {
	var (
		tick    = time.NewTicker(time.Second / 60)
		perTick = r.cfg.Rate / 60
		running = true
		paused  bool
		steps   int // single steps requested while paused
		brk     = -1
		dbg     = -1
		skip    bool // execute the instruction at a breakpoint
	)
	defer tick.Stop()
	if perTick < 1 {
		perTick = 1
	}
	r.log.Reset()
	r.setState(m, ClearState)

	for {
		select {
		case <-quit:
			return nil

		case rom := <-r.swap:
			err := m.LoadProgram(rom)
			r.swapDone <- err
			if err != nil {
				log.Printf("swap: %v", err)
				continue
			}
			running, skip, steps = true, false, 0
			r.log.Reset()
			if paused {
				r.setState(m, PauseState)
			} else {
				r.setState(m, ClearState)
			}

		case op := <-r.debug:
			addr := int(op.addr)
			if op.addr == 0 {
				addr = -1
			}
			switch op.cmd {
			case "b", "break":
				brk = addr
			case "d", "debug":
				dbg = addr
			case "p", "pause":
				if running && !paused {
					paused = true
					r.setState(m, PauseState)
				}
			case "c", "cont":
				if paused {
					paused, skip = false, true
					r.setState(m, ClearState)
				}
			case "s", "step":
				if paused {
					steps++
				}
			case "exit":
				return nil
			default:
				log.Printf("unknown debug command %q", op.cmd)
			}

		case <-tick.C:
			if running {
				n := perTick
				if paused {
					n, steps = steps, 0
					skip = skip || n > 0
				}
				for i := 0; i < n; i++ {
					pc := int(m.PC)
					if pc == brk && !skip {
						paused, steps = true, 0
						r.setState(m, BreakState)
						break
					}
					skip = false
					if pc == dbg {
						r.setState(m, DebugState)
					}
					if b, err := m.Mem.Range(m.PC, 2); err == nil {
						r.log.LazyPrintf("%.3x: %.2x%.2x %v I=%.3x", pc, b[0], b[1], m.V, m.I)
					}
					if err := m.Step(); err != nil {
						r.log.Emit()
						running = false
						r.setState(m, HaltState)
						if !r.cfg.Dev {
							return err
						}
						log.Print(err)
						break
					}
					if paused {
						r.setState(m, PauseState)
					}
				}
				if running && !paused {
					r.setState(m, QuietState)
				}
			}
			select {
			case frames <- Snapshot(m):
			default:
				// Front-end is behind; drop the frame.
			}
		}
	}
}

// headless discards frames and runs until the machine stops.
type headless struct{}

func (headless) Run(frames <-chan Frame, exit <-chan bool) error {
	<-exit
	return nil
}

type backlog struct {
	entries []logEntry
	n       int
}

type logEntry struct {
	format string
	args   []any
}

const maxBacklog = 32

func (b *backlog) LazyPrintf(format string, args ...any) {
	if b.n < len(b.entries) {
		b.entries[b.n] = logEntry{format, args}
	} else {
		b.entries = append(b.entries, logEntry{format, args})
	}
	b.n = (b.n + 1) % maxBacklog
}

// Emit logs the retained entries, oldest first.
func (b *backlog) Emit() {
	if len(b.entries) == 0 {
		return
	}
	for i := b.n; ; i++ {
		i %= len(b.entries)
		log.Printf(b.entries[i].format, b.entries[i].args...)
		if (i+1)%len(b.entries) == b.n%len(b.entries) {
			break
		}
	}
}

func (b *backlog) Reset() {
	b.entries = b.entries[:0]
	b.n = 0
}
