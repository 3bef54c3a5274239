package vip

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// term draws frames in a terminal, two display rows per character cell.
type term struct {
	screen tcell.Screen
}

// newTerm returns a terminal front-end. A nil screen means the process's
// terminal.
func newTerm(s tcell.Screen) *term {
	return &term{screen: s}
}

func (t *term) Run(frames <-chan Frame, exit <-chan bool) error {
	s := t.screen
	if s == nil {
		var err error
		if s, err = tcell.NewScreen(); err != nil {
			return err
		}
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()
	s.HideCursor()
	s.Clear()

	events := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go s.ChannelEvents(events, quit)

	for {
		select {
		case <-exit:
			return nil
		case f := <-frames:
			drawFrame(s, f)
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return nil
				}
			case *tcell.EventResize:
				s.Sync()
			}
		}
	}
}

var (
	termBackground      = tcell.NewRGBColor(int32(Background.R), int32(Background.G), int32(Background.B))
	termForeground      = tcell.NewRGBColor(int32(Foreground.R), int32(Foreground.G), int32(Foreground.B))
	termSoundForeground = tcell.NewRGBColor(int32(SoundForeground.R), int32(SoundForeground.G), int32(SoundForeground.B))
)

// drawFrame renders f using upper half block characters: the top display
// row sets the cell's foreground, the bottom row its background. A status
// line follows the display.
func drawFrame(s tcell.Screen, f Frame) {
	fg := termForeground
	if f.Sound > 0 {
		fg = termSoundForeground
	}
	col := func(x, y int) tcell.Color {
		if y < len(f.Pix) && x < len(f.Pix[y]) && f.Pix[y][x] {
			return fg
		}
		return termBackground
	}
	rows := (f.Height + 1) / 2
	for cy := 0; cy < rows; cy++ {
		for x := 0; x < f.Width; x++ {
			st := tcell.StyleDefault.
				Foreground(col(x, 2*cy)).
				Background(col(x, 2*cy+1))
			s.SetContent(x, cy, '▀', nil, st)
		}
	}
	status := fmt.Sprintf("pc %.3x  dt %.2x  st %.2x  [esc] quit", f.PC, f.Delay, f.Sound)
	for x, r := range []rune(status) {
		s.SetContent(x, rows, r, nil, tcell.StyleDefault)
	}
	s.Show()
}
