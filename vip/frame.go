package vip

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/nf/eight/chip8"
)

// Colours used to render a Frame.
var (
	Background = color.RGBA{0x11, 0x11, 0x22, 0xff}
	Foreground = color.RGBA{0xdd, 0xdd, 0xcc, 0xff}
	// SoundForeground replaces Foreground while the sound timer runs.
	SoundForeground = color.RGBA{0xff, 0xaa, 0x22, 0xff}
)

// Frame is a snapshot of the machine's visible state, taken by the
// runner once per 60Hz tick and handed to a front-end.
type Frame struct {
	Pix           [][]bool // [y][x]
	Width, Height int
	Delay, Sound  byte
	PC            uint16
}

// Snapshot copies the visible state of m.
func Snapshot(m *chip8.Machine) Frame {
	return Frame{
		Pix:    m.Display.Pixels(),
		Width:  m.Display.Width(),
		Height: m.Display.Height(),
		Delay:  m.Delay.Get(),
		Sound:  m.Sound.Get(),
		PC:     m.PC,
	}
}

func (f Frame) fg() color.RGBA {
	if f.Sound > 0 {
		return SoundForeground
	}
	return Foreground
}

// Image renders the frame with each display pixel drawn as a
// scale by scale square.
func (f Frame) Image(scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	src := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	fg := f.fg()
	for y, row := range f.Pix {
		for x, on := range row {
			c := Background
			if on {
				c = fg
			}
			src.SetRGBA(x, y, c)
		}
	}
	if scale == 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, f.Width*scale, f.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
