package chip8

const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is a monochrome framebuffer. Coordinates wrap around the edges.
type Display struct {
	pix  [][]bool // pix[y][x]
	w, h int
}

// NewDisplay returns a blank display of the given size.
func NewDisplay(w, h int) *Display {
	d := &Display{}
	d.Resize(w, h)
	return d
}

func (d *Display) Width() int  { return d.w }
func (d *Display) Height() int { return d.h }

// Resize changes the display dimensions. Pixels inside both the old and
// new bounds keep their values; new pixels are unset.
func (d *Display) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if h < len(d.pix) {
		d.pix = d.pix[:h]
	}
	for i, row := range d.pix {
		switch {
		case len(row) > w:
			d.pix[i] = row[:w]
		case len(row) < w:
			d.pix[i] = append(row, make([]bool, w-len(row))...)
		}
	}
	for len(d.pix) < h {
		d.pix = append(d.pix, make([]bool, w))
	}
	d.w, d.h = w, h
}

// Clear unsets every pixel.
func (d *Display) Clear() {
	for _, row := range d.pix {
		for x := range row {
			row[x] = false
		}
	}
}

// Pixel reports whether the pixel at x, y is set.
// Coordinates outside the display report false.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= d.w || y >= d.h {
		return false
	}
	return d.pix[y][x]
}

// Pixels returns a copy of the framebuffer, indexed [y][x].
func (d *Display) Pixels() [][]bool {
	p := make([][]bool, len(d.pix))
	for y, row := range d.pix {
		p[y] = append([]bool(nil), row...)
	}
	return p
}

// DrawBytesAt XORs sprite onto the display with its top-left corner at x, y.
// Each byte is one row of 8 pixels, most significant bit leftmost.
// It reports whether any set pixel was unset by the draw.
func (d *Display) DrawBytesAt(x, y int, sprite []byte) (collision bool) {
	if d.w == 0 || d.h == 0 {
		return false
	}
	for i, b := range sprite {
		row := d.pix[wrap(y+i, d.h)]
		for j := 0; j < 8; j++ {
			bit := b&(0x80>>j) != 0
			px := &row[wrap(x+j, d.w)]
			old := *px
			*px = old != bit
			if old && !*px {
				collision = true
			}
		}
	}
	return collision
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
