package vip

import (
	"fmt"
	"image"
	"log"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/draw"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

type gui struct {
	scale int

	size image.Point
	buf  screen.Buffer
	tex  screen.Texture
	last *Frame
}

func newGUI(scale int) *gui {
	return &gui{scale: scale}
}

// Run drives a shiny window. It must be called from the main goroutine.
func (g *gui) Run(frames <-chan Frame, exit <-chan bool) (err error) {
	driver.Main(func(s screen.Screen) {
		w, werr := s.NewWindow(&screen.NewWindowOptions{
			Title:  "eight",
			Width:  64 * g.scale,
			Height: 32 * g.scale,
		})
		if werr != nil {
			err = werr
			return
		}
		defer w.Release()
		defer g.release()

		type quit struct{}
		done := make(chan struct{})
		defer close(done)
		go func() {
			for {
				select {
				case f := <-frames:
					w.Send(f)
				case <-exit:
					w.Send(quit{})
					return
				case <-done:
					return
				}
			}
		}()

		var sz size.Event
		for {
			switch e := w.NextEvent().(type) {
			case quit:
				return

			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}

			case size.Event:
				sz = e
				if sz.WidthPx+sz.HeightPx == 0 {
					return
				}

			case key.Event:
				if e.Code == key.CodeEscape && e.Direction == key.DirPress {
					return
				}

			case paint.Event:
				if g.last != nil {
					if err := g.publish(s, w, sz, *g.last); err != nil {
						log.Printf("gui: %v", err)
					}
				}

			case Frame:
				g.last = &e
				if err := g.publish(s, w, sz, e); err != nil {
					log.Printf("gui: %v", err)
					return
				}

			case error:
				log.Print(e)
			}
		}
	})
	return err
}

func (g *gui) publish(s screen.Screen, w screen.Window, sz size.Event, f Frame) error {
	img := f.Image(g.scale)
	if b := img.Bounds().Size(); g.tex == nil || g.size != b {
		g.release()
		var err error
		if g.buf, err = s.NewBuffer(b); err != nil {
			return fmt.Errorf("allocating buffer: %w", err)
		}
		if g.tex, err = s.NewTexture(b); err != nil {
			return fmt.Errorf("allocating texture: %w", err)
		}
		g.size = b
	}
	draw.Copy(g.buf.RGBA(), image.Point{}, img, img.Bounds(), draw.Src, nil)
	g.tex.Upload(image.Point{}, g.buf, g.buf.Bounds())
	w.Scale(sz.Bounds(), g.tex, g.tex.Bounds(), draw.Src, nil)
	w.Publish()
	return nil
}

func (g *gui) release() {
	if g.tex != nil {
		g.tex.Release()
		g.tex = nil
	}
	if g.buf != nil {
		g.buf.Release()
		g.buf = nil
	}
}
