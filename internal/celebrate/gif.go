package celebrate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"time"
)

type GIFOptions struct {
	Width, Height int
	FPS           int
	Seed          int64
}

func (o GIFOptions) withDefaults() GIFOptions {
	if o.Width <= 0 {
		o.Width = 480
	}
	if o.Height <= 0 {
		o.Height = 270
	}
	if o.FPS <= 0 {
		o.FPS = 30
	}
	return o
}

var gifPalette = color.Palette{color.White, Sage, Mint}

// WriteGIF renders one full burst to w. The same options always produce
// the same bytes.
func WriteGIF(w io.Writer, opts GIFOptions) error {
	opts = opts.withDefaults()
	c := NewConfetti(float64(opts.Width), float64(opts.Height), opts.Seed)
	p := NewRasterPainter(opts.Width, opts.Height, color.White)

	interval := time.Second / time.Duration(opts.FPS)
	delay := int(interval / (10 * time.Millisecond))
	if delay < 1 {
		delay = 1
	}

	var anim gif.GIF
	start := time.Unix(0, 0)
	c.Start(start)
	for i := 1; c.Step(start.Add(time.Duration(i) * interval)); i++ {
		p.Paint(c.Pieces())
		frame := image.NewPaletted(image.Rect(0, 0, opts.Width, opts.Height), gifPalette)
		draw.Draw(frame, frame.Bounds(), p.Image(), image.Point{}, draw.Src)
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	if err := gif.EncodeAll(w, &anim); err != nil {
		return fmt.Errorf("encode confetti gif: %w", err)
	}
	return nil
}
