package celebrate

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
)

var (
	Sage = color.RGBA{R: 0x9c, G: 0xc2, B: 0x9b, A: 0xff}
	Mint = color.RGBA{R: 0xcf, G: 0xe3, B: 0xc8, A: 0xff}
)

// Painter draws frames somewhere. Clear is called once the animation ends.
type Painter interface {
	Paint(pieces []Piece)
	Clear()
}

// RasterPainter draws onto an in-memory canvas.
type RasterPainter struct {
	dc         *gg.Context
	background color.Color
}

// NewRasterPainter returns a painter whose cleared state is background, or
// fully transparent when background is nil.
func NewRasterPainter(width, height int, background color.Color) *RasterPainter {
	if background == nil {
		background = color.Transparent
	}
	p := &RasterPainter{dc: gg.NewContext(width, height), background: background}
	p.Clear()
	return p
}

func (p *RasterPainter) Paint(pieces []Piece) {
	p.Clear()
	for _, pc := range pieces {
		p.dc.Push()
		p.dc.Translate(pc.X, pc.Y)
		p.dc.Rotate(pc.A)
		p.dc.DrawRectangle(-pc.R/2, -pc.R/2, pc.R, pc.R)
		if pc.Alt {
			p.dc.SetColor(Mint)
		} else {
			p.dc.SetColor(Sage)
		}
		p.dc.Fill()
		p.dc.Pop()
	}
}

func (p *RasterPainter) Clear() {
	p.dc.SetColor(p.background)
	p.dc.Clear()
}

// Image is the current canvas. It is reused by the next Paint.
func (p *RasterPainter) Image() image.Image { return p.dc.Image() }

// SnapshotPainter paints through a RasterPainter and keeps a copy of the
// last painted frame after the burst has cleared the canvas.
type SnapshotPainter struct {
	*RasterPainter
	last   *image.RGBA
	frames int
}

func NewSnapshotPainter(width, height int, background color.Color) *SnapshotPainter {
	return &SnapshotPainter{RasterPainter: NewRasterPainter(width, height, background)}
}

func (p *SnapshotPainter) Paint(pieces []Piece) {
	p.RasterPainter.Paint(pieces)
	src := p.RasterPainter.Image()
	if p.last == nil {
		p.last = image.NewRGBA(src.Bounds())
	}
	draw.Draw(p.last, p.last.Bounds(), src, src.Bounds().Min, draw.Src)
	p.frames++
}

// Last is the most recent painted frame, or nil before the first frame.
func (p *SnapshotPainter) Last() image.Image {
	if p.last == nil {
		return nil
	}
	return p.last
}

// Frames counts Paint calls.
func (p *SnapshotPainter) Frames() int { return p.frames }
