// Package celebrate draws the completion effect: a short burst of confetti
// that runs independently of progress state and clears itself.
package celebrate

import (
	"math"
	"math/rand"
	"time"
)

const (
	DefaultPieces   = 140
	DefaultDuration = 1400 * time.Millisecond
	spin            = 0.05
)

// Effect is fired when a lesson is complete or the learner asks for the next
// step with nothing left to try.
type Effect interface {
	Fire()
}

// Noop ignores every fire. Used for reduced motion and headless rendering.
type Noop struct{}

func (Noop) Fire() {}

// Func adapts a plain function to Effect.
type Func func()

func (f Func) Fire() {
	if f != nil {
		f()
	}
}

// Piece is one square of confetti. A is its rotation in radians.
type Piece struct {
	X, Y, R float64
	VX, VY  float64
	A       float64
	Alt     bool
}

// Confetti is the animation state. It is not safe for concurrent use; the
// Animator serializes access.
type Confetti struct {
	Width, Height float64
	Count         int
	Duration      time.Duration

	rng     *rand.Rand
	pieces  []Piece
	start   time.Time
	running bool
}

func NewConfetti(width, height float64, seed int64) *Confetti {
	return &Confetti{
		Width:    width,
		Height:   height,
		Count:    DefaultPieces,
		Duration: DefaultDuration,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Start scatters a fresh set of pieces above the top edge. A running
// animation is restarted.
func (c *Confetti) Start(now time.Time) {
	c.pieces = make([]Piece, c.Count)
	for i := range c.pieces {
		c.pieces[i] = Piece{
			X:  c.rng.Float64() * c.Width,
			Y:  -20 - c.rng.Float64()*80,
			R:  6 + c.rng.Float64()*6,
			VX: -2 + c.rng.Float64()*4,
			VY: 2 + c.rng.Float64()*3,
			A:  c.rng.Float64() * math.Pi,
		}
	}
	c.start = now
	c.running = true
}

// Step advances every piece by one frame. Once Duration has elapsed the
// pieces are dropped and Step reports false.
func (c *Confetti) Step(now time.Time) bool {
	if !c.running {
		return false
	}
	for i := range c.pieces {
		p := &c.pieces[i]
		p.X += p.VX
		p.Y += p.VY
		p.A += spin
		p.Alt = c.rng.Intn(2) == 1
	}
	if now.Sub(c.start) >= c.Duration {
		c.running = false
		c.pieces = nil
		return false
	}
	return true
}

func (c *Confetti) Running() bool { return c.running }

// Pieces returns a copy of the current frame.
func (c *Confetti) Pieces() []Piece {
	out := make([]Piece, len(c.pieces))
	copy(out, c.pieces)
	return out
}
