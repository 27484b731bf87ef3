package celebrate

import (
	"sync"
	"time"

	"github.com/jask/skillbuilder/internal/logger"
)

// FrameInterval is roughly one display refresh at 60Hz.
const FrameInterval = time.Second / 60

// Animator runs the confetti on its own goroutine. Fire while running
// restarts the burst.
type Animator struct {
	mu       sync.Mutex
	confetti *Confetti
	painter  Painter
	log      *logger.Logger
	now      func() time.Time
	interval time.Duration

	cancel chan struct{}
	done   chan struct{}
}

func NewAnimator(c *Confetti, p Painter, log *logger.Logger) *Animator {
	return &Animator{
		confetti: c,
		painter:  p,
		log:      logger.OrNop(log),
		now:      time.Now,
		interval: FrameInterval,
	}
}

func (a *Animator) Fire() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		close(a.cancel)
	}
	cancel := make(chan struct{})
	done := make(chan struct{})
	a.cancel, a.done = cancel, done
	a.confetti.Start(a.now())
	a.log.Debug("confetti fired", "pieces", a.confetti.Count)
	go a.run(cancel, done)
}

func (a *Animator) run(cancel, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
		}
		if !a.frame(cancel) {
			return
		}
	}
}

func (a *Animator) frame(cancel chan struct{}) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	select {
	case <-cancel:
		return false
	default:
	}
	if a.confetti.Step(a.now()) {
		a.painter.Paint(a.confetti.Pieces())
		return true
	}
	a.painter.Clear()
	a.cancel = nil
	return false
}

// Running reports whether a burst is on screen.
func (a *Animator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.confetti.Running()
}

// Wait blocks until the current burst, if any, has finished.
func (a *Animator) Wait() {
	a.mu.Lock()
	done := a.done
	a.mu.Unlock()
	if done != nil {
		<-done
	}
}
