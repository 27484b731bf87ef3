// Package tui is the terminal host for one lesson instance. Bubble Tea
// delivers every event on one goroutine, so the controller is never
// touched concurrently.
package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/skillbuilder/internal/celebrate"
	"github.com/jask/skillbuilder/internal/controller"
	"github.com/jask/skillbuilder/internal/render"
)

type focusArea int

const (
	focusSteps focusArea = iota
	focusReactions
)

type mode int

const (
	modeBrowse mode = iota
	modeNotes
	modeChecklist
)

// confetti canvas in abstract units; one terminal cell is cellW x cellH.
const (
	cellW          = 10.0
	cellH          = 36.0
	confettiRows   = 8
	defaultColumns = 80
)

type confettiFrameMsg time.Time

type Options struct {
	ReducedMotion bool
	Seed          int64
}

// App is the bubbletea model. It is also the celebration Effect of the
// instance it hosts.
type App struct {
	inst *controller.Instance
	keys *KeyRegistry
	opts Options

	mode        mode
	focus       focusArea
	cursor      int
	reactCursor int
	prepCursor  int
	tipsOpen    map[int]bool
	notes       textarea.Model

	confetti    *celebrate.Confetti
	fireQueued  bool
	celebrating bool

	width, height int
	status        string
	statusErr     bool
}

func New(opts Options) *App {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.SetHeight(4)
	return &App{
		keys:     NewKeyRegistry(DefaultBindings()),
		opts:     opts,
		tipsOpen: map[int]bool{},
		notes:    ta,
		width:    defaultColumns,
		confetti: celebrate.NewConfetti(defaultColumns*cellW, confettiRows*cellH, opts.Seed),
	}
}

// Attach binds the instance after it has been initialised with this App as
// its effect.
func (a *App) Attach(inst *controller.Instance) {
	a.inst = inst
	if d := inst.Lesson(); d != nil {
		a.notes.Placeholder = render.NotesPlaceholder(d.ReflectionPrompts)
	}
}

// Fire queues the confetti. It runs from inside Update, so the burst starts
// with the next returned command.
func (a *App) Fire() {
	a.fireQueued = true
	a.setStatus("Every step tried. Nice work!", false)
}

func (a *App) Init() tea.Cmd {
	return a.flushFire()
}

func (a *App) Celebrating() bool { return a.celebrating }

func (a *App) flushFire() tea.Cmd {
	if !a.fireQueued {
		return nil
	}
	a.fireQueued = false
	if a.opts.ReducedMotion {
		return nil
	}
	wasRunning := a.celebrating
	a.confetti.Width = float64(a.width) * cellW
	a.confetti.Start(time.Now())
	a.celebrating = true
	if wasRunning {
		// a tick is already scheduled
		return nil
	}
	return confettiTick()
}

func confettiTick() tea.Cmd {
	return tea.Tick(celebrate.FrameInterval, func(t time.Time) tea.Msg {
		return confettiFrameMsg(t)
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.notes.SetWidth(max(20, m.Width-4))
		return a, nil
	case confettiFrameMsg:
		if a.confetti.Step(time.Time(m)) {
			return a, confettiTick()
		}
		a.celebrating = false
		return a, nil
	case tea.KeyMsg:
		if a.inst == nil || a.inst.Lesson() == nil {
			if m.String() == "q" || m.String() == "ctrl+c" {
				return a, tea.Quit
			}
			return a, nil
		}
		cmd := a.handleKey(m)
		return a, tea.Batch(cmd, a.flushFire())
	}
	return a, nil
}

func (a *App) scope() string {
	switch a.mode {
	case modeNotes:
		return scopeNotes
	case modeChecklist:
		return scopeChecklist
	}
	if a.focus == focusReactions {
		return scopeReactions
	}
	return scopeSteps
}

func (a *App) handleKey(m tea.KeyMsg) tea.Cmd {
	switch a.mode {
	case modeNotes:
		return a.handleNotesKey(m)
	case modeChecklist:
		a.handleChecklistKey(m)
		return nil
	}

	d := a.inst.Lesson()
	switch a.keys.Action(m, a.scope()) {
	case actionQuit:
		return tea.Quit
	case actionUp:
		if a.cursor > 0 {
			a.cursor--
		}
	case actionDown:
		if a.cursor < len(d.Steps)-1 {
			a.cursor++
		}
	case actionLeft:
		if a.reactCursor > 0 {
			a.reactCursor--
		}
	case actionRight:
		if a.reactCursor < len(d.Reactions)-1 {
			a.reactCursor++
		}
	case actionToggle:
		if a.focus == focusReactions {
			if len(d.Reactions) > 0 {
				a.click(render.ReactionID(d.Reactions[a.reactCursor].ID))
			}
		} else if len(d.Steps) > 0 {
			a.click(render.MarkID(a.cursor + 1))
		}
	case actionNext:
		if pos, _ := a.inst.JumpToNext(); pos > 0 {
			a.focus = focusSteps
			a.cursor = pos - 1
		}
	case actionTips:
		a.tipsOpen[a.cursor] = !a.tipsOpen[a.cursor]
	case actionFocus:
		if a.focus == focusSteps && len(d.Reactions) > 0 {
			a.focus = focusReactions
		} else {
			a.focus = focusSteps
		}
	case actionNotes:
		a.inst.FocusNotes()
		a.mode = modeNotes
		a.notes.SetValue(a.inst.Notes())
		return a.notes.Focus()
	case actionChecklist:
		if a.click(controller.SlotOpenChecklist) {
			a.mode = modeChecklist
			a.prepCursor = 0
		}
	}
	return nil
}

func (a *App) handleNotesKey(m tea.KeyMsg) tea.Cmd {
	if a.keys.Action(m, scopeNotes) == actionClose {
		a.notes.Blur()
		a.mode = modeBrowse
		return nil
	}
	before := a.notes.Value()
	var cmd tea.Cmd
	a.notes, cmd = a.notes.Update(m)
	if after := a.notes.Value(); after != before {
		if err := a.inst.Input(controller.SlotNotes, after); err != nil {
			a.inst.EditNotes(after)
		}
	}
	return cmd
}

func (a *App) handleChecklistKey(m tea.KeyMsg) {
	n := len(a.inst.Lesson().PreChecklist)
	switch a.keys.Action(m, scopeChecklist) {
	case actionClose:
		a.click(controller.SlotCloseChecklist)
		a.mode = modeBrowse
	case actionUp:
		if a.prepCursor > 0 {
			a.prepCursor--
		}
	case actionDown:
		if a.prepCursor < n-1 {
			a.prepCursor++
		}
	case actionToggle:
		if n > 0 {
			a.click(render.PrepID(a.prepCursor))
		}
	}
}

// click routes through the instance handler table, the same path a page
// click takes.
func (a *App) click(target string) bool {
	err := a.inst.Click(target)
	switch {
	case err == nil:
		return true
	case errors.Is(err, controller.ErrNoHandler):
		a.setStatus("not available on this page", true)
	default:
		a.setStatus(err.Error(), true)
	}
	return false
}

func (a *App) setStatus(s string, isErr bool) {
	a.status, a.statusErr = s, isErr
}
