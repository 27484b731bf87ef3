package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/skillbuilder/internal/controller"
	"github.com/jask/skillbuilder/internal/dom"
	"github.com/jask/skillbuilder/internal/progress"
)

const lessonJSON = `{
  "id": "swatch",
  "title": "Colour Swatches",
  "tagline": "Ten minutes",
  "memberOnly": true,
  "preChecklist": ["Paper", "Brush"],
  "checklistInstructions": ["Lay out paper"],
  "steps": [
    {"title": "Wet", "duration": "2 min", "description": "Wet the paper", "tips": ["Flat brush"]},
    {"title": "Paint", "duration": "5 min", "description": "Paint stripes", "mediaFile": "paint.gif"}
  ],
  "reflectionPrompts": ["What surprised you?"],
  "reactions": [{"id": "love", "emoji": "❤", "label": "Love it"}, {"id": "meh", "emoji": "😐", "label": "Meh"}],
  "nextSteps": [{"title": "Glazing", "link": "/glazing", "buttonText": "Start"}]
}`

func key(k string) tea.KeyMsg {
	switch k {
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func newTestApp(t *testing.T, store progress.Store, opts Options) (*App, *controller.Instance) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "swatch.json")
	require.NoError(t, os.WriteFile(path, []byte(lessonJSON), 0o600))

	app := New(opts)
	inst := controller.New(dom.Default(), store, controller.WithEffect(app))
	require.NoError(t, inst.Init(context.Background(), path))
	app.Attach(inst)
	return app, inst
}

func press(t *testing.T, a *App, keys ...string) tea.Cmd {
	t.Helper()
	var last tea.Cmd
	for _, k := range keys {
		next, cmd := a.Update(key(k))
		require.Same(t, a, next)
		last = cmd
	}
	return last
}

func plainView(a *App) string {
	return ansi.Strip(a.View())
}

func TestViewShowsLesson(t *testing.T) {
	a, _ := newTestApp(t, progress.NewMemoryStore(), Options{})
	out := plainView(a)
	require.Contains(t, out, "Colour Swatches")
	require.Contains(t, out, "MEMBERS")
	require.Contains(t, out, "0/2 tried · Keep going")
	require.Contains(t, out, "▶ [ ] 1. Wet")
	require.Contains(t, out, "Wet the paper")
	require.Contains(t, out, "Show tips (t)")
	require.Contains(t, out, "[ ] 2. Paint")
	require.NotContains(t, out, "Paint stripes")
	require.Contains(t, out, "What surprised you?")
	require.Contains(t, out, "→ Glazing")
}

func TestToggleAndCelebrate(t *testing.T) {
	store := progress.NewMemoryStore()
	a, inst := newTestApp(t, store, Options{})

	press(t, a, "space")
	require.True(t, inst.Tried(1))
	require.Contains(t, plainView(a), "[x] 1. Wet")
	require.Contains(t, plainView(a), " 50%  1/2 tried")
	require.False(t, a.Celebrating())

	cmd := press(t, a, "j", "enter")
	require.True(t, inst.Tried(2))
	require.NotNil(t, cmd)
	require.True(t, a.Celebrating())
	require.Contains(t, plainView(a), "Every step tried")

	v, ok, err := store.Get(context.Background(), "kbm_sb_swatch_step_2")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "true", v)
}

func TestConfettiFramesEnd(t *testing.T) {
	a, _ := newTestApp(t, progress.NewMemoryStore(), Options{})
	a.Fire()
	require.NotNil(t, a.Init())
	require.True(t, a.Celebrating())

	_, cmd := a.Update(confettiFrameMsg(time.Now()))
	require.NotNil(t, cmd)
	_, cmd = a.Update(confettiFrameMsg(time.Now().Add(2 * time.Second)))
	require.Nil(t, cmd)
	require.False(t, a.Celebrating())
}

func TestReducedMotionSkipsConfetti(t *testing.T) {
	a, _ := newTestApp(t, progress.NewMemoryStore(), Options{ReducedMotion: true})
	press(t, a, "space", "j", "space")
	require.False(t, a.Celebrating())
	require.Contains(t, plainView(a), "Every step tried")
}

func TestJumpToNextMovesCursor(t *testing.T) {
	a, _ := newTestApp(t, progress.NewMemoryStore(), Options{})
	press(t, a, "space", "n")
	require.Equal(t, 1, a.cursor)
	require.Contains(t, plainView(a), "▶ [ ] 2. Paint")
}

func TestTipsToggle(t *testing.T) {
	a, _ := newTestApp(t, progress.NewMemoryStore(), Options{})
	press(t, a, "t")
	out := plainView(a)
	require.Contains(t, out, "- Flat brush")
	require.NotContains(t, out, "Show tips (t)")
	press(t, a, "t")
	require.Contains(t, plainView(a), "Show tips (t)")
}

func TestReactions(t *testing.T) {
	a, inst := newTestApp(t, progress.NewMemoryStore(), Options{})
	press(t, a, "tab", "right", "space")
	require.True(t, inst.Reacted("meh"))
	require.False(t, inst.Reacted("love"))
	require.Zero(t, inst.Summary().Done)

	press(t, a, "tab")
	require.Equal(t, focusSteps, a.focus)
}

func TestNotesPersistEveryChange(t *testing.T) {
	store := progress.NewMemoryStore()
	a, inst := newTestApp(t, store, Options{})
	press(t, a, "e")
	require.Equal(t, modeNotes, a.mode)

	press(t, a, "h", "i")
	v, _, _ := store.Get(context.Background(), "kbm_sb_swatch_notes")
	require.Equal(t, "hi", v)

	press(t, a, "q")
	require.Equal(t, modeNotes, a.mode, "q is text while editing")
	press(t, a, "esc")
	require.Equal(t, modeBrowse, a.mode)
	require.Equal(t, "hiq", inst.Notes())
	require.Contains(t, plainView(a), "hiq")
}

func TestChecklistModal(t *testing.T) {
	a, inst := newTestApp(t, progress.NewMemoryStore(), Options{})
	press(t, a, "c")
	require.True(t, inst.ChecklistOpen())
	out := plainView(a)
	require.Contains(t, out, "Before you start")
	require.Contains(t, out, "1. Lay out paper")
	require.Contains(t, out, "▶ [ ] Paper")

	press(t, a, "down", "space")
	require.True(t, inst.Prep(1))
	require.Contains(t, plainView(a), "[x] Brush")

	press(t, a, "esc")
	require.False(t, inst.ChecklistOpen())
	require.Equal(t, modeBrowse, a.mode)
}

func TestQuit(t *testing.T) {
	a, _ := newTestApp(t, progress.NewMemoryStore(), Options{})
	cmd := press(t, a, "q")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
}

func TestDegradedBanner(t *testing.T) {
	a, inst := newTestApp(t, progress.UnavailableStore{}, Options{})
	press(t, a, "space")
	require.True(t, inst.Tried(1))
	require.Contains(t, plainView(a), "progress is not being saved")
}

func TestHelpFollowsScope(t *testing.T) {
	a, _ := newTestApp(t, progress.NewMemoryStore(), Options{})
	require.Contains(t, plainView(a), "space toggle")
	press(t, a, "e")
	help := ansi.Strip(a.keys.Help(a.scope()))
	require.True(t, strings.HasPrefix(help, "esc close"), help)
}

func TestChecklistOverlaysWhenSized(t *testing.T) {
	a, _ := newTestApp(t, progress.NewMemoryStore(), Options{})
	a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	press(t, a, "c")

	lines := strings.Split(plainView(a), "\n")
	require.Len(t, lines, 20)
	joined := strings.Join(lines, "\n")
	require.Contains(t, joined, "Before you start")
	require.Contains(t, joined, "[ ] Paper")
	require.Contains(t, lines[0], "Colour Swatches")
}

func TestOverlayCenter(t *testing.T) {
	page := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"
	out := overlayCenter(page, "XX\nY", 10, 4)
	require.Equal(t, []string{
		"aaaaaaaaaa",
		"bbbbXXbbbb",
		"ccccY cccc",
		"",
	}, strings.Split(out, "\n"))

	styled := overlayCenter(page, lipgloss.NewStyle().Bold(true).Render("XX"), 10, 2)
	require.Equal(t, "aaaaXXaaaa", ansi.Strip(strings.Split(styled, "\n")[0]))
}
