package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/skillbuilder/internal/lesson"
)

func testSteps(n int) []lesson.Step {
	steps := make([]lesson.Step, n)
	for i := range steps {
		steps[i] = lesson.Step{Title: "Step " + string(rune('A'+i)), Duration: "1 min", Description: "do it"}
	}
	return steps
}

func TestHeroBadge(t *testing.T) {
	d := &lesson.Descriptor{Title: "T", Intro: "I", Tagline: "G", MemberOnly: true}
	require.Equal(t, HeroView{Title: "T", Intro: "I", Tagline: "G", BadgeDisplay: "inline-flex"}, Hero(d))
	d.MemberOnly = false
	require.Equal(t, "none", Hero(d).BadgeDisplay)
}

func TestStepsRendersOneCardPerStepInOrder(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7} {
		out := Steps(testSteps(n), nil, Options{})
		require.Equal(t, n, strings.Count(out, `<article class="step"`), "n=%d", n)
		last := -1
		for pos := 1; pos <= n; pos++ {
			idx := strings.Index(out, `id="`+StepID(pos)+`"`)
			require.Greater(t, idx, last, "step %d out of order", pos)
			last = idx
		}
	}
}

func TestStepTriedState(t *testing.T) {
	tried := map[int]bool{2: true}
	out := Steps(testSteps(2), func(p int) bool { return tried[p] }, Options{})
	cards := strings.Split(out, "</article>")
	require.Contains(t, cards[0], `aria-pressed="false">Mark tried</button>`)
	require.Contains(t, cards[1], `aria-pressed="true">Tried</button>`)
	require.Contains(t, cards[1], `id="step-2-mark"`)
	require.Contains(t, cards[1], `id="step-2-note"`)
}

func TestStepEscapesMarkup(t *testing.T) {
	s := lesson.Step{
		Title:       `<img src=x onerror=alert(1)>`,
		Description: `<script>alert("x")</script> & more`,
		Tips:        []string{"<b>bold</b>"},
	}
	out := Step(s, 1, false, Options{})
	require.NotContains(t, out, "<script>")
	require.NotContains(t, out, "<b>bold</b>")
	require.NotContains(t, out, "<img src=x")
	require.Contains(t, out, "&lt;script&gt;")
	require.Contains(t, out, "&amp; more")
	require.Contains(t, out, "&lt;b&gt;bold&lt;/b&gt;")
}

func TestStepMedia(t *testing.T) {
	video := lesson.Step{Title: "v", Media: lesson.Media{Kind: lesson.MediaVideo, File: "clip.mp4"}}
	require.Contains(t, Step(video, 1, false, Options{}), `<video src="media/clip.mp4" loop autoplay muted></video>`)

	image := lesson.Step{Title: "pic", Media: lesson.Media{Kind: lesson.MediaImage, File: "a.gif"}}
	out := Step(image, 1, false, Options{MediaBase: "/cdn/"})
	require.Contains(t, out, `<img src="/cdn/a.gif" alt="pic">`)

	none := lesson.Step{Title: "n"}
	out = Step(none, 1, false, Options{})
	require.Contains(t, out, MediaPlaceholder)
	require.NotContains(t, out, "<img")
	require.NotContains(t, out, "<video")
}

func TestStepTipsCollapsed(t *testing.T) {
	with := Step(lesson.Step{Tips: []string{"one", "two"}}, 1, false, Options{})
	require.Contains(t, with, `<details class="tip">`)
	require.NotContains(t, with, "<details class=\"tip\" open")
	require.Equal(t, 2, strings.Count(with, "<li>"))

	without := Step(lesson.Step{}, 1, false, Options{})
	require.NotContains(t, without, "<details")
}

func TestChecklist(t *testing.T) {
	out := ChecklistItems([]string{"Paper", "Brush & <water>"})
	require.Equal(t, 2, strings.Count(out, `type="checkbox"`))
	require.Contains(t, out, `id="prep-1"`)
	require.Contains(t, out, "Brush &amp; &lt;water&gt;")
	require.Equal(t, "", ChecklistItems(nil))

	require.Equal(t, "", ChecklistInstructions(nil))
	ins := ChecklistInstructions([]string{"first", "second"})
	require.True(t, strings.HasPrefix(ins, "<ol"))
	require.Less(t, strings.Index(ins, "first"), strings.Index(ins, "second"))
}

func TestReactions(t *testing.T) {
	rs := []lesson.Reaction{{ID: "love", Emoji: "❤", Label: "Love <it>"}, {ID: "meh", Emoji: "😐", Label: "Meh"}}
	out := Reactions(rs, func(id string) bool { return id == "meh" })
	require.Contains(t, out, `id="react-love" data-react="love" aria-pressed="false">❤ Love &lt;it&gt;</button>`)
	require.Contains(t, out, `id="react-meh" data-react="meh" aria-pressed="true">`)
	require.Equal(t, "", Reactions(nil, nil))
}

func TestNextStepsNeutralizesScriptLinks(t *testing.T) {
	out := NextSteps([]lesson.NextStep{
		{Title: "Glazing", Description: "d", Link: "/glazing", ButtonText: "Start"},
		{Title: "Evil", Link: "javascript:alert(1)", ButtonText: "Go"},
	})
	require.Equal(t, 2, strings.Count(out, `<article class="card">`))
	require.Contains(t, out, `href="/glazing"`)
	require.NotContains(t, out, "javascript:")
}

func TestProgressStatAndPlaceholder(t *testing.T) {
	require.Equal(t, `<strong id="doneCount">1</strong>/3 tried · Keep going`, ProgressStat(1, 3))
	require.Equal(t, "Why? How?", NotesPlaceholder([]string{"Why?", "How?"}))
	require.Equal(t, "", NotesPlaceholder(nil))
}

func TestErrorPage(t *testing.T) {
	out := ErrorPage(errors.New(`bad <json>`))
	require.Contains(t, out, "Failed to load skill builder")
	require.Contains(t, out, "bad &lt;json&gt;")
	require.Contains(t, ErrorPage(nil), "unknown error")
}

func TestMarkLabel(t *testing.T) {
	require.Equal(t, "Mark tried", MarkLabel(false))
	require.Equal(t, "Tried", MarkLabel(true))
}
