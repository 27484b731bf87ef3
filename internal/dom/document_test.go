package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var slots = []string{
	"sb-title", "sb-intro", "sb-tagline", "member-badge",
	"checklist-items", "checklist-instructions", "steps-container",
	"progress-stat", "bar", "notes", "reactions-container",
	"next-steps-container", "nextAction", "openChecklist",
	"closeChecklist", "checkModal", "confetti",
}

func TestDefaultPageHasEverySlot(t *testing.T) {
	d := Default()
	for _, id := range slots {
		el, ok := d.ElementByID(id)
		require.True(t, ok, "missing slot %s", id)
		require.Equal(t, id, el.ID())
	}
	_, ok := d.ElementByID("nope")
	require.False(t, ok)
}

func TestSetTextIsLiteral(t *testing.T) {
	d := Default()
	el, _ := d.ElementByID("sb-title")
	el.SetText(`<script>alert(1)</script>`)
	require.Equal(t, `<script>alert(1)</script>`, el.Text())

	out := d.String()
	require.Contains(t, out, `<h1 id="sb-title">&lt;script&gt;alert(1)&lt;/script&gt;</h1>`)
	require.NotContains(t, out, "<script>")
}

func TestSetInnerHTMLParsesFragment(t *testing.T) {
	d := Default()
	el, _ := d.ElementByID("steps-container")
	require.NoError(t, el.SetInnerHTML(`<article class="step" id="step-1"><p>&lt;b&gt;x&lt;/b&gt;</p></article><article class="step" id="step-2"></article>`))

	require.Equal(t, 2, d.Count("step"))
	step, ok := d.ElementByID("step-1")
	require.True(t, ok)
	require.Equal(t, "<b>x</b>", step.Text())
	require.NotContains(t, d.String(), "<b>")

	require.NoError(t, el.SetInnerHTML(""))
	require.Equal(t, 0, d.Count("step"))
	_, ok = d.ElementByID("step-1")
	require.False(t, ok)
}

func TestAttrAndStyle(t *testing.T) {
	d := Default()
	bar, _ := d.ElementByID("bar")
	require.Equal(t, "0%", bar.Style("width"))

	bar.SetStyle("width", "50%")
	bar.SetAttr("aria-valuenow", "50")
	require.Equal(t, "50%", bar.Style("width"))
	require.Equal(t, "50", bar.Attr("aria-valuenow"))
	require.Equal(t, "width:50%", bar.Attr("style"))

	bar.SetStyle("opacity", "1")
	require.Equal(t, "width:50%;opacity:1", bar.Attr("style"))
	require.Equal(t, "", bar.Style("height"))

	notes, _ := d.ElementByID("notes")
	notes.SetAttr("placeholder", "Why?")
	require.Equal(t, "Why?", notes.Attr("placeholder"))
}

func TestFocusAndScroll(t *testing.T) {
	d := Default()
	el, _ := d.ElementByID("notes")
	el.Focus()
	el.ScrollIntoView()
	require.Equal(t, "notes", d.Focused())
	require.Equal(t, "notes", d.ScrolledTo())
}

func TestReplaceBody(t *testing.T) {
	d := Default()
	require.NoError(t, d.ReplaceBody(`<div><h2>Failed</h2></div>`))
	_, ok := d.ElementByID("sb-title")
	require.False(t, ok)
	require.Contains(t, d.String(), "<h2>Failed</h2>")
}

func TestParseWithoutBody(t *testing.T) {
	d, err := Parse(strings.NewReader(`<p id="x">hi</p>`))
	require.NoError(t, err)
	el, ok := d.ElementByID("x")
	require.True(t, ok)
	require.Equal(t, "hi", el.Text())
}
