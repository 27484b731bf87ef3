// Package render maps a lesson descriptor and partial progress to markup
// fragments, one function per page slot. Every function is pure: it only
// reads its arguments, so each can be tested without a document.
//
// All descriptor text is untrusted and goes through html/template's
// contextual escaping; links that are not http(s), relative or mailto are
// neutralized by the template engine.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/jask/skillbuilder/internal/lesson"
)

const (
	LabelMark        = "Mark tried"
	LabelTried       = "Tried"
	MediaPlaceholder = "GIF / Short clip"
	DefaultMediaBase = "media/"
)

// Options tune rendering without touching the descriptor.
type Options struct {
	MediaBase string
}

func (o Options) mediaBase() string {
	if o.MediaBase == "" {
		return DefaultMediaBase
	}
	return o.MediaBase
}

// HeroView holds the plain-text hero slots.
type HeroView struct {
	Title        string
	Intro        string
	Tagline      string
	BadgeDisplay string
}

func Hero(d *lesson.Descriptor) HeroView {
	badge := "none"
	if d.MemberOnly {
		badge = "inline-flex"
	}
	return HeroView{Title: d.Title, Intro: d.Intro, Tagline: d.Tagline, BadgeDisplay: badge}
}

// MarkLabel is the tried-toggle label for a state.
func MarkLabel(tried bool) string {
	if tried {
		return LabelTried
	}
	return LabelMark
}

// IDs of generated elements. The controller binds handlers to these.
func StepID(pos int) string       { return fmt.Sprintf("step-%d", pos) }
func MarkID(pos int) string       { return fmt.Sprintf("step-%d-mark", pos) }
func NoteID(pos int) string       { return fmt.Sprintf("step-%d-note", pos) }
func PrepID(i int) string         { return fmt.Sprintf("prep-%d", i) }
func ReactionID(id string) string { return "react-" + id }

var tmpl = template.Must(template.New("render").Funcs(template.FuncMap{
	"stepID":     StepID,
	"markID":     MarkID,
	"noteID":     NoteID,
	"prepID":     PrepID,
	"reactionID": ReactionID,
	"markLabel":  MarkLabel,
}).Parse(templates))

const templates = `
{{define "checklist"}}{{range $i, $item := .}}<label class="check-pill"><input type="checkbox" id="{{prepID $i}}" data-prep="{{$i}}"> {{$item}}</label>{{end}}{{end}}

{{define "instructions"}}{{if .}}<ol style="margin:0 0 10px 18px">{{range .}}<li>{{.}}</li>{{end}}</ol>{{end}}{{end}}

{{define "step"}}<article class="step" id="{{stepID .Pos}}" data-step="{{.Pos}}">
<header><h3>{{.Step.Title}}</h3><span class="badge">{{.Step.Duration}}</span></header>
<div class="media" aria-label="Short demo">{{if .Video}}<video src="{{.Src}}" loop autoplay muted></video>{{else if .Image}}<img src="{{.Src}}" alt="{{.Step.Title}}">{{else}}` + MediaPlaceholder + `{{end}}</div>
<div class="body"><p>{{.Step.Description}}</p></div>
{{if .Step.Tips}}<details class="tip"><summary>Show tips</summary><div class="tip-body"><ul>{{range .Step.Tips}}<li>{{.}}</li>{{end}}</ul></div></details>
{{end}}<div class="actions"><button class="btn ghost" id="{{noteID .Pos}}" data-action="notes">Add note</button><button class="btn primary" id="{{markID .Pos}}" data-action="mark" aria-pressed="{{.Tried}}">{{markLabel .Tried}}</button></div>
</article>
{{end}}

{{define "reactions"}}{{range .}}<button class="react" id="{{reactionID .Reaction.ID}}" data-react="{{.Reaction.ID}}" aria-pressed="{{.Pressed}}">{{.Reaction.Emoji}} {{.Reaction.Label}}</button>{{end}}{{end}}

{{define "next"}}{{range .}}<article class="card"><div class="thumb" aria-hidden="true"></div><div class="pad"><h4>{{.Title}}</h4><p>{{.Description}}</p><p><a class="btn" href="{{.Link}}">{{.ButtonText}}</a></p></div></article>
{{end}}{{end}}

{{define "stat"}}<strong id="doneCount">{{.Done}}</strong>/{{.Total}} tried · Keep going{{end}}

{{define "error"}}<div style="padding:40px;text-align:center"><h2>Failed to load skill builder</h2><p>{{.}}</p></div>{{end}}
`

func execute(name string, data any) string {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		// templates are static, so this is a bug
		panic(fmt.Sprintf("render %s: %v", name, err))
	}
	return buf.String()
}

// ChecklistItems renders one non-persisted checkbox per item.
func ChecklistItems(items []string) string {
	return execute("checklist", items)
}

// ChecklistInstructions renders the ordered instruction list, or nothing.
func ChecklistInstructions(items []string) string {
	return execute("instructions", items)
}

type stepData struct {
	Pos   int
	Step  lesson.Step
	Tried bool
	Video bool
	Image bool
	Src   string
}

// Step renders the card for the step at 1-based position pos.
func Step(step lesson.Step, pos int, tried bool, opts Options) string {
	data := stepData{Pos: pos, Step: step, Tried: tried}
	switch step.Media.Kind {
	case lesson.MediaVideo:
		data.Video, data.Src = true, opts.mediaBase()+step.Media.File
	case lesson.MediaImage:
		data.Image, data.Src = true, opts.mediaBase()+step.Media.File
	}
	return execute("step", data)
}

// Steps renders every card in descriptor order. tried may be nil.
func Steps(steps []lesson.Step, tried func(pos int) bool, opts Options) string {
	var b strings.Builder
	for i, s := range steps {
		pos := i + 1
		b.WriteString(Step(s, pos, tried != nil && tried(pos), opts))
	}
	return b.String()
}

type reactionData struct {
	Reaction lesson.Reaction
	Pressed  bool
}

// Reactions renders one toggle per reaction. reacted may be nil.
func Reactions(reactions []lesson.Reaction, reacted func(id string) bool) string {
	data := make([]reactionData, 0, len(reactions))
	for _, r := range reactions {
		data = append(data, reactionData{Reaction: r, Pressed: reacted != nil && reacted(r.ID)})
	}
	return execute("reactions", data)
}

// NextSteps renders one card per follow-up link.
func NextSteps(items []lesson.NextStep) string {
	return execute("next", items)
}

// ProgressStat renders the done/total label; doneCount is updated in place later.
func ProgressStat(done, total int) string {
	return execute("stat", struct{ Done, Total int }{done, total})
}

// NotesPlaceholder joins the reflection prompts.
func NotesPlaceholder(prompts []string) string {
	return strings.Join(prompts, " ")
}

// ErrorPage replaces the whole page when a lesson cannot load.
func ErrorPage(err error) string {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return execute("error", msg)
}
