// Package controller binds one lesson to one document: it paints the slots,
// restores persisted progress and reacts to learner input.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/jask/skillbuilder/internal/celebrate"
	"github.com/jask/skillbuilder/internal/dom"
	"github.com/jask/skillbuilder/internal/lesson"
	"github.com/jask/skillbuilder/internal/logger"
	"github.com/jask/skillbuilder/internal/progress"
	"github.com/jask/skillbuilder/internal/render"
)

const DefaultAppID = "kbm_sb"

// Slot ids of the host page.
const (
	SlotTitle           = "sb-title"
	SlotIntro           = "sb-intro"
	SlotTagline         = "sb-tagline"
	SlotMemberBadge     = "member-badge"
	SlotChecklistItems  = "checklist-items"
	SlotChecklistSteps  = "checklist-instructions"
	SlotSteps           = "steps-container"
	SlotProgressStat    = "progress-stat"
	SlotBar             = "bar"
	SlotDoneCount       = "doneCount"
	SlotNotes           = "notes"
	SlotReactions       = "reactions-container"
	SlotNextSteps       = "next-steps-container"
	SlotNextAction      = "nextAction"
	SlotOpenChecklist   = "openChecklist"
	SlotCloseChecklist  = "closeChecklist"
	SlotChecklistModal  = "checkModal"
	SlotConfettiSurface = "confetti"
)

var (
	ErrNotLoaded       = errors.New("controller: lesson not loaded")
	ErrUnknownStep     = errors.New("controller: unknown step")
	ErrUnknownReaction = errors.New("controller: unknown reaction")
	ErrUnknownPrep     = errors.New("controller: unknown checklist item")
	ErrNoHandler       = errors.New("controller: no handler bound")
)

// Instance is one lesson on one page. Instances share nothing but the
// store, and their keys never overlap. Methods are not safe for concurrent
// use; callers deliver events one at a time.
type Instance struct {
	id     string
	doc    dom.Document
	store  progress.Store
	appID  string
	loader *lesson.Loader
	effect celebrate.Effect
	log    *logger.Logger
	opts   render.Options

	// ctx is the session context from Init, used for store calls made by
	// event handlers.
	ctx           context.Context
	lesson        *lesson.Descriptor
	state         *progress.State
	prep          []bool
	checklistOpen bool
	clicks        map[string]func() error
	inputs        map[string]func(string) error
}

type Option func(*Instance)

func WithAppID(appID string) Option {
	return func(in *Instance) {
		if appID != "" {
			in.appID = appID
		}
	}
}

func WithLoader(l *lesson.Loader) Option {
	return func(in *Instance) { in.loader = l }
}

func WithEffect(e celebrate.Effect) Option {
	return func(in *Instance) { in.effect = e }
}

func WithLogger(log *logger.Logger) Option {
	return func(in *Instance) { in.log = log }
}

func WithRenderOptions(opts render.Options) Option {
	return func(in *Instance) { in.opts = opts }
}

func New(doc dom.Document, store progress.Store, opts ...Option) *Instance {
	in := &Instance{
		id:    uuid.NewString(),
		doc:   doc,
		store: store,
		appID: DefaultAppID,
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.effect == nil {
		in.effect = celebrate.Noop{}
	}
	in.log = logger.OrNop(in.log).With("instance", in.id)
	if in.loader == nil {
		in.loader = lesson.NewLoader(0, in.log)
	}
	return in
}

// Init loads the lesson at locator and paints it. A load failure replaces
// the page body with an error message and is returned as *lesson.LoadError.
func (in *Instance) Init(ctx context.Context, locator string) error {
	in.ctx = ctx
	d, err := in.loader.Load(ctx, locator)
	if err != nil {
		in.log.Error("lesson failed to load", "locator", locator, "error", err)
		if rerr := in.doc.ReplaceBody(render.ErrorPage(err)); rerr != nil {
			in.log.Warn("could not show load error", "error", rerr)
		}
		return err
	}
	in.lesson = d
	in.log = in.log.With("lesson", d.ID)
	in.state = progress.NewState(in.store, d.Namespace(in.appID), in.log)
	in.prep = make([]bool, len(d.PreChecklist))
	in.checklistOpen = false

	in.paint()
	in.bind()
	in.recompute()
	in.log.Info("lesson ready", "steps", len(d.Steps), "prefix", in.state.Namespace().Prefix)
	return nil
}

func (in *Instance) slot(id string) (dom.Element, bool) {
	el, ok := in.doc.ElementByID(id)
	if !ok {
		in.log.Debug("slot missing, skipped", "slot", id)
	}
	return el, ok
}

func (in *Instance) setText(id, text string) {
	if el, ok := in.slot(id); ok {
		el.SetText(text)
	}
}

func (in *Instance) setHTML(id, markup string) {
	el, ok := in.slot(id)
	if !ok {
		return
	}
	if err := el.SetInnerHTML(markup); err != nil {
		in.log.Warn("slot render failed", "slot", id, "error", err)
	}
}

func (in *Instance) paint() {
	d := in.lesson
	hero := render.Hero(d)
	in.setText(SlotTitle, hero.Title)
	in.setText(SlotIntro, hero.Intro)
	in.setText(SlotTagline, hero.Tagline)
	if el, ok := in.slot(SlotMemberBadge); ok {
		el.SetStyle("display", hero.BadgeDisplay)
	}

	in.setHTML(SlotChecklistItems, render.ChecklistItems(d.PreChecklist))
	in.setHTML(SlotChecklistSteps, render.ChecklistInstructions(d.ChecklistInstructions))
	in.setHTML(SlotSteps, render.Steps(d.Steps, in.Tried, in.opts))
	in.setHTML(SlotProgressStat, render.ProgressStat(0, len(d.Steps)))

	if el, ok := in.slot(SlotNotes); ok {
		el.SetAttr("placeholder", render.NotesPlaceholder(d.ReflectionPrompts))
		el.SetText(in.state.Notes(in.ctx))
	}
	in.setHTML(SlotReactions, render.Reactions(d.Reactions, in.Reacted))
	in.setHTML(SlotNextSteps, render.NextSteps(d.NextSteps))
}

// bind builds the handler table for every interactive element present on
// the page.
func (in *Instance) bind() {
	in.clicks = map[string]func() error{}
	in.inputs = map[string]func(string) error{}
	click := func(id string, fn func() error) {
		if _, ok := in.doc.ElementByID(id); ok {
			in.clicks[id] = fn
		}
	}

	for i := range in.lesson.Steps {
		pos := i + 1
		click(render.MarkID(pos), func() error {
			_, err := in.ToggleTried(pos)
			return err
		})
		click(render.NoteID(pos), func() error {
			in.FocusNotes()
			return nil
		})
	}
	for _, r := range in.lesson.Reactions {
		id := r.ID
		click(render.ReactionID(id), func() error {
			_, err := in.ToggleReaction(id)
			return err
		})
	}
	for i := range in.prep {
		idx := i
		click(render.PrepID(idx), func() error {
			_, err := in.TogglePrep(idx)
			return err
		})
	}
	click(SlotNextAction, func() error {
		in.JumpToNext()
		return nil
	})

	_, hasOpen := in.doc.ElementByID(SlotOpenChecklist)
	_, hasClose := in.doc.ElementByID(SlotCloseChecklist)
	_, hasModal := in.doc.ElementByID(SlotChecklistModal)
	if hasOpen && hasClose && hasModal {
		in.clicks[SlotOpenChecklist] = func() error { in.OpenChecklist(); return nil }
		in.clicks[SlotCloseChecklist] = func() error { in.CloseChecklist(); return nil }
		in.clicks[SlotChecklistModal] = func() error { in.ClickChecklist(SlotChecklistModal); return nil }
	}

	if _, ok := in.doc.ElementByID(SlotNotes); ok {
		in.inputs[SlotNotes] = func(text string) error {
			in.EditNotes(text)
			return nil
		}
	}
}

// Click dispatches a click on the element with targetID.
func (in *Instance) Click(targetID string) error {
	if in.lesson == nil {
		return ErrNotLoaded
	}
	fn, ok := in.clicks[targetID]
	if !ok {
		return fmt.Errorf("%w: click %q", ErrNoHandler, targetID)
	}
	return fn()
}

// Input dispatches a value change on the element with targetID.
func (in *Instance) Input(targetID, value string) error {
	if in.lesson == nil {
		return ErrNotLoaded
	}
	fn, ok := in.inputs[targetID]
	if !ok {
		return fmt.Errorf("%w: input %q", ErrNoHandler, targetID)
	}
	return fn(value)
}

func (in *Instance) recompute() progress.Summary {
	sum := in.Summary()
	if el, ok := in.slot(SlotBar); ok {
		el.SetStyle("width", strconv.Itoa(sum.Percent)+"%")
		el.SetAttr("aria-valuenow", strconv.Itoa(sum.Percent))
	}
	in.setText(SlotDoneCount, strconv.Itoa(sum.Done))
	if sum.Complete() {
		in.celebrate()
	}
	return sum
}

func (in *Instance) celebrate() {
	in.log.Info("celebrating", "steps", len(in.lesson.Steps))
	in.effect.Fire()
}

func (in *Instance) ID() string { return in.id }

// Lesson is nil until Init succeeds.
func (in *Instance) Lesson() *lesson.Descriptor { return in.lesson }

// Degraded reports whether progress is only being kept in memory.
func (in *Instance) Degraded() bool {
	return in.state != nil && in.state.Degraded()
}

func (in *Instance) Summary() progress.Summary {
	if in.lesson == nil {
		return progress.Summary{}
	}
	return progress.Summarize(len(in.lesson.Steps), in.Tried)
}

func (in *Instance) Tried(pos int) bool {
	if in.state == nil {
		return false
	}
	return in.state.Tried(in.ctx, pos)
}

func (in *Instance) Reacted(id string) bool {
	if in.state == nil {
		return false
	}
	return in.state.Reacted(in.ctx, id)
}

func (in *Instance) Notes() string {
	if in.state == nil {
		return ""
	}
	return in.state.Notes(in.ctx)
}

func (in *Instance) Prep(i int) bool {
	return i >= 0 && i < len(in.prep) && in.prep[i]
}

func (in *Instance) ChecklistOpen() bool { return in.checklistOpen }
