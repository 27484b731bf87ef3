package controller

import (
	"fmt"
	"strconv"

	"github.com/jask/skillbuilder/internal/render"
)

// ToggleTried flips the tried state of the step at 1-based pos and returns
// the new state.
func (in *Instance) ToggleTried(pos int) (bool, error) {
	if in.lesson == nil {
		return false, ErrNotLoaded
	}
	if pos < 1 || pos > len(in.lesson.Steps) {
		return false, fmt.Errorf("%w: %d", ErrUnknownStep, pos)
	}
	tried := !in.Tried(pos)
	in.state.SetTried(in.ctx, pos, tried)
	if el, ok := in.doc.ElementByID(render.MarkID(pos)); ok {
		el.SetAttr("aria-pressed", strconv.FormatBool(tried))
		el.SetText(render.MarkLabel(tried))
	}
	in.log.Debug("step toggled", "step", pos, "tried", tried)
	in.recompute()
	return tried, nil
}

// EditNotes persists the whole notes text.
func (in *Instance) EditNotes(text string) {
	if in.lesson == nil {
		return
	}
	in.state.SetNotes(in.ctx, text)
	if el, ok := in.doc.ElementByID(SlotNotes); ok && el.Text() != text {
		el.SetText(text)
	}
}

// ToggleReaction flips one reaction. Reactions do not count toward progress.
func (in *Instance) ToggleReaction(id string) (bool, error) {
	if in.lesson == nil {
		return false, ErrNotLoaded
	}
	if _, ok := in.lesson.Reaction(id); !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownReaction, id)
	}
	on := !in.Reacted(id)
	in.state.SetReacted(in.ctx, id, on)
	if el, ok := in.doc.ElementByID(render.ReactionID(id)); ok {
		el.SetAttr("aria-pressed", strconv.FormatBool(on))
	}
	return on, nil
}

// JumpToNext brings the first untried step into view and focuses its mark
// button. With nothing left to try it celebrates instead.
func (in *Instance) JumpToNext() (pos int, celebrated bool) {
	if in.lesson == nil {
		return 0, false
	}
	for p := 1; p <= len(in.lesson.Steps); p++ {
		if in.Tried(p) {
			continue
		}
		if el, ok := in.doc.ElementByID(render.StepID(p)); ok {
			el.ScrollIntoView()
		}
		if el, ok := in.doc.ElementByID(render.MarkID(p)); ok {
			el.Focus()
		}
		return p, false
	}
	in.celebrate()
	return 0, true
}

func (in *Instance) OpenChecklist() {
	in.setChecklist(true)
}

func (in *Instance) CloseChecklist() {
	in.setChecklist(false)
}

// ClickChecklist closes the modal when the click lands on the backdrop
// itself rather than on its content.
func (in *Instance) ClickChecklist(targetID string) {
	if targetID == SlotChecklistModal {
		in.setChecklist(false)
	}
}

func (in *Instance) setChecklist(open bool) {
	in.checklistOpen = open
	display := "none"
	if open {
		display = "grid"
	}
	if el, ok := in.slot(SlotChecklistModal); ok {
		el.SetStyle("display", display)
	}
}

// TogglePrep flips a checklist box. Checklist state is never persisted.
func (in *Instance) TogglePrep(i int) (bool, error) {
	if i < 0 || i >= len(in.prep) {
		return false, fmt.Errorf("%w: %d", ErrUnknownPrep, i)
	}
	in.prep[i] = !in.prep[i]
	if el, ok := in.doc.ElementByID(render.PrepID(i)); ok {
		el.SetAttr("aria-checked", strconv.FormatBool(in.prep[i]))
	}
	return in.prep[i], nil
}

// FocusNotes moves the learner to the reflection field.
func (in *Instance) FocusNotes() {
	if el, ok := in.slot(SlotNotes); ok {
		el.ScrollIntoView()
		el.Focus()
	}
}
