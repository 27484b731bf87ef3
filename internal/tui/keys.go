package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Key scopes. A binding without scopes applies everywhere.
const (
	scopeSteps     = "steps"
	scopeReactions = "reactions"
	scopeNotes     = "notes"
	scopeChecklist = "checklist"
)

const (
	actionUp        = "up"
	actionDown      = "down"
	actionLeft      = "left"
	actionRight     = "right"
	actionToggle    = "toggle"
	actionNext      = "next"
	actionTips      = "tips"
	actionFocus     = "focus"
	actionNotes     = "notes"
	actionChecklist = "checklist"
	actionClose     = "close"
	actionQuit      = "quit"
)

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func DefaultBindings() []KeyBinding {
	browse := []string{scopeSteps, scopeReactions}
	return []KeyBinding{
		{Keys: []string{"up", "k"}, Action: actionUp, Description: "up", Scopes: []string{scopeSteps, scopeChecklist}},
		{Keys: []string{"down", "j"}, Action: actionDown, Description: "down", Scopes: []string{scopeSteps, scopeChecklist}},
		{Keys: []string{"left", "h"}, Action: actionLeft, Description: "prev", Scopes: []string{scopeReactions}},
		{Keys: []string{"right", "l"}, Action: actionRight, Description: "next", Scopes: []string{scopeReactions}},
		{Keys: []string{" ", "space", "enter"}, Action: actionToggle, Description: "toggle", Scopes: []string{scopeSteps, scopeReactions, scopeChecklist}},
		{Keys: []string{"n"}, Action: actionNext, Description: "next untried", Scopes: browse},
		{Keys: []string{"t"}, Action: actionTips, Description: "tips", Scopes: []string{scopeSteps}},
		{Keys: []string{"tab"}, Action: actionFocus, Description: "steps/reactions", Scopes: browse},
		{Keys: []string{"e"}, Action: actionNotes, Description: "notes", Scopes: browse},
		{Keys: []string{"c"}, Action: actionChecklist, Description: "checklist", Scopes: browse},
		{Keys: []string{"esc"}, Action: actionClose, Description: "close", Scopes: []string{scopeNotes, scopeChecklist}},
		{Keys: []string{"q", "ctrl+c"}, Action: actionQuit, Description: "quit", Scopes: browse},
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

// Action returns the action bound to msg in scope, or "".
func (r *KeyRegistry) Action(msg tea.KeyMsg, scope string) string {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return b.Action
			}
		}
	}
	return ""
}

// Help renders "key desc" pairs for the footer.
func (r *KeyRegistry) Help(scope string) string {
	bindings := r.BindingsForScope(scope)
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		key := b.Keys[0]
		if key == " " {
			key = "space"
		}
		parts = append(parts, keyStyle.Render(key)+" "+helpDescStyle.Render(b.Description))
	}
	return strings.Join(parts, "  ")
}

func normalizeKey(k string) string {
	if k == " " {
		return k
	}
	return strings.ToLower(strings.TrimSpace(k))
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}
