package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/skillbuilder/internal/lesson"
	"github.com/jask/skillbuilder/internal/render"
)

const barWidth = 30

func (a *App) View() string {
	if a.inst == nil || a.inst.Lesson() == nil {
		return "No lesson loaded.\n" + a.renderStatus()
	}
	d := a.inst.Lesson()

	sections := []string{a.renderHero(d), a.renderProgress()}
	if a.celebrating {
		sections = append(sections, a.renderConfetti())
	}
	sections = append(sections,
		a.renderSteps(d),
		a.renderReactions(d),
		a.renderNotes(),
		a.renderNextSteps(d),
	)
	modal := ""
	if a.mode == modeChecklist {
		modal = a.renderChecklist(d)
		if a.height <= 0 {
			sections = append(sections, modal)
		}
	}
	sections = append(sections, a.keys.Help(a.scope()))
	if s := a.renderStatus(); s != "" {
		sections = append(sections, s)
	}
	out := strings.Join(sections, "\n\n")
	if modal != "" && a.height > 0 {
		return overlayCenter(out, modal, a.width, a.height)
	}
	return out
}

func (a *App) renderHero(d *lesson.Descriptor) string {
	title := titleStyle.Render(d.Title)
	if d.MemberOnly {
		title += " " + badgeStyle.Render("MEMBERS")
	}
	lines := []string{title}
	if d.Intro != "" {
		lines = append(lines, d.Intro)
	}
	if d.Tagline != "" {
		lines = append(lines, taglineStyle.Render(d.Tagline))
	}
	if a.inst.Degraded() {
		lines = append(lines, statusErrStyle.Render("progress is not being saved"))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderProgress() string {
	sum := a.inst.Summary()
	filled := barWidth * sum.Percent / 100
	bar := barFillStyle.Render(strings.Repeat("█", filled)) +
		barTrackStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %3d%%  %d/%d tried · Keep going", bar, sum.Percent, sum.Done, sum.Total)
}

func (a *App) renderSteps(d *lesson.Descriptor) string {
	lines := []string{sectionStyle.Render("Steps")}
	if len(d.Steps) == 0 {
		lines = append(lines, mutedStyle.Render("  (no steps)"))
	}
	for i, s := range d.Steps {
		pos := i + 1
		marker := "  "
		if i == a.cursor && a.focus == focusSteps && a.mode == modeBrowse {
			marker = cursorStyle.Render("▶ ")
		}
		box := "[ ]"
		if a.inst.Tried(pos) {
			box = triedStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s%s %d. %s", marker, box, pos, s.Title)
		if s.Duration != "" {
			line += "  " + durationStyle.Render(s.Duration)
		}
		lines = append(lines, line)
		if i == a.cursor {
			lines = append(lines, a.renderStepDetail(s, pos)...)
		}
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderStepDetail(s lesson.Step, pos int) []string {
	var out []string
	if s.Description != "" {
		out = append(out, "      "+s.Description)
	}
	switch s.Media.Kind {
	case lesson.MediaVideo:
		out = append(out, mutedStyle.Render("      video: "+s.Media.File))
	case lesson.MediaImage:
		out = append(out, mutedStyle.Render("      image: "+s.Media.File))
	default:
		out = append(out, mutedStyle.Render("      "+render.MediaPlaceholder))
	}
	if len(s.Tips) > 0 {
		if a.tipsOpen[pos-1] {
			out = append(out, "      Tips:")
			for _, tip := range s.Tips {
				out = append(out, "       - "+tip)
			}
		} else {
			out = append(out, mutedStyle.Render("      Show tips (t)"))
		}
	}
	out = append(out, mutedStyle.Render("      "+render.MarkLabel(a.inst.Tried(pos))))
	return out
}

func (a *App) renderReactions(d *lesson.Descriptor) string {
	if len(d.Reactions) == 0 {
		return ""
	}
	parts := make([]string, 0, len(d.Reactions))
	for i, r := range d.Reactions {
		label := r.Emoji + " " + r.Label
		switch {
		case a.focus == focusReactions && i == a.reactCursor && a.mode == modeBrowse:
			if a.inst.Reacted(r.ID) {
				label = "✓ " + label
			}
			parts = append(parts, reactionCursorStyle.Render(label))
		case a.inst.Reacted(r.ID):
			parts = append(parts, reactionOnStyle.Render("✓ "+label))
		default:
			parts = append(parts, reactionStyle.Render(label))
		}
	}
	return sectionStyle.Render("How did it go?") + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a *App) renderNotes() string {
	head := sectionStyle.Render("Notes")
	if a.mode == modeNotes {
		return head + "\n" + a.notes.View()
	}
	if notes := a.inst.Notes(); notes != "" {
		return head + "\n" + notes
	}
	placeholder := a.notes.Placeholder
	if placeholder == "" {
		placeholder = "Press e to write a note."
	}
	return head + "\n" + mutedStyle.Render(placeholder)
}

func (a *App) renderNextSteps(d *lesson.Descriptor) string {
	if len(d.NextSteps) == 0 {
		return ""
	}
	lines := []string{sectionStyle.Render("Where next")}
	for _, n := range d.NextSteps {
		line := "→ " + n.Title
		if n.ButtonText != "" || n.Link != "" {
			line += mutedStyle.Render(fmt.Sprintf("  %s %s", n.ButtonText, n.Link))
		}
		lines = append(lines, line)
		if n.Description != "" {
			lines = append(lines, "  "+mutedStyle.Render(n.Description))
		}
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderChecklist(d *lesson.Descriptor) string {
	lines := []string{sectionStyle.Render("Before you start")}
	for i, ins := range d.ChecklistInstructions {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, ins))
	}
	for i, item := range d.PreChecklist {
		marker := "  "
		if i == a.prepCursor {
			marker = cursorStyle.Render("▶ ")
		}
		box := "[ ]"
		if a.inst.Prep(i) {
			box = triedStyle.Render("[x]")
		}
		lines = append(lines, marker+box+" "+item)
	}
	return modalStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderConfetti() string {
	cols := max(1, a.width)
	grid := make([][]rune, confettiRows)
	alt := make([][]bool, confettiRows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
		alt[r] = make([]bool, cols)
	}
	for _, p := range a.confetti.Pieces() {
		if p.Y < 0 {
			continue
		}
		r, c := int(p.Y/cellH), int(p.X/cellW)
		if r >= confettiRows || c < 0 || c >= cols {
			continue
		}
		grid[r][c] = '■'
		alt[r][c] = p.Alt
	}
	lines := make([]string, confettiRows)
	for r := range grid {
		var b strings.Builder
		for c, ch := range grid[r] {
			switch {
			case ch == ' ':
				b.WriteRune(ch)
			case alt[r][c]:
				b.WriteString(confettiMint.Render(string(ch)))
			default:
				b.WriteString(confettiSage.Render(string(ch)))
			}
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderStatus() string {
	if a.status == "" {
		return ""
	}
	if a.statusErr {
		return statusErrStyle.Render(a.status)
	}
	return statusStyle.Render(a.status)
}
