package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText    lipgloss.Color = "#cdd6f4"
	colorMuted   lipgloss.Color = "#a6adc8"
	colorBorder  lipgloss.Color = "#585b70"
	colorAccent  lipgloss.Color = "#89b4fa"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorError   lipgloss.Color = "#f38ba8"
	colorTrack   lipgloss.Color = "#313244"
	colorSage    lipgloss.Color = "#9cc29b"
	colorMint    lipgloss.Color = "#cfe3c8"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	taglineStyle = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	badgeStyle   = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true).
			Padding(0, 1)
	sectionStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)

	cursorStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	triedStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	durationStyle = lipgloss.NewStyle().Foreground(colorMuted)

	barFillStyle  = lipgloss.NewStyle().Foreground(colorSage)
	barTrackStyle = lipgloss.NewStyle().Foreground(colorTrack)

	reactionStyle   = lipgloss.NewStyle().Padding(0, 1)
	reactionOnStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(colorSuccess).
			Bold(true)
	reactionCursorStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(colorAccent).
				Underline(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	statusStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorError)

	keyStyle      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorMuted)

	confettiSage = lipgloss.NewStyle().Foreground(colorSage)
	confettiMint = lipgloss.NewStyle().Foreground(colorMint)
)
