package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typelingo/internal/align"
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Strikethrough(true)
	hintStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF9C9E"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = pendingStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")).Bold(true)
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FBF7F"))
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))

	paneStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	activePaneStyle = paneStyle.BorderForeground(lipgloss.Color("#C89A3A"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

var wordStateStyles = map[align.WordState]lipgloss.Style{
	align.StateNone:            lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8")),
	align.StateClicked:         lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true),
	align.StatePair:            lipgloss.NewStyle().Foreground(lipgloss.Color("#7FBF7F")),
	align.StateClickedSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true).Underline(true),
	align.StateHighlightedPair: lipgloss.NewStyle().Foreground(lipgloss.Color("#101010")).Background(lipgloss.Color("#5FA8D3")),
	align.StateHighlighted:     lipgloss.NewStyle().Foreground(lipgloss.Color("#101010")).Background(lipgloss.Color("#C89A3A")).Bold(true),
}
