package output

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all lipgloss styles for text output
var Styles = defaultStyles()

type styleSet struct {
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Path    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
}

func defaultStyles() styleSet {
	return styleSet{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("141")).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("239")),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Value:   lipgloss.NewStyle().Bold(true),
		Path:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")), // Blue
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

// PlainStyles drops colors and decoration, for output that is not a terminal
func PlainStyles() {
	plain := lipgloss.NewStyle()
	Styles = styleSet{
		Header:  plain,
		Label:   plain,
		Value:   plain,
		Path:    plain,
		Success: plain,
		Warning: plain,
		Danger:  plain,
	}
}

// ResetStyles restores the colored styles
func ResetStyles() {
	Styles = defaultStyles()
}

// ErrorCountText styles an error count by severity
func ErrorCountText(n int) string {
	if n > 0 {
		return Styles.Danger.Render(strconv.Itoa(n))
	}
	return Styles.Success.Render(strconv.Itoa(n))
}
