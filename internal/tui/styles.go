package tui

import "github.com/charmbracelet/lipgloss"

type styleID int

const (
	styleDesktop styleID = iota
	styleTopBar
	styleTopBarClock
	styleTitle
	styleTitleFocused
	styleBody
	styleBorder
	styleClose
	styleMinimize
	styleMaximize
	styleResize
	styleIcon
	styleIconSelected
	styleDock
	styleDockItem
	styleDockOpen
	styleDockFocused
	styleCount
)

func defaultStyles() []lipgloss.Style {
	s := make([]lipgloss.Style, styleCount)
	s[styleDesktop] = lipgloss.NewStyle().Background(lipgloss.Color("24")).Foreground(lipgloss.Color("252"))
	s[styleTopBar] = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252"))
	s[styleTopBarClock] = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("15")).Bold(true)
	s[styleTitle] = lipgloss.NewStyle().Background(lipgloss.Color("245")).Foreground(lipgloss.Color("236"))
	s[styleTitleFocused] = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("15")).Bold(true)
	s[styleBody] = lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("236"))
	s[styleBorder] = lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("241"))
	s[styleClose] = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("196"))
	s[styleMinimize] = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("226"))
	s[styleMaximize] = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("42"))
	s[styleResize] = lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("241"))
	s[styleIcon] = lipgloss.NewStyle().Background(lipgloss.Color("24")).Foreground(lipgloss.Color("15"))
	s[styleIconSelected] = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("15")).Bold(true)
	s[styleDock] = lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("250"))
	s[styleDockItem] = lipgloss.NewStyle().Background(lipgloss.Color("240")).Foreground(lipgloss.Color("15")).Bold(true)
	s[styleDockOpen] = lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("42"))
	s[styleDockFocused] = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("15")).Bold(true)
	return s
}
