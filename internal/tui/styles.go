package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F2027A"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	badgeStyle       = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#000000")).
				Background(lipgloss.Color("#F59E0B")).
				Padding(0, 1)
	countdownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	panelStyle     = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#374151"))
	activeItemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	itemStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB"))
	flagStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#F59E0B")).
			Padding(1, 2)
)

const readyBadge = "Press Tab to continue"

type boardKeys struct {
	Advance    key.Binding
	NextLesson key.Binding
	PrevLesson key.Binding
	NextArg    key.Binding
	PrevArg    key.Binding
	Restart    key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Advance, k.NextLesson, k.PrevLesson, k.NextArg, k.PrevArg, k.Back}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Restart, k.Quit}}
}

var defaultBoardKeys = boardKeys{
	Advance:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "continue")),
	NextLesson: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "next lesson")),
	PrevLesson: key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev lesson")),
	NextArg:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next argument")),
	PrevArg:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "prev argument")),
	Restart:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play again")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop")),
	Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

type battleKeys struct {
	Advance key.Binding
	Skip    key.Binding
	Back    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

func (k battleKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Advance, k.Skip, k.Back}
}

func (k battleKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Quit}}
}

var defaultBattleKeys = battleKeys{
	Advance: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "submit")),
	Skip:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "skip question")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit battle")),
	Confirm: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "confirm")),
	Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
	Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "exit")),
}
