// Package menu provides the Bubble Tea game picker.
package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/incode/internal/catalog"
	"github.com/verte-zerg/incode/internal/model"
	"github.com/verte-zerg/incode/internal/typing"
)

// Action is what the user picked for the selected game.
type Action int

const (
	ActionNone Action = iota
	ActionPractice
	ActionBattle
)

// Choice is the result of a menu run.
type Choice struct {
	Action Action
	GameID string
}

// LessonLoader returns the ordered lessons of a game.
type LessonLoader func(gameID string) ([]model.Lesson, error)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F2027A"))
	previewBox  = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#374151"))
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB"))
	flagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

// Model implements the Bubble Tea game picker.
type Model struct {
	games []model.GameSummary
	load  LessonLoader

	table      table.Model
	preview    viewport.Model
	previewFor string
	errMsg     string

	width  int
	height int

	choice Choice
}

// New builds a picker over games. load is called lazily for the preview.
func New(games []model.GameSummary, load LessonLoader) *Model {
	m := &Model{
		games:   games,
		load:    load,
		preview: viewport.New(0, 0),
	}
	m.table = buildGameTable(games, 0, len(games)+1)
	m.refreshPreview()
	return m
}

// Choice returns what the user picked. Action is ActionNone when the menu
// was left without a pick.
func (m *Model) Choice() Choice {
	return m.choice
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "enter":
			return m, m.pick(ActionPractice)
		case "b":
			return m, m.pick(ActionBattle)
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		m.refreshPreview()
		return m, cmd
	default:
		return m, nil
	}
}

func (m *Model) pick(action Action) tea.Cmd {
	game, ok := m.selected()
	if !ok {
		return nil
	}
	m.choice = Choice{Action: action, GameID: game.ID}
	return tea.Quit
}

func (m *Model) selected() (model.GameSummary, bool) {
	if len(m.games) == 0 {
		return model.GameSummary{}, false
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.games) {
		return model.GameSummary{}, false
	}
	return m.games[idx], true
}

// View implements tea.Model.
func (m *Model) View() string {
	header := headerStyle.Render("incode") + mutedStyle.Render("  learn the command line by typing it")
	footer := helpStyle.Render("↑/↓ select • enter practice • b battle • pgup/pgdn scroll lessons • q quit")
	if len(m.games) == 0 {
		body := mutedStyle.Render("No games available. Import a catalog with `incode import FILE`.")
		return strings.Join([]string{header, "", body, "", footer}, "\n")
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.table.View(),
		"  ",
		previewBox.Render(m.preview.View()),
	)
	lines := []string{header, "", body}
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	}
	lines = append(lines, "", footer)
	view := strings.Join(lines, "\n")
	if m.width == 0 || m.height == 0 {
		return view
	}
	return fitLines(view, m.width, m.height)
}

func (m *Model) updateLayout() {
	tableWidth := maxInt(30, m.width*45/100)
	bodyHeight := maxInt(3, m.height-6)
	m.table.SetWidth(tableWidth)
	m.table.SetHeight(bodyHeight)
	m.table.SetColumns(gameColumns(tableWidth))
	m.preview.Width = maxInt(10, m.width-tableWidth-6)
	m.preview.Height = maxInt(1, bodyHeight-2)
	m.previewFor = ""
	m.refreshPreview()
}

func (m *Model) refreshPreview() {
	game, ok := m.selected()
	if !ok || game.ID == m.previewFor {
		return
	}
	m.previewFor = game.ID
	m.errMsg = ""
	lessons, err := m.load(game.ID)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load lessons: %v", err)
		m.preview.SetContent("")
		return
	}
	m.preview.SetContent(renderPreview(game.Game, lessons, m.preview.Width))
	m.preview.GotoTop()
}

func renderPreview(game model.Game, lessons []model.Lesson, width int) string {
	title := game.Title
	if glyph := catalog.IconGlyph(game.Icon); glyph != "" {
		title = glyph + " " + title
	}
	lines := []string{
		lipgloss.NewStyle().Foreground(catalog.GameColor(game.Color)).Bold(true).Render(title),
	}
	if game.Description != "" {
		lines = append(lines, mutedStyle.Render(truncateLine(game.Description, width)))
	}
	lines = append(lines, "")
	if len(lessons) == 0 {
		lines = append(lines, mutedStyle.Render("No lessons yet"))
	}
	for i, lesson := range lessons {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, truncateLine(lesson.Title, width-4)))
		lines = append(lines, "   "+commandStyle.Render(lesson.Command))
		for _, arg := range lesson.Arguments {
			cmd := typing.ArgumentCommand(lesson.Command, arg.Flag)
			lines = append(lines, "   "+flagStyle.Render(cmd)+" "+mutedStyle.Render(truncateLine(arg.Description, width-len(cmd)-5)))
		}
	}
	return strings.Join(lines, "\n")
}

func gameColumns(width int) []table.Column {
	idWidth := 10
	lessonsWidth := 7
	titleWidth := maxInt(10, width-idWidth-lessonsWidth-4)
	return []table.Column{
		{Title: "Game", Width: titleWidth},
		{Title: "ID", Width: idWidth},
		{Title: "Lessons", Width: lessonsWidth},
	}
}

func buildGameTable(games []model.GameSummary, width, height int) table.Model {
	rows := make([]table.Row, 0, len(games))
	for _, g := range games {
		title := g.Title
		if glyph := catalog.IconGlyph(g.Icon); glyph != "" {
			title = glyph + " " + title
		}
		rows = append(rows, table.Row{title, g.ID, fmt.Sprintf("%d", g.Lessons)})
	}
	t := table.New(
		table.WithColumns(gameColumns(maxInt(width, 40))),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(maxInt(1, height)),
	)
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F59E0B")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
