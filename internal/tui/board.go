// Package tui provides the Bubble Tea lesson board and battle views.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/incode/internal/catalog"
	"github.com/verte-zerg/incode/internal/model"
	"github.com/verte-zerg/incode/internal/stats"
	"github.com/verte-zerg/incode/internal/typing"
)

// Board is the lesson board: lessons on the left, arguments on the right,
// the active command in the middle.
type Board struct {
	game     model.Game
	lessons  []model.Lesson
	expected int

	lessonIndex int
	engine      *typing.Engine
	lesson      *typing.Lesson

	timer      timer
	startTimer bool
	startedAt  time.Time
	elapsed    int
	now        func() time.Time

	wrongTotal int
	last       *model.ResultStats
	finished   bool
	gameAcc    float64

	width  int
	height int
	help   help.Model
	keys   boardKeys

	back bool
	exit bool
}

// NewBoard builds a lesson board over lessons, which must already be
// validated and sorted.
func NewBoard(game model.Game, lessons []model.Lesson) *Board {
	b := &Board{
		game:     game,
		lessons:  lessons,
		expected: stats.TotalExpectedChars(lessons),
		now:      time.Now,
		help:     help.New(),
		keys:     defaultBoardKeys,
	}
	b.engine = typing.NewEngine(b.onTypingStarted)
	b.selectLesson(0)
	return b
}

// Init implements tea.Model.
func (b *Board) Init() tea.Cmd {
	return nil
}

// Back reports whether the board was left with Esc.
func (b *Board) Back() bool {
	return b.back
}

// Exit reports whether the user asked to leave the program.
func (b *Board) Exit() bool {
	return b.exit
}

// LessonIndex returns the index of the active lesson.
func (b *Board) LessonIndex() int {
	return b.lessonIndex
}

// State returns the typing state of the active target.
func (b *Board) State() typing.State {
	return b.engine.State()
}

// LastResult returns the result of the most recently completed lesson.
func (b *Board) LastResult() (model.ResultStats, bool) {
	if b.last == nil {
		return model.ResultStats{}, false
	}
	return *b.last, true
}

// Finished reports whether every lesson of the game has been completed.
func (b *Board) Finished() bool {
	return b.finished
}

// GameAccuracy returns the whole-game accuracy once the game is finished.
func (b *Board) GameAccuracy() float64 {
	return b.gameAcc
}

// Update implements tea.Model.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.help.Width = msg.Width
		return b, nil
	case tickMsg:
		if !b.timer.accepts(msg) {
			return b, nil
		}
		b.elapsed = b.secondsSince(msg.at)
		return b, b.timer.next()
	case tea.KeyMsg:
		return b, b.handleKey(msg)
	default:
		return b, nil
	}
}

func (b *Board) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, b.keys.Quit):
		b.timer.stop()
		b.exit = true
		return tea.Quit
	case key.Matches(msg, b.keys.Back):
		b.timer.stop()
		b.back = true
		return tea.Quit
	}
	if b.lesson == nil {
		return nil
	}
	if b.finished {
		if key.Matches(msg, b.keys.Restart) {
			b.finished = false
			b.wrongTotal = 0
			b.last = nil
			b.selectLesson(0)
		}
		return nil
	}
	switch {
	case key.Matches(msg, b.keys.Advance):
		b.advance()
		return nil
	case key.Matches(msg, b.keys.NextLesson):
		b.selectLesson(b.lessonIndex + 1)
		return nil
	case key.Matches(msg, b.keys.PrevLesson):
		b.selectLesson(b.lessonIndex - 1)
		return nil
	case key.Matches(msg, b.keys.NextArg):
		b.lesson.SelectArgument(b.lesson.ArgumentIndex())
		return nil
	case key.Matches(msg, b.keys.PrevArg):
		b.lesson.SelectPrevious()
		return nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		b.lesson.Backspace()
	case tea.KeySpace:
		b.lesson.Type(' ')
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			b.lesson.Type(r)
		}
	default:
		return nil
	}
	if b.startTimer {
		b.startTimer = false
		return b.timer.start()
	}
	return nil
}

func (b *Board) onTypingStarted() {
	b.startedAt = b.now()
	b.elapsed = 0
	b.startTimer = true
}

func (b *Board) advance() {
	result, done := b.lesson.Advance()
	if !done {
		return
	}
	b.timer.stop()
	b.elapsed = b.secondsSince(b.now())
	res := stats.LessonResult(result.TotalChars, result.CorrectChars, b.elapsed)
	b.last = &res
	if b.lessonIndex >= len(b.lessons)-1 {
		b.wrongTotal += b.engine.WrongKeyPresses()
		b.engine.Restart()
		b.finished = true
		b.gameAcc = stats.GameAccuracy(b.expected, b.wrongTotal)
		return
	}
	b.selectLesson(b.lessonIndex + 1)
}

// selectLesson switches to lessons[i] and resets the session. Wrong presses
// made so far still count toward the game accuracy.
func (b *Board) selectLesson(i int) {
	if len(b.lessons) == 0 {
		return
	}
	if i < 0 || i >= len(b.lessons) {
		return
	}
	if b.lesson != nil {
		b.wrongTotal += b.engine.WrongKeyPresses()
	}
	b.timer.stop()
	b.startTimer = false
	b.startedAt = time.Time{}
	b.elapsed = 0
	b.engine.Restart()
	b.lessonIndex = i
	b.lesson = typing.NewLesson(b.lessons[i], b.engine)
}

func (b *Board) secondsSince(at time.Time) int {
	if b.startedAt.IsZero() {
		return 0
	}
	d := at.Sub(b.startedAt)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

// View implements tea.Model.
func (b *Board) View() string {
	width := b.width
	if width == 0 {
		width = 100
	}
	if b.lesson == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(b.game.Title),
			mutedStyle.Render("No lessons available"),
			footerStyle.Render(b.help.View(b.keys)),
		)
	}
	header := b.renderHeader(width)
	var body string
	if b.finished {
		body = b.renderSummary()
	} else {
		body = b.renderBoard(width)
	}
	footer := footerStyle.Render(b.help.View(b.keys))
	view := lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", footer)
	if b.height == 0 {
		return view
	}
	return lipgloss.Place(width, b.height, lipgloss.Center, lipgloss.Top, view)
}

func (b *Board) renderHeader(width int) string {
	glyph := catalog.IconGlyph(b.game.Icon)
	title := b.game.Title
	if glyph != "" {
		title = glyph + " " + title
	}
	left := lipgloss.NewStyle().Foreground(catalog.GameColor(b.game.Color)).Bold(true).Render(title)
	right := mutedStyle.Render(stats.FormatDuration(b.elapsed))
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (b *Board) renderBoard(width int) string {
	lessonPanel := panelStyle.Render(b.renderLessons())
	argPanel := panelStyle.Render(b.renderArguments())
	centerWidth := width - lipgloss.Width(lessonPanel) - lipgloss.Width(argPanel) - 4
	if centerWidth < 20 {
		centerWidth = 20
	}
	center := b.renderCenter(centerWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lessonPanel,
		lipgloss.NewStyle().Width(centerWidth).Padding(0, 2).Render(center),
		argPanel,
	)
}

func (b *Board) renderLessons() string {
	lines := []string{titleStyle.Render("Lessons")}
	for i, lesson := range b.lessons {
		label := fmt.Sprintf("%d. %s", i+1, lesson.Title)
		if i == b.lessonIndex {
			lines = append(lines, activeItemStyle.Render("> "+label))
			continue
		}
		lines = append(lines, itemStyle.Render("  "+label))
	}
	return strings.Join(lines, "\n")
}

func (b *Board) renderArguments() string {
	lines := []string{titleStyle.Render("Arguments")}
	args := b.lesson.Lesson().Arguments
	if len(args) == 0 {
		lines = append(lines, mutedStyle.Render("none"))
	}
	active := b.lesson.ArgumentIndex() - 1
	for i, arg := range args {
		if i == active {
			lines = append(lines, activeItemStyle.Render("> "+arg.Flag))
			continue
		}
		lines = append(lines, "  "+flagStyle.Render(arg.Flag))
	}
	return strings.Join(lines, "\n")
}

func (b *Board) renderCenter(width int) string {
	target := b.lesson.Target()
	state := b.engine.State()
	lines := []string{
		mutedStyle.Render(target.Description),
		"",
		renderCommand(state, width),
	}
	if state.Complete() {
		lines = append(lines, "", badgeStyle.Render(readyBadge))
	}
	if b.last != nil {
		lines = append(lines, "", mutedStyle.Render(formatResult(*b.last)))
	}
	return strings.Join(lines, "\n")
}

func (b *Board) renderSummary() string {
	lines := []string{
		titleStyle.Render("Game complete!"),
		fmt.Sprintf("Game accuracy: %.1f%%", b.gameAcc),
	}
	if b.last != nil {
		var sb strings.Builder
		title := b.lessons[len(b.lessons)-1].Title
		if err := stats.RenderLessonResult(&sb, title, *b.last); err != nil {
			sb.WriteString(err.Error())
		}
		lines = append(lines, "", strings.TrimRight(sb.String(), "\n"))
	}
	lines = append(lines, "", mutedStyle.Render("Press Enter to play again or Esc to go back"))
	return strings.Join(lines, "\n")
}

func formatResult(res model.ResultStats) string {
	return fmt.Sprintf("WPM %.0f  Accuracy %.1f%%  Time %s",
		res.WPM, res.AccuracyPercent, stats.FormatDuration(res.TimeTakenSeconds))
}
