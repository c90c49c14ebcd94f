package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/incode/internal/battle"
	"github.com/verte-zerg/incode/internal/model"
	"github.com/verte-zerg/incode/internal/stats"
)

// BattleView runs a timed battle: countdown, questions, result.
type BattleView struct {
	game   model.Game
	battle *battle.Battle
	err    error

	// timer drives the countdown and keeps ticking through the running
	// phase for the elapsed clock; it stops once the battle ends or is quit.
	timer      timer
	confirming bool

	width  int
	height int
	help   help.Model
	keys   battleKeys

	back bool
	exit bool
}

// NewBattleView samples a battle from lessons. An empty pool is not an
// error here; the view renders a "no content" state instead.
func NewBattleView(game model.Game, lessons []model.Lesson, opts battle.Options) *BattleView {
	b, err := battle.New(lessons, opts)
	return &BattleView{
		game:   game,
		battle: b,
		err:    err,
		help:   help.New(),
		keys:   defaultBattleKeys,
	}
}

// Init starts the countdown timer.
func (v *BattleView) Init() tea.Cmd {
	if v.battle == nil {
		return nil
	}
	return v.timer.start()
}

// Back reports whether the view was left to return to the menu.
func (v *BattleView) Back() bool {
	return v.back
}

// Exit reports whether the user asked to leave the program.
func (v *BattleView) Exit() bool {
	return v.exit
}

// Battle returns the underlying engine. It is nil when the pool was empty.
func (v *BattleView) Battle() *battle.Battle {
	return v.battle
}

// Update implements tea.Model.
func (v *BattleView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.help.Width = msg.Width
		return v, nil
	case tickMsg:
		return v, v.handleTick(msg)
	case tea.KeyMsg:
		return v, v.handleKey(msg)
	default:
		return v, nil
	}
}

func (v *BattleView) handleTick(msg tickMsg) tea.Cmd {
	if !v.timer.accepts(msg) {
		return nil
	}
	switch v.battle.Phase() {
	case battle.PhaseCountdown:
		v.battle.Tick()
		return v.timer.next()
	case battle.PhaseRunning:
		return v.timer.next()
	default:
		v.timer.stop()
		return nil
	}
}

func (v *BattleView) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, v.keys.Quit) {
		v.timer.stop()
		if v.battle != nil {
			v.battle.Quit()
		}
		v.exit = true
		return tea.Quit
	}
	if v.battle == nil || v.battle.Phase() == battle.PhaseFinished {
		if key.Matches(msg, v.keys.Back) || msg.Type == tea.KeyEnter || msg.String() == "q" {
			v.back = true
			return tea.Quit
		}
		return nil
	}
	if v.confirming {
		switch {
		case key.Matches(msg, v.keys.Confirm):
			v.timer.stop()
			v.battle.Quit()
			v.back = true
			return tea.Quit
		case key.Matches(msg, v.keys.Cancel):
			v.confirming = false
		}
		return nil
	}
	switch {
	case key.Matches(msg, v.keys.Back):
		v.confirming = true
		return nil
	case key.Matches(msg, v.keys.Advance):
		v.battle.Advance()
		v.stopIfDone()
		return nil
	case key.Matches(msg, v.keys.Skip):
		v.battle.Skip()
		v.stopIfDone()
		return nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		v.battle.Backspace()
	case tea.KeySpace:
		v.battle.Type(' ')
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			v.battle.Type(r)
		}
	}
	return nil
}

func (v *BattleView) stopIfDone() {
	if v.battle.Phase() == battle.PhaseFinished {
		v.timer.stop()
	}
}

// View implements tea.Model.
func (v *BattleView) View() string {
	width := v.width
	if width == 0 {
		width = 80
	}
	var body string
	switch {
	case v.battle == nil:
		msg := "Failed to start battle"
		if errors.Is(v.err, battle.ErrEmptyQuestionPool) {
			msg = "No lessons available"
		}
		body = lipgloss.JoinVertical(lipgloss.Left,
			mutedStyle.Render(msg),
			"",
			footerStyle.Render("Press Esc to go back"),
		)
	case v.battle.Phase() == battle.PhaseCountdown:
		body = lipgloss.JoinVertical(lipgloss.Center,
			mutedStyle.Render("Get ready"),
			countdownStyle.Render(fmt.Sprintf("%d", v.battle.Countdown())),
		)
	case v.battle.Phase() == battle.PhaseFinished:
		var sb strings.Builder
		if err := stats.RenderBattleResult(&sb, v.battle.Result()); err != nil {
			sb.WriteString(err.Error())
		}
		body = lipgloss.JoinVertical(lipgloss.Left,
			strings.TrimRight(sb.String(), "\n"),
			"",
			footerStyle.Render("Press Enter to go back"),
		)
	default:
		body = v.renderQuestion(width)
	}
	if v.confirming {
		body = modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Quit battle?"),
			"Your progress will be lost. (y/n)",
		))
	}
	header := titleStyle.Render(v.game.Title + " battle")
	view := lipgloss.JoinVertical(lipgloss.Left, header, "", body)
	if v.height == 0 {
		return view
	}
	return lipgloss.Place(width, v.height, lipgloss.Center, lipgloss.Center, view)
}

func (v *BattleView) renderQuestion(width int) string {
	q, _ := v.battle.Current()
	s := v.battle.Stats()
	contentWidth := int(float64(width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	status := fmt.Sprintf("Question %d/%d  Time %s  Wrong %d",
		v.battle.Index()+1, len(v.battle.Questions()),
		stats.FormatDuration(s.ElapsedSeconds), s.WrongKeyPresses)
	lines := []string{
		mutedStyle.Render(status),
		"",
		itemStyle.Render(q.Description),
		"",
		renderCommand(v.battle.State(), contentWidth),
	}
	if v.battle.State().Complete() {
		lines = append(lines, "", badgeStyle.Render(readyBadge))
	}
	lines = append(lines, "", footerStyle.Render(v.help.View(v.keys)))
	return strings.Join(lines, "\n")
}
