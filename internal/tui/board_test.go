package tui

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/incode/internal/model"
)

func boardLessons() []model.Lesson {
	return []model.Lesson{
		{
			ID:      "l1",
			Title:   "List files",
			Command: "ls",
			Arguments: []model.Argument{
				{ID: "a1", Flag: "-la", Description: "long listing with hidden files"},
			},
		},
		{ID: "l2", Title: "Print directory", Command: "pwd"},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func newTestBoard() *Board {
	b := NewBoard(model.Game{ID: "shell", Title: "Shell"}, boardLessons())
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	b.now = func() time.Time {
		calls++
		return start.Add(time.Duration(calls-1) * 6 * time.Second)
	}
	return b
}

func TestBoardWalksLessonAndArguments(t *testing.T) {
	b := newTestBoard()
	if b.State().Target != "ls" {
		t.Fatalf("expected base command first, got %q", b.State().Target)
	}
	b.Update(runes("ls"))
	b.Update(keyOf(tea.KeyTab))
	if b.State().Target != "ls -la" {
		t.Fatalf("expected argument target, got %q", b.State().Target)
	}
	b.Update(runes("ls -la"))
	b.Update(keyOf(tea.KeyTab))
	if b.LessonIndex() != 1 {
		t.Fatalf("expected next lesson, got %d", b.LessonIndex())
	}
	res, ok := b.LastResult()
	if !ok {
		t.Fatalf("expected lesson result")
	}
	if res.AccuracyPercent != 100 {
		t.Fatalf("expected 100%% accuracy, got %v", res.AccuracyPercent)
	}
	if res.TimeTakenSeconds != 6 {
		t.Fatalf("expected 6s, got %d", res.TimeTakenSeconds)
	}
}

func TestBoardAdvanceIgnoredUntilComplete(t *testing.T) {
	b := newTestBoard()
	b.Update(runes("l"))
	b.Update(keyOf(tea.KeyTab))
	if b.State().Target != "ls" || b.State().Typed != "l" {
		t.Fatalf("expected no advance, got %+v", b.State())
	}
}

func TestBoardFirstKeystrokeStartsTimer(t *testing.T) {
	b := newTestBoard()
	_, cmd := b.Update(runes("l"))
	if cmd == nil {
		t.Fatalf("expected timer command on first keystroke")
	}
	_, cmd = b.Update(runes("s"))
	if cmd != nil {
		t.Fatalf("expected no second timer")
	}
}

func TestBoardDropsStaleTicks(t *testing.T) {
	b := newTestBoard()
	b.Update(runes("l"))
	stale := tickMsg{gen: b.timer.gen, at: time.Now()}
	b.Update(keyOf(tea.KeyPgDown))
	if _, cmd := b.Update(stale); cmd != nil {
		t.Fatalf("expected stale tick to be dropped")
	}
	if b.LessonIndex() != 1 || b.State().Target != "pwd" {
		t.Fatalf("expected second lesson selected, got %d %q", b.LessonIndex(), b.State().Target)
	}
}

func TestBoardSelectArgument(t *testing.T) {
	b := newTestBoard()
	b.Update(keyOf(tea.KeyDown))
	if b.State().Target != "ls -la" {
		t.Fatalf("expected argument target, got %q", b.State().Target)
	}
	b.Update(keyOf(tea.KeyDown))
	if b.State().Target != "ls -la" {
		t.Fatalf("expected selection to stay on last argument, got %q", b.State().Target)
	}
	b.Update(keyOf(tea.KeyUp))
	if b.State().Target != "ls" {
		t.Fatalf("expected up to return to the base command, got %q", b.State().Target)
	}
}

func TestBoardGameSummary(t *testing.T) {
	b := newTestBoard()
	b.Update(runes("x"))
	b.Update(keyOf(tea.KeyBackspace))
	for _, text := range []string{"ls", "ls -la", "pwd"} {
		b.Update(runes(text))
		b.Update(keyOf(tea.KeyTab))
	}
	if !b.Finished() {
		t.Fatalf("expected game to finish")
	}
	want := float64(8-1) / 8 * 100
	if math.Abs(b.GameAccuracy()-want) > 1e-9 {
		t.Fatalf("expected game accuracy %v, got %v", want, b.GameAccuracy())
	}
	if !strings.Contains(b.View(), "Game accuracy: 87.5%") {
		t.Fatalf("expected summary in view")
	}
	b.Update(keyOf(tea.KeyEnter))
	if b.Finished() || b.LessonIndex() != 0 {
		t.Fatalf("expected restart from first lesson")
	}
}

func TestBoardReadyBadge(t *testing.T) {
	b := newTestBoard()
	if strings.Contains(b.View(), readyBadge) {
		t.Fatalf("expected no badge before completion")
	}
	b.Update(runes("ls"))
	if !strings.Contains(b.View(), readyBadge) {
		t.Fatalf("expected badge once the command is typed")
	}
}

func TestBoardEscGoesBack(t *testing.T) {
	b := newTestBoard()
	_, cmd := b.Update(keyOf(tea.KeyEsc))
	if cmd == nil || !b.Back() || b.Exit() {
		t.Fatalf("expected back with quit command")
	}
}

func TestBoardWithoutLessons(t *testing.T) {
	b := NewBoard(model.Game{Title: "Empty"}, nil)
	b.Update(runes("abc"))
	if !strings.Contains(b.View(), "No lessons available") {
		t.Fatalf("expected empty state")
	}
}
