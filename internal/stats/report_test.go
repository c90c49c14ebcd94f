package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/incode/internal/model"
)

func TestRenderBattleResult(t *testing.T) {
	var buf bytes.Buffer
	res := model.BattleResult{
		ResultStats:      model.ResultStats{AccuracyPercent: 200.0 / 3.0, TimeTakenSeconds: 42},
		TotalQuestions:   3,
		CorrectAnswers:   2,
		SkippedQuestions: 1,
	}
	if err := RenderBattleResult(&buf, res); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Time: 42s", "Accuracy: 66.7%", "Correct Answers: 2/3", "Skipped Questions: 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}

func TestRenderGamesTruncates(t *testing.T) {
	var buf bytes.Buffer
	games := []model.GameSummary{
		{Game: model.Game{ID: "1", Title: "Git", Description: strings.Repeat("x", 100)}, Lessons: 4},
	}
	if err := RenderGames(&buf, games, 40); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if displayWidth(line) > 40 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
}

func TestRenderGamesEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderGames(&buf, nil, 80); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No games found") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(125); got != "2:05" {
		t.Fatalf("unexpected duration: %q", got)
	}
}

func TestRenderLessonResult(t *testing.T) {
	var buf bytes.Buffer
	res := LessonResult(16, 16, 75)
	if err := RenderLessonResult(&buf, "Commit changes", res); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Lesson complete: Commit changes", "WPM: 3", "Accuracy: 100.0%", "Time: 1:15"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}
