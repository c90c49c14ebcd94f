package stats

import (
	"math"
	"testing"

	"github.com/verte-zerg/incode/internal/model"
)

func TestWordsPerMinute(t *testing.T) {
	if got := WordsPerMinute(75, 90); got != 10 {
		t.Fatalf("expected 10 wpm, got %v", got)
	}
	if got := WordsPerMinute(16, 7); got != 27 {
		t.Fatalf("expected 27 wpm, got %v", got)
	}
}

func TestWordsPerMinuteGuards(t *testing.T) {
	for _, tc := range []struct {
		chars   int
		seconds float64
	}{
		{0, 30},
		{40, 0},
		{0, 0},
		{10, -1},
	} {
		got := WordsPerMinute(tc.chars, tc.seconds)
		if got != 0 || math.IsNaN(got) || math.IsInf(got, 0) {
			t.Fatalf("WordsPerMinute(%d, %v) = %v, want 0", tc.chars, tc.seconds, got)
		}
	}
}

func TestAccuracyPercent(t *testing.T) {
	if got := AccuracyPercent(5, 0); got != 0 {
		t.Fatalf("expected 0 for zero total, got %v", got)
	}
	if got := AccuracyPercent(16, 16); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
	if got := AccuracyPercent(3, 4); got != 75 {
		t.Fatalf("expected 75, got %v", got)
	}
}

func TestTotalExpectedChars(t *testing.T) {
	lessons := []model.Lesson{
		{Command: "git commit", Arguments: []model.Argument{{Flag: "-m"}, {Flag: "--amend"}}},
		{Command: "ls"},
	}
	// "git commit" + "-m" + "--amend" + "ls"
	if got := TotalExpectedChars(lessons); got != 10+2+7+2 {
		t.Fatalf("unexpected total: %d", got)
	}
}

func TestTotalExpectedCharsCountsFlagOnly(t *testing.T) {
	lessons := []model.Lesson{{Command: "git commit", Arguments: []model.Argument{{Flag: "-m"}}}}
	if got := TotalExpectedChars(lessons); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
	if got := GameAccuracy(TotalExpectedChars(lessons), 3); got != 75 {
		t.Fatalf("expected 75, got %v", got)
	}
}

func TestGameAccuracy(t *testing.T) {
	if got := GameAccuracy(200, 10); got != 95 {
		t.Fatalf("expected 95, got %v", got)
	}
	if got := GameAccuracy(0, 3); got != 0 {
		t.Fatalf("expected 0 for empty game, got %v", got)
	}
	if got := GameAccuracy(10, 50); got != 0 {
		t.Fatalf("expected clamp to 0, got %v", got)
	}
}

func TestLessonResult(t *testing.T) {
	res := LessonResult(75, 60, 90)
	if res.WPM != 10 || res.AccuracyPercent != 80 || res.TimeTakenSeconds != 90 {
		t.Fatalf("unexpected result: %+v", res)
	}
}
