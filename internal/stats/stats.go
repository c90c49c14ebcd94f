// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"unicode/utf8"

	"github.com/verte-zerg/incode/internal/model"
)

// WordsPerMinute returns round((chars/5) / (seconds/60)), or 0 when seconds is not positive.
func WordsPerMinute(totalChars int, elapsedSeconds float64) float64 {
	if totalChars <= 0 || elapsedSeconds <= 0 {
		return 0
	}
	minutes := elapsedSeconds / 60.0
	words := float64(totalChars) / 5.0
	return math.Round(words / minutes)
}

// AccuracyPercent returns correct/total as a percentage, or 0 when total is 0.
func AccuracyPercent(correctChars, totalChars int) float64 {
	if totalChars <= 0 {
		return 0
	}
	return float64(correctChars) / float64(totalChars) * 100
}

// GameAccuracy scores a whole game by wrong keystrokes against every expected
// character of the game. The result is clamped to [0, 100].
func GameAccuracy(totalExpectedChars, wrongKeyPresses int) float64 {
	if totalExpectedChars <= 0 {
		return 0
	}
	acc := float64(totalExpectedChars-wrongKeyPresses) / float64(totalExpectedChars) * 100
	return math.Max(0, math.Min(100, acc))
}

// TotalExpectedChars sums the length of every lesson's base command and every
// argument flag in lessons.
func TotalExpectedChars(lessons []model.Lesson) int {
	total := 0
	for _, lesson := range lessons {
		total += utf8.RuneCountInString(lesson.Command)
		for _, arg := range lesson.Arguments {
			total += utf8.RuneCountInString(arg.Flag)
		}
	}
	return total
}

// LessonResult derives result stats for a completed lesson.
func LessonResult(totalChars, correctChars, elapsedSeconds int) model.ResultStats {
	return model.ResultStats{
		WPM:              WordsPerMinute(totalChars, float64(elapsedSeconds)),
		AccuracyPercent:  AccuracyPercent(correctChars, totalChars),
		TimeTakenSeconds: elapsedSeconds,
	}
}
