package stats

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/incode/internal/model"
)

const terminalWidthBackup = 80

// FormatDuration renders seconds as m:ss.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// RenderLessonResult prints the result of a completed lesson.
func RenderLessonResult(w io.Writer, title string, res model.ResultStats) error {
	if _, err := fmt.Fprintf(w, "Lesson complete: %s\n", title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "WPM: %.0f\n", res.WPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Accuracy: %.1f%%\n", res.AccuracyPercent); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Time: %s\n", FormatDuration(res.TimeTakenSeconds))
	return err
}

// RenderBattleResult prints a battle summary.
func RenderBattleResult(w io.Writer, res model.BattleResult) error {
	lines := []string{
		"Battle Complete!",
		fmt.Sprintf("Time: %ds", res.TimeTakenSeconds),
		fmt.Sprintf("Accuracy: %.1f%%", res.AccuracyPercent),
		fmt.Sprintf("Correct Answers: %d/%d", res.CorrectAnswers, res.TotalQuestions),
		fmt.Sprintf("Skipped Questions: %d", res.SkippedQuestions),
		fmt.Sprintf("Wrong Key Presses: %d", res.WrongKeyPresses),
		fmt.Sprintf("WPM: %.0f", res.WPM),
		fmt.Sprintf("Keystroke Accuracy: %.1f%%", res.KeystrokeAccuracy),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderGames prints the game list as a table fitted to totalWidth. A
// non-positive totalWidth uses the terminal width of w when it is a terminal.
func RenderGames(w io.Writer, games []model.GameSummary, totalWidth int) error {
	if len(games) == 0 {
		_, err := fmt.Fprintln(w, "No games found. Import one with: incode import <file>")
		return err
	}
	if totalWidth <= 0 {
		totalWidth = writerWidth(w)
	}
	headers := []string{"ID", "Title", "Lessons", "Description"}
	rows := make([][]string, 0, len(games))
	for _, g := range games {
		rows = append(rows, []string{g.ID, g.Title, fmt.Sprintf("%d", g.Lessons), g.Description})
	}
	lines := formatTable(headers, rows, map[int]bool{2: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, runewidth.Truncate(line, totalWidth, "…")); err != nil {
			return err
		}
	}
	return nil
}

func writerWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
