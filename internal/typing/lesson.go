package typing

import (
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/incode/internal/model"
)

// Target is the active command text and the prompt shown above it.
type Target struct {
	Command     string
	Description string
}

// LessonResult is reported when the last target of a lesson is advanced past.
type LessonResult struct {
	TotalChars   int
	CorrectChars int
}

// Lesson walks a lesson: the base command first, then one target per argument.
type Lesson struct {
	lesson   model.Lesson
	argIndex int
	engine   *Engine

	totalChars   int
	correctChars int
	counted      bool
}

// NewLesson starts lesson traversal on the base command using engine.
func NewLesson(lesson model.Lesson, engine *Engine) *Lesson {
	l := &Lesson{lesson: lesson, engine: engine}
	l.engine.SetTarget(l.Target().Command)
	return l
}

// Lesson returns the lesson being traversed.
func (l *Lesson) Lesson() model.Lesson {
	return l.lesson
}

// ArgumentIndex is the number of arguments entered so far. Zero means the
// base command is active; k means arguments[k-1] is active.
func (l *Lesson) ArgumentIndex() int {
	return l.argIndex
}

// Totals returns the characters accumulated so far in this lesson.
func (l *Lesson) Totals() LessonResult {
	return LessonResult{TotalChars: l.totalChars, CorrectChars: l.correctChars}
}

// Target returns the active command for the current argument index.
func (l *Lesson) Target() Target {
	return TargetAt(l.lesson, l.argIndex)
}

// TargetAt computes the target for lesson at argument index idx.
func TargetAt(lesson model.Lesson, idx int) Target {
	if idx > 0 && idx <= len(lesson.Arguments) {
		arg := lesson.Arguments[idx-1]
		return Target{
			Command:     ArgumentCommand(lesson.Command, arg.Flag),
			Description: arg.Description,
		}
	}
	return Target{Command: lesson.Command, Description: lesson.Title}
}

// ArgumentCommand joins the first whitespace token of command with flag.
func ArgumentCommand(command, flag string) string {
	fields := strings.Fields(command)
	head := ""
	if len(fields) > 0 {
		head = fields[0]
	}
	return head + " " + flag
}

// SelectArgument jumps to arguments[i]. Out-of-range indexes are ignored.
func (l *Lesson) SelectArgument(i int) {
	if i < 0 || i >= len(l.lesson.Arguments) {
		return
	}
	l.argIndex = i + 1
	l.retarget()
}

// SelectBase jumps back to the lesson's base command.
func (l *Lesson) SelectBase() {
	if l.argIndex == 0 {
		return
	}
	l.argIndex = 0
	l.retarget()
}

// SelectPrevious moves one target back: from arguments[0] to the base command,
// otherwise to the previous argument.
func (l *Lesson) SelectPrevious() {
	if l.argIndex <= 1 {
		l.SelectBase()
		return
	}
	l.SelectArgument(l.argIndex - 2)
}

// Type applies a character and accumulates the target once it is complete.
func (l *Lesson) Type(r rune) Output {
	out := l.engine.Type(r)
	if out.Completed {
		l.accumulate()
	}
	return out
}

// Backspace removes the last typed character.
func (l *Lesson) Backspace() Output {
	return l.engine.Backspace()
}

// Advance moves to the next argument. It returns done=true with the lesson
// totals when advancing past the last target. Advance is a no-op until the
// active target is typed exactly.
func (l *Lesson) Advance() (result LessonResult, done bool) {
	if !l.engine.Advance() {
		return LessonResult{}, false
	}
	if l.argIndex < len(l.lesson.Arguments) {
		l.argIndex++
		l.retarget()
		return LessonResult{}, false
	}
	return l.Totals(), true
}

func (l *Lesson) accumulate() {
	if l.counted {
		return
	}
	state := l.engine.State()
	l.totalChars += utf8.RuneCountInString(state.Target)
	l.correctChars += CorrectCount(state)
	l.counted = true
}

func (l *Lesson) retarget() {
	l.engine.SetTarget(l.Target().Command)
	l.counted = false
}
