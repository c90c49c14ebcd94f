// Package battle runs a timed quiz of randomly sampled commands.
package battle

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/incode/internal/model"
	"github.com/verte-zerg/incode/internal/stats"
	"github.com/verte-zerg/incode/internal/typing"
)

// ErrEmptyQuestionPool is returned when there is nothing to ask.
var ErrEmptyQuestionPool = errors.New("no lessons available for battle")

const (
	DefaultQuestions = 3
	DefaultCountdown = 3
)

// Phase is the battle state.
type Phase int

const (
	PhaseCountdown Phase = iota
	PhaseRunning
	PhaseFinished
	PhaseQuit
)

func (p Phase) String() string {
	switch p {
	case PhaseCountdown:
		return "countdown"
	case PhaseRunning:
		return "running"
	case PhaseFinished:
		return "finished"
	case PhaseQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Options configures a battle.
type Options struct {
	Questions int
	Countdown int
	Sampler   *Sampler
	Now       func() time.Time
}

// Battle is a fixed-length quiz layered on a typing engine.
type Battle struct {
	questions     []model.Question
	index         int
	countdown     int
	phase         Phase
	engine        *typing.Engine
	stats         model.SessionStats
	expectedChars int
	typedChars    int
	now           func() time.Time
	result        model.BattleResult
}

// New samples questions from lessons and starts the countdown.
func New(lessons []model.Lesson, opts Options) (*Battle, error) {
	if opts.Questions <= 0 {
		opts.Questions = DefaultQuestions
	}
	if opts.Countdown <= 0 {
		opts.Countdown = DefaultCountdown
	}
	if opts.Sampler == nil {
		opts.Sampler = NewSampler()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	pool := Pool(lessons)
	if len(pool) == 0 {
		return nil, ErrEmptyQuestionPool
	}
	b := &Battle{
		questions:     opts.Sampler.Sample(pool, opts.Questions),
		countdown:     opts.Countdown,
		engine:        typing.NewEngine(nil),
		expectedChars: stats.TotalExpectedChars(lessons),
		now:           opts.Now,
	}
	return b, nil
}

// Phase returns the current phase.
func (b *Battle) Phase() Phase {
	return b.phase
}

// Countdown returns the remaining countdown seconds.
func (b *Battle) Countdown() int {
	return b.countdown
}

// Questions returns the sampled questions.
func (b *Battle) Questions() []model.Question {
	return b.questions
}

// Index returns the zero-based index of the active question.
func (b *Battle) Index() int {
	return b.index
}

// Current returns the active question. ok is false outside PhaseRunning.
func (b *Battle) Current() (q model.Question, ok bool) {
	if b.phase != PhaseRunning {
		return model.Question{}, false
	}
	return b.questions[b.index], true
}

// State returns the typing state of the active question.
func (b *Battle) State() typing.State {
	return b.engine.State()
}

// Stats returns the running counters.
func (b *Battle) Stats() model.SessionStats {
	s := b.stats
	s.WrongKeyPresses = b.engine.WrongKeyPresses()
	if b.phase == PhaseRunning {
		s.ElapsedSeconds = b.elapsed()
	}
	return s
}

// Result returns the summary. It is only meaningful in PhaseFinished.
func (b *Battle) Result() model.BattleResult {
	return b.result
}

// Tick advances the countdown by one second. It reports whether the battle
// moved to PhaseRunning.
func (b *Battle) Tick() bool {
	if b.phase != PhaseCountdown {
		return false
	}
	if b.countdown > 0 {
		b.countdown--
	}
	if b.countdown == 0 {
		b.start()
		return true
	}
	return false
}

// Type applies a character to the active question.
func (b *Battle) Type(r rune) typing.Output {
	if b.phase != PhaseRunning {
		return typing.Output{Ignored: true}
	}
	return b.engine.Type(r)
}

// Backspace removes the last typed character.
func (b *Battle) Backspace() typing.Output {
	if b.phase != PhaseRunning {
		return typing.Output{Ignored: true}
	}
	return b.engine.Backspace()
}

// Advance confirms a correctly typed question. It is a no-op until the
// question is complete.
func (b *Battle) Advance() bool {
	if b.phase != PhaseRunning || !b.engine.Advance() {
		return false
	}
	b.stats.CorrectAnswers++
	b.typedChars += utf8.RuneCountInString(b.engine.State().Target)
	b.next()
	return true
}

// Skip moves past the active question without checking it.
func (b *Battle) Skip() bool {
	if b.phase != PhaseRunning {
		return false
	}
	b.stats.SkippedQuestions++
	b.next()
	return true
}

// Quit abandons the battle. No result is produced.
func (b *Battle) Quit() {
	if b.phase == PhaseFinished {
		return
	}
	b.phase = PhaseQuit
}

func (b *Battle) start() {
	b.phase = PhaseRunning
	b.stats.StartedAt = b.now()
	b.engine.SetTarget(b.questions[0].Command)
}

func (b *Battle) next() {
	if b.index < len(b.questions)-1 {
		b.index++
		b.engine.SetTarget(b.questions[b.index].Command)
		return
	}
	b.finish()
}

func (b *Battle) finish() {
	elapsed := b.elapsed()
	b.stats.ElapsedSeconds = elapsed
	b.phase = PhaseFinished
	wrong := b.engine.WrongKeyPresses()
	accuracy := 0.0
	if len(b.questions) > 0 {
		accuracy = float64(b.stats.CorrectAnswers) / float64(len(b.questions)) * 100
	}
	b.result = model.BattleResult{
		ResultStats: model.ResultStats{
			WPM:              stats.WordsPerMinute(b.typedChars, float64(elapsed)),
			AccuracyPercent:  accuracy,
			TimeTakenSeconds: elapsed,
		},
		TotalQuestions:    len(b.questions),
		CorrectAnswers:    b.stats.CorrectAnswers,
		SkippedQuestions:  b.stats.SkippedQuestions,
		WrongKeyPresses:   wrong,
		KeystrokeAccuracy: stats.GameAccuracy(b.expectedChars, wrong),
	}
}

func (b *Battle) elapsed() int {
	if b.stats.StartedAt.IsZero() {
		return 0
	}
	d := b.now().Sub(b.stats.StartedAt)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}
