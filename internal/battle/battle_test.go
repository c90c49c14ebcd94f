package battle

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/verte-zerg/incode/internal/model"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func testLessons() []model.Lesson {
	return []model.Lesson{
		{Title: "Status", Command: "git status", Arguments: []model.Argument{{Flag: "-s", Description: "Short"}}},
		{Title: "Commit", Command: "git commit", Arguments: []model.Argument{{Flag: "-m", Description: "Message"}}},
		{Title: "List", Command: "ls"},
	}
}

func newTestBattle(t *testing.T, clock *fakeClock) *Battle {
	t.Helper()
	b, err := New(testLessons(), Options{Sampler: NewSeededSampler(1), Now: clock.now})
	if err != nil {
		t.Fatalf("new battle: %v", err)
	}
	return b
}

func runCountdown(b *Battle) {
	for b.Phase() == PhaseCountdown {
		b.Tick()
	}
}

func typeCurrent(t *testing.T, b *Battle) {
	t.Helper()
	q, ok := b.Current()
	if !ok {
		t.Fatalf("no active question in phase %s", b.Phase())
	}
	for _, r := range q.Command {
		b.Type(r)
	}
}

func TestCountdownGatesInput(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	b := newTestBattle(t, clock)
	if b.Phase() != PhaseCountdown || b.Countdown() != DefaultCountdown {
		t.Fatalf("unexpected start: phase=%s countdown=%d", b.Phase(), b.Countdown())
	}
	if out := b.Type('g'); !out.Ignored {
		t.Fatalf("typing during countdown must be ignored")
	}
	if b.Skip() {
		t.Fatalf("skip during countdown must be ignored")
	}
	if b.Tick() || b.Tick() {
		t.Fatalf("countdown ended early")
	}
	if !b.Tick() {
		t.Fatalf("expected transition to running on third tick")
	}
	if b.Phase() != PhaseRunning || !b.Stats().StartedAt.Equal(clock.t) {
		t.Fatalf("unexpected running state: %s %v", b.Phase(), b.Stats().StartedAt)
	}
}

func TestSkipThenCompleteTwice(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	b := newTestBattle(t, clock)
	runCountdown(b)

	if !b.Skip() {
		t.Fatalf("skip rejected")
	}
	typeCurrent(t, b)
	clock.advance(4 * time.Second)
	if !b.Advance() {
		t.Fatalf("advance rejected on complete question")
	}
	typeCurrent(t, b)
	clock.advance(3 * time.Second)
	if !b.Advance() {
		t.Fatalf("advance rejected on complete question")
	}

	if b.Phase() != PhaseFinished {
		t.Fatalf("expected finished, got %s", b.Phase())
	}
	res := b.Result()
	if res.CorrectAnswers != 2 || res.SkippedQuestions != 1 || res.TotalQuestions != 3 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if math.Abs(res.AccuracyPercent-66.666) > 0.01 {
		t.Fatalf("unexpected accuracy: %v", res.AccuracyPercent)
	}
	if res.TimeTakenSeconds != 7 {
		t.Fatalf("unexpected time taken: %d", res.TimeTakenSeconds)
	}
}

func TestAdvanceRequiresCompletion(t *testing.T) {
	b := newTestBattle(t, &fakeClock{t: time.Unix(0, 0)})
	runCountdown(b)
	b.Type('x')
	if b.Advance() {
		t.Fatalf("advance accepted on incomplete question")
	}
	if b.Index() != 0 {
		t.Fatalf("question index moved: %d", b.Index())
	}
}

func TestWrongKeysCountedAcrossQuestions(t *testing.T) {
	b := newTestBattle(t, &fakeClock{t: time.Unix(0, 0)})
	runCountdown(b)
	b.Type('#')
	b.Backspace()
	b.Skip()
	b.Type('#')
	if got := b.Stats().WrongKeyPresses; got != 2 {
		t.Fatalf("expected 2 wrong key presses, got %d", got)
	}
}

func TestQuitStopsBattle(t *testing.T) {
	b := newTestBattle(t, &fakeClock{t: time.Unix(0, 0)})
	runCountdown(b)
	b.Quit()
	if b.Phase() != PhaseQuit {
		t.Fatalf("expected quit, got %s", b.Phase())
	}
	if b.Skip() || b.Advance() || b.Tick() {
		t.Fatalf("quit battle accepted events")
	}
}

func TestEmptyPool(t *testing.T) {
	_, err := New(nil, Options{})
	if !errors.Is(err, ErrEmptyQuestionPool) {
		t.Fatalf("expected ErrEmptyQuestionPool, got %v", err)
	}
}

func TestSmallPoolTakesAll(t *testing.T) {
	lessons := []model.Lesson{{Title: "List", Command: "ls"}}
	b, err := New(lessons, Options{Sampler: NewSeededSampler(3)})
	if err != nil {
		t.Fatalf("new battle: %v", err)
	}
	if len(b.Questions()) != 1 {
		t.Fatalf("expected 1 question, got %d", len(b.Questions()))
	}
}
