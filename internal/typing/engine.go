// Package typing tracks a target command being typed and walks a lesson's arguments.
package typing

import (
	"unicode"
	"unicode/utf8"
)

// State is the typed-so-far input against a single target command.
type State struct {
	Target string
	Typed  string
}

// Complete reports whether the typed input equals the target exactly.
func (s State) Complete() bool {
	return s.Target != "" && s.Typed == s.Target
}

// EventKind identifies an input event.
type EventKind int

const (
	EventSetTarget EventKind = iota
	EventChar
	EventBackspace
	EventAdvance
)

// Event is a discrete input applied to a State.
type Event struct {
	Kind    EventKind
	Rune    rune
	Command string
}

// SetTarget returns an event replacing the target command.
func SetTarget(command string) Event {
	return Event{Kind: EventSetTarget, Command: command}
}

// Char returns an event for a single typed character.
func Char(r rune) Event {
	return Event{Kind: EventChar, Rune: r}
}

// Backspace returns a backspace event.
func Backspace() Event {
	return Event{Kind: EventBackspace}
}

// Advance returns an advance-key event.
func Advance() Event {
	return Event{Kind: EventAdvance}
}

// Output describes the side effects of applying an event.
type Output struct {
	// Ignored is set when the event did not change anything.
	Ignored bool
	// Wrong is set when a typed character did not match the target at its position.
	Wrong bool
	// Completed is set when the input just became equal to the target.
	Completed bool
	// Advance is set when the advance key was accepted.
	Advance bool
}

// Step applies ev to s and returns the next state. It is pure.
//
// Characters past the end of the target are dropped, so a full-length wrong
// input must be corrected with backspace.
func Step(s State, ev Event) (State, Output) {
	switch ev.Kind {
	case EventSetTarget:
		return State{Target: ev.Command}, Output{}
	case EventChar:
		if !unicode.IsPrint(ev.Rune) {
			return s, Output{Ignored: true}
		}
		pos := utf8.RuneCountInString(s.Typed)
		target := []rune(s.Target)
		if pos >= len(target) {
			return s, Output{Ignored: true}
		}
		next := State{Target: s.Target, Typed: s.Typed + string(ev.Rune)}
		return next, Output{
			Wrong:     target[pos] != ev.Rune,
			Completed: next.Complete(),
		}
	case EventBackspace:
		if s.Typed == "" {
			return s, Output{Ignored: true}
		}
		_, size := utf8.DecodeLastRuneInString(s.Typed)
		return State{Target: s.Target, Typed: s.Typed[:len(s.Typed)-size]}, Output{}
	case EventAdvance:
		if !s.Complete() {
			return s, Output{Ignored: true}
		}
		return s, Output{Advance: true}
	default:
		return s, Output{Ignored: true}
	}
}

// Engine wraps State with the once-per-session "typing started" signal and
// wrong-keystroke counting.
type Engine struct {
	state      State
	started    bool
	wrongPress int
	onStart    func()
}

// NewEngine returns an engine. onStart, when non-nil, runs on the first
// accepted character of a session.
func NewEngine(onStart func()) *Engine {
	return &Engine{onStart: onStart}
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// Started reports whether a character has been typed since the last Restart.
func (e *Engine) Started() bool {
	return e.started
}

// WrongKeyPresses returns the number of wrong keystrokes since the last Restart.
func (e *Engine) WrongKeyPresses() int {
	return e.wrongPress
}

// Restart begins a new session: the started signal re-arms and counters reset.
// The target is kept.
func (e *Engine) Restart() {
	e.started = false
	e.wrongPress = 0
	e.state.Typed = ""
}

// Apply applies ev and returns its output.
func (e *Engine) Apply(ev Event) Output {
	next, out := Step(e.state, ev)
	e.state = next
	if ev.Kind == EventChar && !out.Ignored {
		if !e.started {
			e.started = true
			if e.onStart != nil {
				e.onStart()
			}
		}
		if out.Wrong {
			e.wrongPress++
		}
	}
	return out
}

// SetTarget resets the typed input and replaces the target.
func (e *Engine) SetTarget(command string) {
	e.Apply(SetTarget(command))
}

// Type applies a character.
func (e *Engine) Type(r rune) Output {
	return e.Apply(Char(r))
}

// Backspace removes the last typed character.
func (e *Engine) Backspace() Output {
	return e.Apply(Backspace())
}

// Advance reports whether the advance key was accepted.
func (e *Engine) Advance() bool {
	return e.Apply(Advance()).Advance
}
