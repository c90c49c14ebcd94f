// Package model defines shared data structures.
package model

import "time"

// Config defines practice and battle settings.
type Config struct {
	GameID          string
	BattleQuestions int
	BattleCountdown int
}

// Game is a named collection of lessons.
type Game struct {
	ID          string `toml:"id"`
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Icon        string `toml:"icon"`
	Color       string `toml:"color"`
}

// Lesson is a base command to learn plus its ordered arguments.
type Lesson struct {
	ID          string     `toml:"id"`
	GameID      string     `toml:"game_id"`
	Title       string     `toml:"title"`
	Command     string     `toml:"command"`
	Description string     `toml:"description"`
	Order       int        `toml:"order"`
	Arguments   []Argument `toml:"arguments"`
}

// Argument is a flag variant of a lesson's base command.
type Argument struct {
	ID          string `toml:"id"`
	LessonID    string `toml:"lesson_id"`
	Flag        string `toml:"flag"`
	Description string `toml:"description"`
	Order       int    `toml:"order"`
}

// GameSummary is a game with its lesson count, used for listings.
type GameSummary struct {
	Game
	Lessons int
}

// Catalog is a set of games and their lessons, as imported or seeded.
type Catalog struct {
	Games   []Game   `toml:"games"`
	Lessons []Lesson `toml:"lessons"`
}

// Question is a single battle prompt.
type Question struct {
	Command     string
	Description string
}

// SessionStats captures the counters of a running lesson board or battle.
type SessionStats struct {
	WrongKeyPresses  int
	CorrectAnswers   int
	SkippedQuestions int
	StartedAt        time.Time
	ElapsedSeconds   int
}

// ResultStats is reported at lesson and battle boundaries.
type ResultStats struct {
	WPM              float64
	AccuracyPercent  float64
	TimeTakenSeconds int
}

// BattleResult summarizes a finished battle.
type BattleResult struct {
	ResultStats
	TotalQuestions    int
	CorrectAnswers    int
	SkippedQuestions  int
	WrongKeyPresses   int
	KeystrokeAccuracy float64
}
