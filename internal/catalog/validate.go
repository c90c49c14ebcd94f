// Package catalog loads, validates and orders game content.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/verte-zerg/incode/internal/model"
)

// ErrMissingTarget is returned when a lesson command or argument flag is empty.
var ErrMissingTarget = errors.New("missing target command")

// SortLessons orders lessons and each lesson's arguments by Order, ascending.
// Ties keep their input order.
func SortLessons(lessons []model.Lesson) {
	sort.SliceStable(lessons, func(i, j int) bool {
		return lessons[i].Order < lessons[j].Order
	})
	for i := range lessons {
		args := lessons[i].Arguments
		sort.SliceStable(args, func(a, b int) bool {
			return args[a].Order < args[b].Order
		})
	}
}

// ValidateLessons rejects lessons that would produce an empty target.
func ValidateLessons(lessons []model.Lesson) error {
	for _, lesson := range lessons {
		if strings.TrimSpace(lesson.Command) == "" {
			return fmt.Errorf("lesson %q (%s): %w", lesson.Title, lesson.ID, ErrMissingTarget)
		}
		for _, arg := range lesson.Arguments {
			if strings.TrimSpace(arg.Flag) == "" {
				return fmt.Errorf("lesson %q argument %s: %w", lesson.Title, arg.ID, ErrMissingTarget)
			}
		}
	}
	return nil
}

// Prepare sorts and validates lessons for a session.
func Prepare(lessons []model.Lesson) error {
	SortLessons(lessons)
	return ValidateLessons(lessons)
}

// Normalize fills missing ids and parent references and validates the catalog.
func Normalize(cat *model.Catalog) error {
	gameIDs := make(map[string]struct{}, len(cat.Games))
	for i := range cat.Games {
		g := &cat.Games[i]
		g.ID = strings.TrimSpace(g.ID)
		if g.ID == "" {
			return fmt.Errorf("game %q has no id", g.Title)
		}
		if strings.TrimSpace(g.Title) == "" {
			return fmt.Errorf("game %s has no title", g.ID)
		}
		gameIDs[g.ID] = struct{}{}
	}
	for i := range cat.Lessons {
		lesson := &cat.Lessons[i]
		if _, ok := gameIDs[lesson.GameID]; !ok {
			return fmt.Errorf("lesson %q references unknown game %q", lesson.Title, lesson.GameID)
		}
		if lesson.ID == "" {
			lesson.ID = derivedID(lesson.GameID, lesson.Title, lesson.Command)
		}
		for j := range lesson.Arguments {
			arg := &lesson.Arguments[j]
			if arg.ID == "" {
				arg.ID = derivedID(lesson.ID, strconv.Itoa(j), arg.Flag)
			}
			arg.LessonID = lesson.ID
		}
	}
	return ValidateLessons(cat.Lessons)
}

var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/verte-zerg/incode"))

// derivedID returns a name-based UUID so that re-importing an unchanged
// catalog hits the same rows.
func derivedID(parts ...string) string {
	return uuid.NewSHA1(idNamespace, []byte(strings.Join(parts, "\x00"))).String()
}
