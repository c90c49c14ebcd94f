// Package store handles SQLite persistence of the lesson catalog.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"

	"github.com/verte-zerg/incode/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrGameNotFound is returned when a game id does not exist.
var ErrGameNotFound = errors.New("game not found")

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// Store wraps SQLite access for games, lessons and arguments.
type Store struct {
	db *sql.DB
}

// ImportResult counts the rows written by ImportCatalog.
type ImportResult struct {
	Games     int
	Lessons   int
	Arguments int
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			icon TEXT NOT NULL,
			color TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS lessons (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL REFERENCES games(id),
			title TEXT NOT NULL,
			command TEXT NOT NULL,
			description TEXT NOT NULL,
			sort_order INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS arguments (
			id TEXT PRIMARY KEY,
			lesson_id TEXT NOT NULL REFERENCES lessons(id),
			flag TEXT NOT NULL,
			description TEXT NOT NULL,
			sort_order INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_lessons_game_id ON lessons(game_id, sort_order);`,
		`CREATE INDEX IF NOT EXISTS idx_arguments_lesson_id ON arguments(lesson_id, sort_order);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// CountGames returns the number of stored games.
func (s *Store) CountGames(ctx context.Context) (int, error) {
	query, args, err := sqlBuilder.Select("COUNT(*)").From("games").ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ListGames returns all games ordered by title with their lesson counts.
func (s *Store) ListGames(ctx context.Context) ([]model.GameSummary, error) {
	query, args, err := sqlBuilder.
		Select("g.id", "g.title", "g.description", "g.icon", "g.color", "COUNT(l.id)").
		From("games g").
		LeftJoin("lessons l ON l.game_id = g.id").
		GroupBy("g.id").
		OrderBy("g.title ASC", "g.id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var games []model.GameSummary
	for rows.Next() {
		var g model.GameSummary
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &g.Icon, &g.Color, &g.Lessons); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

// LoadGame returns a game and its lessons, each ordered by sort order with
// arguments attached.
func (s *Store) LoadGame(ctx context.Context, id string) (model.Game, []model.Lesson, error) {
	query, args, err := sqlBuilder.
		Select("id", "title", "description", "icon", "color").
		From("games").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Game{}, nil, err
	}
	var g model.Game
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&g.ID, &g.Title, &g.Description, &g.Icon, &g.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Game{}, nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	if err != nil {
		return model.Game{}, nil, err
	}

	lessons, err := s.listLessons(ctx, id)
	if err != nil {
		return model.Game{}, nil, err
	}
	if err := s.attachArguments(ctx, lessons); err != nil {
		return model.Game{}, nil, err
	}
	return g, lessons, nil
}

func (s *Store) listLessons(ctx context.Context, gameID string) ([]model.Lesson, error) {
	query, args, err := sqlBuilder.
		Select("id", "game_id", "title", "command", "description", "sort_order").
		From("lessons").
		Where(squirrel.Eq{"game_id": gameID}).
		OrderBy("sort_order ASC", "rowid ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var lessons []model.Lesson
	for rows.Next() {
		var l model.Lesson
		if err := rows.Scan(&l.ID, &l.GameID, &l.Title, &l.Command, &l.Description, &l.Order); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lessons, nil
}

func (s *Store) attachArguments(ctx context.Context, lessons []model.Lesson) error {
	if len(lessons) == 0 {
		return nil
	}
	ids := make([]string, len(lessons))
	index := make(map[string]int, len(lessons))
	for i, l := range lessons {
		ids[i] = l.ID
		index[l.ID] = i
	}
	query, args, err := sqlBuilder.
		Select("id", "lesson_id", "flag", "description", "sort_order").
		From("arguments").
		Where(squirrel.Eq{"lesson_id": ids}).
		OrderBy("sort_order ASC", "rowid ASC").
		ToSql()
	if err != nil {
		return err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	for rows.Next() {
		var a model.Argument
		if err := rows.Scan(&a.ID, &a.LessonID, &a.Flag, &a.Description, &a.Order); err != nil {
			return err
		}
		i := index[a.LessonID]
		lessons[i].Arguments = append(lessons[i].Arguments, a)
	}
	return rows.Err()
}

// ImportCatalog upserts games and lessons. A lesson's arguments are replaced
// by the imported set.
func (s *Store) ImportCatalog(ctx context.Context, cat model.Catalog) (res ImportResult, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportResult{}, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	for _, g := range cat.Games {
		if err = execBuilder(ctx, tx, sqlBuilder.
			Insert("games").
			Columns("id", "title", "description", "icon", "color").
			Values(g.ID, g.Title, g.Description, g.Icon, g.Color).
			Suffix(`ON CONFLICT(id) DO UPDATE SET title = excluded.title, description = excluded.description,
				icon = excluded.icon, color = excluded.color`)); err != nil {
			return ImportResult{}, fmt.Errorf("failed to import game %s: %w", g.ID, err)
		}
		res.Games++
	}

	for _, l := range cat.Lessons {
		if err = execBuilder(ctx, tx, sqlBuilder.
			Insert("lessons").
			Columns("id", "game_id", "title", "command", "description", "sort_order").
			Values(l.ID, l.GameID, l.Title, l.Command, l.Description, l.Order).
			Suffix(`ON CONFLICT(id) DO UPDATE SET game_id = excluded.game_id, title = excluded.title,
				command = excluded.command, description = excluded.description, sort_order = excluded.sort_order`)); err != nil {
			return ImportResult{}, fmt.Errorf("failed to import lesson %s: %w", l.ID, err)
		}
		res.Lessons++

		if err = execBuilder(ctx, tx, sqlBuilder.Delete("arguments").Where(squirrel.Eq{"lesson_id": l.ID})); err != nil {
			return ImportResult{}, fmt.Errorf("failed to clear arguments of %s: %w", l.ID, err)
		}
		for _, a := range l.Arguments {
			if err = execBuilder(ctx, tx, sqlBuilder.
				Insert("arguments").
				Columns("id", "lesson_id", "flag", "description", "sort_order").
				Values(a.ID, l.ID, a.Flag, a.Description, a.Order).
				Suffix(`ON CONFLICT(id) DO UPDATE SET lesson_id = excluded.lesson_id, flag = excluded.flag,
					description = excluded.description, sort_order = excluded.sort_order`)); err != nil {
				return ImportResult{}, fmt.Errorf("failed to import argument %s: %w", a.ID, err)
			}
			res.Arguments++
		}
	}

	if err = tx.Commit(); err != nil {
		return ImportResult{}, err
	}
	return res, nil
}

func execBuilder(ctx context.Context, tx *sql.Tx, b squirrel.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}
