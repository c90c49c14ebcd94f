package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/incode/internal/catalog"
	"github.com/verte-zerg/incode/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "incode.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func testCatalog() model.Catalog {
	return model.Catalog{
		Games: []model.Game{
			{ID: "2", Title: "Docker", Icon: "Container", Color: "blue"},
			{ID: "1", Title: "Git", Icon: "GitBranch", Color: "yellow"},
		},
		Lessons: []model.Lesson{
			{ID: "commit", GameID: "1", Title: "Commit", Command: "git commit", Order: 2, Arguments: []model.Argument{
				{ID: "amend", Flag: "--amend", Order: 2},
				{ID: "msg", Flag: "-m", Order: 1},
			}},
			{ID: "status", GameID: "1", Title: "Status", Command: "git status", Order: 1},
		},
	}
}

func TestImportAndLoadGame(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	res, err := st.ImportCatalog(ctx, testCatalog())
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Games != 2 || res.Lessons != 2 || res.Arguments != 2 {
		t.Fatalf("unexpected import result: %+v", res)
	}

	game, lessons, err := st.LoadGame(ctx, "1")
	if err != nil {
		t.Fatalf("load game: %v", err)
	}
	if game.Title != "Git" {
		t.Fatalf("unexpected game: %+v", game)
	}
	if len(lessons) != 2 || lessons[0].ID != "status" || lessons[1].ID != "commit" {
		t.Fatalf("unexpected lesson order: %+v", lessons)
	}
	args := lessons[1].Arguments
	if len(args) != 2 || args[0].Flag != "-m" || args[1].Flag != "--amend" {
		t.Fatalf("unexpected argument order: %+v", args)
	}
}

func TestImportReplacesArguments(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	cat := testCatalog()
	if _, err := st.ImportCatalog(ctx, cat); err != nil {
		t.Fatalf("import: %v", err)
	}
	cat.Lessons[0].Arguments = cat.Lessons[0].Arguments[:1]
	cat.Lessons[0].Title = "Commit changes"
	if _, err := st.ImportCatalog(ctx, cat); err != nil {
		t.Fatalf("reimport: %v", err)
	}
	_, lessons, err := st.LoadGame(ctx, "1")
	if err != nil {
		t.Fatalf("load game: %v", err)
	}
	if lessons[1].Title != "Commit changes" || len(lessons[1].Arguments) != 1 {
		t.Fatalf("unexpected lesson after reimport: %+v", lessons[1])
	}
}

func TestListGames(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if n, err := st.CountGames(ctx); err != nil || n != 0 {
		t.Fatalf("expected empty store, got %d (%v)", n, err)
	}
	if _, err := st.ImportCatalog(ctx, testCatalog()); err != nil {
		t.Fatalf("import: %v", err)
	}
	games, err := st.ListGames(ctx)
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(games) != 2 || games[0].Title != "Docker" || games[1].Lessons != 2 {
		t.Fatalf("unexpected games: %+v", games)
	}
}

func TestLoadGameNotFound(t *testing.T) {
	st := openTestStore(t)
	_, _, err := st.LoadGame(context.Background(), "missing")
	if !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestReimportWithoutIDsKeepsLessonCount(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "lessons.toml")
	data := `
[[games]]
id = "g"
title = "Shell"

[[lessons]]
game_id = "g"
title = "List"
command = "ls"

[[lessons.arguments]]
flag = "-la"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	for i := 0; i < 2; i++ {
		cat, err := catalog.LoadFile(path)
		if err != nil {
			t.Fatalf("load catalog: %v", err)
		}
		if _, err := st.ImportCatalog(ctx, cat); err != nil {
			t.Fatalf("import %d: %v", i, err)
		}
	}
	_, lessons, err := st.LoadGame(ctx, "g")
	if err != nil {
		t.Fatalf("load game: %v", err)
	}
	if len(lessons) != 1 {
		t.Fatalf("expected 1 lesson after importing twice, got %d", len(lessons))
	}
	if len(lessons[0].Arguments) != 1 {
		t.Fatalf("expected 1 argument after importing twice, got %d", len(lessons[0].Arguments))
	}
}
