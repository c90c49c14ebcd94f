package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/incode/internal/model"
)

// Sheet names used by spreadsheet catalogs. The first row of each sheet is a
// header naming the columns, matched case-insensitively.
const (
	SheetGames     = "games"
	SheetLessons   = "lessons"
	SheetArguments = "arguments"
)

type sheetRow map[string]string

func decodeXLSXFile(path string) (model.Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return model.Catalog{}, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close for read-only spreadsheet.
			_ = cerr
		}
	}()
	return decodeWorkbook(f)
}

func decodeWorkbook(f *excelize.File) (model.Catalog, error) {
	var cat model.Catalog

	gameRows, err := readSheet(f, SheetGames)
	if err != nil {
		return model.Catalog{}, err
	}
	for _, row := range gameRows {
		cat.Games = append(cat.Games, model.Game{
			ID:          row["id"],
			Title:       row["title"],
			Description: row["description"],
			Icon:        row["icon"],
			Color:       row["color"],
		})
	}

	lessonRows, err := readSheet(f, SheetLessons)
	if err != nil {
		return model.Catalog{}, err
	}
	byID := make(map[string]int, len(lessonRows))
	for i, row := range lessonRows {
		order, err := parseOrder(row["order"])
		if err != nil {
			return model.Catalog{}, fmt.Errorf("%s row %d: %w", SheetLessons, i+2, err)
		}
		lesson := model.Lesson{
			ID:          row["id"],
			GameID:      row["game_id"],
			Title:       row["title"],
			Command:     row["command"],
			Description: row["description"],
			Order:       order,
		}
		if lesson.ID != "" {
			byID[lesson.ID] = len(cat.Lessons)
		}
		cat.Lessons = append(cat.Lessons, lesson)
	}

	argRows, err := readSheet(f, SheetArguments)
	if err != nil {
		return model.Catalog{}, err
	}
	for i, row := range argRows {
		idx, ok := byID[row["lesson_id"]]
		if !ok {
			return model.Catalog{}, fmt.Errorf("%s row %d: unknown lesson %q", SheetArguments, i+2, row["lesson_id"])
		}
		order, err := parseOrder(row["order"])
		if err != nil {
			return model.Catalog{}, fmt.Errorf("%s row %d: %w", SheetArguments, i+2, err)
		}
		cat.Lessons[idx].Arguments = append(cat.Lessons[idx].Arguments, model.Argument{
			ID:          row["id"],
			LessonID:    row["lesson_id"],
			Flag:        row["flag"],
			Description: row["description"],
			Order:       order,
		})
	}
	return cat, nil
}

func readSheet(f *excelize.File, name string) ([]sheetRow, error) {
	if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
		if name == SheetArguments {
			return nil, nil
		}
		return nil, fmt.Errorf("spreadsheet has no %q sheet", name)
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q sheet: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(cell))
	}
	out := make([]sheetRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := sheetRow{}
		empty := true
		for i, cell := range cells {
			if i >= len(header) || header[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell != "" {
				empty = false
			}
			row[header[i]] = cell
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out, nil
}

func parseOrder(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid order %q", value)
	}
	return n, nil
}
