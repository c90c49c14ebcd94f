package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"ID", "Title", "Lessons"}
	rows := [][]string{
		{"1", "Git", "12"},
		{"docker", "Docker", "3"},
	}
	rightAlign := map[int]bool{2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "ID     Title  Lessons" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "1      Git         12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "docker Docker       3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}
