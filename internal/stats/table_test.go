package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Source", "Read", "WPM"}
	rows := [][]string{
		{"a.md", "12/40", "250"},
		{"stdin", "3/3", "1000"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Source  Read  WPM" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "a.md   12/40  250" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "stdin    3/3 1000" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Source", "N"}, [][]string{{"日本.md", "1"}}, nil)
	if lines[1] != "日本.md 1" {
		t.Fatalf("unexpected wide-rune padding: %q", lines[1])
	}
}
