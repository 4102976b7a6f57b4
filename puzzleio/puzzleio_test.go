package puzzleio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadFileParsesHeaderAndCells(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "puzzle.txt")

	var sb strings.Builder
	sb.WriteString("3\n0\n")
	sb.WriteString("5 ")
	for i := 0; i < 80; i++ {
		sb.WriteString("-1 ")
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	puzzle, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(puzzle) != 81 {
		t.Fatalf("len(puzzle) = %d, want 81", len(puzzle))
	}
	if puzzle[0] != '5' {
		t.Fatalf("puzzle[0] = %q, want '5'", puzzle[0])
	}
	for i := 1; i < 81; i++ {
		if puzzle[i] != '.' {
			t.Fatalf("puzzle[%d] = %q, want '.'", i, puzzle[i])
		}
	}
}

func TestReadFileMissingFile(t *testing.T) {
	if _, err := ReadFile("/nonexistent/path/to/puzzle.txt"); err == nil {
		t.Fatal("expected an error opening a missing file")
	}
}

func TestBlankLength(t *testing.T) {
	if got := len(Blank(3)); got != 81 {
		t.Fatalf("len(Blank(3)) = %d, want 81", got)
	}
}
