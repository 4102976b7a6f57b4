// Package puzzleio turns the whitespace-delimited puzzle file form into
// the character form the CLI passes to cp.NewBoard, and builds blank
// puzzle strings.
package puzzleio

import (
	"bufio"
	"fmt"
	"os"

	"github.com/arjunmehta/sudoku-aco/board"
)

// ReadFile parses the puzzle file form: line 1 is the order k, line 2 is
// an ignored integer, and the remaining k⁴ whitespace-separated integers
// are cell values, -1 for empty and 1..k² otherwise.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("puzzleio: could not open file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var order, ignored int
	if _, err := fmt.Fscan(r, &order); err != nil {
		return "", fmt.Errorf("puzzleio: reading order: %w", err)
	}
	if _, err := fmt.Fscan(r, &ignored); err != nil {
		return "", fmt.Errorf("puzzleio: reading second header value: %w", err)
	}

	numCells := order * order * order * order
	alphabet := board.Alphabet(order)

	out := make([]byte, numCells)
	for i := 0; i < numCells; i++ {
		var val int
		if _, err := fmt.Fscan(r, &val); err != nil {
			return "", fmt.Errorf("puzzleio: reading cell %d: %w", i, err)
		}
		if val == -1 {
			out[i] = '.'
			continue
		}
		if val < 1 || val > len(alphabet) {
			return "", fmt.Errorf("puzzleio: cell %d value %d out of range for order %d", i, val, order)
		}
		out[i] = alphabet[val-1]
	}
	return string(out), nil
}

// Blank returns an all-dots puzzle string of the size implied by order.
func Blank(order int) string {
	return board.Blank(order)
}
