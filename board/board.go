// Package board implements the N×N Sudoku grid: a flat array of
// valueset.ValueSet candidate sets plus the fixed/infeasible counters and
// geometric helpers the rest of the solver needs.
package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arjunmehta/sudoku-aco/valueset"
)

// supportedLengths maps a puzzle character-string length to its order.
var supportedLengths = map[int]int{
	81:   3,
	256:  4,
	625:  5,
	1296: 6,
	2401: 7,
	4096: 8,
}

// Board is an order-k Sudoku grid (k*k*k*k cells, k*k candidate digits per
// cell). The zero value is not usable; build one with New, Parse, or Clone.
type Board struct {
	order          int
	numUnits       int
	numCells       int
	cells          []valueset.ValueSet
	numFixedCells  int
	numInfeasible  int
}

// New returns a board of the given order with every cell holding the full
// candidate universe 1..numUnits. This is the "blank puzzle" state.
func New(order int) *Board {
	b := &Board{order: order}
	b.numUnits = order * order
	b.numCells = b.numUnits * b.numUnits
	b.cells = make([]valueset.ValueSet, b.numCells)
	for i := range b.cells {
		b.cells[i] = valueset.New(b.numUnits).Complement()
	}
	return b
}

// Alphabet returns the digit-to-character mapping for a given order,
// matching the original puzzle format: 1-9 for order 3, 0-9/a-f for order
// 4, and a.. for order >= 5. Higher orders (6-8) run the same byte
// arithmetic past 'z'; that mirrors the reference implementation rather
// than inventing a nicer encoding.
func Alphabet(order int) string {
	numUnits := order * order
	switch order {
	case 3:
		return "123456789"
	case 4:
		return "0123456789abcdef"
	default:
		b := make([]byte, numUnits)
		for i := range b {
			b[i] = byte('a' + i)
		}
		return string(b)
	}
}

// OrderForLength returns the puzzle order implied by a character-form
// puzzle string length, and whether that length is supported.
func OrderForLength(length int) (order int, ok bool) {
	order, ok = supportedLengths[length]
	return order, ok
}

// Parse builds a raw board from a character-form puzzle string without
// running constraint propagation: '.' leaves a cell at the full candidate
// universe, any other character fixes the cell per Alphabet(order). Use
// the cp package's NewBoard to additionally run the initial propagation
// pass the spec requires.
func Parse(puzzle string) (*Board, error) {
	order, ok := OrderForLength(len(puzzle))
	if !ok {
		return nil, fmt.Errorf("board: invalid puzzle length %d", len(puzzle))
	}

	b := New(order)
	alphabet := Alphabet(order)
	index := make(map[byte]int, len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		index[alphabet[i]] = i
	}

	for i := 0; i < b.numCells; i++ {
		c := puzzle[i]
		if c == '.' {
			continue
		}
		pos, known := index[byte(c)]
		if !known {
			return nil, fmt.Errorf("board: character %q not valid for order %d", c, order)
		}
		b.cells[i] = valueset.Single(b.numUnits, pos+1)
		b.numFixedCells++
	}
	return b, nil
}

// Blank returns an all-'.' puzzle string of the size implied by order.
func Blank(order int) string {
	return strings.Repeat(".", order*order*order*order)
}

// Order returns k.
func (b *Board) Order() int { return b.order }

// NumUnits returns k*k: the number of rows, columns, boxes, and candidate
// digits per cell.
func (b *Board) NumUnits() int { return b.numUnits }

// CellCount returns k^4: the total number of cells.
func (b *Board) CellCount() int { return b.numCells }

// FixedCellCount returns the number of cells with exactly one candidate.
func (b *Board) FixedCellCount() int { return b.numFixedCells }

// InfeasibleCellCount returns the number of cells with zero candidates.
func (b *Board) InfeasibleCellCount() int { return b.numInfeasible }

// Cell returns the candidate set at cell index i.
func (b *Board) Cell(i int) valueset.ValueSet { return b.cells[i] }

// SetDirect overwrites cell i's candidate set without touching the fixed
// or infeasible counters. Exported for the cp package, which owns counter
// maintenance during propagation.
func (b *Board) SetDirect(i int, v valueset.ValueSet) { b.cells[i] = v }

// IncrementFixedCells bumps the fixed-cell counter. Exported for cp.
func (b *Board) IncrementFixedCells() { b.numFixedCells++ }

// DecrementFixedCells unwinds a previous IncrementFixedCells call. Exported
// for the backtracking solver, which assigns and retracts cells directly
// without running propagation.
func (b *Board) DecrementFixedCells() { b.numFixedCells-- }

// IncrementInfeasible bumps the infeasible-cell counter. Exported for cp.
func (b *Board) IncrementInfeasible() { b.numInfeasible++ }

// RowCell returns the index of the i-th cell in row r.
func (b *Board) RowCell(r, i int) int { return r*b.numUnits + i }

// ColCell returns the index of the i-th cell in column c.
func (b *Board) ColCell(c, i int) int { return i*b.numUnits + c }

// BoxCell returns the index of the i-th cell in box bx.
func (b *Board) BoxCell(bx, i int) int {
	k := b.order
	boxCol := bx % k
	boxRow := bx / k
	topCorner := boxCol*k + boxRow*k*k*k
	return topCorner + (i%k) + (i/k)*k*k
}

// RowForCell returns the row index containing cell i.
func (b *Board) RowForCell(i int) int { return i / b.numUnits }

// ColForCell returns the column index containing cell i.
func (b *Board) ColForCell(i int) int { return i % b.numUnits }

// BoxForCell returns the box index containing cell i.
func (b *Board) BoxForCell(i int) int {
	k := b.order
	return k*(i/(k*k*k)) + ((i % (k * k)) / k)
}

// Clone returns a deep copy of b, used per-ant and for cross-colony
// solution handoff.
func (b *Board) Clone() *Board {
	clone := &Board{
		order:         b.order,
		numUnits:      b.numUnits,
		numCells:      b.numCells,
		cells:         make([]valueset.ValueSet, b.numCells),
		numFixedCells: b.numFixedCells,
		numInfeasible: b.numInfeasible,
	}
	copy(clone.cells, b.cells)
	return clone
}

// CopyFrom overwrites b in place with a deep copy of other, reusing b's
// existing backing array. This mirrors the teacher's pattern of reusing
// allocations across iterations rather than allocating a fresh Board.
func (b *Board) CopyFrom(other *Board) {
	b.order = other.order
	b.numUnits = other.numUnits
	b.numCells = other.numCells
	if len(b.cells) != b.numCells {
		b.cells = make([]valueset.ValueSet, b.numCells)
	}
	copy(b.cells, other.cells)
	b.numFixedCells = other.numFixedCells
	b.numInfeasible = other.numInfeasible
}

// AsString renders the board as a display grid: each cell right-aligned in
// a fixed-width column, '|' between boxes, a dashed line between bands, one
// row per line. The result is not a parseable puzzle string. useNumbers selects
// decimal digit groups (1-based) over the order's native alphabet;
// showUnfixed renders the full candidate set of unfixed cells instead of
// '.'. showUnfixed forces useNumbers off, matching the reference tool.
func (b *Board) AsString(useNumbers, showUnfixed bool) string {
	if showUnfixed {
		useNumbers = false
	}
	alphabet := Alphabet(b.order)

	cellStrings := make([]string, b.numCells)
	maxLen := 0
	for i := 0; i < b.numCells; i++ {
		var s string
		if !useNumbers {
			if !showUnfixed && !b.cells[i].Fixed() {
				s = "."
			} else {
				s = b.cells[i].String(alphabet)
			}
		} else {
			s = strconv.Itoa(b.cells[i].Index() + 1)
		}
		cellStrings[i] = s
		if len(s) > maxLen {
			maxLen = len(s)
		}
	}

	pitch := maxLen + 1
	k := b.order
	var sb strings.Builder
	for i := 0; i < b.numCells; i++ {
		fmt.Fprintf(&sb, "%*s ", pitch, cellStrings[i])
		switch {
		case i%b.numUnits == b.numUnits-1:
			if i != b.numCells-1 {
				sb.WriteByte('\n')
			}
		case i%k == k-1:
			sb.WriteByte('|')
		}
		if i%(b.numUnits*k) == b.numUnits*k-1 && i != b.numCells-1 {
			for j := 0; j < k; j++ {
				for n := 0; n < k*(pitch+1); n++ {
					sb.WriteByte('-')
				}
				if j != k-1 {
					sb.WriteByte('+')
				}
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// NumberString renders the board using 1-based decimal digit groups, the
// form used in JSON output and the "success/error" compact text output.
func (b *Board) NumberString() string { return b.AsString(true, false) }

// CheckSolution reports whether candidate is a valid, complete solution to
// b: every cell is fixed, every row/column/box is a permutation of
// 1..numUnits, and every cell that was fixed in b (the original puzzle)
// agrees with candidate.
func (b *Board) CheckSolution(candidate *Board) bool {
	if candidate.CellCount() != b.CellCount() {
		return false
	}

	isSolution := true
	for i := 0; i < candidate.CellCount(); i++ {
		if !candidate.Cell(i).Fixed() {
			isSolution = false
		}
	}

	for i := 0; i < b.numUnits; i++ {
		row := valueset.New(b.numUnits)
		col := valueset.New(b.numUnits)
		box := valueset.New(b.numUnits)
		for j := 0; j < b.numUnits; j++ {
			row = row.Union(candidate.Cell(b.RowCell(i, j)))
			col = col.Union(candidate.Cell(b.ColCell(i, j)))
			box = box.Union(candidate.Cell(b.BoxCell(i, j)))
		}
		if row.Count() != b.numUnits || col.Count() != b.numUnits || box.Count() != b.numUnits {
			isSolution = false
		}
	}

	isConsistent := true
	for i := 0; i < b.CellCount(); i++ {
		if b.Cell(i).Fixed() && b.Cell(i).Index() != candidate.Cell(i).Index() {
			isConsistent = false
		}
	}

	return isSolution && isConsistent
}
