// Package valueset implements a fixed-width bitset used by the Sudoku
// solver to track, per cell, which digits are still candidates.
package valueset

import (
	"math/bits"
	"strings"
)

// MaxOrder bounds the puzzle orders this package supports: order k implies
// numUnits = k*k digits per cell, and k*k must fit in a uint64 bitset.
const MaxOrder = 8

// ValueSet is a bitset over the digits 1..max, stored with bit (v-1) set
// when digit v is a candidate. The zero value is an empty set over an
// empty universe; call Init before using one.
type ValueSet struct {
	bits uint64
	max  int
}

// New returns a ValueSet over the universe 1..max with no bits set.
func New(max int) ValueSet {
	return ValueSet{max: max}
}

// Init resets v in place to the empty set over the universe 1..max.
func (v *ValueSet) Init(max int) {
	v.bits = 0
	v.max = max
}

// Single returns a ValueSet over 1..max containing only the digit value.
func Single(max, value int) ValueSet {
	return ValueSet{bits: uint64(1) << uint(value-1), max: max}
}

// Max reports the universe size this set was initialized with.
func (v ValueSet) Max() int { return v.max }

// Set adds digit value (1-based) to the candidate set.
func (v *ValueSet) Set(value int) {
	v.bits |= uint64(1) << uint(value-1)
}

// Clear removes digit value (1-based) from the candidate set.
func (v *ValueSet) Clear(value int) {
	v.bits &^= uint64(1) << uint(value-1)
}

// Has reports whether digit value is a candidate.
func (v ValueSet) Has(value int) bool {
	return v.bits&(uint64(1)<<uint(value-1)) != 0
}

// Union returns v ∪ other (the ACS paper's "+" operator).
func (v ValueSet) Union(other ValueSet) ValueSet {
	return ValueSet{bits: v.bits | other.bits, max: v.max}
}

// Diff returns v \ other: digits that are candidates in v but not in other
// (the "-" operator).
func (v ValueSet) Diff(other ValueSet) ValueSet {
	return ValueSet{bits: v.bits &^ other.bits, max: v.max}
}

// Intersect returns v ∩ other.
func (v ValueSet) Intersect(other ValueSet) ValueSet {
	return ValueSet{bits: v.bits & other.bits, max: v.max}
}

// Xor returns the symmetric difference of v and other. Constraint
// propagation uses it to strip a known-excluded subset out of v, since
// XOR-ing with a subset of v behaves exactly like Diff in that case.
func (v ValueSet) Xor(other ValueSet) ValueSet {
	return ValueSet{bits: v.bits ^ other.bits, max: v.max}
}

// Complement returns the candidates missing from v within the universe
// 1..max.
func (v ValueSet) Complement() ValueSet {
	universe := uint64(1)<<uint(v.max) - 1
	return ValueSet{bits: universe &^ v.bits, max: v.max}
}

// Count returns the number of candidate digits still in v.
func (v ValueSet) Count() int {
	return bits.OnesCount64(v.bits)
}

// Fixed reports whether v has exactly one candidate digit.
func (v ValueSet) Fixed() bool {
	return v.bits != 0 && v.bits&(v.bits-1) == 0
}

// Empty reports whether v has no candidate digits.
func (v ValueSet) Empty() bool {
	return v.bits == 0
}

// Equal reports whether v and other carry the same candidate digits over
// the same universe.
func (v ValueSet) Equal(other ValueSet) bool {
	return v.bits == other.bits && v.max == other.max
}

// Index returns the 0-based position of the single set bit. Index is only
// meaningful when Fixed() is true; otherwise it returns the position of the
// lowest set bit, or -1 for an empty set.
func (v ValueSet) Index() int {
	if v.bits == 0 {
		return -1
	}
	return bits.TrailingZeros64(v.bits)
}

// String renders v using the supplied alphabet (alphabet[i] names digit
// i+1). A fixed cell renders as its single character; otherwise the set of
// candidate characters is joined.
func (v ValueSet) String(alphabet string) string {
	if v.Fixed() || v.Count() == 1 {
		return string(alphabet[v.Index()])
	}
	var sb strings.Builder
	for i := 0; i < v.max; i++ {
		if v.bits&(uint64(1)<<uint(i)) != 0 {
			sb.WriteByte(alphabet[i])
		}
	}
	return sb.String()
}
