// Package sparse provides a sparse set of small integer ids.
//
// A sparse set supports O(1) insertion, membership testing and clearing while
// keeping a dense list of its members in insertion order. The automaton uses
// it as the visited set of breadth-first traversals over state ids, where the
// insertion order doubles as the traversal order.
package sparse

// Set is a set of uint32 values that supports O(1) operations.
// It maintains both a sparse array (for membership testing) and a dense array
// (for iteration). The sparse array maps values to indices in the dense array.
//
// Unlike a fixed-universe sparse set, Set grows when a value beyond its
// current capacity is inserted.
type Set struct {
	sparse []uint32 // Maps value -> index in dense
	dense  []uint32 // Contains the actual values, in insertion order
}

// New creates a new sparse set sized for values below capacity.
func New(capacity uint32) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds a value to the set and reports whether it was absent.
func (s *Set) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	if int(value) >= len(s.sparse) {
		s.grow(value)
	}

	//nolint:gosec // G115: len(dense) never exceeds len(sparse), which is indexed by uint32
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains returns true if the value is in the set
func (s *Set) Contains(value uint32) bool {
	if int(value) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Clear removes all elements from the set in O(1) time
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of elements in the set
func (s *Set) Len() int {
	return len(s.dense)
}

// IsEmpty returns true if the set contains no elements
func (s *Set) IsEmpty() bool {
	return len(s.dense) == 0
}

// Values returns all values in insertion order.
// The returned slice is valid until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense
}

func (s *Set) grow(value uint32) {
	n := 2 * len(s.sparse)
	if n <= int(value) {
		n = int(value) + 1
	}
	sparse := make([]uint32, n)
	copy(sparse, s.sparse)
	s.sparse = sparse
}
