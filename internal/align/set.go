package align

import "sort"

// IndexSet is a sorted set of word indices.
type IndexSet struct {
	items []int
}

// NewIndexSet builds a set from the given indices.
func NewIndexSet(indices ...int) IndexSet {
	var s IndexSet
	for _, i := range indices {
		s.Add(i)
	}
	return s
}

// Len returns the number of indices in the set.
func (s IndexSet) Len() int { return len(s.items) }

// Empty reports whether the set has no indices.
func (s IndexSet) Empty() bool { return len(s.items) == 0 }

// Contains reports whether i is in the set.
func (s IndexSet) Contains(i int) bool {
	pos := sort.SearchInts(s.items, i)
	return pos < len(s.items) && s.items[pos] == i
}

// Add inserts i, keeping the set sorted.
func (s *IndexSet) Add(i int) {
	pos := sort.SearchInts(s.items, i)
	if pos < len(s.items) && s.items[pos] == i {
		return
	}
	s.items = append(s.items, 0)
	copy(s.items[pos+1:], s.items[pos:])
	s.items[pos] = i
}

// Remove deletes i if present.
func (s *IndexSet) Remove(i int) {
	pos := sort.SearchInts(s.items, i)
	if pos < len(s.items) && s.items[pos] == i {
		s.items = append(s.items[:pos], s.items[pos+1:]...)
	}
}

// Clear empties the set.
func (s *IndexSet) Clear() {
	s.items = nil
}

// Min returns the smallest index. It panics on an empty set.
func (s IndexSet) Min() int {
	return s.items[0]
}

// Equal reports whether both sets hold the same indices.
func (s IndexSet) Equal(other IndexSet) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for i := range s.items {
		if s.items[i] != other.items[i] {
			return false
		}
	}
	return true
}

// Slice returns a copy of the indices in ascending order.
func (s IndexSet) Slice() []int {
	out := make([]int, len(s.items))
	copy(out, s.items)
	return out
}

// Clone returns an independent copy of the set.
func (s IndexSet) Clone() IndexSet {
	return IndexSet{items: s.Slice()}
}
