// Package align implements word pairing between a sentence and its translation.
//
// A Store holds the committed associations of one paragraph. A Controller
// turns word clicks into pending selections, commits them as associations and
// tracks the single highlighted word. Classify derives how a word should be
// drawn from both.
//
// Word index sets of different associations may overlap. Lookups resolve to
// the first association in start position order.
package align

import (
	"fmt"

	apperrors "github.com/verte-zerg/typelingo/internal/errors"
	"github.com/verte-zerg/typelingo/internal/id"
	"github.com/verte-zerg/typelingo/internal/model"
)

// Side selects the sentence a word index refers to.
type Side uint8

const (
	// Original is the source sentence.
	Original Side = iota
	// Translation is the target sentence.
	Translation
)

// String implements fmt.Stringer.
func (s Side) String() string {
	if s == Translation {
		return "translation"
	}
	return "original"
}

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == Translation {
		return Original
	}
	return Translation
}

// Association links source word indices to translation word indices.
type Association struct {
	ID            string
	StartPosition int
	Original      IndexSet
	Translation   IndexSet
}

// Words returns the index set of the given side.
func (a Association) Words(side Side) IndexSet {
	if side == Translation {
		return a.Translation
	}
	return a.Original
}

// Contains reports whether index is part of the association on side.
func (a Association) Contains(side Side, index int) bool {
	return a.Words(side).Contains(index)
}

// SameValue compares associations ignoring their ids.
func (a Association) SameValue(b Association) bool {
	return a.StartPosition == b.StartPosition &&
		a.Original.Equal(b.Original) &&
		a.Translation.Equal(b.Translation)
}

// Store is the ordered set of committed associations for one paragraph.
type Store struct {
	assocs []Association
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// FromPairings hydrates a store from persisted pairings.
func FromPairings(pairings []model.Pairing) (*Store, error) {
	s := NewStore()
	for i, p := range pairings {
		original := NewIndexSet(toInts(p.Original)...)
		translation := NewIndexSet(toInts(p.Translation)...)
		if _, err := s.Insert(original, translation); err != nil {
			return nil, fmt.Errorf("pairing %d: %w", i, err)
		}
	}
	return s, nil
}

// Pairings returns the persisted form of the store, in order.
func (s *Store) Pairings() []model.Pairing {
	out := make([]model.Pairing, 0, len(s.assocs))
	for _, a := range s.assocs {
		out = append(out, model.Pairing{
			StartPosition: uint(a.StartPosition),
			Original:      toUints(a.Original.Slice()),
			Translation:   toUints(a.Translation.Slice()),
		})
	}
	return out
}

// Len returns the number of associations.
func (s *Store) Len() int {
	return len(s.assocs)
}

// At returns the association at ordinal. It panics when ordinal is out of range.
func (s *Store) At(ordinal int) Association {
	s.mustOrdinal(ordinal)
	return s.assocs[ordinal]
}

// All returns the associations in start position order.
func (s *Store) All() []Association {
	out := make([]Association, len(s.assocs))
	copy(out, s.assocs)
	return out
}

// Lookup returns the ordinal of the first association containing index on side.
func (s *Store) Lookup(index int, side Side) (int, bool) {
	for i, a := range s.assocs {
		if a.Contains(side, index) {
			return i, true
		}
	}
	return 0, false
}

// Ordinal returns the current position of the association with the given id.
func (s *Store) Ordinal(assocID string) (int, bool) {
	for i, a := range s.assocs {
		if a.ID == assocID {
			return i, true
		}
	}
	return 0, false
}

// ByID returns the association with the given id.
func (s *Store) ByID(assocID string) (Association, bool) {
	if i, ok := s.Ordinal(assocID); ok {
		return s.assocs[i], true
	}
	return Association{}, false
}

// Insert adds an association in start position order. Inserting a value
// already present returns the existing association unchanged.
func (s *Store) Insert(original, translation IndexSet) (Association, error) {
	if original.Empty() || translation.Empty() {
		return Association{}, apperrors.Validation("both sides of a pair need at least one word")
	}
	assoc := Association{
		StartPosition: original.Min(),
		Original:      original.Clone(),
		Translation:   translation.Clone(),
	}
	pos := len(s.assocs)
	for i, existing := range s.assocs {
		if existing.SameValue(assoc) {
			return existing, nil
		}
		if existing.StartPosition > assoc.StartPosition && pos == len(s.assocs) {
			pos = i
		}
	}
	assoc.ID = id.MustGenerate(id.PairPrefix)
	s.assocs = append(s.assocs, Association{})
	copy(s.assocs[pos+1:], s.assocs[pos:])
	s.assocs[pos] = assoc
	return assoc, nil
}

// RemoveAt deletes the association at ordinal. An invalid ordinal is a
// programming error and panics.
func (s *Store) RemoveAt(ordinal int) Association {
	s.mustOrdinal(ordinal)
	removed := s.assocs[ordinal]
	s.assocs = append(s.assocs[:ordinal], s.assocs[ordinal+1:]...)
	return removed
}

// Remove deletes the association with the given id.
func (s *Store) Remove(assocID string) (Association, bool) {
	i, ok := s.Ordinal(assocID)
	if !ok {
		return Association{}, false
	}
	return s.RemoveAt(i), true
}

func (s *Store) mustOrdinal(ordinal int) {
	if ordinal < 0 || ordinal >= len(s.assocs) {
		panic(fmt.Sprintf("align: association ordinal %d out of range [0,%d)", ordinal, len(s.assocs)))
	}
}

func toInts(values []uint) []int {
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = int(v)
	}
	return out
}

func toUints(values []int) []uint {
	out := make([]uint, len(values))
	for i, v := range values {
		out[i] = uint(v)
	}
	return out
}
