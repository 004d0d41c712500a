// Package typing tracks a learner's keystrokes against a reference sentence.
package typing

import (
	"strings"

	"github.com/verte-zerg/typelingo/internal/matcher"
)

// CharState is the render category of a single character slot.
type CharState uint8

const (
	// Empty means nothing has been typed into the slot yet.
	Empty CharState = iota
	// Correct means the typed character matches the reference.
	Correct
	// Incorrect means the typed character does not match the reference.
	Incorrect
)

// String implements fmt.Stringer.
func (s CharState) String() string {
	switch s {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "empty"
	}
}

// CharSlot holds one reference character and what was typed for it.
type CharSlot struct {
	Index     int
	Reference rune
	Typed     rune
	HasTyped  bool
}

// State classifies the slot.
func (c CharSlot) State() CharState {
	if !c.HasTyped {
		return Empty
	}
	if matcher.Matches(c.Typed, c.Reference) {
		return Correct
	}
	return Incorrect
}

// WordSlot is one space-delimited word of the reference text.
type WordSlot struct {
	Chars []CharSlot
	Caret int
}

// Complete reports whether every slot of the word has been filled.
func (w *WordSlot) Complete() bool {
	return w.Caret == len(w.Chars)
}

// Session is the typed state of one reference sentence.
type Session struct {
	Words     []WordSlot
	WordIndex int
	Focus     bool

	class InputClass
}

// FromText builds a session by splitting text on single spaces. Empty words
// produced by repeated spaces are kept.
func FromText(text string, class InputClass) *Session {
	parts := strings.Split(text, " ")
	words := make([]WordSlot, 0, len(parts))
	for _, part := range parts {
		runes := []rune(part)
		chars := make([]CharSlot, len(runes))
		for i, r := range runes {
			chars[i] = CharSlot{Index: i, Reference: r}
		}
		words = append(words, WordSlot{Chars: chars})
	}
	return &Session{Words: words, class: class}
}

// HandleBackspace clears the previous slot of the current word, or moves to
// the previous word when the current one has nothing typed.
func (s *Session) HandleBackspace() {
	word := &s.Words[s.WordIndex]
	if word.Caret > 0 {
		word.Caret--
		word.Chars[word.Caret].Typed = 0
		word.Chars[word.Caret].HasTyped = false
		return
	}
	if s.WordIndex > 0 {
		s.WordIndex--
	}
}

// HandleSpaceAdvance moves to the next word whether or not the current one
// is fully typed. It is a no-op on the last word. Callers must swallow the
// key so it does not reach any other handler.
func (s *Session) HandleSpaceAdvance() {
	if s.WordIndex < len(s.Words)-1 {
		s.WordIndex++
	}
}

// HandleCharacterInput writes ch at the caret of the current word. Characters
// outside the input class and input past the end of the word are ignored.
// It reports whether the input was accepted.
func (s *Session) HandleCharacterInput(ch rune) bool {
	if !s.class.Accepts(ch) {
		return false
	}
	if s.WordIndex < 0 || s.WordIndex >= len(s.Words) {
		return false
	}
	word := &s.Words[s.WordIndex]
	if word.Complete() {
		return false
	}
	word.Chars[word.Caret].Typed = ch
	word.Chars[word.Caret].HasTyped = true
	word.Caret++
	return true
}

// SetFocus records whether the typing surface has keyboard focus.
func (s *Session) SetFocus(focus bool) {
	s.Focus = focus
}

// Current returns the word under the word caret.
func (s *Session) Current() *WordSlot {
	return &s.Words[s.WordIndex]
}

// CaretActive reports whether empty slots of word i show the caret marker.
func (s *Session) CaretActive(i int) bool {
	return s.Focus && i == s.WordIndex
}

// Tally counts correct and incorrect slots over the whole session.
func (s *Session) Tally() (correct, incorrect int) {
	for _, w := range s.Words {
		for _, c := range w.Chars {
			switch c.State() {
			case Correct:
				correct++
			case Incorrect:
				incorrect++
			}
		}
	}
	return correct, incorrect
}

// Progress returns the fraction of slots that have been typed.
func (s *Session) Progress() float64 {
	total, typed := 0, 0
	for _, w := range s.Words {
		total += len(w.Chars)
		typed += w.Caret
	}
	if total == 0 {
		return 0
	}
	return float64(typed) / float64(total)
}
