package align

import "fmt"

// ClickKind names the variant held by a Clicked value.
type ClickKind uint8

const (
	// ClickNone means no word is focused.
	ClickNone ClickKind = iota
	// ClickOriginal is a pending source word.
	ClickOriginal
	// ClickTranslation is a pending translation word.
	ClickTranslation
	// ClickSelectedOriginal is a paired source word whose pair is highlighted.
	ClickSelectedOriginal
	// ClickSelectedTranslation is a paired translation word whose pair is highlighted.
	ClickSelectedTranslation
)

// Clicked marks the single focused word across both sides. The zero value is
// the None variant. Values are comparable with ==.
type Clicked struct {
	kind  ClickKind
	index int
	assoc string
}

// NoClick returns the None variant.
func NoClick() Clicked {
	return Clicked{}
}

// PlainClick marks a word that is part of the pending selection on side.
func PlainClick(side Side, index int) Clicked {
	kind := ClickOriginal
	if side == Translation {
		kind = ClickTranslation
	}
	return Clicked{kind: kind, index: index}
}

// SelectedClick marks a paired word and highlights its association.
func SelectedClick(side Side, assocID string, index int) Clicked {
	kind := ClickSelectedOriginal
	if side == Translation {
		kind = ClickSelectedTranslation
	}
	return Clicked{kind: kind, index: index, assoc: assocID}
}

// Kind returns the variant.
func (c Clicked) Kind() ClickKind { return c.kind }

// Index returns the focused word index. It is zero for None.
func (c Clicked) Index() int { return c.index }

// AssociationID returns the highlighted association for Selected variants.
func (c Clicked) AssociationID() string { return c.assoc }

// Side returns the side of the focused word; ok is false for None.
func (c Clicked) Side() (side Side, ok bool) {
	switch c.kind {
	case ClickOriginal, ClickSelectedOriginal:
		return Original, true
	case ClickTranslation, ClickSelectedTranslation:
		return Translation, true
	default:
		return Original, false
	}
}

// IsSelected reports whether c highlights a committed association.
func (c Clicked) IsSelected() bool {
	return c.kind == ClickSelectedOriginal || c.kind == ClickSelectedTranslation
}

// IsPlain reports whether c marks a pending word.
func (c Clicked) IsPlain() bool {
	return c.kind == ClickOriginal || c.kind == ClickTranslation
}

// String implements fmt.Stringer.
func (c Clicked) String() string {
	switch c.kind {
	case ClickOriginal:
		return fmt.Sprintf("Original(%d)", c.index)
	case ClickTranslation:
		return fmt.Sprintf("Translation(%d)", c.index)
	case ClickSelectedOriginal:
		return fmt.Sprintf("SelectedOriginal(%s,%d)", c.assoc, c.index)
	case ClickSelectedTranslation:
		return fmt.Sprintf("SelectedTranslation(%s,%d)", c.assoc, c.index)
	default:
		return "None"
	}
}
