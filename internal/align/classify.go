package align

// WordState is the render category of a word in the alignment view.
type WordState uint8

const (
	StateNone WordState = iota
	StateClicked
	StatePair
	StateClickedSelected
	StateHighlightedPair
	StateHighlighted
)

// String implements fmt.Stringer.
func (s WordState) String() string {
	switch s {
	case StateClicked:
		return "clicked"
	case StatePair:
		return "pair"
	case StateClickedSelected:
		return "clicked-selected"
	case StateHighlightedPair:
		return "highlighted-pair"
	case StateHighlighted:
		return "highlighted"
	default:
		return "none"
	}
}

// Classify derives the state of word index on side. The first matching rule
// wins: the highlighted word itself, any member of the highlighted pair, the
// focused pending word, any paired word, any pending word.
func Classify(c *Controller, side Side, index int) WordState {
	clicked := c.Clicked()
	clickedSide, hasClick := clicked.Side()

	if clicked.IsSelected() {
		if clickedSide == side && clicked.Index() == index {
			return StateHighlighted
		}
		if assoc, ok := c.store.ByID(clicked.AssociationID()); ok && assoc.Contains(side, index) {
			return StateHighlightedPair
		}
	}
	if hasClick && clicked.IsPlain() && clickedSide == side && clicked.Index() == index {
		return StateClickedSelected
	}
	if _, ok := c.store.Lookup(index, side); ok {
		return StatePair
	}
	if c.pending[side].Contains(index) {
		return StateClicked
	}
	return StateNone
}
