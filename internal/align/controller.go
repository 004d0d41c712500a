package align

import apperrors "github.com/verte-zerg/typelingo/internal/errors"

// ErrPairNotReady is returned by CommitPair when a side has no pending words.
var ErrPairNotReady = apperrors.Validation("select words on both sides before pairing")

// Controller is the click-driven selection state of one paragraph.
type Controller struct {
	store            *Store
	pending          [2]IndexSet
	clicked          Clicked
	selectionEnabled bool
}

// NewController wraps store with selection enabled.
func NewController(store *Store) *Controller {
	return &Controller{store: store, selectionEnabled: true}
}

// Store returns the committed associations.
func (c *Controller) Store() *Store { return c.store }

// Clicked returns the focused word marker.
func (c *Controller) Clicked() Clicked { return c.clicked }

// Pending returns a copy of the pending selection on side.
func (c *Controller) Pending(side Side) IndexSet { return c.pending[side].Clone() }

// SelectionEnabled reports whether clicks build selections.
func (c *Controller) SelectionEnabled() bool { return c.selectionEnabled }

// ToggleSelectionEnabled flips selection mode. Turning it off drops the
// pending selections and the focused word.
func (c *Controller) ToggleSelectionEnabled() {
	c.selectionEnabled = !c.selectionEnabled
	if !c.selectionEnabled {
		c.clearPending()
		c.clicked = NoClick()
	}
}

// Click handles a click on word index of side. Clicks are ignored while
// selection is disabled.
func (c *Controller) Click(index int, side Side) {
	if !c.selectionEnabled {
		return
	}
	ordinal, paired := c.store.Lookup(index, side)

	if paired && c.clicked.IsSelected() {
		if clickedSide, _ := c.clicked.Side(); clickedSide == side {
			assoc := c.store.At(ordinal)
			if assoc.ID == c.clicked.AssociationID() {
				c.clicked = SelectedClick(side, assoc.ID, index)
				c.pending[side].Clear()
				return
			}
			c.clicked = NoClick()
		}
	}

	if paired {
		c.clicked = SelectedClick(side, c.store.At(ordinal).ID, index)
		c.clearPending()
		return
	}

	switch {
	case !c.pending[side].Contains(index):
		c.pending[side].Add(index)
		c.clicked = PlainClick(side, index)
	case c.clicked == PlainClick(side, index):
		c.pending[side].Remove(index)
		c.clicked = NoClick()
	default:
		c.clicked = PlainClick(side, index)
	}
}

// PairEnabled reports whether both sides have pending words.
func (c *Controller) PairEnabled() bool {
	return !c.pending[Original].Empty() && !c.pending[Translation].Empty()
}

// CommitPair stores the pending selections as a new association.
func (c *Controller) CommitPair() (Association, error) {
	if !c.PairEnabled() {
		return Association{}, ErrPairNotReady
	}
	assoc, err := c.store.Insert(c.pending[Original], c.pending[Translation])
	if err != nil {
		return Association{}, err
	}
	c.clearPending()
	c.clicked = NoClick()
	return assoc, nil
}

// RemovePair deletes the association at ordinal and drops the highlight.
// An invalid ordinal panics.
func (c *Controller) RemovePair(ordinal int) Association {
	removed := c.store.RemoveAt(ordinal)
	c.clicked = NoClick()
	return removed
}

// RemoveEnabled reports whether a committed association is highlighted.
func (c *Controller) RemoveEnabled() bool {
	_, ok := c.SelectedOrdinal()
	return ok
}

// SelectedOrdinal returns the ordinal of the highlighted association.
func (c *Controller) SelectedOrdinal() (int, bool) {
	if !c.clicked.IsSelected() {
		return 0, false
	}
	return c.store.Ordinal(c.clicked.AssociationID())
}

// RemoveSelected deletes the highlighted association, if any.
func (c *Controller) RemoveSelected() (Association, bool) {
	ordinal, ok := c.SelectedOrdinal()
	if !ok {
		return Association{}, false
	}
	return c.RemovePair(ordinal), true
}

func (c *Controller) clearPending() {
	c.pending[Original].Clear()
	c.pending[Translation].Clear()
}
