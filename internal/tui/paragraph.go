package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typelingo/internal/align"
	"github.com/verte-zerg/typelingo/internal/model"
	"github.com/verte-zerg/typelingo/internal/stats"
	"github.com/verte-zerg/typelingo/internal/typing"
)

type focusArea int

const (
	focusTyping focusArea = iota
	focusAlign
)

type wordCursor struct {
	side  align.Side
	index int
}

// paragraphView owns the per-paragraph state: the typing session, the
// alignment controller and the keystroke recorder. It is rebuilt whenever the
// visible paragraph changes.
type paragraphView struct {
	article  model.Article
	pairings map[int][]model.Pairing
	class    typing.InputClass

	index    int
	words    [2][]string
	session  *typing.Session
	ctrl     *align.Controller
	recorder *stats.Recorder
	cursor   wordCursor
	focus    focusArea
	dirty    bool
}

func newParagraphView(article model.Article, pairings map[int][]model.Pairing, class typing.InputClass) *paragraphView {
	if pairings == nil {
		pairings = map[int][]model.Pairing{}
	}
	return &paragraphView{article: article, pairings: pairings, class: class}
}

// load switches to paragraph index. A stored pairing list that cannot be
// hydrated is reported and replaced with an empty store.
func (p *paragraphView) load(index int) error {
	para := p.article.Paragraphs[index]
	p.index = index
	p.words = [2][]string{splitWords(para.Original), splitWords(para.Translation)}
	p.session = typing.FromText(para.Original, p.class)
	p.recorder = stats.NewRecorder()
	p.cursor = wordCursor{side: align.Original}
	p.dirty = false

	store, err := align.FromPairings(p.pairings[index])
	if err != nil {
		store = align.NewStore()
	}
	p.ctrl = align.NewController(store)
	p.setFocus(p.focus)
	return err
}

func (p *paragraphView) paragraphCount() int {
	return len(p.article.Paragraphs)
}

func (p *paragraphView) setFocus(f focusArea) {
	p.focus = f
	p.session.SetFocus(f == focusTyping)
}

func (p *paragraphView) toggleFocus() {
	if p.focus == focusTyping {
		p.setFocus(focusAlign)
		return
	}
	p.setFocus(focusTyping)
}

// snapshot stores the current associations in the pairing cache and returns
// them.
func (p *paragraphView) snapshot() []model.Pairing {
	pairs := p.ctrl.Store().Pairings()
	p.pairings[p.index] = pairs
	return pairs
}

func (p *paragraphView) handleTypingKey(msg tea.KeyMsg, now time.Time) {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		p.session.HandleBackspace()
	case tea.KeySpace:
		p.session.HandleSpaceAdvance()
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			p.typeRune(r, now)
		}
	}
}

func (p *paragraphView) typeRune(r rune, now time.Time) {
	word := p.session.Current()
	if word.Complete() {
		return
	}
	reference := word.Chars[word.Caret].Reference
	if p.session.HandleCharacterInput(r) {
		p.recorder.Observe(reference, r, now)
	}
}

// handleAlignKey applies an alignment key and returns a status message, if
// any.
func (p *paragraphView) handleAlignKey(msg tea.KeyMsg) string {
	switch msg.String() {
	case "left", "h":
		p.moveCursor(-1)
	case "right", "l":
		p.moveCursor(1)
	case "up", "k":
		p.switchSide(align.Original)
	case "down", "j":
		p.switchSide(align.Translation)
	case "enter", " ":
		if len(p.words[p.cursor.side]) == 0 {
			return ""
		}
		if !p.ctrl.SelectionEnabled() {
			return "selection is off (s to enable)"
		}
		p.ctrl.Click(p.cursor.index, p.cursor.side)
	case "s":
		p.ctrl.ToggleSelectionEnabled()
		if p.ctrl.SelectionEnabled() {
			return "selection on"
		}
		return "selection off"
	case "p":
		if !p.ctrl.PairEnabled() {
			return ""
		}
		assoc, err := p.ctrl.CommitPair()
		if err != nil {
			return err.Error()
		}
		p.dirty = true
		ordinal, _ := p.ctrl.Store().Ordinal(assoc.ID)
		return fmt.Sprintf("paired #%d", ordinal+1)
	case "x":
		ordinal, ok := p.ctrl.SelectedOrdinal()
		if !ok {
			return ""
		}
		p.ctrl.RemovePair(ordinal)
		p.dirty = true
		return fmt.Sprintf("removed #%d", ordinal+1)
	}
	return ""
}

func (p *paragraphView) moveCursor(delta int) {
	n := len(p.words[p.cursor.side])
	if n == 0 {
		return
	}
	p.cursor.index = (p.cursor.index + delta + n) % n
}

func (p *paragraphView) switchSide(side align.Side) {
	p.cursor.side = side
	if n := len(p.words[side]); p.cursor.index >= n {
		p.cursor.index = max(0, n-1)
	}
}

func splitWords(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, " ")
}

func (p *paragraphView) sides() []align.Side {
	return []align.Side{align.Original, align.Translation}
}
