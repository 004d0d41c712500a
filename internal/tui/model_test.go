package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/verte-zerg/typelingo/internal/errors"
	"github.com/verte-zerg/typelingo/internal/logger"
	"github.com/verte-zerg/typelingo/internal/model"
)

type fakeLibrary struct {
	articles []model.Article
	pairings map[int][]model.Pairing
	saves    int
}

func (f *fakeLibrary) ListArticles(context.Context) ([]model.Article, error) {
	return f.articles, nil
}

func (f *fakeLibrary) GetArticle(_ context.Context, id string) (model.Article, error) {
	for _, a := range f.articles {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Article{}, apperrors.NotFoundf("article %s", id)
}

func (f *fakeLibrary) SaveArticle(_ context.Context, a *model.Article) error {
	a.ID = "art-new"
	f.articles = append(f.articles, *a)
	return nil
}

func (f *fakeLibrary) DeleteArticle(_ context.Context, id string) error {
	for i, a := range f.articles {
		if a.ID == id {
			f.articles = append(f.articles[:i], f.articles[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFoundf("article %s", id)
}

func (f *fakeLibrary) SavePairings(_ context.Context, _ string, paragraph int, pairs []model.Pairing) error {
	f.saves++
	f.pairings[paragraph] = pairs
	return nil
}

func (f *fakeLibrary) LoadPairings(_ context.Context, _ string, paragraph int) ([]model.Pairing, error) {
	return f.pairings[paragraph], nil
}

type fakeSessions struct {
	inserted []model.SessionStats
}

func (f *fakeSessions) DeleteArticleSessions(_ context.Context, articleID string) error {
	kept := f.inserted[:0]
	for _, s := range f.inserted {
		if s.ArticleID != articleID {
			kept = append(kept, s)
		}
	}
	f.inserted = kept
	return nil
}

func (f *fakeSessions) InsertSession(_ context.Context, s model.SessionStats, _ []model.CharStats) (int64, error) {
	f.inserted = append(f.inserted, s)
	return int64(len(f.inserted)), nil
}

func (f *fakeSessions) ListSessions(context.Context, model.StatsConfig) ([]model.SessionAggregate, error) {
	out := make([]model.SessionAggregate, 0, len(f.inserted))
	for i, s := range f.inserted {
		out = append(out, model.SessionAggregate{SessionID: int64(i + 1), Correct: s.Correct, Incorrect: s.Incorrect, DurationMs: s.DurationMs})
	}
	return out, nil
}

func (f *fakeSessions) GetWeakChars(context.Context, int, string) ([]model.CharAggregate, error) {
	return nil, nil
}

type fakeTranslator struct {
	err error
}

func (f fakeTranslator) TranslateArticle(_ context.Context, text string) (model.Article, error) {
	if f.err != nil {
		return model.Article{}, f.err
	}
	return model.ArticleFromPair([]string{text}, []string{"translated"}), nil
}

// run executes cmd and feeds the resulting application messages back into m.
func run(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			run(m, c)
		}
	case articlesLoadedMsg, articleOpenedMsg, articleAddedMsg, articleDeletedMsg,
		pairingsSavedMsg, sessionRecordedMsg, footerStatsMsg:
		_, next := m.Update(msg)
		run(m, next)
	}
}

func press(m *Model, key tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(key)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, tr Translator) (*Model, *fakeLibrary, *fakeSessions) {
	t.Helper()
	lib := &fakeLibrary{
		articles: []model.Article{{
			ID:    "art-1",
			Title: "Ein Test",
			Paragraphs: []model.Paragraph{
				{Original: "Ein Test", Translation: "A test"},
				{Original: "Noch einer", Translation: "Another one"},
			},
		}},
		pairings: map[int][]model.Pairing{},
	}
	st := &fakeSessions{}
	m := NewModel(model.Config{}, lib, tr, st, logger.Discard())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	run(m, m.Init())
	require.Len(t, m.articles, 1)
	return m, lib, st
}

func TestParagraphFlowSavesPairingsAndSession(t *testing.T) {
	m, lib, st := newTestModel(t, nil)

	run(m, press(m, tea.KeyMsg{Type: tea.KeyEnter}))
	require.Equal(t, screenParagraph, m.screen)
	require.NotNil(t, m.para)
	assert.True(t, m.para.session.Focus)

	press(m, runes("Ein"))
	correct, incorrect := m.para.session.Tally()
	assert.Equal(t, 3, correct)
	assert.Zero(t, incorrect)

	press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, m.para.session.Focus)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, tea.KeyMsg{Type: tea.KeyDown})
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.para.ctrl.PairEnabled())
	press(m, runes("p"))
	assert.Equal(t, 1, m.para.ctrl.Store().Len())
	assert.Equal(t, "paired #1", m.status)

	run(m, press(m, tea.KeyMsg{Type: tea.KeyEsc}))
	assert.Equal(t, screenLibrary, m.screen)
	assert.Nil(t, m.para)
	assert.Equal(t, []model.Pairing{{StartPosition: 0, Original: []uint{0}, Translation: []uint{0}}}, lib.pairings[0])
	require.Len(t, st.inserted, 1)
	assert.Equal(t, "art-1", st.inserted[0].ArticleID)
	assert.Equal(t, 3, st.inserted[0].Correct)
	assert.True(t, m.hasLast)
}

func TestParagraphNavigationKeepsPairings(t *testing.T) {
	m, lib, st := newTestModel(t, nil)
	run(m, press(m, tea.KeyMsg{Type: tea.KeyEnter}))

	press(m, tea.KeyMsg{Type: tea.KeyTab})
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, runes("j"))
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, runes("p"))

	run(m, press(m, runes("]")))
	assert.Equal(t, 1, m.para.index)
	assert.Zero(t, m.para.ctrl.Store().Len())
	assert.Equal(t, 1, lib.saves)
	assert.Empty(t, st.inserted, "nothing was typed")

	run(m, press(m, runes("]")))
	assert.Equal(t, 1, m.para.index, "no paragraph after the last")

	run(m, press(m, runes("[")))
	assert.Equal(t, 0, m.para.index)
	require.Equal(t, 1, m.para.ctrl.Store().Len())
	assert.Equal(t, uint(1), m.para.ctrl.Store().Pairings()[0].StartPosition)
	assert.Equal(t, 1, lib.saves, "unchanged paragraphs are not saved again")
}

func TestRemoveHighlightedPair(t *testing.T) {
	m, lib, _ := newTestModel(t, nil)
	lib.pairings[0] = []model.Pairing{{StartPosition: 1, Original: []uint{1}, Translation: []uint{1}}}
	run(m, press(m, tea.KeyMsg{Type: tea.KeyEnter}))
	require.Equal(t, 1, m.para.ctrl.Store().Len())

	press(m, tea.KeyMsg{Type: tea.KeyTab})
	press(m, runes("x"))
	assert.Equal(t, 1, m.para.ctrl.Store().Len(), "nothing highlighted")

	press(m, runes("l"))
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.para.ctrl.RemoveEnabled())
	press(m, runes("x"))
	assert.Zero(t, m.para.ctrl.Store().Len())

	run(m, press(m, tea.KeyMsg{Type: tea.KeyCtrlS}))
	assert.Empty(t, lib.pairings[0])
}

func TestSelectionToggleBlocksClicks(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	run(m, press(m, tea.KeyMsg{Type: tea.KeyEnter}))
	press(m, tea.KeyMsg{Type: tea.KeyTab})

	press(m, runes("s"))
	assert.False(t, m.para.ctrl.SelectionEnabled())
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.para.ctrl.Pending(0).Empty())
	assert.Contains(t, m.status, "selection is off")
}

func TestComposeFailureKeepsText(t *testing.T) {
	m, _, _ := newTestModel(t, fakeTranslator{err: apperrors.External(assert.AnError, "translation request failed")})

	press(m, runes("a"))
	require.Equal(t, screenCompose, m.screen)
	m.compose.SetValue("Guten Morgen")

	run(m, press(m, tea.KeyMsg{Type: tea.KeyCtrlS}))
	assert.Equal(t, screenCompose, m.screen)
	assert.Contains(t, m.errMsg, "translation request failed")
	assert.Equal(t, "Guten Morgen", m.compose.Value())
	assert.False(t, m.translating)
}

func TestComposeAddsArticle(t *testing.T) {
	m, lib, _ := newTestModel(t, fakeTranslator{})

	press(m, runes("a"))
	m.compose.SetValue("Guten Morgen")
	run(m, press(m, tea.KeyMsg{Type: tea.KeyCtrlS}))

	assert.Equal(t, screenLibrary, m.screen)
	require.Len(t, lib.articles, 2)
	assert.Len(t, m.articles, 2)
	assert.Contains(t, m.status, "Guten Morgen")
}

func TestDeleteArticle(t *testing.T) {
	m, lib, st := newTestModel(t, nil)
	articleID := m.articles[0].ID
	st.inserted = []model.SessionStats{
		{ArticleID: articleID, Correct: 3},
		{ArticleID: "art-other", Correct: 1},
	}

	run(m, press(m, runes("d")))
	assert.Empty(t, lib.articles)
	assert.Empty(t, m.articles)
	assert.Contains(t, m.status, "Ein Test")
	require.Len(t, st.inserted, 1)
	assert.Equal(t, "art-other", st.inserted[0].ArticleID)
}
