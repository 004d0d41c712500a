// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typelingo/internal/model"
	statsPkg "github.com/verte-zerg/typelingo/internal/stats"
	"github.com/verte-zerg/typelingo/internal/typing"
)

const (
	weakWindow = 20
	weakTop    = 5
)

type screen int

const (
	screenLibrary screen = iota
	screenCompose
	screenParagraph
)

// Library persists articles and their pairings.
type Library interface {
	ListArticles(ctx context.Context) ([]model.Article, error)
	GetArticle(ctx context.Context, articleID string) (model.Article, error)
	SaveArticle(ctx context.Context, article *model.Article) error
	DeleteArticle(ctx context.Context, articleID string) error
	SavePairings(ctx context.Context, articleID string, paragraph int, pairings []model.Pairing) error
	LoadPairings(ctx context.Context, articleID string, paragraph int) ([]model.Pairing, error)
}

// Translator builds an article from pasted text.
type Translator interface {
	TranslateArticle(ctx context.Context, text string) (model.Article, error)
}

// SessionStore records practice sessions.
type SessionStore interface {
	InsertSession(ctx context.Context, stats model.SessionStats, chars []model.CharStats) (int64, error)
	ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error)
	GetWeakChars(ctx context.Context, window int, articleID string) ([]model.CharAggregate, error)
	DeleteArticleSessions(ctx context.Context, articleID string) error
}

type (
	articlesLoadedMsg struct {
		articles []model.Article
		err      error
	}
	articleOpenedMsg struct {
		article  model.Article
		pairings map[int][]model.Pairing
		err      error
	}
	articleAddedMsg struct {
		article model.Article
		err     error
	}
	articleDeletedMsg struct {
		title string
		err   error
	}
	pairingsSavedMsg struct {
		paragraph int
		count     int
		err       error
	}
	sessionRecordedMsg struct {
		stats model.SessionStats
		err   error
	}
	footerStatsMsg struct {
		sessions []model.SessionAggregate
		weak     []model.CharAggregate
		err      error
	}
)

// Model implements the Bubble Tea practice UI.
type Model struct {
	config     model.Config
	library    Library
	translator Translator
	sessions   SessionStore
	logger     *slog.Logger

	screen screen
	width  int
	height int

	articles    []model.Article
	table       table.Model
	compose     textarea.Model
	translating bool

	para *paragraphView

	status string
	errMsg string

	weakSet map[rune]struct{}

	lastWPM float64
	lastAcc float64
	hasLast bool

	allWPM       float64
	allAcc       float64
	allCorrect   int
	allIncorrect int
	allDuration  int64
}

// NewModel constructs the practice UI.
func NewModel(cfg model.Config, lib Library, tr Translator, st SessionStore, logger *slog.Logger) *Model {
	m := &Model{
		config:     cfg,
		library:    lib,
		translator: tr,
		sessions:   st,
		logger:     logger,
		weakSet:    map[rune]struct{}{},
	}
	m.table = newArticleTable()
	m.compose = newComposeArea()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadArticles(), m.loadFooterStats())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case articlesLoadedMsg:
		if msg.err != nil {
			m.fail("failed to load articles", msg.err)
			return m, nil
		}
		m.articles = msg.articles
		m.table.SetRows(articleRows(m.articles))
		return m, nil
	case articleOpenedMsg:
		return m.handleArticleOpened(msg)
	case articleAddedMsg:
		m.translating = false
		if msg.err != nil {
			// Stay in the compose screen so the text can be resubmitted.
			m.fail("failed to add article", msg.err)
			return m, nil
		}
		m.compose.Reset()
		m.screen = screenLibrary
		m.setStatus(fmt.Sprintf("added %q (%d paragraphs)", msg.article.Title, len(msg.article.Paragraphs)))
		return m, m.loadArticles()
	case articleDeletedMsg:
		if msg.err != nil {
			m.fail("failed to delete article", msg.err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("deleted %q", msg.title))
		return m, tea.Batch(m.loadArticles(), m.loadFooterStats())
	case pairingsSavedMsg:
		if msg.err != nil {
			m.fail("failed to save pairings", msg.err)
			return m, nil
		}
		m.logger.Debug("pairings saved", "paragraph", msg.paragraph, "count", msg.count)
		return m, nil
	case sessionRecordedMsg:
		if msg.err != nil {
			m.fail("failed to save session", msg.err)
			return m, nil
		}
		m.applySession(msg.stats)
		return m, m.loadFooterStats()
	case footerStatsMsg:
		m.applyFooterStats(msg)
		return m, nil
	case tea.KeyMsg:
		switch m.screen {
		case screenCompose:
			return m.updateCompose(msg)
		case screenParagraph:
			return m.updateParagraph(msg)
		default:
			return m.updateLibrary(msg)
		}
	}
	if m.screen == screenCompose {
		var cmd tea.Cmd
		m.compose, cmd = m.compose.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	switch m.screen {
	case screenCompose:
		return fitLines(m.renderCompose(), m.width, m.height)
	case screenParagraph:
		return m.renderParagraph()
	default:
		return m.renderLibrary()
	}
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.table.SetWidth(m.width)
	m.table.SetHeight(max(1, m.height-4))
	m.compose.SetWidth(modalInnerWidth(m.width))
	m.compose.SetHeight(max(3, m.height/2))
}

func (m *Model) updateParagraph(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.para
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Sequence(m.leaveParagraph(), tea.Quit)
	case "esc":
		cmd := m.leaveParagraph()
		m.para = nil
		m.screen = screenLibrary
		return m, cmd
	case "tab":
		p.toggleFocus()
		return m, nil
	case "ctrl+s":
		p.dirty = false
		return m, m.savePairings(p.article.ID, p.index, p.snapshot())
	case "[":
		return m, m.gotoParagraph(p.index - 1)
	case "]":
		return m, m.gotoParagraph(p.index + 1)
	}
	if p.focus == focusTyping {
		p.handleTypingKey(msg, time.Now())
		return m, nil
	}
	m.setStatus(p.handleAlignKey(msg))
	return m, nil
}

func (m *Model) gotoParagraph(index int) tea.Cmd {
	p := m.para
	if index < 0 || index >= p.paragraphCount() {
		return nil
	}
	cmd := m.leaveParagraph()
	if err := p.load(index); err != nil {
		m.fail("stored pairings are invalid", err)
	}
	return cmd
}

// leaveParagraph persists the pairings of the visible paragraph and records
// the practice pass, if anything was typed.
func (m *Model) leaveParagraph() tea.Cmd {
	p := m.para
	if p == nil {
		return nil
	}
	var cmds []tea.Cmd
	pairs := p.snapshot()
	if p.dirty {
		p.dirty = false
		cmds = append(cmds, m.savePairings(p.article.ID, p.index, pairs))
	}
	if session, chars, ok := p.recorder.Finish(p.article.ID, p.index, time.Now()); ok {
		cmds = append(cmds, m.recordSession(session, chars))
	}
	p.recorder = statsPkg.NewRecorder()
	return tea.Batch(cmds...)
}

func (m *Model) handleArticleOpened(msg articleOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.fail("failed to open article", msg.err)
		return m, nil
	}
	if len(msg.article.Paragraphs) == 0 {
		m.setStatus("article has no paragraphs")
		return m, nil
	}
	class := typing.BasicInput
	if m.config.RichPunct {
		class = typing.RichInput
	}
	m.para = newParagraphView(msg.article, msg.pairings, class)
	if err := m.para.load(0); err != nil {
		m.fail("stored pairings are invalid", err)
	}
	m.screen = screenParagraph
	m.status = ""
	return m, nil
}

func (m *Model) loadArticles() tea.Cmd {
	lib := m.library
	return func() tea.Msg {
		articles, err := lib.ListArticles(context.Background())
		return articlesLoadedMsg{articles: articles, err: err}
	}
}

func (m *Model) openArticle(articleID string) tea.Cmd {
	lib := m.library
	return func() tea.Msg {
		ctx := context.Background()
		article, err := lib.GetArticle(ctx, articleID)
		if err != nil {
			return articleOpenedMsg{err: err}
		}
		pairings := make(map[int][]model.Pairing, len(article.Paragraphs))
		for i := range article.Paragraphs {
			pairs, err := lib.LoadPairings(ctx, articleID, i)
			if err != nil {
				return articleOpenedMsg{err: err}
			}
			if len(pairs) > 0 {
				pairings[i] = pairs
			}
		}
		return articleOpenedMsg{article: article, pairings: pairings}
	}
}

func (m *Model) addArticle(text string) tea.Cmd {
	lib, tr := m.library, m.translator
	return func() tea.Msg {
		ctx := context.Background()
		article, err := tr.TranslateArticle(ctx, text)
		if err != nil {
			return articleAddedMsg{err: err}
		}
		if len(article.Paragraphs) == 0 {
			return articleAddedMsg{err: fmt.Errorf("translation produced no paragraphs")}
		}
		if err := lib.SaveArticle(ctx, &article); err != nil {
			return articleAddedMsg{err: err}
		}
		return articleAddedMsg{article: article}
	}
}

func (m *Model) deleteArticle(article model.Article) tea.Cmd {
	lib, st := m.library, m.sessions
	return func() tea.Msg {
		ctx := context.Background()
		if err := lib.DeleteArticle(ctx, article.ID); err != nil {
			return articleDeletedMsg{title: article.Title, err: err}
		}
		if err := st.DeleteArticleSessions(ctx, article.ID); err != nil {
			return articleDeletedMsg{title: article.Title, err: fmt.Errorf("failed to delete practice history: %w", err)}
		}
		return articleDeletedMsg{title: article.Title}
	}
}

func (m *Model) savePairings(articleID string, paragraph int, pairs []model.Pairing) tea.Cmd {
	lib := m.library
	return func() tea.Msg {
		err := lib.SavePairings(context.Background(), articleID, paragraph, pairs)
		return pairingsSavedMsg{paragraph: paragraph, count: len(pairs), err: err}
	}
}

func (m *Model) recordSession(session model.SessionStats, chars []model.CharStats) tea.Cmd {
	st := m.sessions
	return func() tea.Msg {
		_, err := st.InsertSession(context.Background(), session, chars)
		return sessionRecordedMsg{stats: session, err: err}
	}
}

func (m *Model) loadFooterStats() tea.Cmd {
	st := m.sessions
	return func() tea.Msg {
		ctx := context.Background()
		sessions, err := st.ListSessions(ctx, model.StatsConfig{})
		if err != nil {
			return footerStatsMsg{err: err}
		}
		weak, err := st.GetWeakChars(ctx, weakWindow, "")
		return footerStatsMsg{sessions: sessions, weak: weak, err: err}
	}
}

func (m *Model) applyFooterStats(msg footerStatsMsg) {
	if msg.err != nil {
		m.logger.Error("failed to load session stats", "error", msg.err)
		return
	}
	m.weakSet = statsPkg.SelectWeakChars(msg.weak, weakTop)
	m.allCorrect, m.allIncorrect, m.allDuration = 0, 0, 0
	for _, s := range msg.sessions {
		m.allCorrect += s.Correct
		m.allIncorrect += s.Incorrect
		m.allDuration += s.DurationMs
	}
	m.recomputeAllTime()
	if len(msg.sessions) > 0 && !m.hasLast {
		last := msg.sessions[len(msg.sessions)-1]
		m.lastWPM, _, m.lastAcc = statsPkg.SessionMetrics(last.Correct, last.Incorrect, last.DurationMs)
		m.hasLast = true
	}
}

func (m *Model) applySession(s model.SessionStats) {
	m.lastWPM, _, m.lastAcc = statsPkg.SessionMetrics(s.Correct, s.Incorrect, s.DurationMs)
	m.hasLast = true
	m.logger.Info("session recorded",
		"article", s.ArticleID, "paragraph", s.Paragraph,
		"correct", s.Correct, "incorrect", s.Incorrect, "wpm", fmt.Sprintf("%.1f", m.lastWPM))
}

func (m *Model) recomputeAllTime() {
	wpm, _, acc := statsPkg.SessionMetrics(m.allCorrect, m.allIncorrect, m.allDuration)
	m.allWPM = wpm
	m.allAcc = acc
}

func (m *Model) fail(msg string, err error) {
	m.logger.Error(msg, "error", err)
	m.errMsg = fmt.Sprintf("%s: %v", msg, err)
	m.status = ""
}

func (m *Model) setStatus(status string) {
	m.status = status
	if status != "" {
		m.errMsg = ""
	}
}

func (m *Model) renderParagraph() string {
	p := m.para
	contentWidth := max(20, int(float64(m.width)*0.80))
	innerWidth := contentWidth - paneStyle.GetHorizontalFrameSize()

	header := headerStyle.Render(truncateLine(
		fmt.Sprintf("%s · paragraph %d/%d", p.article.Title, p.index+1, p.paragraphCount()), contentWidth))

	typingPane := paneStyle
	alignPane := paneStyle
	if p.focus == focusTyping {
		typingPane = activePaneStyle
	} else {
		alignPane = activePaneStyle
	}
	typed := typingPane.Width(contentWidth).Render(
		wrapStyledRunes(buildSessionRunes(p.session, m.weakSet), innerWidth))

	sides := make([]string, 0, 3)
	for _, side := range p.sides() {
		cursor := -1
		if p.focus == focusAlign && p.cursor.side == side {
			cursor = p.cursor.index
		}
		sides = append(sides, wrapStyledRunes(buildAlignRunes(p.ctrl, side, p.words[side], cursor), innerWidth))
	}
	sides = append(sides, m.renderAlignHints())
	aligned := alignPane.Width(contentWidth).Render(strings.Join(sides, "\n\n"))

	content := lipgloss.JoinVertical(lipgloss.Left, header, typed, aligned, m.renderMessage())
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderAlignHints() string {
	ctrl := m.para.ctrl
	hints := []string{"enter: click"}
	if ctrl.SelectionEnabled() {
		hints = append(hints, "s: selection off")
	} else {
		hints = append(hints, "s: selection on")
	}
	if ctrl.PairEnabled() {
		hints = append(hints, "p: pair")
	}
	if ctrl.RemoveEnabled() {
		hints = append(hints, "x: remove pair")
	}
	hints = append(hints, fmt.Sprintf("%d pairs", ctrl.Store().Len()))
	return footerStyle.Render(strings.Join(hints, "  "))
}

func (m *Model) renderMessage() string {
	switch {
	case m.errMsg != "":
		return errorStyle.Render(m.errMsg)
	case m.status != "":
		return statusStyle.Render(m.status)
	default:
		return ""
	}
}

func (m *Model) renderFooter() string {
	segments := []string{}
	if m.para != nil {
		segments = append(segments, fmt.Sprintf("Progress %d%%", int(m.para.session.Progress()*100)))
		segments = append(segments, "tab: switch pane  [ ]: paragraph  ctrl+s: save  esc: library")
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f WPM · %.1f%%", m.lastWPM, m.lastAcc*100))
	}
	segments = append(segments, fmt.Sprintf("All-time %.1f WPM · %.1f%%", m.allWPM, m.allAcc*100))
	if weak := weakLabel(m.weakSet); weak != "" {
		segments = append(segments, "Weak "+weak)
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
