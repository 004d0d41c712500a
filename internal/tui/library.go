package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typelingo/internal/model"
)

func newArticleTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Title", Width: 48},
			{Title: "Paragraphs", Width: 10},
			{Title: "Added", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#3A3A3A")).
		Bold(true)
	t.SetStyles(styles)
	return t
}

func articleRows(articles []model.Article) []table.Row {
	rows := make([]table.Row, 0, len(articles))
	for _, a := range articles {
		rows = append(rows, table.Row{
			truncateLine(a.Title, 48),
			fmt.Sprintf("%d", len(a.Paragraphs)),
			a.CreatedAt.Local().Format("2006-01-02"),
		})
	}
	return rows
}

func newComposeArea() textarea.Model {
	area := textarea.New()
	area.Placeholder = "Paste text to translate, one paragraph per line"
	area.ShowLineNumbers = false
	area.CharLimit = 0
	return area
}

func (m *Model) selectedArticle() (model.Article, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.articles) {
		return model.Article{}, false
	}
	return m.articles[i], true
}

func (m *Model) updateLibrary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "enter":
		if article, ok := m.selectedArticle(); ok {
			return m, m.openArticle(article.ID)
		}
		return m, nil
	case "a":
		m.screen = screenCompose
		m.errMsg = ""
		return m, m.compose.Focus()
	case "d":
		if article, ok := m.selectedArticle(); ok {
			return m, m.deleteArticle(article)
		}
		return m, nil
	case "r":
		return m, m.loadArticles()
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.translating {
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	}
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.compose.Blur()
		m.screen = screenLibrary
		m.errMsg = ""
		return m, nil
	case tea.KeyCtrlS:
		text := strings.TrimSpace(m.compose.Value())
		if text == "" {
			m.errMsg = "nothing to translate"
			return m, nil
		}
		m.translating = true
		m.errMsg = ""
		return m, m.addArticle(text)
	}
	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(msg)
	return m, cmd
}

func (m *Model) renderLibrary() string {
	lines := []string{headerStyle.Render("Library")}
	if len(m.articles) == 0 {
		lines = append(lines, footerStyle.Render("No articles yet. Press a to add one."))
	} else {
		lines = append(lines, m.table.View())
	}
	body := strings.Join(lines, "\n")
	help := footerStyle.Render("enter: open  a: add  d: delete  r: reload  q: quit")
	footer := help
	if msg := m.renderMessage(); msg != "" {
		footer = msg + "\n" + help
	}
	footerHeight := lipgloss.Height(footer)
	statsLine := m.renderFooter()
	bodyHeight := max(1, m.height-footerHeight-1)
	return strings.Join([]string{
		fitLines(body, m.width, bodyHeight),
		fitLines(footer, m.width, footerHeight),
		fitLines(statsLine, m.width, 1),
	}, "\n")
}

func (m *Model) renderCompose() string {
	body := []string{
		headerStyle.Render("Add Article"),
		m.compose.View(),
	}
	if m.translating {
		body = append(body, statusStyle.Render("Translating…"))
	} else {
		body = append(body, footerStyle.Render("ctrl+s: translate and save  esc: cancel"))
	}
	if m.errMsg != "" {
		body = append(body, errorStyle.Render(m.errMsg))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func weakLabel(set map[rune]struct{}) string {
	if len(set) == 0 {
		return ""
	}
	chars := make([]string, 0, len(set))
	for r := range set {
		chars = append(chars, string(r))
	}
	sort.Strings(chars)
	return strings.Join(chars, " ")
}
