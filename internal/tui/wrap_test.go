package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/typelingo/internal/align"
	"github.com/verte-zerg/typelingo/internal/typing"
)

func TestBuildSessionRunesCaret(t *testing.T) {
	s := typing.FromText("ab", typing.BasicInput)
	s.SetFocus(true)
	s.HandleCharacterInput('a')

	runes := buildSessionRunes(s, nil)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected caret style for second rune")
	}
}

func TestBuildSessionRunesNoCaretWithoutFocus(t *testing.T) {
	s := typing.FromText("ab", typing.BasicInput)

	runes := buildSessionRunes(s, nil)
	if runes[0].s != currentWordStyle.Render("a") {
		t.Fatalf("expected plain current word style without focus")
	}
}

func TestBuildSessionRunesShowsBothFormsOnMistype(t *testing.T) {
	s := typing.FromText("ab", typing.BasicInput)
	s.HandleCharacterInput('x')

	runes := buildSessionRunes(s, nil)
	if runes[0].s != incorrectStyle.Render("x")+hintStyle.Render("a") {
		t.Fatalf("expected typed and reference forms for mistyped rune")
	}
	if runes[0].width != 2 {
		t.Fatalf("expected width 2, got %d", runes[0].width)
	}
}

func TestBuildSessionRunesUmlautFold(t *testing.T) {
	s := typing.FromText("Öl", typing.BasicInput)
	s.HandleCharacterInput('O')

	runes := buildSessionRunes(s, nil)
	if runes[0].s != correctStyle.Render("Ö") {
		t.Fatalf("expected folded umlaut to render as correct")
	}
}

func TestBuildSessionRunesWordHighlighting(t *testing.T) {
	s := typing.FromText("one two", typing.BasicInput)
	s.HandleCharacterInput('o')

	runes := buildSessionRunes(s, nil)
	if runes[1].s != currentWordStyle.Render("n") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if !runes[3].isSpace {
		t.Fatalf("expected word separator")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildAlignRunesLabelsPairs(t *testing.T) {
	store := align.NewStore()
	if _, err := store.Insert(align.NewIndexSet(1), align.NewIndexSet(0)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	ctrl := align.NewController(store)

	runes := buildAlignRunes(ctrl, align.Original, []string{"das", "Haus"}, -1)
	if len(runes) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(runes))
	}
	want := wordStateStyles[align.StatePair].Render("Haus") + labelStyle.Render("¹")
	if runes[2].s != want {
		t.Fatalf("unexpected paired cell: %q", runes[2].s)
	}
	if runes[2].width != 5 {
		t.Fatalf("expected width 5, got %d", runes[2].width)
	}
}

func TestSuperscript(t *testing.T) {
	if got := superscript(120); got != "¹²⁰" {
		t.Fatalf("unexpected superscript: %q", got)
	}
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	s := typing.FromText("aa bb cc", typing.BasicInput)
	out := wrapStyledRunes(buildSessionRunes(s, nil), 5)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
}
