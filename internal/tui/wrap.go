package tui

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typelingo/internal/align"
	"github.com/verte-zerg/typelingo/internal/typing"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

var spaceRune = styledRune{s: " ", width: 1, isSpace: true}

// buildSessionRunes renders every slot of the session. Mistyped slots show
// the typed character followed by the reference.
func buildSessionRunes(s *typing.Session, weak map[rune]struct{}) []styledRune {
	out := []styledRune{}
	for wi, word := range s.Words {
		if wi > 0 {
			out = append(out, spaceRune)
		}
		current := wi == s.WordIndex
		for ci, slot := range word.Chars {
			switch slot.State() {
			case typing.Correct:
				out = append(out, styledRune{
					s:     correctStyle.Render(string(slot.Reference)),
					width: runewidth.RuneWidth(slot.Reference),
				})
			case typing.Incorrect:
				out = append(out, styledRune{
					s:     incorrectStyle.Render(string(slot.Typed)) + hintStyle.Render(string(slot.Reference)),
					width: runewidth.RuneWidth(slot.Typed) + runewidth.RuneWidth(slot.Reference),
				})
			default:
				style := pendingStyle
				if current {
					style = currentWordStyle
				}
				if _, ok := weak[slot.Reference]; ok {
					style = style.Bold(true)
				}
				if s.CaretActive(wi) && ci == word.Caret {
					style = style.Underline(true)
				}
				out = append(out, styledRune{
					s:     style.Render(string(slot.Reference)),
					width: runewidth.RuneWidth(slot.Reference),
				})
			}
		}
		if s.CaretActive(wi) && word.Complete() {
			out = append(out, styledRune{s: cursorStyle.Render(" "), width: 1, isSpace: true})
		}
	}
	return out
}

// buildAlignRunes renders one side of the alignment pane. Each word is a
// single cell so wrapping never splits it.
func buildAlignRunes(ctrl *align.Controller, side align.Side, words []string, cursor int) []styledRune {
	out := make([]styledRune, 0, 2*len(words))
	for i, word := range words {
		if i > 0 {
			out = append(out, spaceRune)
		}
		if word == "" {
			word = "·"
		}
		style := wordStateStyles[align.Classify(ctrl, side, i)]
		if i == cursor {
			style = style.Reverse(true)
		}
		cell := style.Render(word)
		width := runewidth.StringWidth(word)
		if ordinal, ok := ctrl.Store().Lookup(i, side); ok {
			label := superscript(ordinal + 1)
			cell += labelStyle.Render(label)
			width += runewidth.StringWidth(label)
		}
		out = append(out, styledRune{s: cell, width: width})
	}
	return out
}

var superscriptDigits = []rune("⁰¹²³⁴⁵⁶⁷⁸⁹")

func superscript(n int) string {
	digits := []rune(strconv.Itoa(n))
	for i, d := range digits {
		digits[i] = superscriptDigits[d-'0']
	}
	return string(digits)
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
