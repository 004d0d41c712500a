// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/typelingo/internal/model"
)

const sparkChars = " .:-=+*#%@"

// SessionMetrics computes WPM, CPM, and accuracy for a session.
func SessionMetrics(correct, incorrect int, durationMs int64) (wpm, cpm, accuracy float64) {
	if durationMs <= 0 {
		return 0, 0, 0
	}
	minutes := float64(durationMs) / 60000.0
	wpm = (float64(correct) / 5.0) / minutes
	cpm = float64(correct) / minutes
	den := float64(correct + incorrect)
	if den > 0 {
		accuracy = float64(correct) / den
	}
	return wpm, cpm, accuracy
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Downsample averages values into at most width buckets.
func Downsample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for b := 0; b < width; b++ {
		lo := b * len(values) / width
		hi := (b + 1) * len(values) / width
		var sum float64
		for _, v := range values[lo:hi] {
			sum += v
		}
		out[b] = sum / float64(hi-lo)
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints a summary block for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalWPM, totalCPM, totalAcc float64
	bestWPM := 0.0
	for _, s := range sessions {
		wpm, cpm, acc := SessionMetrics(s.Correct, s.Incorrect, s.DurationMs)
		totalWPM += wpm
		totalCPM += cpm
		totalAcc += acc
		bestWPM = math.Max(bestWPM, wpm)
	}
	count := float64(len(sessions))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(sessions)),
		fmt.Sprintf("Avg WPM: %.2f", totalWPM/count),
		fmt.Sprintf("Best WPM: %.2f", bestWPM),
		fmt.Sprintf("Avg CPM: %.2f", totalCPM/count),
		fmt.Sprintf("Avg Accuracy: %.2f%%", (totalAcc/count)*100),
		"",
	}
	return writeLines(w, lines)
}

// RenderTrend prints smoothed WPM and accuracy sparklines no wider than width.
func RenderTrend(w io.Writer, sessions []model.SessionAggregate, window, width int) error {
	if len(sessions) < 2 {
		return nil
	}
	wpms := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		wpm, _, acc := SessionMetrics(s.Correct, s.Incorrect, s.DurationMs)
		wpms[i] = wpm
		accs[i] = acc * 100
	}
	const labelWidth = len("Accuracy ")
	lineWidth := 0
	if width > labelWidth {
		lineWidth = width - labelWidth
	}
	wpms = Downsample(MovingAverage(wpms, window), lineWidth)
	accs = Downsample(MovingAverage(accs, window), lineWidth)
	return writeLines(w, []string{
		"Trend",
		fmt.Sprintf("%-*s%s", labelWidth, "WPM", Sparkline(wpms)),
		fmt.Sprintf("%-*s%s", labelWidth, "Accuracy", Sparkline(accs)),
		"",
	})
}

// RenderArticleTable prints per-article practice totals. titles maps article
// ids to display names; unknown ids are shown raw.
func RenderArticleTable(w io.Writer, sessions []model.SessionAggregate, titles map[string]string) error {
	if len(sessions) == 0 {
		return nil
	}
	type row struct {
		title      string
		sessions   int
		correct    int
		incorrect  int
		durationMs int64
	}
	byArticle := map[string]*row{}
	for _, s := range sessions {
		r, ok := byArticle[s.ArticleID]
		if !ok {
			title := titles[s.ArticleID]
			if title == "" {
				title = s.ArticleID
			}
			r = &row{title: title}
			byArticle[s.ArticleID] = r
		}
		r.sessions++
		r.correct += s.Correct
		r.incorrect += s.Incorrect
		r.durationMs += s.DurationMs
	}
	rows := make([]*row, 0, len(byArticle))
	for _, r := range byArticle {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].sessions == rows[j].sessions {
			return rows[i].title < rows[j].title
		}
		return rows[i].sessions > rows[j].sessions
	})

	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		wpm, _, acc := SessionMetrics(r.correct, r.incorrect, r.durationMs)
		tableRows = append(tableRows, []string{
			truncate(r.title, 40),
			fmt.Sprintf("%d", r.sessions),
			fmt.Sprintf("%.1f", wpm),
			fmt.Sprintf("%.2f%%", acc*100),
		})
	}
	lines := append([]string{"Per-Article"},
		formatTable([]string{"Article", "Sessions", "WPM", "Accuracy"}, tableRows, map[int]bool{1: true, 2: true, 3: true})...)
	return writeLines(w, append(lines, ""))
}

// RenderCharTable prints per-character aggregates, weakest first.
func RenderCharTable(w io.Writer, aggs []model.CharAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No character stats found.")
		return err
	}
	sorted := make([]model.CharAggregate, len(aggs))
	copy(sorted, aggs)
	sort.Slice(sorted, func(i, j int) bool {
		ai, aj := accuracy(sorted[i]), accuracy(sorted[j])
		if ai == aj {
			return sorted[i].Char < sorted[j].Char
		}
		return ai < aj
	})

	headers := []string{"Char", "Accuracy", "Avg Latency (ms)", "Correct", "Incorrect"}
	tableRows := make([][]string, 0, len(sorted))
	for _, agg := range sorted {
		lat := 0.0
		if agg.LatencyCount > 0 {
			lat = float64(agg.LatencySumMs) / float64(agg.LatencyCount)
		}
		tableRows = append(tableRows, []string{
			agg.Char,
			fmt.Sprintf("%.2f%%", accuracy(agg)*100),
			fmt.Sprintf("%.1f", lat),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Incorrect),
		})
	}
	lines := append([]string{"Per-Character (Windowed)"},
		formatTable(headers, tableRows, map[int]bool{1: true, 2: true, 3: true, 4: true})...)
	return writeLines(w, append(lines, ""))
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
