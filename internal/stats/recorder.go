package stats

import (
	"sort"
	"time"

	"github.com/verte-zerg/typelingo/internal/matcher"
	"github.com/verte-zerg/typelingo/internal/model"
)

type charStat struct {
	correct      int
	incorrect    int
	latencySumMs int64
	latencyCount int64
}

// Recorder accumulates keystroke statistics for one paragraph pass.
// Latency is measured between consecutive correct keystrokes.
type Recorder struct {
	startedAt     time.Time
	prevCorrectAt time.Time
	correct       int
	incorrect     int
	chars         map[rune]*charStat
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{chars: map[rune]*charStat{}}
}

// Started reports whether any keystroke has been observed.
func (r *Recorder) Started() bool {
	return !r.startedAt.IsZero()
}

// Observe records typed against reference at time now.
func (r *Recorder) Observe(reference, typed rune, now time.Time) {
	if r.startedAt.IsZero() {
		r.startedAt = now
	}
	entry, ok := r.chars[reference]
	if !ok {
		entry = &charStat{}
		r.chars[reference] = entry
	}
	if !matcher.Matches(typed, reference) {
		r.incorrect++
		entry.incorrect++
		return
	}
	r.correct++
	entry.correct++
	if !r.prevCorrectAt.IsZero() {
		entry.latencySumMs += now.Sub(r.prevCorrectAt).Milliseconds()
		entry.latencyCount++
	}
	r.prevCorrectAt = now
}

// Finish converts the recording into storable rows. ok is false when nothing
// was typed.
func (r *Recorder) Finish(articleID string, paragraph int, endedAt time.Time) (session model.SessionStats, chars []model.CharStats, ok bool) {
	if !r.Started() {
		return model.SessionStats{}, nil, false
	}
	session = model.SessionStats{
		StartedAt:  r.startedAt,
		EndedAt:    endedAt,
		ArticleID:  articleID,
		Paragraph:  paragraph,
		Correct:    r.correct,
		Incorrect:  r.incorrect,
		DurationMs: endedAt.Sub(r.startedAt).Milliseconds(),
	}
	chars = make([]model.CharStats, 0, len(r.chars))
	for ch, entry := range r.chars {
		chars = append(chars, model.CharStats{
			Char:         string(ch),
			Correct:      entry.correct,
			Incorrect:    entry.incorrect,
			LatencySumMs: entry.latencySumMs,
			LatencyCount: entry.latencyCount,
		})
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i].Char < chars[j].Char })
	return session, chars, true
}
