// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	TranslatorURL string        `validate:"required,url"`
	Timeout       time.Duration `validate:"gt=0"`
	RichPunct     bool
	LogLevel      string `validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat     string `validate:"omitempty,oneof=text json"`
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	ArticleID   string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// Article is a translated text split into aligned paragraphs.
type Article struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	CreatedAt  time.Time   `json:"created_at"`
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Paragraph is one source line and its translation.
type Paragraph struct {
	Original    string `json:"original"`
	Translation string `json:"translation"`
}

// ArticleFromPair zips source and translated lines into paragraphs. Lines
// without a counterpart are dropped. The title is the first source line.
func ArticleFromPair(original, translation []string) Article {
	n := min(len(original), len(translation))
	paragraphs := make([]Paragraph, 0, n)
	for i := 0; i < n; i++ {
		paragraphs = append(paragraphs, Paragraph{Original: original[i], Translation: translation[i]})
	}
	var title string
	if len(original) > 0 {
		title = original[0]
	}
	return Article{Title: title, Paragraphs: paragraphs}
}

// Pairing is the persisted form of one word association.
type Pairing struct {
	StartPosition uint   `json:"start_position"`
	Original      []uint `json:"original"`
	Translation   []uint `json:"translation"`
}

// PairingMap holds every pairing: article id, then paragraph index.
type PairingMap map[string]map[int][]Pairing

// SessionStats captures a finished practice pass over one paragraph.
type SessionStats struct {
	StartedAt  time.Time
	EndedAt    time.Time
	ArticleID  string
	Paragraph  int
	Correct    int
	Incorrect  int
	DurationMs int64
}

// CharStats stores per-character stats for a session.
type CharStats struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// CharAggregate aggregates character stats across sessions.
type CharAggregate struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID  int64
	EndedAt    time.Time
	ArticleID  string
	Paragraph  int
	Correct    int
	Incorrect  int
	DurationMs int64
}
