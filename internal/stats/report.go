package stats

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/typelingo/internal/model"
	"github.com/verte-zerg/typelingo/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions         []model.SessionAggregate
	WindowSessionIDs []int64
	CharAggsAll      []model.CharAggregate
	CharAggsWindow   []model.CharAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list sessions: %w", err)
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}

	allIDs := sessionIDs(sessions)
	windowIDs := lastSessionIDs(sessions, cfg.CurveWindow)
	charAggsAll, err := st.ListCharAggregatesForSessions(ctx, allIDs)
	if err != nil {
		return Report{}, fmt.Errorf("failed to aggregate characters: %w", err)
	}
	charAggsWindow, err := st.ListCharAggregatesForSessions(ctx, windowIDs)
	if err != nil {
		return Report{}, fmt.Errorf("failed to aggregate characters: %w", err)
	}

	return Report{
		Sessions:         sessions,
		WindowSessionIDs: windowIDs,
		CharAggsAll:      charAggsAll,
		CharAggsWindow:   charAggsWindow,
	}, nil
}

// Render writes the full text report. width bounds the trend lines; zero
// means unbounded.
func (r Report) Render(w io.Writer, cfg model.StatsConfig, titles map[string]string, width int) error {
	if err := RenderSummary(w, r.Sessions); err != nil {
		return err
	}
	if len(r.Sessions) == 0 {
		return nil
	}
	if err := RenderTrend(w, r.Sessions, cfg.CurveWindow, width); err != nil {
		return err
	}
	if cfg.ArticleID == "" {
		if err := RenderArticleTable(w, r.Sessions, titles); err != nil {
			return err
		}
	}
	if top := TopCharsByFrequency(r.CharAggsAll, 10); len(top) > 0 {
		if _, err := fmt.Fprintf(w, "Most typed: %s\n\n", strings.Join(top, " ")); err != nil {
			return err
		}
	}
	return RenderCharTable(w, r.CharAggsWindow)
}

func sessionIDs(sessions []model.SessionAggregate) []int64 {
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	return ids
}

func lastSessionIDs(sessions []model.SessionAggregate, window int) []int64 {
	if window <= 0 || len(sessions) <= window {
		return sessionIDs(sessions)
	}
	return sessionIDs(sessions[len(sessions)-window:])
}
