// Package stats contains reading history calculations and reporting.
package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/tuider/internal/model"
	"github.com/verte-zerg/tuider/internal/store"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Sessions []model.ReadingSession
	Summary  model.HistorySummary
}

// BuildReport loads the sessions and totals selected by cfg.
func BuildReport(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	summary, err := st.Summary(ctx, cfg.Source)
	if err != nil {
		return Report{}, err
	}
	return Report{Sessions: sessions, Summary: summary}, nil
}

// RenderReport writes the summary and session table.
func RenderReport(w io.Writer, r Report, window int) error {
	if err := RenderSummary(w, r.Summary); err != nil {
		return err
	}
	return RenderSessions(w, r.Sessions, window)
}
