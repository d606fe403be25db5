package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuider/internal/model"
	"github.com/verte-zerg/tuider/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "tuider.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Hour)
		_, err := st.InsertSession(ctx, model.ReadingSession{
			StartedAt:  start,
			EndedAt:    start.Add(time.Minute),
			Source:     "book.md",
			TotalWords: 300,
			WordsRead:  100 * (i + 1),
			FinalWPM:   250 + 50*i,
			Finished:   i == 2,
		})
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
	}

	report, err := BuildReport(ctx, st, model.HistoryConfig{Last: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(report.Sessions))
	}
	if report.Summary.Sessions != 3 || report.Summary.WordsRead != 600 {
		t.Fatalf("summary should cover all sessions: %+v", report.Summary)
	}

	var buf bytes.Buffer
	if err := RenderReport(&buf, report, 2); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sessions: 3 (1 finished)", "Words read: 600", "Effective WPM: 200.0", "book.md", "300/300", "WPM trend:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, model.HistorySummary{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No reading sessions found.") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestEffectiveWPM(t *testing.T) {
	if got := EffectiveWPM(300, 2*time.Minute); got != 150 {
		t.Fatalf("expected 150, got %v", got)
	}
	if got := EffectiveWPM(10, 0); got != 0 {
		t.Fatalf("expected 0 for zero duration, got %v", got)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{1, 1, 1}); got != "+++" {
		t.Fatalf("flat sparkline = %q", got)
	}
	got := Sparkline([]float64{0, 10})
	if got != " @" {
		t.Fatalf("sparkline extremes = %q", got)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MovingAverage = %v, want %v", got, want)
		}
	}
}

func TestCompletion(t *testing.T) {
	cases := []struct {
		rs   model.ReadingSession
		want float64
	}{
		{model.ReadingSession{WordsRead: 50, TotalWords: 200}, 0.25},
		{model.ReadingSession{WordsRead: 10, TotalWords: 10}, 1},
		{model.ReadingSession{WordsRead: 3}, 0},
	}
	for _, tc := range cases {
		if got := Completion(tc.rs); got != tc.want {
			t.Fatalf("Completion(%+v) = %v, want %v", tc.rs, got, tc.want)
		}
	}
}
