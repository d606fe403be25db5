// Package stats contains reading history calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/tuider/internal/model"
)

const sparkChars = " .:-=+*#%@"

// EffectiveWPM returns the words actually read per minute of wall time,
// including pauses.
func EffectiveWPM(wordsRead int, d time.Duration) float64 {
	if d <= 0 || wordsRead <= 0 {
		return 0
	}
	return float64(wordsRead) / d.Minutes()
}

// Completion returns the fraction of the document that was reached.
func Completion(rs model.ReadingSession) float64 {
	if rs.TotalWords <= 0 {
		return 0
	}
	return float64(rs.WordsRead) / float64(rs.TotalWords)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
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

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
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

// RenderSummary prints totals for the reading history.
func RenderSummary(w io.Writer, sum model.HistorySummary) error {
	if sum.Sessions == 0 {
		_, err := fmt.Fprintln(w, "No reading sessions found.")
		return err
	}
	total := time.Duration(sum.DurationMs) * time.Millisecond
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d (%d finished)", sum.Sessions, sum.Finished),
		fmt.Sprintf("Words read: %d", sum.WordsRead),
		fmt.Sprintf("Time reading: %s", total.Round(time.Second)),
		fmt.Sprintf("Effective WPM: %.1f", EffectiveWPM(sum.WordsRead, total)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderSessions prints one table row per session followed by a WPM trend.
func RenderSessions(w io.Writer, sessions []model.ReadingSession, window int) error {
	if len(sessions) == 0 {
		return nil
	}
	headers := []string{"Ended", "Source", "Read", "%", "Done", "WPM", "Eff. WPM"}
	rows := make([][]string, 0, len(sessions))
	trend := make([]float64, 0, len(sessions))
	for _, rs := range sessions {
		eff := EffectiveWPM(rs.WordsRead, rs.Duration())
		trend = append(trend, float64(rs.FinalWPM))
		done := ""
		if rs.Finished {
			done = "yes"
		}
		rows = append(rows, []string{
			rs.EndedAt.Local().Format("2006-01-02 15:04"),
			rs.Source,
			fmt.Sprintf("%d/%d", rs.WordsRead, rs.TotalWords),
			fmt.Sprintf("%.0f", Completion(rs)*100),
			done,
			fmt.Sprintf("%d", rs.FinalWPM),
			fmt.Sprintf("%.1f", eff),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 5: true, 6: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(trend) < 2 {
		return nil
	}
	_, err := fmt.Fprintf(w, "\nWPM trend: %s\n", Sparkline(MovingAverage(trend, window)))
	return err
}
