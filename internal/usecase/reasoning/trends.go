package reasoning

import (
	"math"
	"sort"

	"github.com/kaira-health/medkb/internal/domain"
)

// recentWindow is the nominal size of the "recent" comparison window.
const recentWindow = 3

// ClassifyTrend computes the trend direction and percentage change for a
// chronologically sorted series. Fewer than 2 points is stable by
// definition, never an error.
//
// The recent window is the last recentWindow points, capped at n-1 so at
// least one older point remains; the older window is the remainder. The
// change is the recent mean relative to the older mean.
//
// Sign convention is literal: any moderate rise classifies as improving
// even for parameters where higher values are clinically worse. Callers
// needing a clinically-directed reading must layer it on top.
func ClassifyTrend(points []domain.SeriesPoint) (domain.TrendDirection, float64) {
	if len(points) < 2 {
		return domain.TrendStable, 0
	}

	split := len(points) - recentWindow
	if split < 1 {
		split = 1
	}
	older := points[:split]
	recent := points[split:]

	olderMean := mean(older)
	recentMean := mean(recent)
	if olderMean == 0 {
		return domain.TrendStable, 0
	}

	change := (recentMean - olderMean) / olderMean * 100

	switch {
	case math.Abs(change) < 5:
		return domain.TrendStable, change
	case change > 15:
		return domain.TrendFluctuating, change
	case change > 0:
		return domain.TrendImproving, change
	default:
		return domain.TrendDeclining, change
	}
}

func mean(points []domain.SeriesPoint) float64 {
	var sum float64
	for _, p := range points {
		sum += p.Value
	}
	return sum / float64(len(points))
}

// sortSeries orders points ascending by date, stable for equal dates.
func sortSeries(points []domain.SeriesPoint) []domain.SeriesPoint {
	sorted := make([]domain.SeriesPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
