package scoring

// TrendDirection classifies score movement between consecutive scans.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// trendThreshold is the strict delta beyond which movement counts as a trend.
const trendThreshold = 10

// ClassifyTrend compares a new score against the previous history entry.
// Movement must exceed the threshold strictly; a delta of exactly +/-10 is
// stable. A vendor with no prior history is stable by definition.
func ClassifyTrend(previous *ScoreHistoryEntry, newScore int) (TrendDirection, int) {
	if previous == nil {
		return TrendStable, 0
	}
	delta := newScore - previous.Score
	switch {
	case delta > trendThreshold:
		return TrendUp, delta
	case delta < -trendThreshold:
		return TrendDown, delta
	default:
		return TrendStable, delta
	}
}
