package scoring

import (
	"testing"
	"time"
)

func TestClassifyTrend(t *testing.T) {
	prev := &ScoreHistoryEntry{Date: time.Now(), Score: 500, Grade: "C"}

	tests := []struct {
		name     string
		previous *ScoreHistoryEntry
		newScore int
		want     TrendDirection
		wantDelta int
	}{
		{"no history is stable", nil, 750, TrendStable, 0},
		{"small gain is stable", prev, 505, TrendStable, 5},
		{"delta of exactly +10 is stable", prev, 510, TrendStable, 10},
		{"delta of +11 is up", prev, 511, TrendUp, 11},
		{"delta of +12 is up", prev, 512, TrendUp, 12},
		{"delta of exactly -10 is stable", prev, 490, TrendStable, -10},
		{"delta of -11 is down", prev, 489, TrendDown, -11},
		{"large drop is down", prev, 300, TrendDown, -200},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir, delta := ClassifyTrend(tc.previous, tc.newScore)
			if dir != tc.want {
				t.Errorf("direction = %q, want %q", dir, tc.want)
			}
			if delta != tc.wantDelta {
				t.Errorf("delta = %d, want %d", delta, tc.wantDelta)
			}
		})
	}
}
