package quiz

import "time"

// Summary holds the data shown when a quiz ends.
type Summary struct {
	Score    int
	Total    int
	Percent  float64
	Duration time.Duration
}

// Summary reports the score so far. Percent is relative to all questions.
func (s Session) Summary() Summary {
	sum := Summary{Score: s.Score, Total: len(s.Questions)}
	if sum.Total > 0 {
		sum.Percent = float64(s.Score) * 100 / float64(sum.Total)
	}
	if !s.FinishedAt.IsZero() {
		sum.Duration = s.FinishedAt.Sub(s.StartedAt)
	}
	return sum
}
