package progress

import "math"

// Summary is the derived completion of a lesson.
type Summary struct {
	Done    int
	Total   int
	Percent int
}

// Complete is true when every step of a non-empty lesson is tried.
func (s Summary) Complete() bool {
	return s.Total > 0 && s.Done == s.Total
}

// Percent returns round(100*done/total), or 0 for an empty lesson.
func Percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}

// Summarize counts the tried positions 1..total.
func Summarize(total int, tried func(position int) bool) Summary {
	done := 0
	for pos := 1; pos <= total; pos++ {
		if tried(pos) {
			done++
		}
	}
	return Summary{Done: done, Total: total, Percent: Percent(done, total)}
}
