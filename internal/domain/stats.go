package domain

import "fmt"

// Period selects the range of a statistics query
type Period string

const (
	PeriodToday Period = "today"
	PeriodAll   Period = "all"
)

// StatsCounts aggregates moderation outcomes
type StatsCounts struct {
	Published int
	Rejected  int
}

// Total returns the number of moderated posts
func (s StatsCounts) Total() int {
	return s.Published + s.Rejected
}

// PublishedPercent formats the published share, e.g. "75.00%"
func (s StatsCounts) PublishedPercent() string {
	return percent(s.Published, s.Total())
}

// RejectedPercent formats the rejected share, e.g. "25.00%"
func (s StatsCounts) RejectedPercent() string {
	return percent(s.Rejected, s.Total())
}

func percent(part, total int) string {
	if total == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(part)*100/float64(total))
}
