package stats

import (
	"fmt"
	"sort"

	"github.com/audi70r/ghprofile/internal/github"
)

const (
	// DefaultRecentWeeks is the weekly window charted in activity mode
	DefaultRecentWeeks = 12
	// DefaultRecentCommits is the length of the recent commit list
	DefaultRecentCommits = 10

	dateLayout = "2006-01-02"
)

// Point is one bar of a chart
type Point struct {
	Label string
	Count int
}

// Series is an ordered sequence of chart points
type Series []Point

// Labels returns the point labels in order
func (s Series) Labels() []string {
	labels := make([]string, len(s))
	for i, p := range s {
		labels[i] = p.Label
	}
	return labels
}

// Values returns the point counts in order
func (s Series) Values() []int {
	values := make([]int, len(s))
	for i, p := range s {
		values[i] = p.Count
	}
	return values
}

// Total returns the sum of all counts
func (s Series) Total() int {
	total := 0
	for _, p := range s {
		total += p.Count
	}
	return total
}

// Average returns the mean count per point
func (s Series) Average() float64 {
	if len(s) == 0 {
		return 0
	}
	return float64(s.Total()) / float64(len(s))
}

// Peak returns the first point with the highest count
func (s Series) Peak() (Point, bool) {
	if len(s) == 0 {
		return Point{}, false
	}
	peak := s[0]
	for _, p := range s[1:] {
		if p.Count > peak.Count {
			peak = p
		}
	}
	return peak, true
}

// Max returns the highest count, or 0 for an empty series
func (s Series) Max() int {
	peak, _ := s.Peak()
	return peak.Count
}

// DailyCommits buckets commits by the UTC calendar date of their author
// timestamp. Points are sorted ascending by date.
func DailyCommits(commits []github.Commit) Series {
	counts := make(map[string]int)
	for _, c := range commits {
		counts[c.Author.Date.UTC().Format(dateLayout)]++
	}

	dates := make([]string, 0, len(counts))
	for date := range counts {
		dates = append(dates, date)
	}
	// ISO dates sort chronologically as strings
	sort.Strings(dates)

	series := make(Series, len(dates))
	for i, date := range dates {
		series[i] = Point{Label: date, Count: counts[date]}
	}
	return series
}

// RecentWeeks charts the last n weeks of an oldest-first activity summary.
// Labels are positional within the window: "Week 1" is the oldest shown.
func RecentWeeks(weeks []github.WeeklyActivity, n int) Series {
	if n <= 0 {
		n = DefaultRecentWeeks
	}
	if len(weeks) > n {
		weeks = weeks[len(weeks)-n:]
	}

	series := make(Series, len(weeks))
	for i, w := range weeks {
		series[i] = Point{
			Label: fmt.Sprintf("Week %d", i+1),
			Count: w.Total,
		}
	}
	return series
}

// RecentCommits returns up to n commits from a newest-first list
func RecentCommits(commits []github.Commit, n int) []github.Commit {
	if n <= 0 {
		n = DefaultRecentCommits
	}
	if len(commits) > n {
		return commits[:n]
	}
	return commits
}
