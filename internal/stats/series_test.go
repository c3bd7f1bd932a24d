package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audi70r/ghprofile/internal/github"
)

func commitAt(ts string) github.Commit {
	date, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return github.Commit{SHA: ts, Author: github.Identity{Date: date}}
}

func TestDailyCommits_GroupsByDate(t *testing.T) {
	commits := []github.Commit{
		commitAt("2024-03-02T09:00:00Z"),
		commitAt("2024-03-01T23:59:59Z"),
		commitAt("2024-03-02T18:30:00Z"),
		commitAt("2024-02-28T00:00:00Z"),
		commitAt("2024-03-02T00:00:01Z"),
	}

	series := DailyCommits(commits)

	assert.Equal(t, Series{
		{Label: "2024-02-28", Count: 1},
		{Label: "2024-03-01", Count: 1},
		{Label: "2024-03-02", Count: 3},
	}, series)
}

func TestDailyCommits_UsesUTCDay(t *testing.T) {
	// 23:30 at UTC-05:00 is already the next day in UTC
	commits := []github.Commit{
		commitAt("2024-03-01T23:30:00-05:00"),
		commitAt("2024-03-02T01:00:00Z"),
	}

	series := DailyCommits(commits)
	require.Len(t, series, 1)
	assert.Equal(t, "2024-03-02", series[0].Label)
	assert.Equal(t, 2, series[0].Count)
}

func TestDailyCommits_Invariants(t *testing.T) {
	base := time.Date(2023, 12, 25, 6, 0, 0, 0, time.UTC)
	var commits []github.Commit
	prefixes := make(map[string]struct{})
	for i := 0; i < 97; i++ {
		date := base.Add(time.Duration(i*i%211) * 7 * time.Hour)
		commits = append(commits, github.Commit{Author: github.Identity{Date: date}})
		prefixes[date.Format(time.RFC3339)[:10]] = struct{}{}
	}

	series := DailyCommits(commits)

	assert.Len(t, series, len(prefixes))
	assert.Equal(t, len(commits), series.Total())
	for i := 1; i < len(series); i++ {
		assert.Less(t, series[i-1].Label, series[i].Label)
	}
}

func TestDailyCommits_Empty(t *testing.T) {
	series := DailyCommits(nil)
	assert.Empty(t, series)
	assert.NotNil(t, series)
	assert.Equal(t, 0, series.Total())
}

func weeks(totals ...int) []github.WeeklyActivity {
	start := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	result := make([]github.WeeklyActivity, len(totals))
	for i, total := range totals {
		result[i] = github.WeeklyActivity{
			Week:  start.AddDate(0, 0, 7*i),
			Total: total,
		}
	}
	return result
}

func TestRecentWeeks_TruncatesToWindow(t *testing.T) {
	totals := make([]int, 52)
	for i := range totals {
		totals[i] = i
	}

	series := RecentWeeks(weeks(totals...), DefaultRecentWeeks)

	require.Len(t, series, 12)
	for i, p := range series {
		assert.Equal(t, fmt.Sprintf("Week %d", i+1), p.Label)
		assert.Equal(t, 40+i, p.Count)
	}
}

func TestRecentWeeks_ShortInput(t *testing.T) {
	series := RecentWeeks(weeks(5, 0, 7), 12)

	assert.Equal(t, Series{
		{Label: "Week 1", Count: 5},
		{Label: "Week 2", Count: 0},
		{Label: "Week 3", Count: 7},
	}, series)
}

func TestRecentWeeks_Empty(t *testing.T) {
	assert.Empty(t, RecentWeeks(nil, 12))
}

func TestRecentCommits(t *testing.T) {
	var commits []github.Commit
	for i := 0; i < 15; i++ {
		commits = append(commits, github.Commit{SHA: fmt.Sprintf("%02d", i)})
	}

	recent := RecentCommits(commits, DefaultRecentCommits)
	require.Len(t, recent, 10)
	assert.Equal(t, "00", recent[0].SHA)

	assert.Len(t, RecentCommits(commits[:3], 10), 3)
}

func TestSeries_Summary(t *testing.T) {
	s := Series{{"a", 2}, {"b", 6}, {"c", 6}, {"d", 2}}

	assert.Equal(t, 16, s.Total())
	assert.InDelta(t, 4.0, s.Average(), 0.0001)
	assert.Equal(t, 6, s.Max())
	assert.Equal(t, []string{"a", "b", "c", "d"}, s.Labels())
	assert.Equal(t, []int{2, 6, 6, 2}, s.Values())

	peak, ok := s.Peak()
	require.True(t, ok)
	assert.Equal(t, "b", peak.Label)

	_, ok = Series{}.Peak()
	assert.False(t, ok)
	assert.Zero(t, Series{}.Average())
}
