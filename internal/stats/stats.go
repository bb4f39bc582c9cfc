// Package stats derives the dashboard figures from a set of tasks.
package stats

import (
	"time"

	"taskboard/internal/models"
)

// HistogramDays is the number of trailing calendar days in the histogram.
const HistogramDays = 7

const dateLayout = "2006-01-02"

// Daily holds parallel date and count slices, oldest day first.
type Daily struct {
	Dates  []string `json:"dates"`
	Counts []int    `json:"counts"`
}

// Statistics is the dashboard summary of a task set.
type Statistics struct {
	Completed  int   `json:"completed"`
	Pending    int   `json:"pending"`
	DailyTasks Daily `json:"dailyTasks"`
}

// Compute counts completed and pending tasks and buckets creation times by
// UTC calendar day over the seven days ending on the day of now.
func Compute(tasks []models.Task, now time.Time) Statistics {
	today := truncateDay(now)
	oldest := today.AddDate(0, 0, -(HistogramDays - 1))

	out := Statistics{
		DailyTasks: Daily{
			Dates:  make([]string, HistogramDays),
			Counts: make([]int, HistogramDays),
		},
	}
	for i := 0; i < HistogramDays; i++ {
		out.DailyTasks.Dates[i] = oldest.AddDate(0, 0, i).Format(dateLayout)
	}

	for _, t := range tasks {
		if t.Completed {
			out.Completed++
		}
		day := truncateDay(t.CreatedAt)
		if day.Before(oldest) || day.After(today) {
			continue
		}
		out.DailyTasks.Counts[int(day.Sub(oldest)/(24*time.Hour))]++
	}
	out.Pending = len(tasks) - out.Completed
	return out
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
