package services

import (
	"sort"
	"time"

	"taskpad/internal/models"
)

const historyWindowDays = 7

// TaskDayGroup is a single calendar day of the task history:
// the date, its weekday name and every task created on that day.
type TaskDayGroup struct {
	Date    string
	DayName string
	Tasks   []*models.Task
}

// groupTasksByDay buckets tasks by the local calendar date of their
// creation and returns the buckets sorted by date descending. Days
// with no tasks produce no group.
func groupTasksByDay(tasks []*models.Task) []TaskDayGroup {
	byDate := make(map[string]*TaskDayGroup)
	for _, task := range tasks {
		date := task.CreatedAt.Format(time.DateOnly)
		group, ok := byDate[date]
		if !ok {
			group = &TaskDayGroup{
				Date:    date,
				DayName: task.CreatedAt.Weekday().String(),
			}
			byDate[date] = group
		}
		group.Tasks = append(group.Tasks, task)
	}

	groups := make([]TaskDayGroup, 0, len(byDate))
	for _, group := range byDate {
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Date > groups[j].Date
	})
	return groups
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
