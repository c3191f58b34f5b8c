package model

import "time"

// Progress is the shared progress vocabulary used by goals and process goals.
type Progress string

const (
	ProgressNotStarted        Progress = "not_started"
	ProgressInProgress        Progress = "in_progress"
	ProgressGoodProgress      Progress = "good_progress"
	ProgressExcellentProgress Progress = "excellent_progress"
	ProgressCompleted         Progress = "completed"
)

// Valid reports whether p is one of the recognized progress values.
func (p Progress) Valid() bool {
	switch p {
	case ProgressNotStarted, ProgressInProgress, ProgressGoodProgress,
		ProgressExcellentProgress, ProgressCompleted:
		return true
	}
	return false
}

// Percentage maps a progress value to its fixed percentage.
func (p Progress) Percentage() int {
	switch p {
	case ProgressInProgress:
		return 25
	case ProgressGoodProgress:
		return 50
	case ProgressExcellentProgress:
		return 75
	case ProgressCompleted:
		return 100
	default:
		return 0
	}
}

// overdue reports whether a target date has passed for an uncompleted item.
// Completed items are never overdue, whatever the target date says.
func overdue(targetDate *time.Time, progress Progress, today time.Time) bool {
	if targetDate == nil || progress == ProgressCompleted {
		return false
	}
	y, m, d := today.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	return targetDate.Before(midnight)
}
