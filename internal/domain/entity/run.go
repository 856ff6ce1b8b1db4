package entity

import "time"

// RunStatus is the lifecycle state of a recorded task run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one execution of a scheduled task as kept in run history.
type Run struct {
	ID         int64
	Task       string
	Status     RunStatus
	StartedAt  time.Time
	FinishedAt *time.Time
	Error      string
	Compliant  int
	Missed     int
	ReportTS   string
}
