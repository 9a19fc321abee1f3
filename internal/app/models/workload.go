package models

import "time"

// WorkloadSummary is the derived annual workload record based on the
// 'workload_summaries' table. TotalHours is copied from the position's fixed
// workload at approval time and is never recomputed, even if the position is
// edited afterward. Created exactly once per approved application.
type WorkloadSummary struct {
	ID          int64          `json:"id" db:"id"`
	StudentID   int64          `json:"studentId" db:"student_id"`
	PositionID  int64          `json:"positionId" db:"position_id"`
	PeriodStart time.Time      `json:"periodStart" db:"period_start"`
	PeriodEnd   time.Time      `json:"periodEnd" db:"period_end"`
	TotalHours  int            `json:"totalHours" db:"total_hours"`
	Status      WorkloadStatus `json:"status" db:"status"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Student  *Student  `json:"student,omitempty"`
	Position *Position `json:"position,omitempty"`
}
