package models

import "time"

// Position defines a job posting based on the 'positions' table.
// Workload is a fixed quota attached to the posting; it is never computed
// from attendance or time logs.
type Position struct {
	ID             int64          `json:"id" db:"id"`
	Title          string         `json:"title" db:"title"`
	Type           PositionType   `json:"type" db:"type"`
	DepartmentID   int64          `json:"departmentId" db:"department_id"`
	SupervisorName string         `json:"supervisorName" db:"supervisor_name"`
	Year           int            `json:"year" db:"year"` // Academic year the posting belongs to
	TotalSlots     int            `json:"totalSlots" db:"total_slots"`
	SalaryMonth    int            `json:"salaryMonth" db:"salary_month"` // Monthly stipend
	Description    string         `json:"description" db:"description"`
	Workload       int            `json:"workload" db:"workload"` // Fixed standard workload in hours
	Requirements   *string        `json:"requirements,omitempty" db:"requirements"`
	Deadline       time.Time      `json:"deadline" db:"deadline"`
	Status         PositionStatus `json:"status" db:"status"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}
