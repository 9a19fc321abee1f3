package dto

import "time"

// CreatePositionRequest is the administrator posting payload
type CreatePositionRequest struct {
	Title          string    `json:"title" binding:"required"`
	Type           string    `json:"type" binding:"required,oneof=TA RA OTHER"`
	DepartmentID   int64     `json:"department_id" binding:"required"`
	SupervisorName string    `json:"supervisor_name" binding:"required"`
	Year           int       `json:"year" binding:"required"`
	TotalSlots     int       `json:"total_slots" binding:"required,min=1"`
	SalaryMonth    int       `json:"salary_month" binding:"required,min=0"`
	Description    string    `json:"description"`
	Workload       int       `json:"workload" binding:"required,min=1"`
	Requirements   *string   `json:"requirements"`
	Deadline       time.Time `json:"deadline" binding:"required"`
}

// UpdatePositionRequest edits an existing posting. Workload edits never
// propagate to workload summaries already derived from this posting.
type UpdatePositionRequest struct {
	Title          *string    `json:"title"`
	SupervisorName *string    `json:"supervisor_name"`
	TotalSlots     *int       `json:"total_slots"`
	SalaryMonth    *int       `json:"salary_month"`
	Description    *string    `json:"description"`
	Workload       *int       `json:"workload"`
	Requirements   *string    `json:"requirements"`
	Deadline       *time.Time `json:"deadline"`
	Status         *string    `json:"status" binding:"omitempty,oneof=OPEN CLOSED COMPLETED"`
}
