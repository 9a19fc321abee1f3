package models

import "time"

// ApplyType distinguishes a request to fill a position from a request to quit one
type ApplyType string

const (
	ApplyTypeApply ApplyType = "APPLY"
	ApplyTypeQuit  ApplyType = "QUIT"
)

// Application defines the central transactional entity based on the
// 'applications' table. Created PENDING by a student submission, mutated
// exactly once by an administrator decision, never deleted.
type Application struct {
	ID              int64             `json:"id" db:"id"`
	StudentID       int64             `json:"studentId" db:"student_id"`
	PositionID      int64             `json:"positionId" db:"position_id"`
	ApplyTime       time.Time         `json:"applyTime" db:"apply_time"`
	ApplyType       ApplyType         `json:"applyType" db:"apply_type"`
	ApplyReason     string            `json:"applyReason" db:"apply_reason"`
	HasCommunicated bool              `json:"hasCommunicated" db:"has_communicated"` // Pre-communicated with supervisor
	Materials       []string          `json:"materials,omitempty" db:"materials"`    // Uploaded-material references
	Status          ApplicationStatus `json:"status" db:"status"`
	FinalScore      *float64          `json:"finalScore,omitempty" db:"final_score"` // Evaluation score set at review
	Note            *string           `json:"note,omitempty" db:"note"`              // Review note
	ReviewedAt      *time.Time        `json:"reviewedAt,omitempty" db:"reviewed_at"`

	// Relations (populated when needed)
	Student  *Student  `json:"student,omitempty"`
	Position *Position `json:"position,omitempty"`
}
