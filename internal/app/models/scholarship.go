package models

import "time"

// ScholarshipRecord is an append-only ledger entry based on the
// 'scholarship_records' table. Amount is always a positive magnitude; the
// type determines the sign at aggregation time (deductions subtract).
// Entries are never edited or deleted, only superseded by compensating ones.
type ScholarshipRecord struct {
	ID        int64             `json:"id" db:"id"`
	StudentID int64             `json:"studentId" db:"student_id"`
	Amount    float64           `json:"amount" db:"amount"`
	IssueDate time.Time         `json:"issueDate" db:"issue_date"`
	Type      ScholarshipType   `json:"type" db:"type"`
	Reason    string            `json:"reason" db:"reason"` // e.g. "2023 Fall TA stipend"
	Status    ScholarshipStatus `json:"status" db:"status"`
	CreatedAt time.Time         `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
}

// Signed returns the amount with the sign implied by the entry type.
func (r *ScholarshipRecord) Signed() float64 {
	if r.Type == ScholarshipDeduction {
		return -r.Amount
	}
	return r.Amount
}
