package dto

// ReportFilter narrows admin reports by academic year and department.
// Zero values mean "all".
type ReportFilter struct {
	Year         int   `form:"year"`
	DepartmentID int64 `form:"dept"`
}

// PeriodTotals sums scholarship ledger entries over a filter. Deduction
// entries subtract from the net rather than add.
type PeriodTotals struct {
	Year         int     `json:"year"`
	DepartmentID int64   `json:"departmentId,omitempty"`
	Gross        float64 `json:"gross"`
	Deductions   float64 `json:"deductions"`
	Net          float64 `json:"net"`
	EntryCount   int     `json:"entryCount"`
}

// CreateScholarshipRequest appends a ledger entry. Amount must be the
// positive magnitude; direction comes from the type.
type CreateScholarshipRequest struct {
	StudentID int64   `json:"student_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Type      string  `json:"type" binding:"required,oneof=REGULAR SUPPLEMENTAL DEDUCTION"`
	Reason    string  `json:"reason" binding:"required"`
	Status    string  `json:"status" binding:"omitempty,oneof=ISSUED PENDING"`
}
