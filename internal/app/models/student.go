package models

// Student defines the student model based on the 'students' table.
// HasJob is maintained exclusively by the application lifecycle: it is true
// if and only if the student has exactly one APPROVED application.
type Student struct {
	ID             int64            `json:"id" db:"id"`
	UserID         int64            `json:"userId" db:"user_id"`
	StudentNo      string           `json:"studentNo" db:"student_no"` // Unique, immutable student number
	Name           string           `json:"name" db:"name"`
	Gender         string           `json:"gender,omitempty" db:"gender"` // M / F / O
	EnrollmentYear int              `json:"enrollmentYear" db:"enrollment_year"`
	Program        string           `json:"program" db:"program"`
	DepartmentID   *int64           `json:"departmentId,omitempty" db:"department_id"`
	IsFulltime     bool             `json:"isFulltime" db:"is_fulltime"`
	Status         EnrollmentStatus `json:"status" db:"status"`
	Verified       bool             `json:"verified" db:"verified"` // Admin verification state
	HasJob         bool             `json:"hasJob" db:"has_job"`
	BankAccount    *string          `json:"bankAccount,omitempty" db:"bank_account"` // For scholarship disbursement
	Phone          *string          `json:"phone,omitempty" db:"phone"`

	// Academic metrics, shown to administrators during review only
	GPA           *float64 `json:"gpa,omitempty" db:"gpa"`
	ResearchCount *int     `json:"researchCount,omitempty" db:"research_count"`

	// Relations (populated when needed)
	User       *User       `json:"user,omitempty"`
	Department *Department `json:"department,omitempty"`
}
