package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleAdmin   RoleType = "ADMIN"
)

// ApplicationStatus is the state of a position application
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "PENDING"
	ApplicationApproved  ApplicationStatus = "APPROVED"
	ApplicationRejected  ApplicationStatus = "REJECTED"
	ApplicationWithdrawn ApplicationStatus = "WITHDRAWN"
)

// Terminal reports whether the status permits no further transitions.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationApproved || s == ApplicationRejected || s == ApplicationWithdrawn
}

// Active reports whether the application still binds the student
// (counts toward the one-active-application limit).
func (s ApplicationStatus) Active() bool {
	return s == ApplicationPending || s == ApplicationApproved
}

// PositionType classifies a posting
type PositionType string

const (
	PositionTA    PositionType = "TA"
	PositionRA    PositionType = "RA"
	PositionOther PositionType = "OTHER"
)

// PositionStatus is the lifecycle state of a posting
type PositionStatus string

const (
	PositionOpen      PositionStatus = "OPEN"
	PositionClosed    PositionStatus = "CLOSED"
	PositionCompleted PositionStatus = "COMPLETED"
)

// ScholarshipType determines the sign of a ledger entry at aggregation time.
// Amounts are always stored as positive magnitudes.
type ScholarshipType string

const (
	ScholarshipRegular      ScholarshipType = "REGULAR"
	ScholarshipSupplemental ScholarshipType = "SUPPLEMENTAL"
	ScholarshipDeduction    ScholarshipType = "DEDUCTION"
)

// ScholarshipStatus is the disbursement state of a ledger entry
type ScholarshipStatus string

const (
	ScholarshipIssued  ScholarshipStatus = "ISSUED"
	ScholarshipPending ScholarshipStatus = "PENDING"
)

// WorkloadStatus marks a workload summary as normal or anomalous
type WorkloadStatus string

const (
	WorkloadNormal    WorkloadStatus = "NORMAL"
	WorkloadAnomalous WorkloadStatus = "ANOMALOUS"
)

// EnrollmentStatus is the student's registration state
type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "ENROLLED"
	EnrollmentSuspended EnrollmentStatus = "SUSPENDED"
	EnrollmentGraduated EnrollmentStatus = "GRADUATED"
	EnrollmentLeft      EnrollmentStatus = "LEFT"
)
