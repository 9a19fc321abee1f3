// Package lifecycle holds the pure application-state rules: who may apply
// to a position, and which status transitions are legal. Nothing in this
// package performs I/O; the services call these guards before touching the
// repositories, so a denial never reaches the database.
package lifecycle

import (
	"time"

	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/pkg/apperrors"
)

// Decision is an administrator's verdict on a pending application
type Decision string

const (
	DecisionApprove  Decision = "APPROVE"
	DecisionReject   Decision = "REJECT"
	DecisionWithdraw Decision = "WITHDRAW" // Student-initiated, PENDING only
)

// CanApply checks whether the student may submit a new application for the
// position, given every application the student has ever filed. Denials are
// checked in a fixed order so callers surface a stable reason:
// employment, pending application, duplicate target, closed position.
func CanApply(student *models.Student, position *models.Position, existing []*models.Application) error {
	if student.HasJob {
		return apperrors.ErrAlreadyEmployed
	}

	for _, app := range existing {
		if app.StudentID != student.ID {
			continue
		}
		if app.Status == models.ApplicationPending {
			return apperrors.ErrPendingExists
		}
		// A rejected or withdrawn attempt does not block re-application
		if app.PositionID == position.ID && app.Status.Active() {
			return apperrors.ErrDuplicateTarget
		}
	}

	if position.Status != models.PositionOpen {
		return apperrors.ErrPositionClosed
	}

	return nil
}

// Outcome is the result of applying a decision to a pending application.
type Outcome struct {
	Application models.Application
	// AssignJob is set on approval: the caller must flip the student's
	// has_job flag and create the workload record in the same transaction.
	AssignJob bool
}

// Decide applies an administrator decision to an application. Only PENDING
// applications may transition; APPROVED, REJECTED and WITHDRAWN are terminal.
// The input is copied, never mutated.
func Decide(app *models.Application, decision Decision, note string, score *float64, now time.Time) (*Outcome, error) {
	if app.Status != models.ApplicationPending {
		return nil, apperrors.ErrInvalidTransition
	}

	updated := *app
	updated.ReviewedAt = &now
	if note != "" {
		updated.Note = &note
	}
	if score != nil {
		updated.FinalScore = score
	}

	switch decision {
	case DecisionApprove:
		updated.Status = models.ApplicationApproved
		return &Outcome{Application: updated, AssignJob: true}, nil
	case DecisionReject:
		updated.Status = models.ApplicationRejected
		return &Outcome{Application: updated}, nil
	case DecisionWithdraw:
		updated.Status = models.ApplicationWithdrawn
		return &Outcome{Application: updated}, nil
	default:
		return nil, apperrors.ErrInvalidTransition
	}
}

// BuildWorkload derives the annual workload record for an approved
// application. TotalHours is copied from the position's fixed quota; later
// edits to the position never touch this record.
func BuildWorkload(app *models.Application, position *models.Position, period Period) models.WorkloadSummary {
	return models.WorkloadSummary{
		StudentID:   app.StudentID,
		PositionID:  position.ID,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
		TotalHours:  position.Workload,
		Status:      models.WorkloadNormal,
	}
}
