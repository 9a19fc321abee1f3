package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/db"
	"github.com/demirhan/taportal/internal/pkg/apperrors"
	"github.com/demirhan/taportal/internal/pkg/dberrors"
)

const applicationColumns = `
	id, student_id, position_id, apply_time, apply_type, apply_reason,
	has_communicated, materials, status, final_score, note, reviewed_at
`

// ApplicationRepository handles database operations for applications
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
	}
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	var app models.Application
	err := row.Scan(
		&app.ID,
		&app.StudentID,
		&app.PositionID,
		&app.ApplyTime,
		&app.ApplyType,
		&app.ApplyReason,
		&app.HasCommunicated,
		&app.Materials,
		&app.Status,
		&app.FinalScore,
		&app.Note,
		&app.ReviewedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Create inserts a new PENDING application. The partial unique indexes on
// the table are the last line of defense against concurrent duplicate
// submissions; the eligibility guards run first in the service layer.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	query := `
		INSERT INTO applications
			(student_id, position_id, apply_time, apply_type, apply_reason,
			 has_communicated, materials, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		app.StudentID, app.PositionID, app.ApplyTime, app.ApplyType,
		app.ApplyReason, app.HasCommunicated, app.Materials, app.Status,
	).Scan(&app.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_applications_one_pending") {
			return apperrors.ErrPendingExists
		}
		if dberrors.IsDuplicateConstraintError(err, "uq_applications_active_target") {
			return apperrors.ErrDuplicateTarget
		}
		return fmt.Errorf("error creating application: %w", err)
	}

	return nil
}

// GetByID retrieves an application by ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}

	return app, nil
}

// GetByStudentID retrieves every application a student has ever filed,
// newest first.
func (r *ApplicationRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE student_id = $1
		ORDER BY apply_time DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

// GetAll retrieves all applications, newest first (admin view)
func (r *ApplicationRepository) GetAll(ctx context.Context) ([]*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications ORDER BY apply_time DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

func collectApplications(rows pgx.Rows) ([]*models.Application, error) {
	var apps []*models.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return apps, nil
}

// RecordDecision commits an administrator decision as one atomic unit. For
// an approval, workload is non-nil and the transaction covers: the status
// update, the workload insert, and the student's has_job flip. A reader can
// never observe APPROVED without the workload record, or the reverse.
//
// The decision key makes a retried approval a no-op instead of a second
// workload record: if the application already left PENDING under the same
// key, the decision was applied and the retry succeeds without effect.
func (r *ApplicationRepository) RecordDecision(ctx context.Context, app *models.Application, workload *models.WorkloadSummary, decisionKey string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var current models.ApplicationStatus
		var storedKey *string

		// Lock the application row for the duration of the decision
		err := tx.QueryRow(ctx,
			`SELECT status, decision_key FROM applications WHERE id = $1 FOR UPDATE`,
			app.ID).Scan(&current, &storedKey)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrApplicationNotFound
			}
			return fmt.Errorf("error locking application: %w", err)
		}

		if current != models.ApplicationPending {
			if decisionKey != "" && storedKey != nil && *storedKey == decisionKey {
				// Same decision replayed after a timeout; already applied
				return nil
			}
			return apperrors.ErrInvalidTransition
		}

		if workload != nil {
			if err := r.reserveAssignment(ctx, tx, app, workload); err != nil {
				return err
			}
		}

		var keyParam *string
		if decisionKey != "" {
			keyParam = &decisionKey
		}

		tag, err := tx.Exec(ctx, `
			UPDATE applications
			SET status = $1, note = $2, final_score = $3, reviewed_at = $4, decision_key = $5
			WHERE id = $6 AND status = $7
		`, app.Status, app.Note, app.FinalScore, app.ReviewedAt, keyParam, app.ID, models.ApplicationPending)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "uq_applications_decision_key") {
				return apperrors.ErrDuplicateDecision
			}
			return fmt.Errorf("error updating application status: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrInvalidTransition
		}

		return nil
	})
}

// reserveAssignment performs the approval side effects under the same
// transaction: slot-capacity check against the locked position row, the
// workload insert, and the has_job flip.
func (r *ApplicationRepository) reserveAssignment(ctx context.Context, tx pgx.Tx, app *models.Application, workload *models.WorkloadSummary) error {
	var totalSlots int
	var positionStatus models.PositionStatus
	err := tx.QueryRow(ctx,
		`SELECT total_slots, status FROM positions WHERE id = $1 FOR UPDATE`,
		app.PositionID).Scan(&totalSlots, &positionStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrPositionNotFound
		}
		return fmt.Errorf("error locking position: %w", err)
	}

	var approved int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE position_id = $1 AND status = $2`,
		app.PositionID, models.ApplicationApproved).Scan(&approved)
	if err != nil {
		return fmt.Errorf("error counting approved applications: %w", err)
	}
	if approved >= totalSlots {
		return apperrors.ErrPositionFull
	}

	var hasJob bool
	err = tx.QueryRow(ctx,
		`SELECT has_job FROM students WHERE id = $1 FOR UPDATE`,
		app.StudentID).Scan(&hasJob)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error locking student: %w", err)
	}
	if hasJob {
		return apperrors.ErrAlreadyEmployed
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO workload_summaries
			(student_id, position_id, period_start, period_end, total_hours, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, workload.StudentID, workload.PositionID, workload.PeriodStart,
		workload.PeriodEnd, workload.TotalHours, workload.Status,
	).Scan(&workload.ID)
	if err != nil {
		return fmt.Errorf("error creating workload summary: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE students SET has_job = TRUE WHERE id = $1`, app.StudentID)
	if err != nil {
		return fmt.Errorf("error updating student employment flag: %w", err)
	}

	return nil
}

// Withdraw moves a PENDING application to WITHDRAWN for its owner
func (r *ApplicationRepository) Withdraw(ctx context.Context, id, studentID int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE applications
		SET status = $1, reviewed_at = NOW()
		WHERE id = $2 AND student_id = $3 AND status = $4
	`, models.ApplicationWithdrawn, id, studentID, models.ApplicationPending)
	if err != nil {
		return fmt.Errorf("error withdrawing application: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvalidTransition
	}

	return nil
}
