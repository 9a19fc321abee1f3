package services

import (
	"context"
	"strings"
	"time"

	"github.com/demirhan/taportal/internal/app/lifecycle"
	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/app/models/dto"
	"github.com/demirhan/taportal/internal/pkg/apperrors"
	"github.com/demirhan/taportal/internal/pkg/logger"
)

// ApplicationStore is the application persistence surface. RecordDecision
// must commit the status change, the derived workload record and the
// employment flag flip as one atomic unit.
type ApplicationStore interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.Application, error)
	GetAll(ctx context.Context) ([]*models.Application, error)
	RecordDecision(ctx context.Context, app *models.Application, workload *models.WorkloadSummary, decisionKey string) error
	Withdraw(ctx context.Context, id, studentID int64) error
}

// PositionStore is the posting persistence surface
type PositionStore interface {
	Create(ctx context.Context, p *models.Position) error
	GetByID(ctx context.Context, id int64) (*models.Position, error)
	GetAll(ctx context.Context, status *models.PositionStatus) ([]*models.Position, error)
	Update(ctx context.Context, p *models.Position) error
	CloseExpired(ctx context.Context, now time.Time) (int64, error)
}

// ApplicationService drives the application lifecycle: submission through
// the eligibility guards, withdrawal, and the administrator decision.
type ApplicationService struct {
	appStore      ApplicationStore
	studentStore  StudentStore
	positionStore PositionStore
	periodBounds  lifecycle.PeriodBounds
	now           func() time.Time
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	appStore ApplicationStore,
	studentStore StudentStore,
	positionStore PositionStore,
	periodBounds lifecycle.PeriodBounds,
) *ApplicationService {
	return &ApplicationService{
		appStore:      appStore,
		studentStore:  studentStore,
		positionStore: positionStore,
		periodBounds:  periodBounds,
		now:           time.Now,
	}
}

// Submit files a new application for the student owning userID. Every
// eligibility guard runs before the insert; the partial unique indexes on
// the applications table back the guards up under concurrency.
func (s *ApplicationService) Submit(ctx context.Context, userID int64, req *dto.SubmitApplicationRequest) (*models.Application, error) {
	student, err := s.studentStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !student.Verified {
		return nil, apperrors.NewForbiddenError("student profile is not verified yet")
	}

	position, err := s.positionStore.GetByID(ctx, req.PositionID)
	if err != nil {
		return nil, err
	}

	// A posting past its deadline counts as closed even before the
	// sweeper has moved it
	if position.Status == models.PositionOpen && s.now().After(position.Deadline) {
		return nil, apperrors.ErrPositionClosed
	}

	existing, err := s.appStore.GetByStudentID(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.CanApply(student, position, existing); err != nil {
		return nil, err
	}

	app := &models.Application{
		StudentID:       student.ID,
		PositionID:      position.ID,
		ApplyTime:       s.now(),
		ApplyType:       models.ApplyTypeApply,
		ApplyReason:     strings.TrimSpace(req.ApplyReason),
		HasCommunicated: req.HasCommunicated,
		Materials:       req.Materials,
		Status:          models.ApplicationPending,
	}
	if err := s.appStore.Create(ctx, app); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("studentID", student.ID).
		Int64("positionID", position.ID).
		Int64("applicationID", app.ID).
		Msg("Application submitted")

	return app, nil
}

// Withdraw cancels the student's own PENDING application
func (s *ApplicationService) Withdraw(ctx context.Context, userID, applicationID int64) error {
	student, err := s.studentStore.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	app, err := s.appStore.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.StudentID != student.ID {
		return apperrors.ErrPermissionDenied
	}

	if _, err := lifecycle.Decide(app, lifecycle.DecisionWithdraw, "", nil, s.now()); err != nil {
		return err
	}

	return s.appStore.Withdraw(ctx, applicationID, student.ID)
}

// MyApplications lists every application the student has filed
func (s *ApplicationService) MyApplications(ctx context.Context, userID int64) ([]*models.Application, error) {
	student, err := s.studentStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.appStore.GetByStudentID(ctx, student.ID)
}

// AllApplications lists every application with student and position context
// attached (admin review queue).
func (s *ApplicationService) AllApplications(ctx context.Context) ([]*models.Application, error) {
	apps, err := s.appStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, app := range apps {
		if app.Student == nil {
			if student, err := s.studentStore.GetByID(ctx, app.StudentID); err == nil {
				app.Student = student
			}
		}
		if app.Position == nil {
			if position, err := s.positionStore.GetByID(ctx, app.PositionID); err == nil {
				app.Position = position
			}
		}
	}

	return apps, nil
}

// Review applies an administrator decision. Approval derives the workload
// record from the position's fixed hours and the current academic period;
// the store commits everything atomically. A retried request carrying the
// same idempotency key succeeds without a second workload record.
func (s *ApplicationService) Review(ctx context.Context, applicationID int64, req *dto.DecisionRequest) (*models.Application, error) {
	app, err := s.appStore.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	decision := lifecycle.DecisionReject
	if strings.EqualFold(req.Status, "approved") {
		decision = lifecycle.DecisionApprove
	}

	outcome, err := lifecycle.Decide(app, decision, req.Note, req.FinalScore, s.now())
	if err != nil {
		// A decided application plus a matching key means this is a replay
		// of an already-applied decision; the store recognizes the key and
		// reports success without side effects.
		if apperrors.Is(err, apperrors.ErrInvalidTransition) && req.IdempotencyKey != "" {
			if replayErr := s.appStore.RecordDecision(ctx, app, nil, req.IdempotencyKey); replayErr == nil {
				return app, nil
			}
		}
		return nil, err
	}

	var workload *models.WorkloadSummary
	if outcome.AssignJob {
		position, err := s.positionStore.GetByID(ctx, app.PositionID)
		if err != nil {
			return nil, err
		}
		period := lifecycle.AcademicPeriod(s.now(), s.periodBounds, false)
		w := lifecycle.BuildWorkload(app, position, period)
		workload = &w
	}

	updated := outcome.Application
	if err := s.appStore.RecordDecision(ctx, &updated, workload, req.IdempotencyKey); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("applicationID", applicationID).
		Str("decision", string(decision)).
		Msg("Application reviewed")

	return &updated, nil
}
