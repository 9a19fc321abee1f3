package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/pkg/apperrors"
)

func openPosition(id int64, workload int) *models.Position {
	return &models.Position{
		ID:       id,
		Title:    "Database Systems TA",
		Type:     models.PositionTA,
		Year:     2023,
		Workload: workload,
		Status:   models.PositionOpen,
	}
}

func TestCanApply_AllowsFreeStudentOnOpenPosition(t *testing.T) {
	student := &models.Student{ID: 1001, HasJob: false}
	pos := openPosition(1, 40)

	err := CanApply(student, pos, nil)
	assert.NoError(t, err)
}

func TestCanApply_DeniesEmployedStudent(t *testing.T) {
	student := &models.Student{ID: 1001, HasJob: true}
	pos := openPosition(2, 60)

	err := CanApply(student, pos, nil)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEmployed)
}

func TestCanApply_DeniesWhenPendingExists(t *testing.T) {
	student := &models.Student{ID: 1002, HasJob: false}
	pos := openPosition(2, 60)
	existing := []*models.Application{
		{ID: 502, StudentID: 1002, PositionID: 1, Status: models.ApplicationPending},
	}

	err := CanApply(student, pos, existing)
	assert.ErrorIs(t, err, apperrors.ErrPendingExists)
}

func TestCanApply_DeniesDuplicateTarget(t *testing.T) {
	student := &models.Student{ID: 1002, HasJob: false}
	pos := openPosition(1, 40)
	// Approved earlier but since quit: hasJob false, application terminal
	existing := []*models.Application{
		{ID: 502, StudentID: 1002, PositionID: 1, Status: models.ApplicationApproved},
	}

	err := CanApply(student, pos, existing)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateTarget)
}

func TestCanApply_RejectedAttemptDoesNotBlock(t *testing.T) {
	student := &models.Student{ID: 1002, HasJob: false}
	pos := openPosition(1, 40)
	existing := []*models.Application{
		{ID: 502, StudentID: 1002, PositionID: 1, Status: models.ApplicationRejected},
		{ID: 503, StudentID: 1002, PositionID: 1, Status: models.ApplicationWithdrawn},
	}

	err := CanApply(student, pos, existing)
	assert.NoError(t, err)
}

func TestCanApply_IgnoresOtherStudentsApplications(t *testing.T) {
	student := &models.Student{ID: 1002, HasJob: false}
	pos := openPosition(1, 40)
	existing := []*models.Application{
		{ID: 501, StudentID: 1003, PositionID: 1, Status: models.ApplicationPending},
	}

	err := CanApply(student, pos, existing)
	assert.NoError(t, err)
}

func TestCanApply_DeniesClosedPosition(t *testing.T) {
	student := &models.Student{ID: 1002, HasJob: false}
	pos := openPosition(3, 30)
	pos.Status = models.PositionClosed

	err := CanApply(student, pos, nil)
	assert.ErrorIs(t, err, apperrors.ErrPositionClosed)
}

func TestCanApply_EmploymentCheckedBeforePendingAndTarget(t *testing.T) {
	// An employed student with a stale pending row must still surface
	// ALREADY_EMPLOYED, the strongest denial.
	student := &models.Student{ID: 1001, HasJob: true}
	pos := openPosition(1, 40)
	pos.Status = models.PositionClosed
	existing := []*models.Application{
		{ID: 501, StudentID: 1001, PositionID: 1, Status: models.ApplicationPending},
	}

	err := CanApply(student, pos, existing)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEmployed)
}

func TestDecide_ApproveSetsStatusAndSignalsAssignment(t *testing.T) {
	now := time.Date(2023, 9, 10, 12, 0, 0, 0, time.UTC)
	app := &models.Application{ID: 502, StudentID: 1002, PositionID: 1, Status: models.ApplicationPending}
	score := 92.5

	out, err := Decide(app, DecisionApprove, "OK", &score, now)
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationApproved, out.Application.Status)
	assert.True(t, out.AssignJob)
	require.NotNil(t, out.Application.Note)
	assert.Equal(t, "OK", *out.Application.Note)
	require.NotNil(t, out.Application.FinalScore)
	assert.Equal(t, 92.5, *out.Application.FinalScore)
	require.NotNil(t, out.Application.ReviewedAt)
	assert.Equal(t, now, *out.Application.ReviewedAt)

	// Input must not be mutated
	assert.Equal(t, models.ApplicationPending, app.Status)
}

func TestDecide_RejectHasNoSideEffects(t *testing.T) {
	now := time.Now()
	app := &models.Application{ID: 502, Status: models.ApplicationPending}

	out, err := Decide(app, DecisionReject, "not a fit", nil, now)
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationRejected, out.Application.Status)
	assert.False(t, out.AssignJob)
}

func TestDecide_WithdrawOnlyFromPending(t *testing.T) {
	now := time.Now()
	app := &models.Application{ID: 502, Status: models.ApplicationPending}

	out, err := Decide(app, DecisionWithdraw, "", nil, now)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationWithdrawn, out.Application.Status)
	assert.False(t, out.AssignJob)
}

func TestDecide_TerminalStatusesRefuseTransitions(t *testing.T) {
	now := time.Now()
	for _, status := range []models.ApplicationStatus{
		models.ApplicationApproved,
		models.ApplicationRejected,
		models.ApplicationWithdrawn,
	} {
		app := &models.Application{ID: 502, Status: status}
		for _, decision := range []Decision{DecisionApprove, DecisionReject, DecisionWithdraw} {
			_, err := Decide(app, decision, "", nil, now)
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition,
				"status %s, decision %s", status, decision)
		}
	}
}

func TestDecide_UnknownDecisionFails(t *testing.T) {
	app := &models.Application{ID: 502, Status: models.ApplicationPending}
	_, err := Decide(app, Decision("ADMIT"), "", nil, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestBuildWorkload_CopiesFixedHours(t *testing.T) {
	app := &models.Application{ID: 502, StudentID: 1002, PositionID: 1}
	pos := openPosition(1, 40)
	period := Period{
		Start: time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
	}

	w := BuildWorkload(app, pos, period)

	assert.Equal(t, int64(1002), w.StudentID)
	assert.Equal(t, int64(1), w.PositionID)
	assert.Equal(t, 40, w.TotalHours)
	assert.Equal(t, models.WorkloadNormal, w.Status)
	assert.Equal(t, period.Start, w.PeriodStart)
	assert.Equal(t, period.End, w.PeriodEnd)

	// Editing the position afterward must not affect the derived record
	pos.Workload = 99
	assert.Equal(t, 40, w.TotalHours)
}
