package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demirhan/taportal/internal/app/lifecycle"
	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/app/models/dto"
	"github.com/demirhan/taportal/internal/pkg/apperrors"
)

type fixture struct {
	students  *memStudentStore
	positions *memPositionStore
	workloads *memWorkloadStore
	apps      *memApplicationStore
	svc       *ApplicationService
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	students := newMemStudentStore()
	positions := newMemPositionStore()
	workloads := newMemWorkloadStore()
	apps := newMemApplicationStore(students, positions, workloads)

	svc := NewApplicationService(apps, students, positions, lifecycle.DefaultPeriodBounds())
	now := time.Date(2023, time.October, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	return &fixture{
		students:  students,
		positions: positions,
		workloads: workloads,
		apps:      apps,
		svc:       svc,
		now:       now,
	}
}

func (f *fixture) addStudent(t *testing.T, userID int64, verified, hasJob bool) *models.Student {
	t.Helper()
	s := &models.Student{
		UserID:    userID,
		StudentNo: "S2023001",
		Name:      "Li Ming",
		Verified:  verified,
		HasJob:    hasJob,
		Status:    models.EnrollmentEnrolled,
	}
	require.NoError(t, f.students.Create(context.Background(), s))
	return s
}

func (f *fixture) addPosition(t *testing.T, slots, hours int, status models.PositionStatus) *models.Position {
	t.Helper()
	p := &models.Position{
		Title:       "Algorithms TA",
		Type:        models.PositionTA,
		Year:        2023,
		TotalSlots:  slots,
		SalaryMonth: 800,
		Workload:    120,
		Deadline:    f.now.Add(30 * 24 * time.Hour),
		Status:      status,
	}
	if hours > 0 {
		p.Workload = hours
	}
	require.NoError(t, f.positions.Create(context.Background(), p))
	return p
}

func submitReq(positionID int64) *dto.SubmitApplicationRequest {
	return &dto.SubmitApplicationRequest{
		PositionID:  positionID,
		ApplyReason: "Strong background in the course material",
	}
}

func TestSubmit_VerifiedStudentOnOpenPosition(t *testing.T) {
	f := newFixture(t)
	f.addStudent(t, 10, true, false)
	p := f.addPosition(t, 2, 120, models.PositionOpen)

	app, err := f.svc.Submit(context.Background(), 10, submitReq(p.ID))
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationPending, app.Status)
	assert.Equal(t, models.ApplyTypeApply, app.ApplyType)
	assert.Equal(t, f.now, app.ApplyTime)
}

func TestSubmit_UnverifiedStudentDenied(t *testing.T) {
	f := newFixture(t)
	f.addStudent(t, 10, false, false)
	p := f.addPosition(t, 2, 120, models.PositionOpen)

	_, err := f.svc.Submit(context.Background(), 10, submitReq(p.ID))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestSubmit_EmployedStudentDenied(t *testing.T) {
	f := newFixture(t)
	f.addStudent(t, 10, true, true)
	p := f.addPosition(t, 2, 120, models.PositionOpen)

	_, err := f.svc.Submit(context.Background(), 10, submitReq(p.ID))
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEmployed)
}

func TestSubmit_SecondPendingDenied(t *testing.T) {
	f := newFixture(t)
	f.addStudent(t, 10, true, false)
	p1 := f.addPosition(t, 2, 120, models.PositionOpen)
	p2 := f.addPosition(t, 2, 90, models.PositionOpen)

	_, err := f.svc.Submit(context.Background(), 10, submitReq(p1.ID))
	require.NoError(t, err)

	_, err = f.svc.Submit(context.Background(), 10, submitReq(p2.ID))
	assert.ErrorIs(t, err, apperrors.ErrPendingExists)
}

func TestSubmit_ReapplyAfterRejection(t *testing.T) {
	f := newFixture(t)
	f.addStudent(t, 10, true, false)
	p := f.addPosition(t, 2, 120, models.PositionOpen)

	app, err := f.svc.Submit(context.Background(), 10, submitReq(p.ID))
	require.NoError(t, err)

	_, err = f.svc.Review(context.Background(), app.ID, &dto.DecisionRequest{Status: "rejected", Note: "insufficient research output"})
	require.NoError(t, err)

	// A rejection does not block a fresh attempt at the same position
	again, err := f.svc.Submit(context.Background(), 10, submitReq(p.ID))
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, again.Status)
}

func TestSubmit_PastDeadlineDenied(t *testing.T) {
	f := newFixture(t)
	f.addStudent(t, 10, true, false)
	p := f.addPosition(t, 2, 120, models.PositionOpen)
	p.Deadline = f.now.Add(-time.Hour)
	require.NoError(t, f.positions.Update(context.Background(), p))

	_, err := f.svc.Submit(context.Background(), 10, submitReq(p.ID))
	assert.ErrorIs(t, err, apperrors.ErrPositionClosed)
}

func TestReview_ApproveCreatesWorkloadAndAssignsJob(t *testing.T) {
	f := newFixture(t)
	st := f.addStudent(t, 10, true, false)
	p := f.addPosition(t, 2, 150, models.PositionOpen)

	app, err := f.svc.Submit(context.Background(), 10, submitReq(p.ID))
	require.NoError(t, err)

	score := 88.5
	updated, err := f.svc.Review(context.Background(), app.ID, &dto.DecisionRequest{
		Status:     "approved",
		Note:       "top candidate",
		FinalScore: &score,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationApproved, updated.Status)
	require.NotNil(t, updated.Note)
	assert.Equal(t, "top candidate", *updated.Note)
	require.NotNil(t, updated.FinalScore)
	assert.Equal(t, 88.5, *updated.FinalScore)

	summaries, err := f.workloads.GetByStudentID(context.Background(), st.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 150, summaries[0].TotalHours)
	// October 2023 falls in the 2023-2024 period
	assert.Equal(t, 2023, summaries[0].PeriodStart.Year())
	assert.Equal(t, 2024, summaries[0].PeriodEnd.Year())

	fresh, err := f.students.GetByID(context.Background(), st.ID)
	require.NoError(t, err)
	assert.True(t, fresh.HasJob)
}

func TestReview_WorkloadKeepsHoursAfterPositionEdit(t *testing.T) {
	f := newFixture(t)
	st := f.addStudent(t, 10, true, false)
	p := f.addPosition(t, 2, 150, models.PositionOpen)

	app, err := f.svc.Submit(context.Background(), 10, submitReq(p.ID))
	require.NoError(t, err)

	_, err = f.svc.Review(context.Background(), app.ID, &dto.DecisionRequest{Status: "approved"})
	require.NoError(t, err)

	p.Workload = 999
	require.NoError(t, f.positions.Update(context.Background(), p))

	summaries, err := f.workloads.GetByStudentID(context.Background(), st.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 150, summaries[0].TotalHours)
}

func TestReview_ApproveIsIdempotentUnderSameKey(t *testing.T) {
	f := newFixture(t)
	st := f.addStudent(t, 10, true, false)
	p := f.addPosition(t, 2, 120, models.PositionOpen)

	app, err := f.svc.Submit(context.Background(), 10, submitReq(p.ID))
	require.NoError(t, err)

	req := &dto.DecisionRequest{Status: "approved", IdempotencyKey: "dec-42"}
	_, err = f.svc.Review(context.Background(), app.ID, req)
	require.NoError(t, err)

	// Replay after a timeout: same key succeeds without a second workload record
	replayed, err := f.svc.Review(context.Background(), app.ID, req)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, replayed.Status)

	summaries, err := f.workloads.GetByStudentID(context.Background(), st.ID)
	require.NoError(t, err)
	assert.Len(t, summaries, 1)

	// A different key is a genuine second decision and is refused
	_, err = f.svc.Review(context.Background(), app.ID, &dto.DecisionRequest{Status: "approved", IdempotencyKey: "dec-43"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestReview_SecondDecisionDenied(t *testing.T) {
	f := newFixture(t)
	f.addStudent(t, 10, true, false)
	p := f.addPosition(t, 2, 120, models.PositionOpen)

	app, err := f.svc.Submit(context.Background(), 10, submitReq(p.ID))
	require.NoError(t, err)

	_, err = f.svc.Review(context.Background(), app.ID, &dto.DecisionRequest{Status: "rejected"})
	require.NoError(t, err)

	_, err = f.svc.Review(context.Background(), app.ID, &dto.DecisionRequest{Status: "approved"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestReview_FullPositionDenied(t *testing.T) {
	f := newFixture(t)
	f.addStudent(t, 10, true, false)
	other := &models.Student{UserID: 20, StudentNo: "S2023002", Name: "Zhang Wei", Verified: true}
	require.NoError(t, f.students.Create(context.Background(), other))
	p := f.addPosition(t, 1, 120, models.PositionOpen)

	first, err := f.svc.Submit(context.Background(), 10, submitReq(p.ID))
	require.NoError(t, err)
	second, err := f.svc.Submit(context.Background(), 20, submitReq(p.ID))
	require.NoError(t, err)

	_, err = f.svc.Review(context.Background(), first.ID, &dto.DecisionRequest{Status: "approved"})
	require.NoError(t, err)

	_, err = f.svc.Review(context.Background(), second.ID, &dto.DecisionRequest{Status: "approved"})
	assert.ErrorIs(t, err, apperrors.ErrPositionFull)
}

func TestWithdraw_PendingOnly(t *testing.T) {
	f := newFixture(t)
	f.addStudent(t, 10, true, false)
	p := f.addPosition(t, 2, 120, models.PositionOpen)

	app, err := f.svc.Submit(context.Background(), 10, submitReq(p.ID))
	require.NoError(t, err)

	require.NoError(t, f.svc.Withdraw(context.Background(), 10, app.ID))

	// Withdrawn is terminal
	err = f.svc.Withdraw(context.Background(), 10, app.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestWithdraw_OtherStudentsApplicationDenied(t *testing.T) {
	f := newFixture(t)
	f.addStudent(t, 10, true, false)
	other := &models.Student{UserID: 20, StudentNo: "S2023002", Name: "Zhang Wei", Verified: true}
	require.NoError(t, f.students.Create(context.Background(), other))
	p := f.addPosition(t, 2, 120, models.PositionOpen)

	app, err := f.svc.Submit(context.Background(), 10, submitReq(p.ID))
	require.NoError(t, err)

	err = f.svc.Withdraw(context.Background(), 20, app.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestWithdraw_ThenReapplySucceeds(t *testing.T) {
	f := newFixture(t)
	f.addStudent(t, 10, true, false)
	p := f.addPosition(t, 2, 120, models.PositionOpen)

	app, err := f.svc.Submit(context.Background(), 10, submitReq(p.ID))
	require.NoError(t, err)
	require.NoError(t, f.svc.Withdraw(context.Background(), 10, app.ID))

	again, err := f.svc.Submit(context.Background(), 10, submitReq(p.ID))
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, again.Status)
}
