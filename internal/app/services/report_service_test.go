package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/app/models/dto"
)

func newReportFixture(t *testing.T) (*ReportService, *fixture, *memScholarshipStore) {
	t.Helper()
	f := newFixture(t)
	scholarships := newMemScholarshipStore()
	svc := NewReportService(f.apps, f.workloads, scholarships, f.students, f.positions)
	return svc, f, scholarships
}

func TestStatusDistribution_PortalWide(t *testing.T) {
	svc, f, _ := newReportFixture(t)
	f.addStudent(t, 10, true, false)
	other := &models.Student{UserID: 20, StudentNo: "S2023002", Name: "Zhang Wei", Verified: true}
	require.NoError(t, f.students.Create(context.Background(), other))
	p := f.addPosition(t, 5, 120, models.PositionOpen)

	first, err := f.svc.Submit(context.Background(), 10, submitReq(p.ID))
	require.NoError(t, err)
	_, err = f.svc.Review(context.Background(), first.ID, &dto.DecisionRequest{Status: "approved"})
	require.NoError(t, err)

	_, err = f.svc.Submit(context.Background(), 20, submitReq(p.ID))
	require.NoError(t, err)

	dist, err := svc.StatusDistribution(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, dist.Approved)
	assert.Equal(t, 1, dist.Pending)
	assert.Equal(t, 0, dist.Rejected)
}

func TestStatusDistribution_StudentScoped(t *testing.T) {
	svc, f, _ := newReportFixture(t)
	st := f.addStudent(t, 10, true, false)
	other := &models.Student{UserID: 20, StudentNo: "S2023002", Name: "Zhang Wei", Verified: true}
	require.NoError(t, f.students.Create(context.Background(), other))
	p := f.addPosition(t, 5, 120, models.PositionOpen)

	_, err := f.svc.Submit(context.Background(), 10, submitReq(p.ID))
	require.NoError(t, err)
	_, err = f.svc.Submit(context.Background(), 20, submitReq(p.ID))
	require.NoError(t, err)

	dist, err := svc.StatusDistribution(context.Background(), &st.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, dist.Pending)
	assert.Equal(t, 0, dist.Approved)
}

func TestPeriodTotals_DeductionsSubtract(t *testing.T) {
	svc, f, scholarships := newReportFixture(t)
	st := f.addStudent(t, 10, true, false)

	issue := time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC)
	entries := []*models.ScholarshipRecord{
		{StudentID: st.ID, Amount: 800, IssueDate: issue, Type: models.ScholarshipRegular, Status: models.ScholarshipIssued},
		{StudentID: st.ID, Amount: 200, IssueDate: issue, Type: models.ScholarshipSupplemental, Status: models.ScholarshipIssued},
		{StudentID: st.ID, Amount: 150, IssueDate: issue, Type: models.ScholarshipDeduction, Status: models.ScholarshipIssued},
	}
	for _, e := range entries {
		require.NoError(t, scholarships.Create(context.Background(), e))
	}

	totals, err := svc.PeriodTotals(context.Background(), dto.ReportFilter{Year: 2023})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, totals.Gross)
	assert.Equal(t, 150.0, totals.Deductions)
	assert.Equal(t, 850.0, totals.Net)
	assert.Equal(t, 3, totals.EntryCount)
}

func TestPeriodTotals_YearFilterExcludesOtherYears(t *testing.T) {
	svc, f, scholarships := newReportFixture(t)
	st := f.addStudent(t, 10, true, false)

	in := &models.ScholarshipRecord{StudentID: st.ID, Amount: 500,
		IssueDate: time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC),
		Type:      models.ScholarshipRegular, Status: models.ScholarshipIssued}
	out := &models.ScholarshipRecord{StudentID: st.ID, Amount: 700,
		IssueDate: time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC),
		Type:      models.ScholarshipRegular, Status: models.ScholarshipIssued}
	require.NoError(t, scholarships.Create(context.Background(), in))
	require.NoError(t, scholarships.Create(context.Background(), out))

	totals, err := svc.PeriodTotals(context.Background(), dto.ReportFilter{Year: 2023})
	require.NoError(t, err)
	assert.Equal(t, 500.0, totals.Gross)
	assert.Equal(t, 1, totals.EntryCount)
}

func TestWorkloads_EmptyResultIsEmptyListNotNil(t *testing.T) {
	svc, _, _ := newReportFixture(t)

	list, err := svc.Workloads(context.Background(), dto.ReportFilter{})
	require.NoError(t, err)
	require.NotNil(t, list.Results)
	assert.Len(t, list.Results, 0)
}

func TestWriteScholarshipsCSV(t *testing.T) {
	svc, f, scholarships := newReportFixture(t)
	st := f.addStudent(t, 10, true, false)

	rec := &models.ScholarshipRecord{
		StudentID: st.ID,
		Amount:    150,
		IssueDate: time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC),
		Type:      models.ScholarshipDeduction,
		Reason:    "absence adjustment",
		Status:    models.ScholarshipIssued,
	}
	require.NoError(t, scholarships.Create(context.Background(), rec))

	var buf bytes.Buffer
	require.NoError(t, svc.WriteScholarshipsCSV(context.Background(), &buf, dto.ReportFilter{}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "signed_amount")
	assert.Contains(t, lines[1], "150.00")
	assert.Contains(t, lines[1], "-150.00")
}

func TestPositions_FilterNarrowsByYearAndDepartment(t *testing.T) {
	svc, f, _ := newReportFixture(t)
	current := f.addPosition(t, 1, 40, models.PositionOpen)
	current.DepartmentID = 1
	require.NoError(t, f.positions.Update(context.Background(), current))

	old := &models.Position{
		Title:        "Archived RA",
		Type:         models.PositionRA,
		DepartmentID: 2,
		Year:         2021,
		TotalSlots:   1,
		Workload:     60,
		Deadline:     f.now,
		Status:       models.PositionCompleted,
	}
	require.NoError(t, f.positions.Create(context.Background(), old))

	list, err := svc.Positions(context.Background(), dto.ReportFilter{Year: 2023, DepartmentID: 1})
	require.NoError(t, err)
	require.Len(t, list.Results, 1)
	assert.Equal(t, current.ID, list.Results[0].ID)

	all, err := svc.Positions(context.Background(), dto.ReportFilter{})
	require.NoError(t, err)
	assert.Len(t, all.Results, 2)
}

func TestWritePositionsCSV(t *testing.T) {
	svc, f, _ := newReportFixture(t)
	f.addPosition(t, 2, 120, models.PositionOpen)

	var buf bytes.Buffer
	require.NoError(t, svc.WritePositionsCSV(context.Background(), &buf, dto.ReportFilter{Year: 2023}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "workload_hours")
	assert.Contains(t, lines[1], "Algorithms TA")
	assert.Contains(t, lines[1], "120")
	assert.Contains(t, lines[1], "OPEN")
}

func TestWriteWorkloadsCSV_HeaderOnlyWhenEmpty(t *testing.T) {
	svc, _, _ := newReportFixture(t)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteWorkloadsCSV(context.Background(), &buf, dto.ReportFilter{}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "total_hours")
}
