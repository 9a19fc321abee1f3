package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/app/models/dto"
)

// WorkloadStore is the derived workload read surface
type WorkloadStore interface {
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.WorkloadSummary, error)
	GetFiltered(ctx context.Context, year int, departmentID int64) ([]*models.WorkloadSummary, error)
	SetStatus(ctx context.Context, id int64, status models.WorkloadStatus) error
}

// ReportService aggregates applications, workloads and the scholarship
// ledger into admin reports and CSV exports. List results always travel in
// a ResultList envelope so a decoding mismatch fails loudly.
type ReportService struct {
	appStore         ApplicationStore
	workloadStore    WorkloadStore
	scholarshipStore ScholarshipStore
	studentStore     StudentStore
	positionStore    PositionStore
}

// NewReportService creates a new ReportService
func NewReportService(
	appStore ApplicationStore,
	workloadStore WorkloadStore,
	scholarshipStore ScholarshipStore,
	studentStore StudentStore,
	positionStore PositionStore,
) *ReportService {
	return &ReportService{
		appStore:         appStore,
		workloadStore:    workloadStore,
		scholarshipStore: scholarshipStore,
		studentStore:     studentStore,
		positionStore:    positionStore,
	}
}

// StatusDistribution counts applications per status. A non-nil studentID
// restricts the count to that student's own applications; administrators
// pass nil for the portal-wide view.
func (s *ReportService) StatusDistribution(ctx context.Context, studentID *int64) (*dto.StatusDistribution, error) {
	var apps []*models.Application
	var err error
	if studentID != nil {
		apps, err = s.appStore.GetByStudentID(ctx, *studentID)
	} else {
		apps, err = s.appStore.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	var dist dto.StatusDistribution
	for _, app := range apps {
		switch app.Status {
		case models.ApplicationPending:
			dist.Pending++
		case models.ApplicationApproved:
			dist.Approved++
		case models.ApplicationRejected:
			dist.Rejected++
		case models.ApplicationWithdrawn:
			dist.Withdrawn++
		}
	}

	return &dist, nil
}

// Workloads lists derived workload records for a report filter
func (s *ReportService) Workloads(ctx context.Context, filter dto.ReportFilter) (*dto.ResultList[*models.WorkloadSummary], error) {
	summaries, err := s.workloadStore.GetFiltered(ctx, filter.Year, filter.DepartmentID)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []*models.WorkloadSummary{}
	}
	return &dto.ResultList[*models.WorkloadSummary]{Results: summaries}, nil
}

// filteredPositions narrows the posting list by the report filter. The
// store only filters by status; year and department narrow here.
func (s *ReportService) filteredPositions(ctx context.Context, filter dto.ReportFilter) ([]*models.Position, error) {
	all, err := s.positionStore.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}

	positions := make([]*models.Position, 0, len(all))
	for _, p := range all {
		if filter.Year != 0 && p.Year != filter.Year {
			continue
		}
		if filter.DepartmentID != 0 && p.DepartmentID != filter.DepartmentID {
			continue
		}
		positions = append(positions, p)
	}
	return positions, nil
}

// Positions lists postings for a report filter
func (s *ReportService) Positions(ctx context.Context, filter dto.ReportFilter) (*dto.ResultList[*models.Position], error) {
	positions, err := s.filteredPositions(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.ResultList[*models.Position]{Results: positions}, nil
}

// periodRange converts an academic-year filter into issue date bounds.
// Year 0 means unbounded.
func periodRange(year int) (time.Time, time.Time) {
	if year == 0 {
		return time.Time{}, time.Time{}
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
	return from, to
}

// Scholarships lists ledger entries for a report filter
func (s *ReportService) Scholarships(ctx context.Context, filter dto.ReportFilter) (*dto.ResultList[*models.ScholarshipRecord], error) {
	from, to := periodRange(filter.Year)
	records, err := s.scholarshipStore.GetFiltered(ctx, from, to, filter.DepartmentID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*models.ScholarshipRecord{}
	}
	return &dto.ResultList[*models.ScholarshipRecord]{Results: records}, nil
}

// PeriodTotals sums the ledger over a filter. Regular and supplemental
// entries add to the gross; deductions accumulate separately and subtract
// from the net.
func (s *ReportService) PeriodTotals(ctx context.Context, filter dto.ReportFilter) (*dto.PeriodTotals, error) {
	from, to := periodRange(filter.Year)
	records, err := s.scholarshipStore.GetFiltered(ctx, from, to, filter.DepartmentID)
	if err != nil {
		return nil, err
	}

	totals := &dto.PeriodTotals{
		Year:         filter.Year,
		DepartmentID: filter.DepartmentID,
		EntryCount:   len(records),
	}
	for _, rec := range records {
		if rec.Type == models.ScholarshipDeduction {
			totals.Deductions += rec.Amount
		} else {
			totals.Gross += rec.Amount
		}
	}
	totals.Net = totals.Gross - totals.Deductions

	return totals, nil
}

// WriteWorkloadsCSV streams the workload report as CSV
func (s *ReportService) WriteWorkloadsCSV(ctx context.Context, w io.Writer, filter dto.ReportFilter) error {
	summaries, err := s.workloadStore.GetFiltered(ctx, filter.Year, filter.DepartmentID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"student_no", "student_name", "position", "period_start", "period_end", "total_hours", "status"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, sum := range summaries {
		studentNo, studentName := "", ""
		if sum.Student != nil {
			studentNo, studentName = sum.Student.StudentNo, sum.Student.Name
		}
		positionTitle := ""
		if sum.Position != nil {
			positionTitle = sum.Position.Title
		}
		record := []string{
			studentNo,
			studentName,
			positionTitle,
			sum.PeriodStart.Format("2006-01-02"),
			sum.PeriodEnd.Format("2006-01-02"),
			strconv.Itoa(sum.TotalHours),
			string(sum.Status),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteScholarshipsCSV streams the ledger report as CSV. The signed_amount
// column carries the aggregation sign so spreadsheet sums match the net.
func (s *ReportService) WriteScholarshipsCSV(ctx context.Context, w io.Writer, filter dto.ReportFilter) error {
	from, to := periodRange(filter.Year)
	records, err := s.scholarshipStore.GetFiltered(ctx, from, to, filter.DepartmentID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"student_no", "student_name", "issue_date", "type", "amount", "signed_amount", "reason", "status"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, rec := range records {
		studentNo, studentName := "", ""
		if rec.Student != nil {
			studentNo, studentName = rec.Student.StudentNo, rec.Student.Name
		}
		row := []string{
			studentNo,
			studentName,
			rec.IssueDate.Format("2006-01-02"),
			string(rec.Type),
			fmt.Sprintf("%.2f", rec.Amount),
			fmt.Sprintf("%.2f", rec.Signed()),
			rec.Reason,
			string(rec.Status),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WritePositionsCSV streams the posting list as CSV
func (s *ReportService) WritePositionsCSV(ctx context.Context, w io.Writer, filter dto.ReportFilter) error {
	positions, err := s.filteredPositions(ctx, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"title", "type", "supervisor", "year", "total_slots", "salary_month", "workload_hours", "deadline", "status"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, p := range positions {
		row := []string{
			p.Title,
			string(p.Type),
			p.SupervisorName,
			strconv.Itoa(p.Year),
			strconv.Itoa(p.TotalSlots),
			strconv.Itoa(p.SalaryMonth),
			strconv.Itoa(p.Workload),
			p.Deadline.Format("2006-01-02"),
			string(p.Status),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteRosterCSV streams the student roster as CSV
func (s *ReportService) WriteRosterCSV(ctx context.Context, w io.Writer) error {
	students, err := s.studentStore.GetAll(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"student_no", "name", "program", "enrollment_year", "verified", "has_job", "status"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, st := range students {
		row := []string{
			st.StudentNo,
			st.Name,
			st.Program,
			strconv.Itoa(st.EnrollmentYear),
			strconv.FormatBool(st.Verified),
			strconv.FormatBool(st.HasJob),
			string(st.Status),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// StudentWorkloads lists a student's own workload records
func (s *ReportService) StudentWorkloads(ctx context.Context, userID int64) ([]*models.WorkloadSummary, error) {
	student, err := s.studentStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.workloadStore.GetByStudentID(ctx, student.ID)
}

// FlagWorkload marks a workload record ANOMALOUS or clears the flag (admin)
func (s *ReportService) FlagWorkload(ctx context.Context, id int64, anomalous bool) error {
	status := models.WorkloadNormal
	if anomalous {
		status = models.WorkloadAnomalous
	}
	return s.workloadStore.SetStatus(ctx, id, status)
}
