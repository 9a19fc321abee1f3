package client

import (
	"time"

	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/app/models/dto"
)

// Fixture data served when the remote service is unreachable. Every
// function returns fresh copies so callers can mutate results without
// corrupting later fallbacks.

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func int64Ptr(i int64) *int64     { return &i }

func fixtureDepartments() []models.Department {
	return []models.Department{
		{ID: 1, Name: "Information Management", Code: "IM"},
		{ID: 2, Name: "Computer Science", Code: "CS"},
		{ID: 3, Name: "Mathematics", Code: "MATH"},
	}
}

func fixtureStudents() []models.Student {
	return []models.Student{
		{
			ID:             1001,
			UserID:         1001,
			StudentNo:      "S2023001",
			Name:           "Li Ming",
			Gender:         "M",
			EnrollmentYear: 2023,
			Program:        "Management Science and Engineering",
			DepartmentID:   int64Ptr(1),
			IsFulltime:     true,
			Status:         models.EnrollmentEnrolled,
			Verified:       true,
			HasJob:         true,
			BankAccount:    strPtr("62220232023222"),
			Phone:          strPtr("13800138000"),
			GPA:            floatPtr(3.8),
			ResearchCount:  intPtr(2),
		},
		{
			ID:             1002,
			UserID:         1002,
			StudentNo:      "S2022005",
			Name:           "Wang Qiang",
			Gender:         "M",
			EnrollmentYear: 2022,
			Program:        "Library Science",
			DepartmentID:   int64Ptr(1),
			IsFulltime:     true,
			Status:         models.EnrollmentEnrolled,
			Verified:       true,
			HasJob:         false,
			Phone:          strPtr("13900139000"),
			GPA:            floatPtr(3.5),
			ResearchCount:  intPtr(1),
		},
		{
			ID:             1003,
			UserID:         1003,
			StudentNo:      "S2021012",
			Name:           "Zhao Ya",
			Gender:         "F",
			EnrollmentYear: 2021,
			Program:        "Information Science",
			DepartmentID:   int64Ptr(1),
			IsFulltime:     true,
			Status:         models.EnrollmentEnrolled,
			Verified:       false,
			HasJob:         true,
			Phone:          strPtr("13700137000"),
			GPA:            floatPtr(3.9),
			ResearchCount:  intPtr(4),
		},
	}
}

func fixturePositions() []models.Position {
	return []models.Position{
		{
			ID:             1,
			Title:          "Database Systems Teaching Assistant",
			Type:           models.PositionTA,
			DepartmentID:   1,
			SupervisorName: "Prof. Zhang",
			Year:           2023,
			TotalSlots:     2,
			SalaryMonth:    800,
			Description:    "Lab supervision, grading and office hours for the undergraduate database course. SQL and schema design experience required.",
			Workload:       40,
			Requirements:   strPtr("1. Familiar with MySQL; 2. Strong academic record preferred"),
			Deadline:       time.Date(2023, time.September, 15, 0, 0, 0, 0, time.UTC),
			Status:         models.PositionOpen,
			CreatedAt:      time.Date(2023, time.August, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:             2,
			Title:          "Information Retrieval Group Research Assistant",
			Type:           models.PositionRA,
			DepartmentID:   1,
			SupervisorName: "Prof. Li",
			Year:           2023,
			TotalSlots:     1,
			SalaryMonth:    1000,
			Description:    "National science foundation project work applying deep learning models to text mining.",
			Workload:       60,
			Requirements:   strPtr("1. Python/PyTorch; 2. Prior NLP project experience"),
			Deadline:       time.Date(2023, time.September, 20, 0, 0, 0, 0, time.UTC),
			Status:         models.PositionOpen,
			CreatedAt:      time.Date(2023, time.August, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:             3,
			Title:          "Advanced Statistics Teaching Assistant",
			Type:           models.PositionTA,
			DepartmentID:   1,
			SupervisorName: "Prof. Zhang",
			Year:           2023,
			TotalSlots:     1,
			SalaryMonth:    800,
			Description:    "Support for the graduate statistics course, running R language lab demonstrations.",
			Workload:       30,
			Requirements:   strPtr("1. Solid statistics background"),
			Deadline:       time.Date(2023, time.September, 10, 0, 0, 0, 0, time.UTC),
			Status:         models.PositionClosed,
			CreatedAt:      time.Date(2023, time.August, 20, 0, 0, 0, 0, time.UTC),
		},
	}
}

func fixtureApplications() []models.Application {
	return []models.Application{
		{
			ID:              501,
			StudentID:       1003,
			PositionID:      1,
			ApplyTime:       time.Date(2023, time.September, 1, 10, 0, 0, 0, time.UTC),
			ApplyType:       models.ApplyTypeApply,
			ApplyReason:     "Matches my field, relevant experience",
			HasCommunicated: true,
			Materials:       []string{"grades.pdf", "resume.pdf"},
			Status:          models.ApplicationApproved,
			FinalScore:      floatPtr(92.5),
			Note:            strPtr("Priority admission"),
		},
		{
			ID:              502,
			StudentID:       1002,
			PositionID:      1,
			ApplyTime:       time.Date(2023, time.September, 2, 14, 20, 0, 0, time.UTC),
			ApplyType:       models.ApplyTypeApply,
			ApplyReason:     "Looking to build experience",
			HasCommunicated: false,
			Materials:       []string{"transcript.pdf"},
			Status:          models.ApplicationPending,
		},
		{
			ID:              503,
			StudentID:       1001,
			PositionID:      2,
			ApplyTime:       time.Date(2023, time.September, 5, 9, 15, 0, 0, time.UTC),
			ApplyType:       models.ApplyTypeApply,
			ApplyReason:     "Aligned with my research direction",
			HasCommunicated: true,
			Materials:       []string{"paper_draft.pdf"},
			Status:          models.ApplicationApproved,
			FinalScore:      floatPtr(88.0),
		},
	}
}

func fixtureWorkloads() []models.WorkloadSummary {
	return []models.WorkloadSummary{
		{
			ID:          1,
			StudentID:   1003,
			PositionID:  1,
			PeriodStart: time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:   time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			TotalHours:  40,
			Status:      models.WorkloadNormal,
		},
		{
			ID:          2,
			StudentID:   1001,
			PositionID:  2,
			PeriodStart: time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:   time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
			TotalHours:  60,
			Status:      models.WorkloadNormal,
		},
	}
}

func fixtureScholarships() []models.ScholarshipRecord {
	return []models.ScholarshipRecord{
		{
			ID:        1,
			StudentID: 1003,
			Amount:    3200,
			IssueDate: time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC),
			Type:      models.ScholarshipRegular,
			Reason:    "2023 fall term TA stipend",
			Status:    models.ScholarshipIssued,
		},
		{
			ID:        2,
			StudentID: 1001,
			Amount:    5000,
			IssueDate: time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC),
			Type:      models.ScholarshipRegular,
			Reason:    "2023 fall term RA stipend",
			Status:    models.ScholarshipIssued,
		},
		{
			ID:        3,
			StudentID: 1002,
			Amount:    500,
			IssueDate: time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC),
			Type:      models.ScholarshipSupplemental,
			Reason:    "Back pay for last year's workload adjustment",
			Status:    models.ScholarshipIssued,
		},
	}
}

func fixtureNotices() []models.PublicNotice {
	return []models.PublicNotice{
		{
			ID:          1,
			Title:       "TA stipends disbursed",
			Content:     "Fall term teaching assistant stipends have been transferred to registered bank accounts.",
			PublishTime: time.Date(2024, time.January, 20, 9, 0, 0, 0, time.UTC),
			Publisher:   "Graduate School Office",
		},
		{
			ID:          2,
			Title:       "2023 fall workload summaries generated",
			Content:     "Workload summaries for the 2023 fall term are now available under your profile.",
			PublishTime: time.Date(2024, time.January, 19, 9, 0, 0, 0, time.UTC),
			Publisher:   "Graduate School Office",
		},
		{
			ID:          3,
			Title:       "Advanced Statistics TA posting closed",
			Content:     "The Advanced Statistics teaching assistant posting has passed its deadline and no longer accepts applications.",
			PublishTime: time.Date(2023, time.September, 10, 9, 0, 0, 0, time.UTC),
			Publisher:   "Graduate School Office",
		},
	}
}

func fixtureStatusDistribution() dto.StatusDistribution {
	dist := dto.StatusDistribution{}
	for _, app := range fixtureApplications() {
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
	return dist
}

func fixturePeriodTotals() dto.PeriodTotals {
	totals := dto.PeriodTotals{}
	for _, record := range fixtureScholarships() {
		totals.EntryCount++
		if record.Type == models.ScholarshipDeduction {
			totals.Deductions += record.Amount
		} else {
			totals.Gross += record.Amount
		}
	}
	totals.Net = totals.Gross - totals.Deductions
	return totals
}
