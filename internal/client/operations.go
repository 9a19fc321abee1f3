package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/app/models/dto"
	"github.com/demirhan/taportal/internal/pkg/apperrors"
)

// Health probes the remote service. It never falls back; an unreachable
// service is exactly what callers use this to detect.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// Login authenticates and attaches the issued access token to the session.
// Authentication never falls back to fixtures.
func (c *Client) Login(ctx context.Context, username, password string) (*dto.TokenResponse, error) {
	var tokens dto.TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{
		Username: username,
		Password: password,
	}, &tokens)
	if err != nil {
		return nil, err
	}
	c.SetToken(tokens.AccessToken)
	return &tokens, nil
}

// Register creates a student account
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/register", req, nil)
}

// Logout revokes the session's refresh token and drops the local token
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", dto.RefreshRequest{RefreshToken: refreshToken}, nil)
	if err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

// ListNotices fetches published announcements
func (c *Client) ListNotices(ctx context.Context) ([]models.PublicNotice, error) {
	return get(ctx, c, "/notices", fixtureNotices)
}

// ListDepartments fetches the department reference list
func (c *Client) ListDepartments(ctx context.Context) ([]models.Department, error) {
	return get(ctx, c, "/departments", fixtureDepartments)
}

// ListPositions fetches postings, optionally filtered by status
func (c *Client) ListPositions(ctx context.Context, status string) ([]models.Position, error) {
	path := "/positions"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	return get(ctx, c, path, func() []models.Position {
		positions := fixturePositions()
		if status == "" {
			return positions
		}
		filtered := make([]models.Position, 0, len(positions))
		for _, p := range positions {
			if string(p.Status) == status {
				filtered = append(filtered, p)
			}
		}
		return filtered
	})
}

// GetPosition fetches one posting by id
func (c *Client) GetPosition(ctx context.Context, id int64) (*models.Position, error) {
	position, err := get(ctx, c, fmt.Sprintf("/positions/%d", id), func() *models.Position {
		for _, p := range fixturePositions() {
			if p.ID == id {
				return &p
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if position == nil {
		return nil, apperrors.ErrPositionNotFound
	}
	return position, nil
}

// MyProfile fetches the authenticated student's profile
func (c *Client) MyProfile(ctx context.Context) (*models.Student, error) {
	return get(ctx, c, "/students/me", func() *models.Student {
		students := fixtureStudents()
		return &students[0]
	})
}

// SubmitApplication submits a new position application. Mutations never
// fall back; an unreachable service surfaces as an error.
func (c *Client) SubmitApplication(ctx context.Context, req dto.SubmitApplicationRequest) (*models.Application, error) {
	var app models.Application
	if err := c.do(ctx, http.MethodPost, "/applications", req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// MyApplications fetches the authenticated student's applications
func (c *Client) MyApplications(ctx context.Context) ([]models.Application, error) {
	return get(ctx, c, "/applications/mine", fixtureApplications)
}

// WithdrawApplication withdraws one of the caller's pending applications
func (c *Client) WithdrawApplication(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/applications/%d/withdraw", id), nil, nil)
}

// MyWorkloads fetches the authenticated student's workload summaries
func (c *Client) MyWorkloads(ctx context.Context) ([]models.WorkloadSummary, error) {
	return get(ctx, c, "/workloads/mine", fixtureWorkloads)
}

// MyScholarships fetches the authenticated student's scholarship ledger
func (c *Client) MyScholarships(ctx context.Context) ([]models.ScholarshipRecord, error) {
	return get(ctx, c, "/scholarships/mine", fixtureScholarships)
}

// StatusDistribution fetches the application status counts visible to the
// caller's role.
func (c *Client) StatusDistribution(ctx context.Context) (*dto.StatusDistribution, error) {
	return get(ctx, c, "/reports/status-distribution", func() *dto.StatusDistribution {
		dist := fixtureStatusDistribution()
		return &dist
	})
}

// ListApplications fetches every application, with student and position
// relations attached. Administrators only.
func (c *Client) ListApplications(ctx context.Context) ([]models.Application, error) {
	return get(ctx, c, "/admin/applications", fixtureApplications)
}

// ReviewApplication records an administrator decision
func (c *Client) ReviewApplication(ctx context.Context, id int64, req dto.DecisionRequest) (*models.Application, error) {
	var app models.Application
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/admin/applications/%d/review", id), req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// CreatePosition publishes a new posting
func (c *Client) CreatePosition(ctx context.Context, req dto.CreatePositionRequest) (*models.Position, error) {
	var position models.Position
	if err := c.do(ctx, http.MethodPost, "/admin/positions", req, &position); err != nil {
		return nil, err
	}
	return &position, nil
}

// UpdatePosition edits a posting. Edits never touch workload summaries that
// were derived from earlier approvals.
func (c *Client) UpdatePosition(ctx context.Context, id int64, req dto.UpdatePositionRequest) (*models.Position, error) {
	var position models.Position
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/positions/%d", id), req, &position); err != nil {
		return nil, err
	}
	return &position, nil
}

// Roster fetches the full student roster. Administrators only.
func (c *Client) Roster(ctx context.Context) ([]models.Student, error) {
	return get(ctx, c, "/admin/students", fixtureStudents)
}

// VerifyStudent sets a student's verification state
func (c *Client) VerifyStudent(ctx context.Context, id int64, verified bool) error {
	body := map[string]*bool{"verified": &verified}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/admin/students/%d/verify", id), body, nil)
}

// StudentScholarships fetches one student's scholarship ledger
func (c *Client) StudentScholarships(ctx context.Context, studentID int64) ([]models.ScholarshipRecord, error) {
	return get(ctx, c, fmt.Sprintf("/admin/students/%d/scholarships", studentID), fixtureScholarships)
}

// CreateScholarship appends a ledger entry
func (c *Client) CreateScholarship(ctx context.Context, req dto.CreateScholarshipRequest) (*models.ScholarshipRecord, error) {
	var record models.ScholarshipRecord
	if err := c.do(ctx, http.MethodPost, "/admin/scholarships", req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// WorkloadReport fetches workload summaries under a year/department filter
func (c *Client) WorkloadReport(ctx context.Context, filter dto.ReportFilter) (*dto.ResultList[models.WorkloadSummary], error) {
	return get(ctx, c, "/admin/reports/workloads"+filterQuery(filter), func() *dto.ResultList[models.WorkloadSummary] {
		return &dto.ResultList[models.WorkloadSummary]{Results: fixtureWorkloads()}
	})
}

// ScholarshipReport fetches ledger entries under a year/department filter
func (c *Client) ScholarshipReport(ctx context.Context, filter dto.ReportFilter) (*dto.ResultList[models.ScholarshipRecord], error) {
	return get(ctx, c, "/admin/reports/scholarships"+filterQuery(filter), func() *dto.ResultList[models.ScholarshipRecord] {
		return &dto.ResultList[models.ScholarshipRecord]{Results: fixtureScholarships()}
	})
}

// PositionReport fetches the posting list under a year/department filter
func (c *Client) PositionReport(ctx context.Context, filter dto.ReportFilter) (*dto.ResultList[models.Position], error) {
	return get(ctx, c, "/admin/reports/positions"+filterQuery(filter), func() *dto.ResultList[models.Position] {
		positions := fixturePositions()
		filtered := make([]models.Position, 0, len(positions))
		for _, p := range positions {
			if filter.Year != 0 && p.Year != filter.Year {
				continue
			}
			if filter.DepartmentID != 0 && p.DepartmentID != filter.DepartmentID {
				continue
			}
			filtered = append(filtered, p)
		}
		return &dto.ResultList[models.Position]{Results: filtered}
	})
}

// PeriodTotals fetches the scholarship sum for a filter, deductions
// subtracted.
func (c *Client) PeriodTotals(ctx context.Context, filter dto.ReportFilter) (*dto.PeriodTotals, error) {
	return get(ctx, c, "/admin/reports/totals"+filterQuery(filter), func() *dto.PeriodTotals {
		totals := fixturePeriodTotals()
		totals.Year = filter.Year
		totals.DepartmentID = filter.DepartmentID
		return &totals
	})
}

// ExportKind selects which CSV report ExportURL points at
type ExportKind string

const (
	ExportWorkloads    ExportKind = "workloads"
	ExportScholarships ExportKind = "scholarships"
	ExportPositions    ExportKind = "positions"
	ExportRoster       ExportKind = "roster"
)

// ExportURL builds the CSV export URL for a report. The server streams the
// file; the client's responsibility ends at the correctly parameterized
// request.
func (c *Client) ExportURL(kind ExportKind, filter dto.ReportFilter) string {
	values := url.Values{}
	values.Set("format", "csv")
	if filter.Year > 0 {
		values.Set("year", strconv.Itoa(filter.Year))
	}
	if filter.DepartmentID > 0 {
		values.Set("dept", strconv.FormatInt(filter.DepartmentID, 10))
	}
	return fmt.Sprintf("%s/admin/reports/%s?%s", c.baseURL, kind, values.Encode())
}

func filterQuery(filter dto.ReportFilter) string {
	values := url.Values{}
	if filter.Year > 0 {
		values.Set("year", strconv.Itoa(filter.Year))
	}
	if filter.DepartmentID > 0 {
		values.Set("dept", strconv.FormatInt(filter.DepartmentID, 10))
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
