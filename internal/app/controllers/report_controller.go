package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/demirhan/taportal/internal/app/models/dto"
	"github.com/demirhan/taportal/internal/app/services"
	"github.com/demirhan/taportal/internal/middleware"
	"github.com/demirhan/taportal/internal/pkg/apperrors"
)

// ReportController handles reporting and export endpoints
type ReportController struct {
	reportService  *services.ReportService
	studentService *services.StudentService
}

// NewReportController creates a new ReportController
func NewReportController(reportService *services.ReportService, studentService *services.StudentService) *ReportController {
	return &ReportController{
		reportService:  reportService,
		studentService: studentService,
	}
}

func bindFilter(ctx *gin.Context) (dto.ReportFilter, bool) {
	var filter dto.ReportFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return filter, false
	}
	return filter, true
}

// StatusDistribution counts applications per status. Students see their own
// applications only; administrators see the portal-wide counts. The scope
// follows the token's role claim.
// @Summary Application status distribution
// @Tags reports
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.StatusDistribution}
// @Security BearerAuth
// @Router /reports/status-distribution [get]
func (c *ReportController) StatusDistribution(ctx *gin.Context) {
	var scope *int64
	if !middleware.IsAdmin(ctx) {
		userID, ok := middleware.GetUserID(ctx)
		if !ok {
			middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
			return
		}
		student, err := c.studentService.Profile(ctx, userID)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		scope = &student.ID
	}

	dist, err := c.reportService.StatusDistribution(ctx, scope)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dist,
		Timestamp: time.Now(),
	})
}

// Workloads lists workload records for a filter (admin). With format=csv the
// report streams as a CSV attachment instead of JSON.
// @Summary Workload report
// @Tags reports
// @Produce json
// @Param year query int false "Academic year"
// @Param dept query int false "Department ID"
// @Param format query string false "csv for CSV export"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/reports/workloads [get]
func (c *ReportController) Workloads(ctx *gin.Context) {
	filter, ok := bindFilter(ctx)
	if !ok {
		return
	}

	if ctx.Query("format") == "csv" {
		ctx.Header("Content-Disposition", `attachment; filename="workloads.csv"`)
		ctx.Header("Content-Type", "text/csv")
		if err := c.reportService.WriteWorkloadsCSV(ctx, ctx.Writer, filter); err != nil {
			middleware.HandleAPIError(ctx, err)
		}
		return
	}

	list, err := c.reportService.Workloads(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      list,
		Timestamp: time.Now(),
	})
}

// Scholarships lists ledger entries for a filter (admin), JSON or CSV
// @Summary Scholarship report
// @Tags reports
// @Produce json
// @Param year query int false "Calendar year"
// @Param dept query int false "Department ID"
// @Param format query string false "csv for CSV export"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/reports/scholarships [get]
func (c *ReportController) Scholarships(ctx *gin.Context) {
	filter, ok := bindFilter(ctx)
	if !ok {
		return
	}

	if ctx.Query("format") == "csv" {
		ctx.Header("Content-Disposition", `attachment; filename="scholarships.csv"`)
		ctx.Header("Content-Type", "text/csv")
		if err := c.reportService.WriteScholarshipsCSV(ctx, ctx.Writer, filter); err != nil {
			middleware.HandleAPIError(ctx, err)
		}
		return
	}

	list, err := c.reportService.Scholarships(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      list,
		Timestamp: time.Now(),
	})
}

// Positions lists postings for a filter (admin), JSON or CSV
// @Summary Position report
// @Tags reports
// @Produce json
// @Param year query int false "Academic year"
// @Param dept query int false "Department ID"
// @Param format query string false "csv for CSV export"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/reports/positions [get]
func (c *ReportController) Positions(ctx *gin.Context) {
	filter, ok := bindFilter(ctx)
	if !ok {
		return
	}

	if ctx.Query("format") == "csv" {
		ctx.Header("Content-Disposition", `attachment; filename="positions.csv"`)
		ctx.Header("Content-Type", "text/csv")
		if err := c.reportService.WritePositionsCSV(ctx, ctx.Writer, filter); err != nil {
			middleware.HandleAPIError(ctx, err)
		}
		return
	}

	list, err := c.reportService.Positions(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      list,
		Timestamp: time.Now(),
	})
}

// Totals sums the ledger over a filter (admin)
// @Summary Scholarship period totals
// @Tags reports
// @Produce json
// @Param year query int false "Calendar year"
// @Param dept query int false "Department ID"
// @Success 200 {object} dto.APIResponse{data=dto.PeriodTotals}
// @Security BearerAuth
// @Router /admin/reports/totals [get]
func (c *ReportController) Totals(ctx *gin.Context) {
	filter, ok := bindFilter(ctx)
	if !ok {
		return
	}

	totals, err := c.reportService.PeriodTotals(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      totals,
		Timestamp: time.Now(),
	})
}

// RosterCSV exports the student roster as CSV (admin)
// @Summary Roster export
// @Tags reports
// @Produce text/csv
// @Success 200
// @Security BearerAuth
// @Router /admin/reports/roster [get]
func (c *ReportController) RosterCSV(ctx *gin.Context) {
	ctx.Header("Content-Disposition", `attachment; filename="students.csv"`)
	ctx.Header("Content-Type", "text/csv")
	if err := c.reportService.WriteRosterCSV(ctx, ctx.Writer); err != nil {
		middleware.HandleAPIError(ctx, err)
	}
}

// MyWorkloads lists the authenticated student's workload records
// @Summary List own workload records
// @Tags reports
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /workloads/mine [get]
func (c *ReportController) MyWorkloads(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	summaries, err := c.reportService.StudentWorkloads(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      summaries,
		Timestamp: time.Now(),
	})
}

type flagWorkloadRequest struct {
	Anomalous *bool `json:"anomalous" binding:"required"`
}

// FlagWorkload marks a workload record ANOMALOUS or clears the flag (admin)
// @Summary Flag a workload record
// @Tags reports
// @Accept json
// @Produce json
// @Param id path int true "Workload summary ID"
// @Param request body flagWorkloadRequest true "Flag state"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Security BearerAuth
// @Router /admin/workloads/{id}/flag [post]
func (c *ReportController) FlagWorkload(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req flagWorkloadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.reportService.FlagWorkload(ctx, id, *req.Anomalous); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Workload flag updated"},
		Timestamp: time.Now(),
	})
}
