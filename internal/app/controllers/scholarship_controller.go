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

// ScholarshipController handles scholarship ledger endpoints
type ScholarshipController struct {
	scholarshipService *services.ScholarshipService
}

// NewScholarshipController creates a new ScholarshipController
func NewScholarshipController(scholarshipService *services.ScholarshipService) *ScholarshipController {
	return &ScholarshipController{
		scholarshipService: scholarshipService,
	}
}

// Mine lists the authenticated student's ledger entries
// @Summary List own scholarship records
// @Tags scholarships
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /scholarships/mine [get]
func (c *ScholarshipController) Mine(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	records, err := c.scholarshipService.MyRecords(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      records,
		Timestamp: time.Now(),
	})
}

// ForStudent lists a specific student's ledger entries (admin)
// @Summary List a student's scholarship records
// @Tags scholarships
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/students/{id}/scholarships [get]
func (c *ScholarshipController) ForStudent(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	records, err := c.scholarshipService.RecordsFor(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      records,
		Timestamp: time.Now(),
	})
}

// Create appends a ledger entry (admin)
// @Summary Append a scholarship entry
// @Description Appends a REGULAR, SUPPLEMENTAL or DEDUCTION entry. Entries are never edited; corrections are compensating entries.
// @Tags scholarships
// @Accept json
// @Produce json
// @Param request body dto.CreateScholarshipRequest true "Ledger entry"
// @Success 201 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/scholarships [post]
func (c *ScholarshipController) Create(ctx *gin.Context) {
	var req dto.CreateScholarshipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	record, err := c.scholarshipService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      record,
		Timestamp: time.Now(),
	})
}
