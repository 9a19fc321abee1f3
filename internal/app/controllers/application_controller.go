package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/demirhan/taportal/internal/app/models/dto"
	"github.com/demirhan/taportal/internal/app/services"
	"github.com/demirhan/taportal/internal/middleware"
	"github.com/demirhan/taportal/internal/pkg/apperrors"
)

// ApplicationController handles application lifecycle endpoints
type ApplicationController struct {
	applicationService *services.ApplicationService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
	}
}

func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// Submit files a new application for the authenticated student
// @Summary Submit an application
// @Description Files a PENDING application after the eligibility checks: no current position, no other pending application, no duplicate target, position still open.
// @Tags applications
// @Accept json
// @Produce json
// @Param request body dto.SubmitApplicationRequest true "Application payload"
// @Success 201 {object} dto.APIResponse
// @Failure 409 {object} dto.ErrorResponse "An eligibility guard denied the submission"
// @Security BearerAuth
// @Router /applications [post]
func (c *ApplicationController) Submit(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	var req dto.SubmitApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	app, err := c.applicationService.Submit(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      app,
		Timestamp: time.Now(),
	})
}

// Mine lists the authenticated student's applications
// @Summary List own applications
// @Tags applications
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /applications/mine [get]
func (c *ApplicationController) Mine(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	apps, err := c.applicationService.MyApplications(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      apps,
		Timestamp: time.Now(),
	})
}

// Withdraw cancels the student's own PENDING application
// @Summary Withdraw an application
// @Tags applications
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 409 {object} dto.ErrorResponse "Application already decided"
// @Security BearerAuth
// @Router /applications/{id}/withdraw [post]
func (c *ApplicationController) Withdraw(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.applicationService.Withdraw(ctx, userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Application withdrawn"},
		Timestamp: time.Now(),
	})
}

// List returns the full review queue (admin)
// @Summary List all applications
// @Tags applications
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/applications [get]
func (c *ApplicationController) List(ctx *gin.Context) {
	apps, err := c.applicationService.AllApplications(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      apps,
		Timestamp: time.Now(),
	})
}

// Review applies an administrator decision
// @Summary Decide on an application
// @Description Approves or rejects a PENDING application. Approval atomically creates the workload record and marks the student employed. Retrying with the same idempotency key is safe.
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param request body dto.DecisionRequest true "Decision payload"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.ErrorResponse "Already decided, position full, or student employed"
// @Security BearerAuth
// @Router /admin/applications/{id}/review [post]
func (c *ApplicationController) Review(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.DecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	app, err := c.applicationService.Review(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      app,
		Timestamp: time.Now(),
	})
}
