package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/app/models/dto"
	"github.com/demirhan/taportal/internal/app/services"
	"github.com/demirhan/taportal/internal/middleware"
)

// PositionController handles posting endpoints
type PositionController struct {
	positionService *services.PositionService
}

// NewPositionController creates a new PositionController
func NewPositionController(positionService *services.PositionService) *PositionController {
	return &PositionController{
		positionService: positionService,
	}
}

// List returns postings, optionally filtered by status. Without a filter,
// students get open postings only; administrators get all of them.
// @Summary List positions
// @Tags positions
// @Produce json
// @Param status query string false "Filter by status (OPEN, CLOSED, COMPLETED)"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /positions [get]
func (c *PositionController) List(ctx *gin.Context) {
	var status *models.PositionStatus
	if raw := ctx.Query("status"); raw != "" {
		s := models.PositionStatus(raw)
		switch s {
		case models.PositionOpen, models.PositionClosed, models.PositionCompleted:
			status = &s
		default:
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status filter").WithField("status")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	positions, err := c.positionService.List(ctx, status, middleware.IsAdmin(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      positions,
		Timestamp: time.Now(),
	})
}

// Get returns a single posting
// @Summary Get a position
// @Tags positions
// @Produce json
// @Param id path int true "Position ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Position not found"
// @Security BearerAuth
// @Router /positions/{id} [get]
func (c *PositionController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	position, err := c.positionService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      position,
		Timestamp: time.Now(),
	})
}

// Create publishes a new posting (admin)
// @Summary Create a position
// @Tags positions
// @Accept json
// @Produce json
// @Param request body dto.CreatePositionRequest true "Position payload"
// @Success 201 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/positions [post]
func (c *PositionController) Create(ctx *gin.Context) {
	var req dto.CreatePositionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	position, err := c.positionService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      position,
		Timestamp: time.Now(),
	})
}

// Update edits a posting (admin)
// @Summary Update a position
// @Description Edits posting fields. Changing the workload affects only future approvals; existing workload records keep their copied hours.
// @Tags positions
// @Accept json
// @Produce json
// @Param id path int true "Position ID"
// @Param request body dto.UpdatePositionRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/positions/{id} [put]
func (c *PositionController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePositionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	position, err := c.positionService.Update(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      position,
		Timestamp: time.Now(),
	})
}

// CloseExpired sweeps postings past their deadline (admin)
// @Summary Close expired positions
// @Tags positions
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/positions/close-expired [post]
func (c *PositionController) CloseExpired(ctx *gin.Context) {
	closed, err := c.positionService.CloseExpired(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"closed": closed},
		Timestamp: time.Now(),
	})
}
