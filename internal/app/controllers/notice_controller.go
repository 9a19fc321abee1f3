package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/demirhan/taportal/internal/app/models/dto"
	"github.com/demirhan/taportal/internal/app/services"
	"github.com/demirhan/taportal/internal/middleware"
)

// NoticeController handles the public announcement board
type NoticeController struct {
	noticeService *services.NoticeService
}

// NewNoticeController creates a new NoticeController
func NewNoticeController(noticeService *services.NoticeService) *NoticeController {
	return &NoticeController{
		noticeService: noticeService,
	}
}

type publishNoticeRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Publisher string `json:"publisher" binding:"required"`
}

// List returns all notices, no authentication required
// @Summary List public notices
// @Tags notices
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /notices [get]
func (c *NoticeController) List(ctx *gin.Context) {
	notices, err := c.noticeService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      notices,
		Timestamp: time.Now(),
	})
}

// Get returns a single notice
// @Summary Get a notice
// @Tags notices
// @Produce json
// @Param id path int true "Notice ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Notice not found"
// @Router /notices/{id} [get]
func (c *NoticeController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	notice, err := c.noticeService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      notice,
		Timestamp: time.Now(),
	})
}

// Publish creates a new notice (admin)
// @Summary Publish a notice
// @Tags notices
// @Accept json
// @Produce json
// @Param request body publishNoticeRequest true "Notice payload"
// @Success 201 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/notices [post]
func (c *NoticeController) Publish(ctx *gin.Context) {
	var req publishNoticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	notice, err := c.noticeService.Publish(ctx, req.Title, req.Content, req.Publisher)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      notice,
		Timestamp: time.Now(),
	})
}
