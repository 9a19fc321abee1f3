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

// StudentController handles student profile and roster endpoints
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

type updateProfileRequest struct {
	BankAccount *string `json:"bank_account"`
	Phone       *string `json:"phone"`
}

type verifyRequest struct {
	Verified *bool `json:"verified" binding:"required"`
}

// Profile returns the authenticated student's own profile
// @Summary Get own profile
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /students/me [get]
func (c *StudentController) Profile(ctx *gin.Context) {
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

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// UpdateProfile edits the student-editable profile fields
// @Summary Update own profile
// @Tags students
// @Accept json
// @Produce json
// @Param request body updateProfileRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /students/me [put]
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	var req updateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student, err := c.studentService.UpdateProfile(ctx, userID, req.BankAccount, req.Phone)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// Roster lists all students (admin)
// @Summary List students
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /admin/students [get]
func (c *StudentController) Roster(ctx *gin.Context) {
	students, err := c.studentService.Roster(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      students,
		Timestamp: time.Now(),
	})
}

// Verify sets a student's verification state (admin)
// @Summary Verify a student
// @Description Only verified students may submit applications.
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param request body verifyRequest true "Verification state"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Security BearerAuth
// @Router /admin/students/{id}/verify [post]
func (c *StudentController) Verify(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req verifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.studentService.Verify(ctx, id, *req.Verified); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Verification updated"},
		Timestamp: time.Now(),
	})
}
