package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/demirhan/taportal/internal/app/controllers"
	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	applicationController *controllers.ApplicationController,
	positionController *controllers.PositionController,
	studentController *controllers.StudentController,
	scholarshipController *controllers.ScholarshipController,
	reportController *controllers.ReportController,
	noticeController *controllers.NoticeController,
	departmentController *controllers.DepartmentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.Use(middleware.RequestLogger())

	// API version group
	v1 := router.Group("/api/v1")

	// Liveness probe
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public routes ---
	notices := v1.Group("/notices")
	{
		notices.GET("", noticeController.List)
		notices.GET("/:id", noticeController.Get)
	}

	departments := v1.Group("/departments")
	{
		departments.GET("", departmentController.List)
		departments.GET("/:id", departmentController.Get)
	}

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/positions", positionController.List)
		authenticated.GET("/positions/:id", positionController.Get)

		authenticated.POST("/applications", applicationController.Submit)
		authenticated.GET("/applications/mine", applicationController.Mine)
		authenticated.POST("/applications/:id/withdraw", applicationController.Withdraw)

		authenticated.GET("/students/me", studentController.Profile)
		authenticated.PUT("/students/me", studentController.UpdateProfile)

		authenticated.GET("/scholarships/mine", scholarshipController.Mine)
		authenticated.GET("/workloads/mine", reportController.MyWorkloads)

		authenticated.GET("/reports/status-distribution", reportController.StatusDistribution)
	}

	// --- Administrator routes ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/applications", applicationController.List)
		admin.POST("/applications/:id/review", applicationController.Review)

		admin.POST("/positions", positionController.Create)
		admin.PUT("/positions/:id", positionController.Update)
		admin.POST("/positions/close-expired", positionController.CloseExpired)

		admin.GET("/students", studentController.Roster)
		admin.POST("/students/:id/verify", studentController.Verify)
		admin.GET("/students/:id/scholarships", scholarshipController.ForStudent)

		admin.POST("/scholarships", scholarshipController.Create)

		admin.POST("/notices", noticeController.Publish)

		admin.GET("/reports/workloads", reportController.Workloads)
		admin.GET("/reports/scholarships", reportController.Scholarships)
		admin.GET("/reports/positions", reportController.Positions)
		admin.GET("/reports/totals", reportController.Totals)
		admin.GET("/reports/roster", reportController.RosterCSV)
		admin.POST("/workloads/:id/flag", reportController.FlagWorkload)
	}
}
