package services

import (
	"github.com/demirhan/taportal/internal/app/lifecycle"
	"github.com/demirhan/taportal/internal/app/repositories"
	"github.com/demirhan/taportal/internal/pkg/auth"
)

// Services holds all the service instances
type Services struct {
	AuthService        *AuthService
	ApplicationService *ApplicationService
	PositionService    *PositionService
	StudentService     *StudentService
	ScholarshipService *ScholarshipService
	ReportService      *ReportService
	NoticeService      *NoticeService
	DepartmentService  *DepartmentService
}

// NewServices wires all services onto the concrete repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, periodBounds lifecycle.PeriodBounds) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.TokenRepository,
			repos.StudentRepository,
			repos.DepartmentRepository,
			jwtService,
		),
		ApplicationService: NewApplicationService(
			repos.ApplicationRepository,
			repos.StudentRepository,
			repos.PositionRepository,
			periodBounds,
		),
		PositionService: NewPositionService(
			repos.PositionRepository,
			repos.DepartmentRepository,
		),
		StudentService: NewStudentService(repos.StudentRepository),
		ScholarshipService: NewScholarshipService(
			repos.ScholarshipRepository,
			repos.StudentRepository,
		),
		ReportService: NewReportService(
			repos.ApplicationRepository,
			repos.WorkloadRepository,
			repos.ScholarshipRepository,
			repos.StudentRepository,
			repos.PositionRepository,
		),
		NoticeService:     NewNoticeService(repos.NoticeRepository),
		DepartmentService: NewDepartmentService(repos.DepartmentRepository),
	}
}
