package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	StudentRepository     *StudentRepository
	PositionRepository    *PositionRepository
	ApplicationRepository *ApplicationRepository
	WorkloadRepository    *WorkloadRepository
	ScholarshipRepository *ScholarshipRepository
	DepartmentRepository  *DepartmentRepository
	NoticeRepository      *NoticeRepository
	TokenRepository       *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		StudentRepository:     NewStudentRepository(db),
		PositionRepository:    NewPositionRepository(db),
		ApplicationRepository: NewApplicationRepository(db),
		WorkloadRepository:    NewWorkloadRepository(db),
		ScholarshipRepository: NewScholarshipRepository(db),
		DepartmentRepository:  NewDepartmentRepository(db),
		NoticeRepository:      NewNoticeRepository(db),
		TokenRepository:       NewTokenRepository(db),
	}
}
