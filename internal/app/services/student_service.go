package services

import (
	"context"

	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/pkg/logger"
)

// StudentStore is the student persistence surface shared by the services
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	SetVerified(ctx context.Context, id int64, verified bool) error
	SetHasJob(ctx context.Context, id int64, hasJob bool) error
	UpdateProfile(ctx context.Context, id int64, bankAccount, phone *string) error
}

// StudentService handles student profile and roster operations
type StudentService struct {
	studentStore StudentStore
}

// NewStudentService creates a new StudentService
func NewStudentService(studentStore StudentStore) *StudentService {
	return &StudentService{
		studentStore: studentStore,
	}
}

// Profile returns the student profile owned by a user account
func (s *StudentService) Profile(ctx context.Context, userID int64) (*models.Student, error) {
	return s.studentStore.GetByUserID(ctx, userID)
}

// UpdateProfile updates the fields a student may edit themselves
func (s *StudentService) UpdateProfile(ctx context.Context, userID int64, bankAccount, phone *string) (*models.Student, error) {
	student, err := s.studentStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.studentStore.UpdateProfile(ctx, student.ID, bankAccount, phone); err != nil {
		return nil, err
	}

	return s.studentStore.GetByID(ctx, student.ID)
}

// Roster lists all students (admin)
func (s *StudentService) Roster(ctx context.Context) ([]*models.Student, error) {
	return s.studentStore.GetAll(ctx)
}

// Verify sets the admin verification state of a student. Unverified
// students cannot submit applications.
func (s *StudentService) Verify(ctx context.Context, studentID int64, verified bool) error {
	if err := s.studentStore.SetVerified(ctx, studentID, verified); err != nil {
		return err
	}

	logger.Info().Int64("studentID", studentID).Bool("verified", verified).Msg("Student verification updated")
	return nil
}
