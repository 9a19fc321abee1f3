package services

import (
	"context"

	"github.com/demirhan/taportal/internal/app/models"
)

// DepartmentStore is the department reference-data surface
type DepartmentStore interface {
	GetAll(ctx context.Context) ([]*models.Department, error)
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// DepartmentService serves department reference data
type DepartmentService struct {
	departmentStore DepartmentStore
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(departmentStore DepartmentStore) *DepartmentService {
	return &DepartmentService{
		departmentStore: departmentStore,
	}
}

// List returns all departments
func (s *DepartmentService) List(ctx context.Context) ([]*models.Department, error) {
	return s.departmentStore.GetAll(ctx)
}

// Get returns a single department
func (s *DepartmentService) Get(ctx context.Context, id int64) (*models.Department, error) {
	return s.departmentStore.GetByID(ctx, id)
}
