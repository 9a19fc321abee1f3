package services

import (
	"context"
	"time"

	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/app/models/dto"
	"github.com/demirhan/taportal/internal/pkg/apperrors"
	"github.com/demirhan/taportal/internal/pkg/logger"
)

// PositionService handles posting management
type PositionService struct {
	positionStore   PositionStore
	departmentStore DepartmentStore
	now             func() time.Time
}

// NewPositionService creates a new PositionService
func NewPositionService(positionStore PositionStore, departmentStore DepartmentStore) *PositionService {
	return &PositionService{
		positionStore:   positionStore,
		departmentStore: departmentStore,
		now:             time.Now,
	}
}

// List returns postings, optionally restricted to a status. Without an
// explicit filter, students see only open postings; the unfiltered view is
// an administrator's.
func (s *PositionService) List(ctx context.Context, status *models.PositionStatus, admin bool) ([]*models.Position, error) {
	if status == nil && !admin {
		open := models.PositionOpen
		status = &open
	}
	return s.positionStore.GetAll(ctx, status)
}

// Get returns a single posting
func (s *PositionService) Get(ctx context.Context, id int64) (*models.Position, error) {
	return s.positionStore.GetByID(ctx, id)
}

// Create publishes a new posting as OPEN
func (s *PositionService) Create(ctx context.Context, req *dto.CreatePositionRequest) (*models.Position, error) {
	exists, err := s.departmentStore.Exists(ctx, req.DepartmentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrDepartmentNotFound
	}

	if !req.Deadline.After(s.now()) {
		return nil, apperrors.NewBadRequestError("deadline must be in the future")
	}

	position := &models.Position{
		Title:          req.Title,
		Type:           models.PositionType(req.Type),
		DepartmentID:   req.DepartmentID,
		SupervisorName: req.SupervisorName,
		Year:           req.Year,
		TotalSlots:     req.TotalSlots,
		SalaryMonth:    req.SalaryMonth,
		Description:    req.Description,
		Workload:       req.Workload,
		Requirements:   req.Requirements,
		Deadline:       req.Deadline,
		Status:         models.PositionOpen,
	}
	if err := s.positionStore.Create(ctx, position); err != nil {
		return nil, err
	}

	logger.Info().Int64("positionID", position.ID).Str("title", position.Title).Msg("Position created")
	return position, nil
}

// Update edits a posting. A workload edit changes only future approvals;
// summaries already derived keep their copied hours.
func (s *PositionService) Update(ctx context.Context, id int64, req *dto.UpdatePositionRequest) (*models.Position, error) {
	position, err := s.positionStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		position.Title = *req.Title
	}
	if req.SupervisorName != nil {
		position.SupervisorName = *req.SupervisorName
	}
	if req.TotalSlots != nil {
		if *req.TotalSlots < 1 {
			return nil, apperrors.NewBadRequestError("total slots must be at least 1")
		}
		position.TotalSlots = *req.TotalSlots
	}
	if req.SalaryMonth != nil {
		position.SalaryMonth = *req.SalaryMonth
	}
	if req.Description != nil {
		position.Description = *req.Description
	}
	if req.Workload != nil {
		if *req.Workload < 1 {
			return nil, apperrors.NewBadRequestError("workload must be at least 1 hour")
		}
		position.Workload = *req.Workload
	}
	if req.Requirements != nil {
		position.Requirements = req.Requirements
	}
	if req.Deadline != nil {
		position.Deadline = *req.Deadline
	}
	if req.Status != nil {
		position.Status = models.PositionStatus(*req.Status)
	}

	if err := s.positionStore.Update(ctx, position); err != nil {
		return nil, err
	}

	return position, nil
}

// CloseExpired sweeps OPEN postings whose deadline has passed
func (s *PositionService) CloseExpired(ctx context.Context) (int64, error) {
	closed, err := s.positionStore.CloseExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if closed > 0 {
		logger.Info().Int64("count", closed).Msg("Closed expired positions")
	}
	return closed, nil
}
