package services

import (
	"context"
	"time"

	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/app/models/dto"
	"github.com/demirhan/taportal/internal/pkg/apperrors"
	"github.com/demirhan/taportal/internal/pkg/logger"
)

// ScholarshipStore is the append-only ledger persistence surface
type ScholarshipStore interface {
	Create(ctx context.Context, rec *models.ScholarshipRecord) error
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.ScholarshipRecord, error)
	GetFiltered(ctx context.Context, from, to time.Time, departmentID int64) ([]*models.ScholarshipRecord, error)
}

// ScholarshipService manages the scholarship ledger. Entries are appended,
// never edited: a wrong disbursement is corrected by a DEDUCTION entry and
// a missed one by a SUPPLEMENTAL entry.
type ScholarshipService struct {
	scholarshipStore ScholarshipStore
	studentStore     StudentStore
	now              func() time.Time
}

// NewScholarshipService creates a new ScholarshipService
func NewScholarshipService(scholarshipStore ScholarshipStore, studentStore StudentStore) *ScholarshipService {
	return &ScholarshipService{
		scholarshipStore: scholarshipStore,
		studentStore:     studentStore,
		now:              time.Now,
	}
}

// MyRecords lists the ledger entries of the student owning userID
func (s *ScholarshipService) MyRecords(ctx context.Context, userID int64) ([]*models.ScholarshipRecord, error) {
	student, err := s.studentStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.scholarshipStore.GetByStudentID(ctx, student.ID)
}

// RecordsFor lists a specific student's ledger entries (admin)
func (s *ScholarshipService) RecordsFor(ctx context.Context, studentID int64) ([]*models.ScholarshipRecord, error) {
	if _, err := s.studentStore.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.scholarshipStore.GetByStudentID(ctx, studentID)
}

// Create appends a ledger entry. The amount is a positive magnitude; the
// type carries the direction.
func (s *ScholarshipService) Create(ctx context.Context, req *dto.CreateScholarshipRequest) (*models.ScholarshipRecord, error) {
	if req.Amount <= 0 {
		return nil, apperrors.NewBadRequestError("amount must be positive")
	}

	student, err := s.studentStore.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	status := models.ScholarshipStatus(req.Status)
	if status == "" {
		status = models.ScholarshipIssued
	}

	rec := &models.ScholarshipRecord{
		StudentID: student.ID,
		Amount:    req.Amount,
		IssueDate: s.now(),
		Type:      models.ScholarshipType(req.Type),
		Reason:    req.Reason,
		Status:    status,
	}
	if err := s.scholarshipStore.Create(ctx, rec); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("studentID", rec.StudentID).
		Float64("amount", rec.Amount).
		Str("type", string(rec.Type)).
		Msg("Scholarship entry appended")

	return rec, nil
}
