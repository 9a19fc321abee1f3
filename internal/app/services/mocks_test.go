package services

import (
	"context"
	"time"

	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/pkg/apperrors"
)

// In-memory stores backing the service tests. They honor the same sentinel
// errors as the pgx repositories so the services cannot tell them apart.

type memStudentStore struct {
	students map[int64]*models.Student
	nextID   int64
}

func newMemStudentStore() *memStudentStore {
	return &memStudentStore{students: make(map[int64]*models.Student), nextID: 1}
}

func (m *memStudentStore) Create(_ context.Context, s *models.Student) error {
	s.ID = m.nextID
	m.nextID++
	m.students[s.ID] = s
	return nil
}

func (m *memStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	s, ok := m.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *memStudentStore) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	for _, s := range m.students {
		if s.UserID == userID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (m *memStudentStore) GetAll(_ context.Context) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range m.students {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memStudentStore) SetVerified(_ context.Context, id int64, verified bool) error {
	s, ok := m.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.Verified = verified
	return nil
}

func (m *memStudentStore) SetHasJob(_ context.Context, id int64, hasJob bool) error {
	s, ok := m.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.HasJob = hasJob
	return nil
}

func (m *memStudentStore) UpdateProfile(_ context.Context, id int64, bankAccount, phone *string) error {
	s, ok := m.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.BankAccount = bankAccount
	s.Phone = phone
	return nil
}

type memPositionStore struct {
	positions map[int64]*models.Position
	nextID    int64
}

func newMemPositionStore() *memPositionStore {
	return &memPositionStore{positions: make(map[int64]*models.Position), nextID: 1}
}

func (m *memPositionStore) Create(_ context.Context, p *models.Position) error {
	p.ID = m.nextID
	m.nextID++
	m.positions[p.ID] = p
	return nil
}

func (m *memPositionStore) GetByID(_ context.Context, id int64) (*models.Position, error) {
	p, ok := m.positions[id]
	if !ok {
		return nil, apperrors.ErrPositionNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *memPositionStore) GetAll(_ context.Context, status *models.PositionStatus) ([]*models.Position, error) {
	var out []*models.Position
	for _, p := range m.positions {
		if status != nil && p.Status != *status {
			continue
		}
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memPositionStore) Update(_ context.Context, p *models.Position) error {
	if _, ok := m.positions[p.ID]; !ok {
		return apperrors.ErrPositionNotFound
	}
	copied := *p
	m.positions[p.ID] = &copied
	return nil
}

func (m *memPositionStore) CloseExpired(_ context.Context, now time.Time) (int64, error) {
	var closed int64
	for _, p := range m.positions {
		if p.Status == models.PositionOpen && p.Deadline.Before(now) {
			p.Status = models.PositionClosed
			closed++
		}
	}
	return closed, nil
}

// memApplicationStore mirrors the transactional semantics of the pgx
// repository: RecordDecision refuses non-pending rows, honors the decision
// key on replay, enforces slot capacity and creates the workload record.
type memApplicationStore struct {
	apps         map[int64]*models.Application
	decisionKeys map[int64]string
	workloads    *memWorkloadStore
	students     *memStudentStore
	positions    *memPositionStore
	nextID       int64
}

func newMemApplicationStore(students *memStudentStore, positions *memPositionStore, workloads *memWorkloadStore) *memApplicationStore {
	return &memApplicationStore{
		apps:         make(map[int64]*models.Application),
		decisionKeys: make(map[int64]string),
		workloads:    workloads,
		students:     students,
		positions:    positions,
		nextID:       1,
	}
}

func (m *memApplicationStore) Create(_ context.Context, app *models.Application) error {
	app.ID = m.nextID
	m.nextID++
	copied := *app
	m.apps[app.ID] = &copied
	return nil
}

func (m *memApplicationStore) GetByID(_ context.Context, id int64) (*models.Application, error) {
	app, ok := m.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	copied := *app
	return &copied, nil
}

func (m *memApplicationStore) GetByStudentID(_ context.Context, studentID int64) ([]*models.Application, error) {
	var out []*models.Application
	for _, app := range m.apps {
		if app.StudentID == studentID {
			copied := *app
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memApplicationStore) GetAll(_ context.Context) ([]*models.Application, error) {
	var out []*models.Application
	for _, app := range m.apps {
		copied := *app
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memApplicationStore) RecordDecision(_ context.Context, app *models.Application, workload *models.WorkloadSummary, decisionKey string) error {
	stored, ok := m.apps[app.ID]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}

	if stored.Status != models.ApplicationPending {
		if decisionKey != "" && m.decisionKeys[app.ID] == decisionKey {
			return nil
		}
		return apperrors.ErrInvalidTransition
	}

	if workload != nil {
		position, ok := m.positions.positions[app.PositionID]
		if !ok {
			return apperrors.ErrPositionNotFound
		}
		approved := 0
		for _, other := range m.apps {
			if other.PositionID == app.PositionID && other.Status == models.ApplicationApproved {
				approved++
			}
		}
		if approved >= position.TotalSlots {
			return apperrors.ErrPositionFull
		}

		student, ok := m.students.students[app.StudentID]
		if !ok {
			return apperrors.ErrStudentNotFound
		}
		if student.HasJob {
			return apperrors.ErrAlreadyEmployed
		}

		m.workloads.add(workload)
		student.HasJob = true
	}

	copied := *app
	m.apps[app.ID] = &copied
	if decisionKey != "" {
		m.decisionKeys[app.ID] = decisionKey
	}
	return nil
}

func (m *memApplicationStore) Withdraw(_ context.Context, id, studentID int64) error {
	app, ok := m.apps[id]
	if !ok || app.StudentID != studentID || app.Status != models.ApplicationPending {
		return apperrors.ErrInvalidTransition
	}
	app.Status = models.ApplicationWithdrawn
	return nil
}

type memWorkloadStore struct {
	summaries []*models.WorkloadSummary
	nextID    int64
}

func newMemWorkloadStore() *memWorkloadStore {
	return &memWorkloadStore{nextID: 1}
}

func (m *memWorkloadStore) add(w *models.WorkloadSummary) {
	w.ID = m.nextID
	m.nextID++
	copied := *w
	m.summaries = append(m.summaries, &copied)
}

func (m *memWorkloadStore) GetByStudentID(_ context.Context, studentID int64) ([]*models.WorkloadSummary, error) {
	var out []*models.WorkloadSummary
	for _, w := range m.summaries {
		if w.StudentID == studentID {
			copied := *w
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memWorkloadStore) GetFiltered(_ context.Context, year int, departmentID int64) ([]*models.WorkloadSummary, error) {
	var out []*models.WorkloadSummary
	for _, w := range m.summaries {
		copied := *w
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memWorkloadStore) SetStatus(_ context.Context, id int64, status models.WorkloadStatus) error {
	for _, w := range m.summaries {
		if w.ID == id {
			w.Status = status
			return nil
		}
	}
	return apperrors.ErrResourceNotFound
}

type memScholarshipStore struct {
	records []*models.ScholarshipRecord
	nextID  int64
}

func newMemScholarshipStore() *memScholarshipStore {
	return &memScholarshipStore{nextID: 1}
}

func (m *memScholarshipStore) Create(_ context.Context, rec *models.ScholarshipRecord) error {
	rec.ID = m.nextID
	m.nextID++
	copied := *rec
	m.records = append(m.records, &copied)
	return nil
}

func (m *memScholarshipStore) GetByStudentID(_ context.Context, studentID int64) ([]*models.ScholarshipRecord, error) {
	var out []*models.ScholarshipRecord
	for _, rec := range m.records {
		if rec.StudentID == studentID {
			copied := *rec
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memScholarshipStore) GetFiltered(_ context.Context, from, to time.Time, departmentID int64) ([]*models.ScholarshipRecord, error) {
	var out []*models.ScholarshipRecord
	for _, rec := range m.records {
		if !from.IsZero() && rec.IssueDate.Before(from) {
			continue
		}
		if !to.IsZero() && rec.IssueDate.After(to) {
			continue
		}
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}
