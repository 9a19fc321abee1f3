package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/pkg/apperrors"
	"github.com/demirhan/taportal/internal/pkg/dberrors"
)

const studentColumns = `
	id, user_id, student_no, name, gender, enrollment_year, program,
	department_id, is_fulltime, status, verified, has_job, bank_account,
	phone, gpa, research_count
`

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID, &s.UserID, &s.StudentNo, &s.Name, &s.Gender, &s.EnrollmentYear,
		&s.Program, &s.DepartmentID, &s.IsFulltime, &s.Status, &s.Verified,
		&s.HasJob, &s.BankAccount, &s.Phone, &s.GPA, &s.ResearchCount,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student profile
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students
			(user_id, student_no, name, gender, enrollment_year, program,
			 department_id, is_fulltime, status, verified, has_job,
			 bank_account, phone, gpa, research_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		student.UserID, student.StudentNo, student.Name, student.Gender,
		student.EnrollmentYear, student.Program, student.DepartmentID,
		student.IsFulltime, student.Status, student.Verified, student.HasJob,
		student.BankAccount, student.Phone, student.GPA, student.ResearchCount,
	).Scan(&student.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_student_no_key") {
			return apperrors.ErrStudentNoExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	s, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return s, nil
}

// GetByUserID retrieves a student profile by its owning user account
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE user_id = $1`

	s, err := scanStudent(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return s, nil
}

// GetAll retrieves all students ordered by student number (admin roster)
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY student_no`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// SetVerified updates the admin verification state of a student
func (r *StudentRepository) SetVerified(ctx context.Context, id int64, verified bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE students SET verified = $1 WHERE id = $2`, verified, id)
	if err != nil {
		return fmt.Errorf("error updating verification state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// SetHasJob flips the employment flag outside a decision transaction. Used
// only by quit processing; approvals flip it inside RecordDecision.
func (r *StudentRepository) SetHasJob(ctx context.Context, id int64, hasJob bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE students SET has_job = $1 WHERE id = $2`, hasJob, id)
	if err != nil {
		return fmt.Errorf("error updating employment flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdateProfile updates the student-editable profile fields
func (r *StudentRepository) UpdateProfile(ctx context.Context, id int64, bankAccount, phone *string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE students SET bank_account = $1, phone = $2 WHERE id = $3`,
		bankAccount, phone, id)
	if err != nil {
		return fmt.Errorf("error updating student profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
