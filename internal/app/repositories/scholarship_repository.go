package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/demirhan/taportal/internal/app/models"
)

// ScholarshipRepository handles scholarship ledger database operations. The
// ledger is append-only: there is no update or delete here on purpose.
type ScholarshipRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewScholarshipRepository creates a new ScholarshipRepository
func NewScholarshipRepository(db *pgxpool.Pool) *ScholarshipRepository {
	return &ScholarshipRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create appends a ledger entry
func (r *ScholarshipRepository) Create(ctx context.Context, rec *models.ScholarshipRecord) error {
	query := `
		INSERT INTO scholarship_records
			(student_id, amount, issue_date, type, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		rec.StudentID, rec.Amount, rec.IssueDate, rec.Type, rec.Reason, rec.Status,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating scholarship record: %w", err)
	}

	return nil
}

// GetByStudentID retrieves a student's ledger entries, newest first
func (r *ScholarshipRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.ScholarshipRecord, error) {
	return r.query(ctx, squirrel.Eq{"r.student_id": studentID})
}

// GetFiltered retrieves ledger entries for reporting, bounded by issue date.
// Zero values disable the corresponding filter.
func (r *ScholarshipRepository) GetFiltered(ctx context.Context, from, to time.Time, departmentID int64) ([]*models.ScholarshipRecord, error) {
	conds := squirrel.And{}
	if !from.IsZero() {
		conds = append(conds, squirrel.GtOrEq{"r.issue_date": from})
	}
	if !to.IsZero() {
		conds = append(conds, squirrel.LtOrEq{"r.issue_date": to})
	}
	if departmentID != 0 {
		conds = append(conds, squirrel.Eq{"s.department_id": departmentID})
	}
	return r.query(ctx, conds)
}

func (r *ScholarshipRepository) query(ctx context.Context, pred interface{}) ([]*models.ScholarshipRecord, error) {
	sql, args, err := r.sb.Select(
		"r.id", "r.student_id", "r.amount", "r.issue_date", "r.type",
		"r.reason", "r.status", "r.created_at", "s.student_no", "s.name",
	).
		From("scholarship_records r").
		Join("students s ON s.id = r.student_id").
		Where(pred).
		OrderBy("r.issue_date DESC", "r.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build scholarship query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying scholarship records: %w", err)
	}
	defer rows.Close()

	var records []*models.ScholarshipRecord
	for rows.Next() {
		var rec models.ScholarshipRecord
		var student models.Student
		err := rows.Scan(
			&rec.ID, &rec.StudentID, &rec.Amount, &rec.IssueDate, &rec.Type,
			&rec.Reason, &rec.Status, &rec.CreatedAt,
			&student.StudentNo, &student.Name,
		)
		if err != nil {
			return nil, err
		}
		student.ID = rec.StudentID
		rec.Student = &student
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
