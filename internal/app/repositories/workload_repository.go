package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/demirhan/taportal/internal/app/models"
)

// WorkloadRepository handles workload summary database operations. Rows are
// created inside the decision transaction; this repository only reads them.
type WorkloadRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewWorkloadRepository creates a new WorkloadRepository
func NewWorkloadRepository(db *pgxpool.Pool) *WorkloadRepository {
	return &WorkloadRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByStudentID retrieves a student's workload records, newest period first
func (r *WorkloadRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.WorkloadSummary, error) {
	return r.query(ctx, squirrel.Eq{"w.student_id": studentID}, 0)
}

// GetFiltered retrieves workload records for reporting. A zero year or
// departmentID means no filter on that dimension.
func (r *WorkloadRepository) GetFiltered(ctx context.Context, year int, departmentID int64) ([]*models.WorkloadSummary, error) {
	conds := squirrel.And{}
	if year != 0 {
		conds = append(conds, squirrel.Eq{"p.year": year})
	}
	if departmentID != 0 {
		conds = append(conds, squirrel.Eq{"p.department_id": departmentID})
	}
	return r.query(ctx, conds, 0)
}

func (r *WorkloadRepository) query(ctx context.Context, pred interface{}, limit uint64) ([]*models.WorkloadSummary, error) {
	builder := r.sb.Select(
		"w.id", "w.student_id", "w.position_id", "w.period_start",
		"w.period_end", "w.total_hours", "w.status", "w.created_at",
		"s.student_no", "s.name", "p.title", "p.year", "p.department_id",
	).
		From("workload_summaries w").
		Join("students s ON s.id = w.student_id").
		Join("positions p ON p.id = w.position_id").
		Where(pred).
		OrderBy("w.period_start DESC", "w.id DESC")
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build workload query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying workload summaries: %w", err)
	}
	defer rows.Close()

	var summaries []*models.WorkloadSummary
	for rows.Next() {
		var w models.WorkloadSummary
		var student models.Student
		var position models.Position
		err := rows.Scan(
			&w.ID, &w.StudentID, &w.PositionID, &w.PeriodStart, &w.PeriodEnd,
			&w.TotalHours, &w.Status, &w.CreatedAt,
			&student.StudentNo, &student.Name,
			&position.Title, &position.Year, &position.DepartmentID,
		)
		if err != nil {
			return nil, err
		}
		student.ID = w.StudentID
		position.ID = w.PositionID
		w.Student = &student
		w.Position = &position
		summaries = append(summaries, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

// SetStatus flags a workload record as ANOMALOUS or clears the flag
func (r *WorkloadRepository) SetStatus(ctx context.Context, id int64, status models.WorkloadStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE workload_summaries SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating workload status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("workload summary %d not found", id)
	}
	return nil
}
