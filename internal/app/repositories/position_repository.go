package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/pkg/apperrors"
)

const positionColumns = `
	id, title, type, department_id, supervisor_name, year, total_slots,
	salary_month, description, workload, requirements, deadline, status,
	created_at
`

// PositionRepository handles position database operations
type PositionRepository struct {
	db *pgxpool.Pool
}

// NewPositionRepository creates a new PositionRepository
func NewPositionRepository(db *pgxpool.Pool) *PositionRepository {
	return &PositionRepository{
		db: db,
	}
}

func scanPosition(row pgx.Row) (*models.Position, error) {
	var p models.Position
	err := row.Scan(
		&p.ID, &p.Title, &p.Type, &p.DepartmentID, &p.SupervisorName,
		&p.Year, &p.TotalSlots, &p.SalaryMonth, &p.Description, &p.Workload,
		&p.Requirements, &p.Deadline, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new position posting
func (r *PositionRepository) Create(ctx context.Context, p *models.Position) error {
	query := `
		INSERT INTO positions
			(title, type, department_id, supervisor_name, year, total_slots,
			 salary_month, description, workload, requirements, deadline, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		p.Title, p.Type, p.DepartmentID, p.SupervisorName, p.Year,
		p.TotalSlots, p.SalaryMonth, p.Description, p.Workload,
		p.Requirements, p.Deadline, p.Status,
	).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating position: %w", err)
	}

	return nil
}

// GetByID retrieves a position by ID
func (r *PositionRepository) GetByID(ctx context.Context, id int64) (*models.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM positions WHERE id = $1`

	p, err := scanPosition(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPositionNotFound
		}
		return nil, fmt.Errorf("error retrieving position: %w", err)
	}

	return p, nil
}

// GetAll retrieves positions, optionally filtered by status, newest first
func (r *PositionRepository) GetAll(ctx context.Context, status *models.PositionStatus) ([]*models.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM positions`
	var args []interface{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []*models.Position
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return positions, nil
}

// Update applies the given field changes to a posting. Workload edits only
// affect future approvals; derived records keep their copied hours.
func (r *PositionRepository) Update(ctx context.Context, p *models.Position) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE positions
		SET title = $1, type = $2, department_id = $3, supervisor_name = $4,
		    year = $5, total_slots = $6, salary_month = $7, description = $8,
		    workload = $9, requirements = $10, deadline = $11, status = $12
		WHERE id = $13
	`, p.Title, p.Type, p.DepartmentID, p.SupervisorName, p.Year,
		p.TotalSlots, p.SalaryMonth, p.Description, p.Workload,
		p.Requirements, p.Deadline, p.Status, p.ID)
	if err != nil {
		return fmt.Errorf("error updating position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPositionNotFound
	}

	return nil
}

// CloseExpired moves every OPEN position whose deadline has passed to
// CLOSED and returns how many were closed.
func (r *PositionRepository) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE positions
		SET status = $1
		WHERE status = $2 AND deadline < $3
	`, models.PositionClosed, models.PositionOpen, now)
	if err != nil {
		return 0, fmt.Errorf("error closing expired positions: %w", err)
	}

	return tag.RowsAffected(), nil
}
