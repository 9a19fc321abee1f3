package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/pkg/apperrors"
)

// NoticeRepository handles public notice database operations
type NoticeRepository struct {
	db *pgxpool.Pool
}

// NewNoticeRepository creates a new NoticeRepository
func NewNoticeRepository(db *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{
		db: db,
	}
}

// Create publishes a new notice
func (r *NoticeRepository) Create(ctx context.Context, n *models.PublicNotice) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO notices (title, content, publish_time, publisher)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, n.Title, n.Content, n.PublishTime, n.Publisher).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("error creating notice: %w", err)
	}
	return nil
}

// GetAll retrieves all notices, newest first
func (r *NoticeRepository) GetAll(ctx context.Context) ([]*models.PublicNotice, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, content, publish_time, publisher
		FROM notices
		ORDER BY publish_time DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notices []*models.PublicNotice
	for rows.Next() {
		var n models.PublicNotice
		err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.PublishTime, &n.Publisher)
		if err != nil {
			return nil, err
		}
		notices = append(notices, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notices, nil
}

// GetByID retrieves a single notice
func (r *NoticeRepository) GetByID(ctx context.Context, id int64) (*models.PublicNotice, error) {
	var n models.PublicNotice
	err := r.db.QueryRow(ctx, `
		SELECT id, title, content, publish_time, publisher
		FROM notices
		WHERE id = $1
	`, id).Scan(&n.ID, &n.Title, &n.Content, &n.PublishTime, &n.Publisher)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoticeNotFound
		}
		return nil, fmt.Errorf("error retrieving notice: %w", err)
	}

	return &n, nil
}
