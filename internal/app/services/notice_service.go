package services

import (
	"context"
	"time"

	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/pkg/apperrors"
)

// NoticeStore is the public notice persistence surface
type NoticeStore interface {
	Create(ctx context.Context, n *models.PublicNotice) error
	GetAll(ctx context.Context) ([]*models.PublicNotice, error)
	GetByID(ctx context.Context, id int64) (*models.PublicNotice, error)
}

// NoticeService serves the public announcement board
type NoticeService struct {
	noticeStore NoticeStore
	now         func() time.Time
}

// NewNoticeService creates a new NoticeService
func NewNoticeService(noticeStore NoticeStore) *NoticeService {
	return &NoticeService{
		noticeStore: noticeStore,
		now:         time.Now,
	}
}

// List returns all published notices, newest first
func (s *NoticeService) List(ctx context.Context) ([]*models.PublicNotice, error) {
	return s.noticeStore.GetAll(ctx)
}

// Get returns a single notice
func (s *NoticeService) Get(ctx context.Context, id int64) (*models.PublicNotice, error) {
	return s.noticeStore.GetByID(ctx, id)
}

// Publish creates a new notice (admin)
func (s *NoticeService) Publish(ctx context.Context, title, content, publisher string) (*models.PublicNotice, error) {
	if title == "" || content == "" {
		return nil, apperrors.NewBadRequestError("title and content are required")
	}

	notice := &models.PublicNotice{
		Title:       title,
		Content:     content,
		PublishTime: s.now(),
		Publisher:   publisher,
	}
	if err := s.noticeStore.Create(ctx, notice); err != nil {
		return nil, err
	}

	return notice, nil
}
