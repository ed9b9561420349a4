package storage

import (
	"context"
	"errors"

	"github.com/Varun5711/hashlink/internal/models"
)

var (
	ErrNotFound  = errors.New("link not found")
	ErrDuplicate = errors.New("link id already exists")
)

// Storage persists links by their integer id; the public code is derived from the id.
type Storage interface {
	Save(ctx context.Context, link *models.Link) error
	GetByID(ctx context.Context, id uint32) (*models.Link, error)
	IncrementClicks(ctx context.Context, id uint32) (int64, error)
	List(ctx context.Context, limit, offset int) ([]*models.Link, int, error)
	DeleteExpired(ctx context.Context) (int64, error)
}
