package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Varun5711/hashlink/internal/models"
)

type MemoryStorage struct {
	mu    sync.RWMutex
	links map[uint32]*models.Link
	now   func() time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		links: make(map[uint32]*models.Link),
		now:   time.Now,
	}
}

func (s *MemoryStorage) Save(ctx context.Context, link *models.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.links[link.ID]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicate, link.ID)
	}

	stored := *link
	s.links[link.ID] = &stored
	return nil
}

func (s *MemoryStorage) GetByID(ctx context.Context, id uint32) (*models.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, exists := s.links[id]
	if !exists || link.Expired(s.now()) {
		return nil, ErrNotFound
	}

	out := *link
	return &out, nil
}

func (s *MemoryStorage) IncrementClicks(ctx context.Context, id uint32) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, exists := s.links[id]
	if !exists || link.Expired(s.now()) {
		return 0, ErrNotFound
	}

	link.Clicks++
	return link.Clicks, nil
}

func (s *MemoryStorage) List(ctx context.Context, limit, offset int) ([]*models.Link, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	live := make([]*models.Link, 0, len(s.links))
	for _, link := range s.links {
		if !link.Expired(now) {
			out := *link
			live = append(live, &out)
		}
	}

	sort.Slice(live, func(i, j int) bool {
		return live[i].ID > live[j].ID
	})

	total := len(live)
	if offset >= total {
		return []*models.Link{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return live[offset:end], total, nil
}

func (s *MemoryStorage) DeleteExpired(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var deleted int64
	for id, link := range s.links {
		if link.Expired(now) {
			delete(s.links, id)
			deleted++
		}
	}
	return deleted, nil
}
