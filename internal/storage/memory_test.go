package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Varun5711/hashlink/internal/models"
)

func newLink(id uint32, expiresAt *time.Time) *models.Link {
	return &models.Link{
		ID:        id,
		Code:      "code",
		LongURL:   "https://example.com",
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
}

func TestMemoryStorage_SaveAndGet(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	if err := s.Save(ctx, newLink(1, nil)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	link, err := s.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if link.LongURL != "https://example.com" {
		t.Errorf("unexpected long url %q", link.LongURL)
	}

	if err := s.Save(ctx, newLink(1, nil)); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	if _, err := s.GetByID(ctx, 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStorage_Expiry(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)
	s.Save(ctx, newLink(1, &past))
	s.Save(ctx, newLink(2, &future))
	s.Save(ctx, newLink(3, nil))

	if _, err := s.GetByID(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired link should be hidden, got %v", err)
	}
	if _, err := s.IncrementClicks(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired link should not count clicks, got %v", err)
	}

	deleted, err := s.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired() error: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted, got %d", deleted)
	}

	_, total, _ := s.List(ctx, 10, 0)
	if total != 2 {
		t.Errorf("expected 2 live links, got %d", total)
	}
}

func TestMemoryStorage_IncrementClicks(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()
	s.Save(ctx, newLink(7, nil))

	for i := int64(1); i <= 3; i++ {
		clicks, err := s.IncrementClicks(ctx, 7)
		if err != nil {
			t.Fatalf("IncrementClicks() error: %v", err)
		}
		if clicks != i {
			t.Errorf("clicks = %d, want %d", clicks, i)
		}
	}
}

func TestMemoryStorage_ListPaging(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()
	for id := uint32(1); id <= 5; id++ {
		s.Save(ctx, newLink(id, nil))
	}

	links, total, err := s.List(ctx, 2, 1)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(links) != 2 || links[0].ID != 4 || links[1].ID != 3 {
		t.Errorf("unexpected page: %+v", links)
	}

	links, _, _ = s.List(ctx, 10, 10)
	if len(links) != 0 {
		t.Errorf("expected empty page past the end, got %d", len(links))
	}
}
