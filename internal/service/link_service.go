package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Varun5711/hashlink/internal/hashids"
	"github.com/Varun5711/hashlink/internal/idgen"
	"github.com/Varun5711/hashlink/internal/logger"
	"github.com/Varun5711/hashlink/internal/models"
	"github.com/Varun5711/hashlink/internal/qrcode"
	"github.com/Varun5711/hashlink/internal/storage"
	"github.com/Varun5711/hashlink/internal/validation"
)

var ErrInvalidURL = errors.New("invalid long_url")

const (
	defaultPageSize = 100
	maxPageSize     = 1000
	qrSize          = 256
)

// LinkService stores links by sequential id and exposes them under the hash of that id.
type LinkService struct {
	store      storage.Storage
	seq        idgen.Sequence
	codec      *hashids.HashID
	log        *logger.Logger
	baseURL    string
	baseHost   string
	defaultTTL time.Duration
	now        func() time.Time
}

func NewLinkService(store storage.Storage, seq idgen.Sequence, codec *hashids.HashID, log *logger.Logger, baseURL string, defaultTTL time.Duration) *LinkService {
	return &LinkService{
		store:      store,
		seq:        seq,
		codec:      codec,
		log:        log,
		baseURL:    baseURL,
		baseHost:   validation.HostOf(baseURL),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Shorten stores longURL. A zero ttl uses the default; a negative ttl never expires.
func (s *LinkService) Shorten(ctx context.Context, longURL string, ttl time.Duration) (*models.Link, error) {
	if err := validation.ValidateURL(longURL, s.baseHost); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	id, err := s.seq.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate id: %w", err)
	}

	code := s.codec.EncryptOne(id)
	createdAt := s.now()

	link := &models.Link{
		ID:        id,
		Code:      code,
		LongURL:   longURL,
		CreatedAt: createdAt,
	}

	if ttl == 0 {
		ttl = s.defaultTTL
	}
	if ttl > 0 {
		expiresAt := createdAt.Add(ttl)
		link.ExpiresAt = &expiresAt
	}

	qr, err := qrcode.DataURL(s.ShortURL(code), qrSize)
	if err != nil {
		s.log.Warn("Failed to render QR code for %s: %v", code, err)
	} else {
		link.QRCode = qr
	}

	if err := s.store.Save(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to save link %d: %w", id, err)
	}

	link.ShortURL = s.ShortURL(code)
	s.log.Debug("Shortened %s as %s (id %d)", longURL, code, id)
	return link, nil
}

// Resolve looks up the link behind code and counts the visit. Codes that do not decode to a
// single id report storage.ErrNotFound.
func (s *LinkService) Resolve(ctx context.Context, code string) (*models.Link, error) {
	id, err := s.codec.DecryptOne(code)
	if err != nil {
		return nil, storage.ErrNotFound
	}

	link, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	clicks, err := s.store.IncrementClicks(ctx, id)
	if err != nil {
		s.log.Warn("Failed to count click for %s: %v", code, err)
	} else {
		link.Clicks = clicks
	}

	link.ShortURL = s.ShortURL(link.Code)
	return link, nil
}

func (s *LinkService) List(ctx context.Context, limit, offset int) (*models.ListLinksResponse, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	links, total, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	for _, link := range links {
		link.ShortURL = s.ShortURL(link.Code)
	}

	return &models.ListLinksResponse{
		Links:   links,
		Total:   total,
		HasMore: offset+len(links) < total,
	}, nil
}

func (s *LinkService) ShortURL(code string) string {
	return s.baseURL + "/" + code
}
