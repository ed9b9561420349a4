package service

import (
	"context"
	"errors"

	"github.com/Varun5711/hashlink/internal/cache"
	"github.com/Varun5711/hashlink/internal/hashids"
	"github.com/Varun5711/hashlink/internal/logger"
)

var ErrNoNumbers = errors.New("at least one number is required")

// CodecService fronts a HashID with a decode cache.
type CodecService struct {
	codec *hashids.HashID
	cache *cache.Cache
	log   *logger.Logger
}

func NewCodecService(codec *hashids.HashID, decodeCache *cache.Cache, log *logger.Logger) *CodecService {
	return &CodecService{
		codec: codec,
		cache: decodeCache,
		log:   log,
	}
}

func (s *CodecService) Encode(numbers []uint32) (string, error) {
	if len(numbers) == 0 {
		return "", ErrNoNumbers
	}
	return s.codec.Encrypt(numbers), nil
}

// Decode returns hashids.ErrInvalidHash for strings the codec did not produce.
func (s *CodecService) Decode(ctx context.Context, hash string) ([]uint32, error) {
	if s.cache != nil {
		if numbers, ok := s.cache.Get(ctx, hash); ok {
			return numbers, nil
		}
	}

	numbers, err := s.codec.Decrypt(hash)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, hash, numbers); err != nil {
			s.log.Warn("Failed to cache decoded hash %q: %v", hash, err)
		}
	}

	return numbers, nil
}

func (s *CodecService) EncodeHex(hex string) (string, error) {
	return s.codec.EncryptHex(hex)
}

func (s *CodecService) DecodeHex(hash string) (string, error) {
	return s.codec.DecryptHex(hash)
}
