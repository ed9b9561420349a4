// Package hashids turns sequences of uint32 into short salted strings and back.
//
// The encoding hides sequential identifiers such as database row numbers. It is reversible by
// anyone holding the salt and alphabet and offers no cryptographic protection.
package hashids

import (
	"errors"
	"fmt"
)

var ErrInvalidHash = errors.New("invalid hash")

// Config holds the construction parameters of a HashID.
type Config struct {
	Salt      string
	Alphabet  string
	MinLength int
}

type Option func(*Config)

func WithAlphabet(alphabet string) Option {
	return func(c *Config) {
		c.Alphabet = alphabet
	}
}

func WithMinLength(n int) Option {
	return func(c *Config) {
		c.MinLength = n
	}
}

// HashID is immutable after construction and safe for concurrent use.
type HashID struct {
	salt       []rune
	alphabet   []rune
	separators []rune
	guards     []rune
	minLength  int
}

// New builds a HashID for salt, using DefaultAlphabet and no minimum length unless overridden.
func New(salt string, opts ...Option) (*HashID, error) {
	cfg := Config{Salt: salt, Alphabet: DefaultAlphabet}
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewWithConfig(cfg)
}

func NewWithConfig(cfg Config) (*HashID, error) {
	if cfg.MinLength < 0 {
		return nil, fmt.Errorf("min length must not be negative, got %d", cfg.MinLength)
	}
	if cfg.Alphabet == "" {
		cfg.Alphabet = DefaultAlphabet
	}

	salt := []rune(cfg.Salt)
	p, err := partitionAlphabet(cfg.Alphabet, salt)
	if err != nil {
		return nil, err
	}

	return &HashID{
		salt:       salt,
		alphabet:   p.alphabet,
		separators: p.separators,
		guards:     p.guards,
		minLength:  cfg.MinLength,
	}, nil
}

// Encrypt encodes numbers. An empty input yields an empty string.
func (h *HashID) Encrypt(numbers []uint32) string {
	if len(numbers) == 0 {
		return ""
	}

	var checksum uint64
	for i, n := range numbers {
		checksum += uint64(n) % uint64(i+100)
	}

	lottery := h.alphabet[checksum%uint64(len(h.alphabet))]
	alphabet := cloneRunes(h.alphabet)

	out := make([]rune, 0, h.minLength+len(numbers)*8)
	out = append(out, lottery)

	for i, n := range numbers {
		h.shuffleFor(alphabet, lottery)

		digits := toDigits(n, alphabet)
		out = append(out, digits...)

		if i+1 < len(numbers) {
			sepIndex := uint64(n)
			if d := uint64(digits[0]) + uint64(i); d > 0 {
				sepIndex %= d
			}
			out = append(out, h.separators[sepIndex%uint64(len(h.separators))])
		}
	}

	if len(out) < h.minLength {
		out = h.pad(out, alphabet, checksum)
	}

	return string(out)
}

// shuffleFor reorders the working alphabet with lottery + salt + alphabet, the per-number salt.
func (h *HashID) shuffleFor(alphabet []rune, lottery rune) {
	salt := make([]rune, 0, 1+len(h.salt)+len(alphabet))
	salt = append(salt, lottery)
	salt = append(salt, h.salt...)
	salt = append(salt, alphabet...)
	reorder(alphabet, salt)
}

func (h *HashID) pad(out, alphabet []rune, checksum uint64) []rune {
	guard := h.guards[(checksum+uint64(out[0]))%uint64(len(h.guards))]
	out = append([]rune{guard}, out...)

	if len(out) < h.minLength {
		guard = h.guards[(checksum+uint64(out[2]))%uint64(len(h.guards))]
		out = append(out, guard)
	}

	half := len(alphabet) / 2
	for len(out) < h.minLength {
		reorder(alphabet, cloneRunes(alphabet))

		grown := make([]rune, 0, len(out)+len(alphabet))
		grown = append(grown, alphabet[half:]...)
		grown = append(grown, out...)
		grown = append(grown, alphabet[:half]...)
		out = grown

		if excess := len(out) - h.minLength; excess > 0 {
			out = out[excess/2 : excess/2+h.minLength]
		}
	}

	return out
}

// Decrypt reverses Encrypt. Strings that Encrypt could not have produced under this
// configuration fail with ErrInvalidHash.
func (h *HashID) Decrypt(hash string) ([]uint32, error) {
	if hash == "" {
		return []uint32{}, nil
	}

	parts := splitOn([]rune(hash), h.guards)
	body := parts[0]
	if len(parts) == 2 || len(parts) == 3 {
		body = parts[1]
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: %q has no body", ErrInvalidHash, hash)
	}

	lottery := body[0]
	segments := splitOn(body[1:], h.separators)
	alphabet := cloneRunes(h.alphabet)

	numbers := make([]uint32, 0, len(segments))
	for _, seg := range segments {
		h.shuffleFor(alphabet, lottery)

		n, err := fromDigits(seg, alphabet)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidHash, hash, err)
		}
		numbers = append(numbers, n)
	}

	if h.Encrypt(numbers) != hash {
		return nil, fmt.Errorf("%w: %q does not re-encode to itself", ErrInvalidHash, hash)
	}

	return numbers, nil
}

func splitOn(input, seps []rune) [][]rune {
	parts := make([][]rune, 0, 4)
	start := 0
	for i, r := range input {
		if indexOf(seps, r) != -1 {
			parts = append(parts, input[start:i])
			start = i + 1
		}
	}
	return append(parts, input[start:])
}

func (h *HashID) Alphabet() string   { return string(h.alphabet) }
func (h *HashID) Separators() string { return string(h.separators) }
func (h *HashID) Guards() string     { return string(h.guards) }
func (h *HashID) MinLength() int     { return h.minLength }
