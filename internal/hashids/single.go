package hashids

import (
	"errors"
	"fmt"
)

var ErrInvalidHex = errors.New("invalid hex digit")

// EncryptOne encodes a single id.
func (h *HashID) EncryptOne(id uint32) string {
	return h.Encrypt([]uint32{id})
}

// DecryptOne decodes a hash that carries exactly one id.
func (h *HashID) DecryptOne(hash string) (uint32, error) {
	numbers, err := h.Decrypt(hash)
	if err != nil {
		return 0, err
	}
	if len(numbers) != 1 {
		return 0, fmt.Errorf("%w: expected one number, got %d", ErrInvalidHash, len(numbers))
	}
	return numbers[0], nil
}

// EncryptHex encodes a hexadecimal string without 0x prefix. Each nibble becomes a number in
// [16, 31] so leading zeros survive the round trip.
func (h *HashID) EncryptHex(hex string) (string, error) {
	numbers := make([]uint32, len(hex))
	for i := 0; i < len(hex); i++ {
		b := hex[i]
		switch {
		case b >= '0' && b <= '9':
			b -= '0'
		case b >= 'a' && b <= 'f':
			b = b - 'a' + 10
		case b >= 'A' && b <= 'F':
			b = b - 'A' + 10
		default:
			return "", fmt.Errorf("%w: %q", ErrInvalidHex, hex[i])
		}
		numbers[i] = 0x10 + uint32(b)
	}
	return h.Encrypt(numbers), nil
}

func (h *HashID) DecryptHex(hash string) (string, error) {
	numbers, err := h.Decrypt(hash)
	if err != nil {
		return "", err
	}

	const digits = "0123456789abcdef"
	b := make([]byte, len(numbers))
	for i, n := range numbers {
		if n < 0x10 || n > 0x1f {
			return "", fmt.Errorf("%w: %d is not a hex nibble", ErrInvalidHash, n)
		}
		b[i] = digits[n-0x10]
	}
	return string(b), nil
}
