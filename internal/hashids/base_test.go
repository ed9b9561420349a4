package hashids

import (
	"errors"
	"math"
	"testing"
)

var (
	decimal   = []rune("0123456789")
	hexDigits = []rune("0123456789abcdef")
)

func TestToDigits(t *testing.T) {
	tests := []struct {
		name     string
		input    uint32
		alphabet []rune
		expected string
	}{
		{"zero decimal", 0, decimal, "0"},
		{"nine", 9, decimal, "9"},
		{"ten", 10, decimal, "10"},
		{"12345", 12345, decimal, "12345"},
		{"zero hex", 0, hexDigits, "0"},
		{"255 hex", 255, hexDigits, "ff"},
		{"256 hex", 256, hexDigits, "100"},
		{"max hex", math.MaxUint32, hexDigits, "ffffffff"},
		{"binary", 5, []rune("ab"), "bab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := string(toDigits(tt.input, tt.alphabet))
			if result != tt.expected {
				t.Errorf("toDigits(%d) = %s; want %s", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFromDigits(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		alphabet []rune
		expected uint32
		err      error
	}{
		{"zero", "0", decimal, 0, nil},
		{"leading zero", "007", decimal, 7, nil},
		{"12345", "12345", decimal, 12345, nil},
		{"ff", "ff", hexDigits, 255, nil},
		{"max", "ffffffff", hexDigits, math.MaxUint32, nil},
		{"overflow", "100000000", hexDigits, 0, ErrOverflow},
		{"empty", "", hexDigits, 0, ErrEmptyDigits},
		{"invalid character", "12g", hexDigits, 0, ErrInvalidDigit},
		{"invalid space", "1 2", decimal, 0, ErrInvalidDigit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := fromDigits([]rune(tt.input), tt.alphabet)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Errorf("fromDigits(%q) error = %v; want %v", tt.input, err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("fromDigits(%q) unexpected error: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("fromDigits(%q) = %d; want %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestDigitsRoundTrip(t *testing.T) {
	alphabet := []rune(DefaultAlphabet)
	for _, num := range []uint32{0, 1, 61, 62, 63, 3844, 1234567890, math.MaxUint32} {
		decoded, err := fromDigits(toDigits(num, alphabet), alphabet)
		if err != nil {
			t.Errorf("round trip error for %d: %v", num, err)
		}
		if decoded != num {
			t.Errorf("round trip failed: %d -> %d", num, decoded)
		}
	}
}
