package hashids

import (
	"errors"
	"math"
)

var (
	ErrEmptyDigits  = errors.New("empty digit string cannot be decoded")
	ErrInvalidDigit = errors.New("character not in alphabet")
	ErrOverflow     = errors.New("value overflows uint32")
)

// toDigits writes number in positional notation over alphabet, most significant digit first.
func toDigits(number uint32, alphabet []rune) []rune {
	base := uint32(len(alphabet))
	res := make([]rune, 0, 8)
	for {
		res = append(res, alphabet[number%base])
		number /= base
		if number == 0 {
			break
		}
	}

	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}

	return res
}

func fromDigits(digits []rune, alphabet []rune) (uint32, error) {
	if len(digits) == 0 {
		return 0, ErrEmptyDigits
	}

	base := uint64(len(alphabet))
	var num uint64
	for _, d := range digits {
		idx := indexOf(alphabet, d)
		if idx == -1 {
			return 0, ErrInvalidDigit
		}
		num = num*base + uint64(idx)
		if num > math.MaxUint32 {
			return 0, ErrOverflow
		}
	}
	return uint32(num), nil
}

func indexOf(set []rune, r rune) int {
	for i, c := range set {
		if c == r {
			return i
		}
	}
	return -1
}
