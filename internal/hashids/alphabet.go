package hashids

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultAlphabet is used when no alphabet option is given.
	DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890"

	minAlphabetLength = 16
	separatorRatio    = 3.5
	guardRatio        = 12.0
)

var (
	ErrInvalidAlphabet    = fmt.Errorf("alphabet must contain at least %d unique characters", minAlphabetLength)
	ErrDuplicateCharacter = errors.New("duplicate character in alphabet")
)

var separatorPool = []rune("cfhistuCFHISTU")

type partition struct {
	alphabet   []rune
	separators []rune
	guards     []rune
}

func partitionAlphabet(raw string, salt []rune) (*partition, error) {
	chars := []rune(raw)

	seen := make(map[rune]struct{}, len(chars))
	for _, c := range chars {
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCharacter, c)
		}
		seen[c] = struct{}{}
	}

	// Separators keep the pool's order, not the caller's.
	seps := make([]rune, 0, len(separatorPool))
	for _, c := range separatorPool {
		if _, ok := seen[c]; ok {
			seps = append(seps, c)
		}
	}
	alphabet := make([]rune, 0, len(chars))
	for _, c := range chars {
		if indexOf(seps, c) == -1 {
			alphabet = append(alphabet, c)
		}
	}

	if len(alphabet)+len(seps) < minAlphabetLength {
		return nil, ErrInvalidAlphabet
	}

	reorder(seps, salt)

	minSeps := int(math.Ceil(float64(len(alphabet)) / separatorRatio))
	if len(seps) == 0 || len(seps) < minSeps {
		if minSeps == 1 {
			minSeps = 2
		}
		if minSeps > len(seps) {
			diff := minSeps - len(seps)
			seps = append(seps, alphabet[:diff]...)
			alphabet = alphabet[diff:]
		}
	}

	reorder(alphabet, salt)

	numGuards := int(math.Ceil(float64(len(alphabet)) / guardRatio))
	var guards []rune
	if len(alphabet) < 3 {
		guards = cloneRunes(seps[:numGuards])
		seps = seps[numGuards:]
	} else {
		guards = cloneRunes(alphabet[:numGuards])
		alphabet = alphabet[numGuards:]
	}

	return &partition{
		alphabet:   cloneRunes(alphabet),
		separators: cloneRunes(seps),
		guards:     guards,
	}, nil
}
