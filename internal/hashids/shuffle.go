package hashids

// reorder permutes seq in place using salt. Position 0 is never a swap source.
func reorder(seq []rune, salt []rune) {
	if len(salt) == 0 {
		return
	}

	index, sum := 0, 0
	for i := len(seq) - 1; i > 0; i-- {
		index %= len(salt)
		c := int(salt[index])
		sum += c
		j := (c + index + sum) % i
		seq[i], seq[j] = seq[j], seq[i]
		index++
	}
}

// Shuffle returns s reordered by salt. It is the same permutation the codec applies to its
// alphabets and is exposed for fixtures and tooling.
func Shuffle(s, salt string) string {
	seq := []rune(s)
	reorder(seq, []rune(salt))
	return string(seq)
}

func cloneRunes(r []rune) []rune {
	out := make([]rune, len(r))
	copy(out, r)
	return out
}
