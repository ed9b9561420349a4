package hashids

import "testing"

func TestShuffle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		salt     string
		expected string
	}{
		{"letters", "abcdefghij", "salt", "iajecbhdgf"},
		{"digits", "0123456789", "this is my salt", "2416930857"},
		{"empty salt is identity", "abc", "", "abc"},
		{"two characters", "ab", "x", "ba"},
		{"single character", "a", "anything", "a"},
		{"empty input", "", "salt", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Shuffle(tt.input, tt.salt); got != tt.expected {
				t.Errorf("Shuffle(%q, %q) = %q; want %q", tt.input, tt.salt, got, tt.expected)
			}
		})
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	out := Shuffle(DefaultAlphabet, "permutation check")
	if len(out) != len(DefaultAlphabet) {
		t.Fatalf("length changed: %d", len(out))
	}
	seen := make(map[rune]bool)
	for _, r := range out {
		if seen[r] {
			t.Fatalf("duplicate %q in %s", r, out)
		}
		seen[r] = true
	}
	for _, r := range DefaultAlphabet {
		if !seen[r] {
			t.Errorf("missing %q in %s", r, out)
		}
	}
}

func TestShuffle_SaltSensitive(t *testing.T) {
	if Shuffle(DefaultAlphabet, "one") == Shuffle(DefaultAlphabet, "two") {
		t.Error("different salts produced the same permutation")
	}
}
