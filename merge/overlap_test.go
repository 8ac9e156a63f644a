package merge

import (
	"strings"
	"testing"
)

func TestRemoveOverlap(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		incoming string
		want     string
	}{
		{"genuine duplication", "the quick brown fox", "brown fox jumps", "jumps"},
		{"no overlap", "hello there", "general kenobi", "general kenobi"},
		{"case-insensitive", "I moved to New York", "new york is loud", "is loud"},
		{"whole incoming duplicated", "one two three", "two three", ""},
		{"empty existing", "", "hello world", "hello world"},
		{"whitespace existing", "   ", "hello world", "hello world"},
		{"empty incoming", "hello", "", ""},
		{"single word", "and then", "then we left", "we left"},
		{"coincidental repeat is still removed", "that is what I said so", "so so good", "so good"},
		{"punctuation breaks match", "the end.", "end of story", "end of story"},
		{"internal match only", "a b c d", "b c e", "b c e"},
		{"collapses whitespace when trimmed", "alpha beta", "beta   gamma  delta", "gamma delta"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RemoveOverlap(tc.existing, tc.incoming); got != tc.want {
				t.Errorf("RemoveOverlap(%q, %q) = %q, want %q", tc.existing, tc.incoming, got, tc.want)
			}
		})
	}
}

func TestRemoveOverlap_PrefersLongestMatch(t *testing.T) {
	// "la" matches at k=1 and "la la la" at k=3; the longer one wins.
	got := RemoveOverlap("sing la la la", "la la la song")
	if got != "song" {
		t.Errorf("expected longest match to be removed, got %q", got)
	}
}

func TestRemoveOverlap_KeepsScanningPastMismatch(t *testing.T) {
	// k=1 ("b" vs "a") fails, k=2 ("a b" vs "a b") matches.
	got := RemoveOverlap("x a b", "a b c")
	if got != "c" {
		t.Errorf("got %q, want %q", got, "c")
	}
}

func words(prefix string, n int) []string {
	w := make([]string, n)
	for i := range w {
		w[i] = prefix
	}
	return w
}

func TestRemoveOverlap_WindowCap(t *testing.T) {
	t.Run("15 distinct words are detected", func(t *testing.T) {
		shared := make([]string, MaxOverlapWords)
		for i := range shared {
			shared[i] = string(rune('a' + i))
		}
		existing := "start " + strings.Join(shared, " ")
		incoming := strings.Join(shared, " ") + " tail"
		if got := RemoveOverlap(existing, incoming); got != "tail" {
			t.Errorf("got %q, want %q", got, "tail")
		}
	})

	t.Run("16 distinct words are not detected", func(t *testing.T) {
		shared := make([]string, MaxOverlapWords+1)
		for i := range shared {
			shared[i] = string(rune('a' + i))
		}
		existing := "start " + strings.Join(shared, " ")
		incoming := strings.Join(shared, " ") + " tail"
		if got := RemoveOverlap(existing, incoming); got != incoming {
			t.Errorf("expected no overlap beyond %d words, got %q", MaxOverlapWords, got)
		}
	})

	t.Run("16 identical words strip only 15", func(t *testing.T) {
		existing := strings.Join(words("na", 16), " ")
		incoming := strings.Join(words("na", 16), " ") + " batman"
		if got := RemoveOverlap(existing, incoming); got != "na batman" {
			t.Errorf("got %q, want %q", got, "na batman")
		}
	})
}

func TestOverlapLength(t *testing.T) {
	if got := overlapLength([]string{"a"}, []string{"A", "b"}); got != 1 {
		t.Errorf("overlapLength = %d, want 1", got)
	}
	if got := overlapLength([]string{"a", "b"}, []string{"c"}); got != 0 {
		t.Errorf("overlapLength = %d, want 0", got)
	}
}
