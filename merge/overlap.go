package merge

import "strings"

// MaxOverlapWords bounds the overlap search to a few seconds of speech.
const MaxOverlapWords = 15

// RemoveOverlap returns incoming without the longest leading run of words
// that repeats the trailing words of existing. Words are compared
// case-insensitively. When either side has no words, or nothing matches,
// incoming is returned unchanged.
func RemoveOverlap(existing, incoming string) string {
	existingWords := strings.Fields(existing)
	incomingWords := strings.Fields(incoming)
	if len(existingWords) == 0 || len(incomingWords) == 0 {
		return incoming
	}

	k := overlapLength(existingWords, incomingWords)
	if k == 0 {
		return incoming
	}
	return strings.Join(incomingWords[k:], " ")
}

// overlapLength returns the largest k <= MaxOverlapWords such that the last k
// words of existing equal the first k words of incoming, or 0.
func overlapLength(existing, incoming []string) int {
	limit := min(MaxOverlapWords, len(existing), len(incoming))

	best := 0
	for k := 1; k <= limit; k++ {
		if wordsEqualFold(existing[len(existing)-k:], incoming[:k]) {
			best = k
		}
	}
	return best
}

func wordsEqualFold(a, b []string) bool {
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}
