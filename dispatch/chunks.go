package dispatch

import (
	"fmt"

	"github.com/kbukum/scribe/transcription"
	"github.com/kbukum/scribe/validation"
)

// ValidateChunks rejects batches whose indices are negative or repeated, since
// each index must map to exactly one outcome.
func ValidateChunks(chunks []transcription.Chunk) error {
	v := validation.New()
	seen := make(map[int]struct{}, len(chunks))
	for _, c := range chunks {
		if c.Index < 0 {
			v.AddError("chunks", fmt.Sprintf("index %d is negative", c.Index))
			continue
		}
		if _, dup := seen[c.Index]; dup {
			v.AddError("chunks", fmt.Sprintf("index %d appears more than once", c.Index))
			continue
		}
		seen[c.Index] = struct{}{}
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
