package merge

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/transcription"
)

// Assemble merges the outcomes of one batch. The order of outcomes does not
// matter; they are sorted by chunk index first. If any outcome failed, the
// error is an *errors.AggregateError with one "chunk <i>: <cause>" entry per
// failed chunk, in index order.
func Assemble(outcomes []transcription.Outcome) (string, error) {
	sorted := slices.Clone(outcomes)
	slices.SortStableFunc(sorted, func(a, b transcription.Outcome) int {
		return a.Index - b.Index
	})

	var causes []error
	for _, o := range sorted {
		if !o.Succeeded() {
			causes = append(causes, fmt.Errorf("chunk %d: %w", o.Index, o.Err))
		}
	}
	if len(causes) > 0 {
		return "", errors.NewAggregate(len(sorted), causes)
	}

	return Merge(sorted), nil
}

// Merge joins successful outcomes that are already in index order.
func Merge(sorted []transcription.Outcome) string {
	switch len(sorted) {
	case 0:
		return ""
	case 1:
		return strings.TrimSpace(sorted[0].Text)
	}

	var b strings.Builder
	b.WriteString(strings.TrimSpace(sorted[0].Text))

	for _, o := range sorted[1:] {
		text := strings.TrimSpace(o.Text)
		if o.HasLeadingOverlap {
			text = RemoveOverlap(b.String(), text)
		}
		appendWithSpace(&b, text)
	}
	return b.String()
}

// appendWithSpace appends text, adding one space only when neither side
// already provides one and text is non-empty.
func appendWithSpace(b *strings.Builder, text string) {
	if text == "" {
		return
	}
	acc := b.String()
	if acc != "" && !strings.HasSuffix(acc, " ") && !strings.HasPrefix(text, " ") {
		b.WriteByte(' ')
	}
	b.WriteString(text)
}
