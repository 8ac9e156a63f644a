// Package session is the entry point for turning a recording into text.
//
// A Transcriber is bound to one provider request. Small recordings take the
// single-shot path: one synchronous adapter call whose text is returned as
// is. Chunked recordings are dispatched concurrently and the outcomes are
// merged with overlap removal; any failed chunk fails the whole call with an
// *errors.AggregateError.
//
//	t, err := session.FromConfig(cfg.Transcription)
//	text, err := t.Transcribe(ctx, rec, func(done, total int) {
//	    fmt.Printf("(%d/%d)\n", done, total)
//	})
package session
