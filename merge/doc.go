// Package merge turns the outcomes of a dispatched batch into one transcript.
//
// Assembly is all-or-nothing: if any chunk failed the result is an
// *errors.AggregateError listing every failure, and no partial text is
// returned. Otherwise the texts are joined in index order. Where a chunk is
// flagged as starting with audio repeated from the previous chunk, the
// longest run of words (up to MaxOverlapWords) shared by the end of the text
// so far and the start of the chunk is dropped from the chunk.
//
// The overlap search is a bounded heuristic. It can drop a coincidentally
// repeated short phrase, and it misses overlaps longer than MaxOverlapWords
// or ones blurred by transcription differences at the boundary.
package merge
