// Package audio holds recorded audio on its way to transcription.
//
// A Recording is either a single payload, sent to the provider in one
// request, or a list of chunks produced by an external splitter. FileSource
// builds recordings from encoded audio files on disk.
package audio
