// Package dispatch sends a batch of chunks to a transcription adapter with a
// bounded number of provider calls in flight.
//
// Every chunk gets its own goroutine as soon as Dispatch is called. Only the
// provider call itself waits for one of MaxConcurrency admission slots, so a
// late chunk never waits behind scheduling and a cancelled context still
// reaches chunks that never got a slot.
//
// Each chunk produces exactly one Outcome. A failing or panicking chunk never
// cancels its siblings; deciding what to do with a mixed batch is left to the
// merge package.
package dispatch
