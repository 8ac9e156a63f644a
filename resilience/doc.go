// Package resilience provides the admission and pacing primitives used when
// fanning provider calls out concurrently.
//
// This package includes:
//   - Bulkhead: a counting admission gate bounding in-flight calls
//   - RateLimiter: a token bucket pacing call starts
//
// Dispatch gates each provider call, not each unit of work:
//
//	bh := resilience.NewBulkhead(resilience.BulkheadConfig{Name: "provider", MaxConcurrent: 3, MaxWait: resilience.WaitForever})
//	go func() {
//	    _ = bh.Execute(ctx, func() error {
//	        return adapter.Transcribe(ctx, req, audio)
//	    })
//	}()
package resilience
