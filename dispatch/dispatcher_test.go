package dispatch

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/transcription"
)

func makeChunks(n int) []transcription.Chunk {
	chunks := make([]transcription.Chunk, n)
	for i := range chunks {
		chunks[i] = transcription.Chunk{
			Index:             i,
			Data:              []byte(fmt.Sprintf("chunk-%d", i)),
			HasLeadingOverlap: i > 0,
		}
	}
	return chunks
}

func newTestDispatcher(t *testing.T, adapter transcription.Adapter, cfg Config) *Dispatcher {
	t.Helper()
	d, err := New(adapter, cfg, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

var testRequest = transcription.Request{Provider: transcription.ProviderOpenAI, APIKey: "sk-test"}

func TestDispatch_BoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int64
	adapter := transcription.AdapterFunc(func(ctx context.Context, req transcription.Request, audio transcription.Audio) (string, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return audio.FileName, nil
	})

	for _, limit := range []int{1, 3, 5} {
		t.Run(fmt.Sprintf("max=%d", limit), func(t *testing.T) {
			peak.Store(0)
			d := newTestDispatcher(t, adapter, Config{MaxConcurrency: limit})
			outcomes := d.Dispatch(context.Background(), makeChunks(60), testRequest, nil)

			if len(outcomes) != 60 {
				t.Fatalf("expected 60 outcomes, got %d", len(outcomes))
			}
			if got := peak.Load(); got > int64(limit) {
				t.Errorf("peak in-flight calls = %d, exceeds limit %d", got, limit)
			}
			if got := peak.Load(); got < 1 {
				t.Errorf("expected at least one call in flight, got %d", got)
			}
		})
	}
}

func TestDispatch_DefaultConcurrencyIsThree(t *testing.T) {
	d := newTestDispatcher(t, transcription.AdapterFunc(func(context.Context, transcription.Request, transcription.Audio) (string, error) {
		return "", nil
	}), Config{})
	if d.MaxConcurrency() != 3 {
		t.Errorf("MaxConcurrency() = %d, want 3", d.MaxConcurrency())
	}
}

func TestDispatch_EveryIndexExactlyOnce(t *testing.T) {
	adapter := transcription.AdapterFunc(func(ctx context.Context, req transcription.Request, audio transcription.Audio) (string, error) {
		if audio.FileName == "audio_chunk_3.mp3" {
			return "", errors.Provider("OpenAI", 500, "oops")
		}
		return "text " + audio.FileName, nil
	})
	d := newTestDispatcher(t, adapter, Config{MaxConcurrency: 2})

	chunks := makeChunks(10)
	outcomes := d.Dispatch(context.Background(), chunks, testRequest, nil)

	seen := map[int]int{}
	for _, o := range outcomes {
		seen[o.Index]++
		if o.HasLeadingOverlap != (o.Index > 0) {
			t.Errorf("chunk %d: overlap flag not carried to outcome", o.Index)
		}
		if o.Index == 3 {
			if o.Succeeded() || !errors.IsCode(o.Err, errors.ErrCodeProvider) {
				t.Errorf("chunk 3: expected provider error, got %v", o.Err)
			}
			continue
		}
		if want := fmt.Sprintf("text audio_chunk_%d.mp3", o.Index); o.Text != want {
			t.Errorf("chunk %d: text = %q, want %q", o.Index, o.Text, want)
		}
	}
	for _, c := range chunks {
		if seen[c.Index] != 1 {
			t.Errorf("chunk %d appears %d times", c.Index, seen[c.Index])
		}
	}
}

func TestDispatch_ProgressOncePerSuccess(t *testing.T) {
	adapter := transcription.AdapterFunc(func(ctx context.Context, req transcription.Request, audio transcription.Audio) (string, error) {
		var idx int
		fmt.Sscanf(audio.FileName, "audio_chunk_%d.mp3", &idx)
		if idx%3 == 0 {
			return "", errors.Transport("OpenAI", fmt.Errorf("reset"))
		}
		return "ok", nil
	})
	d := newTestDispatcher(t, adapter, Config{MaxConcurrency: 4})

	var mu sync.Mutex
	var completed []int
	totals := map[int]bool{}
	progress := func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		completed = append(completed, done)
		totals[total] = true
	}

	outcomes := d.Dispatch(context.Background(), makeChunks(30), testRequest, progress)

	successes := 0
	for _, o := range outcomes {
		if o.Succeeded() {
			successes++
		}
	}
	if successes != 20 {
		t.Fatalf("expected 20 successes, got %d", successes)
	}
	if len(completed) != successes {
		t.Errorf("progress fired %d times, want %d", len(completed), successes)
	}
	sort.Ints(completed)
	for i, n := range completed {
		if n != i+1 {
			t.Fatalf("completed counts = %v, want 1..%d each once", completed, successes)
		}
	}
	if len(totals) != 1 || !totals[30] {
		t.Errorf("expected total=30 on every call, got %v", totals)
	}
}

func TestDispatch_PanicBecomesWorkerFault(t *testing.T) {
	adapter := transcription.AdapterFunc(func(ctx context.Context, req transcription.Request, audio transcription.Audio) (string, error) {
		if audio.FileName == "audio_chunk_1.mp3" {
			panic("decoder exploded")
		}
		return "fine", nil
	})
	d := newTestDispatcher(t, adapter, Config{MaxConcurrency: 1})

	var progressCalls atomic.Int64
	outcomes := d.Dispatch(context.Background(), makeChunks(4), testRequest, func(int, int) {
		progressCalls.Add(1)
	})

	if len(outcomes) != 4 {
		t.Fatalf("expected 4 outcomes, got %d", len(outcomes))
	}
	for _, o := range outcomes {
		if o.Index == 1 {
			if !errors.IsCode(o.Err, errors.ErrCodeWorkerFault) {
				t.Errorf("expected WORKER_FAULT, got %v", o.Err)
			}
			if o.Text != "" {
				t.Errorf("expected no text for faulted chunk, got %q", o.Text)
			}
			continue
		}
		if !o.Succeeded() {
			t.Errorf("chunk %d: sibling failed: %v", o.Index, o.Err)
		}
	}
	if progressCalls.Load() != 3 {
		t.Errorf("progress fired %d times, want 3", progressCalls.Load())
	}
}

func TestDispatch_PanicReleasesSlot(t *testing.T) {
	adapter := transcription.AdapterFunc(func(ctx context.Context, req transcription.Request, audio transcription.Audio) (string, error) {
		panic(fmt.Errorf("boom"))
	})
	d := newTestDispatcher(t, adapter, Config{MaxConcurrency: 1})

	done := make(chan []transcription.Outcome)
	go func() { done <- d.Dispatch(context.Background(), makeChunks(5), testRequest, nil) }()

	select {
	case outcomes := <-done:
		for _, o := range outcomes {
			if !errors.IsCode(o.Err, errors.ErrCodeWorkerFault) {
				t.Errorf("chunk %d: expected WORKER_FAULT, got %v", o.Index, o.Err)
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("dispatch did not finish; a panicking unit kept its slot")
	}
}

func TestDispatch_FailureDoesNotCancelSiblings(t *testing.T) {
	var cancelled atomic.Int64
	adapter := transcription.AdapterFunc(func(ctx context.Context, req transcription.Request, audio transcription.Audio) (string, error) {
		if audio.FileName == "audio_chunk_0.mp3" {
			return "", errors.Provider("OpenAI", 401, "bad key")
		}
		time.Sleep(10 * time.Millisecond)
		if ctx.Err() != nil {
			cancelled.Add(1)
		}
		return "ok", nil
	})
	d := newTestDispatcher(t, adapter, Config{MaxConcurrency: 3})

	outcomes := d.Dispatch(context.Background(), makeChunks(6), testRequest, nil)

	if cancelled.Load() != 0 {
		t.Errorf("%d siblings saw a cancelled context", cancelled.Load())
	}
	failed := 0
	for _, o := range outcomes {
		if !o.Succeeded() {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("expected exactly 1 failure, got %d", failed)
	}
}

func TestDispatch_CancelledContext(t *testing.T) {
	var calls atomic.Int64
	adapter := transcription.AdapterFunc(func(context.Context, transcription.Request, transcription.Audio) (string, error) {
		calls.Add(1)
		return "ok", nil
	})
	d := newTestDispatcher(t, adapter, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := d.Dispatch(ctx, makeChunks(5), testRequest, nil)
	if len(outcomes) != 5 {
		t.Fatalf("expected 5 outcomes, got %d", len(outcomes))
	}
	for _, o := range outcomes {
		if !errors.IsCode(o.Err, errors.ErrCodeTransport) {
			t.Errorf("chunk %d: expected TRANSPORT_ERROR, got %v", o.Index, o.Err)
		}
	}
	if calls.Load() != 0 {
		t.Errorf("adapter called %d times after cancellation", calls.Load())
	}
}

func TestDispatch_CancelWhileWaitingForSlot(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	adapter := transcription.AdapterFunc(func(ctx context.Context, req transcription.Request, audio transcription.Audio) (string, error) {
		started <- struct{}{}
		<-release
		return "first", nil
	})
	d := newTestDispatcher(t, adapter, Config{MaxConcurrency: 1})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan []transcription.Outcome)
	go func() { done <- d.Dispatch(ctx, makeChunks(4), testRequest, nil) }()

	<-started
	cancel()
	time.Sleep(20 * time.Millisecond)
	close(release)

	outcomes := <-done
	succeeded, waited := 0, 0
	for _, o := range outcomes {
		switch {
		case o.Succeeded():
			succeeded++
		case errors.IsCode(o.Err, errors.ErrCodeTransport):
			waited++
		default:
			t.Errorf("chunk %d: unexpected error %v", o.Index, o.Err)
		}
	}
	if succeeded != 1 || waited != 3 {
		t.Errorf("expected 1 success and 3 transport errors, got %d and %d", succeeded, waited)
	}
}

func TestDispatch_Empty(t *testing.T) {
	d := newTestDispatcher(t, transcription.AdapterFunc(func(context.Context, transcription.Request, transcription.Audio) (string, error) {
		t.Error("adapter should not be called")
		return "", nil
	}), Config{})

	outcomes := d.Dispatch(context.Background(), nil, testRequest, nil)
	if outcomes == nil || len(outcomes) != 0 {
		t.Errorf("expected empty non-nil outcomes, got %v", outcomes)
	}
}

func TestDispatch_RateLimited(t *testing.T) {
	var calls atomic.Int64
	adapter := transcription.AdapterFunc(func(context.Context, transcription.Request, transcription.Audio) (string, error) {
		calls.Add(1)
		return "ok", nil
	})
	d := newTestDispatcher(t, adapter, Config{MaxConcurrency: 3, RateLimit: 1000, RateBurst: 2})

	outcomes := d.Dispatch(context.Background(), makeChunks(6), testRequest, nil)
	for _, o := range outcomes {
		if !o.Succeeded() {
			t.Errorf("chunk %d: %v", o.Index, o.Err)
		}
	}
	if calls.Load() != 6 {
		t.Errorf("expected 6 calls, got %d", calls.Load())
	}
}

func TestNew_Validation(t *testing.T) {
	ok := transcription.AdapterFunc(func(context.Context, transcription.Request, transcription.Audio) (string, error) {
		return "", nil
	})

	if _, err := New(nil, Config{}); !errors.IsCode(err, errors.ErrCodeMissingField) {
		t.Errorf("expected MISSING_FIELD for nil adapter, got %v", err)
	}
	if _, err := New(ok, Config{MaxConcurrency: -1}); !errors.IsCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for negative concurrency, got %v", err)
	}
	if _, err := New(ok, Config{RateLimit: -2}); err == nil {
		t.Error("expected error for negative rate limit")
	}
}
