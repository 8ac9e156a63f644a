package audio

import "github.com/kbukum/scribe/transcription"

// Recording is the output of a capture: one payload or a chunk list.
type Recording struct {
	data   []byte
	chunks []transcription.Chunk
}

// Single wraps a payload small enough to send in one request.
func Single(data []byte) Recording {
	return Recording{data: data}
}

// Chunked wraps a pre-split recording.
func Chunked(chunks []transcription.Chunk) Recording {
	return Recording{chunks: chunks}
}

// IsChunked reports whether the recording was split.
func (r Recording) IsChunked() bool {
	return r.chunks != nil
}

// Data returns the single payload, or nil for a chunked recording.
func (r Recording) Data() []byte {
	return r.data
}

// Chunks returns the chunk list, or nil for a single recording.
func (r Recording) Chunks() []transcription.Chunk {
	return r.chunks
}

// Size returns the total payload size in bytes.
func (r Recording) Size() int {
	if !r.IsChunked() {
		return len(r.data)
	}
	n := 0
	for _, c := range r.chunks {
		n += len(c.Data)
	}
	return n
}
