package transcription

import (
	"fmt"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/validation"
)

const (
	// SingleFileName is the upload name used on the single-shot path.
	SingleFileName = "audio.mp3"
	// AudioContentType is the MIME type of every upload.
	AudioContentType = "audio/mpeg"
)

// Request holds the per-invocation provider settings. It is read-only while a
// batch is in flight.
type Request struct {
	// Provider selects the backend.
	Provider Provider `json:"provider"`
	// APIKey is sent as a bearer token.
	APIKey string `json:"api_key" validate:"required"`
	// Language is an optional 2-letter hint. Empty lets the provider detect it.
	Language string `json:"language,omitempty" validate:"omitempty,langcode"`
}

// Validate checks the request before any network call is made.
func (r Request) Validate() error {
	if !r.Provider.Valid() {
		return errors.InvalidInput("provider", fmt.Sprintf("unknown provider %d", int(r.Provider)))
	}
	return validation.Validate(r)
}

// Chunk is one independently transcribable slice of a recording.
type Chunk struct {
	// Index defines the position of the chunk in the final transcript.
	Index int
	// Data is the encoded audio payload.
	Data []byte
	// HasLeadingOverlap is set when the start of this chunk repeats the tail
	// of the previous one.
	HasLeadingOverlap bool
}

// Audio returns the upload for this chunk, named after its index.
func (c Chunk) Audio() Audio {
	return Audio{
		FileName: fmt.Sprintf("audio_chunk_%d.mp3", c.Index),
		Data:     c.Data,
	}
}

// Audio is one upload: a file name for diagnostics and the payload bytes.
type Audio struct {
	FileName string
	Data     []byte
}

// SingleAudio wraps a whole recording for the single-shot path.
func SingleAudio(data []byte) Audio {
	return Audio{FileName: SingleFileName, Data: data}
}

// Outcome is the result of transcribing one chunk. Exactly one of Text or Err
// is meaningful: Err is nil on success.
type Outcome struct {
	Index             int
	Text              string
	HasLeadingOverlap bool
	Err               error
}

// Succeeded reports whether the chunk was transcribed.
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}
