// Package transcription defines the chunk and outcome types shared by the
// dispatcher and assembler, and the adapters that send one piece of audio to
// a speech-to-text provider.
//
// The provider set is closed: OpenAI (whisper-1) and Mistral (voxtral-mini-latest).
// Both speak the same multipart upload contract and differ only in model id and
// endpoint, so one HTTP adapter serves both.
//
// # Usage
//
//	adapter, err := transcription.NewAdapter(transcription.ProviderMistral)
//	text, err := adapter.Transcribe(ctx, req, chunk.Audio())
package transcription
