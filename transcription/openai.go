package transcription

var openAISpec = providerSpec{
	name:        "openai",
	displayName: "OpenAI",
	model:       "whisper-1",
	endpoint:    "https://api.openai.com/v1/audio/transcriptions",
}
