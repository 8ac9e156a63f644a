package transcription

var mistralSpec = providerSpec{
	name:        "mistral",
	displayName: "Mistral",
	model:       "voxtral-mini-latest",
	endpoint:    "https://api.mistral.ai/v1/audio/transcriptions",
}
